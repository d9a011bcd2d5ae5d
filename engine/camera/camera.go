package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection selects how the camera maps the scene onto the viewport.
type Projection int

const (
	// ProjectionOrthographic fits a fixed world rectangle into the viewport.
	ProjectionOrthographic Projection = iota
	// ProjectionPerspective uses a vertical field of view.
	ProjectionPerspective
)

func (p Projection) String() string {
	if p == ProjectionPerspective {
		return "perspective"
	}
	return "orthographic"
}

type cameraImpl struct {
	mu *sync.Mutex

	projection Projection

	eye    mgl32.Vec3
	target mgl32.Vec3
	up     mgl32.Vec3

	fov  float32
	near float32
	far  float32

	worldWidth  float32
	worldHeight float32

	viewportWidth  float32
	viewportHeight float32

	viewMatrix                  mgl32.Mat4
	projectionMatrix            mgl32.Mat4
	viewProjectionMatrix        mgl32.Mat4
	inverseViewProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for the console camera.
// The camera looks from an eye point at a target and converts viewport pixel
// coordinates into world-space rays for picking. Matrices are recomputed whenever
// a parameter changes. Thread-safe for concurrent access.
type Camera interface {
	// Projection returns the projection mode.
	Projection() Projection

	// Eye returns the camera position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye point
	Eye() mgl32.Vec3

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at target
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians (perspective only).
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Viewport returns the viewport size in pixels.
	//
	// Returns:
	//   - width, height: the viewport size
	Viewport() (width, height float32)

	// Extents returns the half width and half height of the visible world rectangle
	// (orthographic only) after fitting it to the viewport aspect.
	//
	// Returns:
	//   - halfWidth, halfHeight: the fitted half extents
	Extents() (halfWidth, halfHeight float32)

	// ViewMatrix returns the world-to-view transform.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the view-to-clip transform.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	ViewProjectionMatrix() mgl32.Mat4

	// InverseViewProjectionMatrix returns the clip-to-world transform used for unprojection.
	InverseViewProjectionMatrix() mgl32.Mat4

	// SetEye moves the camera.
	//
	// Parameters:
	//   - eye: the new eye point
	SetEye(eye mgl32.Vec3)

	// SetTarget changes the look-at target.
	//
	// Parameters:
	//   - target: the new target
	SetTarget(target mgl32.Vec3)

	// SetUp changes the up vector.
	//
	// Parameters:
	//   - up: the new up vector
	SetUp(up mgl32.Vec3)

	// SetViewport resizes the viewport. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width, height: the viewport size in pixels
	SetViewport(width, height float32)

	// RayNDC builds a world-space ray through normalized device coordinates.
	//
	// Parameters:
	//   - x, y: NDC coordinates in [-1, 1], y up
	//
	// Returns:
	//   - common.Ray: a ray from the near plane toward the far plane with unit direction
	RayNDC(x, y float32) common.Ray

	// Ray builds a world-space ray through a viewport pixel.
	//
	// Parameters:
	//   - px, py: pixel coordinates, origin top-left
	//
	// Returns:
	//   - common.Ray: the pick ray
	Ray(px, py float32) common.Ray
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with the given options. The default is the console's
// top-down orthographic view: eye at (0,5,0) looking at the origin, screen-up along -Z,
// fitting a 3.4 x 2.1 world rectangle.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:             &sync.Mutex{},
		projection:     ProjectionOrthographic,
		eye:            mgl32.Vec3{0, 5, 0},
		target:         mgl32.Vec3{0, 0, 0},
		up:             mgl32.Vec3{0, 0, -1},
		fov:            45.0 * (math.Pi / 180.0),
		near:           0.1,
		far:            100.0,
		worldWidth:     3.4,
		worldHeight:    2.1,
		viewportWidth:  1,
		viewportHeight: 1,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Viewport() (float32, float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewportWidth, c.viewportHeight
}

func (c *cameraImpl) Extents() (float32, float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extents()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseViewProjectionMatrix
}

func (c *cameraImpl) SetEye(eye mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eye = eye
	c.updateMatrices()
}

func (c *cameraImpl) SetTarget(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewportWidth = width
	c.viewportHeight = height
	c.updateMatrices()
}

func (c *cameraImpl) RayNDC(x, y float32) common.Ray {
	c.mu.Lock()
	inv := c.inverseViewProjectionMatrix
	c.mu.Unlock()

	near := unproject(inv, x, y, -1)
	far := unproject(inv, x, y, 1)
	return common.Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func (c *cameraImpl) Ray(px, py float32) common.Ray {
	w, h := c.Viewport()
	x, y := common.PointerToNDC(px, py, w, h)
	return c.RayNDC(x, y)
}

func unproject(inv mgl32.Mat4, x, y, z float32) mgl32.Vec3 {
	v := inv.Mul4x1(mgl32.Vec4{x, y, z, 1})
	if v[3] == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v[3])
}

// extents fits the world rectangle to the viewport: a viewport wider than the world is
// limited by height, a taller one by width. Caller holds mu.
func (c *cameraImpl) extents() (float32, float32) {
	aspect := c.viewportWidth / c.viewportHeight
	worldAspect := c.worldWidth / c.worldHeight
	if aspect > worldAspect {
		halfH := c.worldHeight / 2
		return halfH * aspect, halfH
	}
	halfW := c.worldWidth / 2
	return halfW, halfW / aspect
}

func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.eye, c.target, c.up)

	switch c.projection {
	case ProjectionPerspective:
		c.projectionMatrix = mgl32.Perspective(c.fov, c.viewportWidth/c.viewportHeight, c.near, c.far)
	default:
		hw, hh := c.extents()
		c.projectionMatrix = mgl32.Ortho(-hw, hw, -hh, hh, c.near, c.far)
	}

	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseViewProjectionMatrix = c.viewProjectionMatrix.Inv()
}
