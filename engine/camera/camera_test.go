package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestOrthoExtentsFitAspect(t *testing.T) {
	tests := []struct {
		name         string
		w, h         float32
		wantW, wantH float32
	}{
		{name: "wide viewport limited by height", w: 2000, h: 500, wantW: 1.05 * 4, wantH: 1.05},
		{name: "tall viewport limited by width", w: 500, h: 1000, wantW: 1.7, wantH: 3.4},
		{name: "matching aspect", w: 340, h: 210, wantW: 1.7, wantH: 1.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(WithViewport(tt.w, tt.h))
			hw, hh := c.Extents()
			assert.InDelta(t, tt.wantW, hw, 1e-5)
			assert.InDelta(t, tt.wantH, hh, 1e-5)
		})
	}
}

func TestOrthoRayThroughCenterLooksDown(t *testing.T) {
	c := NewCamera(WithViewport(800, 600))
	r := c.Ray(400, 300)
	assert.True(t, r.Direction.ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, 1e-5), "dir %v", r.Direction)
	assert.InDelta(t, 0, r.Origin.X(), 1e-5)
	assert.InDelta(t, 0, r.Origin.Z(), 1e-5)
	assert.InDelta(t, 4.9, r.Origin.Y(), 1e-4)
}

func TestOrthoRayCornersMapToWorldRectangle(t *testing.T) {
	c := NewCamera(WithViewport(800, 600))
	hw, hh := c.Extents()

	topLeft := c.Ray(0, 0)
	assert.InDelta(t, -hw, topLeft.Origin.X(), 1e-4)
	assert.InDelta(t, -hh, topLeft.Origin.Z(), 1e-4, "screen top is -Z")

	bottomRight := c.Ray(800, 600)
	assert.InDelta(t, hw, bottomRight.Origin.X(), 1e-4)
	assert.InDelta(t, hh, bottomRight.Origin.Z(), 1e-4)

	assert.True(t, topLeft.Direction.ApproxEqualThreshold(bottomRight.Direction, 1e-5), "orthographic rays are parallel")
}

func TestPerspectiveRays(t *testing.T) {
	c := NewCamera(WithProjection(ProjectionPerspective), WithViewport(800, 600))
	center := c.Ray(400, 300)
	assert.True(t, center.Direction.ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, 1e-5))

	corner := c.Ray(0, 0)
	assert.InDelta(t, 1, corner.Direction.Len(), 1e-5)
	assert.Less(t, corner.Direction.X(), float32(0))
	assert.Less(t, corner.Direction.Z(), float32(0))
}

func TestSetViewportIgnoresDegenerateSizes(t *testing.T) {
	c := NewCamera(WithViewport(800, 600))
	c.SetViewport(0, 600)
	w, h := c.Viewport()
	assert.Equal(t, float32(800), w)
	assert.Equal(t, float32(600), h)

	c.SetViewport(1024, 768)
	w, h = c.Viewport()
	assert.Equal(t, float32(1024), w)
	assert.Equal(t, float32(768), h)
}

func TestSetEyeUpdatesMatrices(t *testing.T) {
	c := NewCamera(WithViewport(800, 600))
	before := c.ViewMatrix()
	c.SetEye(mgl32.Vec3{1, 5, 0})
	c.SetTarget(mgl32.Vec3{1, 0, 0})
	assert.NotEqual(t, before, c.ViewMatrix())

	r := c.Ray(400, 300)
	assert.InDelta(t, 1, r.Origin.X(), 1e-5)
	assert.Equal(t, c.ProjectionMatrix().Mul4(c.ViewMatrix()), c.ViewProjectionMatrix())
	assert.Equal(t, ProjectionOrthographic, c.Projection())
}
