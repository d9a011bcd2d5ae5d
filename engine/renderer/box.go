package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed assets/box.wgsl
var boxShaderSource string

const (
	// boxVertexSize is position (vec3) + normal (vec3).
	boxVertexSize = 24
	// boxInstanceSize is the model matrix (4 x vec4) + color (vec4).
	boxInstanceSize = 80
	// boxVertexCount is six faces of two triangles each.
	boxVertexCount = 36
)

// Box is one shaded unit cube drawn by the box pass. Model maps the cube
// [-0.5, 0.5]^3 into world space.
type Box struct {
	Model mgl32.Mat4
	Color Color
}

// OrientedBox builds the Box covering a local-space AABB placed by world.
//
// Parameters:
//   - world: the local-to-world transform
//   - bounds: the box in the local frame
//   - color: the fill color
//
// Returns:
//   - Box: the box, with a zero Model if bounds is empty
//   - bool: false if bounds is empty
func OrientedBox(world mgl32.Mat4, bounds common.AABB, color Color) (Box, bool) {
	if bounds.Empty() {
		return Box{}, false
	}
	center := bounds.Center()
	size := bounds.Size()
	model := world.
		Mul4(mgl32.Translate3D(center.X(), center.Y(), center.Z())).
		Mul4(mgl32.Scale3D(size.X(), size.Y(), size.Z()))
	return Box{Model: model, Color: color}, true
}

// ControlBox builds the Box for a control's bounds at its current pose.
//
// Parameters:
//   - c: the control
//   - color: the fill color
//
// Returns:
//   - Box: the box
//   - bool: false if the control has no bounds
func ControlBox(c control.Control, color Color) (Box, bool) {
	return OrientedBox(c.WorldMatrix(), c.Bounds(), color)
}

func putFloat(buf []byte, offset int, v float32) {
	binary.LittleEndian.PutUint32(buf[offset:offset+4], math.Float32bits(v))
}

// encodeMat4 writes m column-major, matching WGSL mat4x4<f32> layout.
func encodeMat4(m mgl32.Mat4) []byte {
	buf := make([]byte, 64)
	for i, v := range m {
		putFloat(buf, i*4, v)
	}
	return buf
}

// encodeBoxes packs the per-instance vertex stream.
func encodeBoxes(boxes []Box) []byte {
	buf := make([]byte, len(boxes)*boxInstanceSize)
	for i, b := range boxes {
		base := i * boxInstanceSize
		for j, v := range b.Model {
			putFloat(buf, base+j*4, v)
		}
		putFloat(buf, base+64, float32(b.Color.R))
		putFloat(buf, base+68, float32(b.Color.G))
		putFloat(buf, base+72, float32(b.Color.B))
		putFloat(buf, base+76, float32(b.Color.A))
	}
	return buf
}

// cubeVertices returns the non-indexed unit cube with flat face normals.
func cubeVertices() []byte {
	type face struct {
		normal mgl32.Vec3
		u, v   mgl32.Vec3
	}
	faces := []face{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
	}
	corners := [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, -1}, {1, 1}, {-1, 1}}

	buf := make([]byte, 0, boxVertexCount*boxVertexSize)
	vert := make([]byte, boxVertexSize)
	for _, f := range faces {
		for _, c := range corners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(0.5)
			for k := 0; k < 3; k++ {
				putFloat(vert, k*4, p[k])
				putFloat(vert, 12+k*4, f.normal[k])
			}
			buf = append(buf, vert...)
		}
	}
	return buf
}
