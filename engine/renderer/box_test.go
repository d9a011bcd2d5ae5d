package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}

func TestCubeVerticesSpanUnitCube(t *testing.T) {
	buf := cubeVertices()
	require.Len(t, buf, boxVertexCount*boxVertexSize)

	for i := 0; i < boxVertexCount; i++ {
		base := i * boxVertexSize
		var onFace bool
		for k := 0; k < 3; k++ {
			p := floatAt(buf, base+k*4)
			n := floatAt(buf, base+12+k*4)
			assert.LessOrEqual(t, common.Abs(p), float32(0.5))
			if n != 0 {
				// Each vertex lies on the face its normal points out of.
				assert.InDelta(t, n*0.5, p, 1e-6)
				onFace = true
			}
		}
		assert.True(t, onFace, "vertex %d has no normal", i)
	}
}

func TestOrientedBoxMapsUnitCubeOntoBounds(t *testing.T) {
	world := mgl32.Translate3D(1, 2, 3)
	bounds := common.NewAABB(mgl32.Vec3{-0.2, 0, -0.1}, mgl32.Vec3{0.2, 0.1, 0.1})

	box, ok := OrientedBox(world, bounds, Color{R: 1, A: 1})
	require.True(t, ok)

	lo := box.Model.Mul4x1(mgl32.Vec4{-0.5, -0.5, -0.5, 1}).Vec3()
	hi := box.Model.Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1}).Vec3()
	assert.True(t, lo.ApproxEqualThreshold(mgl32.Vec3{0.8, 2, 2.9}, 1e-5), "lo = %v", lo)
	assert.True(t, hi.ApproxEqualThreshold(mgl32.Vec3{1.2, 2.1, 3.1}, 1e-5), "hi = %v", hi)

	_, ok = OrientedBox(world, common.AABB{}, Color{})
	assert.False(t, ok)
}

func TestControlBoxFollowsCurrentPose(t *testing.T) {
	bounds := common.NewAABB(mgl32.Vec3{-0.1, -0.02, -0.1}, mgl32.Vec3{0.1, 0.02, 0.1})
	c := control.NewControl("Button_A", control.KindButton, control.WithPosition(0, 0.1, 0), control.WithBounds(bounds))

	pose := c.CurrentPose()
	pose.Position = mgl32.Vec3{0, 0.07, 0}
	c.SetCurrentPose(pose)

	box, ok := ControlBox(c, Color{G: 1, A: 1})
	require.True(t, ok)
	center := box.Model.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assert.InDelta(t, 0.07, center.Y(), 1e-6)
}

func TestEncodeBoxesLayout(t *testing.T) {
	boxes := []Box{
		{Model: mgl32.Ident4(), Color: Color{R: 0.25, G: 0.5, B: 0.75, A: 1}},
		{Model: mgl32.Translate3D(4, 5, 6), Color: Color{A: 0.5}},
	}
	buf := encodeBoxes(boxes)
	require.Len(t, buf, 2*boxInstanceSize)

	assert.Equal(t, float32(1), floatAt(buf, 0))
	assert.Equal(t, float32(0.25), floatAt(buf, 64))
	assert.Equal(t, float32(0.75), floatAt(buf, 72))

	// Column-major: translation is the fourth column.
	second := boxInstanceSize
	assert.Equal(t, float32(4), floatAt(buf, second+48))
	assert.Equal(t, float32(5), floatAt(buf, second+52))
	assert.Equal(t, float32(6), floatAt(buf, second+56))
	assert.Equal(t, float32(0.5), floatAt(buf, second+76))

	assert.Len(t, encodeMat4(mgl32.Ident4()), 64)
}
