package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const consoleGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [
    {"name": "Console", "translation": [0, 1, 0], "children": [1, 2, 3]},
    {"name": "Button_A", "mesh": 0, "translation": [0.5, 0.1, 0]},
    {"name": "D-Pad", "mesh": 0, "rotation": [0, 0.7071068, 0, 0.7071068], "scale": [2, 2, 2]},
    {"name": "Light"}
  ],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
  "accessors": [{"componentType": 5126, "count": 8, "type": "VEC3", "min": [-0.1, 0, -0.1], "max": [0.1, 0.05, 0.1]}]
}`

func vec3Buffer(points ...[3]float32) string {
	var buf bytes.Buffer
	for _, p := range points {
		_ = binary.Write(&buf, binary.LittleEndian, p)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestLoadReaderFlattensHierarchy(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)
	nodes, err := l.LoadReader("console", strings.NewReader(consoleGLTF), false)
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	names := []string{nodes[0].Name, nodes[1].Name, nodes[2].Name, nodes[3].Name}
	assert.Equal(t, []string{"Console", "Button_A", "D-Pad", "Light"}, names)

	btn := nodes[1]
	assert.Equal(t, "Console", btn.Parent)
	assert.True(t, btn.HasMesh)
	assert.Equal(t, mgl32.Vec3{0.5, 0.1, 0}, btn.Translation)
	assert.Equal(t, mgl32.Vec3{-0.1, 0, -0.1}, btn.Bounds.Min)
	assert.Equal(t, mgl32.Vec3{0.1, 0.05, 0.1}, btn.Bounds.Max)
	world := mgl32.TransformCoordinate(mgl32.Vec3{}, btn.World())
	assert.True(t, world.ApproxEqualThreshold(mgl32.Vec3{0.5, 1.1, 0}, 1e-6), "got %v", world)

	pad := nodes[2]
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, pad.Scale)
	assert.InDelta(t, 0.7071068, pad.Rotation.W, 1e-6)

	assert.False(t, nodes[3].HasMesh)
	assert.Equal(t, nodes, l.Get("console"))
}

func TestLoadReaderScansVerticesWithoutMinMax(t *testing.T) {
	data := vec3Buffer([3]float32{-1, 0, -2}, [3]float32{1, 0.5, 2}, [3]float32{0, 0.25, 0})
	doc := `{
	  "asset": {"version": "2.0"},
	  "nodes": [{"name": "Joystick", "mesh": 0}],
	  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
	  "accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}],
	  "bufferViews": [{"buffer": 0, "byteLength": 36}],
	  "buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,` + data + `"}]
	}`

	nodes, err := NewLoader(BackendTypeGLTF).LoadReader("joystick", strings.NewReader(doc), false)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, mgl32.Vec3{-1, 0, -2}, nodes[0].Bounds.Min)
	assert.Equal(t, mgl32.Vec3{1, 0.5, 2}, nodes[0].Bounds.Max)
}

func TestMatrixNodeIsDecomposed(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DY(math.Pi / 2)).Mul4(mgl32.Scale3D(2, 3, 4))
	n := gltfNode{Matrix: (*[16]float32)(&m)}

	tr, rot, sc := gltfNodeTRS(&n)
	assert.True(t, tr.ApproxEqualThreshold(mgl32.Vec3{1, 2, 3}, 1e-5))
	assert.True(t, sc.ApproxEqualThreshold(mgl32.Vec3{2, 3, 4}, 1e-5))
	want := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, 1, math.Abs(float64(rot.Dot(want))), 1e-5)
}

func glb(json string, bin []byte) []byte {
	for len(json)%4 != 0 {
		json += " "
	}
	var out bytes.Buffer
	total := 12 + 8 + len(json)
	if bin != nil {
		total += 8 + len(bin)
	}
	_ = binary.Write(&out, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(total)})
	_ = binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(json)), ChunkType: gltfGLBChunkJSON})
	out.WriteString(json)
	if bin != nil {
		_ = binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN})
		out.Write(bin)
	}
	return out.Bytes()
}

func TestLoadGLBFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.glb")
	require.NoError(t, os.WriteFile(path, glb(consoleGLTF, nil), 0o644))

	l := NewLoader(BackendTypeGLTF)
	nodes, err := l.Load(path)
	require.NoError(t, err)
	assert.Len(t, nodes, 4)

	again, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, nodes, again)
}

func TestLoadErrors(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)

	_, err := l.LoadReader("v1", strings.NewReader(`{"asset": {"version": "1.0"}}`), false)
	assert.ErrorIs(t, err, ErrInvalidGLTFVersion)

	bad := glb(consoleGLTF, nil)
	bad[0] = 'X'
	_, err = l.LoadReader("magic", bytes.NewReader(bad), true)
	assert.ErrorIs(t, err, ErrInvalidGLBMagic)

	_, err = l.Load(filepath.Join(t.TempDir(), "console.obj"))
	assert.Error(t, err)

	_, err = l.LoadReader("missing", strings.NewReader(`{"asset": {"version": "2.0"}, "scenes": [{"nodes": [5]}]}`), false)
	assert.Error(t, err)

	assert.Nil(t, l.Get("v1"))
}

func TestWithNodesPrepopulatesCache(t *testing.T) {
	l := NewLoader(BackendTypeGLTF, WithNodes("layout", []Node{{Name: "Button_A"}}))
	nodes, err := l.Load("layout")
	require.NoError(t, err)
	assert.Equal(t, "Button_A", nodes[0].Name)
}
