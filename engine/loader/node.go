package loader

import (
	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Node is a named element of a loaded model's hierarchy, flattened so that callers can
// classify it without walking the scene graph themselves.
type Node struct {
	// Name is the node name as authored, e.g. "Button_A".
	Name string

	// Index is the node's index in the source document.
	Index int

	// Parent is the name of the parent node, empty for scene roots.
	Parent string

	// Translation, Rotation and Scale are the node's local TRS relative to its parent.
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3

	// ParentWorld is the accumulated local-to-world transform of the node's parent.
	ParentWorld mgl32.Mat4

	// Bounds is the union of the node's mesh primitive POSITION bounds in the node's local frame.
	// Empty when HasMesh is false.
	Bounds common.AABB

	// HasMesh reports whether the node references a mesh.
	HasMesh bool
}

// Local returns the node's local transform T * R * S.
//
// Returns:
//   - mgl32.Mat4: the local transform
func (n Node) Local() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2])
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(n.Rotation.Mat4()).Mul4(s)
}

// World returns the node's local-to-world transform.
//
// Returns:
//   - mgl32.Mat4: ParentWorld * Local
func (n Node) World() mgl32.Mat4 {
	return n.ParentWorld.Mul4(n.Local())
}
