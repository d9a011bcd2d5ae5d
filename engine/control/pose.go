package control

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is the position and orientation of a control relative to its parent.
// Partial updates (position-only for buttons, rotation-only for tilts) are made
// with WithPosition and WithRotation so the untouched half is carried over.
type Pose struct {
	// Position is the translation relative to the parent frame.
	Position mgl32.Vec3

	// Rotation is the orientation relative to the parent frame (unit quaternion).
	Rotation mgl32.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
//
// Returns:
//   - Pose: the identity pose
func IdentityPose() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}

// NewPose creates a pose from a position and an orientation.
// A zero quaternion is replaced by the identity rotation.
//
// Parameters:
//   - position: translation relative to the parent frame
//   - rotation: orientation relative to the parent frame
//
// Returns:
//   - Pose: the new pose
func NewPose(position mgl32.Vec3, rotation mgl32.Quat) Pose {
	if rotation.Len() == 0 {
		rotation = mgl32.QuatIdent()
	}
	return Pose{Position: position, Rotation: rotation.Normalize()}
}

// WithPosition returns a copy of the pose with its position replaced.
//
// Parameters:
//   - position: the new position
//
// Returns:
//   - Pose: the modified copy
func (p Pose) WithPosition(position mgl32.Vec3) Pose {
	p.Position = position
	return p
}

// WithRotation returns a copy of the pose with its orientation replaced.
//
// Parameters:
//   - rotation: the new orientation
//
// Returns:
//   - Pose: the modified copy
func (p Pose) WithRotation(rotation mgl32.Quat) Pose {
	p.Rotation = rotation
	return p
}

// Matrix builds the local transform T * R * S for this pose.
//
// Parameters:
//   - scale: the per-axis scale of the control
//
// Returns:
//   - mgl32.Mat4: the local transform
func (p Pose) Matrix(scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2])
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(p.Rotation.Mat4()).Mul4(s)
}

// ApproxEqual reports whether two poses match within eps on every position component
// and on every quaternion component (sign-insensitive).
//
// Parameters:
//   - o: the pose to compare against
//   - eps: absolute tolerance
//
// Returns:
//   - bool: true if the poses are within tolerance
func (p Pose) ApproxEqual(o Pose, eps float32) bool {
	for i := 0; i < 3; i++ {
		if abs(p.Position[i]-o.Position[i]) > eps {
			return false
		}
	}
	return abs(abs(p.Rotation.Dot(o.Rotation))-1) <= eps
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
