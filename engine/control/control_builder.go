package control

import (
	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ControlBuilderOption is a functional option for configuring a Control during construction.
type ControlBuilderOption func(*controlImpl)

// WithPosition sets the rest position of the control relative to its parent.
//
// Parameters:
//   - x, y, z: the rest position
//
// Returns:
//   - ControlBuilderOption: functional option to set the rest position
func WithPosition(x, y, z float32) ControlBuilderOption {
	return func(c *controlImpl) {
		c.rest.Position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the rest orientation of the control relative to its parent.
// A zero quaternion is ignored.
//
// Parameters:
//   - q: the rest orientation
//
// Returns:
//   - ControlBuilderOption: functional option to set the rest rotation
func WithRotation(q mgl32.Quat) ControlBuilderOption {
	return func(c *controlImpl) {
		if q.Len() == 0 {
			return
		}
		c.rest.Rotation = q.Normalize()
	}
}

// WithPose sets the full rest pose of the control.
//
// Parameters:
//   - p: the rest pose
//
// Returns:
//   - ControlBuilderOption: functional option to set the rest pose
func WithPose(p Pose) ControlBuilderOption {
	return func(c *controlImpl) {
		c.rest = NewPose(p.Position, p.Rotation)
	}
}

// WithScale sets the per-axis scale of the control.
//
// Parameters:
//   - sx, sy, sz: scale factors
//
// Returns:
//   - ControlBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) ControlBuilderOption {
	return func(c *controlImpl) {
		c.scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithBounds sets the hit-testable box in the control's local mesh frame.
//
// Parameters:
//   - b: the local bounds
//
// Returns:
//   - ControlBuilderOption: functional option to set the bounds
func WithBounds(b common.AABB) ControlBuilderOption {
	return func(c *controlImpl) {
		c.bounds = b
	}
}

// WithParentTransform sets the parent's local-to-world transform for nested controls.
//
// Parameters:
//   - m: the parent transform
//
// Returns:
//   - ControlBuilderOption: functional option to set the parent transform
func WithParentTransform(m mgl32.Mat4) ControlBuilderOption {
	return func(c *controlImpl) {
		c.parent = m
	}
}
