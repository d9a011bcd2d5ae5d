package control

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies the interactive role a control plays on the console.
type Kind int

const (
	// KindButton is a push button that travels down along its local Y axis when pressed.
	KindButton Kind = iota
	// KindPad is the directional pad, which tilts toward the pressed quadrant.
	KindPad
	// KindJoystick is the analog stick, which is dragged within a circular bound.
	KindJoystick
)

// String returns the lower-case role name.
func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindPad:
		return "pad"
	case KindJoystick:
		return "joystick"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type controlImpl struct {
	name  string
	kind  Kind
	scale mgl32.Vec3

	bounds common.AABB
	parent mgl32.Mat4

	rest    Pose
	current Pose
	target  Pose
}

// Control defines the interface for a named, positionable 3D element of the console.
// The rest pose is captured once at construction and never changes. The current pose
// is written by the animator each frame; the target pose is written by input handlers.
type Control interface {
	// Name returns the control's unique name, e.g. "Button_A".
	//
	// Returns:
	//   - string: the control name
	Name() string

	// Kind returns the control's role.
	//
	// Returns:
	//   - Kind: button, pad, or joystick
	Kind() Kind

	// RestPose returns the immutable pose captured when the control was created.
	//
	// Returns:
	//   - Pose: the rest pose
	RestPose() Pose

	// CurrentPose returns the pose the control is currently displayed at.
	//
	// Returns:
	//   - Pose: the current pose
	CurrentPose() Pose

	// TargetPose returns the pose the control is easing toward.
	//
	// Returns:
	//   - Pose: the target pose
	TargetPose() Pose

	// SetCurrentPose replaces the displayed pose. Only the animator calls this.
	//
	// Parameters:
	//   - p: the new current pose
	SetCurrentPose(p Pose)

	// SetTargetPose replaces the whole target pose.
	//
	// Parameters:
	//   - p: the new target pose
	SetTargetPose(p Pose)

	// SetTargetPosition replaces the target position, keeping the target rotation.
	//
	// Parameters:
	//   - position: the new target position
	SetTargetPosition(position mgl32.Vec3)

	// SetTargetRotation replaces the target rotation, keeping the target position.
	//
	// Parameters:
	//   - rotation: the new target rotation
	SetTargetRotation(rotation mgl32.Quat)

	// ResetTarget sets the target pose back to the rest pose exactly.
	ResetTarget()

	// Scale returns the control's per-axis scale.
	//
	// Returns:
	//   - mgl32.Vec3: the scale factors
	Scale() mgl32.Vec3

	// Bounds returns the hit-testable box in the control's local mesh frame.
	//
	// Returns:
	//   - common.AABB: the local bounds
	Bounds() common.AABB

	// ParentTransform returns the parent's local-to-world transform.
	//
	// Returns:
	//   - mgl32.Mat4: the parent transform (identity for root-level controls)
	ParentTransform() mgl32.Mat4

	// WorldMatrix returns the current local-to-world transform: parent * T * R * S.
	//
	// Returns:
	//   - mgl32.Mat4: the world transform at the current pose
	WorldMatrix() mgl32.Mat4

	// WorldToLocal maps a world-space point into the control's local frame at its current pose.
	//
	// Parameters:
	//   - p: the world-space point
	//
	// Returns:
	//   - mgl32.Vec3: the point in local coordinates
	WorldToLocal(p mgl32.Vec3) mgl32.Vec3

	// WorldToParent maps a world-space point into the parent frame the poses are expressed in.
	//
	// Parameters:
	//   - p: the world-space point
	//
	// Returns:
	//   - mgl32.Vec3: the point in parent coordinates
	WorldToParent(p mgl32.Vec3) mgl32.Vec3
}

var _ Control = &controlImpl{}

// NewControl creates a new Control configured with the given options.
// The rest, current, and target poses all start equal to the configured pose.
//
// Parameters:
//   - name: the control's unique name
//   - kind: the control's role
//   - options: functional options to configure the control
//
// Returns:
//   - Control: the newly created control
func NewControl(name string, kind Kind, options ...ControlBuilderOption) Control {
	c := &controlImpl{
		name:   name,
		kind:   kind,
		scale:  mgl32.Vec3{1, 1, 1},
		parent: mgl32.Ident4(),
		rest:   IdentityPose(),
	}
	for _, option := range options {
		option(c)
	}
	c.current = c.rest
	c.target = c.rest
	return c
}

func (c *controlImpl) Name() string {
	return c.name
}

func (c *controlImpl) Kind() Kind {
	return c.kind
}

func (c *controlImpl) RestPose() Pose {
	return c.rest
}

func (c *controlImpl) CurrentPose() Pose {
	return c.current
}

func (c *controlImpl) TargetPose() Pose {
	return c.target
}

func (c *controlImpl) SetCurrentPose(p Pose) {
	c.current = p
}

func (c *controlImpl) SetTargetPose(p Pose) {
	c.target = p
}

func (c *controlImpl) SetTargetPosition(position mgl32.Vec3) {
	c.target.Position = position
}

func (c *controlImpl) SetTargetRotation(rotation mgl32.Quat) {
	c.target.Rotation = rotation
}

func (c *controlImpl) ResetTarget() {
	c.target = c.rest
}

func (c *controlImpl) Scale() mgl32.Vec3 {
	return c.scale
}

func (c *controlImpl) Bounds() common.AABB {
	return c.bounds
}

func (c *controlImpl) ParentTransform() mgl32.Mat4 {
	return c.parent
}

func (c *controlImpl) WorldMatrix() mgl32.Mat4 {
	return c.parent.Mul4(c.current.Matrix(c.scale))
}

func (c *controlImpl) WorldToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, c.WorldMatrix().Inv())
}

func (c *controlImpl) WorldToParent(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, c.parent.Inv())
}
