package resolver

import (
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/Carmen-Shannon/oxy-console/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Default travel of pressed controls.
const (
	DefaultButtonPressDepth float32 = 0.03
	DefaultPadPressDepth    float32 = 0.05
	DefaultPadTilt          float32 = 0.1
)

type resolverImpl struct {
	buttonPressDepth float32
	padPressDepth    float32
	padTilt          float32
	logger           *zap.Logger
}

// Resolver turns presses on buttons and the pad into target poses and the events they represent.
// Every method is a no-op on a nil control or a control of the wrong kind.
type Resolver interface {
	// PressButton lowers the button's target below its rest position by the press depth.
	//
	// Parameters:
	//   - c: the pressed button
	//
	// Returns:
	//   - input.Event: the pressed event carrying the button's name
	//   - bool: false if nothing was pressed
	PressButton(c control.Control) (input.Event, bool)

	// ReleaseButton returns the button's target to its rest position.
	//
	// Parameters:
	//   - c: the released button
	//
	// Returns:
	//   - input.Event: the released event carrying the button's name
	//   - bool: false if nothing was released
	ReleaseButton(c control.Control) (input.Event, bool)

	// PressPad classifies a local hit point into a quadrant and presses the pad toward it.
	//
	// Parameters:
	//   - c: the pad
	//   - local: the hit point in the pad's local frame
	//
	// Returns:
	//   - input.Event: the dpad_* event
	//   - bool: false if nothing was pressed
	PressPad(c control.Control, local mgl32.Vec3) (input.Event, bool)

	// PressPadDirection tilts and lowers the pad toward a direction.
	//
	// Parameters:
	//   - c: the pad
	//   - dir: the pressed direction
	//
	// Returns:
	//   - input.Event: the dpad_* event
	//   - bool: false if nothing was pressed
	PressPadDirection(c control.Control, dir input.Direction) (input.Event, bool)

	// ReleasePad restores the pad's rest pose exactly, whichever quadrant was pressed.
	//
	// Parameters:
	//   - c: the pad
	ReleasePad(c control.Control)
}

var _ Resolver = &resolverImpl{}

// NewResolver creates a resolver with default travel, adjusted by options.
//
// Parameters:
//   - options: functional options to configure the resolver
//
// Returns:
//   - Resolver: the resolver
func NewResolver(options ...ResolverBuilderOption) Resolver {
	r := &resolverImpl{
		buttonPressDepth: DefaultButtonPressDepth,
		padPressDepth:    DefaultPadPressDepth,
		padTilt:          DefaultPadTilt,
		logger:           zap.NewNop(),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *resolverImpl) PressButton(c control.Control) (input.Event, bool) {
	if !isKind(c, control.KindButton) {
		return input.Event{}, false
	}
	rest := c.RestPose().Position
	c.SetTargetPosition(mgl32.Vec3{rest[0], rest[1] - r.buttonPressDepth, rest[2]})
	return input.ButtonEvent(c.Name(), input.PhasePressed), true
}

func (r *resolverImpl) ReleaseButton(c control.Control) (input.Event, bool) {
	if !isKind(c, control.KindButton) {
		return input.Event{}, false
	}
	c.SetTargetPosition(c.RestPose().Position)
	return input.ButtonEvent(c.Name(), input.PhaseReleased), true
}

func (r *resolverImpl) PressPad(c control.Control, local mgl32.Vec3) (input.Event, bool) {
	if !isKind(c, control.KindPad) {
		return input.Event{}, false
	}
	dir := input.DirectionFromPlanar(local.X(), local.Z())
	r.logger.Debug("pad quadrant", zap.Stringer("direction", dir), zap.Float32("x", local.X()), zap.Float32("z", local.Z()))
	return r.PressPadDirection(c, dir)
}

func (r *resolverImpl) PressPadDirection(c control.Control, dir input.Direction) (input.Event, bool) {
	if !isKind(c, control.KindPad) {
		return input.Event{}, false
	}
	rest := c.RestPose()
	tilt := PadTilt(dir, r.padTilt)
	c.SetTargetPose(control.Pose{
		Position: mgl32.Vec3{rest.Position[0], rest.Position[1] - r.padPressDepth, rest.Position[2]},
		Rotation: rest.Rotation.Mul(tilt).Normalize(),
	})
	return input.ActionEvent(input.PadAction(dir)), true
}

func (r *resolverImpl) ReleasePad(c control.Control) {
	if !isKind(c, control.KindPad) {
		return
	}
	c.ResetTarget()
}

// PadTilt returns the local tilt for a pad direction: right and left roll about Z,
// up and down pitch about X.
//
// Parameters:
//   - dir: the pressed direction
//   - angle: the tilt magnitude in radians
//
// Returns:
//   - mgl32.Quat: the tilt rotation in the pad's local frame
func PadTilt(dir input.Direction, angle float32) mgl32.Quat {
	switch dir {
	case input.DirectionRight:
		return mgl32.QuatRotate(-angle, mgl32.Vec3{0, 0, 1})
	case input.DirectionLeft:
		return mgl32.QuatRotate(angle, mgl32.Vec3{0, 0, 1})
	case input.DirectionUp:
		return mgl32.QuatRotate(angle, mgl32.Vec3{1, 0, 0})
	case input.DirectionDown:
		return mgl32.QuatRotate(-angle, mgl32.Vec3{1, 0, 0})
	default:
		return mgl32.QuatIdent()
	}
}

func isKind(c control.Control, k control.Kind) bool {
	return c != nil && c.Kind() == k
}
