package animator

// AnimatorBuilderOption is a functional option for configuring an Animator.
type AnimatorBuilderOption func(*animatorImpl)

// WithDamping replaces the damping constants.
//
// Parameters:
//   - d: the damping constants
//
// Returns:
//   - AnimatorBuilderOption: option function to apply
func WithDamping(d Damping) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.damping = d
	}
}

// WithJoystick attaches the drag state that selects between the joystick's drag and
// return-to-rest constants.
//
// Parameters:
//   - s: the joystick drag state
//
// Returns:
//   - AnimatorBuilderOption: option function to apply
func WithJoystick(s DragState) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.joystick = s
	}
}
