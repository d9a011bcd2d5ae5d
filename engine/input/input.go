package input

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-console/common"
)

// Phase distinguishes the two edges of a button interaction.
type Phase int

const (
	// PhaseNone marks an event that has no press/release edge (pad and joystick directions).
	PhaseNone Phase = iota
	// PhasePressed marks the moment a button goes down.
	PhasePressed
	// PhaseReleased marks the moment a button comes back up.
	PhaseReleased
)

func (p Phase) String() string {
	switch p {
	case PhasePressed:
		return "pressed"
	case PhaseReleased:
		return "released"
	default:
		return "none"
	}
}

// Direction is one of the four planar directions the pad and joystick resolve to.
type Direction int

const (
	DirectionRight Direction = iota
	DirectionLeft
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionLeft:
		return "left"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// DirectionFromPlanar classifies a planar offset into a direction by dominant axis.
// The horizontal axis wins ties, so a perfect diagonal resolves to left or right.
// Positive z is up.
//
// Parameters:
//   - x: the horizontal component
//   - z: the depth component
//
// Returns:
//   - Direction: the dominant direction
func DirectionFromPlanar(x, z float32) Direction {
	if common.Abs(x) >= common.Abs(z) {
		if x > 0 {
			return DirectionRight
		}
		return DirectionLeft
	}
	if z > 0 {
		return DirectionUp
	}
	return DirectionDown
}

// Action names. Button actions are the control names themselves.
const (
	ActionDpadRight     = "dpad_right"
	ActionDpadLeft      = "dpad_left"
	ActionDpadUp        = "dpad_up"
	ActionDpadDown      = "dpad_down"
	ActionJoystickRight = "joystick_right"
	ActionJoystickLeft  = "joystick_left"
	ActionJoystickUp    = "joystick_up"
	ActionJoystickDown  = "joystick_down"
)

// PadAction returns the action name for a pad press in the given direction.
//
// Parameters:
//   - d: the pad direction
//
// Returns:
//   - string: one of the dpad_* action names
func PadAction(d Direction) string {
	return "dpad_" + d.String()
}

// JoystickAction returns the action name for a joystick push in the given direction.
//
// Parameters:
//   - d: the joystick direction
//
// Returns:
//   - string: one of the joystick_* action names
func JoystickAction(d Direction) string {
	return "joystick_" + d.String()
}

// Event is a named user intent produced by the interaction layer.
type Event struct {
	// Name is a button name (e.g. "Button_A"), a dpad_* action, or a joystick_* action.
	Name string
	// Phase is set for button events only.
	Phase Phase
}

// ButtonEvent builds a button event for the given control name and phase.
func ButtonEvent(name string, phase Phase) Event {
	return Event{Name: name, Phase: phase}
}

// ActionEvent builds a phase-less directional event.
func ActionEvent(name string) Event {
	return Event{Name: name}
}

func (e Event) String() string {
	if e.Phase == PhaseNone {
		return e.Name
	}
	return e.Name + ":" + e.Phase.String()
}
