package animator

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
)

// Damping is the fraction of the remaining distance to target closed per step.
// Every constant must lie in (0, 1].
type Damping struct {
	Button         float32 `yaml:"button"`
	ButtonRotation float32 `yaml:"button_rotation"`
	PadPosition    float32 `yaml:"pad_position"`
	PadRotation    float32 `yaml:"pad_rotation"`
	JoystickReturn float32 `yaml:"joystick_return"`
	JoystickDrag   float32 `yaml:"joystick_drag"`
	JoystickRotate float32 `yaml:"joystick_rotation"`
}

// DefaultDamping returns the console's stock damping constants.
//
// Returns:
//   - Damping: the defaults
func DefaultDamping() Damping {
	return Damping{
		Button:         0.6,
		ButtonRotation: 0.25,
		PadPosition:    0.6,
		PadRotation:    0.25,
		JoystickReturn: 0.2,
		JoystickDrag:   1.0,
		JoystickRotate: 0.25,
	}
}

// Source lists the controls the animator eases. scene.Scene satisfies it.
type Source interface {
	All() []control.Control
}

// DragState reports whether the joystick is currently held. joystick.Tracker satisfies it.
type DragState interface {
	Dragging() bool
}

type animatorImpl struct {
	mu *sync.Mutex

	source   Source
	joystick DragState
	damping  Damping
	steps    uint64
}

// Animator eases every control's current pose toward its target pose once per frame.
// Positions close a fixed fraction of the remaining distance per step; orientations
// slerp along the shortest arc with their own constant. It never snaps: after
// initialization the current pose only changes through Step.
type Animator interface {
	// Step advances every control by one frame.
	Step()

	// StepControl advances a single control by one frame.
	//
	// Parameters:
	//   - c: the control to advance
	StepControl(c control.Control)

	// Steps returns the number of frames stepped so far.
	Steps() uint64

	// Damping returns the active damping constants.
	Damping() Damping
}

var _ Animator = &animatorImpl{}

// NewAnimator creates an animator over the given control source.
//
// Parameters:
//   - source: the controls to animate
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the animator
func NewAnimator(source Source, options ...AnimatorBuilderOption) Animator {
	a := &animatorImpl{
		mu:      &sync.Mutex{},
		source:  source,
		damping: DefaultDamping(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *animatorImpl) Step() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.source != nil {
		for _, c := range a.source.All() {
			a.stepControl(c)
		}
	}
	a.steps++
}

func (a *animatorImpl) StepControl(c control.Control) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stepControl(c)
}

func (a *animatorImpl) Steps() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.steps
}

func (a *animatorImpl) Damping() Damping {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.damping
}

func (a *animatorImpl) stepControl(c control.Control) {
	if c == nil {
		return
	}
	kPos, kRot := a.constants(c.Kind())

	cur := c.CurrentPose()
	tgt := c.TargetPose()
	c.SetCurrentPose(control.Pose{
		Position: common.DampVec3(cur.Position, tgt.Position, kPos),
		Rotation: common.SlerpShortest(cur.Rotation, tgt.Rotation, kRot),
	})
}

func (a *animatorImpl) constants(k control.Kind) (float32, float32) {
	switch k {
	case control.KindPad:
		return a.damping.PadPosition, a.damping.PadRotation
	case control.KindJoystick:
		if a.joystick != nil && a.joystick.Dragging() {
			return a.damping.JoystickDrag, a.damping.JoystickRotate
		}
		return a.damping.JoystickReturn, a.damping.JoystickRotate
	default:
		return a.damping.Button, a.damping.ButtonRotation
	}
}
