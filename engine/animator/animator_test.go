package animator

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource []control.Control

func (s staticSource) All() []control.Control { return s }

type dragFlag bool

func (d *dragFlag) Dragging() bool { return bool(*d) }

func TestButtonConvergesMonotonically(t *testing.T) {
	b := control.NewControl("Button_A", control.KindButton, control.WithPosition(0, 0.10, 0))
	b.SetTargetPosition(mgl32.Vec3{0, 0.07, 0})
	a := NewAnimator(staticSource{b})

	prev := common.Abs(b.CurrentPose().Position.Y() - 0.07)
	for i := 0; i < 50; i++ {
		a.Step()
		d := common.Abs(b.CurrentPose().Position.Y() - 0.07)
		require.LessOrEqual(t, d, prev, "step %d", i)
		prev = d
	}
	assert.InDelta(t, 0.07, b.CurrentPose().Position.Y(), 1e-6)
	assert.Equal(t, uint64(50), a.Steps())
}

func TestFirstStepClosesFixedFraction(t *testing.T) {
	b := control.NewControl("Button_A", control.KindButton, control.WithPosition(0, 0.10, 0))
	b.SetTargetPosition(mgl32.Vec3{0, 0.07, 0})
	NewAnimator(staticSource{b}).Step()
	assert.InDelta(t, 0.10-0.03*0.6, b.CurrentPose().Position.Y(), 1e-7)
}

func TestPadRotationEasesWithOwnConstant(t *testing.T) {
	pad := control.NewControl("D-Pad", control.KindPad)
	tilt := mgl32.QuatRotate(0.1, mgl32.Vec3{1, 0, 0})
	pad.SetTargetRotation(tilt)

	a := NewAnimator(staticSource{pad})
	a.Step()
	angle := 2 * math.Acos(math.Min(1, float64(pad.CurrentPose().Rotation.W)))
	assert.InDelta(t, 0.1*0.25, angle, 1e-4)

	for i := 0; i < 200; i++ {
		a.Step()
	}
	assert.True(t, pad.CurrentPose().ApproxEqual(pad.TargetPose(), 1e-5))
}

func TestJoystickUsesDragAndReturnConstants(t *testing.T) {
	joy := control.NewControl("Joystick", control.KindJoystick)
	dragging := dragFlag(true)
	a := NewAnimator(staticSource{joy}, WithJoystick(&dragging))

	joy.SetTargetPosition(mgl32.Vec3{0.1, 0, 0})
	a.Step()
	assert.InDelta(t, 0.1, joy.CurrentPose().Position.X(), 1e-7, "drag follows the pointer")

	dragging = false
	joy.ResetTarget()
	a.Step()
	assert.InDelta(t, 0.1*(1-0.2), joy.CurrentPose().Position.X(), 1e-7, "release eases back slowly")
}

func TestCustomDampingAndNilSafety(t *testing.T) {
	d := DefaultDamping()
	d.Button = 1
	b := control.NewControl("Button_B", control.KindButton)
	b.SetTargetPosition(mgl32.Vec3{0, -0.03, 0})

	a := NewAnimator(staticSource{nil, b}, WithDamping(d))
	a.Step()
	assert.Equal(t, mgl32.Vec3{0, -0.03, 0}, b.CurrentPose().Position)
	assert.Equal(t, float32(1), a.Damping().Button)

	NewAnimator(nil).Step()
	a.StepControl(nil)
}

func TestAtRestStaysAtRest(t *testing.T) {
	rot := mgl32.QuatRotate(0.7, mgl32.Vec3{0, 1, 0})
	b := control.NewControl("Button_A", control.KindButton, control.WithPosition(1, 2, 3), control.WithRotation(rot))
	a := NewAnimator(staticSource{b})
	for i := 0; i < 10; i++ {
		a.Step()
	}
	assert.True(t, b.CurrentPose().ApproxEqual(b.RestPose(), 1e-6))
}
