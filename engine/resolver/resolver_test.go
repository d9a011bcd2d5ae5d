package resolver

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/Carmen-Shannon/oxy-console/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonPressAndRelease(t *testing.T) {
	r := NewResolver()
	b := control.NewControl("Button_A", control.KindButton, control.WithPosition(0.2, 0.10, -0.3))

	ev, ok := r.PressButton(b)
	require.True(t, ok)
	assert.Equal(t, input.ButtonEvent("Button_A", input.PhasePressed), ev)
	assert.InDelta(t, 0.07, b.TargetPose().Position.Y(), 1e-7)
	assert.Equal(t, float32(0.2), b.TargetPose().Position.X())
	assert.Equal(t, float32(-0.3), b.TargetPose().Position.Z())
	assert.Equal(t, b.RestPose(), b.CurrentPose(), "press only moves the target")

	ev, ok = r.ReleaseButton(b)
	require.True(t, ok)
	assert.Equal(t, input.PhaseReleased, ev.Phase)
	assert.Equal(t, b.RestPose().Position, b.TargetPose().Position)
}

func TestPadQuadrants(t *testing.T) {
	tests := []struct {
		name   string
		local  mgl32.Vec3
		action string
		axis   mgl32.Vec3
		angle  float32
	}{
		{name: "right", local: mgl32.Vec3{0.05, 0, 0.01}, action: input.ActionDpadRight, axis: mgl32.Vec3{0, 0, 1}, angle: -0.1},
		{name: "left", local: mgl32.Vec3{-0.05, 0, 0.01}, action: input.ActionDpadLeft, axis: mgl32.Vec3{0, 0, 1}, angle: 0.1},
		{name: "up", local: mgl32.Vec3{0.01, 0, 0.05}, action: input.ActionDpadUp, axis: mgl32.Vec3{1, 0, 0}, angle: 0.1},
		{name: "down", local: mgl32.Vec3{0.01, 0, -0.05}, action: input.ActionDpadDown, axis: mgl32.Vec3{1, 0, 0}, angle: -0.1},
		{name: "tie goes horizontal", local: mgl32.Vec3{0.02, 0, 0.02}, action: input.ActionDpadRight, axis: mgl32.Vec3{0, 0, 1}, angle: -0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver()
			pad := control.NewControl("D-Pad", control.KindPad, control.WithPosition(0, 0.1, 0))

			ev, ok := r.PressPad(pad, tt.local)
			require.True(t, ok)
			assert.Equal(t, tt.action, ev.Name)
			assert.Equal(t, input.PhaseNone, ev.Phase)

			target := pad.TargetPose()
			assert.InDelta(t, 0.05, target.Position.Y(), 1e-7)
			want := mgl32.QuatRotate(tt.angle, tt.axis)
			assert.InDelta(t, 1, target.Rotation.Dot(want), 1e-6)
		})
	}
}

func TestPadReleaseRevertsExactly(t *testing.T) {
	rest := mgl32.QuatRotate(0.4, mgl32.Vec3{0, 1, 0})
	pad := control.NewControl("D-Pad", control.KindPad, control.WithPosition(0.3, 0.1, 0.2), control.WithRotation(rest))
	r := NewResolver()

	for _, local := range []mgl32.Vec3{{0, 0, 0.05}, {0.05, 0, 0}, {-0.03, 0, -0.04}} {
		_, ok := r.PressPad(pad, local)
		require.True(t, ok)
		assert.NotEqual(t, pad.RestPose(), pad.TargetPose())

		r.ReleasePad(pad)
		assert.Equal(t, pad.RestPose(), pad.TargetPose())
	}
}

func TestPadTiltIsAppliedInLocalFrame(t *testing.T) {
	rest := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	pad := control.NewControl("D-Pad", control.KindPad, control.WithRotation(rest))
	r := NewResolver(WithPadTilt(0.2), WithPadPressDepth(0.01))

	_, ok := r.PressPadDirection(pad, input.DirectionUp)
	require.True(t, ok)
	want := rest.Mul(mgl32.QuatRotate(0.2, mgl32.Vec3{1, 0, 0}))
	assert.InDelta(t, 1, pad.TargetPose().Rotation.Dot(want), 1e-6)
	assert.InDelta(t, -0.01, pad.TargetPose().Position.Y(), 1e-7)
}

func TestMissingOrMismatchedControlsAreNoops(t *testing.T) {
	r := NewResolver()
	_, ok := r.PressButton(nil)
	assert.False(t, ok)
	_, ok = r.ReleaseButton(nil)
	assert.False(t, ok)
	_, ok = r.PressPad(nil, mgl32.Vec3{})
	assert.False(t, ok)
	r.ReleasePad(nil)

	joy := control.NewControl("Joystick", control.KindJoystick)
	_, ok = r.PressButton(joy)
	assert.False(t, ok)
	_, ok = r.PressPad(joy, mgl32.Vec3{1, 0, 0})
	assert.False(t, ok)
	assert.Equal(t, joy.RestPose(), joy.TargetPose())
}

func TestCustomButtonDepth(t *testing.T) {
	r := NewResolver(WithButtonPressDepth(0.05))
	b := control.NewControl("Button_B", control.KindButton, control.WithPosition(0, 0.2, 0))
	_, _ = r.PressButton(b)
	assert.InDelta(t, 0.15, b.TargetPose().Position.Y(), 1e-7)
}
