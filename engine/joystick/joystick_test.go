package joystick

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/Carmen-Shannon/oxy-console/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newStick() control.Control {
	return control.NewControl("Joystick", control.KindJoystick, control.WithPosition(0.5, 0.1, 0))
}

func newTracker(joy control.Control, clk *fakeClock) Tracker {
	return NewTracker(joy, WithClock(clk.Now))
}

func TestRadiusClamp(t *testing.T) {
	clk := &fakeClock{now: time.Unix(100, 0)}
	joy := newStick()
	tr := newTracker(joy, clk)
	require.True(t, tr.Begin(joy))

	for _, p := range []mgl32.Vec3{{0.8, 0.1, 0.4}, {0.5, 0.1, -3}, {-2, 0.1, -2}} {
		_, _ = tr.DragTo(p)
		assert.InDelta(t, DefaultMaxRadius, tr.Offset().Len(), 1e-6)
		assert.Zero(t, tr.Offset().Y())
		target := joy.TargetPose().Position
		assert.InDelta(t, DefaultMaxRadius, target.Sub(joy.RestPose().Position).Len(), 1e-6)
	}
}

func TestInsideRadiusEmitsNothing(t *testing.T) {
	clk := &fakeClock{now: time.Unix(100, 0)}
	joy := newStick()
	tr := newTracker(joy, clk)
	require.True(t, tr.Begin(joy))

	_, ok := tr.DragTo(mgl32.Vec3{0.55, 0.3, 0.02})
	assert.False(t, ok)
	assert.True(t, tr.Offset().ApproxEqualThreshold(mgl32.Vec3{0.05, 0, 0.02}, 1e-6))
	assert.True(t, joy.TargetPose().Position.ApproxEqualThreshold(mgl32.Vec3{0.55, 0.1, 0.02}, 1e-6))
	assert.True(t, tr.LastEmit().IsZero())
}

func TestCooldown(t *testing.T) {
	tests := []struct {
		name  string
		gap   time.Duration
		count int
	}{
		{name: "within cooldown", gap: 100 * time.Millisecond, count: 1},
		{name: "after cooldown", gap: 600 * time.Millisecond, count: 2},
		{name: "exactly at cooldown", gap: 500 * time.Millisecond, count: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := &fakeClock{now: time.Unix(100, 0)}
			joy := newStick()
			tr := newTracker(joy, clk)
			require.True(t, tr.Begin(joy))

			emitted := 0
			if _, ok := tr.DragTo(mgl32.Vec3{1, 0.1, 0}); ok {
				emitted++
			}
			clk.Advance(tt.gap)
			if _, ok := tr.DragTo(mgl32.Vec3{1, 0.1, 0.01}); ok {
				emitted++
			}
			assert.Equal(t, tt.count, emitted)
		})
	}
}

func TestDirections(t *testing.T) {
	tests := []struct {
		point mgl32.Vec3
		want  string
	}{
		{mgl32.Vec3{1.5, 0.1, 0}, input.ActionJoystickRight},
		{mgl32.Vec3{-0.5, 0.1, 0}, input.ActionJoystickLeft},
		{mgl32.Vec3{0.5, 0.1, 1}, input.ActionJoystickUp},
		{mgl32.Vec3{0.5, 0.1, -1}, input.ActionJoystickDown},
		{mgl32.Vec3{1.5, 0.1, 1}, input.ActionJoystickRight},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			clk := &fakeClock{now: time.Unix(100, 0)}
			joy := newStick()
			tr := newTracker(joy, clk)
			require.True(t, tr.Begin(joy))

			ev, ok := tr.DragTo(tt.point)
			require.True(t, ok)
			assert.Equal(t, tt.want, ev.Name)
			assert.Equal(t, clk.now, tr.LastEmit())
		})
	}
}

func TestDragFromRayUsesPlaneThroughRest(t *testing.T) {
	clk := &fakeClock{now: time.Unix(100, 0)}
	parent := mgl32.Translate3D(0, 1, 0)
	joy := control.NewControl("Joystick", control.KindJoystick, control.WithPosition(0.5, 0.1, 0), control.WithParentTransform(parent))
	tr := newTracker(joy, clk)
	require.True(t, tr.Begin(joy))

	ray := common.Ray{Origin: mgl32.Vec3{0.53, 5, 0.04}, Direction: mgl32.Vec3{0, -1, 0}}
	_, ok := tr.Drag(ray)
	assert.False(t, ok)
	assert.True(t, tr.Offset().ApproxEqualThreshold(mgl32.Vec3{0.03, 0, 0.04}, 1e-5), "got %v", tr.Offset())

	parallel := common.Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{1, 0, 0}}
	_, ok = tr.Drag(parallel)
	assert.False(t, ok)
}

func TestEndReturnsToRestWithoutEvent(t *testing.T) {
	clk := &fakeClock{now: time.Unix(100, 0)}
	joy := newStick()
	tr := newTracker(joy, clk)
	require.True(t, tr.Begin(joy))
	_, _ = tr.DragTo(mgl32.Vec3{1, 0.1, 0})

	tr.End()
	assert.False(t, tr.Dragging())
	assert.Equal(t, joy.RestPose(), joy.TargetPose())
	assert.Equal(t, mgl32.Vec3{}, tr.Offset())

	_, ok := tr.DragTo(mgl32.Vec3{1, 0.1, 0})
	assert.False(t, ok, "no drag after End")
}

func TestBeginRejectsOtherControls(t *testing.T) {
	joy := newStick()
	tr := NewTracker(joy)
	assert.False(t, tr.Begin(control.NewControl("Button_A", control.KindButton)))
	assert.False(t, tr.Begin(nil))
	assert.False(t, tr.Dragging())
}

func TestNilJoystickIsNoop(t *testing.T) {
	tr := NewTracker(nil)
	assert.False(t, tr.Begin(newStick()))
	_, ok := tr.DragTo(mgl32.Vec3{1, 0, 0})
	assert.False(t, ok)
	tr.End()
	assert.Nil(t, tr.Joystick())
}

func TestCustomRadiusAndCooldown(t *testing.T) {
	clk := &fakeClock{now: time.Unix(100, 0)}
	joy := newStick()
	tr := NewTracker(joy, WithClock(clk.Now), WithMaxRadius(0.2), WithCooldown(0))
	require.True(t, tr.Begin(joy))

	_, ok := tr.DragTo(mgl32.Vec3{0.65, 0.1, 0})
	assert.False(t, ok, "0.15 is inside a 0.2 radius")
	_, ok = tr.DragTo(mgl32.Vec3{1, 0.1, 0})
	assert.True(t, ok)
	_, ok = tr.DragTo(mgl32.Vec3{1, 0.1, 0})
	assert.True(t, ok, "zero cooldown always emits")
}
