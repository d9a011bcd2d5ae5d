package input

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-console/engine/bridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type captureChannel struct {
	posted []bridge.Command
	err    error
}

func (c *captureChannel) Post(cmd bridge.Command) error {
	if c.err != nil {
		return c.err
	}
	c.posted = append(c.posted, cmd)
	return nil
}

func TestRouterDefaultBindings(t *testing.T) {
	tests := []struct {
		ev   Event
		want bridge.Command
	}{
		{ButtonEvent(ButtonA, PhasePressed), bridge.CommandActivateActiveCard},
		{ButtonEvent(ButtonB, PhasePressed), bridge.CommandCloseOverlay},
		{ButtonEvent(ButtonHome, PhasePressed), bridge.CommandCloseOverlay},
		{ButtonEvent(ButtonStart, PhasePressed), bridge.CommandStartConsoleUI},
		{ActionEvent(ActionDpadLeft), bridge.CommandMoveLeft},
		{ActionEvent(ActionJoystickLeft), bridge.CommandMoveLeft},
		{ActionEvent(ActionDpadRight), bridge.CommandMoveRight},
		{ActionEvent(ActionJoystickRight), bridge.CommandMoveRight},
	}
	for _, tt := range tests {
		t.Run(tt.ev.String(), func(t *testing.T) {
			ch := &captureChannel{}
			r := NewRouter(ch)
			cmd, ok := r.Route(tt.ev)
			require.True(t, ok)
			assert.Equal(t, tt.want, cmd)
			assert.Equal(t, []bridge.Command{tt.want}, ch.posted)
		})
	}
}

func TestRouterIgnoresReleasePhase(t *testing.T) {
	ch := &captureChannel{}
	r := NewRouter(ch)
	_, ok := r.Route(ButtonEvent(ButtonA, PhaseReleased))
	assert.False(t, ok)
	assert.Empty(t, ch.posted)
}

func TestRouterUnboundKnownActionsAreDebug(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ch := &captureChannel{}
	r := NewRouter(ch, WithLogger(zap.New(core)), WithKnownActions("Button_X"))

	_, ok := r.Route(ActionEvent(ActionDpadUp))
	assert.False(t, ok)
	_, ok = r.Route(ButtonEvent("Button_X", PhasePressed))
	assert.False(t, ok)

	assert.Empty(t, ch.posted)
	assert.Equal(t, 0, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 2, logs.FilterMessage("Clicked").Len())
}

func TestRouterLogsUnknownActions(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ch := &captureChannel{}
	r := NewRouter(ch, WithLogger(zap.New(core)))

	_, ok := r.Route(ActionEvent("dpad_sideways"))
	assert.False(t, ok)
	assert.Empty(t, ch.posted)

	entries := logs.FilterMessage("unknown action").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "dpad_sideways", entries[0].ContextMap()["action"])

	r.AddKnown("dpad_sideways")
	assert.True(t, r.Known("dpad_sideways"))
}

func TestRouterCustomRouteAndPostFailure(t *testing.T) {
	ch := &captureChannel{}
	r := NewRouter(ch, WithRoute("Button_Y", bridge.CommandCloseOverlay))
	cmd, ok := r.Route(ButtonEvent("Button_Y", PhasePressed))
	require.True(t, ok)
	assert.Equal(t, bridge.CommandCloseOverlay, cmd)

	ch.err = errors.New("closed")
	_, ok = r.Route(ButtonEvent(ButtonA, PhasePressed))
	assert.False(t, ok)
}

func TestRouterWithoutChannel(t *testing.T) {
	r := NewRouter(nil)
	_, ok := r.Route(ButtonEvent(ButtonA, PhasePressed))
	assert.False(t, ok)
}
