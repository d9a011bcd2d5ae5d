package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/bridge"
	"github.com/Carmen-Shannon/oxy-console/engine/console"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/Carmen-Shannon/oxy-console/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	polls         int
	maxPolls      int
	onPoll        func(n int)
	closeRequests int
	width, height int

	pointerDown func(x, y float32)
	pointerUp   func(x, y float32)
	pointerMove func(x, y float32)
	keyDown     func(uint32)
	keyUp       func(uint32)
	resize      func(w, h int)
}

func (w *fakeWindow) PollEvents() bool {
	w.polls++
	if w.polls > w.maxPolls {
		return false
	}
	if w.onPoll != nil {
		w.onPoll(w.polls)
	}
	return true
}

func (w *fakeWindow) RequestClose()                                { w.closeRequests++ }
func (w *fakeWindow) SetPointerDownCallback(cb func(x, y float32)) { w.pointerDown = cb }
func (w *fakeWindow) SetPointerUpCallback(cb func(x, y float32))   { w.pointerUp = cb }
func (w *fakeWindow) SetPointerMoveCallback(cb func(x, y float32)) { w.pointerMove = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(uint32))           { w.keyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(uint32))             { w.keyUp = cb }
func (w *fakeWindow) SetResizeCallback(cb func(w, h int))          { w.resize = cb }
func (w *fakeWindow) Width() int                                   { return w.width }
func (w *fakeWindow) Height() int                                  { return w.height }

type fakePresenter struct {
	begins, ends, presents int
	failBegin              bool
	resizedTo              [2]int
}

func (p *fakePresenter) Resize(w, h int) error {
	p.resizedTo = [2]int{w, h}
	return nil
}

func (p *fakePresenter) BeginFrame() error {
	p.begins++
	if p.failBegin {
		return errors.New("surface lost")
	}
	return nil
}

func (p *fakePresenter) EndFrame() error { p.ends++; return nil }
func (p *fakePresenter) Present()        { p.presents++ }

type recordingChannel struct {
	cmds []bridge.Command
}

func (r *recordingChannel) Post(cmd bridge.Command) error {
	r.cmds = append(r.cmds, cmd)
	return nil
}

func newTestSession(t *testing.T, ch bridge.Channel) console.Session {
	t.Helper()
	sc := scene.NewScene()
	box := common.NewAABB(mgl32.Vec3{-0.1, -0.02, -0.1}, mgl32.Vec3{0.1, 0.02, 0.1})
	require.NoError(t, sc.Register(control.NewControl("Button_A", control.KindButton, control.WithPosition(0, 0.1, 0), control.WithBounds(box))))
	return console.NewSession(sc, ch)
}

func TestRunStepsAfterInputInSameFrame(t *testing.T) {
	ch := &recordingChannel{}
	s := newTestSession(t, ch)
	win := &fakeWindow{maxPolls: 1, width: 800, height: 600}
	win.onPoll = func(n int) {
		// The viewport centre looks straight down at the origin.
		win.pointerDown(400, 300)
	}
	p := &fakePresenter{}
	e := NewEngine(win, s, WithPresenter(p))

	require.NoError(t, e.Run(context.Background()))

	a := s.Scene().Get("Button_A")
	assert.InDelta(t, 0.1-0.03*0.6, a.CurrentPose().Position.Y(), 1e-6)
	assert.Equal(t, []bridge.Command{bridge.CommandActivateActiveCard}, ch.cmds)
	assert.Equal(t, uint64(1), s.Animator().Steps())
	assert.Equal(t, 1, p.presents)
}

func TestPointerUpIsWired(t *testing.T) {
	s := newTestSession(t, nil)
	win := &fakeWindow{maxPolls: 2, width: 800, height: 600}
	win.onPoll = func(n int) {
		if n == 1 {
			win.pointerDown(400, 300)
			return
		}
		win.pointerUp(0, 0)
	}
	e := NewEngine(win, s)
	require.NoError(t, e.Run(context.Background()))
	assert.Nil(t, s.ActiveButton())
}

func TestQuitFromFrameCallback(t *testing.T) {
	s := newTestSession(t, nil)
	win := &fakeWindow{maxPolls: 100, width: 800, height: 600}
	e := NewEngine(win, s)

	frames := 0
	e.SetFrameCallback(func(dt float32) {
		frames++
		e.Quit()
		e.Quit()
	})
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 1, frames)
	assert.Equal(t, 1, win.closeRequests)
}

func TestRunHonoursContext(t *testing.T) {
	s := newTestSession(t, nil)
	win := &fakeWindow{maxPolls: 100, width: 800, height: 600}
	e := NewEngine(win, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Run(ctx), context.Canceled)
	assert.Zero(t, s.Animator().Steps())
}

func TestFailedBeginSkipsPresent(t *testing.T) {
	s := newTestSession(t, nil)
	win := &fakeWindow{maxPolls: 3, width: 800, height: 600}
	p := &fakePresenter{failBegin: true}
	draws := 0
	e := NewEngine(win, s, WithPresenter(p), WithProfiling(true), WithDrawCallback(func() { draws++ }))

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 3, p.begins)
	assert.Zero(t, draws)
	assert.Zero(t, p.ends)
	assert.Zero(t, p.presents)
	assert.Equal(t, uint64(3), s.Animator().Steps())
}

func TestDrawRunsInsideRenderPass(t *testing.T) {
	s := newTestSession(t, nil)
	win := &fakeWindow{maxPolls: 2, width: 800, height: 600}
	p := &fakePresenter{}
	var seen [][2]int
	e := NewEngine(win, s, WithPresenter(p))
	e.SetDrawCallback(func() {
		seen = append(seen, [2]int{p.begins, p.ends})
	})

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, [][2]int{{1, 0}, {2, 1}}, seen)
	assert.Equal(t, 2, p.presents)
}

func TestResizeReachesCameraAndPresenter(t *testing.T) {
	s := newTestSession(t, nil)
	win := &fakeWindow{width: 800, height: 600}
	p := &fakePresenter{}
	NewEngine(win, s, WithPresenter(p))

	w, h := s.Camera().Viewport()
	assert.Equal(t, float32(800), w)
	assert.Equal(t, float32(600), h)

	win.resize(1024, 768)
	w, _ = s.Camera().Viewport()
	assert.Equal(t, float32(1024), w)
	assert.Equal(t, [2]int{1024, 768}, p.resizedTo)
}

func TestKeysAreWired(t *testing.T) {
	sc := scene.NewScene()
	require.NoError(t, sc.Register(control.NewControl("Button_A", control.KindButton)))
	s := console.NewSession(sc, nil, console.WithKeyBinding(common.KeyEnter, "Button_A"))
	win := &fakeWindow{width: 800, height: 600}
	NewEngine(win, s)

	win.keyDown(common.KeyEnter)
	assert.NotNil(t, s.ActiveButton())
	win.keyUp(common.KeyEnter)
	assert.Nil(t, s.ActiveButton())
}
