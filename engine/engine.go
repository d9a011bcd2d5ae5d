package engine

import (
	"context"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/console"
	"github.com/Carmen-Shannon/oxy-console/engine/profiler"
	"go.uber.org/zap"
)

// Window is the part of window.Window the frame loop drives.
type Window interface {
	PollEvents() bool
	RequestClose()
	SetPointerDownCallback(callback func(x, y float32))
	SetPointerUpCallback(callback func(x, y float32))
	SetPointerMoveCallback(callback func(x, y float32))
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetResizeCallback(callback func(width, height int))
	Width() int
	Height() int
}

// Presenter is the part of renderer.Renderer the frame loop drives.
type Presenter interface {
	Resize(width, height int) error
	BeginFrame() error
	EndFrame() error
	Present()
}

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	window    Window
	presenter Presenter
	session   console.Session
	logger    *zap.Logger
	clock     common.Clock

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(deltaTime float32)
	drawCallback  func()
	frameLimit    time.Duration

	quitChannel chan struct{}
	quitOnce    sync.Once
}

// Engine runs the console frame loop on the calling goroutine. Each iteration polls window
// events, which run the pointer and keyboard handlers to completion, then steps the session
// animation and the frame callback, then clears and presents. There are no other goroutines.
type Engine interface {
	// Window returns the window driven by the loop.
	Window() Window

	// Session returns the interaction session receiving input.
	Session() console.Session

	// EnableProfiler enables frame statistics logging.
	EnableProfiler()

	// DisableProfiler disables frame statistics logging.
	DisableProfiler()

	// SetFrameCallback registers a function called once per frame after the animation step.
	//
	// Parameters:
	//   - callback: function receiving the frame delta in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetDrawCallback registers a function called inside each frame's render pass,
	// after BeginFrame succeeds and before EndFrame.
	//
	// Parameters:
	//   - callback: function issuing the frame's draws
	SetDrawCallback(callback func())

	// SetFrameLimit caps the loop rate. Pass 0 to rely on presentation pacing alone.
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// Run blocks until the window closes, Quit is called, or ctx is cancelled.
	// Must be called from the goroutine that created the window.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() if the context ended the loop, nil otherwise
	Run(ctx context.Context) error

	// Quit stops the loop after the current frame. Safe to call multiple times and from any goroutine.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an engine around a window and a session. Window input is wired into
// the session and framebuffer resizes update both the camera and the presenter.
//
// Parameters:
//   - w: the window
//   - session: the interaction session
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w Window, session console.Session, options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		window:      w,
		session:     session,
		logger:      zap.NewNop(),
		clock:       common.SystemClock,
		quitChannel: make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithClock(e.clock))
	}

	w.SetPointerDownCallback(session.PointerDown)
	w.SetPointerMoveCallback(session.PointerMove)
	w.SetPointerUpCallback(func(_, _ float32) { session.PointerUp() })
	w.SetKeyDownCallback(session.KeyDown)
	w.SetKeyUpCallback(session.KeyUp)
	w.SetResizeCallback(func(width, height int) {
		session.Resize(width, height)
		if e.presenter != nil {
			if err := e.presenter.Resize(width, height); err != nil {
				e.logger.Warn("resize failed", zap.Error(err))
			}
		}
	})
	session.Resize(w.Width(), w.Height())
	return e
}

func (e *engine) Window() Window {
	return e.window
}

func (e *engine) Session() console.Session {
	return e.session
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) SetDrawCallback(callback func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drawCallback = callback
}

func (e *engine) SetFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameLimit = frameDuration(fps)
}

func (e *engine) Run(ctx context.Context) error {
	last := e.clock()
	e.logger.Info("frame loop started", zap.String("session", e.session.ID().String()))
	defer e.logger.Info("frame loop stopped", zap.Uint64("frames", e.session.Animator().Steps()))

	for {
		select {
		case <-ctx.Done():
			e.window.RequestClose()
			return ctx.Err()
		case <-e.quitChannel:
			e.window.RequestClose()
			return nil
		default:
		}

		start := e.clock()
		if !e.window.PollEvents() {
			return nil
		}

		dt := float32(start.Sub(last).Seconds())
		last = start

		e.mu.Lock()
		callback := e.frameCallback
		draw := e.drawCallback
		profiling := e.profilingEnabled
		limit := e.frameLimit
		e.mu.Unlock()

		e.session.Frame(dt)
		if callback != nil {
			callback(dt)
		}
		e.present(draw)

		if profiling {
			e.profiler.Tick()
		}
		if limit > 0 {
			if spent := e.clock().Sub(start); spent < limit {
				time.Sleep(limit - spent)
			}
		}
	}
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) present(draw func()) {
	if e.presenter == nil {
		return
	}
	if err := e.presenter.BeginFrame(); err != nil {
		e.logger.Debug("frame skipped", zap.Error(err))
		return
	}
	if draw != nil {
		draw()
	}
	if err := e.presenter.EndFrame(); err != nil {
		e.logger.Warn("frame submit failed", zap.Error(err))
	}
	e.presenter.Present()
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
