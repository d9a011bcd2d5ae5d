package console

import (
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-console/engine/animator"
	"github.com/Carmen-Shannon/oxy-console/engine/bridge"
	"github.com/Carmen-Shannon/oxy-console/engine/camera"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/Carmen-Shannon/oxy-console/engine/input"
	"github.com/Carmen-Shannon/oxy-console/engine/joystick"
	"github.com/Carmen-Shannon/oxy-console/engine/picker"
	"github.com/Carmen-Shannon/oxy-console/engine/resolver"
	"github.com/Carmen-Shannon/oxy-console/engine/scene"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// session implements the Session interface.
// Holds the interaction state that used to live in module globals: the single active
// button, the pressed pad and the joystick drag.
type session struct {
	mu *sync.Mutex

	id     uuid.UUID
	scene  scene.Scene
	logger *zap.Logger

	camera   camera.Camera
	resolver resolver.Resolver
	tracker  joystick.Tracker
	animator animator.Animator
	router   input.Router

	resolverOptions []resolver.ResolverBuilderOption
	trackerOptions  []joystick.TrackerBuilderOption
	routerOptions   []input.RouterBuilderOption
	damping         animator.Damping

	bindings map[uint32]string
	names    scene.NamePolicy

	activeButton control.Control
	activeKey    uint32
	padPressed   bool
	padKey       uint32
}

// Session is one interactive console: a scene of controls, the camera that looks at it,
// and the pipeline that turns pointer and keyboard input into eased control motion and
// UI commands. Input handlers and Frame must be called from the same loop; a handler
// always completes before the next Frame, so a press is visible in that frame's motion.
type Session interface {
	// ID returns the unique identifier of this session.
	ID() uuid.UUID

	// Scene returns the control registry driven by this session.
	Scene() scene.Scene

	// Camera returns the camera used to turn pointer positions into rays.
	Camera() camera.Camera

	// Router returns the router that posts UI commands.
	Router() input.Router

	// Tracker returns the joystick drag tracker.
	Tracker() joystick.Tracker

	// Animator returns the animator that eases controls toward their targets.
	Animator() animator.Animator

	// PointerDown picks the control under the pointer and presses it. Buttons and the
	// pad are pressed immediately; the joystick starts a drag. Ignored while another
	// control is held.
	//
	// Parameters:
	//   - px: pointer x in viewport pixels
	//   - py: pointer y in viewport pixels
	PointerDown(px, py float32)

	// PointerMove updates an active joystick drag.
	//
	// Parameters:
	//   - px: pointer x in viewport pixels
	//   - py: pointer y in viewport pixels
	PointerMove(px, py float32)

	// PointerUp releases whatever is held. It clears the active button, the pad press and
	// the joystick drag unconditionally, wherever the pointer is.
	PointerUp()

	// KeyDown presses the control or action bound to the key, if any.
	//
	// Parameters:
	//   - key: the key code
	KeyDown(key uint32)

	// KeyUp releases the control bound to the key, if it is the one held.
	//
	// Parameters:
	//   - key: the key code
	KeyUp(key uint32)

	// Resize updates the camera viewport.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	Resize(width, height int)

	// Frame advances the animation by one presented frame.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous frame
	Frame(dt float32)

	// ActiveButton returns the held button, nil if none.
	ActiveButton() control.Control

	// Dragging reports whether the joystick is being dragged.
	Dragging() bool
}

var _ Session = &session{}

// NewSession wires a scene into a full interaction pipeline that posts commands to channel.
// Every discovered button name is registered with the router as a known action.
//
// Parameters:
//   - sc: the scene of controls
//   - channel: the outbound UI bridge, may be nil
//   - options: functional options to configure the session
//
// Returns:
//   - Session: the session
func NewSession(sc scene.Scene, channel bridge.Channel, options ...SessionBuilderOption) Session {
	if sc == nil {
		sc = scene.NewScene()
	}
	s := &session{
		mu:       &sync.Mutex{},
		id:       uuid.New(),
		scene:    sc,
		logger:   zap.NewNop(),
		damping:  animator.DefaultDamping(),
		bindings: make(map[uint32]string),
		names:    scene.DefaultNamePolicy(),
	}
	for _, option := range options {
		option(s)
	}

	s.logger = s.logger.With(zap.String("session", s.id.String()))
	if s.camera == nil {
		s.camera = camera.NewCamera()
	}
	s.resolver = resolver.NewResolver(append([]resolver.ResolverBuilderOption{resolver.WithLogger(s.logger)}, s.resolverOptions...)...)
	s.tracker = joystick.NewTracker(sc.Joystick(), append([]joystick.TrackerBuilderOption{joystick.WithLogger(s.logger)}, s.trackerOptions...)...)
	s.animator = animator.NewAnimator(sc, animator.WithDamping(s.damping), animator.WithJoystick(s.tracker))
	s.router = input.NewRouter(channel, append([]input.RouterBuilderOption{input.WithLogger(s.logger)}, s.routerOptions...)...)

	for _, b := range sc.Buttons() {
		s.router.AddKnown(b.Name())
	}
	return s
}

func (s *session) ID() uuid.UUID {
	return s.id
}

func (s *session) Scene() scene.Scene {
	return s.scene
}

func (s *session) Camera() camera.Camera {
	return s.camera
}

func (s *session) Router() input.Router {
	return s.router
}

func (s *session) Tracker() joystick.Tracker {
	return s.tracker
}

func (s *session) Animator() animator.Animator {
	return s.animator
}

func (s *session) PointerDown(px, py float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.held() {
		return
	}
	res := picker.Pick(px, py, s.camera, s.scene.All())
	if !res.Hit {
		return
	}
	switch res.Control.Kind() {
	case control.KindButton:
		if ev, ok := s.resolver.PressButton(res.Control); ok {
			s.activeButton = res.Control
			s.router.Route(ev)
		}
	case control.KindPad:
		if ev, ok := s.resolver.PressPad(res.Control, res.LocalPoint); ok {
			s.padPressed = true
			s.router.Route(ev)
		}
	case control.KindJoystick:
		s.tracker.Begin(res.Control)
	}
}

func (s *session) PointerMove(px, py float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.tracker.Dragging() {
		return
	}
	if ev, ok := s.tracker.Drag(s.camera.Ray(px, py)); ok {
		s.router.Route(ev)
	}
}

func (s *session) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseAll()
}

func (s *session) KeyDown(key uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.bindings[key]
	if !ok || s.held() {
		return
	}
	if dir, ok := padDirection(target); ok {
		if ev, pressed := s.resolver.PressPadDirection(s.scene.Pad(), dir); pressed {
			s.padPressed = true
			s.padKey = key
			s.router.Route(ev)
		}
		return
	}
	if c := s.scene.Get(target); c != nil && c.Kind() == control.KindButton {
		if ev, pressed := s.resolver.PressButton(c); pressed {
			s.activeButton = c
			s.activeKey = key
			s.router.Route(ev)
		}
		return
	}
	if s.names.Classify(target) == scene.RoleButton {
		s.logger.Debug("key bound to a button the model lacks", zap.String("button", target))
		return
	}
	s.router.Route(input.ActionEvent(target))
}

func (s *session) KeyUp(key uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeButton != nil && s.activeKey == key {
		s.releaseAll()
		return
	}
	if s.padPressed && s.padKey == key {
		s.releaseAll()
	}
}

func (s *session) Resize(width, height int) {
	s.camera.SetViewport(float32(width), float32(height))
}

func (s *session) Frame(dt float32) {
	s.animator.Step()
}

func (s *session) ActiveButton() control.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeButton
}

func (s *session) Dragging() bool {
	return s.tracker.Dragging()
}

// held reports whether any control is pressed or dragged. Must be called with mu held.
func (s *session) held() bool {
	return s.activeButton != nil || s.padPressed || s.tracker.Dragging()
}

// releaseAll clears every held control. Must be called with mu held.
func (s *session) releaseAll() {
	if s.activeButton != nil {
		if ev, ok := s.resolver.ReleaseButton(s.activeButton); ok {
			s.router.Route(ev)
		}
		s.activeButton = nil
	}
	if s.padPressed {
		s.resolver.ReleasePad(s.scene.Pad())
		s.padPressed = false
	}
	if s.tracker.Dragging() {
		s.tracker.End()
	}
	s.activeKey = 0
	s.padKey = 0
}

// padDirection parses a dpad_* action name.
func padDirection(action string) (input.Direction, bool) {
	if !strings.HasPrefix(action, "dpad_") {
		return 0, false
	}
	for _, d := range []input.Direction{input.DirectionRight, input.DirectionLeft, input.DirectionUp, input.DirectionDown} {
		if input.PadAction(d) == action {
			return d, true
		}
	}
	return 0, false
}
