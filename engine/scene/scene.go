package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateControl is returned when a control name is registered twice.
	ErrDuplicateControl = errors.New("duplicate control name")
	// ErrNilControl is returned when a nil control is registered.
	ErrNilControl = errors.New("nil control")
)

// Anchor is a named, non-interactive placement in the scene, such as the panel the
// UI surface is mapped onto.
type Anchor struct {
	Name   string
	World  mgl32.Mat4
	Bounds common.AABB
}

type scene struct {
	mu *sync.Mutex

	name   string
	logger *zap.Logger

	order    []control.Control
	byName   map[string]control.Control
	buttons  []control.Control
	pad      control.Control
	joystick control.Control

	screen    Anchor
	hasScreen bool
}

// Scene is the registry of the console's interactive controls. Controls are registered
// once when the model loads and live as long as the scene; there is no removal.
// Registration order is preserved for iteration. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Register records a control. Each name may be registered only once.
	//
	// Parameters:
	//   - c: the control to register
	//
	// Returns:
	//   - error: ErrNilControl or ErrDuplicateControl
	Register(c control.Control) error

	// Get retrieves a control by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the control's name
	//
	// Returns:
	//   - control.Control: the control or nil
	Get(name string) control.Control

	// All returns every registered control in registration order.
	//
	// Returns:
	//   - []control.Control: a copy of the registration list
	All() []control.Control

	// Buttons returns the registered buttons in registration order.
	//
	// Returns:
	//   - []control.Control: a copy of the button list
	Buttons() []control.Control

	// Pad returns the directional pad, or nil if the model has none.
	Pad() control.Control

	// Joystick returns the joystick, or nil if the model has none.
	Joystick() control.Control

	// Screen returns the UI panel anchor, if one was recorded.
	//
	// Returns:
	//   - Anchor: the screen anchor
	//   - bool: false if the model has no screen node
	Screen() (Anchor, bool)

	// SetScreen records the UI panel anchor.
	//
	// Parameters:
	//   - a: the anchor
	SetScreen(a Anchor)

	// Count returns the number of registered controls.
	Count() int
}

var _ Scene = &scene{}

// NewScene creates an empty scene.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:     &sync.Mutex{},
		name:   "console",
		logger: zap.NewNop(),
		byName: make(map[string]control.Control),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Register(c control.Control) error {
	if c == nil {
		return ErrNilControl
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[c.Name()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateControl, c.Name())
	}
	switch c.Kind() {
	case control.KindPad:
		if s.pad != nil {
			return fmt.Errorf("%w: second pad %q (already have %q)", ErrDuplicateControl, c.Name(), s.pad.Name())
		}
		s.pad = c
	case control.KindJoystick:
		if s.joystick != nil {
			return fmt.Errorf("%w: second joystick %q (already have %q)", ErrDuplicateControl, c.Name(), s.joystick.Name())
		}
		s.joystick = c
	case control.KindButton:
		s.buttons = append(s.buttons, c)
	}

	s.byName[c.Name()] = c
	s.order = append(s.order, c)
	s.logger.Debug("control registered", zap.String("name", c.Name()), zap.Stringer("kind", c.Kind()))
	return nil
}

func (s *scene) Get(name string) control.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byName[name]
}

func (s *scene) All() []control.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]control.Control, len(s.order))
	copy(out, s.order)
	return out
}

func (s *scene) Buttons() []control.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]control.Control, len(s.buttons))
	copy(out, s.buttons)
	return out
}

func (s *scene) Pad() control.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pad
}

func (s *scene) Joystick() control.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joystick
}

func (s *scene) Screen() (Anchor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen, s.hasScreen
}

func (s *scene) SetScreen(a Anchor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = a
	s.hasScreen = true
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
