package console

import (
	"github.com/Carmen-Shannon/oxy-console/common"
	"github.com/Carmen-Shannon/oxy-console/engine/animator"
	"github.com/Carmen-Shannon/oxy-console/engine/camera"
	"github.com/Carmen-Shannon/oxy-console/engine/input"
	"github.com/Carmen-Shannon/oxy-console/engine/joystick"
	"github.com/Carmen-Shannon/oxy-console/engine/resolver"
	"github.com/Carmen-Shannon/oxy-console/engine/scene"
	"go.uber.org/zap"
)

// SessionBuilderOption is a functional option for configuring a Session.
type SessionBuilderOption func(*session)

// WithLogger sets the session's logger. The logger is shared with every component the
// session builds.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) SessionBuilderOption {
	return func(s *session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCamera sets the camera used for picking. Defaults to the top-down orthographic camera.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithCamera(c camera.Camera) SessionBuilderOption {
	return func(s *session) {
		s.camera = c
	}
}

// WithDamping sets the animator's damping constants.
//
// Parameters:
//   - d: the damping constants
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithDamping(d animator.Damping) SessionBuilderOption {
	return func(s *session) {
		s.damping = d
	}
}

// WithResolverOptions passes options through to the pose target resolver.
//
// Parameters:
//   - options: resolver options
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithResolverOptions(options ...resolver.ResolverBuilderOption) SessionBuilderOption {
	return func(s *session) {
		s.resolverOptions = append(s.resolverOptions, options...)
	}
}

// WithTrackerOptions passes options through to the joystick tracker.
//
// Parameters:
//   - options: tracker options
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithTrackerOptions(options ...joystick.TrackerBuilderOption) SessionBuilderOption {
	return func(s *session) {
		s.trackerOptions = append(s.trackerOptions, options...)
	}
}

// WithRouterOptions passes options through to the input router.
//
// Parameters:
//   - options: router options
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithRouterOptions(options ...input.RouterBuilderOption) SessionBuilderOption {
	return func(s *session) {
		s.routerOptions = append(s.routerOptions, options...)
	}
}

// WithNamePolicy sets the naming conventions used to recognise button names in key
// bindings. Defaults to scene.DefaultNamePolicy().
//
// Parameters:
//   - policy: the model's naming conventions
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithNamePolicy(policy scene.NamePolicy) SessionBuilderOption {
	return func(s *session) {
		s.names = policy
	}
}

// WithKeyBinding binds a key code to a button name, a dpad_* direction, or any other action name.
//
// Parameters:
//   - key: the key code
//   - target: the control or action name
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithKeyBinding(key uint32, target string) SessionBuilderOption {
	return func(s *session) {
		s.bindings[key] = target
	}
}

// WithKeyBindings binds keys by configuration name, e.g. "enter" -> "Button_A".
// Unrecognized key names are logged and skipped.
//
// Parameters:
//   - bindings: key name to control or action name
//
// Returns:
//   - SessionBuilderOption: option function to apply
func WithKeyBindings(bindings map[string]string) SessionBuilderOption {
	return func(s *session) {
		for name, target := range bindings {
			key, ok := common.KeyByName(name)
			if !ok {
				s.logger.Warn("unknown key name in bindings", zap.String("key", name), zap.String("target", target))
				continue
			}
			s.bindings[key] = target
		}
	}
}
