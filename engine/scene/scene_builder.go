package scene

import (
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithLogger sets the scene's logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithControls registers initial controls. Registration errors are logged and the
// offending control skipped; use Register directly to observe them.
//
// Parameters:
//   - controls: the controls to register
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithControls(controls ...control.Control) SceneBuilderOption {
	return func(s *scene) {
		for _, c := range controls {
			if err := s.Register(c); err != nil {
				s.logger.Error("failed to register control", zap.Error(err))
			}
		}
	}
}
