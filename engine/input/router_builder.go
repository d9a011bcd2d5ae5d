package input

import (
	"github.com/Carmen-Shannon/oxy-console/engine/bridge"
	"go.uber.org/zap"
)

// RouterBuilderOption is a functional option for configuring a Router during construction.
type RouterBuilderOption func(*routerImpl)

// WithLogger sets the router's logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - RouterBuilderOption: functional option to set the logger
func WithLogger(logger *zap.Logger) RouterBuilderOption {
	return func(r *routerImpl) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRoute binds an action name to a command, replacing any existing binding.
//
// Parameters:
//   - action: the action name
//   - cmd: the command to post
//
// Returns:
//   - RouterBuilderOption: functional option to add the binding
func WithRoute(action string, cmd bridge.Command) RouterBuilderOption {
	return func(r *routerImpl) {
		r.routes[action] = cmd
	}
}

// WithKnownActions registers unbound action names that should not be reported as unknown.
//
// Parameters:
//   - names: the action names
//
// Returns:
//   - RouterBuilderOption: functional option to register the names
func WithKnownActions(names ...string) RouterBuilderOption {
	return func(r *routerImpl) {
		for _, n := range names {
			r.known[n] = struct{}{}
		}
	}
}
