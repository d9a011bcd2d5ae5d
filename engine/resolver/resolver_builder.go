package resolver

import (
	"go.uber.org/zap"
)

// ResolverBuilderOption is a functional option for configuring a Resolver.
type ResolverBuilderOption func(*resolverImpl)

// WithButtonPressDepth sets how far a pressed button travels down.
//
// Parameters:
//   - depth: the travel in world units
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithButtonPressDepth(depth float32) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.buttonPressDepth = depth
	}
}

// WithPadPressDepth sets how far the pressed pad travels down.
//
// Parameters:
//   - depth: the travel in world units
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithPadPressDepth(depth float32) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.padPressDepth = depth
	}
}

// WithPadTilt sets the pad tilt magnitude.
//
// Parameters:
//   - radians: the tilt angle
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithPadTilt(radians float32) ResolverBuilderOption {
	return func(r *resolverImpl) {
		r.padTilt = radians
	}
}

// WithLogger sets the resolver's logger.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) ResolverBuilderOption {
	return func(r *resolverImpl) {
		if logger != nil {
			r.logger = logger
		}
	}
}
