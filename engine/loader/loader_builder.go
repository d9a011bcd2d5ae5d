package loader

import (
	"go.uber.org/zap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithLogger sets the logger used to report loaded models.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *zap.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithNodes pre-populates the cache, e.g. with a hand-built console layout.
//
// Parameters:
//   - key: the cache key
//   - nodes: the nodes to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the cache entry to a loader
func WithNodes(key string, nodes []Node) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[key] = nodes
	}
}
