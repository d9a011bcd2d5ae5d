package loader

import (
	"io"
)

// loaderBackend defines the format-specific half of the Loader.
type loaderBackend interface {
	// Load reads the node hierarchy of the model at the given path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - []Node: the flattened node list in depth-first order
	//   - error: error if loading fails
	Load(path string) ([]Node, error)

	// LoadReader reads the node hierarchy of a model from a stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - []Node: the flattened node list in depth-first order
	//   - error: error if loading fails
	LoadReader(r io.Reader, isGLB bool) ([]Node, error)
}
