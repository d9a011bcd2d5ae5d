package renderer

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	logger      *zap.Logger
	frames      uint64

	forceFallbackAdapter bool
	presentMode          PresentMode
	clearColor           *Color
}

// Renderer owns the GPU surface of the console window. Each presented frame is one
// BeginFrame / EndFrame / Present cycle; the frame loop steps the animation between
// polling input and presenting, so presentation paces the animator.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//
	// Returns:
	//   - error: error if the surface cannot be configured
	Resize(width, height int) error

	// SetClearColor sets the background color of subsequent frames.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c Color)

	// BeginFrame acquires the next surface image and opens the frame's render pass.
	//
	// Returns:
	//   - error: error if no surface image is available
	BeginFrame() error

	// DrawBoxes draws shaded boxes into the open frame. The pipeline is built on first use.
	//
	// Parameters:
	//   - viewProjection: the camera's projection * view matrix
	//   - boxes: the boxes to draw
	//
	// Returns:
	//   - error: error if no frame is open or the pass cannot be built
	DrawBoxes(viewProjection mgl32.Mat4, boxes []Box) error

	// EndFrame closes the render pass and submits it.
	//
	// Returns:
	//   - error: error if the command buffer cannot be built
	EndFrame() error

	// Present shows the submitted frame.
	Present()

	// Frames returns the number of frames presented.
	Frames() uint64

	// Release frees all GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer on the given surface source.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - source: the window to render into
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: error if no adapter or device is available
func NewRenderer(backendType RendererBackendType, source SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		logger:      zap.NewNop(),
		presentMode: PresentModeVSync,
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(source.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = backend
	}

	r.backend.SetPresentMode(r.presentMode)
	if r.clearColor != nil {
		r.backend.SetClearColor(*r.clearColor)
	}
	if err := r.backend.ConfigureSurface(source.Width(), source.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}
	r.logger.Info("renderer ready", zap.Int("width", source.Width()), zap.Int("height", source.Height()))
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to resize surface: %w", err)
	}
	r.logger.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

func (r *renderer) SetClearColor(c Color) {
	r.backend.SetClearColor(c)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawBoxes(viewProjection mgl32.Mat4, boxes []Box) error {
	return r.backend.DrawBoxes(viewProjection, boxes)
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
	r.mu.Lock()
	r.frames++
	r.mu.Unlock()
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Release() {
	r.backend.Release()
}
