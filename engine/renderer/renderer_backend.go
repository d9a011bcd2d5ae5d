package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, so the frame
	// loop, and with it the animator, runs at the display refresh rate.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float64
}

// RendererBackend is the GPU API seam behind the Renderer.
type RendererBackend interface {
	ConfigureSurface(width, height int) error
	SetPresentMode(mode PresentMode)
	SetClearColor(c Color)
	BeginFrame() error
	DrawBoxes(viewProjection mgl32.Mat4, boxes []Box) error
	EndFrame() error
	Present()
	Release()
}

// SurfaceSource is anything that can host a WebGPU surface. window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}
