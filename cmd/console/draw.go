package main

import (
	"github.com/Carmen-Shannon/oxy-console/engine/console"
	"github.com/Carmen-Shannon/oxy-console/engine/control"
	"github.com/Carmen-Shannon/oxy-console/engine/renderer"
	"github.com/Carmen-Shannon/oxy-console/engine/ui"
	"go.uber.org/zap"
)

var (
	buttonColor   = renderer.Color{R: 0.55, G: 0.6, B: 0.7, A: 1}
	activeColor   = renderer.Color{R: 0.95, G: 0.75, B: 0.3, A: 1}
	padColor      = renderer.Color{R: 0.3, G: 0.3, B: 0.32, A: 1}
	joystickColor = renderer.Color{R: 0.75, G: 0.25, B: 0.25, A: 1}
	screenColor   = renderer.Color{R: 0.05, G: 0.07, B: 0.1, A: 1}
)

// sceneBoxes collects one box per control at its current pose, plus the screen panel.
// surface may be nil; when set, the panel brightens with the overlay and content.
func sceneBoxes(session console.Session, surface ui.Surface) []renderer.Box {
	sc := session.Scene()
	active := session.ActiveButton()

	boxes := make([]renderer.Box, 0, sc.Count()+1)
	for _, c := range sc.All() {
		color := buttonColor
		switch c.Kind() {
		case control.KindPad:
			color = padColor
		case control.KindJoystick:
			color = joystickColor
		case control.KindButton:
			if active != nil && active.Name() == c.Name() {
				color = activeColor
			}
		}
		if box, ok := renderer.ControlBox(c, color); ok {
			boxes = append(boxes, box)
		}
	}

	if anchor, ok := sc.Screen(); ok {
		color := screenColor
		if surface != nil {
			glow := float64(max(surface.LogoAlpha()*(1-surface.OverlayAlpha()), surface.ContentOpacity()))
			color.R += 0.3 * glow
			color.G += 0.35 * glow
			color.B += 0.4 * glow
		}
		if box, ok := renderer.OrientedBox(anchor.World, anchor.Bounds, color); ok {
			boxes = append(boxes, box)
		}
	}
	return boxes
}

// drawScene returns the engine draw callback for the box pass.
func drawScene(r renderer.Renderer, session console.Session, surface ui.Surface, log *zap.Logger) func() {
	return func() {
		boxes := sceneBoxes(session, surface)
		if err := r.DrawBoxes(session.Camera().ViewProjectionMatrix(), boxes); err != nil {
			log.Debug("box pass failed", zap.Error(err))
		}
	}
}
