package game

import (
	"github.com/Faultbox/scenebox/internal/engine/camera"
	"github.com/Faultbox/scenebox/internal/engine/scene"
)

// Host owns the frame loop and the drawable surface.
type Host interface {
	// RequestFrame schedules fn to run once on the next frame.
	RequestFrame(fn func())
	// ViewportSize returns the drawable size in pixels.
	ViewportSize() (width, height int)
}

// Renderer draws a scene through a camera.
type Renderer interface {
	Render(g *scene.Graph, cam *camera.Perspective)
	SetSize(width, height int)
}
