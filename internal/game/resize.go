package game

import (
	"github.com/Faultbox/scenebox/internal/engine/camera"
	"github.com/Faultbox/scenebox/internal/engine/scene"
)

// ResizeHandler keeps the active camera and renderer in step with the viewport.
type ResizeHandler struct {
	scene    *scene.Graph
	rig      *camera.Rig
	renderer Renderer
	host     Host
}

// Resize reads the viewport, updates the active camera's aspect and the
// renderer size, then renders once without waiting for the next tick.
func (h *ResizeHandler) Resize() {
	width, height := h.host.ViewportSize()
	h.rig.SyncAspect(width, height)
	h.renderer.SetSize(width, height)
	h.renderer.Render(h.scene, h.rig.Active())
}
