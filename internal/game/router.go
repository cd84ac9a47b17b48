package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/scenebox/internal/engine/camera"
	"github.com/Faultbox/scenebox/internal/engine/input"
)

// UserInputState is the state mutated by key input and read every tick.
type UserInputState struct {
	FanSpeed     int // degrees per tick, unbounded
	ActiveCamera int // mirrors Rig.Index
}

// InputRouter maps discrete keys onto UserInputState and the camera rig.
type InputRouter struct {
	state *UserInputState
	rig   *camera.Rig
	host  Host
	log   *zap.Logger
}

// HandleKey applies one key press.
func (r *InputRouter) HandleKey(e input.Event) {
	switch e.Key {
	case input.KeyRight:
		r.state.FanSpeed++
	case input.KeyLeft:
		r.state.FanSpeed--
	case input.KeyUp:
		r.rig.Advance()
		r.syncCamera()
	case input.KeyDown:
		r.rig.Retreat()
		r.syncCamera()
	default:
		r.log.Debug("unhandled key", zap.Stringer("key", e.Key), zap.Int("code", e.Code))
		return
	}
	r.log.Debug("input state",
		zap.Int("fan_speed", r.state.FanSpeed),
		zap.Int("camera", r.state.ActiveCamera))
}

// syncCamera brings the newly active camera's aspect up to date.
func (r *InputRouter) syncCamera() {
	r.state.ActiveCamera = r.rig.Index()
	r.rig.SyncAspect(r.host.ViewportSize())
}
