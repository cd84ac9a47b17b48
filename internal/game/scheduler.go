package game

import (
	"github.com/Faultbox/scenebox/internal/engine/animation"
	"github.com/Faultbox/scenebox/internal/engine/camera"
	"github.com/Faultbox/scenebox/internal/engine/scene"
	"github.com/Faultbox/scenebox/pkg/math"
)

// FrameScheduler advances every animation once per frame and renders.
type FrameScheduler struct {
	scene    *scene.Graph
	rig      *camera.Rig
	paths    *animation.PathTable
	mixers   *animation.Registry
	clock    *animation.Clock
	renderer Renderer
	host     Host
	state    *UserInputState

	fanObject string
	pathSpeed float32
	lookahead float32

	frames  uint64
	gen     uint64 // bumped by Start; frames from older loops do not re-arm
	stopped bool
}

// Step runs one tick: fan rotation, path traversal, clip playback, render.
func (s *FrameScheduler) Step() {
	animation.Rotate(s.scene, s.fanObject, math.Euler{Z: math.DegToRad(float32(s.state.FanSpeed))})

	for _, name := range s.paths.Names() {
		animation.Traverse(s.scene, s.paths, name, s.pathSpeed, s.lookahead)
	}

	s.mixers.Update(s.clock.Elapsed())

	s.renderer.Render(s.scene, s.rig.Active())
	s.frames++
}

// Start runs the first tick. Each tick requests the next one from the host.
// A frame still pending from an earlier Start is dropped when it arrives.
func (s *FrameScheduler) Start() {
	s.gen++
	s.stopped = false
	s.tick(s.gen)
}

// Stop keeps the next delivered frame from re-arming the loop.
func (s *FrameScheduler) Stop() {
	s.stopped = true
}

// Frames returns the number of completed ticks.
func (s *FrameScheduler) Frames() uint64 {
	return s.frames
}

func (s *FrameScheduler) tick(gen uint64) {
	if s.stopped || gen != s.gen {
		return
	}
	s.Step()
	s.host.RequestFrame(func() { s.tick(gen) })
}
