package game

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/scenebox/internal/assets"
	"github.com/Faultbox/scenebox/internal/engine/animation"
	"github.com/Faultbox/scenebox/internal/engine/camera"
	"github.com/Faultbox/scenebox/internal/engine/input"
	"github.com/Faultbox/scenebox/internal/engine/scene"
	"github.com/Faultbox/scenebox/internal/logger"
)

// Options wires a stage to its scene and collaborators.
// Paths, Mixers and Clock are created when nil.
type Options struct {
	Scene    *scene.Graph
	Rig      *camera.Rig
	Host     Host
	Renderer Renderer

	Paths  *animation.PathTable
	Mixers *animation.Registry
	Clock  *animation.Clock

	FanObject string
	FanSpeed  int
	PathSpeed float32
	Lookahead float32 // zero means animation.DefaultLookahead
}

// Stage is the context of one running scene: its input state and the
// handlers that read and mutate it.
type Stage struct {
	state *UserInputState

	scene  *scene.Graph
	rig    *camera.Rig
	paths  *animation.PathTable
	mixers *animation.Registry
	clock  *animation.Clock

	Router    *InputRouter
	Scheduler *FrameScheduler
	Resizer   *ResizeHandler

	detach []func()
	log    *zap.Logger
}

// NewStage builds a stage from opts.
func NewStage(opts Options) (*Stage, error) {
	switch {
	case opts.Scene == nil:
		return nil, errors.New("stage needs a scene")
	case opts.Rig == nil:
		return nil, errors.New("stage needs a camera rig")
	case opts.Host == nil:
		return nil, errors.New("stage needs a host")
	case opts.Renderer == nil:
		return nil, errors.New("stage needs a renderer")
	}

	if opts.Paths == nil {
		opts.Paths = animation.NewPathTable()
	}
	if opts.Mixers == nil {
		opts.Mixers = animation.NewRegistry()
	}
	if opts.Clock == nil {
		opts.Clock = animation.NewClock()
	}
	if opts.Lookahead == 0 {
		opts.Lookahead = animation.DefaultLookahead
	}

	s := &Stage{
		state:  &UserInputState{FanSpeed: opts.FanSpeed, ActiveCamera: opts.Rig.Index()},
		scene:  opts.Scene,
		rig:    opts.Rig,
		paths:  opts.Paths,
		mixers: opts.Mixers,
		clock:  opts.Clock,
		log:    logger.Named("stage"),
	}

	s.Router = &InputRouter{
		state: s.state,
		rig:   opts.Rig,
		host:  opts.Host,
		log:   logger.Named("input"),
	}
	s.Scheduler = &FrameScheduler{
		scene:     opts.Scene,
		rig:       opts.Rig,
		paths:     opts.Paths,
		mixers:    opts.Mixers,
		clock:     opts.Clock,
		renderer:  opts.Renderer,
		host:      opts.Host,
		state:     s.state,
		fanObject: opts.FanObject,
		pathSpeed: opts.PathSpeed,
		lookahead: opts.Lookahead,
	}
	s.Resizer = &ResizeHandler{
		scene:    opts.Scene,
		rig:      opts.Rig,
		renderer: opts.Renderer,
		host:     opts.Host,
	}

	return s, nil
}

// State returns a copy of the current input state.
func (s *Stage) State() UserInputState {
	return *s.state
}

// Clock returns the clock driving clip playback.
func (s *Stage) Clock() *animation.Clock {
	return s.clock
}

// Attach registers the router and resize handler on bus.
func (s *Stage) Attach(bus *input.Bus) {
	s.detach = append(s.detach,
		bus.OnKey(s.Router.HandleKey),
		bus.OnResize(func(int, int) {
			s.Resizer.Resize()
		}),
	)
}

// Start starts the clock and the frame loop.
func (s *Stage) Start() {
	s.clock.Start()
	s.Scheduler.Start()
}

// AddModel inserts a loaded model into the scene and starts all of its
// clips at the current clock time.
func (s *Stage) AddModel(m *assets.Model) {
	s.scene.Add(m.Root)
	if len(m.Clips) == 0 {
		s.log.Info("model added", zap.String("name", m.Name))
		return
	}

	mixer := animation.NewMixer(m.Root)
	now := s.clock.Elapsed()
	for _, clip := range m.Clips {
		mixer.ClipAction(clip).Play(now)
	}
	s.mixers.Add(mixer)

	s.log.Info("model added",
		zap.String("name", m.Name),
		zap.Int("clips", len(m.Clips)),
		zap.Float64("started_at", now))
}

// Close detaches every listener and stops the frame loop.
func (s *Stage) Close() {
	for _, fn := range s.detach {
		fn()
	}
	s.detach = nil
	s.Scheduler.Stop()
}
