package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenebox/internal/assets"
	"github.com/Faultbox/scenebox/internal/engine/animation"
	"github.com/Faultbox/scenebox/internal/engine/camera"
	"github.com/Faultbox/scenebox/internal/engine/input"
	"github.com/Faultbox/scenebox/internal/engine/scene"
	"github.com/Faultbox/scenebox/pkg/math"
)

type fakeHost struct {
	width, height int
	requests      []func()
}

func (h *fakeHost) RequestFrame(fn func()) {
	h.requests = append(h.requests, fn)
}

func (h *fakeHost) ViewportSize() (int, int) {
	return h.width, h.height
}

// runFrame delivers the oldest requested frame.
func (h *fakeHost) runFrame() {
	fn := h.requests[0]
	h.requests = h.requests[1:]
	fn()
}

type renderCall struct {
	camera *camera.Perspective
	fanZ   float32
	birdX  float32
	robotY float32
}

type fakeRenderer struct {
	renders []renderCall
	sizes   [][2]int
}

func (r *fakeRenderer) Render(g *scene.Graph, cam *camera.Perspective) {
	call := renderCall{camera: cam}
	if fan := g.ObjectByName("Fan"); fan != nil {
		call.fanZ = fan.Rotation.Z
	}
	if bird := g.ObjectByName("Bird"); bird != nil {
		call.birdX = bird.Position.X
	}
	if robot := g.ObjectByName("Robot"); robot != nil {
		call.robotY = robot.Position.Y
	}
	r.renders = append(r.renders, call)
}

func (r *fakeRenderer) SetSize(width, height int) {
	r.sizes = append(r.sizes, [2]int{width, height})
}

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

type fixture struct {
	stage    *Stage
	host     *fakeHost
	renderer *fakeRenderer
	graph    *scene.Graph
	rig      *camera.Rig
	paths    *animation.PathTable
	time     *fakeTime
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	graph := scene.New()
	graph.Add(scene.NewObject("Fan"))
	graph.Add(scene.NewObject("Bird"))

	rig, err := camera.NewRig(
		camera.NewPerspective(camera.DefaultConfig()),
		camera.NewPerspective(camera.DefaultConfig()),
		camera.NewPerspective(camera.DefaultConfig()),
	)
	require.NoError(t, err)

	paths := animation.NewPathTable()
	paths.Register("Bird", math.NewCubicBezier(
		math.Vec3{X: 0}, math.Vec3{X: 10}, math.Vec3{X: 20}, math.Vec3{X: 30},
	))

	ft := &fakeTime{t: time.Unix(1000, 0)}
	host := &fakeHost{width: 800, height: 600}
	renderer := &fakeRenderer{}

	stage, err := NewStage(Options{
		Scene:     graph,
		Rig:       rig,
		Host:      host,
		Renderer:  renderer,
		Paths:     paths,
		Clock:     animation.NewClockWithSource(ft.now),
		FanObject: "Fan",
		FanSpeed:  1,
		PathSpeed: 0.1,
	})
	require.NoError(t, err)

	return &fixture{
		stage:    stage,
		host:     host,
		renderer: renderer,
		graph:    graph,
		rig:      rig,
		paths:    paths,
		time:     ft,
	}
}

func TestNewStageValidation(t *testing.T) {
	graph := scene.New()
	rig, err := camera.NewRig(camera.NewPerspective(camera.DefaultConfig()))
	require.NoError(t, err)
	host := &fakeHost{}
	renderer := &fakeRenderer{}

	tests := []struct {
		name string
		opts Options
	}{
		{"no scene", Options{Rig: rig, Host: host, Renderer: renderer}},
		{"no rig", Options{Scene: graph, Host: host, Renderer: renderer}},
		{"no host", Options{Scene: graph, Rig: rig, Renderer: renderer}},
		{"no renderer", Options{Scene: graph, Rig: rig, Host: host}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStage(tt.opts)
			assert.Error(t, err)
		})
	}

	stage, err := NewStage(Options{Scene: graph, Rig: rig, Host: host, Renderer: renderer})
	require.NoError(t, err)
	assert.Equal(t, float32(animation.DefaultLookahead), stage.Scheduler.lookahead)
	assert.NotNil(t, stage.Clock())
}

func TestRouterFanSpeed(t *testing.T) {
	f := newFixture(t)

	f.stage.Router.HandleKey(input.KeyPress(input.KeyRight))
	f.stage.Router.HandleKey(input.KeyPress(input.KeyRight))
	assert.Equal(t, 3, f.stage.State().FanSpeed)

	for i := 0; i < 5; i++ {
		f.stage.Router.HandleKey(input.KeyPress(input.KeyLeft))
	}
	assert.Equal(t, -2, f.stage.State().FanSpeed, "fan speed is unbounded")
}

func TestRouterKeyTable(t *testing.T) {
	tests := []struct {
		name       string
		keys       []input.Key
		wantFan    int
		wantCamera int
	}{
		{"right speeds up", []input.Key{input.KeyRight}, 2, 0},
		{"left slows down", []input.Key{input.KeyLeft}, 0, 0},
		{"left reverses", []input.Key{input.KeyLeft, input.KeyLeft}, -1, 0},
		{"up advances", []input.Key{input.KeyUp}, 1, 1},
		{"down wraps back", []input.Key{input.KeyDown}, 1, 2},
		{"other keys ignored", []input.Key{input.KeyEscape, input.KeyF12}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			for _, k := range tt.keys {
				f.stage.Router.HandleKey(input.KeyPress(k))
			}
			assert.Equal(t, tt.wantFan, f.stage.State().FanSpeed)
			assert.Equal(t, tt.wantCamera, f.stage.State().ActiveCamera)
			assert.Equal(t, tt.wantCamera, f.rig.Index())
		})
	}
}

func TestRouterCameraCycle(t *testing.T) {
	f := newFixture(t)

	f.stage.Router.HandleKey(input.KeyPress(input.KeyUp))
	assert.Equal(t, 1, f.stage.State().ActiveCamera)
	assert.Equal(t, float32(800)/float32(600), f.rig.Active().Aspect())
	assert.Equal(t, float32(1), f.rig.Camera(0).Aspect(), "inactive cameras keep their aspect")

	f.stage.Router.HandleKey(input.KeyPress(input.KeyDown))
	f.stage.Router.HandleKey(input.KeyPress(input.KeyDown))
	assert.Equal(t, 2, f.stage.State().ActiveCamera)
	assert.Equal(t, 2, f.rig.Index())
}

func TestRouterIgnoresOtherKeys(t *testing.T) {
	f := newFixture(t)
	before := f.stage.State()

	f.stage.Router.HandleKey(input.Event{Type: input.EventKeyDown, Key: input.KeyUnknown, Code: 4})
	f.stage.Router.HandleKey(input.KeyPress(input.KeySpace))

	assert.Equal(t, before, f.stage.State())
	assert.Equal(t, 0, f.rig.Index())
}

func TestSchedulerStepOrder(t *testing.T) {
	f := newFixture(t)

	robot := scene.NewObject("Robot")
	f.stage.AddModel(&assets.Model{
		Name: "Robot",
		Root: robot,
		Clips: []*animation.Clip{
			animation.NewClip("rise", 0, animation.LoopOnce, []animation.Track{{
				Path:   animation.PathPosition,
				Times:  []float32{0, 2},
				Values: []float32{0, 0, 0, 0, 10, 0},
			}}),
		},
	})

	f.stage.Clock().Start()
	f.time.advance(time.Second)
	f.stage.Scheduler.Step()

	require.Len(t, f.renderer.renders, 1)
	call := f.renderer.renders[0]
	assert.InDelta(t, math.DegToRad(1), call.fanZ, 1e-6, "fan rotated before render")
	assert.Greater(t, call.birdX, float32(0), "path advanced before render")
	assert.InDelta(t, 5, call.robotY, 1e-4, "mixers updated before render")
	assert.Same(t, f.rig.Active(), call.camera)

	entry, ok := f.paths.Entry("Bird")
	require.True(t, ok)
	assert.InDelta(t, 0.1, entry.Progress, 1e-6)
	assert.Equal(t, uint64(1), f.stage.Scheduler.Frames())
}

func TestSchedulerUsesCurrentFanSpeed(t *testing.T) {
	f := newFixture(t)

	f.stage.Scheduler.Step()
	f.stage.Router.HandleKey(input.KeyPress(input.KeyRight))
	f.stage.Scheduler.Step()

	fan := f.graph.ObjectByName("Fan")
	assert.InDelta(t, math.DegToRad(3), fan.Rotation.Z, 1e-6)
}

func TestSchedulerSkipsMissingObjects(t *testing.T) {
	f := newFixture(t)
	f.graph.Remove(f.graph.ObjectByName("Fan"))
	f.paths.Register("Ghost", math.NewCubicBezier(math.Vec3{}, math.Vec3{}, math.Vec3{}, math.Vec3{}))

	assert.NotPanics(t, func() { f.stage.Scheduler.Step() })

	ghost, ok := f.paths.Entry("Ghost")
	require.True(t, ok)
	assert.Zero(t, ghost.Progress)
}

func TestSchedulerRearms(t *testing.T) {
	f := newFixture(t)

	f.stage.Start()
	assert.True(t, f.stage.Clock().Running())
	assert.Len(t, f.renderer.renders, 1)
	require.Len(t, f.host.requests, 1)

	f.host.runFrame()
	f.host.runFrame()
	assert.Len(t, f.renderer.renders, 3)
	assert.Len(t, f.host.requests, 1)

	f.stage.Scheduler.Stop()
	f.host.runFrame()
	assert.Len(t, f.renderer.renders, 3)
	assert.Empty(t, f.host.requests)
}

func TestSchedulerRestartKeepsOneLoop(t *testing.T) {
	f := newFixture(t)

	f.stage.Start()
	f.stage.Scheduler.Stop()
	f.stage.Scheduler.Start()
	assert.Len(t, f.renderer.renders, 2)
	require.Len(t, f.host.requests, 2)

	// the frame requested before Stop is stale
	f.host.runFrame()
	assert.Len(t, f.renderer.renders, 2)
	require.Len(t, f.host.requests, 1)

	f.host.runFrame()
	assert.Len(t, f.renderer.renders, 3)
	assert.Len(t, f.host.requests, 1)
	assert.Equal(t, uint64(3), f.stage.Scheduler.Frames())
}

func TestSchedulerStartTwice(t *testing.T) {
	f := newFixture(t)

	f.stage.Scheduler.Start()
	f.stage.Scheduler.Start()
	f.host.runFrame()
	f.host.runFrame()

	assert.Len(t, f.renderer.renders, 3)
	assert.Len(t, f.host.requests, 1)
}

func TestResize(t *testing.T) {
	f := newFixture(t)
	f.host.width, f.host.height = 400, 300

	f.stage.Resizer.Resize()

	assert.Equal(t, [][2]int{{400, 300}}, f.renderer.sizes)
	assert.Len(t, f.renderer.renders, 1)
	assert.Equal(t, float32(400)/float32(300), f.rig.Active().Aspect())
}

func TestResizeZeroHeight(t *testing.T) {
	f := newFixture(t)
	f.host.width, f.host.height = 640, 0

	f.stage.Resizer.Resize()

	assert.Equal(t, float32(1), f.rig.Active().Aspect())
	assert.Len(t, f.renderer.renders, 1)
}

func TestAttachAndClose(t *testing.T) {
	f := newFixture(t)
	bus := input.NewBus()

	f.stage.Attach(bus)
	assert.Equal(t, 2, bus.Listeners())

	f.host.width, f.host.height = 1024, 512
	bus.Push(input.KeyPress(input.KeyRight))
	bus.Push(input.Event{Type: input.EventKeyUp, Key: input.KeyRight})
	bus.Push(input.Event{Type: input.EventResize, Width: 1024, Height: 512})
	assert.False(t, bus.Dispatch())

	assert.Equal(t, 2, f.stage.State().FanSpeed)
	assert.Equal(t, float32(2), f.rig.Active().Aspect())
	assert.Len(t, f.renderer.renders, 1)

	f.stage.Close()
	assert.Equal(t, 0, bus.Listeners())

	bus.Push(input.KeyPress(input.KeyRight))
	bus.Dispatch()
	assert.Equal(t, 2, f.stage.State().FanSpeed)
}

func TestAddModelWithoutClips(t *testing.T) {
	f := newFixture(t)

	f.stage.AddModel(&assets.Model{Name: "Crate", Root: scene.NewObject("Crate")})

	assert.NotNil(t, f.graph.ObjectByName("Crate"))
	assert.Equal(t, 0, f.stage.mixers.Len())
}
