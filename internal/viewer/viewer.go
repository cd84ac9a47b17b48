// Package viewer wires the SDL window, GL renderer and stage into the main loop.
package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/scenebox/internal/assets"
	"github.com/Faultbox/scenebox/internal/config"
	"github.com/Faultbox/scenebox/internal/engine/animation"
	"github.com/Faultbox/scenebox/internal/engine/audio"
	"github.com/Faultbox/scenebox/internal/engine/camera"
	"github.com/Faultbox/scenebox/internal/engine/debug"
	"github.com/Faultbox/scenebox/internal/engine/input"
	"github.com/Faultbox/scenebox/internal/engine/renderer"
	"github.com/Faultbox/scenebox/internal/engine/scene"
	"github.com/Faultbox/scenebox/internal/engine/window"
	"github.com/Faultbox/scenebox/internal/game"
	"github.com/Faultbox/scenebox/internal/logger"
)

// Viewer is the main application instance.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	bus      *input.Bus
	loader   *assets.Loader
	stage    *game.Stage
	audio    *audio.Manager
	capture  *debug.ScreenshotCapture

	captureNext bool
	detachKeys  func()
	log         *zap.Logger
}

// New creates the window, renderer and stage and starts loading models.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config:  cfg,
		bus:     input.NewBus(),
		loader:  assets.NewLoader(cfg.Assets.Root),
		capture: debug.NewScreenshotCapture(cfg.Capture.Dir, "scenebox"),
		log:     logger.Named("viewer"),
	}
	v.capture.SetScale(cfg.Capture.Scale)

	v.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	rig, err := camera.NewRigFromConfigs(cfg.CameraConfigs())
	if err != nil {
		return nil, fmt.Errorf("failed to create camera rig: %w", err)
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.ViewportSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Window.ClearRGB(),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	paths := animation.NewPathTable()
	for _, p := range cfg.Paths {
		paths.Register(p.Object, p.Curve())
	}

	v.stage, err = game.NewStage(game.Options{
		Scene:     scene.New(),
		Rig:       rig,
		Host:      v.window,
		Renderer:  v.renderer,
		Paths:     paths,
		FanObject: cfg.Animation.FanObject,
		FanSpeed:  cfg.Animation.FanSpeed,
		PathSpeed: cfg.Animation.PathSpeed,
		Lookahead: cfg.Animation.Lookahead,
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create stage: %w", err)
	}
	v.stage.Attach(v.bus)
	v.detachKeys = v.bus.OnKey(v.handleKey)

	// The drawable may differ from the requested size on high-DPI displays.
	rig.SyncAspect(width, height)

	if cfg.Audio.Enabled {
		v.initAudio()
	}

	for _, path := range cfg.Assets.Models {
		v.loadModel(path)
	}

	v.log.Info("viewer initialized successfully")
	return v, nil
}

// loadModel queues an asynchronous manifest load; the model joins the scene
// on the frame thread once Poll delivers it.
func (v *Viewer) loadModel(path string) {
	v.loader.Load(path,
		v.stage.AddModel,
		func(p assets.Progress) {
			v.log.Debug("loading model",
				zap.String("path", path),
				zap.String("progress", fmt.Sprintf("%.0f%%", p.Percent())))
		},
		func(err error) {
			v.log.Error("model not added", zap.String("path", path), zap.Error(err))
		},
	)
}

// initAudio opens the speaker and loads the configured cues. Audio is
// optional: failures are logged and the viewer runs silent.
func (v *Viewer) initAudio() {
	m := audio.New()
	m.SetVolume(v.config.Audio.Volume)
	if err := m.Init(); err != nil {
		v.log.Warn("audio disabled", zap.Error(err))
		return
	}

	for name, path := range v.config.Audio.Cues {
		if !filepath.IsAbs(path) {
			path = filepath.Join(v.config.Assets.Root, path)
		}
		data, err := os.ReadFile(path)
		if err == nil {
			err = m.Load(name, data)
		}
		if err != nil {
			v.log.Warn("cue not loaded", zap.String("cue", name), zap.Error(err))
		}
	}
	v.audio = m
}

// handleKey covers the application keys and plays feedback cues for the
// keys the stage router handles.
func (v *Viewer) handleKey(e input.Event) {
	switch e.Key {
	case input.KeyEscape:
		v.running = false
	case input.KeySpace, input.KeyP:
		clock := v.stage.Clock()
		if clock.Running() {
			clock.Stop()
		} else {
			clock.Start()
		}
		v.log.Info("clip playback", zap.Bool("running", clock.Running()))
	case input.KeyUp, input.KeyDown:
		v.playCue("camera")
	case input.KeyLeft, input.KeyRight:
		v.playCue("fan")
	case input.KeyF12:
		v.captureNext = true
	case input.KeyO:
		v.openModelDialog()
	}
}

func (v *Viewer) playCue(name string) {
	if v.audio == nil {
		return
	}
	if err := v.audio.Play(name); err != nil {
		v.log.Debug("cue not played", zap.String("cue", name), zap.Error(err))
	}
}

// screenshot saves the frame just rendered, before it is presented.
func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.capture.CaptureFromPixels(pixels, width, height)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// openModelDialog asks for a manifest without blocking the frame loop. The
// model reaches the scene through the loader queue like any other load.
func (v *Viewer) openModelDialog() {
	stage := v.stage
	go func() {
		filename, err := dialog.File().
			Filter("Model manifests", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				v.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}

		v.loader.Load(filename, stage.AddModel, nil, func(err error) {
			v.log.Error("model not added", zap.String("path", filename), zap.Error(err))
		})
	}()
}

// Run starts the main loop and blocks until the window closes.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")
	v.stage.Start()

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		v.window.Poll(v.bus)
		if v.bus.Dispatch() {
			v.running = false
			break
		}
		if !v.running {
			break
		}

		// 2. Hand finished loads to the scene
		v.loader.Poll()

		// 3. Tick and render
		if v.window.RunFrames() == 0 {
			return fmt.Errorf("frame loop stopped")
		}

		if v.captureNext {
			v.captureNext = false
			v.screenshot()
		}

		// 4. Present (swap buffers)
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Uint64("frames", v.stage.Scheduler.Frames()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.detachKeys != nil {
		v.detachKeys()
		v.detachKeys = nil
	}
	if v.stage != nil {
		v.stage.Close()
		v.stage = nil
	}
	if v.audio != nil {
		v.audio.Close()
		v.audio = nil
	}
	if v.renderer != nil {
		v.renderer.Close()
		v.renderer = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}
