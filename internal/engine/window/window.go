// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenebox/internal/engine/input"
	"github.com/Faultbox/scenebox/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps SDL2 window and OpenGL context. It is also the frame host:
// callbacks passed to RequestFrame run once on the next RunFrames.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext

	frames []func()
	log    *zap.Logger
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}

	// Initialize SDL2
	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	// Double buffering
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	// Depth buffer
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	// Create window with OpenGL flag
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	// Create OpenGL context
	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	// Enable VSync
	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")
	w.frames = nil

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current window size in screen coordinates.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// ViewportSize returns the drawable size in pixels, which differs from
// GetSize on high-DPI displays.
func (w *Window) ViewportSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// RequestFrame schedules fn for the next frame.
func (w *Window) RequestFrame(fn func()) {
	w.frames = append(w.frames, fn)
}

// RunFrames runs the callbacks requested before this call and returns how
// many ran. Callbacks requested while running wait for the next call.
func (w *Window) RunFrames() int {
	queued := w.frames
	w.frames = nil
	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

// Poll drains the SDL event queue into bus.
func (w *Window) Poll(bus *input.Bus) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			bus.Push(input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				bus.Push(input.Event{
					Type:   input.EventResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := input.Event{
				Key:  translateKey(e.Keysym.Scancode),
				Code: int(e.Keysym.Scancode),
			}
			if e.Type == sdl.KEYDOWN {
				ev.Type = input.EventKeyDown
			} else {
				ev.Type = input.EventKeyUp
			}
			bus.Push(ev)
		}
	}
}

var keymap = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_LEFT:   input.KeyLeft,
	sdl.SCANCODE_RIGHT:  input.KeyRight,
	sdl.SCANCODE_UP:     input.KeyUp,
	sdl.SCANCODE_DOWN:   input.KeyDown,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_SPACE:  input.KeySpace,
	sdl.SCANCODE_P:      input.KeyP,
	sdl.SCANCODE_O:      input.KeyO,
	sdl.SCANCODE_F12:    input.KeyF12,
}

func translateKey(code sdl.Scancode) input.Key {
	if k, ok := keymap[code]; ok {
		return k
	}
	return input.KeyUnknown
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
