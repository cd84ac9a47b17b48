// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/scenebox/internal/engine/camera"
	"github.com/Faultbox/scenebox/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Animation AnimationConfig `yaml:"animation"`
	Cameras   []CameraConfig  `yaml:"cameras"`
	Paths     []PathConfig    `yaml:"paths"`
	Assets    AssetsConfig    `yaml:"assets"`
	Audio     AudioConfig     `yaml:"audio"`
	Capture   CaptureConfig   `yaml:"capture"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	ClearColor string `yaml:"clear_color"` // #rrggbb
}

// AnimationConfig holds the per-tick animation parameters.
type AnimationConfig struct {
	FanObject string  `yaml:"fan_object"`
	FanSpeed  int     `yaml:"fan_speed"`  // degrees per tick
	PathSpeed float32 `yaml:"path_speed"` // progress per tick
	Lookahead float32 `yaml:"lookahead"`
}

// CameraConfig describes one rig camera.
type CameraConfig struct {
	Position []float32 `yaml:"position"`
	LookAt   []float32 `yaml:"look_at,omitempty"`
	FOV      float32   `yaml:"fov"`
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`
}

// PathConfig binds a named object to a cubic Bézier curve.
type PathConfig struct {
	Object string      `yaml:"object"`
	Points [][]float32 `yaml:"points"` // four control points
}

// AssetsConfig holds model manifest locations.
type AssetsConfig struct {
	Root   string   `yaml:"root"`
	Models []string `yaml:"models"`
}

// AudioConfig holds input feedback cue settings.
type AudioConfig struct {
	Enabled bool              `yaml:"enabled"`
	Volume  float64           `yaml:"volume"`
	Cues    map[string]string `yaml:"cues"` // cue name -> WAV path under the asset root
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir   string  `yaml:"dir"`
	Scale float64 `yaml:"scale"` // (0, 1], 1 is full size
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "scenebox",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ClearColor: "#272120",
		},
		Animation: AnimationConfig{
			FanObject: "Fan",
			FanSpeed:  1,
			PathSpeed: 0.002,
			Lookahead: 0.01,
		},
		Cameras: []CameraConfig{
			{Position: []float32{0, 20, 20}, FOV: 75, Near: 0.1, Far: 1000},
			{Position: []float32{30, 15, 0}, LookAt: []float32{0, 10, -10}, FOV: 60, Near: 0.1, Far: 1000},
			{Position: []float32{-25, 30, -35}, LookAt: []float32{0, 10, -10}, FOV: 60, Near: 0.1, Far: 1000},
		},
		Paths: []PathConfig{
			{
				Object: "Bird",
				Points: [][]float32{
					{-20, 15, -10},
					{-10, 30, 20},
					{10, 0, -40},
					{20, 15, -10},
				},
			},
		},
		Assets: AssetsConfig{
			Root:   "assets",
			Models: []string{"Fan.yaml", "Bird.yaml", "Robot.yaml"},
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
			Cues: map[string]string{
				"camera": "sounds/camera.wav",
				"fan":    "sounds/tick.wav",
			},
		},
		Capture: CaptureConfig{
			Dir:   "screenshots",
			Scale: 1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the shape of vector fields that YAML cannot enforce.
func (c *Config) Validate() error {
	if len(c.Cameras) == 0 {
		return errors.New("at least one camera is required")
	}
	for i, cc := range c.Cameras {
		if len(cc.Position) != 3 {
			return fmt.Errorf("camera %d: position needs 3 components, got %d", i, len(cc.Position))
		}
		if cc.LookAt != nil && len(cc.LookAt) != 3 {
			return fmt.Errorf("camera %d: look_at needs 3 components, got %d", i, len(cc.LookAt))
		}
	}
	for i, p := range c.Paths {
		if p.Object == "" {
			return fmt.Errorf("path %d: object name is required", i)
		}
		if len(p.Points) != 4 {
			return fmt.Errorf("path %q: needs 4 control points, got %d", p.Object, len(p.Points))
		}
		for j, pt := range p.Points {
			if len(pt) != 3 {
				return fmt.Errorf("path %q: point %d needs 3 components, got %d", p.Object, j, len(pt))
			}
		}
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %.2f outside [0, 1]", c.Audio.Volume)
	}
	if c.Capture.Scale <= 0 || c.Capture.Scale > 1 {
		return fmt.Errorf("capture scale %.2f outside (0, 1]", c.Capture.Scale)
	}
	if _, err := parseHexColor(c.Window.ClearColor); err != nil {
		return fmt.Errorf("window clear_color: %w", err)
	}
	return nil
}

// CameraConfigs converts the camera section into camera configs.
// Zero FOV, near and far values fall back to camera defaults.
func (c *Config) CameraConfigs() []camera.Config {
	def := camera.DefaultConfig()
	aspect := float32(1)
	if c.Window.Height > 0 {
		aspect = float32(c.Window.Width) / float32(c.Window.Height)
	}

	out := make([]camera.Config, 0, len(c.Cameras))
	for _, cc := range c.Cameras {
		cfg := def
		cfg.Aspect = aspect
		if len(cc.Position) == 3 {
			cfg.Position = math.Vec3{X: cc.Position[0], Y: cc.Position[1], Z: cc.Position[2]}
		}
		if len(cc.LookAt) == 3 {
			target := math.Vec3{X: cc.LookAt[0], Y: cc.LookAt[1], Z: cc.LookAt[2]}
			cfg.LookAt = &target
		}
		if cc.FOV > 0 {
			cfg.FOV = cc.FOV
		}
		if cc.Near > 0 {
			cfg.Near = cc.Near
		}
		if cc.Far > 0 {
			cfg.Far = cc.Far
		}
		out = append(out, cfg)
	}
	return out
}

// Curve returns the Bézier curve described by the path.
// Call Validate first; malformed points are treated as the origin.
func (p PathConfig) Curve() *math.CubicBezier {
	var pts [4][3]float32
	for i := 0; i < 4 && i < len(p.Points); i++ {
		copy(pts[i][:], p.Points[i])
	}
	return math.CubicBezierFromArray(pts)
}

// ClearRGB returns the window clear color as normalized RGB.
// An unparseable color yields black.
func (w WindowConfig) ClearRGB() [3]float32 {
	rgb, err := parseHexColor(w.ClearColor)
	if err != nil {
		return [3]float32{}
	}
	return rgb
}

func parseHexColor(s string) ([3]float32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return [3]float32{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return [3]float32{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}
