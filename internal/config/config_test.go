package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test window defaults
	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test animation defaults
	if cfg.Animation.FanObject != "Fan" {
		t.Errorf("expected fan object 'Fan', got %s", cfg.Animation.FanObject)
	}
	if cfg.Animation.FanSpeed != 1 {
		t.Errorf("expected fan speed 1, got %d", cfg.Animation.FanSpeed)
	}
	if cfg.Animation.Lookahead != 0.01 {
		t.Errorf("expected lookahead 0.01, got %f", cfg.Animation.Lookahead)
	}

	// Test camera and path defaults
	if len(cfg.Cameras) != 3 {
		t.Errorf("expected 3 cameras, got %d", len(cfg.Cameras))
	}
	if len(cfg.Paths) != 1 || cfg.Paths[0].Object != "Bird" {
		t.Errorf("expected a single Bird path, got %+v", cfg.Paths)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "scenebox.yaml")

	yamlContent := `
window:
  title: "demo"
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  clear_color: "#ff8000"

animation:
  fan_object: "Windmill"
  fan_speed: 5
  path_speed: 0.004
  lookahead: 0.02

cameras:
  - position: [0, 5, 10]
    fov: 50
  - position: [10, 10, 10]
    look_at: [0, 0, 0]

paths:
  - object: "Plane"
    points:
      - [0, 0, 0]
      - [1, 2, 0]
      - [3, 2, 0]
      - [4, 0, 0]

assets:
  root: "/srv/models"
  models: ["Windmill.yaml"]

logging:
  level: "debug"
  log_file: "scenebox.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Window.Title != "demo" {
		t.Errorf("expected title 'demo', got %s", cfg.Window.Title)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Animation.FanObject != "Windmill" {
		t.Errorf("expected fan object 'Windmill', got %s", cfg.Animation.FanObject)
	}
	if cfg.Animation.FanSpeed != 5 {
		t.Errorf("expected fan speed 5, got %d", cfg.Animation.FanSpeed)
	}

	if len(cfg.Cameras) != 2 {
		t.Fatalf("expected file cameras to replace defaults, got %d", len(cfg.Cameras))
	}
	if cfg.Cameras[0].LookAt != nil {
		t.Error("expected first camera without look_at")
	}
	if len(cfg.Cameras[1].LookAt) != 3 {
		t.Error("expected second camera look_at")
	}

	if len(cfg.Paths) != 1 || cfg.Paths[0].Object != "Plane" {
		t.Errorf("expected Plane path, got %+v", cfg.Paths)
	}

	if cfg.Assets.Root != "/srv/models" {
		t.Errorf("expected asset root /srv/models, got %s", cfg.Assets.Root)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "scenebox.log" {
		t.Errorf("expected log file 'scenebox.log', got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate, got %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/scenebox.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no cameras", func(c *Config) { c.Cameras = nil }},
		{"short position", func(c *Config) { c.Cameras[0].Position = []float32{1, 2} }},
		{"short look_at", func(c *Config) { c.Cameras[1].LookAt = []float32{1} }},
		{"path without object", func(c *Config) { c.Paths[0].Object = "" }},
		{"three control points", func(c *Config) { c.Paths[0].Points = c.Paths[0].Points[:3] }},
		{"short control point", func(c *Config) { c.Paths[0].Points[2] = []float32{0, 0} }},
		{"bad clear color", func(c *Config) { c.Window.ClearColor = "#zz0000" }},
		{"loud audio", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"zero capture scale", func(c *Config) { c.Capture.Scale = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestCameraConfigs(t *testing.T) {
	cfg := Default()
	cfg.Cameras = []CameraConfig{
		{Position: []float32{1, 2, 3}},
		{Position: []float32{0, 0, 5}, LookAt: []float32{0, 0, 0}, FOV: 45, Near: 1, Far: 50},
	}

	cams := cfg.CameraConfigs()
	if len(cams) != 2 {
		t.Fatalf("expected 2 camera configs, got %d", len(cams))
	}

	if cams[0].Position.X != 1 || cams[0].Position.Y != 2 || cams[0].Position.Z != 3 {
		t.Errorf("unexpected position %+v", cams[0].Position)
	}
	if cams[0].LookAt != nil {
		t.Error("expected nil look-at for first camera")
	}
	if cams[0].FOV != 75 || cams[0].Near != 0.1 || cams[0].Far != 1000 {
		t.Errorf("expected camera defaults, got fov=%f near=%f far=%f", cams[0].FOV, cams[0].Near, cams[0].Far)
	}
	if want := float32(1280) / float32(720); cams[0].Aspect != want {
		t.Errorf("expected aspect %f, got %f", want, cams[0].Aspect)
	}

	if cams[1].LookAt == nil || cams[1].LookAt.Z != 0 {
		t.Error("expected look-at at origin for second camera")
	}
	if cams[1].FOV != 45 || cams[1].Near != 1 || cams[1].Far != 50 {
		t.Errorf("unexpected projection fov=%f near=%f far=%f", cams[1].FOV, cams[1].Near, cams[1].Far)
	}
}

func TestPathCurve(t *testing.T) {
	p := PathConfig{
		Object: "Plane",
		Points: [][]float32{{0, 0, 0}, {1, 2, 0}, {3, 2, 0}, {4, 0, 0}},
	}
	curve := p.Curve()

	start := curve.PointAt(0)
	if start.X != 0 || start.Y != 0 || start.Z != 0 {
		t.Errorf("expected curve to start at origin, got %+v", start)
	}
	end := curve.PointAt(1)
	if d := (end.X-4)*(end.X-4) + end.Y*end.Y + end.Z*end.Z; d > 1e-6 {
		t.Errorf("expected curve to end at (4,0,0), got %+v", end)
	}
}

func TestClearRGB(t *testing.T) {
	w := WindowConfig{ClearColor: "#ff8000"}
	rgb := w.ClearRGB()
	if rgb[0] != 1 || rgb[1] != float32(0x80)/255 || rgb[2] != 0 {
		t.Errorf("unexpected rgb %v", rgb)
	}

	w.ClearColor = "nope"
	if rgb := w.ClearRGB(); rgb != [3]float32{} {
		t.Errorf("expected black for invalid color, got %v", rgb)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create scenebox.yaml in current directory
	configPath := filepath.Join(tmpDir, "scenebox.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find scenebox.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scenebox.yaml")

	cfg := Default()
	cfg.Window.Title = "saved"
	cfg.Animation.FanSpeed = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Window.Title != "saved" || loaded.Animation.FanSpeed != 7 {
		t.Errorf("saved values not restored: title=%s fan=%d", loaded.Window.Title, loaded.Animation.FanSpeed)
	}
}

func TestSaveToRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenebox.yaml")

	cfg := Default()
	cfg.Cameras = nil
	if err := cfg.SaveTo(path); err == nil {
		t.Fatal("expected error saving config without cameras")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("invalid config was written to %s", path)
	}
}

func TestSaveFoundByLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("APPDATA", home)

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)
	os.Chdir(t.TempDir())

	cfg := Default()
	cfg.Animation.PathSpeed = 0.005
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if want := filepath.Join(ConfigDir(), fileName); path != want {
		t.Errorf("expected save path %s, got %s", want, path)
	}
	if found := findConfigFile(); found != path {
		t.Errorf("expected findConfigFile to return %s, got %q", path, found)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Animation.PathSpeed != 0.005 {
		t.Errorf("expected path speed 0.005, got %v", loaded.Animation.PathSpeed)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}

	path := filepath.Join(t.TempDir(), fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("marshalled defaults do not load: %v", err)
	}
	if len(loaded.Cameras) != len(Default().Cameras) {
		t.Errorf("expected %d cameras, got %d", len(Default().Cameras), len(loaded.Cameras))
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config) error
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) error {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				return nil
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "assets flag",
			setup: func() {
				*flagAssets = "/tmp/models"
			},
			verify: func(cfg *Config) error {
				if cfg.Assets.Root != "/tmp/models" {
					t.Errorf("expected asset root /tmp/models, got %s", cfg.Assets.Root)
				}
				return nil
			},
			teardown: func() {
				*flagAssets = ""
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) error {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
				return nil
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) error {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
				return nil
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) error {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
				return nil
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "mute flag",
			setup: func() {
				*flagMute = true
			},
			verify: func(cfg *Config) error {
				if cfg.Audio.Enabled {
					t.Error("expected audio to be disabled with mute flag")
				}
				return nil
			},
			teardown: func() {
				*flagMute = false
			},
		},
		{
			name: "fan speed flag",
			setup: func() {
				*flagFanSpeed = -3
			},
			verify: func(cfg *Config) error {
				if cfg.Animation.FanSpeed != -3 {
					t.Errorf("expected fan speed -3, got %d", cfg.Animation.FanSpeed)
				}
				return nil
			},
			teardown: func() {
				*flagFanSpeed = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "scenebox.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scenebox.yaml")
	if err := os.WriteFile(configPath, []byte("cameras: []\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for config without cameras, got nil")
	}
}

func TestLoadFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "scenebox.yaml")
	if err := os.WriteFile(configPath, []byte("animation:\n  path_speed: 0.05\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Animation.PathSpeed != 0.05 {
		t.Errorf("expected path speed 0.05, got %f", cfg.Animation.PathSpeed)
	}
	if cfg.Animation.FanSpeed != 1 {
		t.Errorf("expected default fan speed 1, got %d", cfg.Animation.FanSpeed)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
