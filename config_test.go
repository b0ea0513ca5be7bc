package vantage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig does not validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero min scale", func(c *Config) { c.Viewport.MinScale = 0 }, "min_scale"},
		{"negative min scale", func(c *Config) { c.Viewport.MinScale = -1 }, "min_scale"},
		{"scale range inverted", func(c *Config) { c.Viewport.MinScale = 4 }, "max_scale"},
		{"position range inverted", func(c *Config) { c.Viewport.MinX = 9000 }, "position"},
		{"zero concurrency", func(c *Config) { c.ConcurrencyLimit = 0 }, "concurrency_limit"},
		{"negative skip probability", func(c *Config) { c.FrameSkipProbability = -0.1 }, "frame_skip_probability"},
		{"skip probability over one", func(c *Config) { c.FrameSkipProbability = 1.5 }, "frame_skip_probability"},
		{"thresholds inverted", func(c *Config) { c.Quality.DegradeFPS = 55; c.Quality.UpgradeFPS = 45 }, "degrade_fps"},
		{"thresholds equal", func(c *Config) { c.Quality.DegradeFPS = 50; c.Quality.UpgradeFPS = 50 }, "degrade_fps"},
		{"negative dwell", func(c *Config) { c.DwellTimeMs = -1 }, "dwell_time_ms"},
		{"zero window", func(c *Config) { c.WindowSize = 0 }, "window_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted a broken config")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vantage.yaml")
	data := []byte(`
viewport:
  min_x: -1000
  max_x: 4000
  max_y: 2500
  min_scale: 0.25
  max_scale: 4.0
concurrency_limit: 5
frame_skip_probability: 0.5
quality:
  degrade_fps: 30
  upgrade_fps: 50
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Viewport.MinX != -1000 || cfg.Viewport.MaxX != 4000 || cfg.Viewport.MaxScale != 4.0 {
		t.Errorf("viewport = %+v", cfg.Viewport)
	}
	if cfg.ConcurrencyLimit != 5 {
		t.Errorf("ConcurrencyLimit = %d, want 5", cfg.ConcurrencyLimit)
	}
	if cfg.Quality.DegradeFPS != 30 || cfg.Quality.UpgradeFPS != 50 {
		t.Errorf("quality = %+v", cfg.Quality)
	}
	// Fields absent from the file keep their defaults.
	if cfg.WindowSize != 60 || cfg.DwellTimeMs != 2000 {
		t.Errorf("defaults lost: window=%d dwell=%g", cfg.WindowSize, cfg.DwellTimeMs)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("VANTAGE_CONCURRENCYLIMIT", "7")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ConcurrencyLimit != 7 {
		t.Errorf("ConcurrencyLimit = %d, want env override 7", cfg.ConcurrencyLimit)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadConfig succeeded on a missing file")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("viewport: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("err = %v, want parse failure", err)
	}
}

func TestLoadConfigValidatesResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(path, []byte("concurrency_limit: -2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig accepted an invalid concurrency limit")
	}
}

func TestConstraintsConfigConversion(t *testing.T) {
	cc := ConstraintsConfig{
		MinX: -10, MinY: -20, MaxX: 10, MaxY: 20,
		MinScale: 0.5, MaxScale: 2, Padding: 5,
	}
	c := cc.Constraints()
	if c.MinPosition != (Vec2{X: -10, Y: -20}) || c.MaxPosition != (Vec2{X: 10, Y: 20}) {
		t.Errorf("positions = %+v / %+v", c.MinPosition, c.MaxPosition)
	}
	if c.MinScale != 0.5 || c.MaxScale != 2 || c.Padding != 5 {
		t.Errorf("constraints = %+v", c)
	}
	if !c.Valid() {
		t.Error("converted constraints not valid")
	}
}
