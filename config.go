package vantage

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// QualityThresholds are the FPS boundaries driving quality transitions.
// Empirically chosen defaults; configurable, not fixed requirements.
type QualityThresholds struct {
	DegradeFPS float64 `yaml:"degrade_fps" default:"45"`
	UpgradeFPS float64 `yaml:"upgrade_fps" default:"55"`
}

// ConstraintsConfig is the serializable form of Constraints.
type ConstraintsConfig struct {
	MinX     float64 `yaml:"min_x" default:"0"`
	MinY     float64 `yaml:"min_y" default:"0"`
	MaxX     float64 `yaml:"max_x" default:"3000"`
	MaxY     float64 `yaml:"max_y" default:"2000"`
	MinScale float64 `yaml:"min_scale" default:"0.5"`
	MaxScale float64 `yaml:"max_scale" default:"3.0"`
	Padding  float64 `yaml:"padding" default:"0"`
}

// Constraints converts the config form to the runtime value.
func (c ConstraintsConfig) Constraints() Constraints {
	return Constraints{
		MinPosition: Vec2{X: c.MinX, Y: c.MinY},
		MaxPosition: Vec2{X: c.MaxX, Y: c.MaxY},
		MinScale:    c.MinScale,
		MaxScale:    c.MaxScale,
		Padding:     c.Padding,
	}
}

// Config is everything the orchestrator recognizes at construction. Values
// load from YAML, then VANTAGE_* environment variables override, then
// Validate runs; validation failures are fatal at startup by design.
type Config struct {
	Viewport             ConstraintsConfig `yaml:"viewport"`
	ConcurrencyLimit     int               `yaml:"concurrency_limit" default:"3"`
	FrameSkipProbability float64           `yaml:"frame_skip_probability" default:"0.2"`
	Quality              QualityThresholds `yaml:"quality"`
	DwellTimeMs          float64           `yaml:"dwell_time_ms" default:"2000"`
	WindowSize           int               `yaml:"window_size" default:"60"`
	PanSensitivity       float64           `yaml:"pan_sensitivity" default:"1.0"`
	ZoomSensitivity      float64           `yaml:"zoom_sensitivity" default:"1.0"`
	Announcements        bool              `yaml:"announcements" default:"true"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Viewport: ConstraintsConfig{
			MinX: 0, MinY: 0, MaxX: 3000, MaxY: 2000,
			MinScale: 0.5, MaxScale: 3.0,
		},
		ConcurrencyLimit:     3,
		FrameSkipProbability: 0.2,
		Quality:              QualityThresholds{DegradeFPS: 45, UpgradeFPS: 55},
		DwellTimeMs:          2000,
		WindowSize:           60,
		PanSensitivity:       1.0,
		ZoomSensitivity:      1.0,
		Announcements:        true,
	}
}

// LoadConfig reads a YAML config file over the defaults, applies VANTAGE_*
// environment overrides, and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process("vantage", &cfg); err != nil {
		return cfg, fmt.Errorf("env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects internally inconsistent configuration. These are the only
// fatal errors the engine produces; everything at runtime recovers locally.
func (c Config) Validate() error {
	if c.Viewport.MinScale <= 0 {
		return fmt.Errorf("config: min_scale must be positive, got %g", c.Viewport.MinScale)
	}
	if c.Viewport.MinScale > c.Viewport.MaxScale {
		return fmt.Errorf("config: min_scale %g exceeds max_scale %g",
			c.Viewport.MinScale, c.Viewport.MaxScale)
	}
	if c.Viewport.MinX > c.Viewport.MaxX || c.Viewport.MinY > c.Viewport.MaxY {
		return fmt.Errorf("config: viewport min position exceeds max position")
	}
	if c.ConcurrencyLimit < 1 {
		return fmt.Errorf("config: concurrency_limit must be at least 1, got %d", c.ConcurrencyLimit)
	}
	if c.FrameSkipProbability < 0 || c.FrameSkipProbability > 1 {
		return fmt.Errorf("config: frame_skip_probability must be in [0,1], got %g", c.FrameSkipProbability)
	}
	if c.Quality.DegradeFPS >= c.Quality.UpgradeFPS {
		return fmt.Errorf("config: degrade_fps %g must be below upgrade_fps %g",
			c.Quality.DegradeFPS, c.Quality.UpgradeFPS)
	}
	if c.DwellTimeMs < 0 {
		return fmt.Errorf("config: dwell_time_ms must not be negative, got %g", c.DwellTimeMs)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("config: window_size must be at least 1, got %d", c.WindowSize)
	}
	return nil
}
