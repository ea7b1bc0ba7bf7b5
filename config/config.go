package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window     WindowConfig     `toml:"window"`
	Simulation SimulationConfig `toml:"simulation"`
	Spawn      SpawnConfig      `toml:"spawn"`
	Camera     CameraConfig     `toml:"camera"`
	Trails     TrailsConfig     `toml:"trails"`
	Audio      AudioConfig      `toml:"audio"`
	Logging    LoggingConfig    `toml:"logging"`
	Scene      SceneConfig      `toml:"scene"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type SimulationConfig struct {
	G         float64 `toml:"g"`
	TimeScale float64 `toml:"time_scale"`
	Softening float64 `toml:"softening"`
	Merge     bool    `toml:"merge"`
	MaxBodies int     `toml:"max_bodies"`
}

type SpawnConfig struct {
	Density     float64 `toml:"density"`      // mass = density * r³
	Radius      float64 `toml:"radius"`       // initial pending radius
	MinRadius   float64 `toml:"min_radius"`
	MaxRadius   float64 `toml:"max_radius"`
	LaunchScale float64 `toml:"launch_scale"` // drag length (world units) -> velocity
}

type CameraConfig struct {
	Zoom     float64 `toml:"zoom"`
	MinZoom  float64 `toml:"min_zoom"`
	MaxZoom  float64 `toml:"max_zoom"`
	PanSpeed float64 `toml:"pan_speed"` // screen pixels per second for keyboard panning
}

type TrailsConfig struct {
	Enabled   bool    `toml:"enabled"`
	MaxPoints int     `toml:"max_points"`
	MinDist   float64 `toml:"min_dist"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty logs to stderr
}

type SceneConfig struct {
	Initial string `toml:"initial"`
	Watch   bool   `toml:"watch"` // hot reload scenes from prefabs/ on disk
}

// Load reads a TOML file over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Simulation.MaxBodies <= 0:
		return errors.New("simulation.max_bodies must be positive")
	case c.Simulation.Softening < 0:
		return errors.New("simulation.softening must not be negative")
	case c.Spawn.Density <= 0:
		return errors.New("spawn.density must be positive")
	case c.Spawn.MinRadius <= 0 || c.Spawn.MaxRadius < c.Spawn.MinRadius:
		return errors.New("spawn radius range is empty")
	case c.Camera.MinZoom <= 0 || c.Camera.MaxZoom < c.Camera.MinZoom:
		return errors.New("camera zoom range is empty")
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "gravwell",
		},
		Simulation: SimulationConfig{
			G:         2,
			TimeScale: 1,
			Softening: 5,
			Merge:     true,
			MaxBodies: 300,
		},
		Spawn: SpawnConfig{
			Density:     0.01,
			Radius:      8,
			MinRadius:   2,
			MaxRadius:   60,
			LaunchScale: 1.5,
		},
		Camera: CameraConfig{
			Zoom:     1,
			MinZoom:  0.05,
			MaxZoom:  8,
			PanSpeed: 600,
		},
		Trails: TrailsConfig{
			Enabled:   true,
			MaxPoints: 120,
			MinDist:   2,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scene: SceneConfig{
			Initial: "binary",
			Watch:   false,
		},
	}
}
