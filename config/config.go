// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Beast      BeastConfig      `yaml:"beast"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The world is the same size as the screen.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// WorldConfig holds layout parameters of the world.
type WorldConfig struct {
	Border       int     `yaml:"border"`         // Margin kept free of spawns and movement
	PlantGrid    int     `yaml:"plant_grid"`     // Plants per row and column
	SproutRate   float64 `yaml:"sprout_rate"`    // Sprout probability per tick
	PlantEnergy  float64 `yaml:"plant_energy"`   // Energy a plant yields when eaten
	GridCellSize float64 `yaml:"grid_cell_size"` // Spatial grid cell size
}

// PopulationConfig holds episode start counts.
type PopulationConfig struct {
	Herbivores int `yaml:"herbivores"`
	Carnivores int `yaml:"carnivores"`
	Plants     int `yaml:"plants"` // Plants already sprouted at episode start
}

// BeastConfig holds per-beast parameters applied at creation.
type BeastConfig struct {
	Speed             float64 `yaml:"speed"`
	InitialEnergy     float64 `yaml:"initial_energy"`
	EnergyDecay       float64 `yaml:"energy_decay"` // Energy lost per tick
	FOVDegrees        float64 `yaml:"fov_degrees"`
	SightRange        float64 `yaml:"sight_range"`
	MemoryTicks       int     `yaml:"memory_ticks"`
	TurnJitter        float64 `yaml:"turn_jitter"` // Std-dev of heading change per tick (radians)
	BiteRange         float64 `yaml:"bite_range"`
	EatEnergyFraction float64 `yaml:"eat_energy_fraction"` // Share of prey energy a carnivore gains
}

// RenderConfig holds colours (packed 0xRRGGBB) and body radii in pixels.
type RenderConfig struct {
	Background      uint32 `yaml:"background"`
	Cone            uint32 `yaml:"cone"`
	Herbivore       uint32 `yaml:"herbivore"`
	Carnivore       uint32 `yaml:"carnivore"`
	Plant           uint32 `yaml:"plant"`
	HerbivoreRadius int    `yaml:"herbivore_radius"`
	CarnivoreRadius int    `yaml:"carnivore_radius"`
	PlantRadius     int    `yaml:"plant_radius"`
	ShowHUD         bool   `yaml:"show_hud"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks between perf log lines
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FOV           float64       // Beast.FOVDegrees in radians
	FrameInterval time.Duration // 1s / Screen.TargetFPS
	WorldW        float64       // Screen.Width as float64
	WorldH        float64       // Screen.Height as float64
	PlantCellW    float64       // Width of one plant grid cell
	PlantCellH    float64       // Height of one plant grid cell
}

// Default returns the embedded default configuration.
// Panics if the embedded defaults are invalid.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: invalid embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Refresh(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Refresh validates the config and recomputes derived values. Call it after
// changing fields of a loaded config.
func (c *Config) Refresh() error {
	if err := c.validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("invalid screen size %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("invalid target_fps %d", c.Screen.TargetFPS)
	case c.World.Border < 0 || 2*c.World.Border >= c.Screen.Width || 2*c.World.Border >= c.Screen.Height:
		return fmt.Errorf("invalid border %d for %dx%d world", c.World.Border, c.Screen.Width, c.Screen.Height)
	case c.World.PlantGrid < 0:
		return fmt.Errorf("invalid plant_grid %d", c.World.PlantGrid)
	case c.World.GridCellSize <= 0:
		return fmt.Errorf("invalid grid_cell_size %v", c.World.GridCellSize)
	case c.Beast.MemoryTicks < 1:
		return fmt.Errorf("invalid memory_ticks %d", c.Beast.MemoryTicks)
	case !(c.Beast.SightRange >= 0) || math.IsInf(c.Beast.SightRange, 1):
		return fmt.Errorf("invalid sight_range %v", c.Beast.SightRange)
	case c.Population.Herbivores < 1 || c.Population.Carnivores < 1:
		return fmt.Errorf("invalid population %d herbivores, %d carnivores", c.Population.Herbivores, c.Population.Carnivores)
	case c.Population.Plants < 0:
		return fmt.Errorf("invalid population plants %d", c.Population.Plants)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FOV = c.Beast.FOVDegrees / 180 * math.Pi
	c.Derived.FrameInterval = time.Second / time.Duration(c.Screen.TargetFPS)
	c.Derived.WorldW = float64(c.Screen.Width)
	c.Derived.WorldH = float64(c.Screen.Height)

	if c.World.PlantGrid > 0 {
		inner := 2 * float64(c.World.Border)
		c.Derived.PlantCellW = (c.Derived.WorldW - inner) / float64(c.World.PlantGrid)
		c.Derived.PlantCellH = (c.Derived.WorldH - inner) / float64(c.World.PlantGrid)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
