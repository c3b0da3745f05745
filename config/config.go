// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned by Validate when a value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Population PopulationConfig `yaml:"population"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PointConfig is a 2D point in arena units.
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ArenaConfig holds the bounded playing field, start and goal.
// Arena can differ from the screen; zero means "use screen size".
type ArenaConfig struct {
	Width        float64     `yaml:"width"`
	Height       float64     `yaml:"height"`
	Start        PointConfig `yaml:"start"`
	Goal         PointConfig `yaml:"goal"`
	GoalRadiusSq float64     `yaml:"goal_radius_sq"` // squared distance that counts as arrival
}

// PhysicsConfig holds integration constants.
type PhysicsConfig struct {
	MaxSpeed float64 `yaml:"max_speed"` // per-component velocity clamp
	MinCoord float64 `yaml:"min_coord"` // lower bound for both coordinates

	// LegacyBounds reproduces the reduced lower-bound test of the first
	// version: a dot only dies at the lower edge when it sits exactly on the origin.
	LegacyBounds bool `yaml:"legacy_bounds"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Size      int `yaml:"size"`
	BrainSize int `yaml:"brain_size"` // impulses per genome
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate float64 `yaml:"rate"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfLogEvery int `yaml:"perf_log_every"` // generations between perf summaries
	PerfWindow   int `yaml:"perf_window"`    // samples kept per perf phase
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Start r2.Vec
	Goal  r2.Vec
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
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

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Arena.Width == 0 {
		c.Arena.Width = float64(c.Screen.Width)
	}
	if c.Arena.Height == 0 {
		c.Arena.Height = float64(c.Screen.Height)
	}
	c.Derived.Start = r2.Vec{X: c.Arena.Start.X, Y: c.Arena.Start.Y}
	c.Derived.Goal = r2.Vec{X: c.Arena.Goal.X, Y: c.Arena.Goal.Y}
}

// Validate checks that the configuration describes a runnable simulation.
func (c *Config) Validate() error {
	switch {
	case c.Population.Size < 1:
		return fmt.Errorf("%w: population.size must be >= 1, got %d", ErrInvalid, c.Population.Size)
	case c.Population.BrainSize < 1:
		return fmt.Errorf("%w: population.brain_size must be >= 1, got %d", ErrInvalid, c.Population.BrainSize)
	case c.Mutation.Rate < 0 || c.Mutation.Rate > 1:
		return fmt.Errorf("%w: mutation.rate must be in [0, 1], got %g", ErrInvalid, c.Mutation.Rate)
	case c.Physics.MaxSpeed <= 0:
		return fmt.Errorf("%w: physics.max_speed must be > 0, got %g", ErrInvalid, c.Physics.MaxSpeed)
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must have a positive size, got %gx%g", ErrInvalid, c.Arena.Width, c.Arena.Height)
	}
	if !c.inArena(c.Arena.Goal) {
		return fmt.Errorf("%w: goal (%g, %g) is outside the arena", ErrInvalid, c.Arena.Goal.X, c.Arena.Goal.Y)
	}
	if !c.inArena(c.Arena.Start) {
		return fmt.Errorf("%w: start (%g, %g) is outside the arena", ErrInvalid, c.Arena.Start.X, c.Arena.Start.Y)
	}
	return nil
}

func (c *Config) inArena(p PointConfig) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= c.Arena.Width && p.Y <= c.Arena.Height
}

// Clone returns a copy that can be modified without touching c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
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

// Refresh recomputes derived values after fields were changed in code
// and validates the result.
func (c *Config) Refresh() error {
	c.computeDerived()
	return c.Validate()
}
