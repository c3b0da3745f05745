package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Population.Size != 100 {
		t.Errorf("population.size = %d, want 100", cfg.Population.Size)
	}
	if cfg.Population.BrainSize != 1000 {
		t.Errorf("population.brain_size = %d, want 1000", cfg.Population.BrainSize)
	}
	if cfg.Mutation.Rate != 0.005 {
		t.Errorf("mutation.rate = %v, want 0.005", cfg.Mutation.Rate)
	}

	// Arena falls back to screen size
	if cfg.Arena.Width != 800 || cfg.Arena.Height != 600 {
		t.Errorf("arena = %vx%v, want 800x600", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Derived.Goal.X != 400 || cfg.Derived.Goal.Y != 10 {
		t.Errorf("derived goal = %v, want (400, 10)", cfg.Derived.Goal)
	}
	if cfg.Derived.Start.X != 400 || cfg.Derived.Start.Y != 590 {
		t.Errorf("derived start = %v, want (400, 590)", cfg.Derived.Start)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("population:\n  size: 7\nmutation:\n  rate: 0.1\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Population.Size != 7 {
		t.Errorf("population.size = %d, want 7", cfg.Population.Size)
	}
	if cfg.Mutation.Rate != 0.1 {
		t.Errorf("mutation.rate = %v, want 0.1", cfg.Mutation.Rate)
	}
	// Untouched fields keep their defaults
	if cfg.Population.BrainSize != 1000 {
		t.Errorf("population.brain_size = %d, want default 1000", cfg.Population.BrainSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero population", func(c *Config) { c.Population.Size = 0 }},
		{"zero brain", func(c *Config) { c.Population.BrainSize = 0 }},
		{"negative rate", func(c *Config) { c.Mutation.Rate = -0.1 }},
		{"rate above one", func(c *Config) { c.Mutation.Rate = 1.5 }},
		{"zero speed", func(c *Config) { c.Physics.MaxSpeed = 0 }},
		{"goal outside", func(c *Config) { c.Arena.Goal.X = 5000 }},
		{"start outside", func(c *Config) { c.Arena.Start.Y = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Size = 42
	cfg.Physics.LegacyBounds = true

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Population.Size != 42 {
		t.Errorf("population.size = %d, want 42", loaded.Population.Size)
	}
	if !loaded.Physics.LegacyBounds {
		t.Error("legacy_bounds was not preserved")
	}
}

func TestCfgBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	defer func() {
		if recover() == nil {
			t.Error("Cfg() before Init() should panic")
		}
	}()
	Cfg()
}

func TestRefresh(t *testing.T) {
	cfg := Default()
	cfg.Arena.Width = 10
	cfg.Arena.Height = 10
	cfg.Arena.Goal = PointConfig{X: 5, Y: 0}
	cfg.Arena.Start = PointConfig{X: 5, Y: 9}

	if err := cfg.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if cfg.Derived.Goal.X != 5 || cfg.Derived.Goal.Y != 0 {
		t.Errorf("derived goal = %v, want (5, 0)", cfg.Derived.Goal)
	}

	cfg.Arena.Goal = PointConfig{X: 50, Y: 0}
	if err := cfg.Refresh(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Refresh with goal outside arena = %v, want ErrInvalid", err)
	}
}
