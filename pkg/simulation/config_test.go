package simulation

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const schemaPath = "../../configs/flock.schema.json"

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Zero width", func(c *Config) { c.WorldWidth = 0 }},
		{"Negative birds", func(c *Config) { c.NumBirds = -1 }},
		{"Zero sight", func(c *Config) { c.SightRadius = 0 }},
		{"Field of view too wide", func(c *Config) { c.FieldOfView = math.Pi + 0.1 }},
		{"Speed limits swapped", func(c *Config) { c.MinSpeed, c.MaxSpeed = 100, 50 }},
		{"No tick rate", func(c *Config) { c.TicksPerSecond = 0 }},
		{"Spread of one", func(c *Config) { c.WeightSpread = 1 }},
		{"Loop radii swapped", func(c *Config) { c.LoopInnerRadius, c.LoopOuterRadius = 200, 100 }},
		{"Unknown policy", func(c *Config) { c.Policy = "vortex" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v; want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		cfg, err := LoadConfig("../../configs/flock.json", schemaPath)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.WorldWidth != 1200 || cfg.NumBirds != 400 || !cfg.RandomWeights {
			t.Errorf("unexpected config %+v", cfg)
		}
	})
	t.Run("TOML keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfig("../../configs/flock.toml", schemaPath)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.NumBirds != 2000 || cfg.Seed != 1986 || !cfg.Parallel {
			t.Errorf("unexpected config %+v", cfg)
		}
		def := DefaultConfig()
		if cfg.TurnRate != def.TurnRate || cfg.FieldOfView != def.FieldOfView {
			t.Errorf("missing keys should keep defaults, got turnRate %v fov %v", cfg.TurnRate, cfg.FieldOfView)
		}
	})
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"Schema type", "bad.json", `{"worldWidth": "wide"}`},
		{"Schema bound", "bad.json", `{"sightRadius": 0}`},
		{"Unknown key", "bad.json", `{"wingspan": 3}`},
		{"Broken toml", "bad.toml", `numBirds = `},
		{"Semantic check", "bad.toml", "loopInnerRadius = 300.0\nloopOuterRadius = 100.0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path, schemaPath); err == nil {
				t.Errorf("LoadConfig(%s) succeeded; want an error", tt.content)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"), schemaPath); err == nil {
		t.Error("LoadConfig on a missing file succeeded")
	}
}
