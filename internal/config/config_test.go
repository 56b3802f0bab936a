package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	if got, want := embeddedDefaults(), DefaultBurnerConfig(); !reflect.DeepEqual(got, want) {
		t.Errorf("embedded defaults drifted:\n got %+v\nwant %+v", got, want)
	}
	if err := DefaultBurnerConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadBurnerCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burner.yaml")
	data := "board:\n  rows: 12\n  cols: 6\nrules:\n  penalty_budget: 4\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBurner(path)
	if err != nil {
		t.Fatalf("LoadBurner: %v", err)
	}
	if cfg.Board.Rows != 12 || cfg.Rules.PenaltyBudget != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Rules.InventoryCapacity != 10 || cfg.Timing.GravityStepMs != 200 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadBurnerErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	small := filepath.Join(dir, "small.yaml")
	if err := os.WriteFile(small, []byte("board:\n  rows: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), "failed to read config"},
		{"bad yaml", bad, "failed to parse config"},
		{"invalid board", small, "at least 3x3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBurner(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BurnerConfig)
		ok     bool
	}{
		{"defaults", func(*BurnerConfig) {}, true},
		{"tiny board", func(c *BurnerConfig) { c.Board.Cols = 2 }, false},
		{"chance above one", func(c *BurnerConfig) { c.Pieces.PowerUpChance = 1.5 }, false},
		{"zero fall rate", func(c *BurnerConfig) { c.Timing.FallRowsPerSecond = 0 }, false},
		{"zero gravity step", func(c *BurnerConfig) { c.Timing.GravityStepMs = 0 }, false},
		{"zero capacity", func(c *BurnerConfig) { c.Rules.InventoryCapacity = 0 }, false},
		{"negative budget", func(c *BurnerConfig) { c.Rules.PenaltyBudget = -1 }, false},
		{"no penalty", func(c *BurnerConfig) { c.Rules.PenaltyBudget = 0 }, true},
		{"idle cpu", func(c *BurnerConfig) { c.CPU.MoveEveryTicks = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBurnerConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"fixed", DifficultyFixed, false},
		{"insane", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestApplyBurnerPreset(t *testing.T) {
	cfg := DefaultBurnerConfig()
	ApplyBurnerPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard difficulty = %+v", cfg.Difficulty)
	}
	if cfg.CPU.MoveEveryTicks != 4 || !cfg.CPU.HardDrop {
		t.Errorf("hard cpu = %+v", cfg.CPU)
	}

	cfg = DefaultBurnerConfig()
	ApplyBurnerPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 2},
	}
	tests := []struct {
		name    string
		cfg     func(DifficultyConfig) DifficultyConfig
		seconds float64
		pieces  int
		level   float64
	}{
		{"start", nil, 0, 0, 0.5},
		{"halfway", nil, 50, 0, 0.75},
		{"past max", nil, 500, 0, 1.0},
		{"pieces", func(c DifficultyConfig) DifficultyConfig {
			c.Progression.Type = "pieces"
			return c
		}, 0, 100, 1.0},
		{"disabled", func(c DifficultyConfig) DifficultyConfig {
			c.Enabled = false
			return c
		}, 500, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			if tt.cfg != nil {
				c = tt.cfg(c)
			}
			d := NewDifficultyManager(c)
			if got := d.Level(tt.seconds, tt.pieces); math.Abs(got-tt.level) > 1e-9 {
				t.Errorf("Level = %v, want %v", got, tt.level)
			}
			if got, want := d.SpeedScale(tt.seconds, tt.pieces), 1+tt.level*2; math.Abs(got-want) > 1e-9 {
				t.Errorf("SpeedScale = %v, want %v", got, want)
			}
		})
	}
}
