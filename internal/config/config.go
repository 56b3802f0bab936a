// Package config loads Block Burner settings from YAML and turns the
// difficulty section into a fall speed that grows over a match.
package config

import "fmt"

// BurnerConfig is the full game configuration.
type BurnerConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Pieces     PiecesConfig     `yaml:"pieces"`
	Timing     TimingConfig     `yaml:"timing"`
	Rules      RulesConfig      `yaml:"rules"`
	CPU        CPUConfig        `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig sets the grid size of each board.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// PiecesConfig controls the random piece source.
type PiecesConfig struct {
	PowerUpChance float64 `yaml:"power_up_chance"` // Per-cell chance of a power-up, 0..1
}

// TimingConfig controls fall speed and animation pacing.
type TimingConfig struct {
	FallRowsPerSecond float64 `yaml:"fall_rows_per_second"` // Base rate before factors
	NormalFactor      float64 `yaml:"normal_factor"`
	SoftDropFactor    float64 `yaml:"soft_drop_factor"`
	SoftDropHoldMs    int     `yaml:"soft_drop_hold_ms"` // Soft drop stays on this long after a key press
	GravityStepMs     int     `yaml:"gravity_step_ms"`   // Delay between gravity animation steps
}

// RulesConfig holds the match rules.
type RulesConfig struct {
	InventoryCapacity int `yaml:"inventory_capacity"`
	PenaltyBudget     int `yaml:"penalty_budget"`
}

// CPUConfig tunes the computer opponent.
type CPUConfig struct {
	MoveEveryTicks    int  `yaml:"move_every_ticks"`     // Ticks between CPU inputs
	PowerUpEveryTicks int  `yaml:"power_up_every_ticks"` // Minimum ticks between CPU power-ups
	HardDrop          bool `yaml:"hard_drop"`            // Hard drop once lined up instead of soft dropping
}

// DifficultyConfig defines how the fall rate speeds up during a match.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the difficulty level.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time", "pieces" or "none"
	MaxAt int    `yaml:"max_at"` // Seconds or locked pieces at which the level peaks
}

// ScalingConfig sets how much the top level changes the game.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the fall speed factor at level 1.0
}

// DifficultyPreset is a named difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the starting level of a preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Validate rejects settings the engine cannot run with.
func (c BurnerConfig) Validate() error {
	if c.Board.Rows < 3 || c.Board.Cols < 3 {
		return fmt.Errorf("config: board must be at least 3x3, got %dx%d", c.Board.Rows, c.Board.Cols)
	}
	if c.Pieces.PowerUpChance < 0 || c.Pieces.PowerUpChance > 1 {
		return fmt.Errorf("config: power_up_chance %.2f outside [0,1]", c.Pieces.PowerUpChance)
	}
	if c.Timing.FallRowsPerSecond <= 0 || c.Timing.NormalFactor <= 0 || c.Timing.SoftDropFactor <= 0 {
		return fmt.Errorf("config: fall rate and factors must be positive")
	}
	if c.Timing.GravityStepMs <= 0 || c.Timing.SoftDropHoldMs <= 0 {
		return fmt.Errorf("config: gravity_step_ms and soft_drop_hold_ms must be positive")
	}
	if c.Rules.InventoryCapacity <= 0 {
		return fmt.Errorf("config: inventory_capacity must be positive, got %d", c.Rules.InventoryCapacity)
	}
	if c.Rules.PenaltyBudget < 0 {
		return fmt.Errorf("config: penalty_budget must not be negative, got %d", c.Rules.PenaltyBudget)
	}
	if c.CPU.MoveEveryTicks <= 0 {
		return fmt.Errorf("config: cpu move_every_ticks must be positive, got %d", c.CPU.MoveEveryTicks)
	}
	return nil
}
