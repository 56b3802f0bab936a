package config

import (
	_ "embed"
)

//go:embed defaults/burner.yaml
var defaultBurnerYAML []byte

// DefaultBurnerConfig returns the built-in configuration. It matches
// defaults/burner.yaml and is used if the embedded file cannot be parsed.
func DefaultBurnerConfig() BurnerConfig {
	return BurnerConfig{
		Board: BoardConfig{
			Rows: 18,
			Cols: 6,
		},
		Pieces: PiecesConfig{
			PowerUpChance: 0.5,
		},
		Timing: TimingConfig{
			FallRowsPerSecond: 2.5,
			NormalFactor:      1.2,
			SoftDropFactor:    8.0,
			SoftDropHoldMs:    150,
			GravityStepMs:     200,
		},
		Rules: RulesConfig{
			InventoryCapacity: 10,
			PenaltyBudget:     10,
		},
		CPU: CPUConfig{
			MoveEveryTicks:    8,
			PowerUpEveryTicks: 180,
			HardDrop:          false,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
			},
		},
	}
}
