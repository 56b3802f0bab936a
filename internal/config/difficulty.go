package config

import "math"

// DifficultyManager turns match progress into a fall speed multiplier.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled reports whether the level changes during a match.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current level in [0, 1] after seconds of play and
// pieces locked by the leading board.
func (d *DifficultyManager) Level(seconds float64, pieces int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "time":
		progress = seconds / maxAt
	case "pieces":
		progress = float64(pieces) / maxAt
	default:
		return d.initialLevel
	}
	progress = clampF(progress, 0.0, 1.0)

	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpeedScale returns the fall speed multiplier, from 1 at level 0 up to
// 1 + speed_multiplier at level 1.
func (d *DifficultyManager) SpeedScale(seconds float64, pieces int) float64 {
	return 1.0 + d.Level(seconds, pieces)*d.cfg.Scaling.SpeedMultiplier
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
