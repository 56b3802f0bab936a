package core

import "time"

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns the settings used when nothing is specified.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickDuration returns the simulated time covered by one Step.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is the match status a game reports to the platform.
type GameState struct {
	GameOver  bool
	Paused    bool
	HasWinner bool     // False on a draw or while the match runs
	Winner    PlayerID // Valid when HasWinner is set
	Elapsed   time.Duration
}

// StepResult is returned by every simulation step.
type StepResult struct {
	State GameState
}
