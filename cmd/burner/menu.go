package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-burner/internal/config"
	"github.com/vovakirdan/block-burner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty interactively",
	Long: `Start Block Burner in interactive menu mode.

Use arrow keys or j/k to pick a mode, Left/Right to change the
difficulty and Enter to play. Esc during a match returns to the menu.
Tab opens the match history.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change difficulty
  Enter/Space  - Start match
  Tab          - Match history
  Q            - Quit

Examples:
  burner menu
  burner menu --fps 30
  burner menu --difficulty hard`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	preset := config.DifficultyNormal
	if flagDifficulty != "" {
		preset = config.DifficultyPreset(flagDifficulty)
	}

	if err := tui.RunSession(store, terminalConfig(), preset, logger); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
