package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/block-burner/internal/core"
	"github.com/vovakirdan/block-burner/internal/platform/tui"
	"github.com/vovakirdan/block-burner/internal/registry"
	"github.com/vovakirdan/block-burner/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a match",
	Long: `Start a match in the specified mode.

Modes:
  versus - Two players at one keyboard
  cpu    - Player 1 against the computer
  demo   - Watch two CPUs play

Controls (P1 / P2):
  A, D  / Left, Right  - Move
  W     / Up           - Cycle the piece
  S     / Down         - Hard drop
  X     / .            - Soft drop
  Q     / Space        - Fire a power-up
  P                    - Pause
  R                    - Restart (after game over)
  Esc/Ctrl+C           - Quit

In cpu mode the P2 keys also drive Player 1.

Difficulty options:
  easy   - Start slow, speeds up over time
  normal - Start at 30% speed-up, speeds up over time
  hard   - Start at 70% speed-up with a sharper CPU
  fixed  - No progression

Examples:
  burner play versus
  burner play cpu --difficulty hard
  burner play demo --seed 42
  burner play cpu --config ./my-burner.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := args[0]
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q, run 'burner list' to see available modes", mode)
	}

	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// terminalConfig builds the runtime config from the global flags and the
// current terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStoreIf opens the history database only when wanted.
func openStoreIf(wanted bool) *storage.Store {
	if !wanted {
		return nil
	}
	return openStore()
}

// openStore opens the history database. Matches still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		logger.Warn("history disabled", "error", err)
		return nil
	}
	return store
}
