// burner is a two-board falling-block matching game for the terminal.
//
// Usage:
//
//	burner list              - List match modes
//	burner play <mode>       - Play a mode directly
//	burner menu              - Pick modes interactively
//	burner sim               - Run CPU matches headless
//	burner history           - Show finished matches
//	burner serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible matches
//	--db <path>          - Set database path (default: ~/.burner/history.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-burner/internal/config"
	"github.com/vovakirdan/block-burner/internal/games/burner"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logger is configured before every command runs.
var logger = log.New(io.Discard)

// logFile is closed after the command finishes.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "burner",
	Short: "Block Burner - a two-board falling-block duel in your terminal",
	Long: `Block Burner drops three-cell pieces onto two boards side by side.
Line up three or more cells of one color to clear them, bank the power-ups
you clear and fire them to help your board or wreck your opponent's.

Available commands:
  list     - Show all match modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker
  sim      - Run CPU matches without a terminal UI
  history  - View finished matches
  serve    - Start SSH server for remote play

Examples:
  burner list
  burner play versus
  burner play cpu --difficulty hard
  burner menu
  burner sim --matches 10 --seed 42
  burner serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.burner/history.db", "Path to match history database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup validates the global flags, builds the logger and hands the game
// package its config path, preset and logger.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	// Full-screen commands own the terminal, so they only log to a file.
	var w io.Writer = io.Discard
	if cmd.Annotations["logs"] == "stderr" {
		w = os.Stderr
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "burner",
		Level:           level,
	})

	burner.SetConfigPath(flagConfig)
	burner.SetDifficultyPreset(flagDifficulty)
	burner.SetLogger(logger)
	return nil
}
