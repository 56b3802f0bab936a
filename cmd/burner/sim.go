package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/block-burner/internal/core"
	"github.com/vovakirdan/block-burner/internal/games/burner"
)

var (
	flagSimMatches  int
	flagSimMaxTicks int
	flagSimSave     bool
	flagSimDump     string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run CPU-vs-CPU matches without a terminal UI",
	Long: `Run demo matches headless as fast as possible.

Every match is simulated tick by tick at --fps, so a seed reproduces the
same match as 'burner play demo --seed N'. Match i uses seed+i. Engine
events are logged at debug level.

Examples:
  burner sim
  burner sim --matches 20 --seed 1
  burner sim --seed 42 --dump final.yaml
  burner sim --matches 5 --save --log-level debug`,
	Annotations: map[string]string{"logs": "stderr"},
	RunE:        runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMatches, "matches", 1, "Number of matches to run")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 60*60*10, "Tick budget per match (0 = unlimited)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record finished matches in the history database")
	simCmd.Flags().StringVar(&flagSimDump, "dump", "", "Write the final state of every match as YAML (- for stdout)")
}

// simResult is the outcome of one headless match.
type simResult struct {
	seed     int64
	winner   string
	reason   string
	ticks    int
	duration time.Duration
	game     *burner.Game
}

// simulate runs one demo match until it ends or hits maxTicks.
func simulate(cfg core.RuntimeConfig, maxTicks int) simResult {
	g := burner.New(burner.ModeDemo)
	g.Reset(cfg)

	var idle core.MultiInputFrame
	for !g.State().GameOver && (maxTicks <= 0 || g.Ticks() < maxTicks) {
		g.Step(idle)
	}

	reason := burner.EndGameOver
	if !g.State().GameOver {
		reason = burner.EndTickLimit
	}
	return simResult{
		seed:     cfg.Seed,
		winner:   g.WinnerName(),
		reason:   reason,
		ticks:    g.Ticks(),
		duration: g.Elapsed(),
		game:     g,
	}
}

func runSim(cmd *cobra.Command, _ []string) error {
	if flagSimMatches <= 0 {
		return fmt.Errorf("--matches must be positive, got %d", flagSimMatches)
	}

	baseSeed := flagSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	var dump *yaml.Encoder
	if flagSimDump != "" {
		var w io.Writer = os.Stdout
		if flagSimDump != "-" {
			f, err := os.Create(flagSimDump)
			if err != nil {
				return fmt.Errorf("cannot create dump file: %w", err)
			}
			defer f.Close()
			w = f
		}
		dump = yaml.NewEncoder(w)
		dump.SetIndent(2)
		defer dump.Close()
	}

	out := cmd.OutOrStdout()
	if flagSimDump == "-" {
		out = cmd.ErrOrStderr()
	}

	store := openStoreIf(flagSimSave)
	if store != nil {
		defer store.Close()
	}

	wins := make(map[string]int)
	var draws int
	var total time.Duration

	fmt.Fprintf(out, "  %-4s  %-20s  %-8s  %-10s  %s\n", "#", "Seed", "Time", "Winner", "End")
	for i := range flagSimMatches {
		cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: baseSeed + int64(i)}
		res := simulate(cfg, flagSimMaxTicks)

		winner := res.winner
		if winner == "" {
			winner = "draw"
			draws++
		} else {
			wins[winner]++
		}
		total += res.duration

		logger.Info("match finished", "seed", res.seed, "winner", winner,
			"reason", res.reason, "ticks", res.ticks, "duration", res.duration)
		fmt.Fprintf(out, "  %-4d  %-20d  %-8s  %-10s  %s\n",
			i+1, res.seed, res.duration.Round(time.Second), winner, res.reason)

		if dump != nil {
			if err := dump.Encode(res.game.Snapshot()); err != nil {
				return fmt.Errorf("writing dump: %w", err)
			}
		}
		if store != nil {
			if _, err := store.SaveMatch(res.game.MatchRecord(res.reason)); err != nil {
				logger.Warn("could not save match", "seed", res.seed, "error", err)
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Matches: %d  Draws: %d  Avg time: %s\n",
		flagSimMatches, draws, (total / time.Duration(flagSimMatches)).Round(time.Second))
	for _, name := range slices.Sorted(maps.Keys(wins)) {
		fmt.Fprintf(out, "  %s: %d wins\n", name, wins[name])
	}
	return nil
}
