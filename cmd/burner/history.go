package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/block-burner/internal/games/burner"
	"github.com/vovakirdan/block-burner/internal/platform/tui"
	"github.com/vovakirdan/block-burner/internal/registry"
	"github.com/vovakirdan/block-burner/internal/storage"
)

var (
	flagHistoryMode   string
	flagHistoryLimit  int
	flagHistoryBrowse bool
	flagHistoryClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished matches",
	Long: `Display recently finished matches, newest first, with per-mode totals.

Examples:
  burner history
  burner history --mode cpu --limit 5
  burner history --browse
  burner history --clear --mode demo`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryMode, "mode", "", "Only show this mode")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagHistoryBrowse, "browse", false, "Open the interactive history browser")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded matches (respects --mode)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if flagHistoryMode != "" && !registry.Exists(flagHistoryMode) {
		return fmt.Errorf("unknown mode %q, run 'burner list' to see available modes", flagHistoryMode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearMatches(flagHistoryMode); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	if flagHistoryBrowse {
		cfg := terminalConfig()
		_, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	matches, err := store.RecentMatches(flagHistoryMode, flagHistoryLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	title := "All modes"
	if info, ok := registry.Lookup(flagHistoryMode); ok {
		title = info.Title
	}
	fmt.Fprintf(out, "Match History - %s\n\n", title)

	if len(matches) == 0 {
		fmt.Fprintln(out, "No matches recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'burner play cpu' or run 'burner sim --save' to record one!")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-6s  %-16s  %-8s  %-6s  %s\n", "Date", "Mode", "Boards", "Winner", "Time", "Cleared")
	fmt.Fprintf(out, "  %-16s  %-6s  %-16s  %-8s  %-6s  %s\n", "----", "----", "------", "------", "----", "-------")
	for _, m := range matches {
		names := make([]string, len(m.Boards))
		cleared := make([]string, len(m.Boards))
		for i, b := range m.Boards {
			names[i] = b.Name
			cleared[i] = fmt.Sprint(b.CellsCleared)
		}
		winner := m.Winner
		switch {
		case m.EndReason != burner.EndGameOver:
			winner = m.EndReason
		case winner == "":
			winner = "draw"
		}
		fmt.Fprintf(out, "  %-16s  %-6s  %-16s  %-8s  %-6s  %s\n",
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			m.Mode,
			strings.Join(names, " vs "),
			winner,
			m.Duration.Round(time.Second),
			strings.Join(cleared, "/"),
		)
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	for _, info := range registry.List() {
		st, ok := stats[info.ID]
		if !ok || (flagHistoryMode != "" && info.ID != flagHistoryMode) {
			continue
		}
		fmt.Fprintf(out, "%s: %d matches, %d draws, avg %s, longest %s\n",
			info.Title, st.Matches, st.Draws,
			st.AvgDuration.Round(time.Second), st.LongestMatch.Round(time.Second))
	}
	return nil
}
