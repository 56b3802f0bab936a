package burner

import (
	"strings"

	"github.com/vovakirdan/block-burner/internal/games/burner/engine"
	"github.com/vovakirdan/block-burner/internal/storage"
)

// Snapshot is the complete visible state of a match.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Mode      string          `yaml:"mode"`
	Tick      int             `yaml:"tick"`
	ElapsedMs int64           `yaml:"elapsed_ms"`
	GameOver  bool            `yaml:"game_over"`
	Winner    string          `yaml:"winner,omitempty"` // Empty on a draw or while running
	Boards    []BoardSnapshot `yaml:"boards"`
}

// BoardSnapshot is one board of a Snapshot. Cells are written as N<type>,
// P<power-up>, C<type>, X<type> or "." for an empty slot.
type BoardSnapshot struct {
	Name      string   `yaml:"name"`
	State     string   `yaml:"state"`
	Grid      []string `yaml:"grid"` // One line per row, top first
	Current   []string `yaml:"current,omitempty"`
	Next      []string `yaml:"next,omitempty"`
	Inventory []string `yaml:"inventory"`
	Penalty   int      `yaml:"penalty"`

	PiecesLocked   int `yaml:"pieces_locked"`
	CellsCleared   int `yaml:"cells_cleared"`
	Cascades       int `yaml:"cascades"`
	PowerUpsBanked int `yaml:"power_ups_banked"`
	PowerUpsFired  int `yaml:"power_ups_fired"`
	PenaltyRounds  int `yaml:"penalty_rounds"`
}

// Snapshot returns the current match state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:      string(g.mode),
		Tick:      g.tick,
		ElapsedMs: g.elapsed.Milliseconds(),
		GameOver:  g.gameOver,
		Winner:    g.WinnerName(),
	}
	for _, s := range g.seats {
		if s != nil {
			snap.Boards = append(snap.Boards, snapshotBoard(s))
		}
	}
	return snap
}

func snapshotBoard(s *seat) BoardSnapshot {
	sess := s.session
	stats := sess.Stats()
	b := BoardSnapshot{
		Name:           s.name,
		State:          sess.State().String(),
		Grid:           strings.Split(strings.TrimRight(sess.Snapshot().String(), "\n"), "\n"),
		Inventory:      []string{},
		Penalty:        sess.Penalty(),
		PiecesLocked:   stats.PiecesLocked,
		CellsCleared:   stats.CellsCleared,
		Cascades:       stats.Cascades,
		PowerUpsBanked: stats.PowerUpsBanked,
		PowerUpsFired:  stats.PowerUpsFired,
		PenaltyRounds:  stats.PenaltyRounds,
	}
	if cur, ok := sess.Current(); ok {
		b.Current = cellNames(cur.Cells())
	}
	if next, ok := sess.Next(); ok {
		b.Next = cellNames(next.Cells())
	}
	for _, p := range sess.Inventory() {
		b.Inventory = append(b.Inventory, p.Short())
	}
	return b
}

func cellNames(cells [3]engine.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.String()
	}
	return out
}

// MatchRecord converts the match into a history record.
func (g *Game) MatchRecord(reason string) storage.MatchRecord {
	rec := storage.MatchRecord{
		Mode:      string(g.mode),
		Winner:    g.WinnerName(),
		EndReason: reason,
		Duration:  g.elapsed,
		Seed:      g.runtime.Seed,
	}
	for i, s := range g.seats {
		if s == nil {
			continue
		}
		stats := s.session.Stats()
		rec.Boards = append(rec.Boards, storage.BoardRecord{
			Seat:           i,
			Name:           s.name,
			PiecesLocked:   stats.PiecesLocked,
			CellsCleared:   stats.CellsCleared,
			Cascades:       stats.Cascades,
			PowerUpsBanked: stats.PowerUpsBanked,
			PowerUpsFired:  stats.PowerUpsFired,
			PenaltyRounds:  stats.PenaltyRounds,
		})
	}
	return rec
}
