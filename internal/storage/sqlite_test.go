package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleMatch(mode, winner string) MatchRecord {
	return MatchRecord{
		Mode:      mode,
		Winner:    winner,
		EndReason: "game_over",
		Duration:  95 * time.Second,
		Seed:      42,
		Boards: []BoardRecord{
			{Seat: 0, Name: "P1", PiecesLocked: 40, CellsCleared: 63, Cascades: 12, PowerUpsBanked: 5, PowerUpsFired: 4, PenaltyRounds: 11},
			{Seat: 1, Name: "CPU", PiecesLocked: 38, CellsCleared: 51, Cascades: 9, PowerUpsBanked: 3, PowerUpsFired: 3},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveMatchAssignsIDs(t *testing.T) {
	store := openTestStore(t)

	rec, err := store.SaveMatch(sampleMatch("cpu", "P1"))
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if rec.ID == 0 {
		t.Error("expected a row ID")
	}
	if len(rec.MatchID) != 36 {
		t.Errorf("MatchID = %q, want a UUID", rec.MatchID)
	}

	other, err := store.SaveMatch(sampleMatch("cpu", "CPU"))
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}
	if other.MatchID == rec.MatchID {
		t.Error("two matches share a MatchID")
	}
}

func TestMatchByID(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.SaveMatch(sampleMatch("versus", "P2"))
	if err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}

	got, err := store.MatchByID(saved.MatchID)
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("MatchByID() returned nil")
	}
	if got.Mode != "versus" || got.Winner != "P2" || got.EndReason != "game_over" {
		t.Errorf("got %+v", got)
	}
	if got.Duration != 95*time.Second {
		t.Errorf("Duration = %v, want 95s", got.Duration)
	}
	if got.Seed != 42 {
		t.Errorf("Seed = %d, want 42", got.Seed)
	}
	if len(got.Boards) != 2 {
		t.Fatalf("len(Boards) = %d, want 2", len(got.Boards))
	}
	if b := got.Boards[0]; b.Name != "P1" || b.CellsCleared != 63 || b.PenaltyRounds != 11 {
		t.Errorf("Boards[0] = %+v", b)
	}
	if b := got.Boards[1]; b.Seat != 1 || b.Name != "CPU" {
		t.Errorf("Boards[1] = %+v", b)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestMatchByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.MatchByID("no-such-match")
	if err != nil {
		t.Fatalf("MatchByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestRecentMatches(t *testing.T) {
	store := openTestStore(t)

	for _, m := range []MatchRecord{
		sampleMatch("cpu", "P1"),
		sampleMatch("versus", ""),
		sampleMatch("cpu", "CPU"),
		sampleMatch("demo", "CPU"),
	} {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	tests := []struct {
		name  string
		mode  string
		limit int
		want  int
	}{
		{"all modes", "", 10, 4},
		{"one mode", "cpu", 10, 2},
		{"limited", "", 3, 3},
		{"unknown mode", "tetris", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.RecentMatches(tt.mode, tt.limit)
			if err != nil {
				t.Fatalf("RecentMatches() failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			for _, m := range got {
				if len(m.Boards) != 2 {
					t.Errorf("match %s has %d boards", m.MatchID, len(m.Boards))
				}
			}
		})
	}

	// Same-second inserts fall back to row order.
	got, _ := store.RecentMatches("cpu", 10)
	if len(got) == 2 && got[0].Winner != "CPU" {
		t.Errorf("newest first: got winner %q, want CPU", got[0].Winner)
	}
}

func TestClearMatches(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatch(sampleMatch("cpu", "P1"))
	store.SaveMatch(sampleMatch("versus", "P2"))

	if err := store.ClearMatches("cpu"); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}
	if got, _ := store.RecentMatches("cpu", 10); len(got) != 0 {
		t.Errorf("cpu matches left: %d", len(got))
	}
	if got, _ := store.RecentMatches("versus", 10); len(got) != 1 {
		t.Errorf("versus matches = %d, want 1", len(got))
	}

	if err := store.ClearMatches(""); err != nil {
		t.Fatalf("ClearMatches() failed: %v", err)
	}
	if got, _ := store.RecentMatches("", 10); len(got) != 0 {
		t.Errorf("matches left: %d", len(got))
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	short := sampleMatch("cpu", "P1")
	short.Duration = 30 * time.Second
	quit := sampleMatch("cpu", "")
	quit.EndReason = "quit"
	for _, m := range []MatchRecord{short, sampleMatch("cpu", "P1"), sampleMatch("cpu", "CPU"), sampleMatch("cpu", ""), quit} {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	st, ok := stats["cpu"]
	if !ok {
		t.Fatal("no stats for cpu")
	}
	if st.Matches != 5 || st.Draws != 1 {
		t.Errorf("Matches = %d, Draws = %d, want 5 and 1", st.Matches, st.Draws)
	}
	if st.Wins["P1"] != 2 || st.Wins["CPU"] != 1 {
		t.Errorf("Wins = %v", st.Wins)
	}
	if st.LongestMatch != 95*time.Second {
		t.Errorf("LongestMatch = %v, want 95s", st.LongestMatch)
	}
	if want := (30*time.Second + 4*95*time.Second) / 5; st.AvgDuration != want {
		t.Errorf("AvgDuration = %v, want %v", st.AvgDuration, want)
	}
	if _, ok := stats["versus"]; ok {
		t.Error("unplayed mode should not appear")
	}
}
