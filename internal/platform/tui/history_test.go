package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/block-burner/internal/games/burner"
	"github.com/vovakirdan/block-burner/internal/storage"
)

func TestHistoryRows(t *testing.T) {
	boards := []storage.BoardRecord{
		{Seat: 0, Name: "P1", CellsCleared: 12, PowerUpsFired: 2, PenaltyRounds: 0},
		{Seat: 1, Name: "CPU", CellsCleared: 30, PowerUpsFired: 5, PenaltyRounds: 11},
	}
	tests := []struct {
		name       string
		rec        storage.MatchRecord
		wantWinner string
	}{
		{"winner", storage.MatchRecord{Mode: "cpu", Winner: "CPU", EndReason: burner.EndGameOver}, "CPU"},
		{"draw", storage.MatchRecord{Mode: "cpu", EndReason: burner.EndGameOver}, "draw"},
		{"quit", storage.MatchRecord{Mode: "cpu", Winner: "CPU", EndReason: burner.EndQuit}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.rec.Boards = boards
			tt.rec.Duration = 95 * time.Second
			tt.rec.CreatedAt = time.Now()

			row := historyRows([]storage.MatchRecord{tt.rec})[0]
			if row[3] != tt.wantWinner {
				t.Errorf("winner = %q, want %q", row[3], tt.wantWinner)
			}
			want := []string{"P1 vs CPU", "1:35", "12/30", "2/5", "0/11"}
			got := []string{row[2], row[4], row[5], row[6], row[7]}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("column %d = %q, want %q", i, got[i], want[i])
				}
			}
		})
	}
}

func TestHistoryModelTabs(t *testing.T) {
	store := openTestStore(t)
	for _, rec := range []storage.MatchRecord{
		{Mode: "cpu", Winner: "P1", EndReason: burner.EndGameOver, Duration: time.Minute},
		{Mode: "demo", Winner: "CPU 2", EndReason: burner.EndGameOver, Duration: time.Minute},
		{Mode: "demo", EndReason: burner.EndGameOver, Duration: time.Minute},
	} {
		if _, err := store.SaveMatch(rec); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	m := NewHistoryModel(store, 120, 40)
	if len(m.matches) != 3 {
		t.Fatalf("All tab has %d matches, want 3", len(m.matches))
	}
	if got := m.summary(); !strings.HasPrefix(got, "3 matches") || !strings.Contains(got, "draws 1") {
		t.Errorf("summary = %q", got)
	}

	for m.tabs[m.tab].mode != "demo" {
		m.tab++
	}
	m.load()
	if len(m.matches) != 2 {
		t.Errorf("demo tab has %d matches, want 2", len(m.matches))
	}
	if got := m.summary(); !strings.Contains(got, "CPU 2 1") || strings.Contains(got, "P1") {
		t.Errorf("demo summary = %q", got)
	}
}
