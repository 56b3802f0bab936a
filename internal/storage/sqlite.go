// Package storage keeps a SQLite log of finished Block Burner matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store wraps the match history database.
type Store struct {
	db *sql.DB
}

// BoardRecord holds one board's side of a match.
type BoardRecord struct {
	Seat           int    // 0 for the left board, 1 for the right
	Name           string // "P1", "P2" or "CPU"
	PiecesLocked   int
	CellsCleared   int
	Cascades       int
	PowerUpsBanked int
	PowerUpsFired  int
	PenaltyRounds  int
}

// MatchRecord is one finished match.
type MatchRecord struct {
	ID        int64
	MatchID   string // UUID assigned on save when empty
	Mode      string // Game ID: versus, cpu, demo
	Winner    string // Board name of the winner, empty on a draw
	EndReason string // "game_over" or "quit"
	Duration  time.Duration
	Seed      int64
	Boards    []BoardRecord
	CreatedAt time.Time
}

// Open creates or opens the database at dbPath, creating parent directories
// and running migrations. A leading ~ expands to the home directory.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			winner TEXT NOT NULL DEFAULT '',
			end_reason TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_mode ON matches(mode);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);

		CREATE TABLE IF NOT EXISTS match_boards (
			match_id TEXT NOT NULL REFERENCES matches(match_id) ON DELETE CASCADE,
			seat INTEGER NOT NULL,
			name TEXT NOT NULL,
			pieces_locked INTEGER NOT NULL DEFAULT 0,
			cells_cleared INTEGER NOT NULL DEFAULT 0,
			cascades INTEGER NOT NULL DEFAULT 0,
			power_ups_banked INTEGER NOT NULL DEFAULT 0,
			power_ups_fired INTEGER NOT NULL DEFAULT 0,
			penalty_rounds INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (match_id, seat)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match and its boards in one transaction.
// It returns the record with ID and MatchID filled in.
func (s *Store) SaveMatch(rec MatchRecord) (MatchRecord, error) {
	if rec.MatchID == "" {
		rec.MatchID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return rec, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	res, err := tx.Exec(
		`INSERT INTO matches (match_id, mode, winner, end_reason, duration_ms, seed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.MatchID, rec.Mode, rec.Winner, rec.EndReason, rec.Duration.Milliseconds(), rec.Seed,
	)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot save match: %w", err)
	}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return rec, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, b := range rec.Boards {
		_, err := tx.Exec(
			`INSERT INTO match_boards
			 (match_id, seat, name, pieces_locked, cells_cleared, cascades, power_ups_banked, power_ups_fired, penalty_rounds)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.MatchID, b.Seat, b.Name, b.PiecesLocked, b.CellsCleared, b.Cascades,
			b.PowerUpsBanked, b.PowerUpsFired, b.PenaltyRounds,
		)
		if err != nil {
			return rec, fmt.Errorf("storage: cannot save board %d: %w", b.Seat, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return rec, fmt.Errorf("storage: cannot commit match: %w", err)
	}
	return rec, nil
}

const matchColumns = `id, match_id, mode, winner, end_reason, duration_ms, seed, created_at`

// MatchByID returns a match and its boards, or nil if it does not exist.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)
	rec, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	if rec.Boards, err = s.boards(rec.MatchID); err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecentMatches returns the newest matches first. An empty mode lists all modes.
func (s *Store) RecentMatches(mode string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + matchColumns + ` FROM matches`
	args := []any{}
	if mode != "" {
		query += ` WHERE mode = ?`
		args = append(args, mode)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	for i := range out {
		if out[i].Boards, err = s.boards(out[i].MatchID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) boards(matchID string) ([]BoardRecord, error) {
	rows, err := s.db.Query(
		`SELECT seat, name, pieces_locked, cells_cleared, cascades, power_ups_banked, power_ups_fired, penalty_rounds
		 FROM match_boards WHERE match_id = ? ORDER BY seat`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query boards: %w", err)
	}
	defer rows.Close()

	var out []BoardRecord
	for rows.Next() {
		var b BoardRecord
		if err := rows.Scan(&b.Seat, &b.Name, &b.PiecesLocked, &b.CellsCleared, &b.Cascades,
			&b.PowerUpsBanked, &b.PowerUpsFired, &b.PenaltyRounds); err != nil {
			return nil, fmt.Errorf("storage: cannot scan board: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: board iteration error: %w", err)
	}
	return out, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchRecord, error) {
	var rec MatchRecord
	var durationMs int64
	var createdAt any
	err := row.Scan(&rec.ID, &rec.MatchID, &rec.Mode, &rec.Winner, &rec.EndReason,
		&durationMs, &rec.Seed, &createdAt)
	if err != nil {
		return rec, err
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime accepts the driver's time.Time or SQLite's text timestamp.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ClearMatches deletes the history of one mode, or of every mode when mode is empty.
func (s *Store) ClearMatches(mode string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	where, args := "", []any{}
	if mode != "" {
		where, args = " WHERE mode = ?", []any{mode}
	}
	if _, err := tx.Exec(`DELETE FROM match_boards WHERE match_id IN (SELECT match_id FROM matches`+where+`)`, args...); err != nil {
		return fmt.Errorf("storage: cannot clear boards: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM matches`+where, args...); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return tx.Commit()
}

// ModeStats aggregates the history of one mode.
type ModeStats struct {
	Mode         string
	Matches      int
	Draws        int // Finished matches without a winner
	Wins         map[string]int // Board name -> wins
	AvgDuration  time.Duration
	LongestMatch time.Duration
	LastPlayed   time.Time
}

// Stats aggregates the history of every mode that has been played.
func (s *Store) Stats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), SUM(CASE WHEN winner = '' AND end_reason = 'game_over' THEN 1 ELSE 0 END),
		        AVG(duration_ms), MAX(duration_ms), MAX(created_at)
		 FROM matches GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		st := &ModeStats{Wins: make(map[string]int)}
		var avg float64
		var longest int64
		var last any
		if err := rows.Scan(&st.Mode, &st.Matches, &st.Draws, &avg, &longest, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.AvgDuration = time.Duration(avg) * time.Millisecond
		st.LongestMatch = time.Duration(longest) * time.Millisecond
		st.LastPlayed = parseTime(last)
		stats[st.Mode] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: stats iteration error: %w", err)
	}

	wins, err := s.db.Query(`SELECT mode, winner, COUNT(*) FROM matches WHERE winner != '' GROUP BY mode, winner`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get wins: %w", err)
	}
	defer wins.Close()
	for wins.Next() {
		var mode, winner string
		var n int
		if err := wins.Scan(&mode, &winner, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan wins row: %w", err)
		}
		if st, ok := stats[mode]; ok {
			st.Wins[winner] = n
		}
	}
	return stats, wins.Err()
}
