package engine

import (
	"math/rand"
	"testing"
)

func TestFindMatchesRuns(t *testing.T) {
	tests := []struct {
		name string
		run  []Pos
	}{
		{"horizontal", []Pos{P(16, 0), P(16, 1), P(16, 2)}},
		{"vertical", []Pos{P(14, 5), P(15, 5), P(16, 5)}},
		{"diagonal down-right", []Pos{P(14, 0), P(15, 1), P(16, 2)}},
		{"diagonal down-left", []Pos{P(14, 3), P(15, 2), P(16, 1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(18, 6)
			for _, p := range tt.run {
				g.Set(p, Normal(1))
			}
			m := FindMatches(g)
			if m.Count() != 3 {
				t.Fatalf("Count = %d, want 3", m.Count())
			}
			for _, p := range tt.run {
				if !m.Marked(p) {
					t.Errorf("%v not marked", p)
				}
			}
		})
	}
}

func TestFindMatchesOverlapCountsOnce(t *testing.T) {
	g := NewGrid(6, 6)
	// An L shape: one horizontal and one vertical run share (5,0).
	setRow(g, 5, Normal(3), Normal(3), Normal(3))
	g.Set(P(3, 0), Normal(3))
	g.Set(P(4, 0), Normal(3))

	m := FindMatches(g)
	if m.Count() != 5 {
		t.Errorf("Count = %d, want 5", m.Count())
	}
}

func TestFindMatchesLongRun(t *testing.T) {
	g := NewGrid(4, 6)
	setRow(g, 3, Normal(0), Normal(0), Normal(0), Normal(0), Normal(0))
	if got := FindMatches(g).Count(); got != 5 {
		t.Errorf("Count = %d, want 5", got)
	}
}

func TestPetrifyNeverMatches(t *testing.T) {
	tests := []struct {
		name  string
		cells []Cell
	}{
		{"three petrify", []Cell{Petrify(1), Petrify(1), Petrify(1)}},
		{"petrify in the middle", []Cell{Normal(1), Petrify(1), Normal(1)}},
		{"petrify at the end", []Cell{Normal(0), Normal(0), Petrify(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(6, 6)
			setRow(g, 5, tt.cells...)
			for i, c := range tt.cells {
				g.Set(P(2+i, 4), c)
			}
			if got := FindMatches(g).Count(); got != 0 {
				t.Errorf("Count = %d, want 0", got)
			}
		})
	}
}

func TestPowerUpMatchesBySheetRow(t *testing.T) {
	g := NewGrid(3, 3)
	setRow(g, 2, PowerUpCell(Defense3), Normal(2), Normal(2))
	if got := FindMatches(g).Count(); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
}

func TestFindMatchesRainbow(t *testing.T) {
	tests := []struct {
		name     string
		types    []int
		rainbows int
	}{
		{"ascending", []int{0, 1, 2, 3, 4, 5}, 1},
		{"shuffled pattern", []int{0, 1, 5, 3, 4, 2}, 1},
		{"reversed", []int{5, 4, 3, 2, 1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(12, 6)
			for c, typ := range tt.types {
				g.Set(P(7, c), Normal(typ))
			}
			m := FindMatches(g)
			if m.Rainbows != tt.rainbows {
				t.Errorf("Rainbows = %d, want %d", m.Rainbows, tt.rainbows)
			}
			if want := 6 * tt.rainbows; m.Count() != want {
				t.Errorf("Count = %d, want %d", m.Count(), want)
			}
		})
	}
}

func TestRainbowRejectsPetrify(t *testing.T) {
	g := NewGrid(6, 6)
	setRow(g, 5, Petrify(0), Normal(1), Normal(2), Normal(3), Normal(4), Normal(5))
	if m := FindMatches(g); m.Rainbows != 0 || m.Count() != 0 {
		t.Errorf("Rainbows = %d, Count = %d, want none", m.Rainbows, m.Count())
	}
}

func TestRainbowNeedsSixColumns(t *testing.T) {
	g := NewGrid(6, 5)
	setRow(g, 5, Normal(0), Normal(1), Normal(2), Normal(3), Normal(4))
	if m := FindMatches(g); m.Rainbows != 0 {
		t.Errorf("Rainbows = %d, want 0", m.Rainbows)
	}
}

func TestFindMatchesAntiDiagonal(t *testing.T) {
	tests := []struct {
		name string
		rows int
		want bool
	}{
		{"full height", 18, true},
		{"too short", 17, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.rows, 6)
			base := tt.rows - 1
			for i := 0; i < 6; i++ {
				g.Set(P(base-i, i), Normal(i))
			}
			m := FindMatches(g)
			if m.Diagonal != tt.want {
				t.Errorf("Diagonal = %v, want %v", m.Diagonal, tt.want)
			}
			if m.Rainbows != 0 {
				t.Errorf("Rainbows = %d, want 0", m.Rainbows)
			}
			want := 0
			if tt.want {
				want = 6
			}
			if m.Count() != want {
				t.Errorf("Count = %d, want %d", m.Count(), want)
			}
		})
	}
}

func TestCompactPreservesColumnOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		g := NewGrid(10, 4)
		for _, p := range allPositions(g) {
			if rng.Intn(3) == 0 {
				g.Set(p, Normal(rng.Intn(NormalTypes)))
			}
		}
		before := columnSequences(g)

		Compact(g)

		after := columnSequences(g)
		for c := range before {
			if len(before[c]) != len(after[c]) {
				t.Fatalf("trial %d column %d: %d cells, want %d", trial, c, len(after[c]), len(before[c]))
			}
			for i := range before[c] {
				if before[c][i] != after[c][i] {
					t.Fatalf("trial %d column %d: order changed", trial, c)
				}
			}
			n := len(after[c])
			for r := 0; r < g.Rows-n; r++ {
				if !g.IsEmpty(P(r, c)) {
					t.Fatalf("trial %d column %d: gap above stack at row %d", trial, c, r)
				}
			}
		}
	}
}

func TestGravityStep(t *testing.T) {
	g := NewGrid(4, 1)
	g.Set(P(0, 0), Normal(1))
	g.Set(P(1, 0), Normal(2))

	if !GravityStep(g) {
		t.Fatal("first step should move")
	}
	if g.Get(P(1, 0)) != Normal(1) || g.Get(P(2, 0)) != Normal(2) {
		t.Fatalf("stack should move as one:\n%s", g)
	}
	if !GravityStep(g) {
		t.Fatal("second step should move")
	}
	if GravityStep(g) {
		t.Fatal("settled grid should not move")
	}
	if g.Get(P(2, 0)) != Normal(1) || g.Get(P(3, 0)) != Normal(2) {
		t.Errorf("unexpected final column:\n%s", g)
	}
}

func allPositions(g *Grid) []Pos {
	out := make([]Pos, 0, g.Rows*g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			out = append(out, P(r, c))
		}
	}
	return out
}

func columnSequences(g *Grid) [][]Cell {
	out := make([][]Cell, g.Cols)
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			if cell := g.Get(P(r, c)); !cell.IsEmpty() {
				out[c] = append(out[c], cell)
			}
		}
	}
	return out
}
