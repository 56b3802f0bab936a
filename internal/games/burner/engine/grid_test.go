package engine

import (
	"reflect"
	"testing"
)

// setRow writes cells into row starting at column 0.
func setRow(g *Grid, row int, cells ...Cell) {
	for c, cell := range cells {
		g.Set(P(row, c), cell)
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func TestGridInBounds(t *testing.T) {
	g := NewGrid(18, 6)
	tests := []struct {
		pos  Pos
		want bool
	}{
		{P(0, 0), true},
		{P(17, 5), true},
		{P(-1, 0), false},
		{P(0, -1), false},
		{P(18, 0), false},
		{P(0, 6), false},
	}
	for _, tt := range tests {
		if got := g.InBounds(tt.pos); got != tt.want {
			t.Errorf("InBounds(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	g := NewGrid(4, 4)
	expectPanic(t, "Get(4,0)", func() { g.Get(P(4, 0)) })
	expectPanic(t, "Set(0,-1)", func() { g.Set(P(0, -1), Normal(0)) })
	expectPanic(t, "NewGrid(0,3)", func() { NewGrid(0, 3) })
}

func TestCellConstructorsRejectBadTypes(t *testing.T) {
	expectPanic(t, "Normal(6)", func() { Normal(NormalTypes) })
	expectPanic(t, "Normal(-1)", func() { Normal(-1) })
	expectPanic(t, "Catalyst(3)", func() { Catalyst(SpecialTypes) })
	expectPanic(t, "Petrify(3)", func() { Petrify(SpecialTypes) })
	expectPanic(t, "PowerUpCell(count)", func() { PowerUpCell(PowerUpCount) })
}

func TestGridSetGetClear(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(P(1, 2), Normal(4))
	if got := g.Get(P(1, 2)); got != Normal(4) {
		t.Errorf("Get = %v, want N4", got)
	}
	if g.IsEmpty(P(1, 2)) {
		t.Error("slot should be occupied")
	}
	g.ClearAll()
	if n := g.OccupiedCount(); n != 0 {
		t.Errorf("OccupiedCount after ClearAll = %d, want 0", n)
	}
}

func TestGridQueries(t *testing.T) {
	g := NewGrid(5, 3)
	g.Set(P(2, 1), Normal(3))
	g.Set(P(4, 1), Petrify(1))
	g.Set(P(4, 0), PowerUpCell(Defense1))

	if got := g.TopOccupiedRow(); got != 2 {
		t.Errorf("TopOccupiedRow = %d, want 2", got)
	}
	if got := g.ColumnTop(1); got != 2 {
		t.Errorf("ColumnTop(1) = %d, want 2", got)
	}
	if got := g.ColumnTop(2); got != -1 {
		t.Errorf("ColumnTop(2) = %d, want -1", got)
	}
	if got := g.ColumnCount(1); got != 2 {
		t.Errorf("ColumnCount(1) = %d, want 2", got)
	}
	if !g.RowOccupied(4) || g.RowOccupied(0) {
		t.Error("RowOccupied mismatch")
	}
	// Defense1 sits on sheet row 0.
	if got, want := g.PresentTypes(), []int{0, 1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("PresentTypes = %v, want %v", got, want)
	}
}

func TestGridCloneAndDiff(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(P(0, 0), Normal(1))

	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone should equal original")
	}
	c.Set(P(2, 2), Normal(5))
	c.Set(P(0, 0), Empty)

	if !g.IsEmpty(P(2, 2)) {
		t.Error("mutating the clone changed the original")
	}
	if got, want := g.Diff(c), []Pos{P(0, 0), P(2, 2)}; !reflect.DeepEqual(got, want) {
		t.Errorf("Diff = %v, want %v", got, want)
	}
}

func TestCellMatchability(t *testing.T) {
	tests := []struct {
		name string
		a, b Cell
		want bool
	}{
		{"same normal", Normal(2), Normal(2), true},
		{"different normal", Normal(2), Normal(3), false},
		{"power-up by sheet row", PowerUpCell(Defense3), Normal(2), true},
		{"catalyst by type", Catalyst(1), Normal(1), true},
		{"petrify never", Petrify(1), Petrify(1), false},
		{"petrify and normal", Petrify(0), Normal(0), false},
		{"empty", Empty, Empty, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Matches(tt.b); got != tt.want {
				t.Errorf("%v.Matches(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestActivateCatalyst(t *testing.T) {
	g := NewGrid(3, 3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			g.Set(P(r, c), Normal(0))
		}
	}
	g.Set(P(0, 0), Empty)
	g.Set(P(1, 1), Catalyst(0))

	if !ActivateSpecial(g, P(1, 1)) {
		t.Fatal("catalyst did not activate")
	}
	if !g.IsEmpty(P(1, 1)) {
		t.Error("catalyst should remove itself")
	}
	if !g.IsEmpty(P(0, 0)) {
		t.Error("empty neighbour should stay empty")
	}
	golds := 0
	for _, p := range g.Occupied() {
		if g.Get(p) == Normal(GoldType) {
			golds++
		}
	}
	if golds != 7 {
		t.Errorf("gold cells = %d, want 7", golds)
	}
}

func TestActivatePetrify(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(P(0, 1), Normal(4))
	g.Set(P(2, 2), PowerUpCell(Offense1))
	g.Set(P(1, 1), Petrify(2))

	ActivateSpecial(g, P(1, 1))

	if got := g.Get(P(0, 1)); got != Petrify(2) {
		t.Errorf("(0,1) = %v, want X2", got)
	}
	if got := g.Get(P(2, 2)); got != Petrify(2) {
		t.Errorf("(2,2) = %v, want X2", got)
	}
	if g.OccupiedCount() != 2 {
		t.Errorf("OccupiedCount = %d, want 2", g.OccupiedCount())
	}
}

func TestActivateSpecialIgnoresOtherKinds(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(P(0, 0), Normal(1))
	g.Set(P(0, 1), Normal(2))
	if ActivateSpecial(g, P(0, 0)) {
		t.Error("normal cell should not activate")
	}
	if g.OccupiedCount() != 2 {
		t.Error("grid changed")
	}
}
