package engine

import (
	"math/rand"
	"testing"
)

func TestPieceCycleSlots(t *testing.T) {
	p := NewPiece([3]Cell{Normal(0), Normal(1), Normal(2)})
	p.SetPosition(2, 4)

	p.CycleSlots()
	if got, want := p.Cells(), [3]Cell{Normal(1), Normal(2), Normal(0)}; got != want {
		t.Errorf("after one cycle = %v, want %v", got, want)
	}
	p.CycleSlots()
	p.CycleSlots()
	if got, want := p.Cells(), [3]Cell{Normal(0), Normal(1), Normal(2)}; got != want {
		t.Errorf("after three cycles = %v, want %v", got, want)
	}
	if got, want := p.Positions(), [3]Pos{P(4, 2), P(5, 2), P(6, 2)}; got != want {
		t.Errorf("cycling moved the piece: %v, want %v", got, want)
	}
}

func TestPieceMoves(t *testing.T) {
	p := NewPiece([3]Cell{Normal(0), Normal(0), Normal(0)})
	p.SetPosition(3, 0)
	p.MoveLeft()
	p.MoveDown()
	p.MoveDown()
	p.MoveRight()
	p.MoveRight()
	if p.X != 4 || p.Y != 2 {
		t.Errorf("position = (%d,%d), want (4,2)", p.X, p.Y)
	}
}

func TestSourceGenerate(t *testing.T) {
	tests := []struct {
		name     string
		chance   float64
		wantKind Kind
	}{
		{"never power-ups", 0, KindNormal},
		{"always power-ups", 1, KindPowerUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSource(rand.New(rand.NewSource(3)), tt.chance)
			for i := 0; i < 100; i++ {
				for _, c := range src.Generate().Cells() {
					if c.Kind != tt.wantKind {
						t.Fatalf("cell kind = %v, want %v", c.Kind, tt.wantKind)
					}
					if c.Type < 0 || c.Type >= NormalTypes {
						t.Fatalf("type index %d out of palette", c.Type)
					}
				}
			}
		})
	}
}

func TestSourceMixesPowerUps(t *testing.T) {
	src := NewSource(rand.New(rand.NewSource(11)), DefaultPowerUpChance)
	seen := make(map[PowerUp]bool)
	normals := 0
	for i := 0; i < 500; i++ {
		for _, c := range src.Generate().Cells() {
			if c.Kind == KindPowerUp {
				seen[c.PowerUp] = true
			} else {
				normals++
			}
		}
	}
	if len(seen) != int(PowerUpCount) {
		t.Errorf("saw %d power-up kinds, want %d", len(seen), PowerUpCount)
	}
	if normals < 500 || normals > 1000 {
		t.Errorf("normals = %d out of 1500, want roughly half", normals)
	}
}

func TestInventoryFIFO(t *testing.T) {
	inv := NewInventory(3)
	for _, p := range []PowerUp{Offense2, Defense1, Offense6} {
		if !inv.Add(p) {
			t.Fatalf("Add(%v) rejected", p)
		}
	}
	if inv.Add(Defense6) {
		t.Error("Add on full inventory should fail")
	}
	if !inv.Full() || inv.Len() != 3 {
		t.Errorf("Len = %d, want 3 and full", inv.Len())
	}
	if p, _ := inv.Peek(); p != Offense2 {
		t.Errorf("Peek = %v, want %v", p, Offense2)
	}
	for _, want := range []PowerUp{Offense2, Defense1, Offense6} {
		got, ok := inv.Use()
		if !ok || got != want {
			t.Errorf("Use = %v, %v, want %v", got, ok, want)
		}
	}
	if _, ok := inv.Use(); ok {
		t.Error("Use on empty inventory should fail")
	}
}

func TestInventoryDefaultCapacity(t *testing.T) {
	inv := NewInventory(0)
	if inv.Cap() != DefaultInventoryCapacity {
		t.Errorf("Cap = %d, want %d", inv.Cap(), DefaultInventoryCapacity)
	}
	for i := 0; i < 12; i++ {
		inv.Add(Offense1)
	}
	if inv.Len() != 10 {
		t.Errorf("Len = %d, want 10", inv.Len())
	}
	items := inv.Items()
	items[0] = Defense6
	if p, _ := inv.Peek(); p != Offense1 {
		t.Error("Items should return a copy")
	}
}

func TestPowerUpIdentity(t *testing.T) {
	tests := []struct {
		p        PowerUp
		category Category
		column   int
		row      int
		short    string
	}{
		{Offense1, Offensive, 1, 0, "o1"},
		{Offense6, Offensive, 1, 5, "o6"},
		{Defense1, Defensive, 2, 0, "d1"},
		{Defense4, Defensive, 2, 3, "d4"},
	}
	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			if tt.p.Category() != tt.category {
				t.Errorf("Category = %v, want %v", tt.p.Category(), tt.category)
			}
			if tt.p.SheetColumn() != tt.column || tt.p.SheetRow() != tt.row {
				t.Errorf("sheet = (%d,%d), want (%d,%d)", tt.p.SheetColumn(), tt.p.SheetRow(), tt.column, tt.row)
			}
			if tt.p.Short() != tt.short {
				t.Errorf("Short = %q, want %q", tt.p.Short(), tt.short)
			}
		})
	}
}

func TestDispatchTableComplete(t *testing.T) {
	for _, p := range AllPowerUps() {
		if EffectOf(p) == nil {
			t.Errorf("%v has no effect", p)
		}
	}
	expectPanic(t, "EffectOf(invalid)", func() { EffectOf(PowerUpCount) })
}
