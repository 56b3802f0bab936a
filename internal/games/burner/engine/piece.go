package engine

import "math/rand"

// Shape is the fixed layout of a piece as (row, col) offsets: a vertical bar.
var Shape = [3]Pos{{0, 0}, {1, 0}, {2, 0}}

// Piece is a falling group of three cells. X is the column and Y the row of
// the first slot. Movement is unchecked; the session tests collisions first.
type Piece struct {
	cells [3]Cell
	X, Y  int
}

// NewPiece creates a piece holding cells in slot order.
func NewPiece(cells [3]Cell) *Piece {
	return &Piece{cells: cells}
}

// CatalystBar returns the three catalyst variants in slot order.
func CatalystBar() [3]Cell {
	return [3]Cell{Catalyst(0), Catalyst(1), Catalyst(2)}
}

// PetrifyBar returns the three petrify variants in slot order.
func PetrifyBar() [3]Cell {
	return [3]Cell{Petrify(0), Petrify(1), Petrify(2)}
}

// Cells returns the cells in slot order.
func (p *Piece) Cells() [3]Cell {
	return p.cells
}

// Positions returns the absolute grid positions of the three slots.
func (p *Piece) Positions() [3]Pos {
	var out [3]Pos
	for i, off := range Shape {
		out[i] = Pos{Row: p.Y + off.Row, Col: p.X + off.Col}
	}
	return out
}

// SetPosition moves the piece so its first slot sits at column x, row y.
func (p *Piece) SetPosition(x, y int) {
	p.X = x
	p.Y = y
}

// MoveLeft shifts the piece one column left.
func (p *Piece) MoveLeft() { p.X-- }

// MoveRight shifts the piece one column right.
func (p *Piece) MoveRight() { p.X++ }

// MoveDown shifts the piece one row down.
func (p *Piece) MoveDown() { p.Y++ }

// CycleSlots rotates which cell sits in which slot: slot0 takes slot1,
// slot1 takes slot2 and slot2 takes the old slot0. The shape is unchanged.
func (p *Piece) CycleSlots() {
	p.cells[0], p.cells[1], p.cells[2] = p.cells[1], p.cells[2], p.cells[0]
}

// Source produces randomized pieces.
type Source struct {
	rng           *rand.Rand
	powerUpChance float64
}

// DefaultPowerUpChance is the per-cell probability of rolling a power-up.
const DefaultPowerUpChance = 0.5

// NewSource creates a piece source drawing from rng.
func NewSource(rng *rand.Rand, powerUpChance float64) *Source {
	return &Source{rng: rng, powerUpChance: powerUpChance}
}

// Generate returns a fresh piece. Each cell is independently a power-up with
// the configured chance, chosen uniformly over all kinds, and otherwise a
// normal cell of a uniform palette type.
func (s *Source) Generate() *Piece {
	var cells [3]Cell
	for i := range cells {
		if s.rng.Float64() < s.powerUpChance {
			cells[i] = PowerUpCell(PowerUp(s.rng.Intn(int(PowerUpCount))))
		} else {
			cells[i] = Normal(s.rng.Intn(NormalTypes))
		}
	}
	return NewPiece(cells)
}
