package engine

import "fmt"

// Kind tags what occupies a grid slot.
type Kind uint8

const (
	KindEmpty    Kind = iota // Nothing in the slot
	KindNormal               // Plain colored cell
	KindPowerUp              // Bankable power-up cell
	KindCatalyst             // Turns neighbours to gold when activated
	KindPetrify              // Spreads itself to neighbours, never matched
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindNormal:
		return "Normal"
	case KindPowerUp:
		return "PowerUp"
	case KindCatalyst:
		return "Catalyst"
	case KindPetrify:
		return "Petrify"
	default:
		return "Unknown"
	}
}

const (
	// NormalTypes is the size of the normal palette.
	NormalTypes = 6

	// SpecialTypes is the number of Catalyst and Petrify variants.
	SpecialTypes = 3

	// GoldType is the normal type a catalyst turns its neighbours into.
	GoldType = 2
)

// Cell is one occupant of a grid slot. The zero value is an empty slot.
type Cell struct {
	Kind    Kind
	Type    int     // Type index used for matching
	PowerUp PowerUp // Only meaningful when Kind == KindPowerUp
}

// Empty is the unoccupied cell.
var Empty = Cell{}

// Normal creates a plain cell of palette type t.
// Panics if t is outside the palette.
func Normal(t int) Cell {
	checkType("normal", t, NormalTypes)
	return Cell{Kind: KindNormal, Type: t}
}

// PowerUpCell creates a power-up cell. Its type index is the power-up's
// sheet row, so it matches normal cells of the same index.
func PowerUpCell(p PowerUp) Cell {
	if !p.Valid() {
		panic(fmt.Sprintf("engine: invalid power-up %d", p))
	}
	return Cell{Kind: KindPowerUp, Type: p.SheetRow(), PowerUp: p}
}

// Catalyst creates a catalyst cell of variant t.
func Catalyst(t int) Cell {
	checkType("catalyst", t, SpecialTypes)
	return Cell{Kind: KindCatalyst, Type: t}
}

// Petrify creates a petrify cell of variant t.
func Petrify(t int) Cell {
	checkType("petrify", t, SpecialTypes)
	return Cell{Kind: KindPetrify, Type: t}
}

func checkType(kind string, t, limit int) {
	if t < 0 || t >= limit {
		panic(fmt.Sprintf("engine: invalid %s type %d (want 0..%d)", kind, t, limit-1))
	}
}

// IsEmpty reports whether the slot is unoccupied.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// Matchable reports whether the cell takes part in line detection.
func (c Cell) Matchable() bool {
	return c.Kind != KindEmpty && c.Kind != KindPetrify
}

// Matches reports whether both cells are matchable and share a type index.
func (c Cell) Matches(other Cell) bool {
	return c.Matchable() && other.Matchable() && c.Type == other.Type
}

// String returns a short debug form such as "N3", "C1", "X0" or "Pd2".
func (c Cell) String() string {
	switch c.Kind {
	case KindNormal:
		return fmt.Sprintf("N%d", c.Type)
	case KindPowerUp:
		return "P" + c.PowerUp.Short()
	case KindCatalyst:
		return fmt.Sprintf("C%d", c.Type)
	case KindPetrify:
		return fmt.Sprintf("X%d", c.Type)
	default:
		return "."
	}
}

// neighbors8 lists the orthogonal and diagonal offsets around a cell.
var neighbors8 = [8]Pos{
	{-1, 0}, {1, 0},
	{0, -1}, {0, 1},
	{-1, -1}, {-1, 1},
	{1, -1}, {1, 1},
}

// neighbors4 lists the orthogonal offsets around a cell.
var neighbors4 = [4]Pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// ActivateSpecial fires the effect of the Catalyst or Petrify cell at p.
// Returns false when p holds any other kind.
func ActivateSpecial(g *Grid, p Pos) bool {
	c := g.Get(p)
	switch c.Kind {
	case KindCatalyst:
		transmute(g, p, Normal(GoldType))
	case KindPetrify:
		transmute(g, p, Petrify(c.Type))
	default:
		return false
	}
	return true
}

// transmute replaces every occupied neighbour of p with into and clears p.
func transmute(g *Grid, p Pos, into Cell) {
	for _, d := range neighbors8 {
		n := p.Add(d)
		if g.InBounds(n) && !g.Get(n).IsEmpty() {
			g.Set(n, into)
		}
	}
	g.Set(p, Empty)
}
