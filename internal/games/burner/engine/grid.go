// Package engine implements the Block Burner board simulation: cells, grids,
// falling pieces, match detection, cascades and power-up effects.
// It has no dependency on the terminal or on the platform layer.
package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Pos is a (row, column) grid coordinate. Row 0 is the top.
type Pos struct {
	Row, Col int
}

// P is shorthand for Pos{Row: row, Col: col}.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// Add returns the sum of two positions.
func (p Pos) Add(d Pos) Pos {
	return Pos{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Grid is a fixed-size board of cells.
type Grid struct {
	Rows  int
	Cols  int
	cells []Cell
}

// NewGrid creates an empty grid. Panics on non-positive dimensions.
func NewGrid(rows, cols int) *Grid {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("engine: invalid grid size %dx%d", rows, cols))
	}
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.Rows && p.Col >= 0 && p.Col < g.Cols
}

func (g *Grid) index(p Pos) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d grid", p.Row, p.Col, g.Rows, g.Cols))
	}
	return p.Row*g.Cols + p.Col
}

// Get returns the cell at p. Panics if p is out of bounds.
func (g *Grid) Get(p Pos) Cell {
	return g.cells[g.index(p)]
}

// Set stores c at p. Panics if p is out of bounds.
func (g *Grid) Set(p Pos, c Cell) {
	g.cells[g.index(p)] = c
}

// IsEmpty reports whether the slot at p is unoccupied.
func (g *Grid) IsEmpty(p Pos) bool {
	return g.Get(p).IsEmpty()
}

// ClearAll empties every slot.
func (g *Grid) ClearAll() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{Rows: g.Rows, Cols: g.Cols, cells: cells}
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.Rows != other.Rows || g.Cols != other.Cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Diff returns the positions whose cells differ between g and other.
// Both grids must have the same size.
func (g *Grid) Diff(other *Grid) []Pos {
	var out []Pos
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			out = append(out, Pos{Row: i / g.Cols, Col: i % g.Cols})
		}
	}
	return out
}

// Occupied returns every occupied position in row-major order.
func (g *Grid) Occupied() []Pos {
	var out []Pos
	for i, c := range g.cells {
		if !c.IsEmpty() {
			out = append(out, Pos{Row: i / g.Cols, Col: i % g.Cols})
		}
	}
	return out
}

// OccupiedCount returns the number of occupied slots.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// ColumnCount returns the number of occupied slots in a column.
func (g *Grid) ColumnCount(col int) int {
	n := 0
	for r := 0; r < g.Rows; r++ {
		if !g.IsEmpty(P(r, col)) {
			n++
		}
	}
	return n
}

// TopOccupiedRow returns the smallest row index holding any cell, or -1.
func (g *Grid) TopOccupiedRow() int {
	for i, c := range g.cells {
		if !c.IsEmpty() {
			return i / g.Cols
		}
	}
	return -1
}

// ColumnTop returns the first occupied row of a column scanning from the top, or -1.
func (g *Grid) ColumnTop(col int) int {
	for r := 0; r < g.Rows; r++ {
		if !g.IsEmpty(P(r, col)) {
			return r
		}
	}
	return -1
}

// RowOccupied reports whether any slot in the row is occupied.
func (g *Grid) RowOccupied(row int) bool {
	for c := 0; c < g.Cols; c++ {
		if !g.IsEmpty(P(row, c)) {
			return true
		}
	}
	return false
}

// PresentTypes returns the distinct type indices on the grid in ascending order.
// Every occupied kind contributes its type index.
func (g *Grid) PresentTypes() []int {
	seen := make(map[int]bool)
	var types []int
	for _, c := range g.cells {
		if c.IsEmpty() || seen[c.Type] {
			continue
		}
		seen[c.Type] = true
		types = append(types, c.Type)
	}
	sort.Ints(types)
	return types
}

// String renders the grid one row per line using Cell.String.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%-3s", g.Get(P(r, c)).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
