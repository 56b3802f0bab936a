package engine

// Run length needed to clear a line.
const runLength = 3

// lineDirs are the scan directions from an origin: right, down, down-right, down-left.
var lineDirs = [4]Pos{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// rainbowPatterns are the row sequences that arm the penalty budget.
var rainbowPatterns = [2][6]int{
	{0, 1, 5, 3, 4, 2},
	{0, 1, 2, 3, 4, 5},
}

// Anti-diagonal pattern origin.
const (
	diagonalRow   = 17
	diagonalLen   = 6
	rainbowLength = 6
)

// Matches is the result of one detection pass over a grid.
type Matches struct {
	cols     int
	marked   []bool
	count    int
	Rainbows int  // Rows that matched a rainbow pattern
	Diagonal bool // Whether the anti-diagonal pattern matched
}

func newMatches(g *Grid) *Matches {
	return &Matches{cols: g.Cols, marked: make([]bool, g.Rows*g.Cols)}
}

func (m *Matches) mark(p Pos) {
	i := p.Row*m.cols + p.Col
	if !m.marked[i] {
		m.marked[i] = true
		m.count++
	}
}

// Marked reports whether p will be cleared.
func (m *Matches) Marked(p Pos) bool {
	return m.marked[p.Row*m.cols+p.Col]
}

// Count returns the number of distinct marked cells.
func (m *Matches) Count() int {
	return m.count
}

// Positions returns the marked positions in row-major order.
func (m *Matches) Positions() []Pos {
	out := make([]Pos, 0, m.count)
	for i, ok := range m.marked {
		if ok {
			out = append(out, Pos{Row: i / m.cols, Col: i % m.cols})
		}
	}
	return out
}

// FindMatches marks every clearable cell of g. Runs of three are detected
// from each origin in four directions; the row rainbow and the anti-diagonal
// patterns are checked at their fixed origins.
func FindMatches(g *Grid) *Matches {
	m := newMatches(g)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			markRuns(g, m, P(r, c))
			if c == 0 && g.Cols >= rainbowLength && matchRainbow(g, r) {
				for col := 0; col < rainbowLength; col++ {
					m.mark(P(r, col))
				}
				m.Rainbows++
			}
		}
	}
	if g.Rows > diagonalRow && g.Cols >= diagonalLen && matchDiagonal(g) {
		for i := 0; i < diagonalLen; i++ {
			m.mark(P(diagonalRow-i, i))
		}
		m.Diagonal = true
	}
	return m
}

// markRuns marks each run of three starting at origin.
func markRuns(g *Grid, m *Matches, origin Pos) {
	first := g.Get(origin)
	if !first.Matchable() {
		return
	}
	for _, d := range lineDirs {
		run := [runLength]Pos{origin}
		ok := true
		for i := 1; i < runLength; i++ {
			p := run[i-1].Add(d)
			if !g.InBounds(p) || !g.Get(p).Matches(first) {
				ok = false
				break
			}
			run[i] = p
		}
		if !ok {
			continue
		}
		for _, p := range run {
			m.mark(p)
		}
	}
}

func matchRainbow(g *Grid, row int) bool {
	for _, pattern := range rainbowPatterns {
		ok := true
		for col, t := range pattern {
			c := g.Get(P(row, col))
			if !c.Matchable() || c.Type != t {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func matchDiagonal(g *Grid) bool {
	for i := 0; i < diagonalLen; i++ {
		c := g.Get(P(diagonalRow-i, i))
		if !c.Matchable() || c.Type != i {
			return false
		}
	}
	return true
}

// Compact drops every occupied cell to the bottom of its column, keeping
// the vertical order within each column.
func Compact(g *Grid) {
	for c := 0; c < g.Cols; c++ {
		CompactColumn(g, c)
	}
}

// CompactColumn compacts a single column.
func CompactColumn(g *Grid, col int) {
	write := g.Rows - 1
	for r := g.Rows - 1; r >= 0; r-- {
		p := P(r, col)
		cell := g.Get(p)
		if cell.IsEmpty() {
			continue
		}
		if r != write {
			g.Set(P(write, col), cell)
			g.Set(p, Empty)
		}
		write--
	}
}

// GravityStep moves every cell that has an empty slot below it down by one
// row. Each column is scanned bottom-up so a stack above a gap moves as one.
// Reports whether anything moved.
func GravityStep(g *Grid) bool {
	moved := false
	for c := 0; c < g.Cols; c++ {
		for r := g.Rows - 2; r >= 0; r-- {
			p := P(r, c)
			below := P(r+1, c)
			cell := g.Get(p)
			if !cell.IsEmpty() && g.IsEmpty(below) {
				g.Set(below, cell)
				g.Set(p, Empty)
				moved = true
			}
		}
	}
	return moved
}
