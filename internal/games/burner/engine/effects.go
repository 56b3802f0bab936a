package engine

import "math/rand"

// gridEffect mutates one grid using the acting session's random source.
type gridEffect func(g *Grid, rng *rand.Rand)

// offensive applies fn to every opponent's grid through the board surface.
func offensive(fn gridEffect) Effect {
	return func(_ PowerUp, s *Session) {
		for _, b := range s.opponents() {
			edit(b, func(g *Grid) { fn(g, s.rng) })
		}
	}
}

// defensive applies fn to the acting session's own grid.
func defensive(fn gridEffect) Effect {
	return func(_ PowerUp, s *Session) {
		fn(s.grid, s.rng)
	}
}

// raiseFloor shifts every row up by one, discarding the top row, and fills
// the bottom row with random cells.
func raiseFloor(g *Grid, rng *rand.Rand) {
	for r := 0; r < g.Rows-1; r++ {
		for c := 0; c < g.Cols; c++ {
			g.Set(P(r, c), g.Get(P(r+1, c)))
		}
	}
	palette := min(g.Cols, NormalTypes)
	for c := 0; c < g.Cols; c++ {
		g.Set(P(g.Rows-1, c), Normal(rng.Intn(palette)))
	}
}

// cyclicShifts are the two non-identity rotations of three sampled cells.
var cyclicShifts = [2][3]int{{1, 2, 0}, {2, 0, 1}}

// scramble rotates three random occupied cells, choosing the rotation that
// leaves the fewest same-type neighbours. Ties keep the first rotation.
func scramble(g *Grid, rng *rand.Rand) {
	occupied := g.Occupied()
	if len(occupied) < 3 {
		return
	}
	rng.Shuffle(len(occupied), func(i, j int) {
		occupied[i], occupied[j] = occupied[j], occupied[i]
	})
	picked := [3]Pos{occupied[0], occupied[1], occupied[2]}
	cells := [3]Cell{g.Get(picked[0]), g.Get(picked[1]), g.Get(picked[2])}

	var best *Grid
	bestCollisions := -1
	for _, shift := range cyclicShifts {
		candidate := g.Clone()
		for i, p := range picked {
			candidate.Set(p, cells[shift[i]])
		}
		n := Collisions(candidate)
		if bestCollisions < 0 || n < bestCollisions {
			best, bestCollisions = candidate, n
		}
	}
	for _, p := range picked {
		g.Set(p, best.Get(p))
	}
}

// Collisions counts orthogonally adjacent pairs of occupied cells sharing a
// type index.
func Collisions(g *Grid) int {
	n := 0
	for _, p := range g.Occupied() {
		t := g.Get(p).Type
		for _, d := range [2]Pos{{0, 1}, {1, 0}} {
			q := p.Add(d)
			if g.InBounds(q) && !g.IsEmpty(q) && g.Get(q).Type == t {
				n++
			}
		}
	}
	return n
}

// petrifyStrike turns a random occupied cell into a petrify cell and fires it.
func petrifyStrike(g *Grid, rng *rand.Rand) {
	occupied := g.Occupied()
	if len(occupied) == 0 {
		return
	}
	p := occupied[rng.Intn(len(occupied))]
	g.Set(p, Petrify(rng.Intn(SpecialTypes)))
	ActivateSpecial(g, p)
}

// stoneBar forces a petrify bar as every opponent's next piece.
func stoneBar(_ PowerUp, s *Session) {
	for _, b := range s.opponents() {
		b.OverrideNextPiece(PetrifyBar())
	}
}

// thief discards the oldest banked power-up of every opponent.
func thief(_ PowerUp, s *Session) {
	for _, b := range s.opponents() {
		b.PopPowerUp()
	}
}

// rockfall drops a petrify cell into two random columns of every opponent,
// two rows above each column's stack.
func rockfall(_ PowerUp, s *Session) {
	for _, b := range s.opponents() {
		edit(b, func(g *Grid) {
			for _, col := range distinctColumns(s.rng, g.Cols, 2) {
				row := g.Rows - 3
				if top := g.ColumnTop(col); top >= 0 {
					row = top - 2
				}
				g.Set(P(clamp(row, 0, g.Rows-1), col), Petrify(0))
			}
		})
	}
}

// sweepBottom clears the bottom row and shifts everything above down one row.
func sweepBottom(g *Grid, _ *rand.Rand) {
	for r := g.Rows - 1; r > 0; r-- {
		for c := 0; c < g.Cols; c++ {
			g.Set(P(r, c), g.Get(P(r-1, c)))
		}
	}
	for c := 0; c < g.Cols; c++ {
		g.Set(P(0, c), Empty)
	}
}

// dissolveColor clears a random number of cells of one random present type,
// then compacts.
func dissolveColor(g *Grid, rng *rand.Rand) {
	types := g.PresentTypes()
	if len(types) == 0 {
		return
	}
	positions := cellsOfType(g, types[rng.Intn(len(types))], -1)
	rng.Shuffle(len(positions), func(i, j int) {
		positions[i], positions[j] = positions[j], positions[i]
	})
	count := rng.Intn(len(positions)) + 1
	for _, p := range positions[:count] {
		g.Set(p, Empty)
	}
	Compact(g)
}

// midasBar forces a catalyst bar as the owner's next piece.
func midasBar(_ PowerUp, s *Session) {
	s.OverrideNextPiece(CatalystBar())
}

// paintSquare fills a 3x3 block anchored at a random occupied cell with the
// power-up's own type.
func paintSquare(p PowerUp, s *Session) {
	paint(s.grid, s.rng, p.SheetRow())
}

func paint(g *Grid, rng *rand.Rand, t int) {
	if g.Rows < 3 || g.Cols < 3 {
		return
	}
	var anchors []Pos
	for r := 0; r <= g.Rows-3; r++ {
		for c := 0; c <= g.Cols-3; c++ {
			if !g.IsEmpty(P(r, c)) {
				anchors = append(anchors, P(r, c))
			}
		}
	}
	if len(anchors) == 0 {
		return
	}
	a := anchors[rng.Intn(len(anchors))]
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			g.Set(P(a.Row+dr, a.Col+dc), Normal(t))
		}
	}
}

// shatterPetrify removes up to two random petrify cells, then compacts.
func shatterPetrify(g *Grid, rng *rand.Rand) {
	var stones []Pos
	for _, p := range g.Occupied() {
		if g.Get(p).Kind == KindPetrify {
			stones = append(stones, p)
		}
	}
	if len(stones) == 0 {
		return
	}
	rng.Shuffle(len(stones), func(i, j int) {
		stones[i], stones[j] = stones[j], stones[i]
	})
	for _, p := range stones[:min(2, len(stones))] {
		g.Set(p, Empty)
	}
	Compact(g)
}

// regroupColor lifts the first three cells of a random present type, compacts
// their columns and lays them side by side on the bottom row.
func regroupColor(g *Grid, rng *rand.Rand) {
	types := g.PresentTypes()
	if len(types) == 0 {
		return
	}
	positions := cellsOfType(g, types[rng.Intn(len(types))], 3)

	stash := make([]Cell, 0, len(positions))
	columns := make(map[int]bool)
	for _, p := range positions {
		stash = append(stash, g.Get(p))
		columns[p.Col] = true
		g.Set(p, Empty)
	}
	for c := 0; c < g.Cols; c++ {
		if columns[c] {
			CompactColumn(g, c)
		}
	}

	bottom := g.Rows - 1
	start := rng.Intn(max(1, g.Cols-len(stash)+1))
	for i, cell := range stash {
		p := P(bottom, start+i)
		if g.InBounds(p) {
			g.Set(p, cell)
		}
	}
}

// cellsOfType returns occupied positions of type t in row-major order, at
// most limit of them when limit is positive.
func cellsOfType(g *Grid, t, limit int) []Pos {
	var out []Pos
	for _, p := range g.Occupied() {
		if g.Get(p).Type != t {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
