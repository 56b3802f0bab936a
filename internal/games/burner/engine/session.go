package engine

import (
	"math/rand"
	"time"
)

// State is the lifecycle state of a session.
type State uint8

const (
	StateActive State = iota
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	if s == StateGameOver {
		return "game_over"
	}
	return "active"
}

// Options configures a session.
type Options struct {
	Rows              int
	Cols              int
	PowerUpChance     float64 // Per-cell power-up probability
	InventoryCapacity int
	PenaltyBudget     int     // Rounds armed by a rainbow row
	FallRate          float64 // Rows per millisecond before factors
	NormalFactor      float64 // Fall multiplier without soft drop
	SoftDropFactor    float64 // Fall multiplier while soft dropping
}

// DefaultOptions returns the standard 18x6 board rules.
func DefaultOptions() Options {
	return Options{
		Rows:              18,
		Cols:              6,
		PowerUpChance:     DefaultPowerUpChance,
		InventoryCapacity: DefaultInventoryCapacity,
		PenaltyBudget:     10,
		FallRate:          1.0 / 400.0,
		NormalFactor:      1.2,
		SoftDropFactor:    8.0,
	}
}

// Session is one player's board: grid, falling piece, lookahead piece,
// inventory and penalty budget. It reaches opponents through the registry.
type Session struct {
	id        string
	opts      Options
	grid      *Grid
	current   *Piece
	next      *Piece
	inventory *Inventory
	penalty   int
	state     State
	boards    *Boards
	rng       *rand.Rand
	source    *Source

	fallAcc    float64
	speedScale float64
	softDrop   bool
	animating  bool
	elapsed    time.Duration
	stats      Stats
	onEvent    func(Event)
}

// NewSession creates a session and registers it with boards when boards is non-nil.
func NewSession(id string, opts Options, rng *rand.Rand, boards *Boards) *Session {
	s := &Session{
		id:         id,
		opts:       opts,
		grid:       NewGrid(opts.Rows, opts.Cols),
		inventory:  NewInventory(opts.InventoryCapacity),
		boards:     boards,
		rng:        rng,
		source:     NewSource(rng, opts.PowerUpChance),
		speedScale: 1,
	}
	if boards != nil {
		boards.Register(s)
	}
	return s
}

// OnEvent installs a notification hook. Pass nil to remove it.
func (s *Session) OnEvent(fn func(Event)) {
	s.onEvent = fn
}

func (s *Session) emit(e Event) {
	if s.onEvent == nil {
		return
	}
	e.Board = s.id
	s.onEvent(e)
}

// Reset clears the board and returns the session to the active state.
func (s *Session) Reset() {
	s.grid.ClearAll()
	s.inventory.Clear()
	s.current = nil
	s.next = nil
	s.penalty = 0
	s.state = StateActive
	s.fallAcc = 0
	s.softDrop = false
	s.animating = false
	s.elapsed = 0
	s.stats = Stats{}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Rows returns the grid height.
func (s *Session) Rows() int { return s.grid.Rows }

// Cols returns the grid width.
func (s *Session) Cols() int { return s.grid.Cols }

// Cell returns the locked cell at p.
func (s *Session) Cell(p Pos) Cell { return s.grid.Get(p) }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Penalty returns the remaining penalty budget.
func (s *Session) Penalty() int { return s.penalty }

// Animating reports whether the gravity animation is running.
func (s *Session) Animating() bool { return s.animating }

// Elapsed returns the time the session has been ticked for.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Stats returns the session counters.
func (s *Session) Stats() Stats { return s.stats }

// Inventory returns a copy of the banked power-ups, oldest first.
func (s *Session) Inventory() []PowerUp { return s.inventory.Items() }

// InventoryCap returns the inventory capacity.
func (s *Session) InventoryCap() int { return s.inventory.Cap() }

// SoftDrop reports whether soft drop is held.
func (s *Session) SoftDrop() bool { return s.softDrop }

// Current returns a copy of the falling piece.
func (s *Session) Current() (Piece, bool) {
	if s.current == nil {
		return Piece{}, false
	}
	return *s.current, true
}

// Next returns a copy of the lookahead piece.
func (s *Session) Next() (Piece, bool) {
	if s.next == nil {
		return Piece{}, false
	}
	return *s.next, true
}

// SetSpeedScale multiplies the fall rate. Used for difficulty progression.
func (s *Session) SetSpeedScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.speedScale = scale
}

// Snapshot returns a copy of the grid.
func (s *Session) Snapshot() *Grid {
	return s.grid.Clone()
}

// SetCell writes a single locked cell.
func (s *Session) SetCell(p Pos, c Cell) {
	s.grid.Set(p, c)
}

// OverrideNextPiece forces the lookahead piece to cells.
func (s *Session) OverrideNextPiece(cells [3]Cell) {
	s.next = NewPiece(cells)
}

// PopPowerUp removes the oldest banked power-up.
func (s *Session) PopPowerUp() (PowerUp, bool) {
	return s.inventory.Use()
}

// AnimateGravity starts the step-wise gravity animation.
func (s *Session) AnimateGravity() {
	s.animating = true
}

// opponents returns every other board in the registry.
func (s *Session) opponents() []Board {
	if s.boards == nil {
		return nil
	}
	return s.boards.Opponents(s.id)
}

// Tick advances the fall accumulator by dt. Whole rows due are applied one at
// a time: the piece moves down or, when blocked, locks and the cascade runs.
// A new piece spawns when none is falling.
func (s *Session) Tick(dt time.Duration) {
	if s.state == StateGameOver {
		return
	}
	s.elapsed += dt
	if s.current == nil {
		s.spawn()
	}

	factor := s.opts.NormalFactor
	if s.softDrop {
		factor = s.opts.SoftDropFactor
	}
	ms := float64(dt) / float64(time.Millisecond)
	s.fallAcc += s.opts.FallRate * factor * s.speedScale * ms

	for s.fallAcc >= 1 {
		s.fallAcc--
		if s.current == nil {
			continue
		}
		if s.fits(s.current, 1, 0) {
			s.current.MoveDown()
			continue
		}
		s.lock()
		if s.state == StateGameOver {
			return
		}
	}

	if s.current == nil {
		s.spawn()
	}
}

// spawn promotes the lookahead piece and rolls a new one.
func (s *Session) spawn() {
	if s.next == nil {
		s.next = s.source.Generate()
	}
	s.current = s.next
	x := s.grid.Cols/2 - 1
	if x < 0 {
		x = 0
	}
	s.current.SetPosition(x, 0)
	s.next = s.source.Generate()
	s.emit(Event{Kind: EventSpawned})
}

// fits reports whether piece shifted by (dRow, dCol) lies on empty in-bounds slots.
func (s *Session) fits(piece *Piece, dRow, dCol int) bool {
	for _, p := range piece.Positions() {
		q := P(p.Row+dRow, p.Col+dCol)
		if !s.grid.InBounds(q) || !s.grid.IsEmpty(q) {
			return false
		}
	}
	return true
}

// MoveLeft shifts the falling piece left if the way is clear.
func (s *Session) MoveLeft() bool {
	if s.state == StateGameOver || s.current == nil || !s.fits(s.current, 0, -1) {
		return false
	}
	s.current.MoveLeft()
	return true
}

// MoveRight shifts the falling piece right if the way is clear.
func (s *Session) MoveRight() bool {
	if s.state == StateGameOver || s.current == nil || !s.fits(s.current, 0, 1) {
		return false
	}
	s.current.MoveRight()
	return true
}

// CycleSlots rotates the cells of the falling piece.
func (s *Session) CycleSlots() bool {
	if s.state == StateGameOver || s.current == nil {
		return false
	}
	s.current.CycleSlots()
	return true
}

// SetSoftDrop starts or stops soft dropping.
func (s *Session) SetSoftDrop(on bool) {
	s.softDrop = on
}

// HardDrop drops the falling piece until blocked, locks it and runs the cascade.
func (s *Session) HardDrop() bool {
	if s.state == StateGameOver || s.current == nil {
		return false
	}
	for s.fits(s.current, 1, 0) {
		s.current.MoveDown()
	}
	s.lock()
	s.fallAcc = 0
	return true
}

// lock writes the falling piece into the grid. Catalyst and petrify cells
// fire as they land. Game over is checked before the cascade runs.
func (s *Session) lock() {
	piece := s.current
	s.current = nil
	cells := piece.Cells()
	for i, p := range piece.Positions() {
		if !s.grid.InBounds(p) {
			continue
		}
		s.grid.Set(p, cells[i])
		ActivateSpecial(s.grid, p)
	}
	s.stats.PiecesLocked++
	s.emit(Event{Kind: EventLocked})

	if s.grid.RowOccupied(0) {
		s.state = StateGameOver
		s.emit(Event{Kind: EventGameOver})
	}
	s.Cascade()
}

// ActivatePowerUp fires the oldest banked power-up.
func (s *Session) ActivatePowerUp() (PowerUp, bool) {
	if s.state == StateGameOver {
		return 0, false
	}
	p, ok := s.inventory.Use()
	if !ok {
		return 0, false
	}
	Dispatch(p, s)
	s.stats.PowerUpsFired++
	s.emit(Event{Kind: EventPowerUpFired, PowerUp: p})
	return p, true
}

// Cascade clears and compacts until no match remains. Reports whether
// anything cleared. A clearing cascade spends one round of penalty budget,
// except the cascade that armed it.
func (s *Session) Cascade() bool {
	cleared, armed := false, false
	for {
		m := FindMatches(s.grid)
		for i := 0; i < m.Rainbows; i++ {
			s.armPenalty()
			armed = true
		}
		if m.Count() == 0 {
			break
		}
		s.clearMarked(m)
		Compact(s.grid)
		cleared = true
	}
	if !cleared {
		return false
	}
	s.stats.Cascades++
	if !armed && s.penalty > 0 {
		s.penalty--
		s.sendPenalty()
	}
	return true
}

// clearMarked removes marked cells. A catalyst transmutes its neighbours
// first and a power-up goes to the inventory.
func (s *Session) clearMarked(m *Matches) {
	for _, p := range m.Positions() {
		cell := s.grid.Get(p)
		switch cell.Kind {
		case KindCatalyst:
			ActivateSpecial(s.grid, p)
		case KindPowerUp:
			if s.inventory.Add(cell.PowerUp) {
				s.stats.PowerUpsBanked++
				s.emit(Event{Kind: EventPowerUpBanked, PowerUp: cell.PowerUp})
			} else {
				s.emit(Event{Kind: EventPowerUpLost, PowerUp: cell.PowerUp})
			}
		}
		s.grid.Set(p, Empty)
	}
	s.stats.CellsCleared += m.Count()
	s.emit(Event{Kind: EventCleared, Cells: m.Count()})
}

// armPenalty fills the penalty budget and fires one round at once.
func (s *Session) armPenalty() {
	s.penalty = s.opts.PenaltyBudget
	s.emit(Event{Kind: EventPenaltyArmed, Budget: s.penalty})
	s.sendPenalty()
}

// sendPenalty drops two random cells above every opponent's stack.
func (s *Session) sendPenalty() {
	for _, b := range s.opponents() {
		edit(b, func(g *Grid) { penaltyDrop(g, s.rng) })
		b.AnimateGravity()
	}
	s.stats.PenaltyRounds++
	s.emit(Event{Kind: EventPenaltyRound, Budget: s.penalty})
}

// penaltyDrop places up to two normal cells two rows above the highest
// occupied row, each in a distinct random column.
func penaltyDrop(g *Grid, rng *rand.Rand) {
	target := g.Rows - 3
	if top := g.TopOccupiedRow(); top >= 0 {
		target = top - 2
	}
	target = clamp(target, 0, g.Rows-1)

	for _, col := range distinctColumns(rng, g.Cols, 2) {
		r := target
		for r > 0 && !g.IsEmpty(P(r, col)) {
			r--
		}
		if g.IsEmpty(P(r, col)) {
			g.Set(P(r, col), Normal(rng.Intn(NormalTypes)))
		}
	}
}

// StepGravity advances the gravity animation by one row. When nothing moves
// the animation ends and the cascade runs. Reports whether the animation is
// still running.
func (s *Session) StepGravity() bool {
	if !s.animating {
		return false
	}
	if GravityStep(s.grid) {
		return true
	}
	s.animating = false
	if s.state == StateActive {
		s.Cascade()
	}
	return false
}

// SettleGravity runs the whole gravity animation at once.
func (s *Session) SettleGravity() {
	Compact(s.grid)
	s.animating = false
	if s.state == StateActive {
		s.Cascade()
	}
}

// distinctColumns returns up to n different random columns.
func distinctColumns(rng *rand.Rand, cols, n int) []int {
	if n > cols {
		n = cols
	}
	return rng.Perm(cols)[:n]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
