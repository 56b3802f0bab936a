package engine

import "fmt"

// Board is the surface a session exposes to effects fired from another board.
// Nothing outside the owning session holds its grid.
type Board interface {
	// ID returns the unique board identifier.
	ID() string

	// Snapshot returns a copy of the board's grid.
	Snapshot() *Grid

	// SetCell writes a single cell.
	SetCell(p Pos, c Cell)

	// OverrideNextPiece replaces the lookahead piece.
	OverrideNextPiece(cells [3]Cell)

	// PopPowerUp removes the oldest banked power-up, if any.
	PopPowerUp() (PowerUp, bool)

	// AnimateGravity starts the step-wise gravity animation.
	AnimateGravity()
}

// Boards is the registry of every board taking part in a game, in join order.
// A game and all of its sessions run on one goroutine, so it has no locking.
type Boards struct {
	boards []Board
}

// NewBoards creates an empty registry.
func NewBoards() *Boards {
	return &Boards{}
}

// Register adds a board. Panics if the ID is already taken.
func (b *Boards) Register(board Board) {
	if _, ok := b.Get(board.ID()); ok {
		panic(fmt.Sprintf("engine: board %q already registered", board.ID()))
	}
	b.boards = append(b.boards, board)
}

// Unregister removes the board with the given ID.
func (b *Boards) Unregister(id string) {
	for i, board := range b.boards {
		if board.ID() == id {
			b.boards = append(b.boards[:i], b.boards[i+1:]...)
			return
		}
	}
}

// Get looks a board up by ID.
func (b *Boards) Get(id string) (Board, bool) {
	for _, board := range b.boards {
		if board.ID() == id {
			return board, true
		}
	}
	return nil, false
}

// Opponents returns every board except the one with the given ID.
func (b *Boards) Opponents(id string) []Board {
	out := make([]Board, 0, len(b.boards))
	for _, board := range b.boards {
		if board.ID() != id {
			out = append(out, board)
		}
	}
	return out
}

// Len returns the number of registered boards.
func (b *Boards) Len() int {
	return len(b.boards)
}

// edit applies fn to a snapshot of board and writes back each changed cell.
func edit(board Board, fn func(g *Grid)) {
	before := board.Snapshot()
	after := before.Clone()
	fn(after)
	for _, p := range before.Diff(after) {
		board.SetCell(p, after.Get(p))
	}
}
