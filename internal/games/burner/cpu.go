package burner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/block-burner/internal/config"
	"github.com/vovakirdan/block-burner/internal/core"
	"github.com/vovakirdan/block-burner/internal/games/burner/engine"
)

// CPU tuning
const (
	cpuBlunderChance = 0.08 // Chance to pick a random column instead of the best one
	cpuClearWeight   = 10.0
	cpuRainbowWeight = 40.0
	cpuGroupWeight   = 2.0
	cpuTravelWeight  = 0.1
)

// cpuController plays a board. For each new piece it picks a landing column
// and slot order, then walks the piece there one input at a time.
type cpuController struct {
	cfg         config.CPUConfig
	rng         *rand.Rand
	planned     bool
	planPieces  int // PiecesLocked when the plan was made
	targetCol   int
	cycles      int
	lastPowerUp int
	blunder     float64
}

func newCPUController(cfg config.CPUConfig, seed int64) *cpuController {
	if cfg.MoveEveryTicks <= 0 {
		cfg.MoveEveryTicks = 1
	}
	return &cpuController{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		blunder: cpuBlunderChance,
	}
}

// Decide returns this tick's input for the board.
func (c *cpuController) Decide(s *engine.Session, tick int) core.InputFrame {
	var in core.InputFrame
	if tick%c.cfg.MoveEveryTicks != 0 {
		return in
	}
	piece, ok := s.Current()
	if !ok {
		return in
	}

	if locked := s.Stats().PiecesLocked; !c.planned || c.planPieces != locked {
		c.plan(s.Snapshot(), piece)
		c.planPieces = locked
		c.planned = true
	}

	if c.cfg.PowerUpEveryTicks > 0 && len(s.Inventory()) > 0 && tick-c.lastPowerUp >= c.cfg.PowerUpEveryTicks {
		c.lastPowerUp = tick
		in.Set(core.ActionPowerUp)
		return in
	}

	switch {
	case c.cycles > 0:
		c.cycles--
		in.Set(core.ActionCycle)
	case piece.X < c.targetCol:
		in.Set(core.ActionRight)
	case piece.X > c.targetCol:
		in.Set(core.ActionLeft)
	case c.cfg.HardDrop:
		in.Set(core.ActionHardDrop)
	default:
		in.Set(core.ActionSoftDrop)
	}
	return in
}

// plan scores every column and slot order for piece on g.
func (c *cpuController) plan(g *engine.Grid, piece engine.Piece) {
	c.targetCol = piece.X
	c.cycles = 0

	best := math.Inf(-1)
	cells := piece.Cells()
	for rot := 0; rot < len(cells); rot++ {
		for col := 0; col < g.Cols; col++ {
			score, ok := scorePlacement(g, cells, col)
			if !ok {
				continue
			}
			score -= cpuTravelWeight * math.Abs(float64(col-piece.X))
			if score > best {
				best = score
				c.targetCol = col
				c.cycles = rot
			}
		}
		cells = cycled(cells)
	}

	if c.rng.Float64() < c.blunder {
		c.targetCol = c.rng.Intn(g.Cols)
	}
}

// scorePlacement drops cells into col on a copy of g and rates the result.
// Placements that would reach the top row are rejected.
func scorePlacement(g *engine.Grid, cells [3]engine.Cell, col int) (float64, bool) {
	top := g.ColumnTop(col)
	if top < 0 {
		top = g.Rows
	}
	first := top - len(cells)
	if first < 1 {
		return 0, false
	}

	trial := g.Clone()
	for i, cell := range cells {
		p := engine.P(first+i, col)
		trial.Set(p, cell)
		engine.ActivateSpecial(trial, p)
	}

	m := engine.FindMatches(trial)
	height := float64(g.Rows - first)
	score := cpuClearWeight*float64(m.Count()) +
		cpuRainbowWeight*float64(m.Rainbows) +
		cpuGroupWeight*float64(engine.Collisions(trial)) -
		height
	return score, true
}

// cycled returns cells in the order one CycleSlots produces.
func cycled(cells [3]engine.Cell) [3]engine.Cell {
	return [3]engine.Cell{cells[1], cells[2], cells[0]}
}
