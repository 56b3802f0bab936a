package burner

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/block-burner/internal/core"
	"github.com/vovakirdan/block-burner/internal/games/burner/engine"
)

// Layout constants, in screen characters
const (
	cellW  = 2  // Each grid slot is two characters wide
	panelW = 12 // Side panel with next piece, bag and penalty
	panelH = 18
	gapW   = 2 // Space between the two boards
)

// Visual characters for rendering
const (
	BlockChar    = '█'
	StoneChar    = '▓'
	CatalystChar = '◆'
	EmptyChar    = '·'
)

// palette maps a type index to its color. Type 2 is the gold a catalyst produces.
var palette = [engine.NormalTypes]core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorGold,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorCyan,
}

// glyph returns the two characters and color used for a cell.
func glyph(c engine.Cell) (rune, rune, core.Color) {
	switch c.Kind {
	case engine.KindNormal:
		return BlockChar, BlockChar, palette[c.Type]
	case engine.KindPowerUp:
		label := []rune(c.PowerUp.Short())
		return label[0], label[1], palette[c.PowerUp.SheetRow()]
	case engine.KindCatalyst:
		return CatalystChar, CatalystChar, core.ColorGold
	case engine.KindPetrify:
		return StoneChar, StoneChar, core.ColorStone
	default:
		return EmptyChar, ' ', core.ColorGray
	}
}

// layout holds where each part of the match is drawn.
type layout struct {
	boards [core.MaxPlayers]core.Rect
	panels [core.MaxPlayers]core.Rect
	footer int
}

func (g *Game) layout(w, h int) (layout, bool) {
	rows, cols := g.cfg.Board.Rows, g.cfg.Board.Cols
	boardW := cols*cellW + 2
	boardH := rows + 2
	totalW := 2*(panelW+boardW) + gapW
	height := core.Max(boardH, panelH)
	if w < totalW || h < height+2 {
		return layout{}, false
	}

	x := (w - totalW) / 2
	y := 1
	var l layout
	l.panels[0] = core.NewRect(x, y, panelW, boardH)
	l.boards[0] = core.NewRect(x+panelW, y, boardW, boardH)
	l.boards[1] = core.NewRect(l.boards[0].Right()+gapW, y, boardW, boardH)
	l.panels[1] = core.NewRect(l.boards[1].Right(), y, panelW, boardH)
	l.footer = y + height
	return l, true
}

// Render draws the current match to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.seats[0] == nil {
		return
	}

	l, ok := g.layout(dst.Width(), dst.Height())
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorRed)
		return
	}

	dst.DrawTextCentered(0, g.Title(), core.ColorHighlight)
	for i, s := range g.seats {
		g.drawBoard(dst, s, l.boards[i])
		g.drawPanel(dst, s, l.panels[i])
	}
	dst.DrawTextCentered(l.footer, g.helpLine(), core.ColorGray)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		title := "DRAW"
		if name := g.WinnerName(); name != "" {
			title = name + " WINS!"
		}
		g.drawCenteredMessage(dst, title, "R restart  |  Esc quit")
	}
}

// drawBoard draws the frame, locked cells and falling piece of one board.
func (g *Game) drawBoard(dst *core.Screen, s *seat, r core.Rect) {
	frame := core.ColorWhite
	if s.session.State() == engine.StateGameOver {
		frame = core.ColorRed
	} else if s.session.Penalty() > 0 {
		frame = core.ColorOrange
	}
	dst.DrawBox(r, frame)

	inner := r.Inset(1)
	for row := 0; row < s.session.Rows(); row++ {
		for col := 0; col < s.session.Cols(); col++ {
			drawCell(dst, inner.X+col*cellW, inner.Y+row, s.session.Cell(engine.P(row, col)))
		}
	}

	if piece, ok := s.session.Current(); ok {
		cells := piece.Cells()
		for i, p := range piece.Positions() {
			if p.Row >= 0 {
				drawCell(dst, inner.X+p.Col*cellW, inner.Y+p.Row, cells[i])
			}
		}
	}
}

func drawCell(dst *core.Screen, x, y int, c engine.Cell) {
	left, right, color := glyph(c)
	dst.SetWithColor(x, y, left, color)
	dst.SetWithColor(x+1, y, right, color)
}

// drawPanel draws the HUD beside a board.
func (g *Game) drawPanel(dst *core.Screen, s *seat, r core.Rect) {
	x, y := r.X+1, r.Y
	sess := s.session

	dst.DrawTextWithColor(x, y, s.name, core.ColorHighlight)
	dst.DrawText(x, y+1, formatElapsed(sess.Elapsed()))

	dst.DrawTextWithColor(x, y+3, "NEXT", core.ColorGray)
	if next, ok := sess.Next(); ok {
		for i, c := range next.Cells() {
			drawCell(dst, x, y+4+i, c)
		}
	}

	inv := sess.Inventory()
	dst.DrawTextWithColor(x, y+8, fmt.Sprintf("BAG %d/%d", len(inv), sess.InventoryCap()), core.ColorGray)
	for i, p := range inv {
		color := palette[p.SheetRow()]
		if i == 0 {
			color = core.ColorHighlight
		}
		dst.DrawTextWithColor(x+(i%3)*3, y+9+i/3, p.Short(), color)
	}

	if pen := sess.Penalty(); pen > 0 {
		dst.DrawTextWithColor(x, y+14, fmt.Sprintf("PEN %d", pen), core.ColorOrange)
	}
	if sess.SoftDrop() {
		dst.DrawTextWithColor(x, y+15, "SOFT", core.ColorCyan)
	}
	if s.message != "" {
		dst.DrawTextWithColor(x, y+17, truncate(s.message, panelW-1), core.ColorYellow)
	}
}

func (g *Game) helpLine() string {
	switch g.mode {
	case ModeVersus:
		return "P1 a/d w s x q   P2 ←/→ ↑ ↓ . space   p pause  esc quit"
	case ModeDemo:
		return "p pause  esc quit"
	default:
		return "a/d move  w cycle  s drop  x soft  q power  p pause"
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorHighlight)
	dst.DrawTextCentered(box.Y+1, title, core.ColorHighlight)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorDefault)
}

func formatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
