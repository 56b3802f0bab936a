package engine

import "fmt"

// PowerUp identifies one of the twelve power-up effects.
type PowerUp uint8

const (
	Offense1     PowerUp = iota // Raise the floor with a random row
	Offense2                    // Scramble three cells to break up groups
	Offense3                    // Petrify strike on a random cell
	Offense4                    // Force a petrify bar as the next piece
	Offense5                    // Destroy one banked power-up
	Offense6                    // Drop two petrify cells
	Defense1                    // Clear the bottom row
	Defense2                    // Dissolve part of one color
	Defense3                    // Force a catalyst bar as the next piece
	Defense4                    // Paint a 3x3 square
	Defense5                    // Shatter up to two petrify cells
	Defense6                    // Regroup three cells of one color on the floor
	PowerUpCount                // Sentinel for counting kinds
)

// Category separates power-ups that hit opponents from those that help the owner.
type Category uint8

const (
	Offensive Category = iota
	Defensive
)

// String returns the category name.
func (c Category) String() string {
	if c == Offensive {
		return "offensive"
	}
	return "defensive"
}

// Valid reports whether p names one of the twelve kinds.
func (p PowerUp) Valid() bool {
	return p < PowerUpCount
}

// Category returns whether the power-up targets opponents or the owner.
func (p PowerUp) Category() Category {
	if p < Defense1 {
		return Offensive
	}
	return Defensive
}

// SheetColumn returns the sprite sheet column of the power-up.
func (p PowerUp) SheetColumn() int {
	if p.Category() == Offensive {
		return 1
	}
	return 2
}

// SheetRow returns the sprite sheet row, which doubles as the cell's type index.
func (p PowerUp) SheetRow() int {
	return int(p) % NormalTypes
}

// Short returns a compact label such as "o1" or "d6".
func (p PowerUp) Short() string {
	if !p.Valid() {
		return "?"
	}
	prefix := "o"
	if p.Category() == Defensive {
		prefix = "d"
	}
	return fmt.Sprintf("%s%d", prefix, p.SheetRow()+1)
}

// String returns the display name of the power-up.
func (p PowerUp) String() string {
	switch p {
	case Offense1:
		return "Uplift"
	case Offense2:
		return "Scramble"
	case Offense3:
		return "Gaze"
	case Offense4:
		return "Stone Bar"
	case Offense5:
		return "Thief"
	case Offense6:
		return "Rockfall"
	case Defense1:
		return "Sweep"
	case Defense2:
		return "Dissolve"
	case Defense3:
		return "Midas Bar"
	case Defense4:
		return "Paint"
	case Defense5:
		return "Shatter"
	case Defense6:
		return "Regroup"
	default:
		return "Unknown"
	}
}

// AllPowerUps returns every kind in declaration order.
func AllPowerUps() []PowerUp {
	out := make([]PowerUp, 0, PowerUpCount)
	for p := PowerUp(0); p < PowerUpCount; p++ {
		out = append(out, p)
	}
	return out
}

// Effect is the routine bound to a power-up. It runs with the session that fired it.
type Effect func(p PowerUp, s *Session)

// effects binds every power-up to its routine.
var effects = [PowerUpCount]Effect{
	Offense1: offensive(raiseFloor),
	Offense2: offensive(scramble),
	Offense3: offensive(petrifyStrike),
	Offense4: stoneBar,
	Offense5: thief,
	Offense6: rockfall,
	Defense1: defensive(sweepBottom),
	Defense2: defensive(dissolveColor),
	Defense3: midasBar,
	Defense4: paintSquare,
	Defense5: defensive(shatterPetrify),
	Defense6: defensive(regroupColor),
}

// EffectOf returns the routine bound to p.
func EffectOf(p PowerUp) Effect {
	if !p.Valid() {
		panic(fmt.Sprintf("engine: invalid power-up %d", p))
	}
	return effects[p]
}

// Dispatch runs the effect of p on behalf of s, then starts gravity on every
// board the effect may have changed so each one settles and re-cascades.
func Dispatch(p PowerUp, s *Session) {
	EffectOf(p)(p, s)
	for _, b := range affectedBoards(p, s) {
		b.AnimateGravity()
	}
}

// affectedBoards returns the boards an effect of p targets.
func affectedBoards(p PowerUp, s *Session) []Board {
	if p.Category() == Defensive {
		return []Board{s}
	}
	return s.opponents()
}
