package engine

// EventKind identifies something that happened on a board.
type EventKind uint8

const (
	EventSpawned       EventKind = iota // A new piece entered the board
	EventLocked                         // The falling piece locked into the grid
	EventCleared                        // A clear pass removed cells
	EventPowerUpBanked                  // A cleared power-up went to the inventory
	EventPowerUpLost                    // A cleared power-up was dropped, inventory full
	EventPowerUpFired                   // The player activated a power-up
	EventPenaltyArmed                   // A rainbow row armed the penalty budget
	EventPenaltyRound                   // Penalty cells were sent to opponents
	EventGameOver                       // The board reached the top
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventLocked:
		return "locked"
	case EventCleared:
		return "cleared"
	case EventPowerUpBanked:
		return "power_up_banked"
	case EventPowerUpLost:
		return "power_up_lost"
	case EventPowerUpFired:
		return "power_up_fired"
	case EventPenaltyArmed:
		return "penalty_armed"
	case EventPenaltyRound:
		return "penalty_round"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a notification emitted by a session.
type Event struct {
	Kind    EventKind
	Board   string  // ID of the emitting session
	PowerUp PowerUp // For power-up events
	Cells   int     // Cells removed, for EventCleared
	Budget  int     // Penalty budget after the event, for penalty events
}

// Stats accumulates per-session counters for a match summary.
type Stats struct {
	PiecesLocked   int
	CellsCleared   int
	Cascades       int
	PowerUpsBanked int
	PowerUpsFired  int
	PenaltyRounds  int
}
