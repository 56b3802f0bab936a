package core

// Action is a semantic game command, independent of the key that produced it.
type Action uint8

const (
	ActionNone     Action = iota
	ActionLeft            // Move the falling piece left
	ActionRight           // Move the falling piece right
	ActionSoftDrop        // Soft drop is held this tick
	ActionHardDrop        // Drop and lock at once
	ActionCycle           // Rotate the cells of the falling piece
	ActionPowerUp         // Fire the oldest banked power-up
	ActionPause
	ActionRestart
	ActionQuit
	ActionConfirm
	ActionBack
	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:     "None",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionSoftDrop: "SoftDrop",
	ActionHardDrop: "HardDrop",
	ActionCycle:    "Cycle",
	ActionPowerUp:  "PowerUp",
	ActionPause:    "Pause",
	ActionRestart:  "Restart",
	ActionQuit:     "Quit",
	ActionConfirm:  "Confirm",
	ActionBack:     "Back",
}

// String returns the action name.
func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// PlayerID identifies a seat at the local keyboard.
type PlayerID uint8

const (
	Player1 PlayerID = iota
	Player2
	MaxPlayers = 2
)

// String returns "P1" or "P2".
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "P?"
	}
}

// InputFrame is the set of actions one player triggered during a tick.
type InputFrame struct {
	bits uint32
}

// Set marks a as triggered.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Clear drops every action.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// MultiInputFrame carries every player's input for one tick. The platform
// fills it from the keyboard and the CPU controller; games never see the source.
type MultiInputFrame struct {
	players [MaxPlayers]InputFrame
}

// Player returns the frame of one player. Unknown IDs get an empty frame.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if id >= MaxPlayers {
		return InputFrame{}
	}
	return m.players[id]
}

// Set marks a for player id.
func (m *MultiInputFrame) Set(id PlayerID, a Action) {
	if id < MaxPlayers {
		m.players[id].Set(a)
	}
}

// SetPlayer replaces the frame of player id.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if id < MaxPlayers {
		m.players[id] = frame
	}
}

// Any reports whether any player triggered a.
func (m MultiInputFrame) Any(a Action) bool {
	for _, f := range m.players {
		if f.Has(a) {
			return true
		}
	}
	return false
}

// Clear drops every player's actions.
func (m *MultiInputFrame) Clear() {
	for i := range m.players {
		m.players[i].Clear()
	}
}
