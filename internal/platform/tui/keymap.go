package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/block-burner/internal/core"
)

// binding is what one key does during a match.
type binding struct {
	player core.PlayerID
	action core.Action
}

// playerKeys holds the two local key maps. Player 1 sits on the left of the
// keyboard, player 2 on the arrows.
var playerKeys = map[string]binding{
	"a": {core.Player1, core.ActionLeft},
	"d": {core.Player1, core.ActionRight},
	"w": {core.Player1, core.ActionCycle},
	"s": {core.Player1, core.ActionHardDrop},
	"q": {core.Player1, core.ActionPowerUp},
	"x": {core.Player1, core.ActionSoftDrop},

	"left":  {core.Player2, core.ActionLeft},
	"right": {core.Player2, core.ActionRight},
	"up":    {core.Player2, core.ActionCycle},
	"down":  {core.Player2, core.ActionHardDrop},
	" ":     {core.Player2, core.ActionPowerUp},
	".":     {core.Player2, core.ActionSoftDrop},
}

// KeyMapper translates Bubble Tea key messages to game actions.
// With a single human at the keyboard both key maps drive player 1.
type KeyMapper struct {
	singlePlayer bool
}

// NewKeyMapper creates a key mapper. singlePlayer folds player 2's keys onto player 1.
func NewKeyMapper(singlePlayer bool) *KeyMapper {
	return &KeyMapper{singlePlayer: singlePlayer}
}

// MapKey translates a key message to a player action.
// Returns the player, the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.PlayerID, core.Action, bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "esc":
		return core.Player1, core.ActionQuit, true
	case "p":
		return core.Player1, core.ActionPause, false
	case "r":
		return core.Player1, core.ActionRestart, false
	}

	b, ok := playerKeys[key]
	if !ok {
		return core.Player1, core.ActionNone, false
	}
	if km.singlePlayer {
		b.player = core.Player1
	}
	return b.player, b.action, false
}

// MapKeyToMultiFrame records a key message in frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(player, action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionHistory
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionHistory
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
