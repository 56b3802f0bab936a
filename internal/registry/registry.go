// Package registry maps game IDs to factories. Game packages register their
// modes from init(), so the CLI and menus can list and build them without
// importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/block-burner/internal/core"
)

// Game is implemented by every playable mode. It holds pure simulation state;
// the platform owns timing, input mapping and terminal output.
type Game interface {
	// ID returns the registry key, e.g. "versus".
	ID() string

	// Title returns the display name.
	Title() string

	// Reset starts a new match.
	Reset(cfg core.RuntimeConfig)

	// Step advances the match by one fixed tick using every player's input.
	Step(in core.MultiInputFrame) core.StepResult

	// Render draws the match into dst. dst is cleared before the call.
	Render(dst *core.Screen)

	// State returns the current match status.
	State() core.GameState
}

// Info describes a registered game.
type Info struct {
	ID          string
	Title       string
	Description string
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	info    Info
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under info.ID. Panics on an empty or duplicate ID.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: empty game id")
	}
	if _, dup := entries[info.ID]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns every registered game sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns the info of a registered game.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
