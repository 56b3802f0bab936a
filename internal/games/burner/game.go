// Package burner runs Block Burner matches on top of the engine package:
// two boards side by side, driven by local players or the CPU.
package burner

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/block-burner/internal/config"
	"github.com/vovakirdan/block-burner/internal/core"
	"github.com/vovakirdan/block-burner/internal/games/burner/engine"
	"github.com/vovakirdan/block-burner/internal/registry"
)

// Mode selects who controls each board.
type Mode string

const (
	ModeVersus Mode = "versus" // Two players at one keyboard
	ModeCPU    Mode = "cpu"    // Player 1 against the computer
	ModeDemo   Mode = "demo"   // Computer against computer
)

// End reasons stored with a finished match.
const (
	EndGameOver  = "game_over"
	EndQuit      = "quit"
	EndTickLimit = "tick_limit" // Headless runs that hit their tick budget
)

// messageTTL is how long a HUD notice stays on screen.
const messageTTL = 1500 * time.Millisecond

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// eventLogger receives engine events at debug level
var eventLogger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger routes engine events of every new match to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	eventLogger = l
}

// seat is one board and whoever drives it.
type seat struct {
	player   core.PlayerID
	name     string
	session  *engine.Session
	cpu      *cpuController // nil for a human
	softHold time.Duration  // Remaining soft drop time after the last press
	gravity  time.Duration  // Accumulated time toward the next gravity step
	message  string
	msgLeft  time.Duration
}

// Game is one Block Burner match.
type Game struct {
	mode       Mode
	cfg        config.BurnerConfig
	pinned     bool // cfg was set with UseConfig and is not reloaded on Reset
	preset     config.DifficultyPreset
	difficulty *config.DifficultyManager
	logger     *log.Logger
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	boards     *engine.Boards
	seats      [core.MaxPlayers]*seat

	tick      int
	elapsed   time.Duration
	paused    bool
	gameOver  bool
	hasWinner bool
	winner    core.PlayerID
}

// New creates a match in the given mode.
func New(mode Mode) *Game {
	return &Game{
		mode: mode,
		cfg:  config.DefaultBurnerConfig(),
	}
}

// UseConfig fixes the configuration instead of loading it on Reset.
func (g *Game) UseConfig(cfg config.BurnerConfig) {
	g.cfg = cfg
	g.pinned = true
}

// UseDifficulty overrides the package-wide preset for this match only.
func (g *Game) UseDifficulty(preset config.DifficultyPreset) {
	g.preset = preset
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.mode {
	case ModeVersus:
		return "Block Burner: Versus"
	case ModeDemo:
		return "Block Burner: Demo"
	default:
		return "Block Burner: vs CPU"
	}
}

// Mode returns who controls each board.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset starts a new match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.logger = eventLogger.With("match", string(g.mode))

	if !g.pinned {
		cfg, err := config.LoadBurner(configPath)
		if err != nil {
			g.logger.Warn("using default config", "error", err)
			cfg = config.DefaultBurnerConfig()
		}
		preset := difficultyPreset
		if g.preset != "" {
			preset = g.preset
		}
		if preset != "" {
			config.ApplyBurnerPreset(&cfg, preset)
		}
		g.cfg = cfg
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.boards = engine.NewBoards()
	opts := g.sessionOptions()

	for i, name := range g.seatNames() {
		id := core.PlayerID(i)
		s := &seat{player: id, name: name}
		// Each board draws from its own stream.
		s.session = engine.NewSession(name, opts, rand.New(rand.NewSource(g.rng.Int63())), g.boards)
		s.session.OnEvent(g.eventHandler(s))
		if g.isCPU(id) {
			s.cpu = newCPUController(g.cfg.CPU, g.rng.Int63())
		}
		g.seats[i] = s
	}

	g.tick = 0
	g.elapsed = 0
	g.paused = false
	g.gameOver = false
	g.hasWinner = false
	g.winner = core.Player1

	g.logger.Debug("match started", "seed", runtime.Seed,
		"rows", opts.Rows, "cols", opts.Cols)
}

func (g *Game) sessionOptions() engine.Options {
	return engine.Options{
		Rows:              g.cfg.Board.Rows,
		Cols:              g.cfg.Board.Cols,
		PowerUpChance:     g.cfg.Pieces.PowerUpChance,
		InventoryCapacity: g.cfg.Rules.InventoryCapacity,
		PenaltyBudget:     g.cfg.Rules.PenaltyBudget,
		FallRate:          g.cfg.Timing.FallRowsPerSecond / 1000.0,
		NormalFactor:      g.cfg.Timing.NormalFactor,
		SoftDropFactor:    g.cfg.Timing.SoftDropFactor,
	}
}

func (g *Game) seatNames() [core.MaxPlayers]string {
	switch g.mode {
	case ModeVersus:
		return [core.MaxPlayers]string{"P1", "P2"}
	case ModeDemo:
		return [core.MaxPlayers]string{"CPU 1", "CPU 2"}
	default:
		return [core.MaxPlayers]string{"P1", "CPU"}
	}
}

func (g *Game) isCPU(id core.PlayerID) bool {
	switch g.mode {
	case ModeDemo:
		return true
	case ModeCPU:
		return id == core.Player2
	default:
		return false
	}
}

// eventHandler logs engine events and turns the notable ones into HUD notices.
func (g *Game) eventHandler(s *seat) func(engine.Event) {
	return func(e engine.Event) {
		switch e.Kind {
		case engine.EventSpawned, engine.EventLocked:
			return
		case engine.EventCleared:
			g.logger.Debug("cleared", "board", e.Board, "cells", e.Cells, "tick", g.tick)
		case engine.EventPowerUpBanked:
			g.logger.Debug("power-up banked", "board", e.Board, "power_up", e.PowerUp)
			s.notify("+" + e.PowerUp.String())
		case engine.EventPowerUpLost:
			g.logger.Debug("power-up lost", "board", e.Board, "power_up", e.PowerUp)
			s.notify("bag full")
		case engine.EventPowerUpFired:
			g.logger.Debug("power-up fired", "board", e.Board, "power_up", e.PowerUp,
				"category", e.PowerUp.Category())
			s.notify(e.PowerUp.String() + "!")
		case engine.EventPenaltyArmed:
			g.logger.Debug("penalty armed", "board", e.Board, "budget", e.Budget)
			s.notify("RAINBOW!")
		case engine.EventPenaltyRound:
			g.logger.Debug("penalty round", "board", e.Board, "budget", e.Budget)
		case engine.EventGameOver:
			g.logger.Debug("board topped out", "board", e.Board, "elapsed", g.elapsed)
		}
	}
}

func (s *seat) notify(msg string) {
	s.message = msg
	s.msgLeft = messageTTL
}

// Step advances the match by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Any(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickDuration()
	g.tick++
	g.elapsed += dt

	scale := g.difficulty.SpeedScale(g.elapsed.Seconds(), g.mostPieces())
	for _, s := range g.seats {
		frame := in.Player(s.player)
		if s.cpu != nil {
			frame = s.cpu.Decide(s.session, g.tick)
		}
		g.applyInput(s, frame, dt)
		s.session.SetSpeedScale(scale)
		g.advance(s, dt)
	}

	g.checkGameOver()
	return core.StepResult{State: g.State()}
}

// applyInput turns one player's actions into session commands.
func (g *Game) applyInput(s *seat, in core.InputFrame, dt time.Duration) {
	sess := s.session
	if in.Has(core.ActionLeft) {
		sess.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		sess.MoveRight()
	}
	if in.Has(core.ActionCycle) {
		sess.CycleSlots()
	}
	if in.Has(core.ActionPowerUp) {
		sess.ActivatePowerUp()
	}
	if in.Has(core.ActionHardDrop) {
		sess.HardDrop()
		s.softHold = 0
	}

	// Terminals report presses only; soft drop stays on for a window after each one.
	if in.Has(core.ActionSoftDrop) {
		s.softHold = time.Duration(g.cfg.Timing.SoftDropHoldMs) * time.Millisecond
	} else {
		s.softHold = max(0, s.softHold-dt)
	}
	sess.SetSoftDrop(s.softHold > 0)
}

// advance runs the gravity animation and the fall clock of one board.
func (g *Game) advance(s *seat, dt time.Duration) {
	sess := s.session
	if sess.Animating() {
		step := time.Duration(g.cfg.Timing.GravityStepMs) * time.Millisecond
		s.gravity += dt
		for s.gravity >= step && sess.Animating() {
			s.gravity -= step
			sess.StepGravity()
		}
	} else {
		s.gravity = 0
	}

	sess.Tick(dt)

	if s.msgLeft > 0 {
		s.msgLeft -= dt
		if s.msgLeft <= 0 {
			s.message = ""
		}
	}
}

// checkGameOver ends the match once any board tops out. The surviving board
// wins; if every board topped out in the same tick the match is a draw.
func (g *Game) checkGameOver() {
	var alive []*seat
	over := false
	for _, s := range g.seats {
		if s.session.State() == engine.StateGameOver {
			over = true
		} else {
			alive = append(alive, s)
		}
	}
	if !over {
		return
	}

	g.gameOver = true
	if len(alive) == 1 {
		g.hasWinner = true
		g.winner = alive[0].player
	}
	g.logger.Info("match over", "winner", g.WinnerName(), "elapsed", g.elapsed.Round(time.Second))
}

func (g *Game) mostPieces() int {
	n := 0
	for _, s := range g.seats {
		n = max(n, s.session.Stats().PiecesLocked)
	}
	return n
}

// WinnerName returns the winning board's name, or "" on a draw or while the
// match is running.
func (g *Game) WinnerName() string {
	if !g.hasWinner {
		return ""
	}
	return g.seats[g.winner].name
}

// Session returns the board of a player. Used by tests and the simulator.
func (g *Game) Session(id core.PlayerID) *engine.Session {
	if id >= core.MaxPlayers || g.seats[id] == nil {
		return nil
	}
	return g.seats[id].session
}

// Elapsed returns the match time.
func (g *Game) Elapsed() time.Duration {
	return g.elapsed
}

// Ticks returns the number of simulated ticks.
func (g *Game) Ticks() int {
	return g.tick
}

// State returns the current match status.
func (g *Game) State() core.GameState {
	return core.GameState{
		GameOver:  g.gameOver,
		Paused:    g.paused,
		HasWinner: g.hasWinner,
		Winner:    g.winner,
		Elapsed:   g.elapsed,
	}
}

// Register every mode with the registry
func init() {
	modes := []struct {
		mode Mode
		desc string
	}{
		{ModeVersus, "Two players, one keyboard"},
		{ModeCPU, "Play against the computer"},
		{ModeDemo, "Watch two CPUs play"},
	}
	for _, m := range modes {
		mode := m.mode
		registry.Register(registry.Info{
			ID:          string(mode),
			Title:       New(mode).Title(),
			Description: m.desc,
		}, func() registry.Game {
			return New(mode)
		})
	}
}
