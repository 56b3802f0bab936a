package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/block-burner/internal/core"
	"github.com/vovakirdan/block-burner/internal/games/burner"
	"github.com/vovakirdan/block-burner/internal/registry"
	"github.com/vovakirdan/block-burner/internal/storage"
)

// matchRecorder is implemented by games that can describe a finished match.
type matchRecorder interface {
	MatchRecord(reason string) storage.MatchRecord
}

// GameModel is the Bubble Tea model that runs one match.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	input      core.MultiInputFrame
	keys       *KeyMapper
	state      core.GameState
	canGoBack  bool // Esc returns to the menu instead of quitting
	quitting   bool
	backToMenu bool
	saved      bool // The current match has been written to history
}

// NewGameModel creates a model for game. A nil logger discards output.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		logger: logger,
		config: cfg,
		keys:   NewKeyMapper(game.ID() != string(burner.ModeVersus)),
	}
}

// Init starts the match and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickDuration())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+c":
		m.saveMatch(burner.EndQuit)
		m.quitting = true
		return m, tea.Quit
	}

	if m.keys.MapKeyToMultiFrame(msg, &m.input) {
		m.saveMatch(burner.EndQuit)
		if m.canGoBack {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick runs one simulation step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.input.Any(core.ActionRestart) && m.state.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.state = m.game.State()
		m.saved = false
		m.input.Clear()
		return m, tickCmd(m.config.TickDuration())
	}

	result := m.game.Step(m.input)
	m.state = result.State
	if m.state.GameOver {
		m.saveMatch(burner.EndGameOver)
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickDuration())
}

// saveMatch writes the current match to history once. Matches that never
// started are skipped.
func (m *GameModel) saveMatch(reason string) {
	if m.saved || m.store == nil || m.state.Elapsed == 0 {
		return
	}
	m.saved = true

	rec, ok := m.game.(matchRecorder)
	if !ok {
		return
	}
	saved, err := m.store.SaveMatch(rec.MatchRecord(reason))
	if err != nil {
		m.logger.Warn("could not save match", "error", err)
		return
	}
	m.logger.Debug("match saved", "id", saved.MatchID, "mode", saved.Mode,
		"winner", saved.Winner, "reason", reason)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".burner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to leave the program.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the current terminal until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
