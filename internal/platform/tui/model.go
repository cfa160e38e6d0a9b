package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gravity-runner/internal/core"
	"github.com/vovakirdan/gravity-runner/internal/storage"
)

// Game is the simulation the terminal front-end drives.
// Games contain pure logic with no Bubble Tea dependency.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Model is the Bubble Tea model for a game session.
//
// Ticks run only while a run is in progress: a game over stops the chain
// and the primary action that retries starts a new one.
type Model struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	ticking    bool
	runID      string
	scoreSaved bool // Whether the current run's score has been saved
	quitting   bool
	shotDir    string
}

// NewModel creates a model and resets the game onto its start screen.
// store may be nil; scores are then not recorded.
func NewModel(game Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		shotDir:    defaultScreenshotDir(),
	}
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "gravrun-screenshots")
	}
	return filepath.Join(home, ".gravrun", "screenshots")
}

// Init does nothing: the start screen waits for the primary action.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.keys.MapMouse(msg) == core.ActionPrimary {
			return m.handlePrimary()
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionScreenshot:
		m.saveScreenshot()
	case core.ActionPrimary:
		return m.handlePrimary()
	}
	return m, nil
}

// handlePrimary queues the action for the next tick while a run is going.
// Otherwise the loop is halted, so the action is applied at once and the
// tick chain restarts.
func (m Model) handlePrimary() (tea.Model, tea.Cmd) {
	if m.ticking {
		m.inputFrame.Set(core.ActionPrimary)
		return m, nil
	}

	in := core.NewInputFrame()
	in.Set(core.ActionPrimary)
	m.runID = uuid.NewString()
	m.scoreSaved = false
	m.applyStep(m.game.Step(in))

	if m.ticking {
		return m, tickCmd(m.config.TickRate)
	}
	return m, nil
}

// handleResize processes window resize events. The world is resolution
// independent, so the run continues at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.ticking {
		return m, nil
	}

	m.applyStep(m.game.Step(m.inputFrame))
	m.inputFrame.Clear()

	if !m.ticking {
		return m, nil
	}
	return m, tickCmd(m.config.TickRate)
}

// applyStep records the result of a step and saves the score once per run.
func (m *Model) applyStep(res core.StepResult) {
	m.gameState = res.State
	m.ticking = res.State.Started && !res.State.GameOver

	if !m.gameState.GameOver || m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score == 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.runID, m.gameState.Score); err != nil {
		m.logger.Warn("cannot save score", "err", err)
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", m.shotDir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for the game on the local terminal.
func Run(game Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Clicks trigger the primary action
	)

	_, err := p.Run()
	return err
}
