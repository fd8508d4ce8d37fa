package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-whale/internal/assets"
	"github.com/vovakirdan/tui-whale/internal/core"
	"github.com/vovakirdan/tui-whale/internal/storage"
)

// helpHeight is the number of rows below the play field.
const helpHeight = 1

// Game is the contract between the platform and a game implementation.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	UseAssets(set assets.Set)
	AssetsFailed(err error)
}

// RunRecorder stores finished runs. *storage.Session implements it.
type RunRecorder interface {
	RecordRun(r storage.RunRecord) (int64, error)
	TopRuns(limit int) ([]storage.RunRecord, error)
}

// AssetLoader loads the sprite set. It runs off the UI goroutine.
type AssetLoader func() (assets.Set, error)

// Options configures a Model. Zero values are usable.
type Options struct {
	Logger     *log.Logger
	Recorder   RunRecorder
	LoadAssets AssetLoader
}

// assetsLoadedMsg delivers the result of the asset loader.
type assetsLoadedMsg struct {
	set assets.Set
	err error
}

// Model is the Bubble Tea model running the game.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState

	keys KeyMap
	help help.Model

	logger     *log.Logger
	recorder   RunRecorder
	loadAssets AssetLoader

	// gen numbers scheduled runs. Ticks carrying an older gen are stale.
	gen      int
	ticking  bool
	runID    string
	runStart time.Time

	showRuns bool
	runs     runsBoard
	quitting bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.LoadAssets == nil {
		opts.LoadAssets = func() (assets.Set, error) {
			return assets.Load(assets.Embedded())
		}
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH-helpHeight),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
		logger:     opts.Logger,
		recorder:   opts.Recorder,
		loadAssets: opts.LoadAssets,
		runs:       newRunsBoard(cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the game and starts loading its sprites.
// No tick is scheduled until a run starts.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.playConfig())
	return m.loadAssetsCmd()
}

// loadAssetsCmd runs the asset loader as a Bubble Tea command.
func (m Model) loadAssetsCmd() tea.Cmd {
	load := m.loadAssets
	return func() tea.Msg {
		set, err := load()
		return assetsLoadedMsg{set: set, err: err}
	}
}

// playConfig returns the runtime config sized to the play field.
func (m Model) playConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-helpHeight, 0)
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case assetsLoadedMsg:
		return m.handleAssets(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showRuns {
			return m, nil
		}
		return m.handleActions(MouseActions(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleAssets hands the loaded sprites to the game.
func (m Model) handleAssets(msg assetsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("cannot load sprites", "error", msg.err)
		m.game.AssetsFailed(msg.err)
	} else {
		m.logger.Debug("sprites loaded",
			"player", msg.set.Player.Name,
			"obstacle", msg.set.Obstacle.Name)
		m.game.UseAssets(msg.set)
	}
	m.gameState = m.game.State()
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showRuns {
		if key.Matches(msg, m.keys.Runs) || key.Matches(msg, m.keys.Back) {
			m.showRuns = false
			return m, nil
		}
		var cmd tea.Cmd
		m.runs, cmd = m.runs.update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Runs) && !m.ticking {
		m.showRuns = true
		m.runs.load(m.recorder)
		return m, nil
	}

	return m.handleActions(m.keys.Actions(msg))
}

// handleActions queues actions for the next step.
// While no run is ticking the step happens immediately, so starting and
// restarting do not wait for a tick that was never scheduled.
func (m Model) handleActions(actions []core.Action) (tea.Model, tea.Cmd) {
	if len(actions) == 0 {
		return m, nil
	}
	for _, a := range actions {
		m.inputFrame.Set(a)
	}
	if m.ticking {
		return m, nil
	}
	return m.stepIdle()
}

// stepIdle steps a game that is waiting to start or restart.
func (m Model) stepIdle() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Invalidate anything the previous run scheduled before the
		// engine is reinitialised.
		m.gen++
	}

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if !m.gameState.Running() {
		return m, nil
	}
	return m.beginRun()
}

// beginRun starts the tick schedule for a new run.
func (m Model) beginRun() (tea.Model, tea.Cmd) {
	m.ticking = true
	m.runID = uuid.NewString()
	m.runStart = time.Now()
	m.logger.Info("run started", "run", m.runID, "gen", m.gen)
	return m, tickCmd(m.config.TickRate, m.gen)
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height-helpHeight)
	m.help.Width = msg.Width
	m.runs.resize(msg.Width, msg.Height)

	if m.ticking {
		m.logger.Warn("run abandoned by resize", "run", m.runID, "score", m.gameState.Score)
	}

	// A resized field cannot keep the old run; start over and stop ticking.
	m.gen++
	m.ticking = false
	m.inputFrame.Clear()
	m.game.Reset(m.playConfig())
	m.gameState = m.game.State()

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || !m.ticking {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State

	if result.Ended {
		m.ticking = false
		m.recordRun(result)
		return m, nil
	}
	if !m.gameState.Running() {
		m.ticking = false
		return m, nil
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// recordRun writes a finished run to the session log.
func (m Model) recordRun(result core.StepResult) {
	rec := storage.RunRecord{
		RunID:    m.runID,
		Score:    result.State.Score,
		Ticks:    result.State.Ticks,
		Cause:    result.Cause,
		Speed:    result.State.Speed,
		Duration: time.Since(m.runStart),
		EndedAt:  time.Now(),
	}

	m.logger.Info("run over",
		"run", rec.RunID,
		"score", rec.Score,
		"ticks", rec.Ticks,
		"cause", rec.Cause,
		"speed", rec.Speed)

	if m.recorder == nil {
		return
	}
	if _, err := m.recorder.RecordRun(rec); err != nil {
		m.logger.Warn("could not record run", "run", rec.RunID, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	footer := helpStyle.Render(m.help.View(m.keys))

	if m.showRuns {
		return m.runs.view() + "\n" + footer
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program for the game.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Left click swims
	)

	_, err := p.Run()
	return err
}
