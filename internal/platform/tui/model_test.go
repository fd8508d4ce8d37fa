package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-whale/internal/assets"
	"github.com/vovakirdan/tui-whale/internal/core"
	"github.com/vovakirdan/tui-whale/internal/storage"
)

// fakeGame is a scripted Game: a run lasts endAfter steps.
type fakeGame struct {
	endAfter int

	resets    int
	steps     int
	ready     bool
	assetsErr error
	state     core.GameState
	inputs    []core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Best: g.state.Best, Ready: g.ready}
}

func (g *fakeGame) UseAssets(assets.Set) {
	g.ready = true
	g.state.Ready = true
}

func (g *fakeGame) AssetsFailed(err error) { g.assetsErr = err }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	switch {
	case !g.ready:
	case !g.state.Started && (in.Has(core.ActionStart) || in.Has(core.ActionJump)):
		g.state.Started = true
	case g.state.GameOver && in.Has(core.ActionRestart):
		g.state = core.GameState{Best: g.state.Best, Ready: true, Started: true}
	case g.state.Running():
		g.steps++
		g.state.Ticks++
		g.state.Score = g.state.Ticks / 2
		if g.state.Ticks >= g.endAfter {
			g.state.GameOver = true
			g.state.Best = max(g.state.Best, g.state.Score)
			return core.StepResult{State: g.state, Ended: true, Cause: "collision"}
		}
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake game")
}

func (g *fakeGame) State() core.GameState { return g.state }

type fakeRecorder struct {
	records []storage.RunRecord
	err     error
}

func (r *fakeRecorder) RecordRun(rec storage.RunRecord) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.records = append(r.records, rec)
	return int64(len(r.records)), nil
}

func (r *fakeRecorder) TopRuns(limit int) ([]storage.RunRecord, error) {
	return r.records, r.err
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func spaceKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}} }
func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// update feeds one message and returns the concrete model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

// readyModel returns a model whose sprites have loaded.
func readyModel(t *testing.T, g *fakeGame, rec RunRecorder) Model {
	t.Helper()
	m := NewModel(g, testConfig(), Options{Recorder: rec})
	m.Init()
	m, _ = update(t, m, assetsLoadedMsg{})
	return m
}

func TestModelInitLoadsAssets(t *testing.T) {
	g := &fakeGame{endAfter: 5}
	loaded := false
	m := NewModel(g, testConfig(), Options{
		LoadAssets: func() (assets.Set, error) {
			loaded = true
			return assets.Set{}, nil
		},
	})

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() should return the asset load command")
	}
	if g.resets != 1 {
		t.Errorf("Init() reset the game %d times, expected 1", g.resets)
	}

	msg := cmd()
	if !loaded {
		t.Error("asset loader was not called")
	}
	m, tick := update(t, m, msg)
	if tick != nil {
		t.Error("loading assets must not start ticking")
	}
	if !m.gameState.Ready {
		t.Error("game not ready after assets loaded")
	}
}

func TestModelAssetFailure(t *testing.T) {
	g := &fakeGame{endAfter: 5}
	m := NewModel(g, testConfig(), Options{})
	m, _ = update(t, m, assetsLoadedMsg{err: errors.New("boom")})

	if g.assetsErr == nil {
		t.Fatal("AssetsFailed was not called")
	}
	m, cmd := update(t, m, spaceKey())
	if cmd != nil || m.ticking {
		t.Error("run started although sprites failed to load")
	}
}

func TestModelStartSchedulesTicks(t *testing.T) {
	g := &fakeGame{endAfter: 5}
	m := readyModel(t, g, nil)

	m, cmd := update(t, m, spaceKey())
	if cmd == nil || !m.ticking {
		t.Fatal("starting a run should schedule a tick")
	}
	if m.runID == "" {
		t.Error("run has no ID")
	}
	first := g.inputs[0]
	if !first.Has(core.ActionJump) || !first.Has(core.ActionStart) {
		t.Errorf("space should send jump and start, got %v", first.Actions)
	}

	m, cmd = update(t, m, TickMsg{Gen: m.gen})
	if cmd == nil {
		t.Error("a running game should keep ticking")
	}
	if g.steps != 1 {
		t.Errorf("steps = %d, expected 1", g.steps)
	}
}

func TestModelInputWaitsForTick(t *testing.T) {
	g := &fakeGame{endAfter: 50}
	m := readyModel(t, g, nil)
	m, _ = update(t, m, spaceKey())

	m, cmd := update(t, m, runeKey('w'))
	if cmd != nil {
		t.Error("input during a run must not schedule extra ticks")
	}
	steps := g.steps

	update(t, m, TickMsg{Gen: m.gen})
	if g.steps != steps+1 {
		t.Fatal("tick did not step the game")
	}
	if last := g.inputs[len(g.inputs)-1]; !last.Has(core.ActionJump) {
		t.Error("queued jump was not delivered on the next tick")
	}
}

func TestModelStaleTickIgnored(t *testing.T) {
	g := &fakeGame{endAfter: 5}
	m := readyModel(t, g, nil)
	m, _ = update(t, m, spaceKey())

	m, cmd := update(t, m, TickMsg{Gen: m.gen - 1})
	if cmd != nil || g.steps != 0 {
		t.Error("stale tick stepped the game")
	}
}

func TestModelGameOverRecordsRun(t *testing.T) {
	g := &fakeGame{endAfter: 3}
	rec := &fakeRecorder{}
	m := readyModel(t, g, rec)
	m, _ = update(t, m, spaceKey())

	var cmd tea.Cmd
	for i := 0; i < 3; i++ {
		m, cmd = update(t, m, TickMsg{Gen: m.gen})
	}
	if cmd != nil {
		t.Error("no tick may be scheduled after game over")
	}
	if m.ticking {
		t.Error("model still ticking after game over")
	}
	if len(rec.records) != 1 {
		t.Fatalf("recorded %d runs, expected 1", len(rec.records))
	}
	r := rec.records[0]
	if r.RunID != m.runID || r.Ticks != 3 || r.Score != 1 || r.Cause != "collision" {
		t.Errorf("recorded run = %+v", r)
	}

	// A late tick from the finished run changes nothing.
	update(t, m, TickMsg{Gen: m.gen})
	if g.steps != 3 {
		t.Errorf("steps = %d after game over, expected 3", g.steps)
	}
}

func TestModelRecorderErrorIsNotFatal(t *testing.T) {
	g := &fakeGame{endAfter: 1}
	rec := &fakeRecorder{err: errors.New("disk on fire")}
	m := readyModel(t, g, rec)
	m, _ = update(t, m, spaceKey())

	m, cmd := update(t, m, TickMsg{Gen: m.gen})
	if cmd != nil || m.ticking {
		t.Error("run should end cleanly when recording fails")
	}
}

func TestModelRestartBumpsGeneration(t *testing.T) {
	g := &fakeGame{endAfter: 1}
	m := readyModel(t, g, &fakeRecorder{})
	m, _ = update(t, m, spaceKey())
	m, _ = update(t, m, TickMsg{Gen: m.gen})

	oldGen, oldRun := m.gen, m.runID
	m, cmd := update(t, m, runeKey('r'))
	if cmd == nil || !m.ticking {
		t.Fatal("restart should schedule a tick")
	}
	if m.gen != oldGen+1 {
		t.Errorf("gen = %d, expected %d", m.gen, oldGen+1)
	}
	if m.runID == oldRun {
		t.Error("restart reused the run ID")
	}

	steps := g.steps
	update(t, m, TickMsg{Gen: oldGen})
	if g.steps != steps {
		t.Error("tick from the previous run stepped the new one")
	}
}

func TestModelMouseTap(t *testing.T) {
	g := &fakeGame{endAfter: 5}
	m := readyModel(t, g, nil)

	m, cmd := update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if cmd == nil || !m.ticking {
		t.Error("left click should start the run")
	}

	before := len(g.inputs)
	update(t, m, tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if len(g.inputs) != before {
		t.Error("mouse motion should be ignored")
	}
}

func TestModelResizeStopsRun(t *testing.T) {
	g := &fakeGame{endAfter: 50}
	m := readyModel(t, g, nil)
	m, _ = update(t, m, spaceKey())
	gen := m.gen

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if cmd != nil || m.ticking {
		t.Error("resize should stop ticking")
	}
	if m.gen == gen {
		t.Error("resize should invalidate pending ticks")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30-helpHeight {
		t.Errorf("screen = %dx%d, expected 100x%d", m.screen.Width(), m.screen.Height(), 30-helpHeight)
	}
	if g.state.Started {
		t.Error("resize should reset the game")
	}
}

func TestModelRunsBoard(t *testing.T) {
	g := &fakeGame{endAfter: 2}
	rec := &fakeRecorder{}
	m := readyModel(t, g, rec)
	m, _ = update(t, m, spaceKey())
	m, _ = update(t, m, TickMsg{Gen: m.gen})
	m, _ = update(t, m, TickMsg{Gen: m.gen})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showRuns {
		t.Fatal("tab should open the runs board after a run")
	}
	if !strings.Contains(m.View(), "THIS SESSION") {
		t.Error("runs board title missing")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showRuns {
		t.Error("esc should close the runs board")
	}
	if !strings.Contains(m.View(), "fake game") {
		t.Error("game screen not shown after closing the board")
	}
}

func TestModelQuit(t *testing.T) {
	m := readyModel(t, &fakeGame{endAfter: 5}, nil)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty while quitting")
	}
}
