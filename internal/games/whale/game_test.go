package whale

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-whale/internal/assets"
	"github.com/vovakirdan/tui-whale/internal/config"
	"github.com/vovakirdan/tui-whale/internal/core"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

// readyGame returns a reset game with the embedded sprites loaded.
func readyGame(t *testing.T) *Game {
	t.Helper()
	set, err := assets.Load(assets.Embedded())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	g := New(config.DefaultWhaleConfig())
	g.Reset(testRuntime())
	g.UseAssets(set)
	return g
}

// playUntilOver steps the game without input until the run ends.
func playUntilOver(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	for i := 0; i < 10000; i++ {
		res := g.Step(core.NewInputFrame())
		if res.Ended {
			return res
		}
	}
	t.Fatal("run never ended")
	return core.StepResult{}
}

func TestGameIdentity(t *testing.T) {
	g := New(config.DefaultWhaleConfig())
	if g.ID() != "whale" {
		t.Errorf("ID() = %q, expected whale", g.ID())
	}
	if g.Title() != "Whale Dash" {
		t.Errorf("Title() = %q, expected Whale Dash", g.Title())
	}
}

func TestGameWaitsForAssets(t *testing.T) {
	g := New(config.DefaultWhaleConfig())
	g.Reset(testRuntime())

	res := g.Step(core.NewInputFrame(core.ActionStart))
	if res.State.Started || res.State.Ready {
		t.Errorf("State = %+v, expected not ready and not started", res.State)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Loading sprites") {
		t.Error("expected loading message before assets arrive")
	}
}

func TestGameAssetFailure(t *testing.T) {
	g := New(config.DefaultWhaleConfig())
	g.Reset(testRuntime())
	g.AssetsFailed(errors.New("whale.txt: missing"))

	g.Step(core.NewInputFrame(core.ActionJump))
	if g.State().Started {
		t.Error("game started without sprites")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Cannot load sprites") || !strings.Contains(out, "whale.txt: missing") {
		t.Errorf("expected asset error on screen, got:\n%s", out)
	}
}

func TestGameStartAppliesJump(t *testing.T) {
	g := readyGame(t)

	if !g.State().Ready {
		t.Fatal("State().Ready = false after UseAssets")
	}

	res := g.Step(core.NewInputFrame(core.ActionJump))
	if !res.State.Started || res.State.GameOver {
		t.Fatalf("State = %+v, expected running", res.State)
	}
	if res.State.Ticks != 0 {
		t.Errorf("starting step advanced the simulation: Ticks = %d", res.State.Ticks)
	}
	if v := g.Engine().Player().VelY; v != config.DefaultWhaleConfig().Physics.JumpImpulse {
		t.Errorf("VelY = %v, expected the jump impulse", v)
	}

	g.Step(core.NewInputFrame())
	if g.State().Ticks != 1 {
		t.Errorf("Ticks = %d, expected 1", g.State().Ticks)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := readyGame(t)
	g.Step(core.NewInputFrame(core.ActionStart))

	res := playUntilOver(t, g)
	if res.Cause != "floor" {
		t.Errorf("Cause = %q, expected floor", res.Cause)
	}
	if !res.State.GameOver {
		t.Error("State.GameOver = false on the ending step")
	}

	// Further steps neither advance nor report a second ending.
	ticks := g.State().Ticks
	res = g.Step(core.NewInputFrame(core.ActionJump))
	if res.Ended || g.State().Ticks != ticks {
		t.Error("finished run kept advancing")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("expected game over box")
	}

	res = g.Step(core.NewInputFrame(core.ActionRestart))
	if !res.State.Started || res.State.GameOver || res.State.Score != 0 || res.State.Ticks != 0 {
		t.Errorf("State after restart = %+v", res.State)
	}
}

func TestGameBestSurvivesReset(t *testing.T) {
	g := readyGame(t)
	g.best = 7

	g.Reset(testRuntime())
	if g.State().Best != 7 {
		t.Errorf("Best = %d after Reset, expected 7", g.State().Best)
	}
	if !g.Engine().AssetsReady() {
		t.Error("Reset lost asset readiness")
	}
}

func TestGameTooSmall(t *testing.T) {
	g := readyGame(t)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, TickRate: 60, Seed: 1})

	res := g.Step(core.NewInputFrame(core.ActionStart))
	if res.State.Started || res.State.Ready {
		t.Errorf("State = %+v, expected a stalled game", res.State)
	}

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected size warning, got:\n%s", screen.String())
	}
}

func TestGameRender(t *testing.T) {
	g := readyGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "WHALE DASH") {
		t.Error("expected start instructions before the first jump")
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q, expected the score", screen.Row(0))
	}
	if screen.GetCell(0, 0).Rune != WaveChar || screen.GetCell(0, 0).Color != core.ColorOcean {
		t.Error("HUD should start with the water line")
	}

	g.Step(core.NewInputFrame(core.ActionStart))
	g.Render(screen)
	out = screen.String()
	if strings.Contains(out, "WHALE DASH") {
		t.Error("start instructions still shown while running")
	}
	if !strings.Contains(out, "▗████▀▘") {
		t.Errorf("expected the whale sprite on screen, got:\n%s", out)
	}
}

func TestGameRenderFallback(t *testing.T) {
	g := New(config.DefaultWhaleConfig())
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	r := g.Engine().PlayerRect()
	x, y, _, _ := r.Cells()
	if got := screen.Get(x, y+hudHeight); got != PlayerChar {
		t.Errorf("player cell = %q, expected %q", got, PlayerChar)
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%14 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	play := func() core.GameState {
		g := readyGame(t)
		var st core.GameState
		for _, in := range inputs {
			res := g.Step(in)
			st = res.State
			if res.Ended {
				break
			}
		}
		return st
	}

	s1, s2 := play(), play()
	if s1 != s2 {
		t.Errorf("Determinism failed: %+v vs %+v", s1, s2)
	}
}
