// Package whale implements a side-scrolling reflex game: a whale swims up
// against gravity and must avoid coral columns scrolling in from the right.
//
// Engine holds the simulation and is driven one step at a time. Game binds
// it to the platform: it maps input frames to engine commands and draws the
// engine state onto a core.Screen.
package whale

import (
	"fmt"

	"github.com/vovakirdan/tui-whale/internal/assets"
	"github.com/vovakirdan/tui-whale/internal/config"
	"github.com/vovakirdan/tui-whale/internal/core"
)

// hudHeight is the number of screen rows above the play field.
const hudHeight = 1

// Fallback characters used when no sprite is available.
const (
	PlayerChar   = '●'
	ObstacleChar = '█'
	WaveChar     = '~'
)

// Game implements the whale game on top of Engine.
type Game struct {
	engine  *Engine
	cfg     config.WhaleConfig
	runtime core.RuntimeConfig

	sprites   assets.Set
	assetsOK  bool
	assetsErr error

	best     int
	tooSmall bool
}

// New creates a game with the given config. The config should have passed
// Validate.
func New(cfg config.WhaleConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "whale"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Whale Dash"
}

// Reset builds a fresh engine sized to the screen.
// The session best score and asset state survive.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	fieldW := float64(runtime.ScreenW)
	fieldH := float64(runtime.ScreenH - hudHeight)
	g.tooSmall = fieldH < g.cfg.MinSurfaceHeight() ||
		fieldW < g.cfg.Player.X+g.cfg.Player.Width+2*g.cfg.Obstacles.Width

	g.engine = NewEngine(g.cfg, fieldW, fieldH, runtime.Seed)
	if g.assetsOK {
		g.engine.MarkAssetsReady()
	}
}

// UseAssets hands the loaded sprites to the game and opens the start gate.
func (g *Game) UseAssets(set assets.Set) {
	g.sprites = set
	g.assetsOK = true
	g.assetsErr = nil
	if g.engine != nil {
		g.engine.MarkAssetsReady()
	}
}

// AssetsFailed records a sprite loading failure. The game can never start.
func (g *Game) AssetsFailed(err error) {
	g.assetsErr = err
}

// Engine exposes the simulation for inspection.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step applies the input and advances the game by one tick.
// Before a run starts and after it ends the engine is not advanced; Start
// or Jump begins a run, Restart begins the next one.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch g.engine.Phase() {
	case PhaseNotStarted:
		if in.Has(core.ActionStart) || in.Has(core.ActionJump) {
			if g.engine.StartRun() {
				g.engine.ApplyJumpImpulse()
			}
		}
		return core.StepResult{State: g.State()}

	case PhaseOver:
		if in.Has(core.ActionRestart) {
			g.engine.RestartRun()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.engine.ApplyJumpImpulse()
	}

	out := g.engine.AdvanceOneStep()
	if out.Kind == OutcomeGameOver {
		if out.Score > g.best {
			g.best = out.Score
		}
		return core.StepResult{State: g.State(), Ended: true, Cause: out.Cause.String()}
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Best:  g.best,
		Ready: g.assetsOK && !g.tooSmall,
	}
	if g.engine == nil {
		return st
	}
	run := g.engine.Run()
	st.Score = run.Score
	st.Started = run.Started
	st.GameOver = run.Over
	st.Ticks = run.Ticks
	st.Speed = run.ScrollSpeed
	return st
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.drawHUD(dst)

	if g.engine == nil {
		return
	}
	if g.tooSmall {
		g.drawCenteredMessage(dst, "Window too small",
			fmt.Sprintf("Need at least %.0fx%.0f", g.cfg.Player.X+g.cfg.Player.Width+2*g.cfg.Obstacles.Width,
				g.cfg.MinSurfaceHeight()+hudHeight))
		return
	}

	for _, o := range g.engine.obstacles {
		r := o.Rect()
		r.Y += hudHeight
		if g.assetsOK {
			dst.DrawImage(r, g.sprites.Obstacle.Rows, g.sprites.Obstacle.Tile, obstacleColor(o.Kind))
		} else {
			dst.FillRect(r, ObstacleChar, obstacleColor(o.Kind))
		}
	}

	pr := g.engine.PlayerRect()
	pr.Y += hudHeight
	if g.assetsOK {
		dst.DrawImage(pr, g.sprites.Player.Rows, g.sprites.Player.Tile, core.ColorBrightBlue)
	} else {
		dst.FillRect(pr, PlayerChar, core.ColorBrightBlue)
	}

	switch {
	case g.assetsErr != nil:
		g.drawCenteredMessage(dst, "Cannot load sprites", g.assetsErr.Error())
	case !g.assetsOK:
		g.drawCenteredMessage(dst, "Loading sprites...", "please wait")
	case g.engine.Phase() == PhaseNotStarted:
		g.drawCenteredMessage(dst, "WHALE DASH", "Press Space, Enter or click to swim")
	case g.engine.Phase() == PhaseOver:
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  Press R to restart", g.engine.Run().Score))
	}
}

// drawHUD draws the water surface line with score, best and speed.
func (g *Game) drawHUD(dst *core.Screen) {
	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 0, WaveChar, core.ColorOcean)
	}

	st := g.State()
	dst.DrawTextColored(1, 0, fmt.Sprintf(" Score: %d ", st.Score), core.ColorBrightWhite)

	if g.engine == nil {
		return
	}
	right := fmt.Sprintf(" Best: %d  Speed: %.2f  Lvl: %d%% ", st.Best, st.Speed, int(g.engine.Level()*100))
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(core.NewRect(float64(boxX), float64(boxY), float64(boxW), float64(boxH)), ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightYellow)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// obstacleColor picks a color per obstacle kind.
func obstacleColor(k Kind) core.Color {
	switch k {
	case KindMid:
		return core.ColorYellow
	case KindTopOnly, KindBottomOnly:
		return core.ColorCyan
	default:
		return core.ColorGreen
	}
}
