package whale

import (
	"math/rand"

	"github.com/vovakirdan/tui-whale/internal/config"
	"github.com/vovakirdan/tui-whale/internal/core"
)

// Phase is the run state machine: NotStarted -> Running -> Over -> Running.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// OutcomeKind is the result vocabulary of a single step.
type OutcomeKind int

const (
	OutcomeContinue OutcomeKind = iota
	OutcomeGameOver
)

// Cause records what ended a run.
type Cause int

const (
	CauseNone Cause = iota
	CauseFloor
	CauseCollision
)

// String returns a human-readable name for the cause.
func (c Cause) String() string {
	switch c {
	case CauseFloor:
		return "floor"
	case CauseCollision:
		return "collision"
	default:
		return "none"
	}
}

// StepOutcome is returned by AdvanceOneStep.
type StepOutcome struct {
	Kind  OutcomeKind
	Score int
	Cause Cause
}

// PlayerBody is the whale's vertical state. Its horizontal position and
// size are fixed by the config.
type PlayerBody struct {
	Y    float64 // Top of the hitbox
	VelY float64 // Positive is down
}

// RunState holds the score, spawn timer and difficulty ramp of one run.
type RunState struct {
	Score         int
	Ticks         int     // Steps taken in this run
	Frames        int     // Frames since the last spawn
	SpawnInterval float64 // Frames between spawns; only ever decreases
	ScrollSpeed   float64 // Cells per frame; only ever increases
	Over          bool
	Started       bool
}

// Engine owns all per-frame state of the game and advances it one step at
// a time. It knows nothing about scheduling, input devices or rendering.
// It is not safe for concurrent use.
type Engine struct {
	cfg    config.WhaleConfig
	ramp   *config.Ramp
	width  float64
	height float64
	rng    *rand.Rand

	player    PlayerBody
	obstacles []Obstacle
	run       RunState
	cause     Cause

	assetsReady bool
}

// NewEngine creates an engine for a surface of the given size.
// The config is assumed to be valid.
func NewEngine(cfg config.WhaleConfig, width, height float64, seed int64) *Engine {
	e := &Engine{
		cfg:       cfg,
		ramp:      config.NewRamp(cfg),
		width:     width,
		height:    height,
		rng:       rand.New(rand.NewSource(seed)),
		obstacles: make([]Obstacle, 0, 16),
	}
	e.InitializeRun()
	return e
}

// InitializeRun resets the player, obstacles and run state.
// The run is left NotStarted.
func (e *Engine) InitializeRun() {
	e.player = PlayerBody{
		Y:    e.height/2 - e.cfg.Player.Height/2,
		VelY: 0,
	}
	e.obstacles = e.obstacles[:0]
	e.run = RunState{
		SpawnInterval: e.ramp.InitialInterval(),
		ScrollSpeed:   e.ramp.InitialSpeed(),
	}
	e.cause = CauseNone
}

// MarkAssetsReady opens the gate that keeps the engine from starting
// before its sprites are available.
func (e *Engine) MarkAssetsReady() {
	e.assetsReady = true
}

// AssetsReady reports whether the engine may be started.
func (e *Engine) AssetsReady() bool {
	return e.assetsReady
}

// StartRun moves a fresh run from NotStarted to Running.
// Returns false without effect if assets are not ready or the run has
// already started.
func (e *Engine) StartRun() bool {
	if !e.assetsReady || e.run.Started {
		return false
	}
	e.run.Started = true
	return true
}

// RestartRun reinitializes the run and resumes it immediately.
// Any pending scheduled step must be cancelled by the caller first.
func (e *Engine) RestartRun() bool {
	if !e.assetsReady {
		return false
	}
	e.InitializeRun()
	e.run.Started = true
	return true
}

// ApplyJumpImpulse sets the vertical velocity to the jump impulse.
// Repeated jumps do not stack. No-op unless the run is Running.
func (e *Engine) ApplyJumpImpulse() {
	if e.Phase() != PhaseRunning {
		return
	}
	e.player.VelY = e.cfg.Physics.JumpImpulse
}

// AdvanceOneStep advances the simulation by one frame.
// No-op before the run starts (Continue) and after it ends (GameOver).
func (e *Engine) AdvanceOneStep() StepOutcome {
	switch e.Phase() {
	case PhaseNotStarted:
		return e.outcome(OutcomeContinue)
	case PhaseOver:
		return e.outcome(OutcomeGameOver)
	}

	e.run.Ticks++

	// Integrate physics
	e.player.VelY += e.cfg.Physics.Gravity
	e.player.Y += e.player.VelY

	// The surface is a soft ceiling
	if e.player.Y < 0 {
		e.player.Y = 0
		e.player.VelY = 0
	}

	// The seabed is fatal
	if e.player.Y+e.cfg.Player.Height > e.height {
		return e.end(CauseFloor)
	}

	e.run.Frames++
	if float64(e.run.Frames) >= e.run.SpawnInterval {
		e.spawnObstacle()
		e.run.Frames = 0
		e.run.SpawnInterval = e.ramp.NextInterval(e.run.SpawnInterval)
	}

	if cause := e.advanceObstacles(); cause != CauseNone {
		return e.end(cause)
	}

	e.run.ScrollSpeed = e.ramp.NextSpeed(e.run.ScrollSpeed)

	return e.outcome(OutcomeContinue)
}

// end marks the run as over.
func (e *Engine) end(cause Cause) StepOutcome {
	e.run.Over = true
	e.cause = cause
	return e.outcome(OutcomeGameOver)
}

func (e *Engine) outcome(kind OutcomeKind) StepOutcome {
	return StepOutcome{Kind: kind, Score: e.run.Score, Cause: e.cause}
}

// Phase returns the current state machine phase.
func (e *Engine) Phase() Phase {
	switch {
	case e.run.Over:
		return PhaseOver
	case e.run.Started:
		return PhaseRunning
	default:
		return PhaseNotStarted
	}
}

// Player returns the whale's vertical state.
func (e *Engine) Player() PlayerBody {
	return e.player
}

// PlayerRect returns the whale's collision rectangle.
func (e *Engine) PlayerRect() core.Rect {
	return core.NewRect(e.cfg.Player.X, e.player.Y, e.cfg.Player.Width, e.cfg.Player.Height)
}

// Obstacles returns a copy of the active obstacles in spawn order.
func (e *Engine) Obstacles() []Obstacle {
	out := make([]Obstacle, len(e.obstacles))
	copy(out, e.obstacles)
	return out
}

// Run returns the current run state.
func (e *Engine) Run() RunState {
	return e.run
}

// Cause returns what ended the run, or CauseNone.
func (e *Engine) Cause() Cause {
	return e.cause
}

// Size returns the surface dimensions.
func (e *Engine) Size() (width, height float64) {
	return e.width, e.height
}

// Level returns the difficulty ramp progress (0.0 to 1.0).
func (e *Engine) Level() float64 {
	return e.ramp.Level(e.run.ScrollSpeed)
}
