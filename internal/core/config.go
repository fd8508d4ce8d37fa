package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	Best     int     // Best score of this session
	Ready    bool    // Whether assets are loaded and a run may start
	Started  bool    // Whether the current run has started
	GameOver bool    // Whether the current run has ended
	Ticks    int     // Simulation steps taken in the current run
	Speed    float64 // Current scroll speed
}

// Running reports whether the simulation should be ticking.
func (s GameState) Running() bool {
	return s.Started && !s.GameOver
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Ended is set only on the tick that ended the run.
	Ended bool
	// Cause names what ended the run ("floor" or "collision").
	Cause string
}
