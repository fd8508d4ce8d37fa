package whale

// Snapshot captures the engine state for determinism testing and logging.
type Snapshot struct {
	Phase         Phase
	Ticks         int
	Score         int
	PlayerY       float64
	PlayerVelY    float64
	Obstacles     int
	ScrollSpeed   float64
	SpawnInterval float64
	Cause         Cause
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Phase:         e.Phase(),
		Ticks:         e.run.Ticks,
		Score:         e.run.Score,
		PlayerY:       e.player.Y,
		PlayerVelY:    e.player.VelY,
		Obstacles:     len(e.obstacles),
		ScrollSpeed:   e.run.ScrollSpeed,
		SpawnInterval: e.run.SpawnInterval,
		Cause:         e.cause,
	}
}
