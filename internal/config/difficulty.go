package config

import (
	"fmt"
	"math"
)

// Ramp computes the per-run difficulty progression: scroll speed grows
// every frame up to an optional cap, the spawn interval shrinks after
// every spawn down to a floor. Neither ever reverses within a run.
type Ramp struct {
	speed Speed
	spawn Spawn
}

// NewRamp creates a ramp from the speed and spawn settings of cfg.
func NewRamp(cfg WhaleConfig) *Ramp {
	return &Ramp{
		speed: cfg.Speed,
		spawn: cfg.Spawn,
	}
}

// InitialSpeed returns the scroll speed at the start of a run.
func (r *Ramp) InitialSpeed() float64 {
	return r.speed.Initial
}

// InitialInterval returns the spawn interval at the start of a run.
func (r *Ramp) InitialInterval() float64 {
	return r.spawn.InitialInterval
}

// NextSpeed returns the scroll speed for the frame after one at cur.
func (r *Ramp) NextSpeed(cur float64) float64 {
	next := cur + math.Max(r.speed.Increment, 0)
	if r.speed.Max > 0 && next > r.speed.Max {
		next = math.Max(cur, r.speed.Max)
	}
	return next
}

// NextInterval returns the spawn interval to use after a spawn at cur.
func (r *Ramp) NextInterval(cur float64) float64 {
	next := cur - math.Max(r.spawn.IntervalDecrement, 0)
	if next < r.spawn.MinInterval {
		next = math.Min(cur, r.spawn.MinInterval)
	}
	return next
}

// Level returns how far the speed ramp has progressed (0.0 to 1.0).
// Uncapped ramps always report 0.
func (r *Ramp) Level(speed float64) float64 {
	span := r.speed.Max - r.speed.Initial
	if r.speed.Max <= 0 || span <= 0 {
		return 0
	}
	return clampF((speed-r.speed.Initial)/span, 0.0, 1.0)
}

// ParsePreset converts a CLI value into a preset.
// An empty string means "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *WhaleConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Initial *= 0.8
		cfg.Spawn.InitialInterval *= 1.25
		cfg.Spawn.MinInterval *= 1.25
		cfg.Obstacles.Gap++
	case DifficultyHard:
		cfg.Speed.Initial *= 1.25
		if cfg.Speed.Max > 0 && cfg.Speed.Initial > cfg.Speed.Max {
			cfg.Speed.Initial = cfg.Speed.Max
		}
		cfg.Spawn.InitialInterval = math.Max(cfg.Spawn.InitialInterval*0.8, cfg.Spawn.MinInterval)
		if cfg.Obstacles.Gap-1 > cfg.Player.Height {
			cfg.Obstacles.Gap--
		}
	case DifficultyFixed:
		cfg.Speed.Increment = 0
		cfg.Spawn.IntervalDecrement = 0
	}
}

// ApplyClassic reduces the pattern mix to top/bottom pairs only.
func ApplyClassic(cfg *WhaleConfig) {
	cfg.Obstacles.Patterns = Patterns{Pair: 1}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
