package whale

import (
	"github.com/vovakirdan/tui-whale/internal/core"
)

// Kind tags an obstacle rectangle with the pattern it was spawned by.
type Kind int

const (
	KindTop        Kind = iota // Upper half of a gap pair
	KindBottom                 // Lower half of a gap pair (the scoring one)
	KindTopOnly                // Column hanging from the surface
	KindBottomOnly             // Column rising from the seabed
	KindMid                    // Narrow bar floating mid-screen
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTop:
		return "top"
	case KindBottom:
		return "bottom"
	case KindTopOnly:
		return "top-only"
	case KindBottomOnly:
		return "bottom-only"
	case KindMid:
		return "mid"
	default:
		return "unknown"
	}
}

// Obstacle is a single scrolling rectangle.
type Obstacle struct {
	X, Y float64
	W, H float64
	Kind Kind
	// CountsForScore marks the one rectangle of a spawn event that scores.
	CountsForScore bool
	// Scored is set once the rectangle's trailing edge passes the player.
	Scored bool
}

// Rect returns the collision rectangle for this obstacle.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.W, o.H)
}

// Right returns the x-coordinate of the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.W
}

// Pattern is a spawn event shape.
type Pattern int

const (
	PatternPair Pattern = iota
	PatternTopOnly
	PatternBottomOnly
	PatternMid
)

// pickPattern chooses a pattern using the configured weights.
func (e *Engine) pickPattern() Pattern {
	p := e.cfg.Obstacles.Patterns
	total := p.Total()
	if total <= 0 {
		return PatternPair
	}

	n := e.rng.Intn(total)
	weights := [...]struct {
		pattern Pattern
		weight  int
	}{
		{PatternPair, p.Pair},
		{PatternTopOnly, p.TopOnly},
		{PatternBottomOnly, p.BottomOnly},
		{PatternMid, p.Mid},
	}
	for _, w := range weights {
		if w.weight <= 0 {
			continue
		}
		if n < w.weight {
			return w.pattern
		}
		n -= w.weight
	}
	return PatternPair
}

// spawnObstacle appends one spawn event at the right edge of the surface.
// Exactly one rectangle of the event counts for score.
func (e *Engine) spawnObstacle() {
	e.spawnPattern(e.pickPattern())
}

// spawnPattern appends the rectangles of the given pattern.
func (e *Engine) spawnPattern(p Pattern) {
	o := e.cfg.Obstacles
	x := e.width

	switch p {
	case PatternPair:
		topH := e.uniform(o.MinHeight, min(o.MaxHeight, e.height-o.Gap-o.MinHeight))
		bottomY := topH + o.Gap
		e.obstacles = append(e.obstacles,
			Obstacle{X: x, Y: 0, W: o.Width, H: topH, Kind: KindTop},
			Obstacle{X: x, Y: bottomY, W: o.Width, H: e.height - bottomY, Kind: KindBottom, CountsForScore: true},
		)

	case PatternTopOnly:
		h := e.uniform(o.MinHeight, min(o.MaxHeight, e.height-o.Gap))
		e.obstacles = append(e.obstacles,
			Obstacle{X: x, Y: 0, W: o.Width, H: h, Kind: KindTopOnly, CountsForScore: true})

	case PatternBottomOnly:
		h := e.uniform(o.MinHeight, min(o.MaxHeight, e.height-o.Gap))
		e.obstacles = append(e.obstacles,
			Obstacle{X: x, Y: e.height - h, W: o.Width, H: h, Kind: KindBottomOnly, CountsForScore: true})

	case PatternMid:
		y := e.uniform(o.MinHeight, e.height-o.MinHeight-o.MidHeight)
		e.obstacles = append(e.obstacles,
			Obstacle{X: x, Y: y, W: o.Width, H: o.MidHeight, Kind: KindMid, CountsForScore: true})
	}
}

// uniform draws from [lo, hi). A collapsed range yields lo.
func (e *Engine) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + e.rng.Float64()*(hi-lo)
}

// advanceObstacles scrolls, collides, scores and recycles obstacles.
// A collision returns immediately, leaving the rest of the list untouched.
func (e *Engine) advanceObstacles() Cause {
	playerRect := e.PlayerRect()
	playerX := e.cfg.Player.X

	for i := range e.obstacles {
		o := &e.obstacles[i]
		o.X -= e.run.ScrollSpeed

		if playerRect.Intersects(o.Rect()) {
			return CauseCollision
		}

		if !o.Scored && o.Right() < playerX {
			o.Scored = true
			if o.CountsForScore {
				e.run.Score++
			}
		}
	}

	// Remove obstacles that have moved off the left side
	valid := e.obstacles[:0]
	for _, o := range e.obstacles {
		if o.Right() >= 0 {
			valid = append(valid, o)
		}
	}
	e.obstacles = valid

	return CauseNone
}
