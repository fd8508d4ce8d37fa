// Package config provides YAML-based game configuration loading,
// validation and difficulty ramp helpers.
package config

// WhaleConfig contains all tunables of the whale game.
// Distances are in screen cells, times in simulation frames.
type WhaleConfig struct {
	Physics   Physics   `yaml:"physics"`
	Player    Player    `yaml:"player"`
	Obstacles Obstacles `yaml:"obstacles"`
	Spawn     Spawn     `yaml:"spawn"`
	Speed     Speed     `yaml:"speed"`
}

// Physics defines the vertical motion of the whale.
type Physics struct {
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every frame
	JumpImpulse float64 `yaml:"jump_impulse"` // Velocity set by a jump (negative = up)
}

// Player defines the whale's fixed hitbox.
type Player struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Obstacles defines obstacle geometry and the spawn pattern mix.
type Obstacles struct {
	Width     float64  `yaml:"width"`
	MinHeight float64  `yaml:"min_height"`
	MaxHeight float64  `yaml:"max_height"`
	Gap       float64  `yaml:"gap"`        // Passable space between a top/bottom pair
	MidHeight float64  `yaml:"mid_height"` // Thickness of the mid-screen bar
	Patterns  Patterns `yaml:"patterns"`
}

// Patterns holds the relative weights of each spawn pattern.
// A zero weight disables the pattern.
type Patterns struct {
	Pair       int `yaml:"pair"`
	TopOnly    int `yaml:"top_only"`
	BottomOnly int `yaml:"bottom_only"`
	Mid        int `yaml:"mid"`
}

// Total returns the sum of all weights.
func (p Patterns) Total() int {
	return p.Pair + p.TopOnly + p.BottomOnly + p.Mid
}

// Spawn defines the obstacle spawn timer.
type Spawn struct {
	InitialInterval   float64 `yaml:"initial_interval"`
	MinInterval       float64 `yaml:"min_interval"`
	IntervalDecrement float64 `yaml:"interval_decrement"` // Applied after each spawn
}

// Speed defines the horizontal scroll speed ramp.
type Speed struct {
	Initial   float64 `yaml:"initial"`
	Increment float64 `yaml:"increment"` // Applied every frame
	Max       float64 `yaml:"max"`       // 0 = uncapped
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// MinSurfaceHeight returns the smallest play field height on which
// every enabled pattern can be placed.
func (c WhaleConfig) MinSurfaceHeight() float64 {
	h := c.Player.Height + 1
	if c.Obstacles.Patterns.Pair > 0 {
		h = max(h, c.Obstacles.Gap+2*c.Obstacles.MinHeight)
	}
	if c.Obstacles.Patterns.TopOnly > 0 || c.Obstacles.Patterns.BottomOnly > 0 {
		h = max(h, c.Obstacles.MinHeight+c.Player.Height+1)
	}
	if c.Obstacles.Patterns.Mid > 0 {
		h = max(h, 2*c.Obstacles.MinHeight+c.Obstacles.MidHeight)
	}
	return h
}
