package config

import (
	_ "embed"
)

//go:embed defaults/whale.yaml
var defaultWhaleYAML []byte

// DefaultWhaleConfig returns the built-in whale configuration.
// It mirrors defaults/whale.yaml and is the fallback if the embedded file
// cannot be parsed.
func DefaultWhaleConfig() WhaleConfig {
	return WhaleConfig{
		Physics: Physics{
			Gravity:     0.02,
			JumpImpulse: -0.45,
		},
		Player: Player{
			X:      8,
			Width:  7,
			Height: 2,
		},
		Obstacles: Obstacles{
			Width:     5,
			MinHeight: 2,
			MaxHeight: 10,
			Gap:       7,
			MidHeight: 2,
			Patterns: Patterns{
				Pair:       6,
				TopOnly:    2,
				BottomOnly: 2,
				Mid:        1,
			},
		},
		Spawn: Spawn{
			InitialInterval:   110,
			MinInterval:       55,
			IntervalDecrement: 0.5,
		},
		Speed: Speed{
			Initial:   0.4,
			Increment: 0.0002,
			Max:       1.0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultWhaleYAML
}
