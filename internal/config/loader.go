package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file in the search directories.
const FileName = "whale.yaml"

// Load loads the whale configuration.
// Search order: customPath -> ~/.whale/configs/whale.yaml -> ./configs/whale.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (WhaleConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultWhaleConfig(), err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", FileName)); err == nil {
		return cfg, nil
	}

	return Embedded(), nil
}

// Embedded returns the embedded default configuration.
func Embedded() WhaleConfig {
	cfg := DefaultWhaleConfig()
	if err := yaml.Unmarshal(defaultWhaleYAML, &cfg); err != nil {
		return DefaultWhaleConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// loadFile reads and parses a config file on top of the defaults.
func loadFile(path string) (WhaleConfig, error) {
	cfg := Embedded()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".whale", "configs", filename)
}

// Marshal renders the config as YAML.
func Marshal(cfg WhaleConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// Validate reports every inconsistency in the config.
// The simulation assumes a valid config and does not re-check.
func (c WhaleConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.JumpImpulse < 0, "physics.jump_impulse must be negative (upward), got %v", c.Physics.JumpImpulse)

	check(c.Player.X >= 0, "player.x must not be negative, got %v", c.Player.X)
	check(c.Player.Width > 0, "player.width must be positive, got %v", c.Player.Width)
	check(c.Player.Height > 0, "player.height must be positive, got %v", c.Player.Height)

	o := c.Obstacles
	check(o.Width > 0, "obstacles.width must be positive, got %v", o.Width)
	check(o.MinHeight > 0, "obstacles.min_height must be positive, got %v", o.MinHeight)
	check(o.MaxHeight >= o.MinHeight, "obstacles.max_height (%v) must be >= min_height (%v)", o.MaxHeight, o.MinHeight)
	check(o.Gap > c.Player.Height, "obstacles.gap (%v) must be larger than player.height (%v)", o.Gap, c.Player.Height)
	check(o.Patterns.Mid == 0 || o.MidHeight > 0, "obstacles.mid_height must be positive when the mid pattern is enabled")

	p := o.Patterns
	check(p.Pair >= 0 && p.TopOnly >= 0 && p.BottomOnly >= 0 && p.Mid >= 0,
		"obstacles.patterns weights must not be negative")
	check(p.Total() > 0, "obstacles.patterns must enable at least one pattern")

	check(c.Spawn.InitialInterval >= 1, "spawn.initial_interval must be at least 1, got %v", c.Spawn.InitialInterval)
	check(c.Spawn.MinInterval >= 1, "spawn.min_interval must be at least 1, got %v", c.Spawn.MinInterval)
	check(c.Spawn.MinInterval <= c.Spawn.InitialInterval,
		"spawn.min_interval (%v) must be <= initial_interval (%v)", c.Spawn.MinInterval, c.Spawn.InitialInterval)
	check(c.Spawn.IntervalDecrement >= 0, "spawn.interval_decrement must not be negative, got %v", c.Spawn.IntervalDecrement)

	check(c.Speed.Initial > 0, "speed.initial must be positive, got %v", c.Speed.Initial)
	check(c.Speed.Increment >= 0, "speed.increment must not be negative, got %v", c.Speed.Increment)
	check(c.Speed.Max == 0 || c.Speed.Max >= c.Speed.Initial,
		"speed.max (%v) must be 0 or >= initial (%v)", c.Speed.Max, c.Speed.Initial)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
}
