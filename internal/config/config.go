// Package config resolves runtime settings from defaults, an optional .env
// file, TINYVOXEL_* environment variables and command-line flags, in that
// order of increasing priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// envPrefix namespaces every environment variable read by Load.
const envPrefix = "TINYVOXEL_"

// Config holds every tunable of a session. Width/Height are the logical
// canvas size and never change once the window is open.
type Config struct {
	Width    int
	Height   int
	Scale    int // initial window size multiplier
	CellSize int
	Radius   int
	Speed    float64 // pixels per tick per held direction
	TPS      int

	// ClearCursorOutside drops the cursor when the pointer leaves the
	// window instead of keeping the last in-window position.
	ClearCursorOutside bool
	LogLevel           slog.Level
}

// Default returns the stock 320x240 world.
func Default() Config {
	return Config{
		Width:    320,
		Height:   240,
		Scale:    2,
		CellSize: 16,
		Radius:   8,
		Speed:    2,
		TPS:      60,
		LogLevel: slog.LevelInfo,
	}
}

// Validate rejects sizes and rates the world cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale %d must be positive", ErrInvalidConfig, c.Scale)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d must be positive", ErrInvalidConfig, c.CellSize)
	case c.Radius < 0:
		return fmt.Errorf("%w: radius %d must not be negative", ErrInvalidConfig, c.Radius)
	case c.Radius > max(c.Width, c.Height):
		return fmt.Errorf("%w: radius %d exceeds canvas %dx%d", ErrInvalidConfig, c.Radius, c.Width, c.Height)
	case math.IsNaN(c.Speed) || c.Speed <= 0 || c.Speed > float64(max(c.Width, c.Height)):
		return fmt.Errorf("%w: speed %v must be in (0, %d]", ErrInvalidConfig, c.Speed, max(c.Width, c.Height))
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalidConfig, c.TPS)
	}
	return nil
}

// Load builds a Config for the named program. envFile may be empty; a
// missing .env file is not an error.
func Load(name string, args []string, envFile string) (Config, error) {
	cfg, err := FromEnv(envFile)
	if err != nil {
		return cfg, err
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// FromEnv returns the defaults overlaid with envFile and the environment.
// Callers that own a FlagSet register flags on the result themselves and
// must call Validate after parsing.
func FromEnv(envFile string) (Config, error) {
	cfg := Default()
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// RegisterFlags binds the config fields to fs, using the current values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "logical canvas width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "logical canvas height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "initial window scale factor")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "grid cell size in pixels")
	fs.IntVar(&c.Radius, "radius", c.Radius, "player radius in pixels")
	fs.Float64Var(&c.Speed, "speed", c.Speed, "player displacement per tick")
	fs.IntVar(&c.TPS, "tps", c.TPS, "input ticks per second")
	fs.BoolVar(&c.ClearCursorOutside, "clear-cursor-outside", c.ClearCursorOutside,
		"forget the cursor when the pointer leaves the window")
	fs.TextVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"WIDTH":  &c.Width,
		"HEIGHT": &c.Height,
		"SCALE":  &c.Scale,
		"CELL":   &c.CellSize,
		"RADIUS": &c.Radius,
		"TPS":    &c.TPS,
	}
	for key, dst := range ints {
		v, ok := lookup(envPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, envPrefix, key, v, err)
		}
		*dst = n
	}
	if v, ok := lookup(envPrefix + "SPEED"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: %sSPEED=%q: %v", ErrInvalidConfig, envPrefix, v, err)
		}
		c.Speed = f
	}
	if v, ok := lookup(envPrefix + "CLEAR_CURSOR_OUTSIDE"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %sCLEAR_CURSOR_OUTSIDE=%q: %v", ErrInvalidConfig, envPrefix, v, err)
		}
		c.ClearCursorOutside = b
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		if err := c.LogLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return fmt.Errorf("%w: %sLOG_LEVEL=%q: %v", ErrInvalidConfig, envPrefix, v, err)
		}
	}
	return nil
}
