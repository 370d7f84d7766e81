// Package config loads game settings from a TOML file and watches it for edits.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/plus3/blockfall/tetris"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration written as a Go duration string, e.g. "250ms".
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Config is the TOML-backed game configuration.
type Config struct {
	Width             int      `toml:"width"`
	Height            int      `toml:"height"`
	TickInterval      Duration `toml:"tick_interval"`
	AnimationDuration Duration `toml:"animation_duration"`
	Randomizer        string   `toml:"randomizer"`
	// Seed fixes the piece sequence. Zero picks a random seed.
	Seed     uint64  `toml:"seed"`
	Speedup  float64 `toml:"speedup"`
	CellSize int     `toml:"cell_size"`
	DebugUI  bool    `toml:"debug_ui"`
	Sound    bool    `toml:"sound"`
}

const (
	minBoardSide = 4
	maxBoardSide = 100

	minHold = 200 * time.Millisecond
	maxHold = 300 * time.Millisecond
)

// Default returns the stock 10x20 configuration.
func Default() Config {
	return Config{
		Width:             tetris.DefaultWidth,
		Height:            tetris.DefaultHeight,
		TickInterval:      Duration(time.Second),
		AnimationDuration: Duration(tetris.DefaultAnimationDuration),
		Randomizer:        tetris.RandomizerUniform,
		CellSize:          30,
		Sound:             true,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range field, wrapped in ErrInvalid.
func (c Config) Validate() error {
	switch {
	case c.Width < minBoardSide || c.Width > maxBoardSide:
		return fmt.Errorf("%w: width %d outside [%d, %d]", ErrInvalid, c.Width, minBoardSide, maxBoardSide)
	case c.Height < minBoardSide || c.Height > maxBoardSide:
		return fmt.Errorf("%w: height %d outside [%d, %d]", ErrInvalid, c.Height, minBoardSide, maxBoardSide)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval must be positive", ErrInvalid)
	case c.AnimationDuration.Std() < minHold || c.AnimationDuration.Std() > maxHold:
		return fmt.Errorf("%w: animation_duration %s outside [%s, %s]", ErrInvalid,
			c.AnimationDuration.Std(), minHold, maxHold)
	case c.Randomizer != tetris.RandomizerUniform && c.Randomizer != tetris.RandomizerBag:
		return fmt.Errorf("%w: unknown randomizer %q", ErrInvalid, c.Randomizer)
	case c.Speedup < 0:
		return fmt.Errorf("%w: speedup must not be negative", ErrInvalid)
	case c.CellSize < 4:
		return fmt.Errorf("%w: cell_size %d too small", ErrInvalid, c.CellSize)
	}
	return nil
}

// Encode renders the config as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
