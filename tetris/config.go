package tetris

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

// Randomizer names accepted by Config.Randomizer.
const (
	RandomUniform = "uniform"
	RandomBag     = "bag"
)

// Difficulty selects the shape set and the starting level.
type Difficulty uint8

const (
	// Beginner plays with I, J, L and O from level 1.
	Beginner Difficulty = iota
	// Advanced plays with all seven shapes from level 2.
	Advanced
)

func (d Difficulty) String() string {
	if d == Advanced {
		return "Advanced"
	}
	return "Beginner"
}

func (d Difficulty) baseLevel() uint {
	if d == Advanced {
		return 2
	}
	return 1
}

// Config holds the static tunables of a session. Speeds and durations
// counted in ticks are compared against per-tick counters.
type Config struct {
	Columns int
	Rows    int

	// StartFallSpeed is the ticks per row at level 1.
	StartFallSpeed int
	// MinFallSpeed is the fastest fall rate, in ticks per row.
	MinFallSpeed int
	// MoveSpeed is the auto-repeat interval of a held horizontal move.
	MoveSpeed int
	// SoftDropSpeed is the interval of the extra downward moves while soft drop is held.
	SoftDropSpeed int
	// ClearDuration is how many ticks full rows stay on the stack before being removed.
	ClearDuration int
	// HoldTicks is how long the runner keeps an action held after its last
	// key event. It must outlast the terminal's key repeat interval.
	HoldTicks int

	TickDuration time.Duration
	// DifficultyInterval is the play time after which another bottom row becomes filler.
	DifficultyInterval time.Duration

	BeginnerShapes int
	AdvancedShapes int
	Randomizer     string
}

// DefaultConfig returns a 10x20 stack running at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		Columns:            10,
		Rows:               20,
		StartFallSpeed:     32,
		MinFallSpeed:       4,
		MoveSpeed:          4,
		SoftDropSpeed:      4,
		ClearDuration:      8,
		HoldTicks:          3,
		TickDuration:       16667 * time.Microsecond,
		DifficultyInterval: 5 * time.Minute,
		BeginnerShapes:     4,
		AdvancedShapes:     ShapeCount,
		Randomizer:         RandomUniform,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Columns < 4:
		return fmt.Errorf("%w: columns must be at least 4, got %d", ErrInvalidConfig, c.Columns)
	case c.Rows < 2:
		return fmt.Errorf("%w: rows must be at least 2, got %d", ErrInvalidConfig, c.Rows)
	case c.MinFallSpeed < 1:
		return fmt.Errorf("%w: min fall speed must be positive, got %d", ErrInvalidConfig, c.MinFallSpeed)
	case c.StartFallSpeed < c.MinFallSpeed:
		return fmt.Errorf("%w: start fall speed %d is below min fall speed %d", ErrInvalidConfig, c.StartFallSpeed, c.MinFallSpeed)
	case c.MoveSpeed < 1:
		return fmt.Errorf("%w: move speed must be positive, got %d", ErrInvalidConfig, c.MoveSpeed)
	case c.SoftDropSpeed < 1:
		return fmt.Errorf("%w: soft drop speed must be positive, got %d", ErrInvalidConfig, c.SoftDropSpeed)
	case c.HoldTicks < 1:
		return fmt.Errorf("%w: hold ticks must be positive, got %d", ErrInvalidConfig, c.HoldTicks)
	case c.ClearDuration < 0:
		return fmt.Errorf("%w: clear duration can't be negative, got %d", ErrInvalidConfig, c.ClearDuration)
	case c.TickDuration <= 0:
		return fmt.Errorf("%w: tick duration must be positive, got %v", ErrInvalidConfig, c.TickDuration)
	case c.DifficultyInterval <= 0:
		return fmt.Errorf("%w: difficulty interval must be positive, got %v", ErrInvalidConfig, c.DifficultyInterval)
	case c.BeginnerShapes < 1 || c.BeginnerShapes > ShapeCount:
		return fmt.Errorf("%w: beginner shapes must be 1..%d, got %d", ErrInvalidConfig, ShapeCount, c.BeginnerShapes)
	case c.AdvancedShapes < 1 || c.AdvancedShapes > ShapeCount:
		return fmt.Errorf("%w: advanced shapes must be 1..%d, got %d", ErrInvalidConfig, ShapeCount, c.AdvancedShapes)
	case c.Randomizer != RandomUniform && c.Randomizer != RandomBag:
		return fmt.Errorf("%w: unknown randomizer %q", ErrInvalidConfig, c.Randomizer)
	}
	return nil
}

func (c Config) shapes(d Difficulty) int {
	if d == Advanced {
		return c.AdvancedShapes
	}
	return c.BeginnerShapes
}
