package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/hoshinonyaruko/gridsnake/structs"
)

// ErrInvalidConfiguration is returned when a session cannot be built from a Config.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config is fixed for the lifetime of one game session.
type Config struct {
	Width        int
	Height       int
	TickInterval time.Duration
	InitialHead  structs.Cell
	// Seed feeds the default random source; zero means time based.
	Seed uint64
}

// DefaultConfig matches the classic 17x15 board.
func DefaultConfig() Config {
	return Config{
		Width:        17,
		Height:       15,
		TickInterval: 500 * time.Millisecond,
		InitialHead:  structs.Cell{X: 3, Y: 3},
	}
}

// Validate reports every problem wrapped in ErrInvalidConfiguration.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 {
		errs = append(errs, fmt.Errorf("width %d must be positive", c.Width))
	}
	if c.Height <= 0 {
		errs = append(errs, fmt.Errorf("height %d must be positive", c.Height))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval %s must be positive", c.TickInterval))
	}
	h := c.InitialHead
	if h.X < 0 || h.X >= c.Width || h.Y < 0 || h.Y >= c.Height {
		errs = append(errs, fmt.Errorf("initial head %s outside %dx%d grid", h, c.Width, c.Height))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}
