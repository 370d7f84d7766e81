package driver

import (
	"time"

	"github.com/plus3/blockfall/display"
	"github.com/plus3/blockfall/tetris"
)

// Session is the game being driven and the surface it paints.
type Session struct {
	Game    *tetris.Game
	Buffer  *display.Buffer
	Surface *display.Surface
}

// Clock paces gravity ticks.
type Clock struct {
	Interval    time.Duration
	Accumulated time.Duration
	Running     bool
	// Speedup shortens the interval by this fraction per level above the first.
	Speedup float64
}

// Effective is the tick interval at the given level.
func (c *Clock) Effective(level int) time.Duration {
	if c.Speedup <= 0 || level <= 1 {
		return c.Interval
	}
	return time.Duration(float64(c.Interval) / (1 + c.Speedup*float64(level-1)))
}

// Start arms the clock so the next frame ticks immediately.
func (c *Clock) Start() {
	c.Running = true
	c.Accumulated = c.Interval + 1
}

// KeyQueue holds keys pressed since the last frame.
type KeyQueue struct {
	Keys []tetris.Key
}

// EventQueue holds game events raised during the current frame.
type EventQueue struct {
	Events []tetris.Event
}

// FrameStats are running counters of the driver.
type FrameStats struct {
	Frames    int64
	Ticks     int64
	Keys      int64
	Redraws   int64
	GamesOver int64
	Restarts  int64
	Events    int64
}

// EventHandler is a component attached to entities that want game events.
type EventHandler struct {
	Name   string
	Handle func(tetris.Event)
}
