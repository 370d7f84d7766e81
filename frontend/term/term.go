// Package term plays the game in a terminal. Each board cell is two
// characters wide so cells look roughly square.
package term

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

const frameInterval = 16 * time.Millisecond

type Options struct {
	// Sounds plays chimes on game events; nil runs silent.
	Sounds *Sounds
	// Configs delivers reloaded configs; nil disables live reload.
	Configs <-chan config.Config
	Logger  *log.Logger
}

// Terminal draws a driver's surface onto a tcell screen and feeds it keys.
type Terminal struct {
	screen  tcell.Screen
	driver  *driver.Driver
	configs <-chan config.Config
	logger  *log.Logger
}

// New wires a terminal to an initialized screen.
func New(screen tcell.Screen, d *driver.Driver, opts Options) *Terminal {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Sounds != nil {
		d.OnEvent("sound", opts.Sounds.Handle)
	}
	return &Terminal{
		screen:  screen,
		driver:  d,
		configs: opts.Configs,
		logger:  opts.Logger,
	}
}

// Run drives frames until ctx is done or the player quits.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !t.Handle(ev) {
				t.logger.Printf("quit: score=%d", t.driver.Game().Stats().Score)
				return nil
			}

		case cfg, ok := <-t.configs:
			if !ok {
				t.configs = nil
				continue
			}
			t.driver.Apply(cfg)

		case now := <-ticker.C:
			t.driver.Frame(now.Sub(last).Seconds())
			last = now
			t.Draw()
		}
	}
}

// Handle applies one terminal event. It returns false when the player
// asked to quit.
func (t *Terminal) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if k := mapKey(ev); k != tetris.KeyNone {
			t.driver.Press(k)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func mapKey(ev *tcell.EventKey) tetris.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return tetris.KeyUp
	case tcell.KeyDown:
		return tetris.KeyDown
	case tcell.KeyLeft:
		return tetris.KeyLeft
	case tcell.KeyRight:
		return tetris.KeyRight
	case tcell.KeyEscape:
		return tetris.KeyEscape
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return tetris.KeySpace
		}
	}
	return tetris.KeyNone
}
