package main

import (
	"fmt"

	"github.com/plus3/blockfall/display"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

// ParseScript turns a key script into one entry per frame. KeyNone entries
// are idle frames.
func ParseScript(s string) ([]tetris.Key, error) {
	script := make([]tetris.Key, 0, len(s))
	for i, r := range s {
		switch r {
		case ' ', '\n', '\t':
			continue
		case '.':
			script = append(script, tetris.KeyNone)
			continue
		}
		k := tetris.ParseKey(r)
		if k == tetris.KeyNone {
			return nil, fmt.Errorf("unknown key %q at %d", r, i)
		}
		script = append(script, k)
	}
	return script, nil
}

type frameWriter interface {
	Write(surface *display.Surface) (string, error)
}

// Replay runs frames of the driver, pressing one scripted key per frame,
// and writes a snapshot every n frames plus one after the last frame.
func Replay(d *driver.Driver, script []tetris.Key, frames, every int, w frameWriter) error {
	for i := range frames {
		if i < len(script) && script[i] != tetris.KeyNone {
			d.Press(script[i])
		}
		d.Frame(frameSeconds)

		if every > 0 && (i+1)%every == 0 && i+1 != frames {
			if _, err := w.Write(d.Surface()); err != nil {
				return err
			}
		}
	}
	_, err := w.Write(d.Surface())
	return err
}
