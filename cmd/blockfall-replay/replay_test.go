package main

import (
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/display"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

type repeatKind tetris.Kind

func (k repeatKind) Next() tetris.Kind { return tetris.Kind(k) }

type countingWriter struct {
	writes   int
	occupied []int
	err      error
}

func (w *countingWriter) Write(surface *display.Surface) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	w.writes++
	n := 0
	for _, sprite := range surface.All() {
		if !tetris.IsClear(sprite.Fill) {
			n++
		}
	}
	w.occupied = append(w.occupied, n)
	return "", nil
}

func TestParseScript(t *testing.T) {
	keys, err := ParseScript("ll.s e\nr")
	require.NoError(t, err)
	assert.Equal(t, []tetris.Key{
		tetris.KeyLeft, tetris.KeyLeft, tetris.KeyNone, tetris.KeySpace, tetris.KeyEscape, tetris.KeyRight,
	}, keys)

	_, err = ParseScript("lx")
	assert.ErrorContains(t, err, `'x'`)
}

func newReplayDriver() *driver.Driver {
	return driver.New(driver.Options{
		TickInterval: time.Second,
		Generator:    repeatKind(tetris.KindO),
		Logger:       log.New(io.Discard, "", 0),
	})
}

func TestReplayWritesEveryN(t *testing.T) {
	d := newReplayDriver()
	w := &countingWriter{}

	require.NoError(t, Replay(d, []tetris.Key{tetris.KeyLeft, tetris.KeyNone, tetris.KeySpace}, 10, 4, w))

	assert.Equal(t, 3, w.writes, "frames 4, 8 and the last")
	assert.Equal(t, int64(10), d.Counters().Frames)
	assert.Equal(t, 4, d.Game().Board().Occupied())
	assert.Equal(t, 8, w.occupied[2], "settled piece plus the new one")
}

func TestReplayStopsOnWriteError(t *testing.T) {
	boom := errors.New("disk full")

	err := Replay(newReplayDriver(), nil, 5, 1, &countingWriter{err: boom})

	assert.ErrorIs(t, err, boom)
}
