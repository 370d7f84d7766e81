package tetris

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixedGenerator replays kinds in order, wrapping around.
type fixedGenerator struct {
	kinds []Kind
	next  int
}

func (g *fixedGenerator) Next() Kind {
	k := g.kinds[g.next%len(g.kinds)]
	g.next++
	return k
}

// recordingDisplay keeps the last value written to every cell.
type recordingDisplay struct {
	width, height int
	colors        []color.RGBA
	borders       []color.RGBA
	animations    []Animation
	redraws       int
}

func newRecordingDisplay(width, height int) *recordingDisplay {
	return &recordingDisplay{
		width:      width,
		height:     height,
		colors:     make([]color.RGBA, width*height),
		borders:    make([]color.RGBA, width*height),
		animations: make([]Animation, width*height),
	}
}

func (d *recordingDisplay) idx(p Point) int { return p.Y*d.width + p.X }

func (d *recordingDisplay) ok(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < d.width && p.Y < d.height
}

func (d *recordingDisplay) SetColor(p Point, c color.RGBA) {
	if d.ok(p) {
		d.colors[d.idx(p)] = c
	}
}

func (d *recordingDisplay) SetBorderColor(p Point, c color.RGBA) {
	if d.ok(p) {
		d.borders[d.idx(p)] = c
	}
}

func (d *recordingDisplay) SetAnimation(p Point, a Animation) {
	if d.ok(p) {
		d.animations[d.idx(p)] = a
	}
}

func (d *recordingDisplay) Color(p Point) color.RGBA { return d.colors[d.idx(p)] }
func (d *recordingDisplay) IsAnimating(p Point) bool {
	return d.animations[d.idx(p)] == AnimationPlay || d.animations[d.idx(p)] == AnimationPlayLoop
}
func (d *recordingDisplay) Redraw() { d.redraws++ }
func (d *recordingDisplay) Clear() {
	for i := range d.colors {
		d.colors[i] = Clear
		d.borders[i] = DefaultBorderColor
		d.animations[i] = AnimationNone
	}
}

type testGame struct {
	*Game
	display *recordingDisplay
	events  []Event
}

func newTestGame(t *testing.T, kinds ...Kind) *testGame {
	t.Helper()
	require.NotEmpty(t, kinds)

	tg := &testGame{display: newRecordingDisplay(DefaultWidth, DefaultHeight)}
	tg.Game = NewGame(Options{
		AnimationDuration: 200 * time.Millisecond,
		Generator:         &fixedGenerator{kinds: kinds},
		Display:           tg.display,
		Listener: func(e Event) {
			tg.events = append(tg.events, e)
		},
	})
	return tg
}

func (tg *testGame) eventKinds() []EventKind {
	kinds := make([]EventKind, len(tg.events))
	for i, e := range tg.events {
		kinds[i] = e.Kind
	}
	return kinds
}

var testColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// boardFromRows builds a board from strings listed top row first.
func boardFromRows(rows ...string) *Board {
	b := NewBoard(len(rows[0]), len(rows))
	for i, row := range rows {
		y := len(rows) - 1 - i
		for x, ch := range row {
			if ch == '#' {
				b.Set(Point{X: x, Y: y}, testColor)
			}
		}
	}
	return b
}

func cellSet(p *Piece) map[Point]bool {
	set := make(map[Point]bool, p.Len())
	for _, b := range p.Blocks {
		set[b.Offset] = true
	}
	return set
}
