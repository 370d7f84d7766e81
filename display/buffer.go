package display

import (
	"image/color"
	"time"

	"github.com/plus3/blockfall/tetris"
)

type cell struct {
	color     color.RGBA
	border    color.RGBA
	animation tetris.Animation
}

// Buffer stages colors and animation directives for a Surface. Nothing
// reaches the surface until Redraw.
type Buffer struct {
	surface  *Surface
	cells    []cell
	duration time.Duration
}

var _ tetris.Display = (*Buffer)(nil)

// NewBuffer creates a buffer sized to the surface. Pulses started by Redraw
// last duration per cycle.
func NewBuffer(surface *Surface, duration time.Duration) *Buffer {
	b := &Buffer{
		surface:  surface,
		cells:    make([]cell, surface.Width()*surface.Height()),
		duration: duration,
	}
	b.reset()
	return b
}

func (b *Buffer) Surface() *Surface { return b.surface }

// SetPulseDuration changes the cycle length of pulses started from now on.
func (b *Buffer) SetPulseDuration(d time.Duration) {
	if d > 0 {
		b.duration = d
	}
}

func (b *Buffer) at(p tetris.Point) *cell {
	i, ok := b.surface.index(p)
	if !ok {
		return nil
	}
	return &b.cells[i]
}

func (b *Buffer) SetColor(p tetris.Point, c color.RGBA) {
	if cl := b.at(p); cl != nil {
		cl.color = c
	}
}

func (b *Buffer) SetBorderColor(p tetris.Point, c color.RGBA) {
	if cl := b.at(p); cl != nil {
		cl.border = c
	}
}

func (b *Buffer) SetAnimation(p tetris.Point, a tetris.Animation) {
	if cl := b.at(p); cl != nil {
		cl.animation = a
	}
}

// Color returns the fill currently shown at p, which lags the staged color
// until the next Redraw.
func (b *Buffer) Color(p tetris.Point) color.RGBA {
	if s := b.surface.At(p); s != nil {
		return s.Fill
	}
	return tetris.Clear
}

func (b *Buffer) IsAnimating(p tetris.Point) bool {
	return b.surface.IsAnimating(p)
}

// Pending returns the directive staged at p.
func (b *Buffer) Pending(p tetris.Point) tetris.Animation {
	if cl := b.at(p); cl != nil {
		return cl.animation
	}
	return tetris.AnimationNone
}

// Redraw pushes staged state into the surface and consumes every directive.
func (b *Buffer) Redraw() {
	for i := range b.cells {
		cl := &b.cells[i]
		p := tetris.Point{X: i % b.surface.width, Y: i / b.surface.width}

		sprite := &b.surface.sprites[i]
		sprite.Fill = cl.color
		sprite.Border = cl.border

		switch cl.animation {
		case tetris.AnimationPlay:
			b.surface.Play(p, b.duration, false)
		case tetris.AnimationPlayLoop:
			b.surface.Play(p, b.duration, true)
		case tetris.AnimationStop:
			b.surface.Stop(p)
		}
		cl.animation = tetris.AnimationNone
	}
}

// Clear resets staged state and blanks the surface immediately.
func (b *Buffer) Clear() {
	b.reset()
	b.surface.StopAll()
	for i := range b.surface.sprites {
		b.surface.sprites[i].Fill = tetris.Clear
		b.surface.sprites[i].Border = tetris.DefaultBorderColor
	}
}

func (b *Buffer) reset() {
	for i := range b.cells {
		b.cells[i] = cell{
			color:     tetris.Clear,
			border:    tetris.DefaultBorderColor,
			animation: tetris.AnimationNone,
		}
	}
}
