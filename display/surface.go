// Package display holds the drawable side of the board: a grid of pulsing
// sprites and the buffer the game paints into before each redraw.
package display

import (
	"iter"
	"time"

	"github.com/kamstrup/intmap"

	"github.com/plus3/blockfall/tetris"
)

// Surface is a width x height grid of sprites. Playing sprites are tracked
// by cell index so Advance only visits cells that are animating.
type Surface struct {
	width   int
	height  int
	sprites []Sprite
	active  *intmap.Set[int]
	done    []int
}

func NewSurface(width, height int) *Surface {
	s := &Surface{
		width:   width,
		height:  height,
		sprites: make([]Sprite, width*height),
		active:  intmap.NewSet[int](width),
	}
	for i := range s.sprites {
		s.sprites[i] = NewSprite()
	}
	return s
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

func (s *Surface) index(p tetris.Point) (int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= s.width || p.Y >= s.height {
		return 0, false
	}
	return p.Y*s.width + p.X, true
}

// At returns the sprite at p, or nil outside the grid.
func (s *Surface) At(p tetris.Point) *Sprite {
	i, ok := s.index(p)
	if !ok {
		return nil
	}
	return &s.sprites[i]
}

// Play starts the pulse of the sprite at p.
func (s *Surface) Play(p tetris.Point, duration time.Duration, loop bool) {
	i, ok := s.index(p)
	if !ok {
		return
	}
	s.sprites[i].Play(duration, loop)
	s.active.Add(i)
}

// Stop ends the pulse of the sprite at p.
func (s *Surface) Stop(p tetris.Point) {
	i, ok := s.index(p)
	if !ok {
		return
	}
	s.sprites[i].Stop()
	s.active.Del(i)
}

// StopAll ends every running pulse.
func (s *Surface) StopAll() {
	for i := range s.active.All() {
		s.sprites[i].Stop()
	}
	s.active.Clear()
}

func (s *Surface) IsAnimating(p tetris.Point) bool {
	i, ok := s.index(p)
	return ok && s.active.Has(i)
}

// Animating returns the number of sprites currently pulsing.
func (s *Surface) Animating() int {
	return s.active.Len()
}

// Advance steps every playing sprite by dt and drops the ones that finished.
func (s *Surface) Advance(dt time.Duration) {
	s.done = s.done[:0]
	s.active.ForEach(func(i int) bool {
		if !s.sprites[i].Advance(dt) {
			s.done = append(s.done, i)
		}
		return true
	})
	for _, i := range s.done {
		s.active.Del(i)
	}
}

// All yields every cell with its sprite, bottom row first.
func (s *Surface) All() iter.Seq2[tetris.Point, *Sprite] {
	return func(yield func(tetris.Point, *Sprite) bool) {
		for i := range s.sprites {
			p := tetris.Point{X: i % s.width, Y: i / s.width}
			if !yield(p, &s.sprites[i]) {
				return
			}
		}
	}
}
