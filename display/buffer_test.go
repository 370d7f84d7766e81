package display

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/blockfall/tetris"
)

var red = color.RGBA{R: 255, A: 255}

func TestBufferStagesUntilRedraw(t *testing.T) {
	b := NewBuffer(NewSurface(4, 4), 200*time.Millisecond)
	p := tetris.Point{X: 1, Y: 2}

	b.SetColor(p, red)
	b.SetBorderColor(p, tetris.GuideBorderColor)
	assert.Equal(t, tetris.Clear, b.Color(p))

	b.Redraw()

	assert.Equal(t, red, b.Color(p))
	assert.Equal(t, tetris.GuideBorderColor, b.Surface().At(p).Border)
}

func TestBufferIgnoresOutOfBounds(t *testing.T) {
	b := NewBuffer(NewSurface(4, 4), 200*time.Millisecond)
	p := tetris.Point{X: 4, Y: 0}

	b.SetColor(p, red)
	b.SetBorderColor(p, red)
	b.SetAnimation(p, tetris.AnimationPlay)
	b.Redraw()

	assert.Equal(t, tetris.Clear, b.Color(p))
	assert.False(t, b.IsAnimating(p))
	assert.Equal(t, tetris.AnimationNone, b.Pending(p))
}

func TestBufferDirectivesAreConsumed(t *testing.T) {
	b := NewBuffer(NewSurface(4, 4), 200*time.Millisecond)
	loop := tetris.Point{X: 0, Y: 0}
	once := tetris.Point{X: 1, Y: 0}

	b.SetAnimation(loop, tetris.AnimationPlayLoop)
	b.SetAnimation(once, tetris.AnimationPlay)
	b.Redraw()

	assert.Equal(t, tetris.AnimationNone, b.Pending(loop))
	assert.True(t, b.IsAnimating(loop))
	assert.True(t, b.IsAnimating(once))

	b.Surface().Advance(100 * time.Millisecond)
	b.Redraw()
	b.Surface().Advance(150 * time.Millisecond)

	assert.True(t, b.IsAnimating(loop), "a consumed directive does not restart or stop the pulse")
	assert.False(t, b.IsAnimating(once))

	b.SetAnimation(loop, tetris.AnimationStop)
	b.Redraw()
	assert.False(t, b.IsAnimating(loop))
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer(NewSurface(4, 4), 200*time.Millisecond)
	p := tetris.Point{X: 3, Y: 3}

	b.SetColor(p, red)
	b.SetAnimation(p, tetris.AnimationPlayLoop)
	b.Redraw()
	b.SetAnimation(p, tetris.AnimationStop)

	b.Clear()

	assert.Equal(t, tetris.Clear, b.Color(p))
	assert.False(t, b.IsAnimating(p))
	assert.Equal(t, tetris.AnimationNone, b.Pending(p))

	b.Redraw()
	assert.Equal(t, tetris.Clear, b.Color(p))
}

func TestBufferDrivenByGame(t *testing.T) {
	surface := NewSurface(tetris.DefaultWidth, tetris.DefaultHeight)
	buf := NewBuffer(surface, 200*time.Millisecond)
	g := tetris.NewGame(tetris.Options{
		Generator: fixedKinds(tetris.KindO),
		Display:   buf,
	})

	assert.True(t, g.TakeRedraw())
	buf.Redraw()

	assert.Equal(t, tetris.ColorOf(tetris.KindO), buf.Color(tetris.Point{X: 4, Y: 18}))
	assert.Equal(t, tetris.GuideBorderColor, surface.At(tetris.Point{X: 5, Y: 0}).Border)
	assert.Equal(t, tetris.DefaultBorderColor, surface.At(tetris.Point{X: 6, Y: 0}).Border)
}

type fixedKinds tetris.Kind

func (k fixedKinds) Next() tetris.Kind { return tetris.Kind(k) }
