package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/tetris"
)

func TestSurfaceAt(t *testing.T) {
	s := NewSurface(3, 2)

	require.NotNil(t, s.At(tetris.Point{X: 2, Y: 1}))
	assert.Nil(t, s.At(tetris.Point{X: 3, Y: 0}))
	assert.Nil(t, s.At(tetris.Point{X: 0, Y: -1}))
	assert.Equal(t, tetris.DefaultBorderColor, s.At(tetris.Point{}).Border)
}

func TestSurfaceAdvanceDropsFinishedSprites(t *testing.T) {
	s := NewSurface(4, 4)

	s.Play(tetris.Point{X: 0, Y: 0}, 100*time.Millisecond, false)
	s.Play(tetris.Point{X: 1, Y: 0}, 100*time.Millisecond, true)
	s.Play(tetris.Point{X: 9, Y: 9}, 100*time.Millisecond, true)
	assert.Equal(t, 2, s.Animating())

	s.Advance(150 * time.Millisecond)

	assert.False(t, s.IsAnimating(tetris.Point{X: 0, Y: 0}))
	assert.True(t, s.IsAnimating(tetris.Point{X: 1, Y: 0}))
	assert.Equal(t, 1, s.Animating())
	assert.Equal(t, 1.0, s.At(tetris.Point{X: 0, Y: 0}).Scale())
}

func TestSurfaceStop(t *testing.T) {
	s := NewSurface(4, 4)
	for x := range 4 {
		s.Play(tetris.Point{X: x, Y: 2}, time.Second, true)
	}
	s.Advance(250 * time.Millisecond)

	s.Stop(tetris.Point{X: 0, Y: 2})
	assert.Equal(t, 3, s.Animating())
	assert.Equal(t, 1.0, s.At(tetris.Point{X: 0, Y: 2}).Scale())

	s.StopAll()
	assert.Equal(t, 0, s.Animating())
	for _, sprite := range s.All() {
		assert.False(t, sprite.Playing())
	}
}

func TestSurfaceAllOrder(t *testing.T) {
	s := NewSurface(2, 2)

	var points []tetris.Point
	for p := range s.All() {
		points = append(points, p)
	}

	assert.Equal(t, []tetris.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, points)
}
