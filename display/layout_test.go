package display

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/blockfall/tetris"
)

func TestCellRect(t *testing.T) {
	tests := []struct {
		name  string
		p     tetris.Point
		scale float64
		want  Rect
	}{
		{"bottom left", tetris.Point{X: 0, Y: 0}, 1, Rect{X: 0, Y: 570, W: 30, H: 30}},
		{"top right", tetris.Point{X: 9, Y: 19}, 1, Rect{X: 270, Y: 0, W: 30, H: 30}},
		{"pulse peak", tetris.Point{X: 1, Y: 19}, 1.5, Rect{X: 22.5, Y: -7.5, W: 45, H: 45}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellRect(tt.p, 20, 30, tt.scale))
		})
	}
}

func TestDrawOrderPutsPulsingLast(t *testing.T) {
	s := NewSurface(3, 2)
	s.Play(tetris.Point{X: 0, Y: 0}, time.Second, true)

	order := s.DrawOrder()

	assert.Len(t, order, 6)
	assert.Equal(t, tetris.Point{X: 0, Y: 0}, order[5])
	assert.Equal(t, tetris.Point{X: 1, Y: 0}, order[0])
}
