package display

import "github.com/plus3/blockfall/tetris"

// Rect is a screen rectangle with the origin at the top left.
type Rect struct {
	X, Y, W, H float64
}

// CellRect places cell p of a board with the given height on a screen of
// cellSize pixel cells. Row 0 is the bottom of the board; scale grows the
// cell around its center.
func CellRect(p tetris.Point, height, cellSize int, scale float64) Rect {
	size := float64(cellSize)
	scaled := size * scale
	inset := (size - scaled) / 2
	return Rect{
		X: float64(p.X)*size + inset,
		Y: float64(height-1-p.Y)*size + inset,
		W: scaled,
		H: scaled,
	}
}

// DrawOrder yields still cells first and pulsing cells last, so a growing
// sprite is drawn over its neighbors.
func (s *Surface) DrawOrder() []tetris.Point {
	order := make([]tetris.Point, 0, s.width*s.height)
	var pulsing []tetris.Point
	for p, sprite := range s.All() {
		if sprite.Playing() {
			pulsing = append(pulsing, p)
			continue
		}
		order = append(order, p)
	}
	return append(order, pulsing...)
}
