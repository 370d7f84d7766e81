package tetris

import (
	"image/color"
	"slices"
	"strings"
)

// Board is the fixed grid of settled cells.
type Board struct {
	width  int
	height int
	cells  []color.RGBA
}

// NewBoard allocates a clear board of the given size.
func NewBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]color.RGBA, width*height),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// InBounds reports whether p addresses a cell of the board.
func (b *Board) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.width && p.Y < b.height
}

func (b *Board) index(p Point) int {
	return p.Y*b.width + p.X
}

// At returns the color at p, or Clear when p is out of bounds.
func (b *Board) At(p Point) color.RGBA {
	if !b.InBounds(p) {
		return Clear
	}
	return b.cells[b.index(p)]
}

// Set writes c at p. Writes outside the board are dropped.
func (b *Board) Set(p Point, c color.RGBA) bool {
	if !b.InBounds(p) {
		return false
	}
	b.cells[b.index(p)] = c
	return true
}

// IsEmpty reports whether p is inside the board and clear.
func (b *Board) IsEmpty(p Point) bool {
	return b.InBounds(p) && IsClear(b.cells[b.index(p)])
}

// Fits reports whether every block of the piece lands on an empty cell.
func (b *Board) Fits(piece *Piece) bool {
	for i := range piece.Blocks {
		if !b.IsEmpty(piece.WorldPosition(i)) {
			return false
		}
	}
	return true
}

// Droppable reports whether the piece can move one row down.
func (b *Board) Droppable(piece *Piece) bool {
	for i := range piece.Blocks {
		p := piece.WorldPosition(i)
		if p.Y <= 0 {
			return false
		}
		if !b.IsEmpty(Point{X: p.X, Y: p.Y - 1}) {
			return false
		}
	}
	return true
}

// Movable reports whether the piece can shift horizontally by one column in direction dx.
func (b *Board) Movable(piece *Piece, dx int) bool {
	dx = max(-1, min(1, dx))
	for i := range piece.Blocks {
		if !b.IsEmpty(piece.WorldPosition(i).Add(Point{X: dx})) {
			return false
		}
	}
	return true
}

// Place writes every block of the piece into the board.
func (b *Board) Place(piece *Piece) {
	for i, block := range piece.Blocks {
		b.Set(piece.WorldPosition(i), block.Color)
	}
}

// IsRowFull reports whether every cell in row y is occupied.
func (b *Board) IsRowFull(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for _, c := range b.cells[y*b.width : (y+1)*b.width] {
		if IsClear(c) {
			return false
		}
	}
	return true
}

// FullRows returns the indices of all full rows, from the top of the board down.
func (b *Board) FullRows() []int {
	var rows []int
	for y := b.height - 1; y >= 0; y-- {
		if b.IsRowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// RemoveRows clears each listed row and drops everything above it by one.
// Rows are processed from the highest index down so earlier removals never
// move a row that is still waiting to be removed.
func (b *Board) RemoveRows(rows []int) {
	ordered := slices.Clone(rows)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)
	slices.Reverse(ordered)

	for _, y := range ordered {
		if y < 0 || y >= b.height {
			continue
		}
		b.collapse(y)
	}
}

func (b *Board) collapse(target int) {
	w := b.width
	copy(b.cells[target*w:(b.height-1)*w], b.cells[(target+1)*w:b.height*w])
	top := b.cells[(b.height-1)*w:]
	for i := range top {
		top[i] = Clear
	}
}

// Clear empties every cell.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Clear
	}
}

// Occupied returns the number of non-clear cells.
func (b *Board) Occupied() int {
	count := 0
	for _, c := range b.cells {
		if !IsClear(c) {
			count++
		}
	}
	return count
}

// Row returns a copy of row y.
func (b *Board) Row(y int) []color.RGBA {
	if y < 0 || y >= b.height {
		return nil
	}
	return slices.Clone(b.cells[y*b.width : (y+1)*b.width])
}

// String draws the board top row first, '#' for occupied and '.' for clear.
func (b *Board) String() string {
	var sb strings.Builder
	for y := b.height - 1; y >= 0; y-- {
		for x := 0; x < b.width; x++ {
			if IsClear(b.cells[y*b.width+x]) {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
