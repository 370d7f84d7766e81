package tetris

import "image/color"

// Point is an integer grid coordinate. Y grows upwards; row 0 is the bottom of the board.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Block is a single cell of a piece, positioned relative to the piece pivot.
type Block struct {
	Offset Point
	Color  color.RGBA
}

// Piece is a set of blocks anchored at a pivot on the board.
// Offsets are kept non-negative; Bounds holds the largest X and Y offset.
type Piece struct {
	Kind   Kind
	Blocks []Block
	Pivot  Point
	Bounds Point
}

// NewPiece creates a piece from the given blocks and computes its bounds.
func NewPiece(kind Kind, blocks []Block, pivot Point) *Piece {
	return &Piece{
		Kind:   kind,
		Blocks: blocks,
		Pivot:  pivot,
		Bounds: maxOffset(blocks),
	}
}

// Len returns the number of blocks in the piece.
func (p *Piece) Len() int {
	return len(p.Blocks)
}

// WorldPosition returns the board coordinate of block i.
func (p *Piece) WorldPosition(i int) Point {
	return p.Pivot.Add(p.Blocks[i].Offset)
}

// Cells returns the board coordinates of every block in order.
func (p *Piece) Cells() []Point {
	cells := make([]Point, len(p.Blocks))
	for i := range p.Blocks {
		cells[i] = p.WorldPosition(i)
	}
	return cells
}

// LongestSide is the larger of the two bounding box extents.
func (p *Piece) LongestSide() int {
	return max(p.Bounds.X, p.Bounds.Y)
}

// Translate moves the pivot by delta. Legality is checked by the caller.
func (p *Piece) Translate(delta Point) {
	p.Pivot = p.Pivot.Add(delta)
}

// Translated returns a copy of the piece moved by delta.
func (p *Piece) Translated(delta Point) *Piece {
	moved := p.Clone()
	moved.Translate(delta)
	return moved
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	blocks := make([]Block, len(p.Blocks))
	copy(blocks, p.Blocks)
	return &Piece{
		Kind:   p.Kind,
		Blocks: blocks,
		Pivot:  p.Pivot,
		Bounds: p.Bounds,
	}
}

// Rotated returns the piece turned a quarter turn around a fixed axis.
// Each offset maps (x, y) -> (y, longestSide - x) and the result is shifted
// back so the smallest offset sits at the origin. The pivot is unchanged.
func (p *Piece) Rotated() *Piece {
	longest := p.LongestSide()

	blocks := make([]Block, len(p.Blocks))
	minX, minY := int(^uint(0)>>1), int(^uint(0)>>1)
	for i, block := range p.Blocks {
		rotated := Point{X: block.Offset.Y, Y: longest - block.Offset.X}
		blocks[i] = Block{Offset: rotated, Color: block.Color}
		minX = min(minX, rotated.X)
		minY = min(minY, rotated.Y)
	}

	for i := range blocks {
		blocks[i].Offset.X -= minX
		blocks[i].Offset.Y -= minY
	}

	return NewPiece(p.Kind, blocks, p.Pivot)
}

func maxOffset(blocks []Block) Point {
	if len(blocks) == 0 {
		return Point{}
	}
	bounds := blocks[0].Offset
	for _, block := range blocks[1:] {
		bounds.X = max(bounds.X, block.Offset.X)
		bounds.Y = max(bounds.Y, block.Offset.Y)
	}
	return bounds
}
