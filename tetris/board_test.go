package tetris

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardBounds(t *testing.T) {
	b := NewBoard(4, 3)

	assert.True(t, b.InBounds(Point{0, 0}))
	assert.True(t, b.InBounds(Point{3, 2}))
	assert.False(t, b.InBounds(Point{-1, 0}))
	assert.False(t, b.InBounds(Point{4, 0}))
	assert.False(t, b.InBounds(Point{0, 3}))

	assert.False(t, b.Set(Point{5, 5}, testColor))
	assert.Equal(t, Clear, b.At(Point{5, 5}))
	assert.False(t, b.IsEmpty(Point{-1, -1}))

	assert.True(t, b.Set(Point{1, 1}, testColor))
	assert.Equal(t, testColor, b.At(Point{1, 1}))
	assert.False(t, b.IsEmpty(Point{1, 1}))
	assert.Equal(t, 1, b.Occupied())
}

func TestBoardDroppable(t *testing.T) {
	b := boardFromRows(
		"....",
		"....",
		"#...",
		"....",
	)

	tests := []struct {
		name  string
		pivot Point
		want  bool
	}{
		{"floor", Point{1, 0}, false},
		{"open below", Point{1, 2}, true},
		{"resting on cell", Point{0, 2}, false},
		{"above gap", Point{2, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewKindPiece(KindO)
			p.Pivot = tt.pivot
			assert.Equal(t, tt.want, b.Droppable(p))
		})
	}
}

// Droppable must agree with its definition on arbitrary boards and placements.
func TestBoardDroppableMatchesDefinition(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 99))

	for trial := 0; trial < 500; trial++ {
		b := NewBoard(6, 8)
		for i := 0; i < 12; i++ {
			b.Set(Point{rng.IntN(6), rng.IntN(8)}, testColor)
		}

		p := NewKindPiece(Kind(rng.IntN(KindCount)))
		p.Pivot = Point{rng.IntN(6 - p.Bounds.X), rng.IntN(8 - p.Bounds.Y)}

		want := true
		for _, c := range p.Cells() {
			if c.Y == 0 || !IsClear(b.At(Point{c.X, c.Y - 1})) {
				want = false
			}
		}
		require.Equal(t, want, b.Droppable(p), "trial %d\n%s pivot=%v kind=%s", trial, b, p.Pivot, p.Kind)
	}
}

func TestBoardMovable(t *testing.T) {
	b := boardFromRows(
		"......",
		"...#..",
		"......",
	)

	p := NewKindPiece(KindO)
	p.Pivot = Point{0, 0}
	assert.False(t, b.Movable(p, -1))
	assert.True(t, b.Movable(p, +1))

	p.Pivot = Point{1, 0}
	assert.False(t, b.Movable(p, +1), "blocked by occupied cell")

	p.Pivot = Point{4, 0}
	assert.False(t, b.Movable(p, +1))

	p.Pivot = Point{0, 0}
	assert.True(t, b.Movable(p, +5), "direction is clamped to one column")
}

func TestBoardFits(t *testing.T) {
	b := boardFromRows(
		"....",
		"..#.",
		"....",
	)

	p := NewKindPiece(KindO)
	p.Pivot = Point{0, 0}
	assert.True(t, b.Fits(p))

	p.Pivot = Point{1, 0}
	assert.False(t, b.Fits(p))

	p.Pivot = Point{3, 0}
	assert.False(t, b.Fits(p), "out of bounds")
}

func TestBoardPlace(t *testing.T) {
	b := NewBoard(4, 4)
	p := NewKindPiece(KindT)
	p.Pivot = Point{1, 0}

	b.Place(p)

	assert.Equal(t, "....\n....\n..#.\n.###\n", b.String())
	assert.Equal(t, ColorOf(KindT), b.At(Point{2, 1}))
}

func TestBoardFullRows(t *testing.T) {
	b := boardFromRows(
		"####",
		"#.##",
		"####",
		"....",
		"####",
	)

	assert.Equal(t, []int{4, 2, 0}, b.FullRows())
	assert.True(t, b.IsRowFull(0))
	assert.False(t, b.IsRowFull(3), "row missing one cell")
	assert.False(t, b.IsRowFull(1), "row missing every cell")
	assert.False(t, b.IsRowFull(-1))
	assert.False(t, b.IsRowFull(5))
}

func TestBoardRemoveRows(t *testing.T) {
	b := boardFromRows(
		"#...",
		"####",
		".#..",
		"####",
		"##.#",
	)
	before := b.Occupied()

	b.RemoveRows([]int{1, 3})

	assert.Equal(t, "....\n....\n#...\n.#..\n##.#\n", b.String())
	assert.Equal(t, before-8, b.Occupied())
}

func TestBoardRemoveRowsShiftsBySurvivorsBelow(t *testing.T) {
	// every row gets a unique column marker so its identity can be tracked
	rows := []string{
		"...#..",
		"######",
		"..#...",
		"######",
		".#....",
		"#.....",
	}
	b := boardFromRows(rows...)

	b.RemoveRows(b.FullRows())

	assert.Equal(t, "......\n......\n...#..\n..#...\n.#....\n#.....\n", b.String())
}

func TestBoardRemoveRowsIgnoresDuplicatesAndOutOfRange(t *testing.T) {
	b := boardFromRows(
		"#...",
		"####",
		"..#.",
	)

	b.RemoveRows([]int{1, 1, 7, -2})

	assert.Equal(t, "....\n#...\n..#.\n", b.String())
}

func TestBoardClear(t *testing.T) {
	b := boardFromRows("##", "#.")
	b.Clear()

	assert.Equal(t, 0, b.Occupied())
	assert.Equal(t, []int(nil), b.FullRows())
}
