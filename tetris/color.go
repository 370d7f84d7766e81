package tetris

import "image/color"

var (
	// Clear marks an empty cell.
	Clear = color.RGBA{}

	// DefaultBorderColor is the border of a cell outside the column guide.
	DefaultBorderColor = color.RGBA{R: 48, G: 48, B: 48, A: 255}

	// GuideBorderColor highlights the columns below the falling piece.
	GuideBorderColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// IsClear reports whether c is the empty cell color.
func IsClear(c color.RGBA) bool {
	return c == Clear
}
