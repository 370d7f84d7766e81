package window

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/display"
	"github.com/plus3/blockfall/tetris"
)

const borderWidth = 1

func drawSurface(screen *ebiten.Image, surface *display.Surface, cellSize int) {
	for _, p := range surface.DrawOrder() {
		sprite := surface.At(p)
		r := display.CellRect(p, surface.Height(), cellSize, sprite.Scale())
		x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
		if !tetris.IsClear(sprite.Fill) {
			vector.DrawFilledRect(screen, x, y, w, h, sprite.Fill, false)
		}
		vector.StrokeRect(screen, x, y, w, h, borderWidth, sprite.Border, false)
	}
}

func hudText(stats tetris.Stats, state tetris.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SCORE  %d\n", stats.Score)
	fmt.Fprintf(&b, "LINES  %d\n", stats.Lines)
	fmt.Fprintf(&b, "LEVEL  %d\n", stats.Level)
	fmt.Fprintf(&b, "PIECES %d\n", stats.Pieces)
	if state == tetris.StateGameOver {
		b.WriteString("\nGAME OVER\nESC to restart\n")
	}
	return b.String()
}
