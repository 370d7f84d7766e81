package term

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/display"
	"github.com/plus3/blockfall/tetris"
)

const (
	cellWidth = 2
	wall      = '│'
	floor     = '─'
	solid     = '█'
	shade     = '▓'
	dot       = '·'

	// pulseShade is the sprite scale above which a pulsing cell is drawn shaded.
	pulseShade = 1.25
)

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw paints the board, its walls and the score column, then shows the
// screen.
func (t *Terminal) Draw() {
	t.screen.Clear()
	surface := t.driver.Surface()
	drawSurface(t.screen, surface)

	game := t.driver.Game()
	hud := hudLines(game.Stats(), game.State())
	x := surface.Width()*cellWidth + 4
	for i, line := range hud {
		drawText(t.screen, x, i+1, line, tcell.StyleDefault)
	}
	t.screen.Show()
}

// drawSurface renders cells starting at column 1, top row of the board on
// screen row 0.
func drawSurface(screen tcell.Screen, surface *display.Surface) {
	w, h := surface.Width(), surface.Height()
	frame := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for y := range h {
		screen.SetContent(0, y, wall, nil, frame)
		screen.SetContent(w*cellWidth+1, y, wall, nil, frame)
	}
	for x := range w*cellWidth + 2 {
		screen.SetContent(x, h, floor, nil, frame)
	}

	for p, sprite := range surface.All() {
		glyph, style := cellGlyph(sprite)
		col, row := 1+p.X*cellWidth, h-1-p.Y
		screen.SetContent(col, row, glyph, nil, style)
		screen.SetContent(col+1, row, glyph, nil, style)
	}
}

func cellGlyph(sprite *display.Sprite) (rune, tcell.Style) {
	if tetris.IsClear(sprite.Fill) {
		if sprite.Border == tetris.GuideBorderColor {
			return dot, tcell.StyleDefault.Foreground(rgb(sprite.Border))
		}
		return ' ', tcell.StyleDefault
	}

	style := tcell.StyleDefault.Foreground(rgb(sprite.Fill))
	if sprite.Playing() && sprite.Scale() > pulseShade {
		return shade, style.Bold(true)
	}
	return solid, style
}

func hudLines(stats tetris.Stats, state tetris.State) []string {
	lines := []string{
		fmt.Sprintf("score  %d", stats.Score),
		fmt.Sprintf("lines  %d", stats.Lines),
		fmt.Sprintf("level  %d", stats.Level),
		fmt.Sprintf("pieces %d", stats.Pieces),
		"",
		"←→ move  ↑ rotate",
		"↓ drop  space slam",
		"esc reset  q quit",
	}
	if state == tetris.StateGameOver {
		lines = append(lines, "", "GAME OVER")
	}
	return lines
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
