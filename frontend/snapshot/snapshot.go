// Package snapshot rasterizes a display surface to PNG files, for replays
// and headless runs.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/plus3/blockfall/display"
	"github.com/plus3/blockfall/tetris"
)

var Background = color.RGBA{R: 16, G: 16, B: 20, A: 255}

// Render draws every sprite of the surface at cellSize pixels per cell,
// pulses included.
func Render(surface *display.Surface, cellSize int) image.Image {
	dc := gg.NewContext(surface.Width()*cellSize, surface.Height()*cellSize)
	dc.SetColor(Background)
	dc.Clear()
	dc.SetLineWidth(1)

	for _, p := range surface.DrawOrder() {
		sprite := surface.At(p)
		r := display.CellRect(p, surface.Height(), cellSize, sprite.Scale())
		if !tetris.IsClear(sprite.Fill) {
			dc.DrawRectangle(r.X, r.Y, r.W, r.H)
			dc.SetColor(sprite.Fill)
			dc.Fill()
		}
		dc.DrawRectangle(r.X+0.5, r.Y+0.5, r.W-1, r.H-1)
		dc.SetColor(sprite.Border)
		dc.Stroke()
	}
	return dc.Image()
}

// Upscale enlarges img by an integer factor without smoothing.
func Upscale(img image.Image, factor int) *image.NRGBA {
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*max(factor, 1), b.Dy()*max(factor, 1), imaging.NearestNeighbor)
}

// Writer numbers and saves frames into a directory.
type Writer struct {
	Dir      string
	Prefix   string
	CellSize int
	Scale    int

	count int
}

// Write renders the surface and saves it as the next numbered PNG. It
// returns the file path.
func (w *Writer) Write(surface *display.Surface) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot dir: %w", err)
	}

	img := Upscale(Render(surface, max(w.CellSize, 1)), w.Scale)
	path := filepath.Join(w.Dir, fmt.Sprintf("%s%05d.png", w.Prefix, w.count))
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("snapshot %s: %w", path, err)
	}
	w.count++
	return path, nil
}

func (w *Writer) Count() int { return w.count }
