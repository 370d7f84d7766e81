package snapshot

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/display"
	"github.com/plus3/blockfall/tetris"
)

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestRenderPlacesCellsBottomUp(t *testing.T) {
	s := display.NewSurface(3, 2)
	fill := tetris.ColorOf(tetris.KindT)
	s.At(tetris.Point{X: 2, Y: 0}).Fill = fill

	img := Render(s, 10)

	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
	assert.Equal(t, fill, rgba(img.At(25, 15)), "bottom right cell is filled")
	assert.Equal(t, Background, rgba(img.At(5, 5)), "top left cell is empty")
	assert.NotEqual(t, Background, rgba(img.At(0, 5)), "cell border")
}

func TestUpscaleIsNearestNeighbor(t *testing.T) {
	s := display.NewSurface(1, 1)
	s.At(tetris.Point{}).Fill = tetris.ColorOf(tetris.KindI)
	img := Render(s, 4)

	up := Upscale(img, 3)

	assert.Equal(t, 12, up.Bounds().Dx())
	assert.Equal(t, rgba(img.At(2, 2)), rgba(up.At(6, 6)))
	assert.Equal(t, rgba(img.At(0, 0)), rgba(up.At(1, 1)))
}

func TestWriterNumbersFrames(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: filepath.Join(dir, "frames"), Prefix: "f", CellSize: 4, Scale: 2}
	s := display.NewSurface(2, 3)

	first, err := w.Write(s)
	require.NoError(t, err)
	second, err := w.Write(s)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "frames", "f00000.png"), first)
	assert.Equal(t, filepath.Join(dir, "frames", "f00001.png"), second)
	assert.Equal(t, 2, w.Count())

	img, err := imaging.Open(second)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())
}
