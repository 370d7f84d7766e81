package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/blockfall/tetris"
)

var keyMap = map[ebiten.Key]tetris.Key{
	ebiten.KeyArrowUp:    tetris.KeyUp,
	ebiten.KeyArrowDown:  tetris.KeyDown,
	ebiten.KeyArrowLeft:  tetris.KeyLeft,
	ebiten.KeyArrowRight: tetris.KeyRight,
	ebiten.KeySpace:      tetris.KeySpace,
	ebiten.KeyEscape:     tetris.KeyEscape,
}
