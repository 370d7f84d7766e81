package window

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

// InspectorWindow shows the game state machine and driver counters.
func InspectorWindow(d *driver.Driver) func() {
	return func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		if !imgui.BeginV("Game", nil, 0) {
			imgui.End()
			return
		}

		game := d.Game()
		stats := game.Stats()
		imgui.Text(fmt.Sprintf("State: %s", game.State()))
		if active := game.Active(); active != nil {
			imgui.Text(fmt.Sprintf("Piece: %s at %d,%d", active.Kind, active.Pivot.X, active.Pivot.Y))
		}
		if rows := game.ClearingRows(); len(rows) > 0 {
			imgui.Text(fmt.Sprintf("Clearing rows: %v", rows))
		}
		imgui.Text(fmt.Sprintf("Score: %d  Lines: %d  Level: %d", stats.Score, stats.Lines, stats.Level))
		imgui.Text(fmt.Sprintf("Pieces: %d  Elapsed: %s", stats.Pieces, stats.Elapsed.Round(time.Millisecond)))

		imgui.Separator()
		c := d.Counters()
		imgui.Text(fmt.Sprintf("Tick interval: %s", d.TickInterval()))
		imgui.Text(fmt.Sprintf("Frames: %d  Ticks: %d  Redraws: %d", c.Frames, c.Ticks, c.Redraws))
		imgui.Text(fmt.Sprintf("Keys: %d  Events: %d", c.Keys, c.Events))
		imgui.Text(fmt.Sprintf("Games over: %d  Restarts: %d", c.GamesOver, c.Restarts))
		imgui.Text(fmt.Sprintf("Animating cells: %d", d.Surface().Animating()))

		if imgui.Button("Reset") {
			d.Press(tetris.KeyEscape)
		}

		imgui.End()
	}
}
