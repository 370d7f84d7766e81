// Package window plays the game in an Ebiten window, with an optional
// Dear ImGui overlay for inspecting the game and its systems.
package window

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/ecs/debugui"
	debugui_ebiten "github.com/plus3/blockfall/ecs/debugui/ebiten"
)

const (
	Title        = "blockfall"
	sidebarWidth = 160
	hudMargin    = 8
)

var background = color.RGBA{R: 16, G: 16, B: 20, A: 255}

type Options struct {
	CellSize int
	Debug    bool
	// Configs delivers reloaded configs; nil disables live reload.
	Configs <-chan config.Config
	Logger  *log.Logger
}

// Window implements ebiten.Game on top of a driver.
type Window struct {
	driver   *driver.Driver
	cellSize int
	configs  <-chan config.Config
	logger   *log.Logger

	backend *debugui_ebiten.ImguiBackend
	input   *ecs.Singleton[debugui.ImguiInputState]
	timer   *debugui.FrameTimer
	history *debugui.FrameHistory

	keys []ebiten.Key
}

func New(d *driver.Driver, opts Options) *Window {
	if opts.CellSize <= 0 {
		opts.CellSize = config.Default().CellSize
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	w := &Window{
		driver:   d,
		cellSize: opts.CellSize,
		configs:  opts.Configs,
		logger:   opts.Logger,
		timer:    debugui.NewFrameTimer(),
		history:  debugui.NewFrameHistory(120),
	}

	width, height := w.size()
	if opts.Debug {
		w.backend = debugui_ebiten.NewImguiBackend(Title, width+480, max(height, 480))
		w.input = debugui.Install(d.Registry(), d.Storage())
		debugui.SpawnWindow(d.Storage(), "game", InspectorWindow(d))
		debugui.SpawnWindow(d.Storage(), "systems", debugui.SystemTimingsWindow(d.Stats))
		debugui.SpawnWindow(d.Storage(), "performance", debugui.PerformanceStatsWindow(d.Storage(), w.history))
		d.Register(&debugui.ImguiSystem{})
	} else {
		ebiten.SetWindowSize(width, height)
		ebiten.SetWindowTitle(Title)
	}
	return w
}

// size is the logical screen: the board plus the score sidebar.
func (w *Window) size() (int, int) {
	surface := w.driver.Surface()
	return surface.Width()*w.cellSize + sidebarWidth, surface.Height() * w.cellSize
}

// Run blocks until the window is closed.
func (w *Window) Run() error {
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	select {
	case cfg, ok := <-w.configs:
		if ok {
			w.driver.Apply(cfg)
		}
	default:
	}

	w.history.Record(w.timer.Tick())

	if w.input == nil || !w.input.Get().WantCaptureKeyboard {
		w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
		for _, k := range w.keys {
			if key, ok := keyMap[k]; ok {
				w.driver.Press(key)
			}
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	if w.backend == nil {
		w.driver.Frame(dt)
		return nil
	}
	w.backend.Frame(func() { w.driver.Frame(dt) })
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	drawSurface(screen, w.driver.Surface(), w.cellSize)
	w.drawHUD(screen)

	if w.backend != nil {
		w.backend.Overlay(screen)
	}
}

func (w *Window) drawHUD(screen *ebiten.Image) {
	game := w.driver.Game()
	x := w.driver.Surface().Width()*w.cellSize + hudMargin
	ebitenutil.DebugPrintAt(screen, hudText(game.Stats(), game.State()), x, hudMargin)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.backend != nil {
		w.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return w.size()
}
