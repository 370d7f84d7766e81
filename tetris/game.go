package tetris

import (
	"image/color"
	"math/rand/v2"
	"time"
)

// Default board size and clear animation hold.
const (
	DefaultWidth             = 10
	DefaultHeight            = 20
	DefaultAnimationDuration = 200 * time.Millisecond
)

// Options configure a Game. Zero fields take their defaults.
type Options struct {
	Width             int
	Height            int
	AnimationDuration time.Duration
	Generator         Generator
	Display           Display
	Listener          Listener
}

// Game owns the board and the falling piece and drives the
// spawn → fall → lock → clear → spawn cycle.
type Game struct {
	board    *Board
	catalog  *Catalog
	display  Display
	listener Listener

	state  State
	active *Piece

	clearRows    []int
	holdDuration time.Duration
	holdLeft     time.Duration

	stats  Stats
	redraw bool
}

// NewGame creates a game and spawns its first piece.
func NewGame(opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.AnimationDuration <= 0 {
		opts.AnimationDuration = DefaultAnimationDuration
	}
	if opts.Generator == nil {
		opts.Generator = NewUniformGenerator(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	}
	if opts.Display == nil {
		opts.Display = nopDisplay{}
	}

	g := &Game{
		board:        NewBoard(opts.Width, opts.Height),
		catalog:      NewCatalog(opts.Generator),
		display:      opts.Display,
		listener:     opts.Listener,
		holdDuration: opts.AnimationDuration,
	}
	g.restart()
	return g
}

// State returns the current phase.
func (g *Game) State() State {
	return g.state
}

// Board exposes the settled cells. Callers must treat it as read-only.
func (g *Game) Board() *Board {
	return g.board
}

// Active returns a copy of the falling piece, or nil.
func (g *Game) Active() *Piece {
	if g.active == nil {
		return nil
	}
	return g.active.Clone()
}

// Stats returns the running totals.
func (g *Game) Stats() Stats {
	return g.stats
}

// ClearingRows returns the rows held by the running clear sequence.
func (g *Game) ClearingRows() []int {
	return append([]int(nil), g.clearRows...)
}

// AnimationDuration is the length of the line clear hold.
func (g *Game) AnimationDuration() time.Duration {
	return g.holdDuration
}

// SetAnimationDuration changes the hold used by the next clear sequence.
func (g *Game) SetAnimationDuration(d time.Duration) {
	if d > 0 {
		g.holdDuration = d
	}
}

// TakeRedraw reports whether the buffer was repainted since the last call.
func (g *Game) TakeRedraw() bool {
	redraw := g.redraw
	g.redraw = false
	return redraw
}

// OnTick applies one gravity step. It returns false once the game is over;
// the caller stops ticking at that point.
func (g *Game) OnTick(elapsed time.Duration) bool {
	g.stats.Elapsed += elapsed

	switch g.state {
	case StateGameOver:
		return false
	case StateFalling:
		g.dropOnce()
		g.paint()
	}
	return g.state != StateGameOver
}

// OnKey routes a key to its action. Keys are ignored while a clear sequence
// is running; after game over only Escape is accepted.
func (g *Game) OnKey(k Key) bool {
	switch g.state {
	case StateFalling:
	case StateGameOver:
		if k == KeyEscape {
			return g.Reset()
		}
		return false
	default:
		return false
	}

	switch k {
	case KeyUp:
		g.rotate()
	case KeyDown:
		g.dropOnce()
	case KeySpace:
		g.hardDrop()
	case KeyLeft:
		g.move(-1)
	case KeyRight:
		g.move(+1)
	case KeyEscape:
		return g.Reset()
	default:
		return false
	}
	g.paint()
	return true
}

// Advance moves the clear sequence forward by dt. Outside StateLocking it does nothing.
func (g *Game) Advance(dt time.Duration) {
	if g.state != StateLocking {
		return
	}
	g.holdLeft -= dt
	if g.holdLeft > 0 {
		return
	}
	g.finishClear()
}

// Reset empties the board and spawns a new piece. It is refused while a
// clear sequence is running.
func (g *Game) Reset() bool {
	if g.state == StateLocking {
		return false
	}
	g.emit(Event{Kind: EventReset})
	g.restart()
	return true
}

func (g *Game) restart() {
	g.display.Clear()
	g.board.Clear()
	g.active = nil
	g.clearRows = nil
	g.holdLeft = 0
	g.stats = Stats{Level: 1}
	g.spawn()
	g.paint()
}

// spawn places a new piece centered on the top row.
func (g *Game) spawn() bool {
	g.state = StateSpawning

	piece := g.catalog.Random()
	piece.Pivot = SpawnPivot(piece, g.board.Width(), g.board.Height())

	if !g.board.Fits(piece) {
		g.active = nil
		g.state = StateGameOver
		g.emit(Event{Kind: EventGameOver, Piece: piece.Kind})
		return false
	}

	g.active = piece
	g.state = StateFalling
	g.stats.Pieces++
	g.emit(Event{Kind: EventSpawned, Piece: piece.Kind})
	return true
}

// SpawnPivot centers the piece horizontally and rests its top block on the top row.
func SpawnPivot(piece *Piece, width, height int) Point {
	return Point{
		X: (width - piece.Bounds.X - 1) / 2,
		Y: height - piece.Bounds.Y - 1,
	}
}

func (g *Game) move(dx int) bool {
	if !g.board.Movable(g.active, dx) {
		return false
	}
	g.active.Translate(Point{X: dx})
	return true
}

func (g *Game) rotate() bool {
	rotated := g.active.Rotated()
	if !g.board.Fits(rotated) {
		return false
	}
	g.active = rotated
	return true
}

func (g *Game) dropOnce() {
	if !g.board.Droppable(g.active) {
		g.place()
		return
	}
	g.active.Pivot.Y--
}

func (g *Game) hardDrop() {
	for g.board.Droppable(g.active) {
		g.active.Pivot.Y--
	}
	g.place()
}

func (g *Game) place() {
	piece := g.active
	g.board.Place(piece)
	g.active = nil
	g.state = StateLocking
	g.emit(Event{Kind: EventLocked, Piece: piece.Kind})
	g.beginClear()
}

func (g *Game) beginClear() {
	rows := g.board.FullRows()
	if len(rows) == 0 {
		g.spawn()
		return
	}

	g.clearRows = rows
	g.holdLeft = g.holdDuration

	g.paint()
	g.setRowAnimation(rows, AnimationPlayLoop)
}

func (g *Game) finishClear() {
	rows := g.clearRows
	g.setRowAnimation(rows, AnimationStop)

	g.board.RemoveRows(rows)
	g.clearRows = nil
	g.holdLeft = 0

	g.stats.Lines += len(rows)
	g.stats.Score += len(rows) * PointsPerLine
	g.stats.Level = g.stats.Lines/LinesPerLevel + 1
	g.emit(Event{Kind: EventLinesCleared, Lines: len(rows)})

	g.spawn()
	g.paint()
}

func (g *Game) setRowAnimation(rows []int, a Animation) {
	for _, y := range rows {
		for x := 0; x < g.board.Width(); x++ {
			g.display.SetAnimation(Point{X: x, Y: y}, a)
		}
	}
	g.redraw = true
}

// paint writes the board, the falling piece and the column guide into the display.
func (g *Game) paint() {
	w, h := g.board.Width(), g.board.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := Point{X: x, Y: y}
			g.display.SetColor(p, g.board.At(p))
		}
	}

	minX, maxX, maxY := 0, -1, -1
	if g.active != nil {
		minX, maxY = w, -1
		for i, block := range g.active.Blocks {
			p := g.active.WorldPosition(i)
			g.display.SetColor(p, block.Color)
			minX = min(minX, p.X)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			border := DefaultBorderColor
			if x >= minX && x <= maxX && y <= maxY {
				border = GuideBorderColor
			}
			g.display.SetBorderColor(Point{X: x, Y: y}, border)
		}
	}

	g.redraw = true
}

func (g *Game) emit(e Event) {
	if g.listener != nil {
		g.listener(e)
	}
}

type nopDisplay struct{}

func (nopDisplay) SetColor(Point, color.RGBA)       {}
func (nopDisplay) SetBorderColor(Point, color.RGBA) {}
func (nopDisplay) SetAnimation(Point, Animation)    {}
func (nopDisplay) Color(Point) color.RGBA           { return Clear }
func (nopDisplay) IsAnimating(Point) bool           { return false }
func (nopDisplay) Redraw()                          {}
func (nopDisplay) Clear()                           {}
