package tetris

import "time"

// State is the phase of the game state machine.
type State int

const (
	StateSpawning State = iota
	StateFalling
	StateLocking
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateFalling:
		return "falling"
	case StateLocking:
		return "locking"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Key is a game input independent of any keyboard backend.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeySpace
	KeyLeft
	KeyRight
	KeyEscape
)

// ParseKey maps the single-letter script alphabet used by replays to keys:
// u=up, d=down, s=space, l=left, r=right, e=escape.
func ParseKey(r rune) Key {
	switch r {
	case 'u':
		return KeyUp
	case 'd':
		return KeyDown
	case 's':
		return KeySpace
	case 'l':
		return KeyLeft
	case 'r':
		return KeyRight
	case 'e':
		return KeyEscape
	default:
		return KeyNone
	}
}

// EventKind classifies a game event.
type EventKind int

const (
	EventSpawned EventKind = iota
	EventLocked
	EventLinesCleared
	EventGameOver
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventSpawned:
		return "spawned"
	case EventLocked:
		return "locked"
	case EventLinesCleared:
		return "lines-cleared"
	case EventGameOver:
		return "game-over"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is delivered to the game's Listener.
type Event struct {
	Kind  EventKind
	Piece Kind
	Lines int
}

// Listener observes game events. It runs synchronously inside the game call
// that produced the event and must not call back into the game.
type Listener func(Event)

// Stats are the running totals of the current game.
type Stats struct {
	Score   int
	Lines   int
	Level   int
	Pieces  int
	Elapsed time.Duration
}

// PointsPerLine is awarded for every cleared row.
const PointsPerLine = 100

// LinesPerLevel cleared rows advance the level by one.
const LinesPerLevel = 10
