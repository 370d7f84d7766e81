package driver

import (
	"log"
	"time"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/tetris"
)

func seconds(dt float64) time.Duration {
	return time.Duration(dt * float64(time.Second))
}

// InputSystem feeds queued keys to the game. A handled Escape restarts the
// clock, including after game over.
type InputSystem struct {
	Session ecs.Singleton[Session]
	Keys    ecs.Singleton[KeyQueue]
	Clock   ecs.Singleton[Clock]
	Stats   ecs.Singleton[FrameStats]

	Logger *log.Logger
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Keys.Get()
	game := s.Session.Get().Game
	stats := s.Stats.Get()

	for _, k := range queue.Keys {
		if !game.OnKey(k) {
			continue
		}
		stats.Keys++
		if k == tetris.KeyEscape {
			clock := s.Clock.Get()
			if !clock.Running {
				s.Logger.Printf("restarting after game over")
			}
			clock.Start()
			stats.Restarts++
		}
	}
	queue.Keys = queue.Keys[:0]
}

// ClearHoldSystem advances the line clear hold. It runs first so a clear
// started this frame is redrawn before any time is charged against it.
type ClearHoldSystem struct {
	Session ecs.Singleton[Session]
}

func (s *ClearHoldSystem) Execute(frame *ecs.UpdateFrame) {
	s.Session.Get().Game.Advance(seconds(frame.DeltaTime))
}

// GravitySystem ticks the game whenever more than one interval has
// accumulated, and stops the clock when the game reports it is over.
type GravitySystem struct {
	Session ecs.Singleton[Session]
	Clock   ecs.Singleton[Clock]
	Stats   ecs.Singleton[FrameStats]

	Logger *log.Logger
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	if !clock.Running {
		return
	}

	game := s.Session.Get().Game
	clock.Accumulated += seconds(frame.DeltaTime)
	if clock.Accumulated <= clock.Effective(game.Stats().Level) {
		return
	}

	elapsed := clock.Accumulated
	clock.Accumulated = 0

	stats := s.Stats.Get()
	stats.Ticks++
	if !game.OnTick(elapsed) {
		clock.Running = false
		stats.GamesOver++
		st := game.Stats()
		s.Logger.Printf("game over: score=%d lines=%d pieces=%d", st.Score, st.Lines, st.Pieces)
	}
}

// RedrawSystem flushes the buffer when the game repainted it.
type RedrawSystem struct {
	Session ecs.Singleton[Session]
	Stats   ecs.Singleton[FrameStats]
}

func (s *RedrawSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	if session.Game.TakeRedraw() {
		session.Buffer.Redraw()
		s.Stats.Get().Redraws++
	}
}

// AnimationSystem steps sprite pulses.
type AnimationSystem struct {
	Session ecs.Singleton[Session]
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	s.Session.Get().Surface.Advance(seconds(frame.DeltaTime))
}

// EventSystem hands the frame's game events to every EventHandler entity.
type EventSystem struct {
	Handlers ecs.Query[struct{ *EventHandler }]
	Events   ecs.Singleton[EventQueue]
	Stats    ecs.Singleton[FrameStats]
}

func (s *EventSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Events.Get()
	if len(queue.Events) == 0 {
		return
	}

	for _, e := range queue.Events {
		for h := range s.Handlers.Iter() {
			h.EventHandler.Handle(e)
		}
	}
	s.Stats.Get().Events += int64(len(queue.Events))
	clear(queue.Events)
	queue.Events = queue.Events[:0]
}
