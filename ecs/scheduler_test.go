package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/blockfall/ecs"
)

type MovementSystem struct {
	Entities     ecs.Query[movable]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type Tally struct {
	Frames int
	Seen   int
}

type CountingSystem struct {
	Entities ecs.Query[struct{ *Position }]
	Tally    ecs.Singleton[Tally]
}

func (s *CountingSystem) Execute(frame *ecs.UpdateFrame) {
	tally := s.Tally.Get()
	tally.Frames++
	tally.Seen = s.Entities.Len()
}

type SpawnerSystem struct {
	PerFrame int
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	for range s.PerFrame {
		frame.Commands.Spawn(Position{})
	}
}

type SleepySystem struct {
	sleep time.Duration
}

func (s *SleepySystem) Execute(*ecs.UpdateFrame) {
	time.Sleep(s.sleep)
}

func TestSchedulerBindsQueriesAndSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Tally{})

	movement := &MovementSystem{}
	counting := &CountingSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(movement)
	scheduler.Register(counting)

	id := storage.Spawn(Position{}, Velocity{DX: 2, DY: 4})
	storage.Spawn(Position{X: 7})

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	pos := ecs.ReadComponent[Position](storage, id)
	assert.Equal(t, Position{X: 2, Y: 4}, *pos)
	assert.Equal(t, 2, movement.ExecuteCount)

	var tally *Tally
	require.True(t, storage.ReadSingleton(&tally))
	assert.Equal(t, Tally{Frames: 2, Seen: 2}, *tally)

	assert.Panics(t, func() { movement.Entities.Iter() }, "query snapshots do not outlive the frame")
}

func TestSchedulerFlushesCommandsAfterFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Tally{})

	counting := &CountingSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&SpawnerSystem{PerFrame: 3})
	scheduler.Register(counting)

	scheduler.Once(0.016)
	assert.Equal(t, 0, counting.Tally.Get().Seen, "spawns are deferred to the end of the frame")

	scheduler.Once(0.016)
	assert.Equal(t, 3, counting.Tally.Get().Seen)
	assert.Equal(t, 6, storage.CollectStats().TotalEntityCount)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)

	stats := scheduler.GetStats()
	assert.Equal(t, 0, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)

	scheduler.Register(&SleepySystem{sleep: time.Millisecond})
	scheduler.Register(&SpawnerSystem{})

	for range 3 {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)

	sleepy := stats.Systems[0]
	assert.Equal(t, "SleepySystem", sleepy.Name)
	assert.Equal(t, "SpawnerSystem", stats.Systems[1].Name)
	assert.Equal(t, int64(3), sleepy.ExecutionCount)
	assert.GreaterOrEqual(t, sleepy.MinDuration, time.Millisecond)
	assert.LessOrEqual(t, sleepy.MinDuration, sleepy.AvgDuration)
	assert.LessOrEqual(t, sleepy.AvgDuration, sleepy.MaxDuration)
	assert.GreaterOrEqual(t, sleepy.TotalDuration, 3*time.Millisecond)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Tally{})
	counting := &CountingSystem{}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(counting)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	scheduler.Run(ctx, 5*time.Millisecond)

	assert.Positive(t, counting.Tally.Get().Frames)
}
