package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// storageBinder is implemented by Query and Singleton fields.
type storageBinder interface {
	Init(storage *Storage)
}

type executor interface {
	Execute()
	Invalidate()
}

type registeredSystem struct {
	system  System
	queries []executor
	stats   SystemStats
}

// Scheduler runs registered systems in order, once per frame.
type Scheduler struct {
	storage  *Storage
	systems  []*registeredSystem
	commands *Commands
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Register binds the system's Query and Singleton fields and appends it to
// the run order.
func (s *Scheduler) Register(system System) {
	reg := &registeredSystem{
		system: system,
		stats: SystemStats{
			Name:        systemName(system),
			MinDuration: time.Duration(1<<63 - 1),
		},
	}
	reg.queries = s.bindFields(system)
	s.systems = append(s.systems, reg)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func (s *Scheduler) bindFields(system System) []executor {
	v := reflect.ValueOf(system)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	v = v.Elem()

	var queries []executor
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		addr := field.Addr().Interface()
		binder, ok := addr.(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := addr.(executor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once runs every system with the given delta time in seconds. Each system's
// queries are executed right before it runs, so they see entities spawned by
// earlier frames. Buffered commands are flushed after the last system.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage, s.commands)

	for _, reg := range s.systems {
		start := time.Now()
		for _, q := range reg.queries {
			q.Execute()
		}
		reg.system.Execute(frame)
		for _, q := range reg.queries {
			q.Invalidate()
		}
		reg.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

func (r *registeredSystem) record(d time.Duration) {
	r.stats.ExecutionCount++
	r.stats.LastDuration = d
	r.stats.TotalDuration += d
	r.stats.MinDuration = min(r.stats.MinDuration, d)
	r.stats.MaxDuration = max(r.stats.MaxDuration, d)
	r.stats.AvgDuration = r.stats.TotalDuration / time.Duration(r.stats.ExecutionCount)
}

// Run executes all systems at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Once(dt)
		}
	}
}

// GetStats returns a snapshot of per-system timings in run order.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, reg := range s.systems {
		stats.Systems[i] = reg.stats
		stats.TotalExecutions += reg.stats.ExecutionCount
	}
	return stats
}
