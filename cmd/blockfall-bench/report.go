package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/tetris"
)

type Report struct {
	Duration time.Duration
	Boards   int
	KeyRate  float64
	Tick     time.Duration

	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Totals         GameTotals
	Systems        []ecs.SystemStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	for _, sample := range s.Samples {
		total += sample
	}
	s.Min = slices.Min(s.Samples)
	s.Max = slices.Max(s.Samples)
	s.Avg = total / time.Duration(len(s.Samples))
}

// GameTotals counts game events across every game a board plays.
type GameTotals struct {
	Games  int
	Pieces int
	Lines  int
	Clears int
	Tetris int
}

func (g *GameTotals) Handle(e tetris.Event) {
	switch e.Kind {
	case tetris.EventSpawned:
		g.Pieces++
	case tetris.EventLinesCleared:
		g.Lines += e.Lines
		g.Clears++
		if e.Lines == 4 {
			g.Tetris++
		}
	case tetris.EventGameOver:
		g.Games++
	}
}

func (g *GameTotals) Add(o GameTotals) {
	g.Games += o.Games
	g.Pieces += o.Pieces
	g.Lines += o.Lines
	g.Clears += o.Clears
	g.Tetris += o.Tetris
}

// MergeSystemStats sums per-system timings over every driver. Drivers share
// one system order.
func MergeSystemStats(drivers []*driver.Driver) []ecs.SystemStats {
	var merged []ecs.SystemStats
	for _, d := range drivers {
		for i, s := range d.Stats().Systems {
			if i >= len(merged) {
				merged = append(merged, ecs.SystemStats{Name: s.Name, MinDuration: s.MinDuration})
			}
			m := &merged[i]
			m.ExecutionCount += s.ExecutionCount
			m.TotalDuration += s.TotalDuration
			m.MinDuration = min(m.MinDuration, s.MinDuration)
			m.MaxDuration = max(m.MaxDuration, s.MaxDuration)
		}
	}
	for i := range merged {
		if merged[i].ExecutionCount > 0 {
			merged[i].AvgDuration = merged[i].TotalDuration / time.Duration(merged[i].ExecutionCount)
		}
	}
	return merged
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Benchmark Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Boards:** {{.Boards}}
- **Key Rate:** {{printf "%.2f" .KeyRate}}
- **Tick Interval:** {{.Tick}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Time:** {{.TotalTime}}
- **Update Time (all boards):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Games
- Finished: {{.Totals.Games}}
- Pieces:   {{.Totals.Pieces}}
- Lines:    {{.Totals.Lines}} in {{.Totals.Clears}} clears ({{.Totals.Tetris}} four-line)

## Systems
| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report: %w", err)
	}
	return tmpl.Execute(w, r)
}
