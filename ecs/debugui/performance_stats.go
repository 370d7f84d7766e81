package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/ecs"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(frames, 1))}
}

func (h *FrameHistory) Record(dt time.Duration) {
	h.samples[h.next] = float32(dt.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average is the mean of the recorded samples, zero before the first.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, ms := range h.samples[:h.filled] {
		sum += ms
	}
	return sum / float32(h.filled)
}

// PerformanceStatsWindow shows frame pacing and the shape of the storage.
func PerformanceStatsWindow(storage *ecs.Storage, history *FrameHistory) func() {
	return func() {
		if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		stats := storage.CollectStats()
		imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
		imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
		imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

		if avg := history.Average(); avg > 0 {
			imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
		}

		imgui.Separator()
		imgui.Text("Frame Time (ms)")
		imgui.PlotLinesFloatPtr("##frametime", &history.samples[0], int32(len(history.samples)))

		if imgui.TreeNodeStr("Archetypes") {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("ID")
				imgui.TableSetupColumn("Components")
				imgui.TableSetupColumn("Entities")
				imgui.TableHeadersRow()

				for _, arch := range stats.ArchetypeBreakdown {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("0x%X", arch.ID))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprint(arch.ComponentTypes))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
				}
				imgui.EndTable()
			}
			imgui.TreePop()
		}

		if imgui.TreeNodeStr("Singletons") {
			for _, name := range stats.SingletonTypes {
				imgui.BulletText(name)
			}
			imgui.TreePop()
		}

		imgui.End()
	}
}

// FrameTimer measures wall time between calls.
type FrameTimer struct {
	last time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

func (ft *FrameTimer) Tick() time.Duration {
	now := time.Now()
	dt := now.Sub(ft.last)
	ft.last = now
	return dt
}
