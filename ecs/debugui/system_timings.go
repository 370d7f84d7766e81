package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/ecs"
)

func millis(stat ecs.SystemStats, column int) float64 {
	d := stat.AvgDuration
	switch column {
	case 2:
		d = stat.MinDuration
	case 3:
		d = stat.MaxDuration
	}
	return float64(d.Microseconds()) / 1000.0
}

// SortSystems orders system stats by a table column: 0 name, 1 avg, 2 min,
// 3 max.
func SortSystems(systems []ecs.SystemStats, column int, descending bool) {
	slices.SortStableFunc(systems, func(a, b ecs.SystemStats) int {
		var c int
		if column == 0 {
			c = strings.Compare(a.Name, b.Name)
		} else {
			c = compareFloat(millis(a, column), millis(b, column))
		}
		if descending {
			return -c
		}
		return c
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SystemTimingsWindow lists per-system execution times.
func SystemTimingsWindow(stats func() *ecs.SchedulerStats) func() {
	return func() {
		s := stats()

		imgui.SetNextWindowSizeV(imgui.NewVec2(360, 240), imgui.CondOnce)
		if !imgui.BeginV("System Timings", nil, 0) {
			imgui.End()
			return
		}

		imgui.Text(fmt.Sprintf("Systems: %d  Frames: %d", s.SystemCount, s.TotalExecutions))
		imgui.Separator()

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsSizingFixedFit
		if imgui.BeginTableV("Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Min (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableHeadersRow()

			systems := s.Systems
			if specs := imgui.TableGetSortSpecs(); specs.SpecsCount() > 0 {
				spec := specs.Specs()
				SortSystems(systems, int(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionDescending)
			}

			for _, sys := range systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				for col := 1; col <= 3; col++ {
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%.3f", millis(sys, col)))
				}
			}
			imgui.EndTable()
		}

		imgui.End()
	}
}
