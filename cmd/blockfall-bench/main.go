package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/tetris"
)

// pressKeys are the inputs a bench player picks from. Escape is left out so
// games run until they end.
var pressKeys = []tetris.Key{tetris.KeyUp, tetris.KeyDown, tetris.KeyLeft, tetris.KeyRight, tetris.KeySpace}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the benchmark should run for.")
	boards := flag.Int("boards", 16, "Number of games played side by side.")
	seed := flag.Uint64("seed", 1, "Seed for pieces and input.")
	keyRate := flag.Float64("key-rate", 0.3, "Chance of a key press per board per frame.")
	tick := flag.Duration("tick", 50*time.Millisecond, "Gravity interval of every board.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting blockfall benchmark...")

	rng := rand.New(rand.NewPCG(*seed, *seed))
	drivers := make([]*driver.Driver, *boards)
	totals := make([]GameTotals, *boards)
	for i := range drivers {
		gen := tetris.NewBagGenerator(rand.New(rand.NewPCG(*seed, uint64(i))))
		d := driver.New(driver.Options{
			TickInterval: *tick,
			Generator:    gen,
			Logger:       log.New(io.Discard, "", 0),
		})
		d.OnEvent("totals", totals[i].Handle)
		drivers[i] = d
	}

	report := &Report{
		Duration:       *duration,
		Boards:         *boards,
		KeyRate:        *keyRate,
		Tick:           *tick,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d boards for %s...\n", *boards, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	const dt = 1.0 / 60.0
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		for _, d := range drivers {
			if !d.Running() {
				d.Press(tetris.KeyEscape)
			} else if rng.Float64() < *keyRate {
				d.Press(pressKeys[rng.IntN(len(pressKeys))])
			}
			d.Frame(dt)
		}
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	for _, t := range totals {
		report.Totals.Add(t)
	}
	report.Systems = MergeSystemStats(drivers)

	log.Println("Benchmark finished.")

	fmt.Println("\n\n--- Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
