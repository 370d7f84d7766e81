package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/frontend/window"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file. Edits are applied while running.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed. Zero keeps the config value.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Uint64()
	}
	if *debug {
		cfg.DebugUI = true
	}

	opts, err := driver.OptionsFromConfig(cfg)
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var updates <-chan config.Config
	if *configPath != "" {
		updates, err = config.Watch(ctx, *configPath, log.Default())
		if err != nil {
			log.Printf("Config reload disabled: %v", err)
		}
	}

	log.Printf("Starting blockfall %dx%d seed=%d randomizer=%s", cfg.Width, cfg.Height, cfg.Seed, cfg.Randomizer)
	d := driver.New(opts)
	w := window.New(d, window.Options{
		CellSize: cfg.CellSize,
		Debug:    cfg.DebugUI,
		Configs:  updates,
	})
	if err := w.Run(); err != nil {
		log.Fatalf("Window failed: %v", err)
	}

	stats := d.Game().Stats()
	log.Printf("Bye: score=%d lines=%d pieces=%d", stats.Score, stats.Lines, stats.Pieces)
}
