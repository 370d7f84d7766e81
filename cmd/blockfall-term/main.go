package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/driver"
	"github.com/plus3/blockfall/frontend/term"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file. Edits are applied while running.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed. Zero keeps the config value.")
	mute := flag.Bool("mute", false, "Disable sound.")
	logPath := flag.String("log", "", "Write logs to this file. The terminal is in use, so logs are dropped by default.")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

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

	var sounds *term.Sounds
	if cfg.Sound && !*mute {
		sounds = term.NewSounds()
		if err := sounds.Init(); err != nil {
			// The game still runs without audio.
			log.Printf("Audio initialization failed: %v", err)
		}
		defer sounds.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}

	log.Printf("Starting blockfall %dx%d seed=%d", cfg.Width, cfg.Height, cfg.Seed)
	d := driver.New(opts)
	t := term.New(screen, d, term.Options{Sounds: sounds, Configs: updates})
	err = t.Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Terminal failed: %v", err)
	}

	stats := d.Game().Stats()
	log.Printf("Bye: score=%d lines=%d pieces=%d", stats.Score, stats.Lines, stats.Pieces)
}
