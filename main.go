// Command wisp shows a forest of softly pulsing, drifting wisps.
//
// Usage:
//
//	wisp [flags]
//
// Flags:
//
//	-config <file>   YAML config, reloaded on save
//	-count <n>       number of wisps
//	-style <name>    jellyfish, firefly, orb or random
//	-audio <file>    loop a wav/mp3/flac soundtrack
//	-dialogs         show native dialogs for errors and the O key
//	-record <n>      render n frames headlessly instead of opening a window
//	-out <dir>       output directory for -record
//	-seed <n>        random seed, 0 picks one from the clock
//	-verbose         show the status line
//
// Controls:
//
//	Space   - pause / resume
//	R       - reseed the forest
//	O       - open a soundtrack (with -dialogs)
//	Esc/Q   - quit
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/radialglo/wisp/internal/config"
	"github.com/radialglo/wisp/internal/game"
	"github.com/radialglo/wisp/internal/record"
	"github.com/radialglo/wisp/internal/wisp"
)

var (
	configFlag  = flag.String("config", "", "YAML config file, reloaded when it changes")
	countFlag   = flag.Int("count", config.DefaultCount, "Number of wisps")
	styleFlag   = flag.String("style", config.DefaultStyle, "Wisp style: jellyfish, firefly, orb or random")
	audioFlag   = flag.String("audio", "", "Soundtrack to loop (wav, mp3 or flac)")
	dialogsFlag = flag.Bool("dialogs", false, "Show native dialogs for errors and file picking")
	recordFlag  = flag.Int("record", 0, "Render this many frames headlessly to -out and exit")
	outFlag     = flag.String("out", "frames", "Output directory for -record")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	verboseFlag = flag.Bool("verbose", false, "Show the status line")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	cfg, err := loadConfig()
	if err != nil {
		game.ShowError("Wisp", err, *dialogsFlag)
		os.Exit(1)
	}
	// fail before opening a window or touching the output directory
	if _, err := wisp.ParseStyle(cfg.Style); err != nil {
		game.ShowError("Wisp", err, *dialogsFlag)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if *recordFlag > 0 {
		if err := runRecord(cfg, rng); err != nil {
			log.Printf("Error: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := runWindow(cfg, rng); err != nil {
		game.ShowError("Wisp", err, *dialogsFlag)
		os.Exit(1)
	}
}

// loadConfig reads -config if given, then applies explicitly set flags on top.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return cfg, err
		}
	}

	applyFlags(&cfg)
	return cfg, cfg.Validate()
}

// applyFlags overrides cfg with the flags set on the command line, so they
// keep winning over the file across reloads.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "count":
			cfg.Count = *countFlag
		case "style":
			cfg.Style = *styleFlag
		case "audio":
			cfg.Audio.Path = *audioFlag
		case "verbose":
			cfg.Verbose = *verboseFlag
		}
	})
}

func runRecord(cfg config.Config, rng *rand.Rand) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	n, err := record.Run(ctx, wisp.Options{
		Count:  cfg.Count,
		Style:  cfg.Style,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	}, record.Options{
		Frames: *recordFlag,
		Dir:    *outFlag,
		Prefix: cfg.ID,
	}, rng)
	log.Printf("Wrote %d frames to %s in %v", n, *outFlag, time.Since(start).Round(time.Millisecond))
	return err
}

func runWindow(cfg config.Config, rng *rand.Rand) error {
	g, err := game.NewGame(cfg, rng, *dialogsFlag)
	if err != nil {
		return err
	}
	defer g.Close()

	if *configFlag != "" {
		w, err := config.NewWatcher(*configFlag)
		if err != nil {
			log.Printf("Warning: not watching %s: %v", *configFlag, err)
		} else {
			defer w.Close()
			w.Follow(func(next config.Config) {
				applyFlags(&next)
				g.Reload(next)
			}, g.ReportError)
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.FrameRate)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
