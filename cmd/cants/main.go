// Command cants runs the ant colony game in the terminal
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/cants/audio"
	"github.com/lixenwraith/cants/config"
	"github.com/lixenwraith/cants/constants"
	"github.com/lixenwraith/cants/core"
	"github.com/lixenwraith/cants/engine"
	"github.com/lixenwraith/cants/status"
)

var (
	configFlag = flag.String("config", "", "YAML config file")
	debugFlag  = flag.Bool("debug", false, "Log to logs/cants.log and enable cheat keys (n: spawn ant, f: add food)")
	seedFlag   = flag.Int64("seed", 0, "Random seed, 0 seeds from the clock")
	muteFlag   = flag.Bool("mute", false, "Disable sound")
	mapsFlag   = flag.String("maps", "", "Directory listed by the map chooser")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: cants [flags] [map-file]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	os.Exit(run())
}

// run returns the process exit code
func run() int {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cants: %v\n", err)
		return 1
	}
	applyFlags(&cfg)

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("cants: seed %d, tick %s, levels %v", seed, cfg.Tick(), cfg.LevelTable)

	sim := engine.New(engine.Options{
		TickInterval: cfg.Tick(),
		LevelTable:   cfg.LevelTable,
		TilesPerFood: cfg.TilesPerFood,
		MaxNpcs:      cfg.MaxNpcs,
		Seed:         seed,
		Clock:        core.SystemClock{},
	}, status.NewRegistry())
	defer sim.Stop()

	sound := audio.NewSoundManager(cfg.Volume, cfg.Mute)
	if err := sound.Initialize(); err != nil {
		log.Printf("cants: audio unavailable: %v", err)
	}
	defer sound.Cleanup()
	sim.Register(audio.NewHandler(sound))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cants: terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "cants: terminal: %v\n", err)
		return 1
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()
	core.SetCrashCleanup(fini)

	a := newApp(screen, sim, sound, core.SystemClock{}, cfg.MapsDir, cfg.Debug)
	if path := flag.Arg(0); path != "" {
		if err := a.loadMap(path); err != nil {
			fini()
			fmt.Fprintf(os.Stderr, "cants: %v\n", err)
			return 1
		}
	}

	if err := loop(a, fini); err != nil {
		fini()
		fmt.Fprintf(os.Stderr, "cants: %v\n", err)
		return 1
	}
	return 0
}

// applyFlags overrides config values with flags given on the command line
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debugFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "mute":
			cfg.Mute = *muteFlag
		case "maps":
			cfg.MapsDir = *mapsFlag
		}
	})
}

// loop runs terminal polling and the frame loop until the player quits
// Finalizing the screen unblocks PollEvent, which ends the poller
func loop(a *app, fini func()) error {
	g, ctx := errgroup.WithContext(context.Background())
	evCh := make(chan tcell.Event, 256)

	g.Go(func() error {
		defer recoverCrash()
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case evCh <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer recoverCrash()
		defer fini()
		ticker := time.NewTicker(constants.FrameUpdateInterval)
		defer ticker.Stop()

		a.frame()
		for {
			select {
			case ev := <-evCh:
				if a.handleEvent(ev) {
					log.Printf("cants: quit")
					return nil
				}
			case <-ticker.C:
				a.frame()
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	return g.Wait()
}

func recoverCrash() {
	if r := recover(); r != nil {
		core.HandleCrash(r)
	}
}
