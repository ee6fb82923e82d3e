// Command antterm runs the ant colony in a terminal.
//
// Click to place under the current mode, n/f/o switch between nests, food and
// obstacles, space pauses, + and - change the speed, q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	steps := flag.Int("steps", 2, "Simulation ticks per frame")
	fps := flag.Int("fps", 30, "Frames per second")
	scenario := flag.Bool("scenario", false, "Place the config scenario at startup")
	mute := flag.Bool("mute", false, "Disable the delivery sound")
	logPath := flag.String("log", "", "Write JSON logs to this file (empty = discard)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// The terminal belongs to the screen, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	s := sim.New(cfg, rngSeed)
	if *scenario {
		if err := s.ApplyScenario(cfg.Scenario); err != nil {
			fmt.Fprintf(os.Stderr, "failed to apply scenario: %v\n", err)
			os.Exit(1)
		}
	}

	v, err := newViewer(s, *steps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open terminal: %v\n", err)
		os.Exit(1)
	}

	if !*mute {
		if err := v.initAudio(); err != nil {
			// Non-fatal, the viewer runs silently
			slog.Warn("audio initialization failed", "error", err)
		}
	}

	frame := time.Second / time.Duration(max(*fps, 1))
	v.run(frame)
	v.cleanup()
}
