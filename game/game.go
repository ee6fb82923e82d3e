// Package game drives the simulation from the raylib viewer or headless loop.
package game

import (
	"image/color"
	"log/slog"

	"github.com/pthm-cable/antfarm/camera"
	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/renderer"
	"github.com/pthm-cable/antfarm/sim"
	"github.com/pthm-cable/antfarm/telemetry"
	"github.com/pthm-cable/antfarm/ui"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool   // Log window stats via slog
	OutputDir      string // CSV and config output ("" = disabled)
	Headless       bool   // No raylib calls
	StepsPerUpdate int    // Ticks per Update call
	Scenario       bool   // Place the configured scenario at startup
	Trace          bool   // Also write ants.jsonl.zst to OutputDir
}

// panelWidth is the width of the right-hand side panels.
const panelWidth = 180

// modeLabels are the mode bar buttons, indexed by sim.PlacementMode.
var modeLabels = []string{"Place Nests", "Place Food", "Place Obstacles"}

// Game owns a Simulation and everything needed to show and drive it.
type Game struct {
	sim *sim.Simulation
	cfg *config.Config

	// Telemetry
	logStats      bool
	outputManager *telemetry.OutputManager
	lastStats     telemetry.WindowStats
	foodPlaced    int

	// Viewer state
	headless      bool
	paused        bool
	mode          sim.PlacementMode
	stepsPerFrame int

	camera       *camera.Camera
	pheromone    *renderer.PheromoneRenderer
	overlays     *ui.OverlayRegistry
	modeBar      *ui.ModeBar
	overlayPanel *ui.OverlayPanel
	statsPanel   *ui.StatsPanel
	hud          *ui.HUD

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game around a fresh simulation.
// In graphical mode it must be called after the raylib window is created.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		sim:           sim.New(cfg, opts.Seed),
		cfg:           cfg,
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		stepsPerFrame: steps,
		screenWidth:   float32(cfg.Screen.Width),
		screenHeight:  float32(cfg.Screen.Height),
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}
	if opts.Trace && om == nil {
		slog.Warn("trace requested without an output directory, no trace will be written")
	}
	if opts.Trace {
		if err := om.EnableTrace(); err != nil {
			om.Close()
			return nil, err
		}
	}

	if opts.Scenario {
		if err := g.sim.ApplyScenario(cfg.Scenario); err != nil {
			om.Close()
			return nil, err
		}
		g.foodPlaced = len(cfg.Scenario.Food) * cfg.Food.InitialAmount
	}

	if !g.headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight, g.sim.Width(), g.sim.Height())
		g.pheromone = renderer.NewPheromoneRenderer(color.RGBA{R: 120, G: 60, B: 200})
		g.overlays = ui.NewOverlayRegistry()
		g.modeBar = ui.NewModeBar(0, 0, modeLabels...)
		g.hud = ui.NewHUD()
		g.overlayPanel = ui.NewOverlayPanel(0, 0, panelWidth)
		g.statsPanel = ui.NewStatsPanel(0, 0, panelWidth)
		g.layoutPanels()
	}

	slog.Info("game created",
		"seed", opts.Seed,
		"world_w", cfg.Derived.WorldW,
		"world_h", cfg.Derived.WorldH,
		"headless", opts.Headless,
	)

	return g, nil
}

// Sim returns the underlying simulation.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.sim.Tick()
}

// Unload releases GPU resources and closes output files.
func (g *Game) Unload() {
	if g.pheromone != nil {
		g.pheromone.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
