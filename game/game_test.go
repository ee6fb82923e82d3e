package game

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/ui"
)

func init() {
	config.MustInit("")
}

func TestHeadlessScenarioRun(t *testing.T) {
	cfg := config.Cfg()
	saved := cfg.Scenario
	defer func() { cfg.Scenario = saved }()

	cfg.Scenario = config.ScenarioConfig{
		Nests: []config.PointConfig{{X: 100, Y: 100}},
		Food:  []config.PointConfig{{X: 110, Y: 100}},
	}

	dir := t.TempDir()
	g, err := NewGameWithOptions(Options{
		Seed:           7,
		Headless:       true,
		OutputDir:      dir,
		StepsPerUpdate: 50,
		Scenario:       true,
		Trace:          true,
	})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}

	window := int(cfg.Telemetry.StatsWindowTicks)
	for int(g.Tick()) < window {
		g.UpdateHeadless()
	}
	g.Unload()

	if g.foodStored() == 0 {
		t.Error("no food delivered in a full stats window")
	}
	if g.lastStats.WindowEndTick == 0 {
		t.Error("stats window never flushed")
	}

	for _, name := range []string{"telemetry.csv", "perf.csv", "config.yaml", "ants.jsonl.zst"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestModeFromIndex(t *testing.T) {
	for i, label := range modeLabels {
		if got := modeFromIndex(i); int(got) != i {
			t.Errorf("%s -> %v", label, got)
		}
	}
}

func newTestViewerGame(width, height float32) *Game {
	g := &Game{
		screenWidth:  width,
		screenHeight: height,
		overlays:     ui.NewOverlayRegistry(),
		modeBar:      ui.NewModeBar(0, 0, modeLabels...),
		overlayPanel: ui.NewOverlayPanel(0, 0, panelWidth),
		statsPanel:   ui.NewStatsPanel(0, 0, panelWidth),
	}
	g.layoutPanels()
	return g
}

func TestClicksOnPanelsDoNotPlace(t *testing.T) {
	g := newTestViewerGame(800, 600)

	top := float32(g.modeBar.Height()) + 10
	overlayBottom := top + float32(g.overlayPanel.Height(g.overlays))
	panelX := float32(800 - panelWidth - 10)
	statsY := overlayBottom + 20

	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"mode bar", 10, 10, true},
		{"overlay panel", panelX + 20, top + 20, true},
		{"open world", 300, 400, false},
		{"hidden stats panel", panelX + 20, statsY, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.overUI(tt.x, tt.y); got != tt.want {
				t.Errorf("overUI(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	g.overlays.SetEnabled(ui.OverlayStats, true)
	if !g.overUI(panelX+20, statsY) {
		t.Error("click on the visible stats panel would place an entity")
	}
}

func TestPanelsFollowResize(t *testing.T) {
	g := newTestViewerGame(800, 600)
	top := float32(g.modeBar.Height()) + 20

	if !g.overUI(700, top) {
		t.Fatal("overlay panel not at the right edge")
	}

	g.screenWidth = 1200
	g.layoutPanels()

	if g.overUI(700, top) {
		t.Error("overlay panel stayed at its old position")
	}
	if !g.overUI(1100, top) {
		t.Error("overlay panel not at the new right edge")
	}
}

func TestTraceWithoutOutputDirWarns(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	g, err := NewGameWithOptions(Options{Seed: 1, Headless: true, Trace: true})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	if g.outputManager.TraceEnabled() {
		t.Error("trace enabled without an output directory")
	}
	if !strings.Contains(buf.String(), `"level":"WARN"`) || !strings.Contains(buf.String(), "no trace will be written") {
		t.Errorf("missing trace warning in log output:\n%s", buf.String())
	}
}
