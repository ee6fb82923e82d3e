package game

import (
	"errors"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/sim"
	"github.com/pthm-cable/antfarm/ui"
)

// Update handles input and advances the simulation by stepsPerFrame ticks.
func (g *Game) Update() {
	g.handleInput()
	g.sim.Perf().RecordFrame()

	if g.paused {
		return
	}
	g.runSteps(g.stepsPerFrame)
}

// UpdateHeadless advances the simulation without any raylib calls.
func (g *Game) UpdateHeadless() {
	g.runSteps(g.stepsPerFrame)
}

func (g *Game) runSteps(n int) {
	for i := 0; i < n; i++ {
		g.sim.Step()
		g.flushTelemetry()
	}
}

// placeAt places an entity under the current mode at a screen position.
func (g *Game) placeAt(sx, sy float32) {
	wx, wy := g.camera.ScreenToWorld(sx, sy)
	idx, err := g.sim.Place(g.mode, wx, wy)
	if errors.Is(err, sim.ErrOutOfBounds) {
		return
	}
	if err != nil {
		slog.Error("placement failed", "mode", g.mode, "error", err)
		return
	}
	if g.mode == sim.ModeFood {
		g.foodPlaced += g.sim.FoodSources()[idx].Amount
	}
}

// handleClick forwards a left click on the world to placement.
func (g *Game) handleClick() {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	m := rl.GetMousePosition()
	if g.overUI(m.X, m.Y) {
		return
	}
	g.placeAt(m.X, m.Y)
}

// overUI reports whether a screen point is on a visible UI panel.
func (g *Game) overUI(x, y float32) bool {
	if g.modeBar.Contains(x, y) || g.overlayPanel.Contains(x, y, g.overlays) {
		return true
	}
	return g.overlays.IsEnabled(ui.OverlayStats) && g.statsPanel.Contains(x, y)
}

// layoutPanels anchors the side panels to the right edge of the screen,
// the stats panel below the overlay panel.
func (g *Game) layoutPanels() {
	x := int32(g.screenWidth) - panelWidth - 10
	top := int32(g.modeBar.Height()) + 10
	g.overlayPanel.SetPosition(x, top)
	g.statsPanel.SetPosition(x, top+g.overlayPanel.Height(g.overlays)+10)
}
