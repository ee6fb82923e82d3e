package game

import (
	"github.com/pthm-cable/antfarm/renderer"
	"github.com/pthm-cable/antfarm/sim"
)

// drawPaths draws the planned A* path from each nest to its nearest food.
// Debug only: ants never follow these paths.
func (g *Game) drawPaths() {
	planner := g.sim.Planner()
	food := g.sim.FoodSources()

	for _, n := range g.sim.Nests() {
		target := g.sim.NearestFood(n.Position)
		if target < 0 {
			continue
		}
		path, ok := planner.ComputePath(n.Position, food[target].Position)
		if !ok {
			continue
		}
		renderer.DrawPath(path, g.camera)
	}
}

func (g *Game) drawNavGrid() {
	renderer.DrawNavGrid(g.sim.NavGrid(), g.camera)
}

// modeFromIndex maps a mode bar button to its placement mode.
func modeFromIndex(i int) sim.PlacementMode {
	return sim.PlacementMode(i)
}
