package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/ui"
)

const (
	foodRadius = 5
	nestRadius = 10
	antRadius  = 3
)

var (
	backgroundColor = rl.RayWhite
	worldEdgeColor  = rl.LightGray
	foodColor       = rl.Green
	obstacleColor   = rl.Gray
	nestColor       = rl.Brown
	carryingColor   = rl.Red
	searchingColor  = rl.Black
)

// Draw renders the simulation and UI for one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	g.drawWorldEdge()

	if g.overlays.IsEnabled(ui.OverlayPheromone) {
		field := g.sim.Field()
		_, maxCell, _ := field.Totals()
		w, h := field.GridSize()
		g.pheromone.Update(field.Data(), w, h, maxCell)
		g.pheromone.Draw(g.camera)
	}
	if g.overlays.IsEnabled(ui.OverlayNavGrid) {
		g.drawNavGrid()
	}

	g.drawFood()
	g.drawObstacles()
	g.drawNests()
	g.drawAnts()

	if g.overlays.IsEnabled(ui.OverlayPaths) {
		g.drawPaths()
	}

	g.drawUI()

	rl.EndDrawing()
}

func (g *Game) drawWorldEdge() {
	x0, y0 := g.camera.WorldToScreen(0, 0)
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X:      x0,
		Y:      y0,
		Width:  g.camera.Scale(g.sim.Width()),
		Height: g.camera.Scale(g.sim.Height()),
	}, 1, worldEdgeColor)
}

// drawFood draws every food source that still holds food.
func (g *Game) drawFood() {
	for _, f := range g.sim.FoodSources() {
		if f.Depleted() || !g.camera.IsVisible(f.X, f.Y, foodRadius) {
			continue
		}
		g.drawCircle(f.Position, foodRadius, foodColor)
	}
}

// drawObstacles draws each obstacle as a square of its size centred on it.
func (g *Game) drawObstacles() {
	for _, o := range g.sim.Obstacles() {
		if !g.camera.IsVisible(o.X, o.Y, o.Size) {
			continue
		}
		sx, sy := g.camera.WorldToScreen(o.X-o.Size/2, o.Y-o.Size/2)
		size := g.camera.Scale(o.Size)
		rl.DrawRectangleV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: size, Y: size}, obstacleColor)
	}
}

// drawNests draws each nest with its stored food count.
func (g *Game) drawNests() {
	for _, n := range g.sim.Nests() {
		g.drawCircle(n.Position, nestRadius, nestColor)
		sx, sy := g.camera.WorldToScreen(n.X, n.Y)
		label := fmt.Sprintf("%d", n.FoodStored)
		w := rl.MeasureText(label, 12)
		rl.DrawText(label, int32(sx)-w/2, int32(sy+g.camera.Scale(nestRadius))+2, 12, rl.DarkBrown)
	}
}

// drawAnts draws searching ants black and carrying ants red.
func (g *Game) drawAnts() {
	headings := g.overlays.IsEnabled(ui.OverlayHeadings)

	for _, a := range g.sim.Ants() {
		if !g.camera.IsVisible(a.Position.X, a.Position.Y, antRadius) {
			continue
		}
		c := searchingColor
		if a.State == components.StateCarryingFood {
			c = carryingColor
		}
		g.drawCircle(a.Position, antRadius, c)

		if headings {
			sx, sy := g.camera.WorldToScreen(a.Position.X, a.Position.Y)
			ex, ey := g.camera.WorldToScreen(a.Position.X+a.Velocity.X*8, a.Position.Y+a.Velocity.Y*8)
			rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: ex, Y: ey}, rl.SkyBlue)
		}
	}
}

func (g *Game) drawCircle(pos components.Position, radius float32, c rl.Color) {
	sx, sy := g.camera.WorldToScreen(pos.X, pos.Y)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, g.camera.Scale(radius), c)
}

// drawUI draws the mode bar, HUD and side panels.
func (g *Game) drawUI() {
	if clicked := g.modeBar.Draw(int(g.mode)); clicked >= 0 {
		g.mode = modeFromIndex(clicked)
	}

	counts := g.sim.Counts()
	g.hud.Draw(int32(g.modeBar.Height())+4, ui.HUDData{
		Tick:          g.sim.Tick(),
		Ants:          counts.Total(),
		Carrying:      counts.Carrying,
		FoodRemaining: g.foodRemaining(),
		FoodStored:    g.foodStored(),
		StepsPerFrame: g.stepsPerFrame,
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
		Mode:          g.mode.String(),
	})

	g.overlayPanel.Draw(g.overlays)

	if g.overlays.IsEnabled(ui.OverlayStats) {
		field := g.sim.Field()
		_, maxCell, covered := field.Totals()
		w, h := field.GridSize()
		g.statsPanel.Draw(ui.StatsPanelData{
			Searching:      counts.Searching,
			Carrying:       counts.Carrying,
			FoodRemaining:  g.foodRemaining(),
			FoodInitial:    g.foodPlaced,
			FoodStored:     g.foodStored(),
			PheromoneMax:   maxCell,
			PheromoneCover: float32(covered) / float32(w*h),
			NestDistMean:   g.lastStats.NestDistMean,
			TicksPerSecond: g.sim.Perf().Stats().TicksPerSecond,
		})
	}

	g.hud.DrawControls(int32(g.screenHeight),
		"Click: place | 1-3: mode | Space: pause | ,/.: speed | Arrows/wheel: camera | H P G V S: overlays")
}

func (g *Game) foodRemaining() int {
	total := 0
	for _, f := range g.sim.FoodSources() {
		total += f.Amount
	}
	return total
}

func (g *Game) foodStored() int {
	total := 0
	for _, n := range g.sim.Nests() {
		total += n.FoodStored
	}
	return total
}
