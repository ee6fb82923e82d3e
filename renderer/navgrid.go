package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antfarm/camera"
	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/systems"
)

var (
	blockedCellColor = rl.Color{R: 200, G: 60, B: 60, A: 60}
	pathColor        = rl.Color{R: 30, G: 90, B: 220, A: 255}
)

// DrawNavGrid shades the blocked cells of grid.
func DrawNavGrid(grid *systems.NavGrid, cam *camera.Camera) {
	w, h := grid.Size()
	cellSize := grid.CellSize()
	size := cam.Scale(cellSize)

	for gy := 0; gy < h; gy++ {
		for gx := 0; gx < w; gx++ {
			if !grid.IsBlocked(gx, gy) {
				continue
			}
			sx, sy := cam.WorldToScreen(float32(gx)*cellSize, float32(gy)*cellSize)
			rl.DrawRectangleV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: size, Y: size}, blockedCellColor)
		}
	}
}

// DrawPath draws a waypoint polyline with a dot at each waypoint.
func DrawPath(path []components.Position, cam *camera.Camera) {
	for i, p := range path {
		sx, sy := cam.WorldToScreen(p.X, p.Y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, 3, pathColor)
		if i == 0 {
			continue
		}
		px, py := cam.WorldToScreen(path[i-1].X, path[i-1].Y)
		rl.DrawLineEx(rl.Vector2{X: px, Y: py}, rl.Vector2{X: sx, Y: sy}, 2, pathColor)
	}
}
