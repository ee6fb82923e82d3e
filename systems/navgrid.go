package systems

import (
	"math"

	"github.com/pthm-cable/antfarm/components"
)

// NavGrid stores a navigation grid for A* pathfinding.
// Cells are marked as blocked (true) or open (false).
type NavGrid struct {
	cells    []bool  // true = blocked
	cellSize float32 // world units per cell
	width    int     // grid width in cells
	height   int     // grid height in cells
}

// NewNavGridFromObstacles creates a navigation grid over a worldW x worldH surface.
// A cell is blocked when its centre is within half an obstacle's size, inflated
// by half a cell diagonal so thin gaps between obstacles are not cut through.
func NewNavGridFromObstacles(worldW, worldH float32, obstacles []components.Obstacle, cellSize float32) *NavGrid {
	w := int(math.Ceil(float64(worldW / cellSize)))
	h := int(math.Ceil(float64(worldH / cellSize)))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	grid := &NavGrid{
		cells:    make([]bool, w*h),
		cellSize: cellSize,
		width:    w,
		height:   h,
	}

	inflation := cellSize * math.Sqrt2 / 2

	for i := range obstacles {
		o := &obstacles[i]
		r := o.Size/2 + inflation

		// Only visit cells in the obstacle's bounding box
		minX, minY := grid.WorldToGrid(o.X-r, o.Y-r)
		maxX, maxY := grid.WorldToGrid(o.X+r, o.Y+r)
		if minX < 0 {
			minX = 0
		}
		if minY < 0 {
			minY = 0
		}
		if maxX >= w {
			maxX = w - 1
		}
		if maxY >= h {
			maxY = h - 1
		}

		for gy := minY; gy <= maxY; gy++ {
			for gx := minX; gx <= maxX; gx++ {
				cx, cy := grid.GridToWorld(gx, gy)
				if distanceSq(cx, cy, o.X, o.Y) < r*r {
					grid.cells[gy*w+gx] = true
				}
			}
		}
	}

	return grid
}

// IsBlocked returns true if the given nav grid cell is blocked.
func (g *NavGrid) IsBlocked(gx, gy int) bool {
	if gx < 0 || gx >= g.width || gy < 0 || gy >= g.height {
		return true // Out of bounds is blocked
	}
	return g.cells[gy*g.width+gx]
}

// IsBlockedWorld returns true if the world position is in a blocked cell.
func (g *NavGrid) IsBlockedWorld(x, y float32) bool {
	gx, gy := g.WorldToGrid(x, y)
	return g.IsBlocked(gx, gy)
}

// WorldToGrid converts world coordinates to nav grid coordinates.
func (g *NavGrid) WorldToGrid(x, y float32) (gx, gy int) {
	gx = int(math.Floor(float64(x / g.cellSize)))
	gy = int(math.Floor(float64(y / g.cellSize)))
	return
}

// GridToWorld converts nav grid coordinates to world coordinates (cell center).
func (g *NavGrid) GridToWorld(gx, gy int) (x, y float32) {
	x = (float32(gx) + 0.5) * g.cellSize
	y = (float32(gy) + 0.5) * g.cellSize
	return
}

// Size returns the grid dimensions in cells.
func (g *NavGrid) Size() (int, int) {
	return g.width, g.height
}

// CellSize returns the world size of one cell.
func (g *NavGrid) CellSize() float32 {
	return g.cellSize
}
