// Package systems provides ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antfarm/components"
)

// Neighbor holds a nearby entity with its squared distance from the query origin.
type Neighbor struct {
	E      ecs.Entity
	DistSq float32
}

// gridEntry is an entity with the position it was inserted at.
type gridEntry struct {
	e    ecs.Entity
	x, y float32
}

// SpatialGrid buckets entities into square cells over a bounded surface.
// Positions outside the surface are clamped into the edge cells.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]gridEntry
}

// NewSpatialGrid creates a spatial grid covering a width x height surface.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]gridEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at pos.
func (g *SpatialGrid) Insert(e ecs.Entity, pos components.Position) {
	col, row := g.cell(pos.X, pos.Y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], gridEntry{e: e, x: pos.X, y: pos.Y})
}

// QueryRadiusInto appends every entity strictly within radius of pos to dst,
// in cell order, and returns the updated slice. Reuse dst across calls.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, pos components.Position, radius float32) []Neighbor {
	minCol, minRow := g.cell(pos.X-radius, pos.Y-radius)
	maxCol, maxRow := g.cell(pos.X+radius, pos.Y+radius)
	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, entry := range g.cells[row*g.cols+col] {
				distSq := distanceSq(pos.X, pos.Y, entry.x, entry.y)
				if distSq < radiusSq {
					dst = append(dst, Neighbor{E: entry.e, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// cell returns the clamped cell coordinates of a world position.
func (g *SpatialGrid) cell(x, y float32) (col, row int) {
	col = int(x / g.cellSize)
	row = int(y / g.cellSize)

	if x < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if y < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
