package systems

import (
	"testing"

	"github.com/pthm-cable/antfarm/components"
)

func TestAStarSimplePath(t *testing.T) {
	grid := NewNavGridFromObstacles(200, 200, nil, 8)
	planner := NewAStarPlanner(grid)

	path, ok := planner.ComputePath(components.Position{X: 10, Y: 10}, components.Position{X: 180, Y: 10})
	if !ok {
		t.Fatal("expected a path on an empty grid")
	}
	// Straight line simplifies to the two endpoints
	if len(path) != 2 {
		t.Errorf("path has %d waypoints, want 2", len(path))
	}
}

func TestAStarAroundObstacle(t *testing.T) {
	obstacles := []components.Obstacle{
		{Position: components.Position{X: 100, Y: 100}, Size: 40},
	}
	grid := NewNavGridFromObstacles(200, 200, obstacles, 8)
	planner := NewAStarPlanner(grid)

	if !grid.IsBlockedWorld(100, 100) {
		t.Fatal("obstacle centre should be blocked")
	}

	path := planner.FindPath(20, 100, 180, 100)
	if path == nil {
		t.Fatal("expected a path around the obstacle")
	}
	if len(path) < 3 {
		t.Errorf("path has %d waypoints, want a detour", len(path))
	}
	for i, p := range path {
		if grid.IsBlockedWorld(p.X, p.Y) {
			t.Errorf("waypoint %d at %v is blocked", i, p)
		}
	}
}

func TestAStarNoPath(t *testing.T) {
	// A wall of obstacles across the full height
	var obstacles []components.Obstacle
	for y := float32(0); y <= 200; y += 10 {
		obstacles = append(obstacles, components.Obstacle{Position: components.Position{X: 100, Y: y}, Size: 20})
	}
	grid := NewNavGridFromObstacles(200, 200, obstacles, 8)
	planner := NewAStarPlanner(grid)

	if _, ok := planner.ComputePath(components.Position{X: 20, Y: 100}, components.Position{X: 180, Y: 100}); ok {
		t.Error("found a path through a solid wall")
	}
}

func TestNavGridOutOfBoundsBlocked(t *testing.T) {
	grid := NewNavGridFromObstacles(80, 80, nil, 8)
	w, h := grid.Size()
	if w != 10 || h != 10 {
		t.Fatalf("size = %dx%d, want 10x10", w, h)
	}
	if !grid.IsBlocked(-1, 0) || !grid.IsBlocked(0, 10) {
		t.Error("cells outside the grid should be blocked")
	}
	if grid.IsBlocked(0, 0) {
		t.Error("empty grid cell blocked")
	}
}
