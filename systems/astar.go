package systems

import (
	"container/heap"
	"math"

	"github.com/pthm-cable/antfarm/components"
)

// PathFinder computes obstacle-free paths between world positions.
// Optional capability: the foraging state machine never calls it.
type PathFinder interface {
	// ComputePath returns waypoints from start to goal, or false if no path exists.
	ComputePath(start, goal components.Position) ([]components.Position, bool)
}

// AStarPlanner provides A* pathfinding over a NavGrid.
type AStarPlanner struct {
	grid *NavGrid

	// Reusable data structures (cleared between searches)
	openHeap  *nodeHeap
	closedSet map[int]struct{}
	cameFrom  map[int]int
	gScore    map[int]float32
}

var _ PathFinder = (*AStarPlanner)(nil)

// astarNode is a node in the A* search.
type astarNode struct {
	gx, gy int     // Grid coordinates
	f      float32 // f = g + h (priority)
	index  int     // Heap index
}

// nodeHeap implements heap.Interface for A* open set.
type nodeHeap []*astarNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// NewAStarPlanner creates an A* planner over grid.
func NewAStarPlanner(grid *NavGrid) *AStarPlanner {
	return &AStarPlanner{
		grid:      grid,
		openHeap:  &nodeHeap{},
		closedSet: make(map[int]struct{}, 256),
		cameFrom:  make(map[int]int, 256),
		gScore:    make(map[int]float32, 256),
	}
}

// Grid returns the navigation grid the planner searches.
func (a *AStarPlanner) Grid() *NavGrid {
	return a.grid
}

// ComputePath implements PathFinder.
func (a *AStarPlanner) ComputePath(start, goal components.Position) ([]components.Position, bool) {
	path := a.FindPath(start.X, start.Y, goal.X, goal.Y)
	return path, path != nil
}

// FindPath computes a path from start to goal using A*.
// Returns waypoints in world coordinates, or nil if no path found.
func (a *AStarPlanner) FindPath(startX, startY, goalX, goalY float32) []components.Position {
	grid := a.grid

	startGX, startGY := grid.WorldToGrid(startX, startY)
	goalGX, goalGY := grid.WorldToGrid(goalX, goalY)

	if grid.IsBlocked(startGX, startGY) {
		startGX, startGY = a.findNearestOpen(startGX, startGY)
		if startGX < 0 {
			return nil
		}
	}
	if grid.IsBlocked(goalGX, goalGY) {
		goalGX, goalGY = a.findNearestOpen(goalGX, goalGY)
		if goalGX < 0 {
			return nil
		}
	}

	// Same cell - no path needed
	if startGX == goalGX && startGY == goalGY {
		x, y := grid.GridToWorld(goalGX, goalGY)
		return []components.Position{{X: x, Y: y}}
	}

	*a.openHeap = (*a.openHeap)[:0]
	clear(a.closedSet)
	clear(a.cameFrom)
	clear(a.gScore)

	startID := startGY*grid.width + startGX
	goalID := goalGY*grid.width + goalGX

	a.gScore[startID] = 0
	heap.Push(a.openHeap, &astarNode{gx: startGX, gy: startGY, f: a.heuristic(startGX, startGY, goalGX, goalGY)})

	maxIterations := grid.width * grid.height
	iterations := 0

	for a.openHeap.Len() > 0 && iterations < maxIterations {
		iterations++

		current := heap.Pop(a.openHeap).(*astarNode)
		currentID := current.gy*grid.width + current.gx

		if currentID == goalID {
			return a.reconstructPath(startID, goalID)
		}

		// Stale heap entry for an already expanded cell
		if _, ok := a.closedSet[currentID]; ok {
			continue
		}
		a.closedSet[currentID] = struct{}{}

		// 8-connected neighbors, cardinals first
		neighbors := [8][2]int{
			{current.gx - 1, current.gy},
			{current.gx + 1, current.gy},
			{current.gx, current.gy - 1},
			{current.gx, current.gy + 1},
			{current.gx - 1, current.gy - 1},
			{current.gx + 1, current.gy - 1},
			{current.gx - 1, current.gy + 1},
			{current.gx + 1, current.gy + 1},
		}

		for i, n := range neighbors {
			ngx, ngy := n[0], n[1]
			if grid.IsBlocked(ngx, ngy) {
				continue
			}

			// No corner cutting on diagonals
			if i >= 4 {
				dx := ngx - current.gx
				dy := ngy - current.gy
				if grid.IsBlocked(current.gx+dx, current.gy) || grid.IsBlocked(current.gx, current.gy+dy) {
					continue
				}
			}

			neighborID := ngy*grid.width + ngx
			if _, ok := a.closedSet[neighborID]; ok {
				continue
			}

			moveCost := float32(1.0)
			if i >= 4 {
				moveCost = math.Sqrt2
			}
			tentativeG := a.gScore[currentID] + moveCost

			existingG, exists := a.gScore[neighborID]
			if exists && tentativeG >= existingG {
				continue
			}

			a.cameFrom[neighborID] = currentID
			a.gScore[neighborID] = tentativeG
			heap.Push(a.openHeap, &astarNode{
				gx: ngx,
				gy: ngy,
				f:  tentativeG + a.heuristic(ngx, ngy, goalGX, goalGY),
			})
		}
	}

	return nil
}

// heuristic computes the Euclidean distance heuristic for A*.
func (a *AStarPlanner) heuristic(gx1, gy1, gx2, gy2 int) float32 {
	dx := float32(gx2 - gx1)
	dy := float32(gy2 - gy1)
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// reconstructPath builds the path from cameFrom map.
func (a *AStarPlanner) reconstructPath(startID, goalID int) []components.Position {
	grid := a.grid

	var pathIDs []int
	current := goalID
	for current != startID {
		pathIDs = append(pathIDs, current)
		var ok bool
		current, ok = a.cameFrom[current]
		if !ok {
			break
		}
	}
	pathIDs = append(pathIDs, startID)

	path := make([]components.Position, len(pathIDs))
	for i := 0; i < len(pathIDs); i++ {
		id := pathIDs[len(pathIDs)-1-i]
		x, y := grid.GridToWorld(id%grid.width, id/grid.width)
		path[i] = components.Position{X: x, Y: y}
	}

	return a.simplifyPath(path)
}

// simplifyPath drops waypoints the neighbours can see past.
func (a *AStarPlanner) simplifyPath(path []components.Position) []components.Position {
	if len(path) <= 2 {
		return path
	}

	simplified := make([]components.Position, 0, len(path))
	simplified = append(simplified, path[0])

	for i := 1; i < len(path)-1; i++ {
		anchor := simplified[len(simplified)-1]
		next := path[i+1]
		if !a.hasLineOfSight(anchor.X, anchor.Y, next.X, next.Y) {
			simplified = append(simplified, path[i])
		}
	}

	simplified = append(simplified, path[len(path)-1])
	return simplified
}

// hasLineOfSight checks if there's a clear line between two points on the nav grid.
func (a *AStarPlanner) hasLineOfSight(x1, y1, x2, y2 float32) bool {
	dist := distance(x1, y1, x2, y2)
	if dist < 0.01 {
		return true
	}

	stepSize := a.grid.cellSize * 0.5
	steps := int(dist/stepSize) + 1
	dx := (x2 - x1) / dist
	dy := (y2 - y1) / dist

	for i := 0; i <= steps; i++ {
		t := float32(i) * stepSize
		if t > dist {
			t = dist
		}
		if a.grid.IsBlockedWorld(x1+dx*t, y1+dy*t) {
			return false
		}
	}

	return true
}

// findNearestOpen finds the nearest unblocked cell to the given cell.
// Returns (-1, -1) if no open cell found within search radius.
func (a *AStarPlanner) findNearestOpen(gx, gy int) (int, int) {
	for radius := 1; radius < 10; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				// Only check cells on the current ring
				if abs(dx) != radius && abs(dy) != radius {
					continue
				}
				if !a.grid.IsBlocked(gx+dx, gy+dy) {
					return gx + dx, gy + dy
				}
			}
		}
	}
	return -1, -1
}
