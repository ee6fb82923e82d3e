package systems

import "github.com/pthm-cable/antfarm/components"

// Environment owns the placed food sources, obstacles and nests.
// Ants live in the ECS world and refer to nests by index, so nests are never removed.
type Environment struct {
	Food      []components.FoodSource
	Obstacles []components.Obstacle
	Nests     []components.Nest

	width, height float32
}

// NewEnvironment creates an empty environment for a width x height surface.
func NewEnvironment(width, height float32) *Environment {
	return &Environment{width: width, height: height}
}

// Width returns the surface width.
func (e *Environment) Width() float32 { return e.width }

// Height returns the surface height.
func (e *Environment) Height() float32 { return e.height }

// InBounds reports whether pos lies on the surface, edges included.
func (e *Environment) InBounds(pos components.Position) bool {
	return pos.X >= 0 && pos.X <= e.width && pos.Y >= 0 && pos.Y <= e.height
}

// AddFood places a food source and returns its index.
func (e *Environment) AddFood(pos components.Position, amount int) int {
	if amount < 0 {
		amount = 0
	}
	e.Food = append(e.Food, components.FoodSource{Position: pos, Amount: amount})
	return len(e.Food) - 1
}

// AddObstacle places an obstacle and returns its index.
func (e *Environment) AddObstacle(pos components.Position, size float32) int {
	e.Obstacles = append(e.Obstacles, components.Obstacle{Position: pos, Size: size})
	return len(e.Obstacles) - 1
}

// AddNest places a nest and returns its index.
func (e *Environment) AddNest(pos components.Position) int {
	e.Nests = append(e.Nests, components.Nest{Position: pos})
	return len(e.Nests) - 1
}

// NearestFood returns the index of the closest non-depleted food source strictly
// within radius of pos, or -1. Ties go to the earliest placed source.
func (e *Environment) NearestFood(pos components.Position, radius float32) int {
	nearest := -1
	nearestDist := radius
	for i := range e.Food {
		food := &e.Food[i]
		if food.Depleted() {
			continue
		}
		d := distance(pos.X, pos.Y, food.X, food.Y)
		if d < nearestDist {
			nearest = i
			nearestDist = d
		}
	}
	return nearest
}

// TakeFood removes one unit from food source i.
// Returns false if the source is already depleted.
func (e *Environment) TakeFood(i int) bool {
	food := &e.Food[i]
	if food.Depleted() {
		return false
	}
	food.Amount--
	return true
}

// ObstacleAhead reports whether an obstacle blocks the look-ahead from pos to
// pos + vel*lookahead: either the look-ahead point lies within half an
// obstacle's size, or an obstacle centred in front of the ant is closer than
// half its size to the look-ahead segment. Obstacles at or behind the ant
// only count through the look-ahead point.
func (e *Environment) ObstacleAhead(pos components.Position, vel components.Velocity, lookahead float32) bool {
	endX := pos.X + vel.X*lookahead
	endY := pos.Y + vel.Y*lookahead
	for i := range e.Obstacles {
		o := &e.Obstacles[i]
		r := o.Size / 2
		if distance(endX, endY, o.X, o.Y) < r {
			return true
		}
		if (o.X-pos.X)*vel.X+(o.Y-pos.Y)*vel.Y <= 0 {
			continue
		}
		if segmentPointDistance(pos.X, pos.Y, endX, endY, o.X, o.Y) < r {
			return true
		}
	}
	return false
}

// FoodRemaining returns the total amount left across all sources.
func (e *Environment) FoodRemaining() int {
	total := 0
	for i := range e.Food {
		total += e.Food[i].Amount
	}
	return total
}

// FoodStored returns the total food delivered across all nests.
func (e *Environment) FoodStored() int {
	total := 0
	for i := range e.Nests {
		total += e.Nests[i].FoodStored
	}
	return total
}
