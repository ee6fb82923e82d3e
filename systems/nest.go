package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antfarm/components"
)

// NestSystem resolves nest-side deliveries: any carrying ant within reach of a
// nest drops its food there. This runs before ants move, so an ant arriving this
// tick is credited on the next one unless its own arrival check fires first.
type NestSystem struct {
	filter *ecs.Filter2[components.Position, components.Ant]
	posMap *ecs.Map[components.Position]
	antMap *ecs.Map[components.Ant]
	env    *Environment
	reach  float32

	grid      *SpatialGrid
	neighbors []Neighbor
}

// NewNestSystem creates a new nest system.
func NewNestSystem(w *ecs.World, env *Environment, reach float32) *NestSystem {
	return &NestSystem{
		filter: ecs.NewFilter2[components.Position, components.Ant](w),
		posMap: ecs.NewMap[components.Position](w),
		antMap: ecs.NewMap[components.Ant](w),
		env:    env,
		reach:  reach,
		grid:   NewSpatialGrid(env.Width(), env.Height(), max(reach, 1)),
	}
}

// Update lets every nest interact with the carrying ants around it, nests in
// placement order. Returns the number of deliveries.
func (s *NestSystem) Update() int {
	if len(s.env.Nests) == 0 {
		return 0
	}

	// Only carrying ants can deliver
	s.grid.Clear()
	query := s.filter.Query()
	for query.Next() {
		pos, ant := query.Get()
		if ant.State == components.StateCarryingFood {
			s.grid.Insert(query.Entity(), *pos)
		}
	}

	delivered := 0
	for i := range s.env.Nests {
		nest := &s.env.Nests[i]

		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], nest.Position, s.reach)
		for _, n := range s.neighbors {
			if s.Interact(nest, *s.posMap.Get(n.E), s.antMap.Get(n.E)) {
				delivered++
			}
		}
	}
	return delivered
}

// Interact delivers the ant's food to nest if it is carrying and within reach.
// A no-op for ants in any other state.
func (s *NestSystem) Interact(nest *components.Nest, pos components.Position, ant *components.Ant) bool {
	if ant.State != components.StateCarryingFood || !within(pos, nest.Position, s.reach) {
		return false
	}
	nest.DepositFood()
	ant.State = components.StateSearching
	return true
}
