package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
)

// ForagingParams holds the state machine constants, cached from config for the hot path.
type ForagingParams struct {
	FoodRadius   float32 // Nearest-food search radius
	ArriveRadius float32 // Arrival distance at food and nest
	Lookahead    float32 // Obstacle look-ahead length along velocity
	SampleRadius float32 // Trail sample ring radius
	Directions   int     // Trail sample count over 360 degrees
	Jitter       float32 // Full width of the random walk perturbation
	TurnAngle    float64 // Avoidance turn in radians
}

// ForagingParamsFromConfig extracts the foraging constants from cfg.
func ForagingParamsFromConfig(cfg *config.Config) ForagingParams {
	return ForagingParams{
		FoodRadius:   float32(cfg.Sensing.FoodRadius),
		ArriveRadius: float32(cfg.Sensing.ArriveRadius),
		Lookahead:    float32(cfg.Sensing.ObstacleLookahead),
		SampleRadius: float32(cfg.Trail.SampleRadius),
		Directions:   cfg.Trail.Directions,
		Jitter:       float32(cfg.Walk.Jitter),
		TurnAngle:    cfg.Derived.TurnAngleRad,
	}
}

// Outcome flags what happened to an ant during one step.
type Outcome uint8

const (
	OutcomeCaptured      Outcome = 1 << iota // Searching -> CarryingFood at a food source
	OutcomeDelivered                         // CarryingFood -> Searching at its own nest
	OutcomeAvoided                           // Turned away from an obstacle
	OutcomeTrailFallback                     // No pheromone around, walked randomly instead
)

// Has reports whether flag is set.
func (o Outcome) Has(flag Outcome) bool {
	return o&flag != 0
}

// StepResult describes one ant step.
type StepResult struct {
	Outcome Outcome
	Food    int // Captured food source index, -1 if none
}

// ForagingEvents aggregates step results over one Update.
type ForagingEvents struct {
	Captures       int
	Deliveries     int
	Avoidances     int
	TrailFallbacks int
	Depleted       []int // Food sources that reached zero this update
}

// trailDir is a precomputed unit vector of the trail sample ring.
type trailDir struct {
	X, Y float32
}

// ForagingSystem runs the per-tick ant state machine.
// It reads and writes the shared Environment and PheromoneField.
type ForagingSystem struct {
	filter *ecs.Filter3[components.Position, components.Velocity, components.Ant]
	params ForagingParams
	env    *Environment
	field  *PheromoneField
	rng    *rand.Rand

	dirs    []trailDir
	weights []float64
}

// NewForagingSystem creates a new foraging system.
func NewForagingSystem(w *ecs.World, params ForagingParams, env *Environment, field *PheromoneField, rng *rand.Rand) *ForagingSystem {
	n := params.Directions
	dirs := make([]trailDir, n)
	for i := range dirs {
		angle := float64(i) * 2 * math.Pi / float64(n)
		dirs[i] = trailDir{X: float32(math.Cos(angle)), Y: float32(math.Sin(angle))}
	}
	return &ForagingSystem{
		filter:  ecs.NewFilter3[components.Position, components.Velocity, components.Ant](w),
		params:  params,
		env:     env,
		field:   field,
		rng:     rng,
		dirs:    dirs,
		weights: make([]float64, n),
	}
}

// Update steps every ant once, in stable ECS iteration order.
func (s *ForagingSystem) Update() ForagingEvents {
	var events ForagingEvents

	query := s.filter.Query()
	for query.Next() {
		pos, vel, ant := query.Get()
		res := s.Step(pos, vel, ant)

		if res.Outcome.Has(OutcomeCaptured) {
			events.Captures++
			if s.env.Food[res.Food].Depleted() {
				events.Depleted = append(events.Depleted, res.Food)
			}
		}
		if res.Outcome.Has(OutcomeDelivered) {
			events.Deliveries++
		}
		if res.Outcome.Has(OutcomeAvoided) {
			events.Avoidances++
		}
		if res.Outcome.Has(OutcomeTrailFallback) {
			events.TrailFallbacks++
		}
	}

	return events
}

// Step runs one state machine step for a single ant, then deposits pheromone at
// the new position and reflects velocity at the surface edges.
func (s *ForagingSystem) Step(pos *components.Position, vel *components.Velocity, ant *components.Ant) StepResult {
	res := StepResult{Food: -1}

	switch ant.State {
	case components.StateSearching:
		s.stepSearching(pos, vel, ant, &res)
	case components.StateCarryingFood:
		s.stepCarrying(pos, vel, ant, &res)
	}

	s.field.Deposit(*pos)
	s.checkBounds(pos, vel, ant.Speed)

	return res
}

func (s *ForagingSystem) stepSearching(pos *components.Position, vel *components.Velocity, ant *components.Ant, res *StepResult) {
	food := s.env.NearestFood(*pos, s.params.FoodRadius)
	if food < 0 {
		if !s.followTrail(pos, vel, ant.Speed) {
			res.Outcome |= OutcomeTrailFallback
		}
		s.randomWalk(pos, vel, ant.Speed)
		return
	}

	target := s.env.Food[food].Position
	s.moveTowards(pos, vel, target, ant.Speed)
	if within(*pos, target, s.params.ArriveRadius) && s.env.TakeFood(food) {
		ant.State = components.StateCarryingFood
		res.Outcome |= OutcomeCaptured
		res.Food = food
	}
}

func (s *ForagingSystem) stepCarrying(pos *components.Position, vel *components.Velocity, ant *components.Ant, res *StepResult) {
	nest := &s.env.Nests[ant.Nest]

	avoided := false
	if s.env.ObstacleAhead(*pos, *vel, s.params.Lookahead) {
		avoided = s.avoidObstacle(pos, vel, ant.Speed)
	}
	if avoided {
		res.Outcome |= OutcomeAvoided
	} else {
		s.moveTowards(pos, vel, nest.Position, ant.Speed)
	}

	if within(*pos, nest.Position, s.params.ArriveRadius) {
		nest.DepositFood()
		ant.State = components.StateSearching
		res.Outcome |= OutcomeDelivered
	}
}

// moveTowards points velocity at target and takes one step.
// An ant already exactly on target does not steer.
func (s *ForagingSystem) moveTowards(pos *components.Position, vel *components.Velocity, target components.Position, speed float32) {
	ux, uy, ok := normalize(target.X-pos.X, target.Y-pos.Y)
	if !ok {
		return
	}
	vel.X, vel.Y = ux, uy
	pos.X += ux * speed
	pos.Y += uy * speed
}

// followTrail samples the pheromone ring and steps in a direction drawn with
// probability proportional to its concentration. Velocity is left untouched.
// With no pheromone in reach it random-walks instead and returns false.
func (s *ForagingSystem) followTrail(pos *components.Position, vel *components.Velocity, speed float32) bool {
	var total float64
	r := s.params.SampleRadius
	for i, d := range s.dirs {
		c := s.field.ConcentrationAt(components.Position{X: pos.X + d.X*r, Y: pos.Y + d.Y*r})
		s.weights[i] = c
		total += c
	}

	if total > 0 {
		draw := s.rng.Float64() * total
		var cumulative float64
		for i, w := range s.weights {
			cumulative += w
			if cumulative > draw {
				pos.X += s.dirs[i].X * speed
				pos.Y += s.dirs[i].Y * speed
				return true
			}
		}
	}

	s.randomWalk(pos, vel, speed)
	return false
}

// randomWalk perturbs velocity by a small uniform amount and steps along it.
// The velocity is not renormalized, so perturbations accumulate tick over tick.
func (s *ForagingSystem) randomWalk(pos *components.Position, vel *components.Velocity, speed float32) {
	vel.X += (s.rng.Float32() - 0.5) * s.params.Jitter
	vel.Y += (s.rng.Float32() - 0.5) * s.params.Jitter
	pos.X += vel.X * speed
	pos.Y += vel.Y * speed
	s.checkBounds(pos, vel, speed)
}

// avoidObstacle turns velocity by the avoidance angle, left or right at random,
// and steps along the new unit heading. Returns false if velocity is zero and
// no heading can be derived.
func (s *ForagingSystem) avoidObstacle(pos *components.Position, vel *components.Velocity, speed float32) bool {
	angle := s.params.TurnAngle
	if s.rng.Float64() >= 0.5 {
		angle = -angle
	}
	rx, ry := rotate(vel.X, vel.Y, angle)
	ux, uy, ok := normalize(rx, ry)
	if !ok {
		return false
	}
	vel.X, vel.Y = ux, uy
	pos.X += ux * speed
	pos.Y += uy * speed
	return true
}

// checkBounds flips each velocity axis whose next step would leave the surface
// while still heading outward. Position is not clamped, so an ant can sit up to
// one step outside the edge before the reflected velocity brings it back.
func (s *ForagingSystem) checkBounds(pos *components.Position, vel *components.Velocity, speed float32) {
	nextX := pos.X + vel.X*speed
	if (nextX < 0 && vel.X < 0) || (nextX > s.env.Width() && vel.X > 0) {
		vel.X = -vel.X
	}
	nextY := pos.Y + vel.Y*speed
	if (nextY < 0 && vel.Y < 0) || (nextY > s.env.Height() && vel.Y > 0) {
		vel.Y = -vel.Y
	}
}
