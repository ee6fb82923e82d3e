// Package sim wires the foraging systems into a single steppable simulation.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/systems"
	"github.com/pthm-cable/antfarm/telemetry"
)

// ErrOutOfBounds is returned when a placement lies outside the world.
var ErrOutOfBounds = errors.New("position outside world")

// PlacementMode selects what a click places.
type PlacementMode uint8

const (
	ModeNests PlacementMode = iota
	ModeFood
	ModeObstacles
)

func (m PlacementMode) String() string {
	switch m {
	case ModeNests:
		return "nests"
	case ModeFood:
		return "food"
	case ModeObstacles:
		return "obstacles"
	default:
		return fmt.Sprintf("PlacementMode(%d)", m)
	}
}

// AntView is a read-only copy of one ant's state.
type AntView struct {
	Position components.Position
	Velocity components.Velocity
	State    components.AntState
	Nest     int
}

// Counts holds the number of ants in each state.
type Counts struct {
	Searching int
	Carrying  int
}

// Total returns the number of ants.
func (c Counts) Total() int {
	return c.Searching + c.Carrying
}

// StepEvents summarizes what happened during one Step.
type StepEvents struct {
	Captures       int
	AntDeliveries  int // Ant reached its own nest
	NestDeliveries int // Nest picked up food from a nearby ant
	Avoidances     int
	Depleted       []int // Food sources that ran out this tick
}

// Deliveries returns the food delivered through either path.
func (e StepEvents) Deliveries() int {
	return e.AntDeliveries + e.NestDeliveries
}

// Simulation holds the complete simulation state: ants in an ECS world, the
// placed environment and the pheromone field, plus the clock that steps them.
type Simulation struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	antMapper *ecs.Map3[components.Position, components.Velocity, components.Ant]
	antFilter *ecs.Filter3[components.Position, components.Velocity, components.Ant]

	env   *systems.Environment
	field *systems.PheromoneField

	foraging *systems.ForagingSystem
	nests    *systems.NestSystem

	// Built lazily, invalidated when an obstacle is placed
	planner *systems.AStarPlanner

	collector  *telemetry.Collector
	perf       *telemetry.PerfCollector
	pending    telemetry.WindowStats
	hasPending bool

	tick    int32
	antBuf  []AntView
	distBuf []float64
}

// New creates an empty simulation sized to the configured world.
func New(cfg *config.Config, seed int64) *Simulation {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))

	w, h := cfg.Derived.WorldW, cfg.Derived.WorldH
	env := systems.NewEnvironment(cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	field := systems.NewPheromoneField(w, h, cfg.Trail.Deposit)

	return &Simulation{
		cfg:       cfg,
		world:     world,
		rng:       rng,
		antMapper: ecs.NewMap3[components.Position, components.Velocity, components.Ant](world),
		antFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Ant](world),
		env:       env,
		field:     field,
		foraging:  systems.NewForagingSystem(world, systems.ForagingParamsFromConfig(cfg), env, field, rng),
		nests:     systems.NewNestSystem(world, env, float32(cfg.Sensing.NestReach)),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindowTicks),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.StatsWindowTicks),
	}
}

// checkPlacement validates a placement position.
func (s *Simulation) checkPlacement(x, y float32) (components.Position, error) {
	pos := components.Position{X: x, Y: y}
	if !s.env.InBounds(pos) {
		return pos, fmt.Errorf("(%g, %g) in %gx%g world: %w", x, y, s.env.Width(), s.env.Height(), ErrOutOfBounds)
	}
	return pos, nil
}

// PlaceNest places a nest and creates its batch of searching ants.
// Returns the nest index.
func (s *Simulation) PlaceNest(x, y float32) (int, error) {
	pos, err := s.checkPlacement(x, y)
	if err != nil {
		return -1, err
	}

	nest := s.env.AddNest(pos)
	speed := float32(s.cfg.Colony.AntSpeed)
	for i := 0; i < s.cfg.Colony.AntsPerNest; i++ {
		p := pos
		vel := components.Velocity{
			X: s.rng.Float32() - 0.5,
			Y: s.rng.Float32() - 0.5,
		}
		ant := components.Ant{State: components.StateSearching, Speed: speed, Nest: nest}
		s.antMapper.NewEntity(&p, &vel, &ant)
	}

	slog.Info("nest placed", "nest", nest, "x", x, "y", y, "ants", s.cfg.Colony.AntsPerNest)
	return nest, nil
}

// PlaceFood places a food source holding the configured initial amount.
func (s *Simulation) PlaceFood(x, y float32) (int, error) {
	pos, err := s.checkPlacement(x, y)
	if err != nil {
		return -1, err
	}
	food := s.env.AddFood(pos, s.cfg.Food.InitialAmount)
	slog.Info("food placed", "food", food, "x", x, "y", y, "amount", s.cfg.Food.InitialAmount)
	return food, nil
}

// PlaceObstacle places an obstacle of the configured size.
func (s *Simulation) PlaceObstacle(x, y float32) (int, error) {
	pos, err := s.checkPlacement(x, y)
	if err != nil {
		return -1, err
	}
	obstacle := s.env.AddObstacle(pos, float32(s.cfg.Obstacle.DefaultSize))
	s.planner = nil
	slog.Info("obstacle placed", "obstacle", obstacle, "x", x, "y", y)
	return obstacle, nil
}

// Place dispatches a placement on mode.
func (s *Simulation) Place(mode PlacementMode, x, y float32) (int, error) {
	switch mode {
	case ModeNests:
		return s.PlaceNest(x, y)
	case ModeFood:
		return s.PlaceFood(x, y)
	case ModeObstacles:
		return s.PlaceObstacle(x, y)
	default:
		return -1, fmt.Errorf("unknown placement mode %v", mode)
	}
}

// ApplyScenario places the configured nests, food and obstacles.
// Obstacles go first so that nothing placed later is surprised by them.
func (s *Simulation) ApplyScenario(sc config.ScenarioConfig) error {
	for i, p := range sc.Obstacles {
		if _, err := s.PlaceObstacle(float32(p.X), float32(p.Y)); err != nil {
			return fmt.Errorf("scenario obstacle %d: %w", i, err)
		}
	}
	for i, p := range sc.Food {
		if _, err := s.PlaceFood(float32(p.X), float32(p.Y)); err != nil {
			return fmt.Errorf("scenario food %d: %w", i, err)
		}
	}
	for i, p := range sc.Nests {
		if _, err := s.PlaceNest(float32(p.X), float32(p.Y)); err != nil {
			return fmt.Errorf("scenario nest %d: %w", i, err)
		}
	}
	return nil
}

// Step advances the simulation by one tick: nests collect from nearby ants,
// then every ant runs its foraging step.
func (s *Simulation) Step() StepEvents {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseNests)
	nestDeliveries := s.nests.Update()

	s.perf.StartPhase(telemetry.PhaseForaging)
	events := s.foraging.Update()

	s.perf.StartPhase(telemetry.PhaseEvents)
	s.collector.RecordNestDeliveries(nestDeliveries)
	s.collector.RecordCaptures(events.Captures)
	s.collector.RecordAntDeliveries(events.Deliveries)
	s.collector.RecordAvoidances(events.Avoidances)
	s.collector.RecordTrailFallbacks(events.TrailFallbacks)
	s.collector.RecordDepleted(len(events.Depleted))
	for _, food := range events.Depleted {
		slog.Info("food source depleted", "food", food, "tick", s.tick)
	}

	s.tick++

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	if s.collector.ShouldFlush(s.tick) {
		s.pending = s.collector.Flush(s.tick, s.snapshot())
		s.hasPending = true
	}

	s.perf.EndTick()

	return StepEvents{
		Captures:       events.Captures,
		AntDeliveries:  events.Deliveries,
		NestDeliveries: nestDeliveries,
		Avoidances:     events.Avoidances,
		Depleted:       events.Depleted,
	}
}

// FlushStats returns the stats of the last completed window, once.
func (s *Simulation) FlushStats() (telemetry.WindowStats, bool) {
	if !s.hasPending {
		return telemetry.WindowStats{}, false
	}
	s.hasPending = false
	return s.pending, true
}

// snapshot samples the colony state for telemetry.
func (s *Simulation) snapshot() telemetry.ColonySnapshot {
	snap := telemetry.ColonySnapshot{
		FoodRemaining: s.env.FoodRemaining(),
		FoodStored:    s.env.FoodStored(),
	}
	snap.PheromoneTotal, snap.PheromoneMax, snap.PheromoneCovered = s.field.Totals()

	s.distBuf = s.distBuf[:0]
	query := s.antFilter.Query()
	for query.Next() {
		pos, _, ant := query.Get()
		if ant.State == components.StateCarryingFood {
			snap.Carrying++
		} else {
			snap.Searching++
		}
		nest := s.env.Nests[ant.Nest].Position
		dx := float64(pos.X - nest.X)
		dy := float64(pos.Y - nest.Y)
		s.distBuf = append(s.distBuf, math.Sqrt(dx*dx+dy*dy))
	}
	snap.NestDistances = s.distBuf

	return snap
}

// Ants returns a copy of every ant's state in iteration order.
// The slice is reused by the next call.
func (s *Simulation) Ants() []AntView {
	s.antBuf = s.antBuf[:0]
	query := s.antFilter.Query()
	for query.Next() {
		pos, vel, ant := query.Get()
		s.antBuf = append(s.antBuf, AntView{
			Position: *pos,
			Velocity: *vel,
			State:    ant.State,
			Nest:     ant.Nest,
		})
	}
	return s.antBuf
}

// Counts returns the number of ants per state.
func (s *Simulation) Counts() Counts {
	var c Counts
	query := s.antFilter.Query()
	for query.Next() {
		_, _, ant := query.Get()
		if ant.State == components.StateCarryingFood {
			c.Carrying++
		} else {
			c.Searching++
		}
	}
	return c
}

// Nests returns the placed nests. Callers must not modify the slice.
func (s *Simulation) Nests() []components.Nest { return s.env.Nests }

// FoodSources returns the placed food sources, depleted ones included.
// Callers must not modify the slice.
func (s *Simulation) FoodSources() []components.FoodSource { return s.env.Food }

// Obstacles returns the placed obstacles. Callers must not modify the slice.
func (s *Simulation) Obstacles() []components.Obstacle { return s.env.Obstacles }

// Field returns the pheromone field.
func (s *Simulation) Field() *systems.PheromoneField { return s.field }

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int32 { return s.tick }

// Perf returns the step timing collector.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

// Width returns the world width.
func (s *Simulation) Width() float32 { return s.env.Width() }

// Height returns the world height.
func (s *Simulation) Height() float32 { return s.env.Height() }

// Planner returns an A* path finder over the current obstacles.
// Nothing in the foraging step uses it.
func (s *Simulation) Planner() systems.PathFinder {
	return s.astar()
}

// NavGrid returns the grid the planner searches.
func (s *Simulation) NavGrid() *systems.NavGrid {
	return s.astar().Grid()
}

func (s *Simulation) astar() *systems.AStarPlanner {
	if s.planner == nil {
		grid := systems.NewNavGridFromObstacles(s.env.Width(), s.env.Height(), s.env.Obstacles, float32(s.cfg.Pathfinding.CellSize))
		s.planner = systems.NewAStarPlanner(grid)
	}
	return s.planner
}

// NearestFood returns the closest non-depleted food source to pos at any
// distance, or -1 if none remain.
func (s *Simulation) NearestFood(pos components.Position) int {
	return s.env.NearestFood(pos, math.MaxFloat32)
}
