package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
)

func init() {
	config.MustInit("")
}

func newTestSim(t *testing.T, w, h int) *Simulation {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.World.Width = w
	cfg.World.Height = h
	cfg.Telemetry.StatsWindowTicks = 100
	cfg.Derived.WorldW, cfg.Derived.WorldH = w, h
	cfg.Derived.WorldW32, cfg.Derived.WorldH32 = float32(w), float32(h)
	return New(cfg, 42)
}

func TestPlaceNestCreatesAnts(t *testing.T) {
	s := newTestSim(t, 400, 300)

	nest, err := s.PlaceNest(100, 100)
	if err != nil {
		t.Fatalf("PlaceNest: %v", err)
	}
	if nest != 0 {
		t.Errorf("nest index = %d, want 0", nest)
	}

	ants := s.Ants()
	if len(ants) != 100 {
		t.Fatalf("ants = %d, want 100", len(ants))
	}
	for i, a := range ants {
		if a.State != components.StateSearching {
			t.Errorf("ant %d state = %v, want Searching", i, a.State)
		}
		if a.Position != (components.Position{X: 100, Y: 100}) {
			t.Errorf("ant %d at %v, want nest position", i, a.Position)
		}
		if a.Velocity.X < -0.5 || a.Velocity.X >= 0.5 || a.Velocity.Y < -0.5 || a.Velocity.Y >= 0.5 {
			t.Errorf("ant %d velocity %v outside [-0.5, 0.5)", i, a.Velocity)
		}
		if a.Nest != nest {
			t.Errorf("ant %d nest = %d, want %d", i, a.Nest, nest)
		}
	}

	if c := s.Counts(); c.Searching != 100 || c.Carrying != 0 {
		t.Errorf("counts = %+v", c)
	}
}

func TestPlaceOutOfBounds(t *testing.T) {
	s := newTestSim(t, 400, 300)

	tests := []struct {
		name string
		mode PlacementMode
		x, y float32
	}{
		{"nest left", ModeNests, -1, 10},
		{"food below", ModeFood, 10, 301},
		{"obstacle right", ModeObstacles, 401, 10},
		{"nan", ModeFood, float32(math.NaN()), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := s.Place(tt.mode, tt.x, tt.y)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("err = %v, want ErrOutOfBounds", err)
			}
			if idx != -1 {
				t.Errorf("index = %d, want -1", idx)
			}
		})
	}

	if len(s.Nests()) != 0 || len(s.FoodSources()) != 0 || len(s.Obstacles()) != 0 || len(s.Ants()) != 0 {
		t.Error("rejected placement left state behind")
	}

	// Edges are on the surface
	if _, err := s.PlaceFood(400, 300); err != nil {
		t.Errorf("placing on the edge: %v", err)
	}
}

func TestPlaceDispatch(t *testing.T) {
	s := newTestSim(t, 400, 300)

	if _, err := s.Place(ModeFood, 50, 50); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Place(ModeObstacles, 60, 60); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Place(ModeNests, 70, 70); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Place(PlacementMode(9), 70, 70); err == nil {
		t.Error("unknown mode accepted")
	}

	if got := s.FoodSources()[0].Amount; got != 100 {
		t.Errorf("food amount = %d, want 100", got)
	}
	if got := s.Obstacles()[0].Size; got != 10 {
		t.Errorf("obstacle size = %v, want 10", got)
	}
	if len(s.Nests()) != 1 {
		t.Errorf("nests = %d, want 1", len(s.Nests()))
	}
}

func TestForagingScenario(t *testing.T) {
	s := newTestSim(t, 400, 300)

	if _, err := s.PlaceNest(100, 100); err != nil {
		t.Fatal(err)
	}
	food, err := s.PlaceFood(110, 100)
	if err != nil {
		t.Fatal(err)
	}

	captures, deliveries := 0, 0
	sawCarrying := false
	for tick := 0; tick < 2000; tick++ {
		beforeAmount := s.FoodSources()[food].Amount
		beforeStored := s.Nests()[0].FoodStored

		ev := s.Step()
		captures += ev.Captures
		deliveries += ev.Deliveries()

		if got := beforeAmount - s.FoodSources()[food].Amount; got != ev.Captures {
			t.Fatalf("tick %d: amount dropped by %d with %d captures", tick, got, ev.Captures)
		}
		if got := s.Nests()[0].FoodStored - beforeStored; got != ev.Deliveries() {
			t.Fatalf("tick %d: stored rose by %d with %d deliveries", tick, got, ev.Deliveries())
		}
		if s.FoodSources()[food].Amount < 0 {
			t.Fatalf("tick %d: negative food amount", tick)
		}

		c := s.Counts()
		if c.Total() != 100 {
			t.Fatalf("tick %d: %d ants, want 100", tick, c.Total())
		}
		if c.Carrying > 0 {
			sawCarrying = true
		}
	}

	if !sawCarrying || captures == 0 {
		t.Error("no ant ever picked up food")
	}
	if deliveries == 0 || s.Nests()[0].FoodStored == 0 {
		t.Error("no food was delivered to the nest")
	}
	if captures != 100-s.FoodSources()[food].Amount {
		t.Errorf("captures = %d, amount = %d", captures, s.FoodSources()[food].Amount)
	}
	if s.Tick() != 2000 {
		t.Errorf("tick = %d, want 2000", s.Tick())
	}
}

func TestStepDeterministicForSeed(t *testing.T) {
	run := func() []AntView {
		s := newTestSim(t, 300, 300)
		s.PlaceNest(150, 150)
		s.PlaceFood(190, 150)
		for i := 0; i < 200; i++ {
			s.Step()
		}
		return append([]AntView(nil), s.Ants()...)
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ant %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestFlushStats(t *testing.T) {
	s := newTestSim(t, 300, 300)
	s.PlaceNest(150, 150)
	s.PlaceFood(170, 150)

	flushes := 0
	for i := 0; i < 250; i++ {
		s.Step()
		if stats, ok := s.FlushStats(); ok {
			flushes++
			if stats.Searching+stats.Carrying != 100 {
				t.Errorf("window %d: %d ants", stats.WindowEndTick, stats.Searching+stats.Carrying)
			}
			if stats.PheromoneCovered == 0 {
				t.Errorf("window %d: no pheromone recorded", stats.WindowEndTick)
			}
		}
	}
	if flushes != 2 {
		t.Errorf("flushes = %d, want 2", flushes)
	}
	if _, ok := s.FlushStats(); ok {
		t.Error("stats returned twice for the same window")
	}
}

func TestPlannerRebuiltOnObstacle(t *testing.T) {
	s := newTestSim(t, 200, 200)
	start := components.Position{X: 20, Y: 100}
	goal := components.Position{X: 180, Y: 100}

	path, ok := s.Planner().ComputePath(start, goal)
	if !ok || len(path) != 2 {
		t.Fatalf("open world path = %v, %v", path, ok)
	}

	s.PlaceObstacle(100, 100)
	path, ok = s.Planner().ComputePath(start, goal)
	if !ok {
		t.Fatal("no path around a single obstacle")
	}
	if len(path) < 3 {
		t.Errorf("path %v ignores the new obstacle", path)
	}
}

func TestApplyScenario(t *testing.T) {
	s := newTestSim(t, 300, 300)

	err := s.ApplyScenario(config.ScenarioConfig{
		Nests:     []config.PointConfig{{X: 100, Y: 100}},
		Food:      []config.PointConfig{{X: 150, Y: 100}, {X: 100, Y: 150}},
		Obstacles: []config.PointConfig{{X: 125, Y: 100}},
	})
	if err != nil {
		t.Fatalf("ApplyScenario: %v", err)
	}
	if len(s.Nests()) != 1 || len(s.FoodSources()) != 2 || len(s.Obstacles()) != 1 {
		t.Errorf("placed %d nests, %d food, %d obstacles", len(s.Nests()), len(s.FoodSources()), len(s.Obstacles()))
	}

	err = s.ApplyScenario(config.ScenarioConfig{Food: []config.PointConfig{{X: 500, Y: 0}}})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestNearestFoodSkipsDepleted(t *testing.T) {
	s := newTestSim(t, 300, 300)
	s.cfg.Food.InitialAmount = 0
	s.PlaceFood(10, 10)
	s.cfg.Food.InitialAmount = 5
	far, _ := s.PlaceFood(290, 290)

	if got := s.NearestFood(components.Position{X: 0, Y: 0}); got != far {
		t.Errorf("NearestFood = %d, want %d", got, far)
	}
}

func TestStepNestsCollectBeforeAntsMove(t *testing.T) {
	s := newTestSim(t, 400, 300)
	s.cfg.Colony.AntsPerNest = 0

	nest, err := s.PlaceNest(100, 100)
	if err != nil {
		t.Fatal(err)
	}

	// Inside nest reach but outside the ant's own arrival radius; one step
	// towards the nest would bring it within arrival range.
	pos := components.Position{X: 105.5, Y: 100}
	vel := components.Velocity{X: -1}
	ant := components.Ant{State: components.StateCarryingFood, Speed: 1, Nest: nest}
	s.antMapper.NewEntity(&pos, &vel, &ant)

	events := s.Step()

	if events.NestDeliveries != 1 || events.AntDeliveries != 0 {
		t.Errorf("deliveries nest=%d ant=%d, want nest=1 ant=0", events.NestDeliveries, events.AntDeliveries)
	}
	if stored := s.Nests()[nest].FoodStored; stored != 1 {
		t.Errorf("FoodStored = %d, want 1", stored)
	}
	if c := s.Counts(); c.Carrying != 0 || c.Searching != 1 {
		t.Errorf("counts = %+v, want one searching ant", c)
	}
}
