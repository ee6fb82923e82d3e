package systems

import (
	"testing"

	"github.com/pthm-cable/antfarm/components"
)

func TestNearestFood(t *testing.T) {
	env := NewEnvironment(500, 500)
	env.AddFood(components.Position{X: 140, Y: 100}, 10) // 40 away
	env.AddFood(components.Position{X: 120, Y: 100}, 10) // 20 away
	env.AddFood(components.Position{X: 100, Y: 80}, 10)  // 20 away, placed later
	env.AddFood(components.Position{X: 105, Y: 100}, 0)  // closest but depleted

	origin := components.Position{X: 100, Y: 100}

	if got := env.NearestFood(origin, 50); got != 1 {
		t.Errorf("NearestFood = %d, want 1 (first of tied sources)", got)
	}
	if got := env.NearestFood(origin, 20); got != -1 {
		t.Errorf("NearestFood with radius 20 = %d, want -1 (radius is exclusive)", got)
	}
	if got := env.NearestFood(components.Position{X: 400, Y: 400}, 50); got != -1 {
		t.Errorf("NearestFood far away = %d, want -1", got)
	}
}

func TestTakeFoodNeverNegative(t *testing.T) {
	env := NewEnvironment(100, 100)
	i := env.AddFood(components.Position{X: 10, Y: 10}, 2)

	if !env.TakeFood(i) || !env.TakeFood(i) {
		t.Fatal("expected two successful takes")
	}
	if env.TakeFood(i) {
		t.Error("take from depleted source succeeded")
	}
	if env.Food[i].Amount != 0 {
		t.Errorf("amount = %d, want 0", env.Food[i].Amount)
	}
	if env.NearestFood(components.Position{X: 10, Y: 10}, 50) != -1 {
		t.Error("depleted source is still discoverable")
	}

	if j := env.AddFood(components.Position{}, -5); env.Food[j].Amount != 0 {
		t.Errorf("negative initial amount stored as %d", env.Food[j].Amount)
	}
}

func TestObstacleAhead(t *testing.T) {
	env := NewEnvironment(200, 200)
	env.AddObstacle(components.Position{X: 50, Y: 50}, 10)

	tests := []struct {
		name string
		pos  components.Position
		vel  components.Velocity
		want bool
	}{
		{"look-ahead lands on obstacle", components.Position{X: 30, Y: 50}, components.Velocity{X: 1, Y: 0}, true},
		{"obstacle between ant and look-ahead point", components.Position{X: 40, Y: 50}, components.Velocity{X: 1, Y: 0}, true},
		{"heading away", components.Position{X: 40, Y: 50}, components.Velocity{X: -1, Y: 0}, false},
		{"passing beside", components.Position{X: 40, Y: 56}, components.Velocity{X: 1, Y: 0}, false},
		{"too far", components.Position{X: 0, Y: 50}, components.Velocity{X: 1, Y: 0}, false},
		{"zero velocity inside", components.Position{X: 52, Y: 50}, components.Velocity{}, true},
		{"inside, walking out", components.Position{X: 52, Y: 50}, components.Velocity{X: 1, Y: 0}, false},
		{"level with the ant", components.Position{X: 54, Y: 50}, components.Velocity{X: 0, Y: 1}, false},
		{"slow, look-ahead still inside", components.Position{X: 51, Y: 50}, components.Velocity{X: 0.1, Y: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := env.ObstacleAhead(tt.pos, tt.vel, 20); got != tt.want {
				t.Errorf("ObstacleAhead(%v, %v) = %v, want %v", tt.pos, tt.vel, got, tt.want)
			}
		})
	}
}

func TestEnvironmentTotals(t *testing.T) {
	env := NewEnvironment(100, 100)
	env.AddFood(components.Position{}, 3)
	env.AddFood(components.Position{}, 4)
	n := env.AddNest(components.Position{X: 50, Y: 50})
	env.Nests[n].DepositFood()
	env.Nests[n].DepositFood()

	if got := env.FoodRemaining(); got != 7 {
		t.Errorf("FoodRemaining = %d, want 7", got)
	}
	if got := env.FoodStored(); got != 2 {
		t.Errorf("FoodStored = %d, want 2", got)
	}
	if !env.InBounds(components.Position{X: 100, Y: 0}) || env.InBounds(components.Position{X: 100.1, Y: 0}) {
		t.Error("InBounds edge handling is wrong")
	}
}
