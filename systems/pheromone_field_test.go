package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

func TestPheromoneFieldCreation(t *testing.T) {
	f := NewPheromoneField(320, 240, 1)

	w, h := f.GridSize()
	if w != 320 || h != 240 {
		t.Errorf("expected grid size 320x240, got %dx%d", w, h)
	}
	if len(f.Data()) != 320*240 {
		t.Errorf("expected %d cells, got %d", 320*240, len(f.Data()))
	}
	total, maxCell, covered := f.Totals()
	if total != 0 || maxCell != 0 || covered != 0 {
		t.Errorf("expected empty field, got total=%v max=%d covered=%d", total, maxCell, covered)
	}
}

func TestPheromoneDepositFloorsCoordinates(t *testing.T) {
	f := NewPheromoneField(100, 100, 1)

	f.Deposit(components.Position{X: 10.9, Y: 20.1})
	f.Deposit(components.Position{X: 10.0, Y: 20.99})

	if got := f.Cells[20*100+10]; got != 2 {
		t.Errorf("cell (10,20) = %d, want 2", got)
	}
	if got := f.ConcentrationAt(components.Position{X: 10.5, Y: 20.5}); got != 2 {
		t.Errorf("ConcentrationAt = %v, want 2", got)
	}
	if got := f.ConcentrationAt(components.Position{X: 11, Y: 20}); got != 0 {
		t.Errorf("neighbouring cell = %v, want 0", got)
	}
}

func TestPheromoneOutOfBounds(t *testing.T) {
	f := NewPheromoneField(50, 40, 1)

	tests := []struct {
		name string
		pos  components.Position
	}{
		{"negative x", components.Position{X: -0.5, Y: 10}},
		{"negative y", components.Position{X: 10, Y: -0.01}},
		{"x at width", components.Position{X: 50, Y: 10}},
		{"y at height", components.Position{X: 10, Y: 40}},
		{"far away", components.Position{X: 1e9, Y: -1e9}},
		{"nan", components.Position{X: float32(math.NaN()), Y: 10}},
		{"inf", components.Position{X: float32(math.Inf(1)), Y: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.Deposit(tt.pos)
			if got := f.ConcentrationAt(tt.pos); got != 0 {
				t.Errorf("ConcentrationAt(%v) = %v, want 0", tt.pos, got)
			}
		})
	}

	if total, _, _ := f.Totals(); total != 0 {
		t.Errorf("out-of-bounds deposits changed the field, total=%v", total)
	}
}

func TestPheromoneMonotonic(t *testing.T) {
	f := NewPheromoneField(20, 20, 3)
	pos := components.Position{X: 5, Y: 5}

	prev := f.ConcentrationAt(pos)
	for i := 0; i < 100; i++ {
		f.Deposit(pos)
		cur := f.ConcentrationAt(pos)
		if cur < prev {
			t.Fatalf("concentration decreased: %v -> %v", prev, cur)
		}
		prev = cur
	}
	if prev != 300 {
		t.Errorf("after 100 deposits of 3, got %v, want 300", prev)
	}

	// Saturation keeps the cell at its maximum rather than wrapping
	f.Cells[5*20+5] = math.MaxUint32 - 1
	f.Deposit(pos)
	if got := f.Cells[5*20+5]; got != math.MaxUint32 {
		t.Errorf("saturated cell = %d, want MaxUint32", got)
	}
}

func TestPheromoneTotals(t *testing.T) {
	f := NewPheromoneField(10, 10, 1)
	f.Deposit(components.Position{X: 1, Y: 1})
	f.Deposit(components.Position{X: 1, Y: 1})
	f.Deposit(components.Position{X: 2, Y: 3})

	total, maxCell, covered := f.Totals()
	if total != 3 || maxCell != 2 || covered != 2 {
		t.Errorf("Totals = (%v, %d, %d), want (3, 2, 2)", total, maxCell, covered)
	}
}
