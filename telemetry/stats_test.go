package telemetry

import (
	"math"
	"testing"
)

func TestComputeDistanceStats(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	mean, p50, p90 := ComputeDistanceStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Empirical quantiles pick an observed value
	if p50 < 5 || p50 > 6 {
		t.Errorf("p50 = %v, want 5 or 6", p50)
	}
	if p90 < 9 || p90 > 10 {
		t.Errorf("p90 = %v, want 9 or 10", p90)
	}

	// Input must not be reordered
	if values[0] != 10 || values[1] != 1 {
		t.Error("ComputeDistanceStats sorted its input in place")
	}
}

func TestComputeDistanceStatsEmpty(t *testing.T) {
	mean, p50, p90 := ComputeDistanceStats(nil)

	if mean != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(100)

	if c.ShouldFlush(99) {
		t.Error("flushed before the window ended")
	}
	if !c.ShouldFlush(100) {
		t.Error("did not flush at the window end")
	}

	c.RecordCaptures(3)
	c.RecordAntDeliveries(2)
	c.RecordNestDeliveries(1)
	c.RecordAvoidances(4)
	c.RecordTrailFallbacks(5)
	c.RecordDepleted(1)

	stats := c.Flush(100, ColonySnapshot{
		Searching:     7,
		Carrying:      3,
		FoodRemaining: 90,
		FoodStored:    3,
		PheromoneMax:  12,
		NestDistances: []float64{1, 2, 3},
	})

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 100 {
		t.Errorf("window = [%d, %d], want [0, 100]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Captures != 3 || stats.Deliveries() != 3 || stats.Avoidances != 4 || stats.TrailFallbacks != 5 || stats.DepletedSources != 1 {
		t.Errorf("unexpected counters: %+v", stats)
	}
	if stats.Searching != 7 || stats.Carrying != 3 || stats.PheromoneMax != 12 {
		t.Errorf("snapshot not copied: %+v", stats)
	}
	if math.Abs(stats.NestDistMean-2) > 0.001 {
		t.Errorf("NestDistMean = %v, want 2", stats.NestDistMean)
	}

	// Counters reset, window advances
	if c.ShouldFlush(150) {
		t.Error("window did not advance after flush")
	}
	next := c.Flush(200, ColonySnapshot{})
	if next.WindowStartTick != 100 || next.Captures != 0 || next.Deliveries() != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestNewCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("WindowDurationTicks = %d, want 1", c.WindowDurationTicks())
	}
}
