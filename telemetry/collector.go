// Package telemetry provides windowed foraging statistics, performance timing and CSV output.
package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	captures        int
	antDeliveries   int
	nestDeliveries  int
	avoidances      int
	trailFallbacks  int
	depletedSources int
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int32(windowTicks),
	}
}

// RecordCaptures records n food pickups.
func (c *Collector) RecordCaptures(n int) {
	c.captures += n
}

// RecordAntDeliveries records n deliveries made by an ant reaching its own nest.
func (c *Collector) RecordAntDeliveries(n int) {
	c.antDeliveries += n
}

// RecordNestDeliveries records n deliveries picked up by a nest from a nearby ant.
func (c *Collector) RecordNestDeliveries(n int) {
	c.nestDeliveries += n
}

// RecordAvoidances records n obstacle avoidance turns.
func (c *Collector) RecordAvoidances(n int) {
	c.avoidances += n
}

// RecordTrailFallbacks records n trail samples that found no pheromone.
func (c *Collector) RecordTrailFallbacks(n int) {
	c.trailFallbacks += n
}

// RecordDepleted records n food sources running out.
func (c *Collector) RecordDepleted(n int) {
	c.depletedSources += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// ColonySnapshot holds state sampled at window end.
type ColonySnapshot struct {
	Searching     int
	Carrying      int
	FoodRemaining int
	FoodStored    int

	PheromoneTotal   float64
	PheromoneMax     uint32
	PheromoneCovered int

	// Distance of each ant to its own nest
	NestDistances []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap ColonySnapshot) WindowStats {
	distMean, distP50, distP90 := ComputeDistanceStats(snap.NestDistances)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Searching: snap.Searching,
		Carrying:  snap.Carrying,

		Captures:        c.captures,
		AntDeliveries:   c.antDeliveries,
		NestDeliveries:  c.nestDeliveries,
		Avoidances:      c.avoidances,
		TrailFallbacks:  c.trailFallbacks,
		DepletedSources: c.depletedSources,

		FoodRemaining: snap.FoodRemaining,
		FoodStored:    snap.FoodStored,

		PheromoneTotal:   snap.PheromoneTotal,
		PheromoneMax:     snap.PheromoneMax,
		PheromoneCovered: snap.PheromoneCovered,

		NestDistMean: distMean,
		NestDistP50:  distP50,
		NestDistP90:  distP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.captures = 0
	c.antDeliveries = 0
	c.nestDeliveries = 0
	c.avoidances = 0
	c.trailFallbacks = 0
	c.depletedSources = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
