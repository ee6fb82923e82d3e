package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Ant states at window end
	Searching int `csv:"searching"`
	Carrying  int `csv:"carrying"`

	// Events during window
	Captures        int `csv:"captures"`
	AntDeliveries   int `csv:"ant_deliveries"`
	NestDeliveries  int `csv:"nest_deliveries"`
	Avoidances      int `csv:"avoidances"`
	TrailFallbacks  int `csv:"trail_fallbacks"`
	DepletedSources int `csv:"depleted_sources"`

	// Food totals at window end
	FoodRemaining int `csv:"food_remaining"`
	FoodStored    int `csv:"food_stored"`

	// Pheromone field at window end
	PheromoneTotal   float64 `csv:"pheromone_total"`
	PheromoneMax     uint32  `csv:"pheromone_max"`
	PheromoneCovered int     `csv:"pheromone_covered"` // Cells with any deposit

	// Ant distance to own nest
	NestDistMean float64 `csv:"nest_dist_mean"`
	NestDistP50  float64 `csv:"nest_dist_p50"`
	NestDistP90  float64 `csv:"nest_dist_p90"`
}

// Deliveries returns the total food delivered during the window.
func (s WindowStats) Deliveries() int {
	return s.AntDeliveries + s.NestDeliveries
}

// ComputeDistanceStats calculates mean and percentiles from distance values.
func ComputeDistanceStats(values []float64) (mean, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("searching", s.Searching),
		slog.Int("carrying", s.Carrying),
		slog.Int("captures", s.Captures),
		slog.Int("ant_deliveries", s.AntDeliveries),
		slog.Int("nest_deliveries", s.NestDeliveries),
		slog.Int("avoidances", s.Avoidances),
		slog.Int("trail_fallbacks", s.TrailFallbacks),
		slog.Int("depleted_sources", s.DepletedSources),
		slog.Int("food_remaining", s.FoodRemaining),
		slog.Int("food_stored", s.FoodStored),
		slog.Float64("pheromone_total", s.PheromoneTotal),
		slog.Uint64("pheromone_max", uint64(s.PheromoneMax)),
		slog.Int("pheromone_covered", s.PheromoneCovered),
		slog.Float64("nest_dist_mean", s.NestDistMean),
		slog.Float64("nest_dist_p50", s.NestDistP50),
		slog.Float64("nest_dist_p90", s.NestDistP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"searching", s.Searching,
		"carrying", s.Carrying,
		"captures", s.Captures,
		"ant_deliveries", s.AntDeliveries,
		"nest_deliveries", s.NestDeliveries,
		"avoidances", s.Avoidances,
		"trail_fallbacks", s.TrailFallbacks,
		"depleted_sources", s.DepletedSources,
		"food_remaining", s.FoodRemaining,
		"food_stored", s.FoodStored,
		"pheromone_total", s.PheromoneTotal,
		"pheromone_max", s.PheromoneMax,
		"pheromone_covered", s.PheromoneCovered,
		"nest_dist_mean", s.NestDistMean,
		"nest_dist_p50", s.NestDistP50,
		"nest_dist_p90", s.NestDistP90,
	)
}
