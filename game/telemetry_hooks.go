package game

import (
	"log/slog"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/telemetry"
)

// flushTelemetry logs and writes the last window's stats once it has ended.
func (g *Game) flushTelemetry() {
	stats, ok := g.sim.FlushStats()
	if !ok {
		return
	}
	g.lastStats = stats
	perfStats := g.sim.Perf().Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if g.outputManager.TraceEnabled() {
			if err := g.outputManager.WriteTrace(g.traceFrame()); err != nil {
				slog.Error("failed to write trace", "error", err)
			}
		}
	}
}

// traceFrame captures the colony at the current tick.
func (g *Game) traceFrame() telemetry.TraceFrame {
	ants := g.sim.Ants()
	frame := telemetry.TraceFrame{
		Tick: g.sim.Tick(),
		Ants: make([]telemetry.TraceAnt, len(ants)),
	}
	for i, a := range ants {
		frame.Ants[i] = telemetry.TraceAnt{
			X:        a.Position.X,
			Y:        a.Position.Y,
			Carrying: a.State == components.StateCarryingFood,
			Nest:     a.Nest,
		}
	}
	for _, f := range g.sim.FoodSources() {
		frame.FoodRemaining = append(frame.FoodRemaining, f.Amount)
	}
	for _, n := range g.sim.Nests() {
		frame.FoodStored = append(frame.FoodStored, n.FoodStored)
	}
	return frame
}
