package game

import (
	"log/slog"

	"github.com/pthm-cable/morph/sequence"
	"github.com/pthm-cable/morph/telemetry"
)

// onTransition records how close particles got to the targets of the phase
// that just ended.
func (g *Game) onTransition(tr sequence.Transition) {
	cycle := g.cycle
	if tr.Cycle != g.cycle {
		g.cycle = tr.Cycle
		g.collector.RecordCycle()
	}

	g.residuals = g.store.Residuals(g.residuals[:0])
	rec := telemetry.NewPhaseRecord(cycle, tr.From, string(tr.FromKind), tr.Elapsed, g.store.Len(), g.residuals)
	g.collector.RecordPhase(rec)
	g.metrics.ObservePhase(rec)

	if g.logStats {
		slog.Info("phase", "record", rec, "next", tr.To)
	}
	if err := g.outputManager.WritePhase(rec); err != nil {
		slog.Error("failed to write phase", "error", err)
	}
}

// flushTelemetry closes the stats window when it has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush(g.store.Len(), g.fps.FPS())
	ticks := g.profiler.Stats()
	g.metrics.ObserveWindow(stats, ticks)

	if g.logStats {
		stats.LogStats()
		slog.Info("ticks", "profile", ticks)
	}

	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.outputManager.WritePerf(ticks, g.tick, g.store.Len()); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
