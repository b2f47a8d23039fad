package telemetry

import "log/slog"

// WindowStats holds session activity over a time window.
type WindowStats struct {
	WindowEnd    float64 `csv:"window_end"` // session seconds
	Ticks        int     `csv:"ticks"`
	Transitions  int     `csv:"transitions"`
	Cycles       int     `csv:"cycles"`
	Reconfigures int     `csv:"reconfigures"`
	Particles    int     `csv:"particles"`
	FPS          float64 `csv:"fps"`

	// Mean residual of phases completed in the window
	ResidualMean float64 `csv:"residual_mean"`
}

// Collector accumulates session events and closes a WindowStats every
// window seconds.
type Collector struct {
	windowSec float64

	elapsed     float64
	windowStart float64

	ticks        int
	transitions  int
	cycles       int
	reconfigures int

	residualSum   float64
	residualCount int
}

// NewCollector creates a collector with the given window length in seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &Collector{windowSec: windowSec}
}

// RecordTick records one session tick of dt seconds.
func (c *Collector) RecordTick(dt float64) {
	c.ticks++
	c.elapsed += dt
}

// RecordPhase records a completed phase.
func (c *Collector) RecordPhase(r PhaseRecord) {
	c.transitions++
	if r.Targeted > 0 {
		c.residualSum += r.ResidualMean
		c.residualCount++
	}
}

// RecordCycle records a completed cycle.
func (c *Collector) RecordCycle() {
	c.cycles++
}

// RecordReconfigure records a layout rebuild.
func (c *Collector) RecordReconfigure() {
	c.reconfigures++
}

// ShouldFlush reports whether the current window has elapsed.
func (c *Collector) ShouldFlush() bool {
	return c.elapsed-c.windowStart >= c.windowSec
}

// Flush closes the window and resets counters.
func (c *Collector) Flush(particles int, fps float64) WindowStats {
	s := WindowStats{
		WindowEnd:    c.elapsed,
		Ticks:        c.ticks,
		Transitions:  c.transitions,
		Cycles:       c.cycles,
		Reconfigures: c.reconfigures,
		Particles:    particles,
		FPS:          fps,
	}
	if c.residualCount > 0 {
		s.ResidualMean = c.residualSum / float64(c.residualCount)
	}

	c.windowStart = c.elapsed
	c.ticks, c.transitions, c.cycles, c.reconfigures = 0, 0, 0, 0
	c.residualSum, c.residualCount = 0, 0
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("ticks", s.Ticks),
		slog.Int("transitions", s.Transitions),
		slog.Int("cycles", s.Cycles),
		slog.Int("reconfigures", s.Reconfigures),
		slog.Float64("fps", s.FPS),
		slog.Float64("residual_mean", s.ResidualMean),
	)
}

// LogStats logs the window.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
