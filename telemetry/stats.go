package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ConvergedRadius is the residual below which a particle counts as arrived.
const ConvergedRadius = 1.0

// PhaseRecord describes how far particles got during one completed phase.
type PhaseRecord struct {
	Cycle      int    `csv:"cycle"`
	Phase      string `csv:"phase"`
	Kind       string `csv:"kind"`
	DurationMS int64  `csv:"duration_ms"`
	Particles  int    `csv:"particles"`
	Targeted   int    `csv:"targeted"`

	// Distance to target at phase end
	ResidualMean float64 `csv:"residual_mean"`
	ResidualP50  float64 `csv:"residual_p50"`
	ResidualP90  float64 `csv:"residual_p90"`
	ResidualMax  float64 `csv:"residual_max"`
	Converged    float64 `csv:"converged"` // fraction within ConvergedRadius
}

// NewPhaseRecord summarises residuals measured as a phase ends.
func NewPhaseRecord(cycle int, phase, kind string, d time.Duration, particles int, residuals []float64) PhaseRecord {
	r := PhaseRecord{
		Cycle:      cycle,
		Phase:      phase,
		Kind:       kind,
		DurationMS: d.Milliseconds(),
		Particles:  particles,
		Targeted:   len(residuals),
	}
	r.ResidualMean, r.ResidualP50, r.ResidualP90, r.ResidualMax = ComputeResidualStats(residuals)
	if len(residuals) > 0 {
		n := 0
		for _, v := range residuals {
			if v < ConvergedRadius {
				n++
			}
		}
		r.Converged = float64(n) / float64(len(residuals))
	}
	return r
}

// Percentile calculates the p-th percentile (0..1) of a sorted slice.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeResidualStats calculates mean, median, p90 and max of residuals.
// The input is not modified.
func ComputeResidualStats(values []float64) (mean, p50, p90, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	max = floats.Max(values)

	// Sort for percentiles
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.5)
	p90 = Percentile(sorted, 0.9)
	return mean, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (r PhaseRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("cycle", r.Cycle),
		slog.String("phase", r.Phase),
		slog.Int("targeted", r.Targeted),
		slog.Float64("residual_mean", r.ResidualMean),
		slog.Float64("residual_p90", r.ResidualP90),
		slog.Float64("converged", r.Converged),
	)
}
