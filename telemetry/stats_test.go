package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestComputeResidualStats(t *testing.T) {
	values := []float64{5, 1, 4, 2, 3}

	mean, p50, p90, max := ComputeResidualStats(values)

	if mean != 3 {
		t.Errorf("expected mean 3, got %f", mean)
	}
	if p50 != 3 {
		t.Errorf("expected median 3, got %f", p50)
	}
	if p90 != 5 {
		t.Errorf("expected p90 5, got %f", p90)
	}
	if max != 5 {
		t.Errorf("expected max 5, got %f", max)
	}
	// Input order untouched
	if values[0] != 5 || values[1] != 1 {
		t.Errorf("input was modified: %v", values)
	}
}

func TestComputeResidualStatsEmpty(t *testing.T) {
	mean, p50, p90, max := ComputeResidualStats(nil)
	if mean != 0 || p50 != 0 || p90 != 0 || max != 0 {
		t.Errorf("expected zeros, got %f %f %f %f", mean, p50, p90, max)
	}
}

func TestPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{0.25, 10},
		{0.5, 20},
		{1, 40},
	}
	for _, tt := range tests {
		if got := Percentile(sorted, tt.p); got != tt.want {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if got := Percentile(nil, 0.5); got != 0 {
		t.Errorf("expected 0 for empty input, got %v", got)
	}
}

func TestNewPhaseRecord(t *testing.T) {
	residuals := []float64{0.2, 0.5, 3, 10}
	r := NewPhaseRecord(2, "heart", "heart", 3*time.Second, 1400, residuals)

	if r.Targeted != 4 || r.Particles != 1400 {
		t.Errorf("unexpected counts %+v", r)
	}
	if r.DurationMS != 3000 {
		t.Errorf("expected 3000ms, got %d", r.DurationMS)
	}
	if math.Abs(r.Converged-0.5) > 1e-9 {
		t.Errorf("expected half converged, got %f", r.Converged)
	}
	if r.ResidualMax != 10 {
		t.Errorf("expected max 10, got %f", r.ResidualMax)
	}
}
