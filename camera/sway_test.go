package camera

import (
	"math"
	"testing"
)

func inOutSine(t float64) float64 { return (1 - math.Cos(math.Pi*t)) / 2 }

func newTestSway() *Sway {
	return NewSway(0.35, 6, 4, 1.0, 60, inOutSine)
}

func TestSwayStaysInRange(t *testing.T) {
	s := newTestSway()

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < 60*30; i++ {
		a := s.Update(1.0 / 60)
		lo = math.Min(lo, a)
		hi = math.Max(hi, a)
	}

	// Critically damped on a goal inside [0, 0.35], so it never leaves it
	if lo < -1e-6 || hi > 0.35+1e-6 {
		t.Errorf("sway left [0, 0.35]: min %f, max %f", lo, hi)
	}
	if hi < 0.33 {
		t.Errorf("sway should approach the amplitude, max %f", hi)
	}
}

func TestSwayGoalFollowsEase(t *testing.T) {
	s := newTestSway()

	if g := s.Goal(); g != 0 {
		t.Fatalf("expected initial goal 0, got %f", g)
	}

	tests := []struct {
		at   float64 // seconds since start
		want float64
	}{
		{3, 0.175}, // halfway up
		{6, 0.35},  // top, swing flips
		{9, 0.175}, // halfway down
		{10.5, 0.35 * (1 - inOutSine(0.75))},
	}
	elapsed := 0.0
	for _, tt := range tests {
		for elapsed < tt.at-1e-9 {
			s.Update(1.0 / 60)
			elapsed += 1.0 / 60
		}
		if g := s.Goal(); math.Abs(g-tt.want) > 1e-3 {
			t.Errorf("goal at %.1fs = %f, want %f", tt.at, g, tt.want)
		}
	}
}

func TestSwayTracksGoal(t *testing.T) {
	s := newTestSway()

	// The spring trails the eased goal closely instead of holding at the top
	maxLag := 0.0
	for i := 0; i < 60*12; i++ {
		a := s.Update(1.0 / 60)
		maxLag = math.Max(maxLag, math.Abs(a-s.Goal()))
	}
	if maxLag > 0.08 {
		t.Errorf("expected the spring within 0.08 rad of the goal, max lag %f", maxLag)
	}
}

func TestSwayAccumulatesFrameTime(t *testing.T) {
	a := newTestSway()
	b := newTestSway()

	// One long frame equals many short ones
	a.Update(0.5)
	for i := 0; i < 30; i++ {
		b.Update(1.0 / 60)
	}
	if math.Abs(a.Angle()-b.Angle()) > 5e-3 {
		t.Errorf("expected matching angles, got %f and %f", a.Angle(), b.Angle())
	}
}

func TestSwayDisabled(t *testing.T) {
	s := NewSway(0, 6, 4, 1.0, 60, nil)
	if a := s.Update(10); a != 0 {
		t.Errorf("expected no sway with zero amplitude, got %f", a)
	}
}

func TestSwayReset(t *testing.T) {
	s := newTestSway()
	s.Update(7)
	s.Reset()
	if s.Angle() != 0 || s.Goal() != 0 {
		t.Errorf("expected angle and goal 0 after reset, got %f, %f", s.Angle(), s.Goal())
	}
}
