package telemetry

import "testing"

func TestFPSMonitorWindow(t *testing.T) {
	m := NewFPSMonitor(1, 30, 600)

	closed := false
	for i := 0; i < 60; i++ {
		if m.Frame(1.0/60, 1400) {
			closed = true
		}
	}
	// Float accumulation may need one more frame
	if !closed {
		closed = m.Frame(1.0/60, 1400)
	}
	if !closed {
		t.Fatal("expected window to close after one second")
	}
	if m.FPS() < 55 || m.FPS() > 65 {
		t.Errorf("expected ~60 fps, got %f", m.FPS())
	}
	if m.Low() {
		t.Error("60 fps should not be low")
	}
}

func TestFPSMonitorLow(t *testing.T) {
	tests := []struct {
		name      string
		particles int
		wantLow   bool
	}{
		{"many particles", 1400, true},
		{"few particles", 600, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewFPSMonitor(1, 30, 600)
			for i := 0; i < 21; i++ {
				m.Frame(0.05, tt.particles) // 20 fps
			}
			if m.Low() != tt.wantLow {
				t.Errorf("Low() = %v, want %v (fps %f)", m.Low(), tt.wantLow, m.FPS())
			}
		})
	}
}
