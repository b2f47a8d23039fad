package telemetry

import "log/slog"

// FPSMonitor counts frames over a fixed window and flags sustained low
// frame rates on large particle counts.
type FPSMonitor struct {
	window       float64 // seconds
	lowFPS       float64
	minParticles int

	frames  int
	elapsed float64
	fps     float64
	low     bool
}

// NewFPSMonitor creates a monitor. A particle count above minParticles with
// fps below lowFPS raises the low flag at the end of a window.
func NewFPSMonitor(window, lowFPS float64, minParticles int) *FPSMonitor {
	if window <= 0 {
		window = 1
	}
	return &FPSMonitor{window: window, lowFPS: lowFPS, minParticles: minParticles}
}

// Frame records one frame of dt seconds. It returns true when a window
// closes, at which point FPS and Low are fresh.
func (m *FPSMonitor) Frame(dt float64, particles int) bool {
	m.frames++
	m.elapsed += dt
	if m.elapsed < m.window {
		return false
	}

	m.fps = float64(m.frames) / m.elapsed
	m.low = m.fps < m.lowFPS && particles > m.minParticles
	if m.low {
		slog.Warn("low frame rate", "fps", m.fps, "particles", particles)
	}
	m.frames = 0
	m.elapsed = 0
	return true
}

// FPS returns the rate measured over the last closed window.
func (m *FPSMonitor) FPS() float64 {
	return m.fps
}

// Low reports whether the last closed window was below the threshold.
func (m *FPSMonitor) Low() bool {
	return m.low
}
