package game

import (
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/device"
	"github.com/pthm-cable/morph/telemetry"
)

// Options holds the per-run settings that do not live in config.yaml.
type Options struct {
	Seed      int64
	Width     int
	Height    int
	LogStats  bool
	OutputDir string             // empty disables CSV output
	Metrics   *telemetry.Metrics // nil disables Prometheus series
	Renderer  Renderer
}

// DefaultOptions returns options sized from the config screen section.
func DefaultOptions(cfg *config.Config) Options {
	return Options{
		Seed:   1,
		Width:  cfg.Screen.Width,
		Height: cfg.Screen.Height,
	}
}

// Renderer is notified when the viewport changes and when the position
// buffer has been rewritten.
type Renderer interface {
	SetViewport(width, height int)
	MarkDirty()
}

// Status is the read-only view of a session used by the HUD.
type Status struct {
	Phase     string
	Kind      string
	Progress  float64
	Cycle     int
	Paused    bool
	Particles int
	Class     device.Class
	Step      int
	FPS       float64
	LowFPS    bool
	Width     int
	Height    int
}
