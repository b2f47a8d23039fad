package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/morph/layout"
	"github.com/pthm-cable/morph/targets"
)

// Reconfigure lays the session out for a new viewport: plan, build a fresh
// target set, move the scatter bounds and restart the cycle on the new set.
// No target from the previous set survives the call.
func (g *Game) Reconfigure(width, height int) {
	width, height = max(width, 1), max(height, 1)
	g.width, g.height = width, height
	g.resizePending = false

	g.profile = layout.Plan(g.cfg.Layout, float64(width), float64(height), g.quality.Constrained())
	set := targets.Build(g.rng, g.glyphs, targets.Params{
		Profile: g.profile,
		Tuning:  g.quality.Tuning,
		Text:    g.cfg.Text,
		Count:   g.store.Len(),
	})

	g.store.SetBounds(float32(width), float32(height))
	g.scheduler.Restart(set)
	g.cycle = 0
	g.camera.Resize(float32(width), float32(height))
	if g.renderer != nil {
		g.renderer.SetViewport(width, height)
		g.renderer.MarkDirty()
	}
	g.collector.RecordReconfigure()
	g.metrics.ObserveReconfigure()

	slog.Info("layout",
		"width", width,
		"height", height,
		"landscape", g.profile.Landscape,
		"heart_size", g.profile.HeartSize,
		"step", g.profile.Step,
		"heart", len(set.Heart),
		"name", len(set.Name),
		"phrase", len(set.Phrase),
	)
}

// RequestResize schedules a Reconfigure once the viewport has been quiet for
// the debounce interval. Every request restarts the interval.
func (g *Game) RequestResize(width, height int) {
	if !g.resizePending && width == g.width && height == g.height {
		return
	}
	g.pendingW, g.pendingH = width, height
	g.resizePending = true
	g.resizeQuiet = 0
}

// ResizePending reports whether a resize is waiting out its debounce.
func (g *Game) ResizePending() bool {
	return g.resizePending
}

func (g *Game) applyPendingResize(dt time.Duration) {
	if !g.resizePending {
		return
	}
	g.resizeQuiet += dt
	if g.resizeQuiet < g.debounce() {
		return
	}
	if g.pendingW == g.width && g.pendingH == g.height {
		g.resizePending = false
		return
	}
	g.Reconfigure(g.pendingW, g.pendingH)
}

// debounce returns the quiet interval for the pending size. A flip between
// landscape and portrait waits longer so the rotated viewport settles.
func (g *Game) debounce() time.Duration {
	wasLandscape := g.width > g.height
	isLandscape := g.pendingW > g.pendingH
	if wasLandscape != isLandscape {
		return g.cfg.Derived.OrientationDebounce
	}
	return g.cfg.Derived.ResizeDebounce
}
