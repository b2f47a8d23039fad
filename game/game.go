// Package game owns one animation session: the particle store, the active
// target set and the scheduler that moves between them.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/device"
	"github.com/pthm-cable/morph/layout"
	"github.com/pthm-cable/morph/sequence"
	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/systems"
	"github.com/pthm-cable/morph/targets"
	"github.com/pthm-cable/morph/telemetry"
)

// DT is the fixed tick used by headless runs.
const DT = 1.0 / 60.0

// Game holds the complete session state. It is driven from a single
// goroutine; the renderer only reads Buffer between updates.
type Game struct {
	cfg     *config.Config
	quality device.QualityProfile
	rng     *rand.Rand

	store     *systems.ParticleStore
	sampler   *shapes.GlyphSampler
	glyphs    targets.GlyphSource
	scheduler *sequence.Scheduler
	profile   layout.Profile
	renderer  Renderer

	camera *camera.Camera
	sway   *camera.Sway

	// Viewport and pending resize
	width, height      int
	pendingW, pendingH int
	resizePending      bool
	resizeQuiet        time.Duration

	// Telemetry
	profiler      *telemetry.TickProfiler
	fps           *telemetry.FPSMonitor
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	metrics       *telemetry.Metrics
	logStats      bool
	residuals     []float64

	tick  int32
	cycle int
}

// New creates a session with quality decided by the caller and lays it out
// for the viewport in opts.
func New(cfg *config.Config, quality device.QualityProfile, opts Options) (*Game, error) {
	sampler, err := shapes.NewGlyphSampler()
	if err != nil {
		return nil, fmt.Errorf("creating glyph sampler: %w", err)
	}

	phases, err := sequence.FromConfig(cfg.Sequence)
	if err != nil {
		return nil, fmt.Errorf("building phases: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	if dir := om.Dir(); dir != "" {
		slog.Info("writing telemetry", "dir", dir)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	width, height := max(opts.Width, 1), max(opts.Height, 1)
	cc := cfg.Camera
	tc := cfg.Telemetry

	g := &Game{
		cfg:      cfg,
		quality:  quality,
		rng:      rng,
		store:    systems.NewParticleStore(rng, float32(cfg.Particles.Depth)),
		sampler:  sampler,
		glyphs:   sampler,
		renderer: opts.Renderer,
		camera:   camera.New(float32(width), float32(height), float32(cc.Fovy), float32(cc.Distance)),
		sway:     camera.NewSway(cc.SwayAmplitude, cc.SwayHalfPeriod, cc.SwayFrequency, cc.SwayDamping, cfg.Screen.TargetFPS, sequence.InOutSine),

		profiler:      telemetry.NewTickProfiler(tc.ProfileWindow),
		fps:           telemetry.NewFPSMonitor(tc.FPSWindow, tc.LowFPS, tc.LowFPSMinParticles),
		collector:     telemetry.NewCollector(tc.StatsWindow),
		outputManager: om,
		metrics:       opts.Metrics,
		logStats:      opts.LogStats,
	}

	g.store.Initialize(quality.ParticleCount, float32(width), float32(height))
	g.scheduler = sequence.New(phases, cfg.Derived.RepeatDelay, g.store, nil, rng, g.step)
	g.scheduler.OnTransition(g.onTransition)
	g.Reconfigure(width, height)

	slog.Info("session started",
		"seed", opts.Seed,
		"quality", quality,
		"cycle", cfg.Derived.CycleLength,
	)
	return g, nil
}

// step is the per-tick interpolation run during moving phases. It is timed
// apart from the rest of the schedule section.
func (g *Game) step() {
	g.profiler.Enter(telemetry.SectionInterpolate)
	systems.Interpolate(g.store, float32(g.quality.Tuning.LerpFactor))
	g.profiler.Enter(telemetry.SectionSchedule)
}

// Update advances the session by dt seconds.
func (g *Game) Update(dt float64) {
	g.Frame(dt, nil)
}

// UpdateHeadless advances the session by one fixed tick.
func (g *Game) UpdateHeadless() {
	g.Frame(DT, nil)
}

// Frame advances the session by dt seconds and, when draw is non-nil, times
// it as the render section of the tick.
func (g *Game) Frame(dt float64, draw func()) {
	g.profiler.StartTick(string(g.scheduler.State().Kind))

	g.profiler.Enter(telemetry.SectionReconfigure)
	g.applyPendingResize(seconds(dt))

	g.profiler.Enter(telemetry.SectionSchedule)
	g.scheduler.Update(seconds(dt))
	if g.store.TakeDirty() && g.renderer != nil {
		g.renderer.MarkDirty()
	}

	g.profiler.Enter(telemetry.SectionSway)
	if !g.scheduler.Paused() {
		g.camera.Yaw = float32(g.sway.Update(dt))
	}

	if draw != nil {
		g.profiler.Enter(telemetry.SectionRender)
		draw()
	}

	g.profiler.Enter(telemetry.SectionTelemetry)
	g.tick++
	g.collector.RecordTick(dt)
	g.fps.Frame(dt, g.store.Len())
	g.flushTelemetry()

	g.profiler.EndTick()
}

// TogglePause freezes or resumes the cycle and the sway.
func (g *Game) TogglePause() {
	g.scheduler.SetPaused(!g.scheduler.Paused())
}

// Restart begins a fresh cycle on the current layout.
func (g *Game) Restart() {
	g.scheduler.Restart(g.scheduler.Targets())
	g.cycle = 0
	g.sway.Reset()
	slog.Info("cycle restarted")
}

// Status returns the HUD view of the session.
func (g *Game) Status() Status {
	st := g.scheduler.State()
	return Status{
		Phase:     st.Phase,
		Kind:      string(st.Kind),
		Progress:  st.Progress,
		Cycle:     st.Cycle,
		Paused:    st.Paused,
		Particles: g.store.Len(),
		Class:     g.quality.Class,
		Step:      g.profile.Step,
		FPS:       g.fps.FPS(),
		LowFPS:    g.fps.Low(),
		Width:     g.width,
		Height:    g.height,
	}
}

// Buffer returns the interleaved xyz positions for the renderer.
func (g *Game) Buffer() []float32 {
	return g.store.Buffer()
}

// Camera returns the session camera.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}

// Profile returns the active layout profile.
func (g *Game) Profile() layout.Profile {
	return g.profile
}

// Quality returns the startup quality profile.
func (g *Game) Quality() device.QualityProfile {
	return g.quality
}

// Targets returns the active target set.
func (g *Game) Targets() *targets.Set {
	return g.scheduler.Targets()
}

// TickStats returns section and phase-kind timings over the profile window.
func (g *Game) TickStats() telemetry.TickStats {
	return g.profiler.Stats()
}

// Tick returns the number of updates run.
func (g *Game) Tick() int32 {
	return g.tick
}

// Unload releases the glyph faces and flushes output files.
func (g *Game) Unload() {
	if err := g.sampler.Close(); err != nil {
		slog.Error("failed to close glyph sampler", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
