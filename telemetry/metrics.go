package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes session telemetry as Prometheus series. A nil *Metrics
// ignores every call.
type Metrics struct {
	registry *prometheus.Registry

	FPS          prometheus.Gauge
	Particles    prometheus.Gauge
	Cycle        prometheus.Gauge
	Phases       *prometheus.CounterVec
	Reconfigures prometheus.Counter
	Residual     *prometheus.GaugeVec
	Converged    *prometheus.GaugeVec
	TickSeconds  prometheus.Histogram
	KindTick     *prometheus.GaugeVec
}

// NewMetrics creates the series on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FPS: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "morph_fps",
			Help: "Frames per second over the last FPS window",
		}),
		Particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "morph_particles",
			Help: "Number of particles in the store",
		}),
		Cycle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "morph_cycle",
			Help: "Current animation cycle since the last restart",
		}),
		Phases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "morph_phases_total",
			Help: "Completed phases by kind",
		}, []string{"kind"}),
		Reconfigures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "morph_reconfigures_total",
			Help: "Layout rebuilds after viewport changes",
		}),
		Residual: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "morph_phase_residual",
			Help: "Mean distance to target at the end of the last phase of each kind",
		}, []string{"kind"}),
		Converged: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "morph_phase_converged_ratio",
			Help: "Fraction of targeted particles within the converged radius at phase end",
		}, []string{"kind"}),
		TickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "morph_tick_seconds",
			Help:    "Average session tick duration per stats window",
			Buckets: prometheus.ExponentialBuckets(50e-6, 2, 10),
		}),
		KindTick: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "morph_kind_tick_seconds",
			Help: "Mean tick duration while a phase of each kind was active",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		m.FPS, m.Particles, m.Cycle, m.Phases, m.Reconfigures,
		m.Residual, m.Converged, m.TickSeconds, m.KindTick,
	)
	return m
}

// ObservePhase records a completed phase.
func (m *Metrics) ObservePhase(r PhaseRecord) {
	if m == nil {
		return
	}
	m.Phases.WithLabelValues(r.Kind).Inc()
	m.Cycle.Set(float64(r.Cycle))
	if r.Targeted > 0 {
		m.Residual.WithLabelValues(r.Kind).Set(r.ResidualMean)
		m.Converged.WithLabelValues(r.Kind).Set(r.Converged)
	}
}

// ObserveWindow records a closed stats window.
func (m *Metrics) ObserveWindow(s WindowStats, ticks TickStats) {
	if m == nil {
		return
	}
	m.FPS.Set(s.FPS)
	m.Particles.Set(float64(s.Particles))
	if ticks.Mean > 0 {
		m.TickSeconds.Observe(ticks.Mean.Seconds())
	}
	for kind, d := range ticks.KindMean {
		m.KindTick.WithLabelValues(kind).Set(d.Seconds())
	}
}

// ObserveReconfigure records a layout rebuild.
func (m *Metrics) ObserveReconfigure() {
	if m == nil {
		return
	}
	m.Reconfigures.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
