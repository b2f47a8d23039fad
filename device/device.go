// Package device turns platform signals into the quality profile that fixes
// particle count and per-class tuning for a session.
package device

import (
	"log/slog"
	"math"
	"runtime"

	"github.com/pthm-cable/morph/config"
)

// LowPowerCPUs is the core count at or below which a CPU counts as weak.
const LowPowerCPUs = 4

// Signals are the raw platform facts quality is derived from.
type Signals struct {
	IsMobile      bool
	IsLowPowerCPU bool
	IsLowEndModel bool    // a known budget handset
	PixelDensity  float64 // device pixels per logical pixel
}

// Detect reads signals from the running platform. Mobile means an android or
// ios build; the low-end model flag can only come from the caller.
func Detect() Signals {
	return Signals{
		IsMobile:      runtime.GOOS == "android" || runtime.GOOS == "ios",
		IsLowPowerCPU: runtime.NumCPU() <= LowPowerCPUs,
		PixelDensity:  1,
	}
}

// Class selects a tuning set.
type Class uint8

const (
	ClassDesktop Class = iota
	ClassMobile
)

func (c Class) String() string {
	if c == ClassMobile {
		return "mobile"
	}
	return "desktop"
}

// PowerPreference is the GPU hint passed to the window.
type PowerPreference string

const (
	HighPerformance PowerPreference = "high-performance"
	LowPower        PowerPreference = "low-power"
)

// ClassTuning holds the per-class values the rest of the engine reads.
type ClassTuning struct {
	LerpFactor   float64
	HeartJitterZ float64
	GlyphJitterZ float64
	RasterScale  float64
	MinGlyphStep int

	pointSize    float64
	pointSizeDiv float64
}

// PointSize returns the rendered point size for a viewport width.
func (t ClassTuning) PointSize(width float64) float64 {
	if t.pointSizeDiv > 0 {
		return math.Max(t.pointSize, width/t.pointSizeDiv)
	}
	return t.pointSize
}

// QualityProfile is decided once at startup and never re-queried.
type QualityProfile struct {
	ParticleCount   int
	PixelDensityCap float64
	Antialiasing    bool
	PowerPreference PowerPreference
	Class           Class
	Tuning          ClassTuning
}

// Constrained reports whether layout should use the coarse glyph tiers.
func (q QualityProfile) Constrained() bool {
	return q.Class == ClassMobile
}

// Derive builds the quality profile for the given signals.
func Derive(sig Signals, cfg *config.Config) QualityProfile {
	q := QualityProfile{
		ParticleCount:   cfg.Quality.DesktopParticles,
		PixelDensityCap: 1,
		Antialiasing:    !sig.IsMobile || !sig.IsLowPowerCPU,
		PowerPreference: HighPerformance,
		Class:           ClassDesktop,
	}
	class := cfg.Classes.Desktop
	densityCap := cfg.Quality.DesktopDensityCap

	if sig.IsMobile {
		q.Class = ClassMobile
		q.PowerPreference = LowPower
		q.ParticleCount = cfg.Quality.MobileParticles
		if sig.IsLowPowerCPU || sig.IsLowEndModel {
			q.ParticleCount = cfg.Quality.LowEndParticles
		}
		class = cfg.Classes.Mobile
		densityCap = cfg.Quality.MobileDensityCap
	}

	if sig.PixelDensity > 1 {
		q.PixelDensityCap = densityCap
	}

	q.Tuning = ClassTuning{
		LerpFactor:   class.LerpFactor,
		HeartJitterZ: class.HeartJitterZ,
		GlyphJitterZ: class.GlyphJitterZ,
		RasterScale:  class.RasterScale,
		MinGlyphStep: class.MinGlyphStep,
		pointSize:    class.PointSize,
		pointSizeDiv: class.PointSizeDiv,
	}
	if sig.IsLowEndModel && class.LowEndPointSize > 0 {
		q.Tuning.pointSize = class.LowEndPointSize
	}
	return q
}

// LogValue implements slog.LogValuer.
func (q QualityProfile) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("particles", q.ParticleCount),
		slog.String("class", q.Class.String()),
		slog.Float64("density_cap", q.PixelDensityCap),
		slog.Bool("antialias", q.Antialiasing),
		slog.String("power", string(q.PowerPreference)),
		slog.Float64("lerp", q.Tuning.LerpFactor),
	)
}
