// Package targets builds the world-space target sets for the shape phases.
package targets

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/device"
	"github.com/pthm-cable/morph/layout"
	"github.com/pthm-cable/morph/shapes"
)

// Set holds the per-shape target sequences for one layout. A Set is never
// modified after Build; a resize replaces it wholesale.
type Set struct {
	Heart  []components.Vec3
	Name   []components.Vec3
	Phrase []components.Vec3
}

// Empty reports whether every sequence is empty.
func (s *Set) Empty() bool {
	return s == nil || len(s.Heart)+len(s.Name)+len(s.Phrase) == 0
}

// At maps particle i onto src by wrapping the index. The bool is false for an
// empty source.
func At(src []components.Vec3, i int) (components.Vec3, bool) {
	if len(src) == 0 {
		return components.Vec3{}, false
	}
	return src[i%len(src)], true
}

// GlyphSource samples text silhouettes.
type GlyphSource interface {
	Sample(req shapes.GlyphRequest) ([]shapes.Point, error)
}

// Params bundles the inputs of Build.
type Params struct {
	Profile layout.Profile
	Tuning  device.ClassTuning
	Text    config.TextConfig
	Count   int // number of heart samples
}

// Build samples every shape for the given layout. Glyph failures are logged
// and leave the affected sequence empty; Build itself never fails.
func Build(rng *rand.Rand, glyphs GlyphSource, p Params) *Set {
	prof := p.Profile
	set := &Set{}

	heart := shapes.SampleHeart(rng, p.Count)
	set.Heart = make([]components.Vec3, len(heart))
	for i, pt := range heart {
		set.Heart[i] = components.Vec3{
			X: float32(pt.X * prof.HeartScale),
			Y: float32(pt.Y*prof.HeartScale + prof.HeartOffsetY),
			Z: jitter(rng, p.Tuning.HeartJitterZ),
		}
	}

	set.Name = glyphTargets(rng, glyphs, "name", shapes.GlyphRequest{
		Text:        p.Text.Name,
		W:           prof.NameRaster.W,
		H:           prof.NameRaster.H,
		Step:        prof.Step,
		FontScale:   prof.NameFontScale,
		RasterScale: p.Tuning.RasterScale,
		MinStep:     p.Tuning.MinGlyphStep,
		Threshold:   p.Text.AlphaThreshold,
	}, prof.NameOffsetY, p.Tuning.GlyphJitterZ)

	set.Phrase = glyphTargets(rng, glyphs, "phrase", shapes.GlyphRequest{
		Text:        p.Text.Phrase,
		W:           prof.PhraseRaster.W,
		H:           prof.PhraseRaster.H,
		Step:        prof.Step,
		FontScale:   prof.PhraseFontScale,
		RasterScale: p.Tuning.RasterScale,
		MinStep:     p.Tuning.MinGlyphStep,
		Threshold:   p.Text.AlphaThreshold,
	}, prof.PhraseOffsetY, p.Tuning.GlyphJitterZ)

	return set
}

func glyphTargets(rng *rand.Rand, glyphs GlyphSource, label string, req shapes.GlyphRequest, offsetY, jitterZ float64) []components.Vec3 {
	if glyphs == nil {
		return []components.Vec3{}
	}
	pts, err := glyphs.Sample(req)
	if err != nil {
		slog.Error("glyph sampling failed", "shape", label, "text", req.Text, "error", err)
		return []components.Vec3{}
	}
	out := make([]components.Vec3, len(pts))
	for i, pt := range pts {
		out[i] = components.Vec3{
			X: float32(pt.X),
			Y: float32(pt.Y + offsetY),
			Z: jitter(rng, jitterZ),
		}
	}
	return out
}

// jitter returns a value uniform in [-span/2, span/2).
func jitter(rng *rand.Rand, span float64) float32 {
	return float32((rng.Float64() - 0.5) * span)
}
