// Package layout decides shape sizes and placement for a viewport.
package layout

import (
	"math"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/shapes"
)

// Raster is the off-screen glyph raster size in pixels.
type Raster struct {
	W, H int
}

// Profile is the planner output for one viewport. It is a pure function of
// the inputs and never retained across resizes.
type Profile struct {
	Landscape bool
	W, H      float64 // clamped viewport size
	MinDim    float64

	HeartSize    float64 // base dimension times the heart scale fraction
	HeartScale   float64 // multiplier applied to raw heart-curve points
	HeartOffsetY float64 // vertical shift of the heart, world units (y up)

	NameRaster      Raster
	PhraseRaster    Raster
	NameFontScale   float64
	PhraseFontScale float64
	NameOffsetY     float64
	PhraseOffsetY   float64

	Step int // glyph sampling stride
}

// Plan computes the layout profile for a width×height viewport.
// Dimensions below 1 are clamped to 1.
func Plan(cfg config.LayoutConfig, width, height float64, lowPower bool) Profile {
	w := math.Max(width, 1)
	h := math.Max(height, 1)

	p := Profile{
		Landscape: w > h,
		W:         w,
		H:         h,
		MinDim:    math.Min(w, h),
	}

	// Landscape tables are keyed by height, portrait tables by width
	key, base := w, w
	if p.Landscape {
		key, base = h, h
	}
	pick := func(t config.OrientedTable) float64 {
		if p.Landscape {
			return t.Landscape.Lookup(key)
		}
		return t.Portrait.Lookup(key)
	}
	orient := func(o config.Oriented) float64 {
		if p.Landscape {
			return o.Landscape
		}
		return o.Portrait
	}

	p.HeartSize = base * pick(cfg.HeartScale)
	unit := cfg.CurveUnit
	if unit <= 0 {
		unit = shapes.HeartExtent
	}
	p.HeartScale = p.HeartSize / unit

	if p.Landscape {
		p.HeartOffsetY = h * cfg.HeartOffset.Landscape.Lookup(h)
	} else {
		p.HeartOffsetY = h * cfg.HeartOffset.Portrait.Lookup(h)
	}

	p.NameFontScale = pick(cfg.NameFont)
	p.PhraseFontScale = pick(cfg.PhraseFont)

	nameRaster, phraseRaster := cfg.NameRaster.Portrait, cfg.PhraseRaster.Portrait
	if p.Landscape {
		nameRaster, phraseRaster = cfg.NameRaster.Landscape, cfg.PhraseRaster.Landscape
	}
	p.NameRaster = raster(nameRaster, w, h)
	p.PhraseRaster = raster(phraseRaster, w, h)

	p.NameOffsetY = p.HeartOffsetY + p.HeartSize*orient(cfg.NameOffset)
	p.PhraseOffsetY = p.NameOffsetY + float64(p.NameRaster.H)*orient(cfg.PhraseOffset)

	p.Step = cfg.DefaultStep
	if lowPower {
		p.Step = int(cfg.GlyphStep.Lookup(p.MinDim))
	}

	return p
}

func raster(rc config.RasterConfig, w, h float64) Raster {
	return Raster{
		W: max(rc.MinWidth, int(math.Floor(w*rc.WidthFrac))),
		H: max(rc.MinHeight, int(math.Floor(h*rc.HeightFrac))),
	}
}
