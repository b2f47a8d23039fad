package layout

import (
	"math"
	"testing"

	"github.com/pthm-cable/morph/config"
)

func layoutConfig(t *testing.T) config.LayoutConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return cfg.Layout
}

func TestPlanWideScreen(t *testing.T) {
	cfg := layoutConfig(t)
	p := Plan(cfg, 1920, 1080, false)

	if !p.Landscape {
		t.Fatal("expected landscape for 1920x1080")
	}
	if p.HeartSize != 540 {
		t.Errorf("expected heart size 540, got %f", p.HeartSize)
	}
	if want := 540.0 / 36; math.Abs(p.HeartScale-want) > 1e-9 {
		t.Errorf("expected heart scale %f, got %f", want, p.HeartScale)
	}
	if want := 1080 * 0.1; math.Abs(p.HeartOffsetY-want) > 1e-9 {
		t.Errorf("expected heart offset %f, got %f", want, p.HeartOffsetY)
	}
	if p.Step != 4 {
		t.Errorf("expected default step 4, got %d", p.Step)
	}
	// 0.25*1920 = 480, 0.25*1080 = 270
	if p.NameRaster != (Raster{480, 270}) {
		t.Errorf("unexpected name raster %+v", p.NameRaster)
	}
	if p.NameFontScale != 0.9 || p.PhraseFontScale != 0.65 {
		t.Errorf("unexpected font scales %f / %f", p.NameFontScale, p.PhraseFontScale)
	}
}

func TestPlanNarrowLowPower(t *testing.T) {
	cfg := layoutConfig(t)
	p := Plan(cfg, 320, 640, true)

	if p.Landscape {
		t.Fatal("expected portrait for 320x640")
	}
	if p.HeartSize != 160 {
		t.Errorf("expected heart size 320*0.5 = 160, got %f", p.HeartSize)
	}
	if p.Step != 7 {
		t.Errorf("expected coarsest step 7, got %d", p.Step)
	}
	// portrait, height 640 <= 800
	if want := 640 * 0.05; math.Abs(p.HeartOffsetY-want) > 1e-9 {
		t.Errorf("expected heart offset %f, got %f", want, p.HeartOffsetY)
	}
	// max(250, floor(320*0.75)=240), max(70, floor(640*0.12)=76)
	if p.NameRaster != (Raster{250, 76}) {
		t.Errorf("unexpected name raster %+v", p.NameRaster)
	}
}

func TestPlanGlyphStepTiers(t *testing.T) {
	cfg := layoutConfig(t)

	tests := []struct {
		w, h     float64
		lowPower bool
		want     int
	}{
		{320, 640, true, 7},
		{360, 800, true, 7},
		{414, 896, true, 6},
		{480, 900, true, 6},
		{768, 1024, true, 5},
		{320, 640, false, 4},
		{1920, 1080, false, 4},
	}

	for _, tt := range tests {
		p := Plan(cfg, tt.w, tt.h, tt.lowPower)
		if p.Step != tt.want {
			t.Errorf("Plan(%vx%v, lowPower=%v).Step = %d, want %d", tt.w, tt.h, tt.lowPower, p.Step, tt.want)
		}
	}
}

func TestPlanHeartScaleBuckets(t *testing.T) {
	cfg := layoutConfig(t)

	tests := []struct {
		w, h float64
		frac float64
		base float64
	}{
		{800, 400, 0.35, 400},  // landscape, h <= 400
		{1000, 600, 0.4, 600},  // landscape, h <= 600
		{1200, 800, 0.45, 800}, // landscape, h <= 800
		{375, 812, 0.55, 375},  // portrait, w <= 375
		{414, 896, 0.6, 414},   // portrait, w <= 414
		{768, 1024, 0.65, 768}, // portrait, w <= 768
		{900, 1200, 0.7, 900},  // portrait, wide
	}

	for _, tt := range tests {
		p := Plan(cfg, tt.w, tt.h, false)
		if want := tt.base * tt.frac; math.Abs(p.HeartSize-want) > 1e-9 {
			t.Errorf("Plan(%vx%v).HeartSize = %f, want %f", tt.w, tt.h, p.HeartSize, want)
		}
	}
}

func TestPlanSquareIsPortrait(t *testing.T) {
	cfg := layoutConfig(t)
	if p := Plan(cfg, 600, 600, false); p.Landscape {
		t.Error("square viewport should be portrait")
	}
}

func TestPlanStacksGlyphsAboveHeart(t *testing.T) {
	cfg := layoutConfig(t)

	for _, vp := range [][2]float64{{1920, 1080}, {375, 812}, {320, 640}} {
		p := Plan(cfg, vp[0], vp[1], false)
		if p.NameOffsetY <= p.HeartOffsetY {
			t.Errorf("%vx%v: name offset %f not past heart offset %f", vp[0], vp[1], p.NameOffsetY, p.HeartOffsetY)
		}
		if p.PhraseOffsetY <= p.NameOffsetY {
			t.Errorf("%vx%v: phrase offset %f not past name offset %f", vp[0], vp[1], p.PhraseOffsetY, p.NameOffsetY)
		}
	}
}

func TestPlanIdempotent(t *testing.T) {
	cfg := layoutConfig(t)

	a := Plan(cfg, 1366, 768, true)
	b := Plan(cfg, 1366, 768, true)
	if a != b {
		t.Errorf("Plan not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestPlanClampsDegenerateViewport(t *testing.T) {
	cfg := layoutConfig(t)

	tests := []struct {
		name string
		w, h float64
	}{
		{"zero", 0, 0},
		{"negative", -100, -50},
		{"zero width", 0, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Plan(cfg, tt.w, tt.h, true)
			if p.W < 1 || p.H < 1 {
				t.Errorf("expected clamped dims >= 1, got %fx%f", p.W, p.H)
			}
			if p.Step != 7 {
				t.Errorf("expected lowest bucket step 7, got %d", p.Step)
			}
			if math.IsNaN(p.HeartScale) || p.HeartScale <= 0 {
				t.Errorf("expected positive heart scale, got %f", p.HeartScale)
			}
			if p.NameRaster.W <= 0 || p.NameRaster.H <= 0 {
				t.Errorf("expected minimum raster, got %+v", p.NameRaster)
			}
		})
	}
}
