package targets

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/device"
	"github.com/pthm-cable/morph/layout"
	"github.com/pthm-cable/morph/shapes"
)

type stubGlyphs struct {
	pts []shapes.Point
	err error
	got []shapes.GlyphRequest
}

func (s *stubGlyphs) Sample(req shapes.GlyphRequest) ([]shapes.Point, error) {
	s.got = append(s.got, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.pts, nil
}

func params(t *testing.T, w, h float64, sig device.Signals) Params {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	q := device.Derive(sig, cfg)
	return Params{
		Profile: layout.Plan(cfg.Layout, w, h, q.Constrained()),
		Tuning:  q.Tuning,
		Text:    cfg.Text,
		Count:   q.ParticleCount,
	}
}

func TestAtWrapsIndex(t *testing.T) {
	src := []components.Vec3{{X: 1}, {X: 2}, {X: 3}}

	tests := []struct {
		i    int
		want float32
	}{
		{0, 1}, {2, 3}, {3, 1}, {7, 2}, {1399, 2},
	}
	for _, tt := range tests {
		v, ok := At(src, tt.i)
		if !ok || v.X != tt.want {
			t.Errorf("At(%d) = %v, %v; want X=%v", tt.i, v, ok, tt.want)
		}
	}

	if _, ok := At(nil, 5); ok {
		t.Error("expected no target from an empty source")
	}
}

func TestBuildHeartMapping(t *testing.T) {
	p := params(t, 1920, 1080, device.Signals{})
	rng := rand.New(rand.NewSource(3))
	set := Build(rng, &stubGlyphs{}, p)

	if len(set.Heart) != p.Count {
		t.Fatalf("expected %d heart targets, got %d", p.Count, len(set.Heart))
	}

	halfZ := float32(p.Tuning.HeartJitterZ / 2)
	maxX := float32(16 * p.Profile.HeartScale)
	for i, v := range set.Heart {
		if v.Z < -halfZ || v.Z > halfZ {
			t.Errorf("heart %d z=%f outside jitter ±%f", i, v.Z, halfZ)
		}
		if v.X < -maxX-1e-3 || v.X > maxX+1e-3 {
			t.Errorf("heart %d x=%f outside scaled curve ±%f", i, v.X, maxX)
		}
	}
}

func TestBuildGlyphOffsetsAndRequests(t *testing.T) {
	p := params(t, 375, 812, device.Signals{IsMobile: true})
	glyphs := &stubGlyphs{pts: []shapes.Point{{X: 0, Y: 0}, {X: 10, Y: -5}}}
	set := Build(rand.New(rand.NewSource(1)), glyphs, p)

	if len(glyphs.got) != 2 {
		t.Fatalf("expected 2 glyph requests, got %d", len(glyphs.got))
	}
	name := glyphs.got[0]
	if name.Text != p.Text.Name || name.W != p.Profile.NameRaster.W || name.Step != p.Profile.Step {
		t.Errorf("unexpected name request %+v", name)
	}
	if name.RasterScale != 0.8 || name.MinStep != 6 {
		t.Errorf("expected mobile raster tuning in request, got %+v", name)
	}

	if len(set.Name) != 2 || len(set.Phrase) != 2 {
		t.Fatalf("expected 2 name and 2 phrase targets, got %d, %d", len(set.Name), len(set.Phrase))
	}
	if got, want := float64(set.Name[0].Y), p.Profile.NameOffsetY; math.Abs(got-want) > 1e-3 {
		t.Errorf("name y = %f, want offset %f", got, want)
	}
	if got, want := float64(set.Phrase[1].Y), p.Profile.PhraseOffsetY-5; math.Abs(got-want) > 1e-3 {
		t.Errorf("phrase y = %f, want %f", got, want)
	}
}

func TestBuildSurvivesGlyphFailure(t *testing.T) {
	p := params(t, 800, 600, device.Signals{})
	set := Build(rand.New(rand.NewSource(1)), &stubGlyphs{err: errors.New("no font")}, p)

	if len(set.Heart) == 0 {
		t.Error("heart should still be built")
	}
	if set.Name == nil || len(set.Name) != 0 || len(set.Phrase) != 0 {
		t.Errorf("expected empty glyph sequences, got %d / %d", len(set.Name), len(set.Phrase))
	}
}

func TestBuildEmptyText(t *testing.T) {
	glyphs, err := shapes.NewGlyphSampler()
	if err != nil {
		t.Fatal(err)
	}
	defer glyphs.Close()

	p := params(t, 1024, 768, device.Signals{})
	p.Text.Name = ""
	p.Text.Phrase = ""

	set := Build(rand.New(rand.NewSource(1)), glyphs, p)
	if len(set.Name) != 0 || len(set.Phrase) != 0 {
		t.Errorf("expected empty glyph targets for empty text, got %d / %d", len(set.Name), len(set.Phrase))
	}
	if set.Empty() {
		t.Error("heart targets should keep the set non-empty")
	}
}

func TestBuildRealGlyphs(t *testing.T) {
	glyphs, err := shapes.NewGlyphSampler()
	if err != nil {
		t.Fatal(err)
	}
	defer glyphs.Close()

	p := params(t, 1920, 1080, device.Signals{})
	set := Build(rand.New(rand.NewSource(1)), glyphs, p)
	if len(set.Name) == 0 || len(set.Phrase) == 0 {
		t.Errorf("expected glyph targets, got %d / %d", len(set.Name), len(set.Phrase))
	}
}

func TestSetEmpty(t *testing.T) {
	var nilSet *Set
	if !nilSet.Empty() || !(&Set{}).Empty() {
		t.Error("nil and zero sets should be empty")
	}
}
