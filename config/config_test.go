package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Quality.DesktopParticles != 1400 {
		t.Errorf("expected 1400 desktop particles, got %d", cfg.Quality.DesktopParticles)
	}
	if len(cfg.Sequence.Phases) != 10 {
		t.Errorf("expected 10 phases, got %d", len(cfg.Sequence.Phases))
	}
	if cfg.Render.Color != [3]uint8{238, 82, 130} {
		t.Errorf("unexpected colour %v", cfg.Render.Color)
	}
	if cfg.Render.Background != [3]uint8{0, 0, 0} || cfg.Render.GlowAlpha != 0 {
		t.Errorf("expected a plain black clear, got %v glow %d", cfg.Render.Background, cfg.Render.GlowAlpha)
	}

	// 1.2+0.6+3+1+0.6+0.5+2.4+1+2.6+1.6 + 1.0 repeat delay
	want := 15500 * time.Millisecond
	if diff := cfg.Derived.CycleLength - want; diff > time.Millisecond || diff < -time.Millisecond {
		t.Errorf("expected cycle length %v, got %v", want, cfg.Derived.CycleLength)
	}
}

func TestLoadUserOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("quality:\n  desktop_particles: 200\ntext:\n  name: \"Go\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Quality.DesktopParticles != 200 {
		t.Errorf("expected override 200, got %d", cfg.Quality.DesktopParticles)
	}
	if cfg.Text.Name != "Go" {
		t.Errorf("expected name override, got %q", cfg.Text.Name)
	}
	// Untouched fields keep their defaults
	if cfg.Quality.MobileParticles != 1000 {
		t.Errorf("expected default mobile particles, got %d", cfg.Quality.MobileParticles)
	}
}

func TestLoadRejectsBadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("layout:\n  glyph_step:\n    breakpoints: [480, 360]\n    values: [7, 6, 5]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for descending breakpoints")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTableLookup(t *testing.T) {
	table := Table{
		Breakpoints: []float64{320, 375, 414, 768},
		Values:      []float64{0.5, 0.55, 0.6, 0.65, 0.7},
	}

	tests := []struct {
		x    float64
		want float64
	}{
		{-50, 0.5},
		{0, 0.5},
		{320, 0.5}, // inclusive upper bound
		{321, 0.55},
		{375, 0.55},
		{414, 0.6},
		{768, 0.65},
		{769, 0.7},
		{4000, 0.7},
	}

	for _, tt := range tests {
		if got := table.Lookup(tt.x); got != tt.want {
			t.Errorf("Lookup(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestTableLookupSingleValue(t *testing.T) {
	table := Table{Values: []float64{0.1}}
	if err := table.Validate(); err != nil {
		t.Fatalf("single value table should validate: %v", err)
	}
	if got := table.Lookup(1080); got != 0.1 {
		t.Errorf("expected 0.1, got %v", got)
	}
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr bool
	}{
		{"empty", Table{}, true},
		{"count mismatch", Table{Breakpoints: []float64{1, 2}, Values: []float64{1, 2}}, true},
		{"not ascending", Table{Breakpoints: []float64{2, 2}, Values: []float64{1, 2, 3}}, true},
		{"ok", Table{Breakpoints: []float64{1, 2}, Values: []float64{1, 2, 3}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if loaded.Layout.DefaultStep != cfg.Layout.DefaultStep {
		t.Errorf("default step changed across write: %d vs %d", loaded.Layout.DefaultStep, cfg.Layout.DefaultStep)
	}
}
