// Package config provides configuration loading and access for the morph engine.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Quality   QualityConfig   `yaml:"quality"`
	Classes   ClassesConfig   `yaml:"classes"`
	Layout    LayoutConfig    `yaml:"layout"`
	Text      TextConfig      `yaml:"text"`
	Particles ParticlesConfig `yaml:"particles"`
	Sequence  SequenceConfig  `yaml:"sequence"`
	Render    RenderConfig    `yaml:"render"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width               int     `yaml:"width"`
	Height              int     `yaml:"height"`
	TargetFPS           int     `yaml:"target_fps"`
	ResizeDebounce      float64 `yaml:"resize_debounce"`      // seconds of quiet before a resize is applied
	OrientationDebounce float64 `yaml:"orientation_debounce"` // used instead when the resize flips orientation
}

// QualityConfig holds the device tiers that decide the particle count and
// renderer quality once at startup.
type QualityConfig struct {
	DesktopParticles  int     `yaml:"desktop_particles"`
	MobileParticles   int     `yaml:"mobile_particles"`
	LowEndParticles   int     `yaml:"low_end_particles"` // mobile with a weak CPU or a known low-end model
	DesktopDensityCap float64 `yaml:"desktop_density_cap"`
	MobileDensityCap  float64 `yaml:"mobile_density_cap"`
}

// ClassesConfig holds per device-class tuning.
type ClassesConfig struct {
	Desktop ClassConfig `yaml:"desktop"`
	Mobile  ClassConfig `yaml:"mobile"`
}

// ClassConfig holds tuning that differs between constrained and full devices.
type ClassConfig struct {
	LerpFactor      float64 `yaml:"lerp_factor"`        // per-tick ease fraction
	HeartJitterZ    float64 `yaml:"heart_jitter_z"`     // full z range of heart targets
	GlyphJitterZ    float64 `yaml:"glyph_jitter_z"`     // full z range of glyph targets
	RasterScale     float64 `yaml:"raster_scale"`       // glyph raster shrink (1 = none)
	MinGlyphStep    int     `yaml:"min_glyph_step"`     // floor for the glyph sampling stride
	PointSize       float64 `yaml:"point_size"`         // base point size in pixels
	LowEndPointSize float64 `yaml:"low_end_point_size"` // used on known low-end models (0 = point_size)
	PointSizeDiv    float64 `yaml:"point_size_div"`     // size = max(point_size, width/div); 0 disables
}

// LayoutConfig holds the piecewise tables used by the layout planner.
// Landscape tables are keyed by viewport height, portrait tables by width,
// except HeartOffset which is keyed by height in both orientations.
type LayoutConfig struct {
	CurveUnit    float64        `yaml:"curve_unit"` // intrinsic size of the heart curve
	HeartScale   OrientedTable  `yaml:"heart_scale"`
	HeartOffset  OrientedTable  `yaml:"heart_offset"`
	NameFont     OrientedTable  `yaml:"name_font"`
	PhraseFont   OrientedTable  `yaml:"phrase_font"`
	NameRaster   OrientedRaster `yaml:"name_raster"`
	PhraseRaster OrientedRaster `yaml:"phrase_raster"`
	NameOffset   Oriented       `yaml:"name_offset"`   // fraction of heart size above the heart
	PhraseOffset Oriented       `yaml:"phrase_offset"` // fraction of name raster height from the name
	GlyphStep    Table          `yaml:"glyph_step"`    // low-power stride keyed by min dimension
	DefaultStep  int            `yaml:"default_step"`  // stride on full-power devices
}

// Oriented holds one scalar per orientation.
type Oriented struct {
	Landscape float64 `yaml:"landscape"`
	Portrait  float64 `yaml:"portrait"`
}

// OrientedTable holds one table per orientation.
type OrientedTable struct {
	Landscape Table `yaml:"landscape"`
	Portrait  Table `yaml:"portrait"`
}

// RasterConfig sizes an off-screen glyph raster as max(min, floor(dim*frac)).
type RasterConfig struct {
	WidthFrac  float64 `yaml:"width_frac"`
	MinWidth   int     `yaml:"min_width"`
	HeightFrac float64 `yaml:"height_frac"`
	MinHeight  int     `yaml:"min_height"`
}

// OrientedRaster holds one raster rule per orientation.
type OrientedRaster struct {
	Landscape RasterConfig `yaml:"landscape"`
	Portrait  RasterConfig `yaml:"portrait"`
}

// TextConfig holds the glyph strings and sampling threshold.
type TextConfig struct {
	Name           string `yaml:"name"`
	Phrase         string `yaml:"phrase"`
	AlphaThreshold uint8  `yaml:"alpha_threshold"` // coverage above this emits a point
}

// ParticlesConfig holds particle store parameters.
type ParticlesConfig struct {
	Depth float64 `yaml:"depth"` // full z range of scattered positions
}

// PhaseConfig describes one phase of the animation cycle.
type PhaseConfig struct {
	Name     string  `yaml:"name"`
	Kind     string  `yaml:"kind"`     // disperse, pause, heart, explode, name, phrase
	Duration float64 `yaml:"duration"` // seconds
	Ease     string  `yaml:"ease"`
}

// SequenceConfig holds the phase list and burst parameters.
type SequenceConfig struct {
	Phases       []PhaseConfig `yaml:"phases"`
	RepeatDelay  float64       `yaml:"repeat_delay"` // seconds between cycles
	ExplodeMin   float64       `yaml:"explode_min"`  // minimum radial burst distance
	ExplodeRange float64       `yaml:"explode_range"`
	ExplodeDepth float64       `yaml:"explode_depth"` // full z range of burst targets
}

// RenderConfig holds point renderer settings.
type RenderConfig struct {
	Color      [3]uint8 `yaml:"color"`
	Background [3]uint8 `yaml:"background"`
	Additive   bool     `yaml:"additive"`
	GlowAlpha  uint8    `yaml:"glow_alpha"` // radial glow behind the scene (0 = plain clear)
}

// CameraConfig holds the perspective camera and scene sway parameters.
type CameraConfig struct {
	Fovy           float64 `yaml:"fovy"`
	Distance       float64 `yaml:"distance"`
	SwayAmplitude  float64 `yaml:"sway_amplitude"`   // radians
	SwayHalfPeriod float64 `yaml:"sway_half_period"` // seconds per swing
	SwayFrequency  float64 `yaml:"sway_frequency"`   // spring angular frequency
	SwayDamping    float64 `yaml:"sway_damping"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow        float64 `yaml:"stats_window"` // seconds per stats.csv row
	FPSWindow          float64 `yaml:"fps_window"`   // seconds
	LowFPS             float64 `yaml:"low_fps"`
	LowFPSMinParticles int     `yaml:"low_fps_min_particles"`
	ProfileWindow      int     `yaml:"profile_window"` // ticks averaged by the tick profiler
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	RepeatDelay         time.Duration
	ResizeDebounce      time.Duration
	OrientationDebounce time.Duration
	CycleLength         time.Duration // sum of phase durations plus repeat delay
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the tables and phase list for shapes the planner and
// scheduler cannot use.
func (c *Config) Validate() error {
	l := &c.Layout
	tables := []struct {
		name  string
		table Table
	}{
		{"heart_scale.landscape", l.HeartScale.Landscape},
		{"heart_scale.portrait", l.HeartScale.Portrait},
		{"heart_offset.landscape", l.HeartOffset.Landscape},
		{"heart_offset.portrait", l.HeartOffset.Portrait},
		{"name_font.landscape", l.NameFont.Landscape},
		{"name_font.portrait", l.NameFont.Portrait},
		{"phrase_font.landscape", l.PhraseFont.Landscape},
		{"phrase_font.portrait", l.PhraseFont.Portrait},
		{"glyph_step", l.GlyphStep},
	}
	for _, t := range tables {
		if err := t.table.Validate(); err != nil {
			return fmt.Errorf("layout.%s: %w", t.name, err)
		}
	}
	if l.CurveUnit <= 0 {
		return errors.New("layout.curve_unit must be positive")
	}

	if len(c.Sequence.Phases) == 0 {
		return errors.New("sequence.phases is empty")
	}
	for i, p := range c.Sequence.Phases {
		if p.Duration < 0 {
			return fmt.Errorf("sequence.phases[%d] %q: negative duration", i, p.Name)
		}
	}

	for name, class := range map[string]ClassConfig{"desktop": c.Classes.Desktop, "mobile": c.Classes.Mobile} {
		if class.LerpFactor <= 0 || class.LerpFactor >= 1 {
			return fmt.Errorf("classes.%s.lerp_factor must be in (0,1), got %v", name, class.LerpFactor)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.RepeatDelay = seconds(c.Sequence.RepeatDelay)
	c.Derived.ResizeDebounce = seconds(c.Screen.ResizeDebounce)
	c.Derived.OrientationDebounce = max(seconds(c.Screen.OrientationDebounce), c.Derived.ResizeDebounce)

	total := c.Derived.RepeatDelay
	for _, p := range c.Sequence.Phases {
		total += seconds(p.Duration)
	}
	c.Derived.CycleLength = total
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
