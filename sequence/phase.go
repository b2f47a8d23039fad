package sequence

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/targets"
)

// Kind identifies what a phase does on entry.
type Kind string

const (
	KindDisperse Kind = "disperse"
	KindPause    Kind = "pause"
	KindHeart    Kind = "heart"
	KindExplode  Kind = "explode"
	KindName     Kind = "name"
	KindPhrase   Kind = "phrase"
)

// Particles is the view of the particle store that phases write through.
type Particles interface {
	Len() int
	Position(i int) components.Vec3
	SetTarget(i int, v components.Vec3)
	ClearTargets()
	Scatter()
}

// AssignFunc sets particle targets once, on phase entry.
type AssignFunc func(p Particles, set *targets.Set, rng *rand.Rand)

// Phase is one step of the animation cycle. A nil Assign makes it a pause.
type Phase struct {
	Name     string
	Kind     Kind
	Duration time.Duration
	Ease     Ease
	Assign   AssignFunc
}

// Moves reports whether particles are interpolated while the phase runs.
func (p Phase) Moves() bool {
	return p.Assign != nil
}

// Scatter reseeds every position and targets the new positions, so the
// particles hold where they landed.
func Scatter(p Particles, _ *targets.Set, _ *rand.Rand) {
	p.Scatter()
	for i := 0; i < p.Len(); i++ {
		p.SetTarget(i, p.Position(i))
	}
}

// Shape returns an AssignFunc mapping particle i onto src(set)[i % len].
// An empty source clears all targets so the particles hold.
func Shape(src func(*targets.Set) []components.Vec3) AssignFunc {
	return func(p Particles, set *targets.Set, _ *rand.Rand) {
		var pts []components.Vec3
		if set != nil {
			pts = src(set)
		}
		if len(pts) == 0 {
			p.ClearTargets()
			return
		}
		for i := 0; i < p.Len(); i++ {
			v, _ := targets.At(pts, i)
			p.SetTarget(i, v)
		}
	}
}

// Explode returns an AssignFunc that throws each particle outward in a random
// planar direction by minDist..minDist+rangeDist, with a random z in
// ±depth/2.
func Explode(minDist, rangeDist, depth float64) AssignFunc {
	return func(p Particles, _ *targets.Set, rng *rand.Rand) {
		for i := 0; i < p.Len(); i++ {
			pos := p.Position(i)
			ang := rng.Float64() * 2 * math.Pi
			dist := minDist + rng.Float64()*rangeDist
			p.SetTarget(i, components.Vec3{
				X: pos.X + float32(math.Cos(ang)*dist),
				Y: pos.Y + float32(math.Sin(ang)*dist),
				Z: float32((rng.Float64() - 0.5) * depth),
			})
		}
	}
}

func heartTargets(s *targets.Set) []components.Vec3  { return s.Heart }
func nameTargets(s *targets.Set) []components.Vec3   { return s.Name }
func phraseTargets(s *targets.Set) []components.Vec3 { return s.Phrase }

// FromConfig builds the phase list described by cfg.
func FromConfig(cfg config.SequenceConfig) ([]Phase, error) {
	phases := make([]Phase, 0, len(cfg.Phases))
	for i, pc := range cfg.Phases {
		ease, err := EaseByName(pc.Ease)
		if err != nil {
			return nil, fmt.Errorf("phase %d %q: %w", i, pc.Name, err)
		}
		ph := Phase{
			Name:     pc.Name,
			Kind:     Kind(pc.Kind),
			Duration: time.Duration(pc.Duration * float64(time.Second)),
			Ease:     ease,
		}
		switch ph.Kind {
		case KindDisperse:
			ph.Assign = Scatter
		case KindPause:
		case KindHeart:
			ph.Assign = Shape(heartTargets)
		case KindExplode:
			ph.Assign = Explode(cfg.ExplodeMin, cfg.ExplodeRange, cfg.ExplodeDepth)
		case KindName:
			ph.Assign = Shape(nameTargets)
		case KindPhrase:
			ph.Assign = Shape(phraseTargets)
		default:
			return nil, fmt.Errorf("phase %d %q: unknown kind %q", i, pc.Name, pc.Kind)
		}
		if ph.Name == "" {
			ph.Name = string(ph.Kind)
		}
		phases = append(phases, ph)
	}
	return phases, nil
}
