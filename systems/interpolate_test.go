package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/morph/components"
)

func TestInterpolateSingleStep(t *testing.T) {
	s := NewParticleStore(rand.New(rand.NewSource(1)), 0)
	s.Initialize(1, 0, 0) // zero volume puts the particle at the origin

	s.SetTarget(0, components.Vec3{X: 100, Y: -50, Z: 20})
	Interpolate(s, 0.08)

	p := s.Position(0)
	want := components.Vec3{X: 8, Y: -4, Z: 1.6}
	if absf(p.X-want.X) > 1e-4 || absf(p.Y-want.Y) > 1e-4 || absf(p.Z-want.Z) > 1e-4 {
		t.Errorf("expected %+v after one step, got %+v", want, p)
	}
}

func TestInterpolateSkipsUntargeted(t *testing.T) {
	s := NewParticleStore(rand.New(rand.NewSource(2)), 400)
	s.Initialize(10, 800, 600)

	before := make([]components.Vec3, s.Len())
	for i := range before {
		before[i] = s.Position(i)
	}
	// Only even particles get a target
	for i := 0; i < s.Len(); i += 2 {
		s.SetTarget(i, components.Vec3{})
	}
	Interpolate(s, 0.5)

	for i := range before {
		moved := s.Position(i) != before[i]
		if i%2 == 0 && !moved && before[i] != (components.Vec3{}) {
			t.Errorf("targeted particle %d did not move", i)
		}
		if i%2 == 1 && moved {
			t.Errorf("untargeted particle %d moved", i)
		}
	}
}

func TestInterpolateConvergesMonotonically(t *testing.T) {
	lerps := []float32{0.06, 0.08}

	for _, lerp := range lerps {
		s := NewParticleStore(rand.New(rand.NewSource(9)), 400)
		s.Initialize(200, 1280, 720)
		for i := 0; i < s.Len(); i++ {
			s.SetTarget(i, components.Vec3{X: 10, Y: 20, Z: -5})
		}

		prev := s.Residuals(nil)
		for tick := 0; tick < 120; tick++ {
			Interpolate(s, lerp)
			cur := s.Residuals(nil)
			for i := range cur {
				if cur[i] > prev[i]+1e-4 {
					t.Fatalf("lerp %v tick %d: particle %d residual grew %f -> %f", lerp, tick, i, prev[i], cur[i])
				}
			}
			prev = cur
		}
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
