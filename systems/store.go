package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morph/components"
)

// ParticleStore owns the particle entities and the flat position buffer the
// renderer reads. Particle count is fixed between calls to Initialize.
type ParticleStore struct {
	world *ecs.World

	mapper *ecs.Map3[components.Position, components.Target, components.Slot]
	filter *ecs.Filter3[components.Position, components.Target, components.Slot]

	// Slot index to entity
	entities []ecs.Entity

	// Interleaved xyz, 3 floats per particle
	buffer []float32
	dirty  bool

	rng *rand.Rand

	// Scatter volume
	width, height, depth float32
}

// NewParticleStore creates an empty store. depth is the full z range of
// scattered positions.
func NewParticleStore(rng *rand.Rand, depth float32) *ParticleStore {
	s := &ParticleStore{rng: rng, depth: depth}
	s.resetWorld()
	return s
}

func (s *ParticleStore) resetWorld() {
	world := ecs.NewWorld()
	s.world = world
	s.mapper = ecs.NewMap3[components.Position, components.Target, components.Slot](world)
	s.filter = ecs.NewFilter3[components.Position, components.Target, components.Slot](world)
}

// Initialize replaces every particle with n new ones scattered uniformly over
// the width×height viewport and the configured depth, then syncs the buffer.
func (s *ParticleStore) Initialize(n int, width, height float32) {
	if n < 0 {
		n = 0
	}
	s.resetWorld()
	s.width, s.height = width, height

	s.entities = make([]ecs.Entity, n)
	s.buffer = make([]float32, 3*n)
	for i := range s.entities {
		pos := s.randomPosition()
		target := components.Target{}
		slot := components.Slot{Index: int32(i)}
		s.entities[i] = s.mapper.NewEntity(&pos, &target, &slot)
	}
	s.SyncBuffer()
}

// Len returns the particle count.
func (s *ParticleStore) Len() int {
	return len(s.entities)
}

// Position returns particle i's position.
func (s *ParticleStore) Position(i int) components.Vec3 {
	pos, _, _ := s.mapper.Get(s.entities[i])
	return pos.Vec()
}

// Target returns particle i's target and whether one is set.
func (s *ParticleStore) Target(i int) (components.Vec3, bool) {
	_, target, _ := s.mapper.Get(s.entities[i])
	return target.Vec(), target.Set
}

// SetTarget assigns particle i's target.
func (s *ParticleStore) SetTarget(i int, v components.Vec3) {
	_, target, _ := s.mapper.Get(s.entities[i])
	*target = components.Target{X: v.X, Y: v.Y, Z: v.Z, Set: true}
}

// ClearTargets removes every particle's target.
func (s *ParticleStore) ClearTargets() {
	query := s.filter.Query()
	for query.Next() {
		_, target, _ := query.Get()
		*target = components.Target{}
	}
}

// SetBounds changes the scatter volume used by later calls to Scatter.
func (s *ParticleStore) SetBounds(width, height float32) {
	s.width, s.height = width, height
}

// Scatter teleports every particle to a fresh random position inside the
// scatter volume and syncs the buffer. Targets are left alone.
func (s *ParticleStore) Scatter() {
	query := s.filter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		*pos = s.randomPosition()
	}
	s.SyncBuffer()
}

// SyncBuffer copies every position into the render buffer and marks it dirty.
func (s *ParticleStore) SyncBuffer() {
	query := s.filter.Query()
	for query.Next() {
		pos, _, slot := query.Get()
		j := int(slot.Index) * 3
		s.buffer[j] = pos.X
		s.buffer[j+1] = pos.Y
		s.buffer[j+2] = pos.Z
	}
	s.dirty = true
}

// Buffer returns the render buffer. Callers must not modify it.
func (s *ParticleStore) Buffer() []float32 {
	return s.buffer
}

// TakeDirty reports whether the buffer changed since the last call and
// clears the flag.
func (s *ParticleStore) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

// Residuals appends the distance to target of every targeted particle to dst.
func (s *ParticleStore) Residuals(dst []float64) []float64 {
	query := s.filter.Query()
	for query.Next() {
		pos, target, _ := query.Get()
		if !target.Set {
			continue
		}
		d := target.Vec().Sub(pos.Vec())
		dst = append(dst, math.Sqrt(float64(d.LengthSq())))
	}
	return dst
}

func (s *ParticleStore) randomPosition() components.Position {
	return components.Position{
		X: (s.rng.Float32() - 0.5) * s.width,
		Y: (s.rng.Float32() - 0.5) * s.height,
		Z: (s.rng.Float32() - 0.5) * s.depth,
	}
}
