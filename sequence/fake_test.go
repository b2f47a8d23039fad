package sequence

import "github.com/pthm-cable/morph/components"

// fakeParticles is a plain slice-backed Particles.
type fakeParticles struct {
	pos      []components.Vec3
	target   []components.Vec3
	has      []bool
	scatters int
	next     float32
}

func newFake(n int) *fakeParticles {
	return &fakeParticles{
		pos:    make([]components.Vec3, n),
		target: make([]components.Vec3, n),
		has:    make([]bool, n),
	}
}

func (f *fakeParticles) Len() int                       { return len(f.pos) }
func (f *fakeParticles) Position(i int) components.Vec3 { return f.pos[i] }

func (f *fakeParticles) SetTarget(i int, v components.Vec3) {
	f.target[i] = v
	f.has[i] = true
}

func (f *fakeParticles) ClearTargets() {
	for i := range f.has {
		f.has[i] = false
	}
}

func (f *fakeParticles) Scatter() {
	f.scatters++
	for i := range f.pos {
		f.next++
		f.pos[i] = components.Vec3{X: f.next, Y: -f.next, Z: 1}
	}
}

func (f *fakeParticles) targeted() int {
	n := 0
	for _, h := range f.has {
		if h {
			n++
		}
	}
	return n
}
