// Package sequence drives the looping phase cycle that assigns particle
// targets.
package sequence

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/morph/targets"
)

// RepeatDelayName names the trailing pause appended for the repeat delay.
const RepeatDelayName = "repeat-delay"

// Transition describes a phase change.
type Transition struct {
	From, To         string
	FromKind, ToKind Kind
	Cycle            int
	// Elapsed is the time accumulated in the phase being left when the
	// change was taken. It overshoots the phase duration by whatever part of
	// the last tick ran past the boundary.
	Elapsed time.Duration
}

// State is a read-only snapshot of the scheduler.
type State struct {
	Phase    string
	Kind     Kind
	Index    int
	Cycle    int
	Elapsed  time.Duration
	Duration time.Duration
	Progress float64 // eased, in [0,1]
	Paused   bool
}

// Scheduler is a phase list, an index and a time-in-phase accumulator.
// The entry action of a phase runs on the first Update that lands in it.
// Not safe for concurrent use.
type Scheduler struct {
	phases    []Phase
	particles Particles
	set       *targets.Set
	rng       *rand.Rand
	step      func()

	index   int
	elapsed time.Duration
	cycle   int
	entered bool
	paused  bool

	onTransition func(Transition)
}

// New creates a scheduler over phases with a repeat delay appended as a
// trailing pause. step runs once per Update while a moving phase is active.
func New(phases []Phase, repeatDelay time.Duration, particles Particles, set *targets.Set, rng *rand.Rand, step func()) *Scheduler {
	list := make([]Phase, len(phases), len(phases)+1)
	copy(list, phases)
	if repeatDelay > 0 {
		list = append(list, Phase{Name: RepeatDelayName, Kind: KindPause, Duration: repeatDelay, Ease: Linear})
	}
	return &Scheduler{
		phases:    list,
		particles: particles,
		set:       set,
		rng:       rng,
		step:      step,
	}
}

// OnTransition registers a listener called at each phase change, before the
// entry action of the next phase runs. Particles still carry the targets of
// the phase being left.
func (s *Scheduler) OnTransition(fn func(Transition)) {
	s.onTransition = fn
}

// Update advances the cycle by dt. The current phase's step runs before any
// transition is taken. A single Update crosses at most one pass over the
// phase list; time beyond that is dropped and the phase reached starts from
// zero, so a long stall does not replay missed cycles on later frames.
func (s *Scheduler) Update(dt time.Duration) {
	if len(s.phases) == 0 || s.paused {
		return
	}
	if !s.entered {
		s.enter()
	}

	s.elapsed += dt
	if s.phases[s.index].Moves() && s.step != nil {
		s.step()
	}

	// Bounded so a zero-length cycle cannot spin
	for i := 0; i < len(s.phases) && s.elapsed >= s.phases[s.index].Duration; i++ {
		spent := s.elapsed
		s.elapsed -= s.phases[s.index].Duration
		s.advance(spent)
	}
	if s.elapsed >= s.phases[s.index].Duration {
		s.elapsed = 0
	}
}

// Restart drops the in-flight phase, clears every target, swaps in set and
// begins a new cycle from the first phase.
func (s *Scheduler) Restart(set *targets.Set) {
	s.particles.ClearTargets()
	s.set = set
	s.index = 0
	s.elapsed = 0
	s.cycle = 0
	s.entered = false
}

// SetPaused freezes or resumes the cycle.
func (s *Scheduler) SetPaused(p bool) {
	s.paused = p
}

// Paused reports whether the cycle is frozen.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Targets returns the active target set.
func (s *Scheduler) Targets() *targets.Set {
	return s.set
}

// Phases returns the phase list including the trailing repeat delay.
func (s *Scheduler) Phases() []Phase {
	return s.phases
}

// State returns a snapshot of the current phase.
func (s *Scheduler) State() State {
	if len(s.phases) == 0 {
		return State{Paused: s.paused}
	}
	ph := s.phases[s.index]
	st := State{
		Phase:    ph.Name,
		Kind:     ph.Kind,
		Index:    s.index,
		Cycle:    s.cycle,
		Elapsed:  s.elapsed,
		Duration: ph.Duration,
		Paused:   s.paused,
	}
	t := 1.0
	if ph.Duration > 0 {
		t = min(float64(s.elapsed)/float64(ph.Duration), 1)
	}
	ease := ph.Ease
	if ease == nil {
		ease = Linear
	}
	st.Progress = ease(t)
	return st
}

func (s *Scheduler) enter() {
	s.entered = true
	if a := s.phases[s.index].Assign; a != nil {
		a(s.particles, s.set, s.rng)
	}
}

func (s *Scheduler) advance(spent time.Duration) {
	from := s.phases[s.index]

	s.index++
	if s.index == len(s.phases) {
		s.index = 0
		s.cycle++
	}
	if s.onTransition != nil {
		to := s.phases[s.index]
		s.onTransition(Transition{
			From:     from.Name,
			To:       to.Name,
			FromKind: from.Kind,
			ToKind:   to.Kind,
			Cycle:    s.cycle,
			Elapsed:  spent,
		})
	}
	s.enter()
}
