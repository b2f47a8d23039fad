package camera

import (
	"github.com/charmbracelet/harmonica"
)

// Sway swings the scene yaw between 0 and an amplitude and back, each swing
// taking halfPeriod seconds and shaped by an easing curve. A damped spring
// tracks the eased goal so frame hitches do not show as jumps.
type Sway struct {
	spring harmonica.Spring
	step   float64 // fixed spring step, seconds
	ease   func(t float64) float64

	amplitude  float64
	halfPeriod float64

	angle, velocity float64
	rising          bool
	clock           float64 // time into the current swing
	acc             float64 // unspent frame time
}

// NewSway creates a sway stepped at fps. A nil ease swings linearly.
func NewSway(amplitude, halfPeriod, frequency, damping float64, fps int, ease func(float64) float64) *Sway {
	if fps <= 0 {
		fps = 60
	}
	if ease == nil {
		ease = func(t float64) float64 { return t }
	}
	return &Sway{
		spring:     harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		step:       1 / float64(fps),
		ease:       ease,
		amplitude:  amplitude,
		halfPeriod: halfPeriod,
		rising:     true,
	}
}

// Update advances the sway by dt seconds and returns the current angle.
func (s *Sway) Update(dt float64) float64 {
	if s.amplitude == 0 {
		return 0
	}
	s.acc += dt
	for s.acc >= s.step {
		s.acc -= s.step
		s.clock += s.step
		if s.halfPeriod > 0 && s.clock >= s.halfPeriod {
			s.clock -= s.halfPeriod
			s.rising = !s.rising
		}
		s.angle, s.velocity = s.spring.Update(s.angle, s.velocity, s.Goal())
	}
	return s.angle
}

// Angle returns the current angle without advancing.
func (s *Sway) Angle() float64 {
	return s.angle
}

// Goal returns the eased angle the spring is chasing. With no half period
// the goal is the amplitude.
func (s *Sway) Goal() float64 {
	if s.halfPeriod <= 0 {
		return s.amplitude
	}
	u := s.ease(min(s.clock/s.halfPeriod, 1))
	if s.rising {
		return s.amplitude * u
	}
	return s.amplitude * (1 - u)
}

// Reset puts the sway back at rest on zero at the start of a rising swing.
func (s *Sway) Reset() {
	s.angle, s.velocity, s.clock, s.acc = 0, 0, 0, 0
	s.rising = true
}
