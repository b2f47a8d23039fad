package sequence

import (
	"fmt"
	"math"
)

// Ease maps linear phase progress in [0,1] to eased progress.
type Ease func(t float64) float64

var eases = map[string]Ease{
	"":             Linear,
	"linear":       Linear,
	"out-quad":     OutQuad,
	"in-out-quad":  InOutQuad,
	"out-cubic":    OutCubic,
	"in-out-cubic": InOutCubic,
	"in-out-sine":  InOutSine,
}

// EaseByName looks up a named easing curve. The empty name is linear.
func EaseByName(name string) (Ease, error) {
	e, ok := eases[name]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return e, nil
}

func Linear(t float64) float64 { return t }

func OutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

func InOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func OutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func InOutSine(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }
