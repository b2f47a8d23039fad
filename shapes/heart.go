package shapes

import (
	"math"
	"math/rand"
)

// HeartExtent is the approximate height of the unscaled heart curve.
const HeartExtent = 36.0

// SampleHeart returns n points on the parametric heart curve
//
//	x = 16 sin³t
//	y = 13 cos t - 5 cos 2t - 2 cos 3t - cos 4t
//
// with t drawn uniformly from [0, 2π). Non-positive n yields an empty slice.
func SampleHeart(rng *rand.Rand, n int) []Point {
	if n <= 0 {
		return []Point{}
	}
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = HeartAt(rng.Float64() * 2 * math.Pi)
	}
	return pts
}

// HeartAt evaluates the heart curve at parameter t.
func HeartAt(t float64) Point {
	s := math.Sin(t)
	return Point{
		X: 16 * s * s * s,
		Y: 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t),
	}
}
