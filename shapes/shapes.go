// Package shapes samples 2D point sets for the particle target shapes.
//
// All samplers return offsets relative to the shape centre with y pointing up.
package shapes

// Point is a 2D offset from a shape centre.
type Point struct {
	X, Y float64
}
