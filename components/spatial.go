// Package components defines ECS components for the particle store.
package components

// Vec3 is a point in world space. Y is up, the camera looks down -Z.
type Vec3 struct {
	X, Y, Z float32
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// LengthSq returns the squared euclidean length.
func (v Vec3) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Position represents a particle's world position.
type Position struct {
	X, Y, Z float32
}

// Vec returns the position as a Vec3.
func (p Position) Vec() Vec3 {
	return Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// Target is the point a particle eases toward.
// Set=false means the particle has no pending target and holds still.
type Target struct {
	X, Y, Z float32
	Set     bool
}

// Vec returns the target point as a Vec3.
func (t Target) Vec() Vec3 {
	return Vec3{X: t.X, Y: t.Y, Z: t.Z}
}

// Slot is a particle's stable index into the render buffer and target sets.
type Slot struct {
	Index int32
}
