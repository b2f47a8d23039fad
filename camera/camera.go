// Package camera provides the perspective view onto the particle scene.
package camera

import (
	"math"

	"github.com/pthm-cable/morph/components"
)

// NearPlane is the closest depth that still projects.
const NearPlane = 1

// Camera looks down -Z from Distance on the z axis. The scene is turned by
// Yaw about the y axis before projection.
type Camera struct {
	// Vertical field of view in degrees
	Fovy float32

	// Distance from the scene origin along +Z
	Distance float32

	// Scene rotation about the y axis, radians
	Yaw float32

	// Zoom scales the focal length (1.0 = nominal fov)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	// Cached focal length in pixels at zoom 1
	focal float32
}

// New creates a camera for the given viewport.
func New(viewportW, viewportH, fovy, distance float32) *Camera {
	c := &Camera{
		Fovy:      fovy,
		Distance:  distance,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.5,
		MaxZoom:   4.0,
	}
	c.updateFocal()
	return c
}

// Project maps a world point to screen coordinates. scale is the pixel size
// of one world unit at the point's depth. ok is false behind the near plane.
func (c *Camera) Project(p components.Vec3) (sx, sy, scale float32, ok bool) {
	sin, cos := math.Sincos(float64(c.Yaw))
	s, co := float32(sin), float32(cos)

	// Turn the scene about y
	x := p.X*co + p.Z*s
	z := -p.X*s + p.Z*co

	depth := c.Distance - z
	if depth < NearPlane {
		return 0, 0, 0, false
	}

	scale = c.focal * c.Zoom / depth
	sx = c.ViewportW/2 + x*scale
	sy = c.ViewportH/2 - p.Y*scale
	return sx, sy, scale, true
}

// PointDiameter returns the on-screen diameter of a point sprite of the
// given pixel size at the depth implied by scale. Size is attenuated by
// half the viewport height over depth.
func (c *Camera) PointDiameter(size, scale float32) float32 {
	return size * scale * c.ViewportH / 2 / (c.focal * c.Zoom)
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateFocal()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to no yaw and 1:1 zoom.
func (c *Camera) Reset() {
	c.Yaw = 0
	c.Zoom = 1.0
}

func (c *Camera) updateFocal() {
	half := float64(c.Fovy) * math.Pi / 360
	c.focal = c.ViewportH / 2 / float32(math.Tan(half))
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
