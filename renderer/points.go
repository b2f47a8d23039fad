package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/camera"
	"github.com/pthm-cable/morph/components"
)

// PointRenderer draws the particle buffer as perspective-scaled discs.
type PointRenderer struct {
	color    rl.Color
	additive bool

	// Point size in pixels for a viewport width
	sizeFor   func(width float64) float64
	pointSize float32

	// Projected points, refreshed when the buffer or view changes
	screen  []rl.Vector2
	radii   []float32
	visible []bool

	dirty    bool
	lastYaw  float32
	lastZoom float32
	width    int
	height   int
}

// NewPointRenderer creates a renderer. sizeFor maps the viewport width to
// a point size; nil means a fixed 2px point.
func NewPointRenderer(color [3]uint8, additive bool, sizeFor func(width float64) float64) *PointRenderer {
	if sizeFor == nil {
		sizeFor = func(float64) float64 { return 2 }
	}
	return &PointRenderer{
		color:    rl.Color{R: color[0], G: color[1], B: color[2], A: 255},
		additive: additive,
		sizeFor:  sizeFor,
		dirty:    true,
	}
}

// SetViewport updates the point size for a new viewport.
func (r *PointRenderer) SetViewport(width, height int) {
	r.width, r.height = width, height
	r.pointSize = float32(r.sizeFor(float64(width)))
	r.dirty = true
}

// MarkDirty forces the next Draw to re-project the buffer.
func (r *PointRenderer) MarkDirty() {
	r.dirty = true
}

// Draw renders the interleaved xyz buffer through cam.
func (r *PointRenderer) Draw(buffer []float32, cam *camera.Camera) {
	if r.dirty || cam.Yaw != r.lastYaw || cam.Zoom != r.lastZoom {
		r.project(buffer, cam)
	}

	if r.additive {
		rl.BeginBlendMode(rl.BlendAdditive)
	}
	for i := range r.screen {
		if !r.visible[i] {
			continue
		}
		rl.DrawCircleV(r.screen[i], r.radii[i], r.color)
	}
	if r.additive {
		rl.EndBlendMode()
	}
}

func (r *PointRenderer) project(buffer []float32, cam *camera.Camera) {
	n := len(buffer) / 3
	if cap(r.screen) < n {
		r.screen = make([]rl.Vector2, n)
		r.radii = make([]float32, n)
		r.visible = make([]bool, n)
	}
	r.screen = r.screen[:n]
	r.radii = r.radii[:n]
	r.visible = r.visible[:n]

	for i := 0; i < n; i++ {
		p := components.Vec3{X: buffer[3*i], Y: buffer[3*i+1], Z: buffer[3*i+2]}
		sx, sy, scale, ok := cam.Project(p)
		r.visible[i] = ok
		if !ok {
			continue
		}
		r.screen[i] = rl.Vector2{X: sx, Y: sy}
		radius := cam.PointDiameter(r.pointSize, scale) / 2
		if radius < 0.5 {
			radius = 0.5
		}
		r.radii[i] = radius
	}

	r.dirty = false
	r.lastYaw = cam.Yaw
	r.lastZoom = cam.Zoom
}
