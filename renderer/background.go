package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer clears the frame and optionally lays a radial glow in the
// particle colour behind the scene.
type BackgroundRenderer struct {
	base rl.Color
	glow rl.Color

	screenW, screenH float32
}

// NewBackgroundRenderer creates a new background renderer. glowAlpha of 0
// disables the glow.
func NewBackgroundRenderer(screenW, screenH int32, base, tint [3]uint8, glowAlpha uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		base:    rl.Color{R: base[0], G: base[1], B: base[2], A: 255},
		glow:    rl.Color{R: tint[0], G: tint[1], B: tint[2], A: glowAlpha},
		screenW: float32(screenW),
		screenH: float32(screenH),
	}
}

// SetViewport updates the screen size.
func (b *BackgroundRenderer) SetViewport(width, height int) {
	b.screenW = float32(width)
	b.screenH = float32(height)
}

// Draw clears the frame and draws the glow.
func (b *BackgroundRenderer) Draw() {
	rl.ClearBackground(b.base)
	if b.glow.A == 0 {
		return
	}

	radius := b.screenW
	if b.screenH < radius {
		radius = b.screenH
	}
	radius *= 0.6

	edge := b.glow
	edge.A = 0
	rl.DrawCircleGradient(int32(b.screenW/2), int32(b.screenH/2), radius, b.glow, edge)
}
