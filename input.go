package main

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/game"
)

// handleInput processes window and keyboard input.
func handleInput(g *game.Game, s *scene) {
	// Window resize and rotation both arrive as a resize
	if rl.IsWindowResized() {
		g.RequestResize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Restart()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		s.showHUD = !s.showHUD
	}
	if rl.IsKeyPressed(rl.KeyP) {
		s.showPerf = !s.showPerf
	}

	handleCameraInput(g)
}

// handleCameraInput processes zoom controls.
func handleCameraInput(g *game.Game) {
	cam := g.Camera()

	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		cam.ZoomBy(1 + wheelMove*0.1)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(0.8)
	}

	// Home key to reset zoom
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
