// Layout preview tool - shows the heart, name and phrase targets the planner
// produces for a viewport, with sliders for the viewport size.
//
// Usage: go run ./cmd/layoutpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/device"
	"github.com/pthm-cable/morph/layout"
	"github.com/pthm-cable/morph/shapes"
	"github.com/pthm-cable/morph/targets"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
)

// previewParams holds the slider state.
type previewParams struct {
	Width   float32
	Height  float32
	Mobile  bool
	LowEnd  bool
	Heart   bool
	Name    bool
	Phrase  bool
	Samples float32
}

func defaultParams() previewParams {
	return previewParams{
		Width:   1920,
		Height:  1080,
		Heart:   true,
		Name:    true,
		Phrase:  true,
		Samples: 1400,
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sampler, err := shapes.NewGlyphSampler()
	if err != nil {
		slog.Error("failed to create glyph sampler", "error", err)
		os.Exit(1)
	}
	defer sampler.Close()

	rl.InitWindow(windowWidth, windowHeight, "Layout Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	var prof layout.Profile
	var set *targets.Set
	needsRebuild := true

	for !rl.WindowShouldClose() {
		if needsRebuild {
			sig := device.Signals{IsMobile: params.Mobile, IsLowEndModel: params.LowEnd, PixelDensity: 1}
			quality := device.Derive(sig, cfg)
			prof = layout.Plan(cfg.Layout, float64(params.Width), float64(params.Height), quality.Constrained())
			set = targets.Build(rand.New(rand.NewSource(1)), sampler, targets.Params{
				Profile: prof,
				Tuning:  quality.Tuning,
				Text:    cfg.Text,
				Count:   int(params.Samples),
			})
			needsRebuild = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		drawPreview(params, set)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Viewport", int32(panelX), int32(panelY), 20, rl.LightGray)
		panelY += 35

		panelY, needsRebuild = slider(panelX, panelY, "Width", "240", "2560", &params.Width, 240, 2560, needsRebuild)
		panelY, needsRebuild = slider(panelX, panelY, "Height", "240", "1600", &params.Height, 240, 1600, needsRebuild)
		panelY, needsRebuild = slider(panelX, panelY, "Heart samples", "100", "2000", &params.Samples, 100, 2000, needsRebuild)

		for _, cb := range []struct {
			label string
			value *bool
		}{
			{"Mobile", &params.Mobile},
			{"Low-end model", &params.LowEnd},
			{"Show heart", &params.Heart},
			{"Show name", &params.Name},
			{"Show phrase", &params.Phrase},
		} {
			checked := gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 18, Height: 18}, cb.label, *cb.value)
			if checked != *cb.value {
				*cb.value = checked
				needsRebuild = true
			}
			panelY += 26
		}
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Swap W/H") {
			params.Width, params.Height = params.Height, params.Width
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRebuild = true
		}
		panelY += 50

		lines := profileLines(prof, set)
		for _, line := range lines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy the profile to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.DarkGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range lines {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and reports whether the value changed.
func slider(x, y float32, label, lo, hi string, value *float32, min, max float32, changed bool) (float32, bool) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		lo, hi,
		*value, min, max,
	)
	v = float32(int(v))
	rl.DrawText(fmt.Sprintf("%.0f", *value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.LightGray)
	if v != *value {
		*value = v
		changed = true
	}
	return y + 35, changed
}

// drawPreview draws the viewport rectangle and the selected target sets,
// fitted into the preview square.
func drawPreview(params previewParams, set *targets.Set) {
	w, h := params.Width, params.Height
	scale := min(previewSize/w, previewSize/h)
	cx := float32(10 + previewSize/2)
	cy := float32(10 + previewSize/2)

	rl.DrawRectangleLines(int32(cx-w*scale/2), int32(cy-h*scale/2), int32(w*scale), int32(h*scale), rl.DarkGray)

	draw := func(points []components.Vec3, c rl.Color) {
		for _, p := range points {
			rl.DrawPixelV(rl.Vector2{X: cx + p.X*scale, Y: cy - p.Y*scale}, c)
		}
	}
	if params.Heart {
		draw(set.Heart, rl.Color{R: 238, G: 82, B: 130, A: 255})
	}
	if params.Name {
		draw(set.Name, rl.Color{R: 255, G: 200, B: 90, A: 255})
	}
	if params.Phrase {
		draw(set.Phrase, rl.Color{R: 120, G: 200, B: 255, A: 255})
	}
}

func profileLines(p layout.Profile, set *targets.Set) []string {
	orientation := "portrait"
	if p.Landscape {
		orientation = "landscape"
	}
	return []string{
		fmt.Sprintf("orientation: %s", orientation),
		fmt.Sprintf("heart_size: %.1f", p.HeartSize),
		fmt.Sprintf("heart_scale: %.3f", p.HeartScale),
		fmt.Sprintf("heart_offset_y: %.1f", p.HeartOffsetY),
		fmt.Sprintf("name_raster: %dx%d", p.NameRaster.W, p.NameRaster.H),
		fmt.Sprintf("phrase_raster: %dx%d", p.PhraseRaster.W, p.PhraseRaster.H),
		fmt.Sprintf("name_font: %.2f  phrase_font: %.2f", p.NameFontScale, p.PhraseFontScale),
		fmt.Sprintf("name_offset_y: %.1f", p.NameOffsetY),
		fmt.Sprintf("phrase_offset_y: %.1f", p.PhraseOffsetY),
		fmt.Sprintf("step: %d", p.Step),
		fmt.Sprintf("targets: heart=%d name=%d phrase=%d", len(set.Heart), len(set.Name), len(set.Phrase)),
	}
}
