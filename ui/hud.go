package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the status overlay.
type HUDData struct {
	Title     string
	Phase     string
	Progress  float64 // eased phase progress
	Cycle     int
	Particles int
	Class     string
	Step      int
	FPS       int32
	LowFPS    bool
	Paused    bool
	Viewport  [2]int32
}

// HUD renders the status overlay.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD at the given position.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the HUD and returns the Y below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	x := h.x + r.Theme.Padding
	y := h.y + r.Theme.Padding

	// Height is fixed by the line count below
	height := 7*r.Theme.LineHeight + 2*r.Theme.Padding + 6
	r.DrawPanel(h.x, h.y, h.width, height)

	y = r.DrawSectionHeader(x, y, data.Title)
	y = r.DrawLabelValue(x, y, "Phase", data.Phase)
	y = r.DrawBar(x, y, "Progress", float32(data.Progress), h.width-2*r.Theme.Padding)
	y = r.DrawLabelValue(x, y, "Cycle", fmt.Sprintf("%d", data.Cycle))
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d (%s, step %d)", data.Particles, data.Class, data.Step))
	y = r.DrawLabelValue(x, y, "Viewport", fmt.Sprintf("%dx%d", data.Viewport[0], data.Viewport[1]))

	fps := fmt.Sprintf("%d", data.FPS)
	rl.DrawText("FPS:", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	color := r.Theme.ValueColor
	if data.LowFPS {
		color = r.Theme.WarnColor
		fps += " (low)"
	}
	rl.DrawText(fps, x+r.Theme.LabelWidth, y, r.Theme.FontSize, color)
	y += r.Theme.LineHeight

	if data.Paused {
		rl.DrawText("PAUSED", x, y, r.Theme.FontSize, r.Theme.WarnColor)
	}
	return h.y + height
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	SectionAvg  map[string]time.Duration
	Total       time.Duration
	SlowestKind string
	SlowestAvg  time.Duration
}

// PerfPanel renders the per-section tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData, names []string) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	if data.SlowestKind != "" {
		rl.DrawText(fmt.Sprintf("Slowest: %s %s", data.SlowestKind, data.SlowestAvg.Round(time.Microsecond)), x, y, 14, rl.LightGray)
		y += 16
	}

	for _, name := range names {
		avg := data.SectionAvg[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(fmt.Sprintf("%-12s %6s %5.1f%%", name, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
