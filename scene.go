package main

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/device"
	"github.com/pthm-cable/morph/game"
	"github.com/pthm-cable/morph/renderer"
	"github.com/pthm-cable/morph/telemetry"
	"github.com/pthm-cable/morph/ui"
)

const controls = "SPACE: Pause | R: Restart | H: HUD | P: Perf | Wheel: Zoom | F11: Fullscreen"

var sectionNames = func() []string {
	var names []string
	for _, sec := range telemetry.Sections() {
		names = append(names, sec.String())
	}
	return names
}()

// scene draws the background, the particles and the overlays. It is the
// session's Renderer.
type scene struct {
	points     *renderer.PointRenderer
	background *renderer.BackgroundRenderer
	hud        *ui.HUD
	perf       *ui.PerfPanel

	showHUD  bool
	showPerf bool

	width, height int32
}

func newScene(cfg *config.Config, quality device.QualityProfile, width, height int) *scene {
	s := &scene{
		points:     renderer.NewPointRenderer(cfg.Render.Color, cfg.Render.Additive, quality.Tuning.PointSize),
		background: renderer.NewBackgroundRenderer(int32(width), int32(height), cfg.Render.Background, cfg.Render.Color, cfg.Render.GlowAlpha),
		hud:        ui.NewHUD(10, 10, 260),
		perf:       ui.NewPerfPanel(0, 10),
		showHUD:    true,
	}
	s.SetViewport(width, height)
	return s
}

// SetViewport implements game.Renderer.
func (s *scene) SetViewport(width, height int) {
	s.width, s.height = int32(width), int32(height)
	s.points.SetViewport(width, height)
	s.background.SetViewport(width, height)
	s.perf.SetPosition(s.width-230, 10)
}

// MarkDirty implements game.Renderer.
func (s *scene) MarkDirty() {
	s.points.MarkDirty()
}

// Draw renders one frame.
func (s *scene) Draw(g *game.Game) {
	rl.BeginDrawing()

	s.background.Draw()
	s.points.Draw(g.Buffer(), g.Camera())

	if s.showHUD {
		st := g.Status()
		s.hud.Draw(ui.HUDData{
			Title:     "Morph",
			Phase:     st.Phase,
			Progress:  st.Progress,
			Cycle:     st.Cycle,
			Particles: st.Particles,
			Class:     st.Class.String(),
			Step:      st.Step,
			FPS:       rl.GetFPS(),
			LowFPS:    st.LowFPS,
			Paused:    st.Paused,
			Viewport:  [2]int32{int32(st.Width), int32(st.Height)},
		})
		s.hud.DrawControls(s.height, controls)
	}

	if s.showPerf {
		stats := g.TickStats()
		avg := make(map[string]time.Duration, len(sectionNames))
		for _, sec := range telemetry.Sections() {
			avg[sec.String()] = stats.Section[sec]
		}
		kind, kindAvg := stats.SlowestKind()
		s.perf.Draw(ui.PerfPanelData{
			SectionAvg:  avg,
			Total:       stats.Mean,
			SlowestKind: kind,
			SlowestAvg:  kindAvg,
		}, sectionNames)
	}

	rl.EndDrawing()
}
