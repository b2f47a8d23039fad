package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/device"
	"github.com/pthm-cable/morph/game"
	"github.com/pthm-cable/morph/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (empty = off)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	width := flag.Int("width", 0, "Viewport width (0 = use config)")
	height := flag.Int("height", 0, "Viewport height (0 = use config)")
	mobile := flag.Bool("mobile", false, "Treat the device as mobile")
	lowPower := flag.Bool("low-power", false, "Treat the CPU as low power")
	lowEnd := flag.Bool("low-end", false, "Treat the device as a known low-end model")
	pixelDensity := flag.Float64("pixel-density", 0, "Display pixel density (0 = detect)")
	resizeAt := flag.Int("resize-at", 0, "Headless: request a resize at tick N (0 = never)")
	resizeTo := flag.String("resize-to", "375x812", "Headless: viewport requested by -resize-at")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Device signals: detected, then forced by flags
	sig := device.Detect()
	sig.IsMobile = sig.IsMobile || *mobile
	sig.IsLowPowerCPU = sig.IsLowPowerCPU || *lowPower
	sig.IsLowEndModel = sig.IsLowEndModel || *lowEnd
	if *pixelDensity > 0 {
		sig.PixelDensity = *pixelDensity
	}
	quality := device.Derive(sig, cfg)

	opts := game.DefaultOptions(cfg)
	opts.Seed = rngSeed
	opts.LogStats = *logStats
	opts.OutputDir = *outputDir
	if *width > 0 {
		opts.Width = *width
	}
	if *height > 0 {
		opts.Height = *height
	}

	// Start Prometheus metrics server in a goroutine
	if *metricsAddr != "" {
		opts.Metrics = telemetry.NewMetrics()
		mux := http.NewServeMux()
		mux.Handle("/metrics", opts.Metrics.Handler())
		go func() {
			slog.Info("serving metrics", "addr", *metricsAddr)
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				slog.Error("metrics server stopped", "error", err)
			}
		}()
	}

	if *headless {
		runHeadless(cfg, quality, opts, *maxTicks, *resizeAt, *resizeTo)
		return
	}
	runWindowed(cfg, quality, opts, *maxTicks)
}

// runHeadless drives the session at a fixed tick with no raylib calls.
func runHeadless(cfg *config.Config, quality device.QualityProfile, opts game.Options, maxTicks, resizeAt int, resizeTo string) {
	var rw, rh int
	if resizeAt > 0 {
		if _, err := fmt.Sscanf(resizeTo, "%dx%d", &rw, &rh); err != nil {
			slog.Error("invalid -resize-to", "value", resizeTo, "error", err)
			os.Exit(1)
		}
	}

	g, err := game.New(cfg, quality, opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless session",
		"seed", opts.Seed,
		"width", opts.Width,
		"height", opts.Height,
		"max_ticks", maxTicks,
	)

	for {
		if resizeAt > 0 && int(g.Tick()) == resizeAt {
			g.RequestResize(rw, rh)
		}
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

// runWindowed opens the raylib window and runs the frame loop.
func runWindowed(cfg *config.Config, quality device.QualityProfile, opts game.Options, maxTicks int) {
	flags := uint32(rl.FlagWindowResizable)
	if quality.Antialiasing {
		flags |= rl.FlagMsaa4xHint
	}
	if quality.PixelDensityCap > 1 {
		flags |= rl.FlagWindowHighdpi
	}
	rl.SetConfigFlags(flags)

	rl.InitWindow(int32(opts.Width), int32(opts.Height), "Morph")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	s := newScene(cfg, quality, opts.Width, opts.Height)
	opts.Renderer = s

	g, err := game.New(cfg, quality, opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		handleInput(g, s)
		g.Frame(float64(rl.GetFrameTime()), func() { s.Draw(g) })

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}
