package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/game"
	"github.com/pthm-cable/beasts/renderer"
	"github.com/pthm-cable/beasts/ui"
)

// hudRefresh is the number of frames between HUD status updates.
const hudRefresh = 15

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "End each episode after N ticks (0 = run until extinction)")
	episodes := flag.Int("episodes", 0, "Stop after N episodes (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGame(cfg, game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"headless", *headless,
		"max_ticks", *maxTicks,
		"episodes", *episodes,
	)

	if *headless {
		runHeadless(g, *maxTicks, *episodes)
		return
	}
	if err := runAnimated(g, cfg, *maxTicks, *episodes); err != nil {
		slog.Error("animation failed", "error", err)
		g.Close()
		os.Exit(1)
	}
}

// runHeadless steps episodes as fast as possible.
func runHeadless(g *game.Game, maxTicks, episodes int) {
	g.RunEpisodes(nil, episodes, maxTicks, func() error {
		g.Advance()
		return nil
	})
}

// runAnimated drives the window: one simulation tick and one paced frame per
// iteration, restarting episodes until the window closes.
func runAnimated(g *game.Game, cfg *config.Config, maxTicks, episodes int) error {
	win, err := ui.OpenWindow(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.Title, cfg.Render.ShowHUD)
	if err != nil {
		return err
	}
	defer win.Close()

	buf := renderer.NewBuffer(cfg.Screen.Width, cfg.Screen.Height)
	pacer := renderer.NewPacer(nil)
	frames := renderer.NewFrameRenderer(win, renderer.PaletteFromConfig(cfg.Render), pacer)

	err = g.RunEpisodes(win, episodes, maxTicks, func() error {
		start := time.Now()
		g.Step(g.Snapshot())

		res, err := frames.Render(start, g.Snapshot(), buf, cfg.Derived.FrameInterval)
		if err != nil {
			return err
		}
		g.Perf().RecordFrame(res.Elapsed, res.Behind)

		if g.Tick()%hudRefresh == 1 {
			win.SetStatus(status(g))
		}
		return nil
	})

	slog.Info("animation stopped", "late_frames", frames.Pacer().Overruns())
	return err
}

func status(g *game.Game) ui.HUDData {
	herb, carn, plants := g.Counts()
	perf := g.Perf().Stats()
	return ui.HUDData{
		Episode:    g.Episode(),
		Tick:       g.Tick(),
		Herbivores: herb,
		Carnivores: carn,
		Plants:     plants,
		FPS:        perf.FPS,
		Overruns:   perf.Overruns,
	}
}
