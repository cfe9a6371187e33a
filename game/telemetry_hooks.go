package game

import (
	"log/slog"

	"github.com/pthm-cable/beasts/telemetry"
)

// flushTelemetry logs and writes perf stats once per stats window.
func (g *Game) flushTelemetry() {
	window := g.cfg.Telemetry.StatsWindow
	if window <= 0 || g.tick%window != 0 {
		return
	}

	perfStats := g.perfCollector.Stats()

	if g.logStats {
		slog.Info("perf",
			"episode", g.Episode(),
			"tick", g.tick,
			"herbivores", g.numHerb,
			"carnivores", g.numCarn,
			"plants", g.numPlants,
			"stats", perfStats,
		)
	}

	if err := g.outputManager.WritePerf(perfStats, g.Episode(), g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// EndEpisode closes the current episode's stats, logs them and writes them
// to episodes.csv. Call it before Restart.
func (g *Game) EndEpisode() telemetry.EpisodeStats {
	stats := g.collector.Flush(g.tick, g.Snapshot())

	stats.LogStats()

	if err := g.outputManager.WriteEpisode(stats); err != nil {
		slog.Error("failed to write episode", "error", err)
	}
	return stats
}
