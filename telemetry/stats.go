package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// EpisodeStats holds aggregated statistics for one episode.
type EpisodeStats struct {
	Episode int `csv:"episode"`
	Ticks   int `csv:"ticks"`

	// Population counts at episode end
	Herbivores int `csv:"herbivores"`
	Carnivores int `csv:"carnivores"`
	Plants     int `csv:"plants"` // sprouted

	// Events during the episode
	Kills             int `csv:"kills"`
	HerbivoresStarved int `csv:"herbivores_starved"`
	CarnivoresStarved int `csv:"carnivores_starved"`
	PlantsEaten       int `csv:"plants_eaten"`
	PlantsSprouted    int `csv:"plants_sprouted"`

	// Perception
	Sightings      int     `csv:"sightings"`
	MeanMemoryLoad float64 `csv:"mean_memory_load"` // remembered entries per beast per tick

	// Energy distribution (sampled at episode end)
	HerbivoreEnergyMean float64 `csv:"herbivore_energy_mean"`
	HerbivoreEnergyP50  float64 `csv:"herbivore_energy_p50"`
	CarnivoreEnergyMean float64 `csv:"carnivore_energy_mean"`
	CarnivoreEnergyP50  float64 `csv:"carnivore_energy_p50"`
}

// ComputeEnergyStats calculates the mean and median of energy values.
func ComputeEnergyStats(values []float64) (mean, p50 float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return stat.Mean(sorted, nil), stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s EpisodeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("episode", s.Episode),
		slog.Int("ticks", s.Ticks),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("carnivores", s.Carnivores),
		slog.Int("plants", s.Plants),
		slog.Int("kills", s.Kills),
		slog.Int("herbivores_starved", s.HerbivoresStarved),
		slog.Int("carnivores_starved", s.CarnivoresStarved),
		slog.Int("plants_eaten", s.PlantsEaten),
		slog.Int("plants_sprouted", s.PlantsSprouted),
		slog.Int("sightings", s.Sightings),
		slog.Float64("mean_memory_load", s.MeanMemoryLoad),
		slog.Float64("herbivore_energy_mean", s.HerbivoreEnergyMean),
		slog.Float64("carnivore_energy_mean", s.CarnivoreEnergyMean),
	)
}

// LogStats logs the episode stats using slog.
func (s EpisodeStats) LogStats() {
	slog.Info("episode", "stats", s)
}
