package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/game"
	"github.com/pthm-cable/beasts/telemetry"
)

// FitnessEvaluator runs headless episodes and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	// Best run tracking
	mu           sync.Mutex
	bestFitness  float64
	bestEpisodes []telemetry.EpisodeStats
	lastQuality  float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestEpisodes returns the per-seed episode stats of the best evaluation.
func (fe *FitnessEvaluator) BestEpisodes() []telemetry.EpisodeStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestEpisodes
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative episode length scaled by a quality bonus of up to 20%.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return 0 // unusable parameters: no survival
	}

	// Run all seeds in parallel; each game owns its world.
	episodes := make([]telemetry.EpisodeStats, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			episodes[idx] = fe.runEpisode(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	ticks := make([]float64, len(episodes))
	var qualitySum float64
	for i, ep := range episodes {
		ticks[i] = float64(ep.Ticks)
		qualitySum += fe.computeQuality(cfg, ep)
	}
	quality := clamp01(0.8*qualitySum/float64(len(episodes)) + 0.2*stability(ticks))
	fitness := -(stat.Mean(ticks, nil) * (1.0 + 0.2*quality))

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		fe.bestEpisodes = episodes
	}
	fe.lastQuality = quality
	fe.mu.Unlock()

	return fitness
}

// runEpisode plays one headless episode until extinction or maxTicks.
func (fe *FitnessEvaluator) runEpisode(cfg *config.Config, seed int64) telemetry.EpisodeStats {
	g, err := game.NewGame(cfg, game.Options{Seed: seed})
	if err != nil {
		return telemetry.EpisodeStats{}
	}
	defer g.Close()

	for g.ContinueSimulation(nil) && g.Tick() < fe.maxTicks {
		g.Advance()
	}
	return g.EndEpisode()
}

// copyConfig creates a copy of the base config. Config holds no references,
// so a value copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// Quality component weights.
const (
	qualityWeightHunting   = 0.35
	qualityWeightGrazing   = 0.35
	qualityWeightAwareness = 0.30
)

// computeQuality scores one episode in [0, 1]: carnivores that hunt,
// herbivores that graze and beasts that keep something in memory.
func (fe *FitnessEvaluator) computeQuality(cfg *config.Config, ep telemetry.EpisodeStats) float64 {
	if ep.Ticks == 0 {
		return 0
	}

	huntScore := 0.0
	if n := cfg.Population.Carnivores; n > 0 {
		huntScore = 1.0 - math.Exp(-float64(ep.Kills)/float64(n))
	}
	grazeScore := 0.0
	if n := cfg.Population.Herbivores; n > 0 {
		grazeScore = 1.0 - math.Exp(-float64(ep.PlantsEaten)/float64(n))
	}
	awarenessScore := 1.0 - math.Exp(-ep.MeanMemoryLoad/2.0)

	return clamp01(qualityWeightHunting*huntScore +
		qualityWeightGrazing*grazeScore +
		qualityWeightAwareness*awarenessScore)
}

// stability rewards parameter sets whose episode length varies little
// between seeds.
func stability(ticks []float64) float64 {
	if len(ticks) < 2 {
		return 0
	}
	mean := stat.Mean(ticks, nil)
	if mean == 0 {
		return 0
	}
	cv := stat.StdDev(ticks, nil) / mean
	return math.Exp(-cv * cv)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
