package game

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/perception"
	"github.com/pthm-cable/beasts/systems"
	"github.com/pthm-cable/beasts/telemetry"
)

// Options configures a Game beyond the simulation config.
type Options struct {
	Seed      int64
	LogStats  bool   // log perf stats every stats window
	OutputDir string // empty disables CSV output
}

// Animator is the display side of the continuation check.
type Animator interface {
	ContinueAnimation() bool
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers
	beastMapper *ecs.Map3[components.Position, components.Beast, perception.Ledger]
	plantMapper *ecs.Map1[components.Plant]
	beastFilter *ecs.Filter2[components.Position, components.Beast]
	plantFilter *ecs.Filter1[components.Plant]
	beastMap    *ecs.Map[components.Beast]

	// Systems
	spatialGrid *systems.SpatialGrid
	perception  *systems.PerceptionSystem
	memory      *systems.MemorySystem
	feeding     *systems.FeedingSystem
	movement    *systems.MovementSystem
	flora       *systems.FloraSystem
	plantLayout systems.PlantLayout

	// Telemetry
	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool

	// State
	tick      int
	numHerb   int
	numCarn   int
	numPlants int // sprouted

	removeBuf []ecs.Entity
}

// NewGame creates a game from cfg and populates the first episode.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	border := float64(cfg.World.Border)
	bounds := systems.Bounds{
		MinX: border,
		MinY: border,
		MaxX: cfg.Derived.WorldW - border,
		MaxY: cfg.Derived.WorldH - border,
	}
	layout := systems.PlantLayout{
		Border: border,
		CellW:  cfg.Derived.PlantCellW,
		CellH:  cfg.Derived.PlantCellH,
	}
	grid := systems.NewSpatialGrid(cfg.Derived.WorldW, cfg.Derived.WorldH, cfg.World.GridCellSize)

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rng,

		beastMapper: ecs.NewMap3[components.Position, components.Beast, perception.Ledger](world),
		plantMapper: ecs.NewMap1[components.Plant](world),
		beastFilter: ecs.NewFilter2[components.Position, components.Beast](world),
		plantFilter: ecs.NewFilter1[components.Plant](world),
		beastMap:    ecs.NewMap[components.Beast](world),

		spatialGrid: grid,
		perception:  systems.NewPerceptionSystem(world, grid),
		memory:      systems.NewMemorySystem(world),
		feeding:     systems.NewFeedingSystem(world, grid, cfg.Beast.BiteRange, cfg.Beast.EatEnergyFraction),
		movement:    systems.NewMovementSystem(world, bounds, rng, cfg.Beast.TurnJitter, cfg.Beast.EnergyDecay),
		flora:       systems.NewFloraSystem(world, layout, rng),
		plantLayout: layout,

		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:     telemetry.NewCollector(),
		logStats:      opts.LogStats,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.outputManager = om

	g.Restart()
	return g, nil
}

// Tick returns the number of ticks run in the current episode.
func (g *Game) Tick() int {
	return g.tick
}

// Episode returns the current episode number, starting at 0.
func (g *Game) Episode() int {
	return g.collector.Episode()
}

// Counts returns the herbivore, carnivore and sprouted plant populations.
func (g *Game) Counts() (herbivores, carnivores, plants int) {
	return g.numHerb, g.numCarn, g.numPlants
}

// Perf returns the performance collector.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perfCollector
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	return g.outputManager.Close()
}
