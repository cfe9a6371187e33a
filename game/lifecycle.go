package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/perception"
)

// Restart clears the world and populates a fresh episode: beasts at uniform
// random positions inside the border and one plant per plant grid cell, of
// which population.plants start sprouted.
func (g *Game) Restart() {
	g.clearWorld()
	g.tick = 0

	cfg := g.cfg
	for i := 0; i < cfg.Population.Herbivores; i++ {
		g.spawnBeast(components.Herbivore)
	}
	for i := 0; i < cfg.Population.Carnivores; i++ {
		g.spawnBeast(components.Carnivore)
	}

	n := cfg.World.PlantGrid
	cells := make([]components.PlantCell, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			cells = append(cells, components.PlantCell{Col: col, Row: row})
		}
	}
	sprouted := make(map[int]bool, cfg.Population.Plants)
	for _, i := range g.rng.Perm(len(cells))[:min(cfg.Population.Plants, len(cells))] {
		sprouted[i] = true
	}
	for i, cell := range cells {
		g.spawnPlant(cell, sprouted[i])
	}
}

// clearWorld removes every entity. Entities are collected before removal so
// no query is open during structural changes.
func (g *Game) clearWorld() {
	var all []ecs.Entity

	bq := g.beastFilter.Query()
	for bq.Next() {
		all = append(all, bq.Entity())
	}
	pq := g.plantFilter.Query()
	for pq.Next() {
		all = append(all, pq.Entity())
	}

	for _, e := range all {
		g.world.RemoveEntity(e)
	}
	g.numHerb, g.numCarn, g.numPlants = 0, 0, 0
}

// spawnBeast creates a beast at a random position inside the border.
func (g *Game) spawnBeast(t components.BeastType) ecs.Entity {
	cfg := g.cfg
	border := float64(cfg.World.Border)

	pos := components.Position{
		X: border + g.rng.Float64()*(cfg.Derived.WorldW-2*border),
		Y: border + g.rng.Float64()*(cfg.Derived.WorldH-2*border),
	}
	b := components.Beast{
		Type:        t,
		Heading:     g.rng.Float64() * 2 * math.Pi,
		Speed:       cfg.Beast.Speed,
		Energy:      cfg.Beast.InitialEnergy,
		FOV:         cfg.Derived.FOV,
		SightRange:  cfg.Beast.SightRange,
		MemoryTicks: cfg.Beast.MemoryTicks,
	}
	ledger := perception.NewLedger(b.MemoryTicks)

	if t == components.Herbivore {
		g.numHerb++
	} else {
		g.numCarn++
	}
	return g.beastMapper.NewEntity(&pos, &b, &ledger)
}

// spawnPlant creates the plant for a grid cell, optionally already sprouted.
func (g *Game) spawnPlant(cell components.PlantCell, sprouted bool) ecs.Entity {
	p := components.Plant{
		Cell:       cell,
		Center:     g.plantLayout.Center(cell),
		Energy:     g.cfg.World.PlantEnergy,
		SproutRate: g.cfg.World.SproutRate,
	}
	if sprouted {
		p.Sprout(g.plantLayout.GrowthPoint(cell, g.rng))
		g.numPlants++
	}
	return g.plantMapper.NewEntity(&p)
}

// removeBeasts deletes beasts from the world and from every ledger.
// starved is the number of leading entries that died of starvation; the
// rest were eaten.
func (g *Game) removeBeasts(ids []ecs.Entity, starved int) {
	if len(ids) == 0 {
		return
	}

	for i, e := range ids {
		b := g.beastMap.Get(e)
		if b.Type == components.Herbivore {
			g.numHerb--
		} else {
			g.numCarn--
		}
		if i < starved {
			g.collector.RecordStarvation(b.Type)
		} else {
			g.collector.RecordKill()
		}
	}

	g.memory.Forget(ids...)
	for _, e := range ids {
		g.world.RemoveEntity(e)
	}
}
