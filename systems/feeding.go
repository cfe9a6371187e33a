package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
)

// FeedingResult summarises one feeding pass.
type FeedingResult struct {
	Grazed []ecs.Entity // plants eaten this tick; they wither in place
	Kills  []ecs.Entity // herbivores eaten this tick; remove after the pass
}

// FeedingSystem lets herbivores graze sprouted plants and carnivores eat
// herbivores within bite range. Targets are found in the tick snapshot and
// each can be consumed at most once per tick.
type FeedingSystem struct {
	beastMap *ecs.Map[components.Beast]
	plantMap *ecs.Map[components.Plant]
	grid     *SpatialGrid

	biteRange      float64
	energyFraction float64 // share of prey energy a carnivore gains

	candidates []int
	consumed   map[ecs.Entity]bool
}

// NewFeedingSystem creates a new feeding system backed by grid.
func NewFeedingSystem(w *ecs.World, grid *SpatialGrid, biteRange, energyFraction float64) *FeedingSystem {
	return &FeedingSystem{
		beastMap:       ecs.NewMap[components.Beast](w),
		plantMap:       ecs.NewMap[components.Plant](w),
		grid:           grid,
		biteRange:      biteRange,
		energyFraction: energyFraction,
		consumed:       make(map[ecs.Entity]bool),
	}
}

// Update runs one feeding pass in snapshot order. The grid must have been
// built from snap.
func (s *FeedingSystem) Update(snap components.Snapshot) FeedingResult {
	clear(s.consumed)
	var res FeedingResult

	for i := range snap {
		e := &snap[i]
		if !e.IsBeast() || s.consumed[e.ID] {
			continue
		}

		switch e.Beast.Type {
		case components.Herbivore:
			target, ok := s.nearest(snap, e, func(c *components.Entity) bool {
				return c.IsSproutedPlant()
			})
			if !ok {
				continue
			}
			plant := s.plantMap.Get(target.ID)
			s.beastMap.Get(e.ID).Energy += plant.Energy
			plant.Wither()
			s.consumed[target.ID] = true
			res.Grazed = append(res.Grazed, target.ID)

		case components.Carnivore:
			target, ok := s.nearest(snap, e, func(c *components.Entity) bool {
				return c.IsBeastOf(components.Herbivore)
			})
			if !ok {
				continue
			}
			prey := s.beastMap.Get(target.ID)
			s.beastMap.Get(e.ID).Energy += math.Max(prey.Energy, 0) * s.energyFraction
			prey.Energy = 0
			s.consumed[target.ID] = true
			res.Kills = append(res.Kills, target.ID)
		}
	}

	return res
}

// nearest returns the closest unconsumed entity within bite range of e that
// satisfies match.
func (s *FeedingSystem) nearest(snap components.Snapshot, e *components.Entity, match func(*components.Entity) bool) (*components.Entity, bool) {
	s.candidates = s.grid.QueryRadiusInto(s.candidates[:0], snap, e.Pos.X, e.Pos.Y, s.biteRange)

	var best *components.Entity
	bestDist := math.Inf(1)
	for _, i := range s.candidates {
		c := &snap[i]
		if c.ID == e.ID || s.consumed[c.ID] || !match(c) {
			continue
		}
		d := distanceSq(e.Pos.X, e.Pos.Y, c.Pos.X, c.Pos.Y)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != nil
}
