package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
)

// PlantLayout describes the plant grid inside the world border.
type PlantLayout struct {
	Border       float64
	CellW, CellH float64
}

// Center returns the centre of a plant grid cell.
func (l PlantLayout) Center(c components.PlantCell) components.Position {
	return components.Position{
		X: l.Border + (float64(c.Col)+0.5)*l.CellW,
		Y: l.Border + (float64(c.Row)+0.5)*l.CellH,
	}
}

// GrowthPoint returns a uniform random position inside a plant grid cell.
func (l PlantLayout) GrowthPoint(c components.PlantCell, rng *rand.Rand) components.Position {
	return components.Position{
		X: l.Border + (float64(c.Col)+rng.Float64())*l.CellW,
		Y: l.Border + (float64(c.Row)+rng.Float64())*l.CellH,
	}
}

// FloraSystem sprouts dormant plants stochastically.
type FloraSystem struct {
	filter *ecs.Filter1[components.Plant]
	layout PlantLayout
	rng    *rand.Rand
}

// NewFloraSystem creates a new flora system.
func NewFloraSystem(w *ecs.World, layout PlantLayout, rng *rand.Rand) *FloraSystem {
	return &FloraSystem{
		filter: ecs.NewFilter1[components.Plant](w),
		layout: layout,
		rng:    rng,
	}
}

// Update gives every unsprouted plant its per-tick chance to sprout and
// returns how many did.
func (s *FloraSystem) Update() int {
	sprouted := 0
	query := s.filter.Query()
	for query.Next() {
		p := query.Get()
		if p.Sprouted {
			continue
		}
		if s.rng.Float64() < p.SproutRate {
			p.Sprout(s.layout.GrowthPoint(p.Cell, s.rng))
			sprouted++
		}
	}
	return sprouted
}
