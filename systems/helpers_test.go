package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/perception"
)

// testWorld is a small ECS world with beast and plant mappers.
type testWorld struct {
	w      *ecs.World
	beasts *ecs.Map3[components.Position, components.Beast, perception.Ledger]
	plants *ecs.Map1[components.Plant]
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		w:      w,
		beasts: ecs.NewMap3[components.Position, components.Beast, perception.Ledger](w),
		plants: ecs.NewMap1[components.Plant](w),
	}
}

func (tw *testWorld) addBeast(t components.BeastType, x, y, heading float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	b := components.Beast{
		Type:        t,
		Heading:     heading,
		Speed:       1,
		Energy:      100,
		FOV:         1.5,
		SightRange:  25,
		MemoryTicks: 3,
	}
	ledger := perception.NewLedger(b.MemoryTicks)
	return tw.beasts.NewEntity(&pos, &b, &ledger)
}

func (tw *testWorld) addPlant(x, y float64, sprouted bool) ecs.Entity {
	p := components.Plant{Center: components.Position{X: x, Y: y}, Energy: 50}
	if sprouted {
		p.Sprout(components.Position{X: x, Y: y})
	}
	return tw.plants.NewEntity(&p)
}

func (tw *testWorld) snapshot() components.Snapshot {
	var snap components.Snapshot

	bq := ecs.NewFilter2[components.Position, components.Beast](tw.w).Query()
	for bq.Next() {
		pos, b := bq.Get()
		snap = append(snap, components.BeastEntity(bq.Entity(), pos, b))
	}
	pq := ecs.NewFilter1[components.Plant](tw.w).Query()
	for pq.Next() {
		snap = append(snap, components.PlantEntity(pq.Entity(), pq.Get()))
	}

	snap.SortByID()
	return snap
}
