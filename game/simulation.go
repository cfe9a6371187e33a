package game

import (
	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/telemetry"
)

// Snapshot copies every plant and beast into a new snapshot ordered by
// entity ID. The result does not alias live component storage.
func (g *Game) Snapshot() components.Snapshot {
	snap := make(components.Snapshot, 0, g.numHerb+g.numCarn+g.cfg.World.PlantGrid*g.cfg.World.PlantGrid)

	bq := g.beastFilter.Query()
	for bq.Next() {
		pos, b := bq.Get()
		snap = append(snap, components.BeastEntity(bq.Entity(), pos, b))
	}
	pq := g.plantFilter.Query()
	for pq.Next() {
		snap = append(snap, components.PlantEntity(pq.Entity(), pq.Get()))
	}

	snap.SortByID()
	return snap
}

// Advance takes a snapshot and runs one tick on it.
func (g *Game) Advance() {
	g.perfCollector.StartTick()
	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	snap := g.Snapshot()
	g.step(snap)
	g.perfCollector.EndTick()
}

// Step runs one tick against snap, which must have been taken from this game
// at the start of the tick: perception, memory aging, feeding, movement,
// plant growth, then removal of dead beasts.
func (g *Game) Step(snap components.Snapshot) {
	g.perfCollector.StartTick()
	g.step(snap)
	g.perfCollector.EndTick()
}

func (g *Game) step(snap components.Snapshot) {
	perf := g.perfCollector

	perf.StartPhase(telemetry.PhaseSpatialGrid)
	g.spatialGrid.Build(snap)

	perf.StartPhase(telemetry.PhasePerception)
	g.perception.Update(snap)

	perf.StartPhase(telemetry.PhaseMemory)
	remembered := g.memory.Update()
	g.collector.RecordPerception(g.perception.Perceived(), remembered, g.numHerb+g.numCarn)

	perf.StartPhase(telemetry.PhaseFeeding)
	fed := g.feeding.Update(snap)
	g.numPlants -= len(fed.Grazed)
	g.collector.RecordPlantsEaten(len(fed.Grazed))

	perf.StartPhase(telemetry.PhaseMovement)
	starved := g.movement.Update(g.removeBuf[:0])

	perf.StartPhase(telemetry.PhaseFlora)
	sprouted := g.flora.Update()
	g.numPlants += sprouted
	g.collector.RecordSprouts(sprouted)

	perf.StartPhase(telemetry.PhaseCleanup)
	nStarved := len(starved)
	g.removeBuf = append(starved, fed.Kills...)
	g.removeBeasts(g.removeBuf, nStarved)
	g.memory.Forget(fed.Grazed...)

	g.tick++
	g.flushTelemetry()
}

// ContinueSimulation reports whether the episode should go on: both species
// must still be alive and, when anim is non-nil, the display must still want
// frames. Pass a literal nil for headless runs; a typed nil pointer is not a
// nil Animator.
func (g *Game) ContinueSimulation(anim Animator) bool {
	if g.numHerb == 0 || g.numCarn == 0 {
		return false
	}
	return anim == nil || anim.ContinueAnimation()
}
