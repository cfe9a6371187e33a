package telemetry

import "github.com/pthm-cable/beasts/components"

// Collector accumulates events within an episode and produces EpisodeStats.
type Collector struct {
	episode int

	// Event counters for the current episode
	kills             int
	herbivoresStarved int
	carnivoresStarved int
	plantsEaten       int
	plantsSprouted    int
	sightings         int

	memorySum  int // remembered entries summed over ticks
	beastTicks int // beasts alive summed over ticks
}

// NewCollector creates a new episode stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordKill records a herbivore eaten by a carnivore.
func (c *Collector) RecordKill() {
	c.kills++
}

// RecordStarvation records a beast that ran out of energy.
func (c *Collector) RecordStarvation(t components.BeastType) {
	if t == components.Herbivore {
		c.herbivoresStarved++
	} else {
		c.carnivoresStarved++
	}
}

// RecordPlantsEaten records plants grazed this tick.
func (c *Collector) RecordPlantsEaten(n int) {
	c.plantsEaten += n
}

// RecordSprouts records plants that sprouted this tick.
func (c *Collector) RecordSprouts(n int) {
	c.plantsSprouted += n
}

// RecordPerception records one tick of perception: sightings made and the
// number of ledger entries held across beasts after aging.
func (c *Collector) RecordPerception(sightings, remembered, beasts int) {
	c.sightings += sightings
	c.memorySum += remembered
	c.beastTicks += beasts
}

// Episode returns the number of the episode being collected.
func (c *Collector) Episode() int {
	return c.episode
}

// Flush produces the EpisodeStats for the finished episode and resets the
// counters for the next one.
func (c *Collector) Flush(ticks int, snap components.Snapshot) EpisodeStats {
	var herbEnergies, carnEnergies []float64
	plants := 0
	for i := range snap {
		e := &snap[i]
		switch {
		case e.IsBeastOf(components.Herbivore):
			herbEnergies = append(herbEnergies, e.Beast.Energy)
		case e.IsBeastOf(components.Carnivore):
			carnEnergies = append(carnEnergies, e.Beast.Energy)
		case e.IsSproutedPlant():
			plants++
		}
	}

	herbMean, herbP50 := ComputeEnergyStats(herbEnergies)
	carnMean, carnP50 := ComputeEnergyStats(carnEnergies)

	var memoryLoad float64
	if c.beastTicks > 0 {
		memoryLoad = float64(c.memorySum) / float64(c.beastTicks)
	}

	stats := EpisodeStats{
		Episode:    c.episode,
		Ticks:      ticks,
		Herbivores: len(herbEnergies),
		Carnivores: len(carnEnergies),
		Plants:     plants,

		Kills:             c.kills,
		HerbivoresStarved: c.herbivoresStarved,
		CarnivoresStarved: c.carnivoresStarved,
		PlantsEaten:       c.plantsEaten,
		PlantsSprouted:    c.plantsSprouted,

		Sightings:      c.sightings,
		MeanMemoryLoad: memoryLoad,

		HerbivoreEnergyMean: herbMean,
		HerbivoreEnergyP50:  herbP50,
		CarnivoreEnergyMean: carnMean,
		CarnivoreEnergyP50:  carnP50,
	}

	// Reset for next episode
	*c = Collector{episode: c.episode + 1}

	return stats
}
