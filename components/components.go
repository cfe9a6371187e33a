// Package components defines ECS components for the simulation.
package components

// BeastType distinguishes the two beast species.
type BeastType uint8

const (
	Herbivore BeastType = iota
	Carnivore
)

// String returns the display name of the beast type.
func (t BeastType) String() string {
	switch t {
	case Herbivore:
		return "herbivore"
	case Carnivore:
		return "carnivore"
	}
	return "unknown"
}

// Beast holds a mobile agent's state and perception parameters.
// Position is stored as a separate component; the memory ledger lives in
// perception.Ledger.
type Beast struct {
	Type        BeastType
	Heading     float64 // radians
	Speed       float64 // world units per tick
	Energy      float64
	Age         int32   // ticks alive
	FOV         float64 // full angular width of the view cone (radians)
	SightRange  float64
	MemoryTicks int
}

// Alive reports whether the beast still has energy left.
func (b *Beast) Alive() bool {
	return b.Energy > 0
}

// Plant holds a plant grid slot. A plant only exists in the world visually
// and perceptually once it has sprouted.
type Plant struct {
	Cell       PlantCell
	Center     Position // centre of the grid cell
	Growth     Position // set when the plant sprouts
	Sprouted   bool
	Energy     float64
	SproutRate float64 // probability of sprouting per tick
}

// Sprout marks the plant as grown at the given position.
func (p *Plant) Sprout(at Position) {
	p.Growth = at
	p.Sprouted = true
}

// Wither resets the plant to its unsprouted state (e.g. after being eaten).
func (p *Plant) Wither() {
	p.Growth = Position{}
	p.Sprouted = false
}

// Location returns the plant's representative position: its growth
// coordinates once sprouted, otherwise the centre of its cell.
func (p *Plant) Location() Position {
	if p.Sprouted {
		return p.Growth
	}
	return p.Center
}
