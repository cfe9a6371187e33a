package renderer

import "github.com/pthm-cable/beasts/config"

// Palette holds the packed colours and body radii used to draw a frame.
type Palette struct {
	Background uint32
	Cone       uint32
	Herbivore  uint32
	Carnivore  uint32
	Plant      uint32

	HerbivoreRadius int
	CarnivoreRadius int
	PlantRadius     int
}

// PaletteFromConfig builds a palette from the render configuration.
func PaletteFromConfig(rc config.RenderConfig) Palette {
	return Palette{
		Background:      rc.Background,
		Cone:            rc.Cone,
		Herbivore:       rc.Herbivore,
		Carnivore:       rc.Carnivore,
		Plant:           rc.Plant,
		HerbivoreRadius: rc.HerbivoreRadius,
		CarnivoreRadius: rc.CarnivoreRadius,
		PlantRadius:     rc.PlantRadius,
	}
}
