// Package main provides CMA-ES optimization for beast simulation parameters.
package main

import (
	"math"

	"github.com/pthm-cable/beasts/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Order must match ApplyToConfig and ExtractFromConfig.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Beasts
			{Name: "speed", Path: "beast.speed", Min: 0.25, Max: 3.0},
			{Name: "energy_decay", Path: "beast.energy_decay", Min: 0.1, Max: 2.0},
			{Name: "fov_degrees", Path: "beast.fov_degrees", Min: 10, Max: 360},
			{Name: "sight_range", Path: "beast.sight_range", Min: 5, Max: 120},
			{Name: "memory_ticks", Path: "beast.memory_ticks", Min: 1, Max: 120},
			{Name: "turn_jitter", Path: "beast.turn_jitter", Min: 0, Max: 1.0},
			{Name: "bite_range", Path: "beast.bite_range", Min: 1, Max: 20},
			{Name: "eat_energy_fraction", Path: "beast.eat_energy_fraction", Min: 0.05, Max: 1.0},
			// Plants
			{Name: "sprout_rate", Path: "world.sprout_rate", Min: 0, Max: 0.05},
			{Name: "plant_energy", Path: "world.plant_energy", Min: 10, Max: 300},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to cfg and refreshes its derived
// values. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)

	cfg.Beast.Speed = clamped[0]
	cfg.Beast.EnergyDecay = clamped[1]
	cfg.Beast.FOVDegrees = clamped[2]
	cfg.Beast.SightRange = clamped[3]
	cfg.Beast.MemoryTicks = int(math.Round(clamped[4]))
	cfg.Beast.TurnJitter = clamped[5]
	cfg.Beast.BiteRange = clamped[6]
	cfg.Beast.EatEnergyFraction = clamped[7]

	cfg.World.SproutRate = clamped[8]
	cfg.World.PlantEnergy = clamped[9]

	return cfg.Refresh()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Beast.Speed,
		cfg.Beast.EnergyDecay,
		cfg.Beast.FOVDegrees,
		cfg.Beast.SightRange,
		float64(cfg.Beast.MemoryTicks),
		cfg.Beast.TurnJitter,
		cfg.Beast.BiteRange,
		cfg.Beast.EatEnergyFraction,
		cfg.World.SproutRate,
		cfg.World.PlantEnergy,
	}
}
