package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
)

// Bounds is the rectangle beasts may move in.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// MovementSystem advances beasts along their heading, ages them and burns
// energy. Beasts that run out of energy are reported as starved.
type MovementSystem struct {
	filter *ecs.Filter2[components.Position, components.Beast]
	bounds Bounds
	rng    *rand.Rand

	turnJitter  float64 // std-dev of the per-tick heading change
	energyDecay float64
}

// NewMovementSystem creates a new movement system.
func NewMovementSystem(w *ecs.World, bounds Bounds, rng *rand.Rand, turnJitter, energyDecay float64) *MovementSystem {
	return &MovementSystem{
		filter:      ecs.NewFilter2[components.Position, components.Beast](w),
		bounds:      bounds,
		rng:         rng,
		turnJitter:  turnJitter,
		energyDecay: energyDecay,
	}
}

// Update moves every living beast one tick and appends beasts that starved
// to dst.
func (s *MovementSystem) Update(dst []ecs.Entity) []ecs.Entity {
	query := s.filter.Query()
	for query.Next() {
		pos, b := query.Get()
		if !b.Alive() {
			continue // eaten this tick
		}

		b.Heading += s.rng.NormFloat64() * s.turnJitter

		x := pos.X + b.Speed*math.Cos(b.Heading)
		y := pos.Y + b.Speed*math.Sin(b.Heading)

		// Walls reflect the heading
		var hitX, hitY bool
		x, hitX = reflect(x, s.bounds.MinX, s.bounds.MaxX)
		y, hitY = reflect(y, s.bounds.MinY, s.bounds.MaxY)
		if hitX {
			b.Heading = math.Pi - b.Heading
		}
		if hitY {
			b.Heading = -b.Heading
		}
		b.Heading = normalizeHeading(b.Heading)

		pos.X, pos.Y = x, y

		b.Age++
		b.Energy -= s.energyDecay
		if !b.Alive() {
			dst = append(dst, query.Entity())
		}
	}
	return dst
}
