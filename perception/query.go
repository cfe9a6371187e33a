// Package perception decides what a beast can see and what it remembers.
package perception

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/beasts/components"
)

// Observer is the viewing side of a visibility query.
type Observer struct {
	ID         ecs.Entity
	Pos        r2.Vec
	Heading    float64 // radians
	FOV        float64 // full cone width (radians)
	SightRange float64
}

// ObserverOf builds an observer from a beast's components.
func ObserverOf(id ecs.Entity, pos *components.Position, b *components.Beast) Observer {
	return Observer{
		ID:         id,
		Pos:        pos.Vec(),
		Heading:    b.Heading,
		FOV:        b.FOV,
		SightRange: b.SightRange,
	}
}

// offset returns the vector from the observer to the entity.
func offset(o Observer, e *components.Entity) r2.Vec {
	return r2.Sub(e.Pos.Vec(), o.Pos)
}

// InRange reports whether the entity is within the observer's sight range.
func InRange(o Observer, e *components.Entity) bool {
	return r2.Norm(offset(o, e)) <= o.SightRange
}

// InDirection reports whether the entity lies inside the observer's
// field-of-view cone, regardless of distance.
func InDirection(o Observer, e *components.Entity) bool {
	d := offset(o, e)
	return WithinCone(d.X, d.Y, o.Heading, o.FOV)
}

// InView reports whether the observer can see the entity.
func InView(o Observer, e *components.Entity) bool {
	return InRange(o, e) && InDirection(o, e)
}

// Perceivable reports whether an entity can be seen at all.
// Plants only become visible once sprouted.
func Perceivable(e *components.Entity) bool {
	if e.Kind == components.KindPlant {
		return e.Plant.Sprouted
	}
	return true
}

// Scan appends every entity the observer can see to dst and returns it.
// The observer itself is never evaluated.
func Scan(o Observer, entities []components.Entity, dst []components.Entity) []components.Entity {
	for i := range entities {
		e := &entities[i]
		if e.ID == o.ID || !Perceivable(e) {
			continue
		}
		if InView(o, e) {
			dst = append(dst, *e)
		}
	}
	return dst
}
