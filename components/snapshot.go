package components

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"
)

// EntityKind tags the variant held by an Entity.
type EntityKind uint8

const (
	KindPlant EntityKind = iota
	KindBeast
)

// Entity is a read-only copy of one plant or beast taken at tick start.
// Only the field matching Kind is meaningful.
type Entity struct {
	ID    ecs.Entity
	Kind  EntityKind
	Pos   Position
	Plant Plant
	Beast Beast
}

// IsBeast reports whether the entity is a beast.
func (e *Entity) IsBeast() bool {
	return e.Kind == KindBeast
}

// IsBeastOf reports whether the entity is a beast of the given type.
func (e *Entity) IsBeastOf(t BeastType) bool {
	return e.Kind == KindBeast && e.Beast.Type == t
}

// IsSproutedPlant reports whether the entity is a plant that has sprouted.
func (e *Entity) IsSproutedPlant() bool {
	return e.Kind == KindPlant && e.Plant.Sprouted
}

// PlantEntity builds a snapshot entry for a plant.
func PlantEntity(id ecs.Entity, p *Plant) Entity {
	return Entity{ID: id, Kind: KindPlant, Pos: p.Location(), Plant: *p}
}

// BeastEntity builds a snapshot entry for a beast.
func BeastEntity(id ecs.Entity, pos *Position, b *Beast) Entity {
	return Entity{ID: id, Kind: KindBeast, Pos: *pos, Beast: *b}
}

// Snapshot is the point-in-time ordered entity sequence for one tick.
type Snapshot []Entity

// SortByID orders the snapshot by entity ID so iteration order does not
// depend on archetype storage layout.
func (s Snapshot) SortByID() {
	slices.SortFunc(s, func(a, b Entity) int {
		return cmp.Compare(a.ID.ID(), b.ID.ID())
	})
}

// Count returns the number of beasts of the given type.
func (s Snapshot) Count(t BeastType) int {
	n := 0
	for i := range s {
		if s[i].IsBeastOf(t) {
			n++
		}
	}
	return n
}
