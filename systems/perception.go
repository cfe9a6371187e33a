package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/perception"
)

// PerceptionSystem records what every beast sees this tick in its ledger.
// All queries read the tick snapshot, never live components of other
// entities.
type PerceptionSystem struct {
	filter *ecs.Filter3[components.Position, components.Beast, perception.Ledger]
	grid   *SpatialGrid

	// Reused buffers
	candidates []int
	nearby     []components.Entity
	seen       []components.Entity

	perceived int // entities remembered during the last update
}

// NewPerceptionSystem creates a new perception system backed by grid.
func NewPerceptionSystem(w *ecs.World, grid *SpatialGrid) *PerceptionSystem {
	return &PerceptionSystem{
		filter: ecs.NewFilter3[components.Position, components.Beast, perception.Ledger](w),
		grid:   grid,
	}
}

// Update scans the snapshot for every beast and remembers what it can see.
// The grid must have been built from snap.
func (s *PerceptionSystem) Update(snap components.Snapshot) {
	s.perceived = 0

	query := s.filter.Query()
	for query.Next() {
		pos, b, ledger := query.Get()
		o := perception.ObserverOf(query.Entity(), pos, b)

		s.candidates = s.grid.QueryRadiusInto(s.candidates[:0], snap, pos.X, pos.Y, b.SightRange)
		s.nearby = s.nearby[:0]
		for _, i := range s.candidates {
			s.nearby = append(s.nearby, snap[i])
		}

		s.seen = perception.Scan(o, s.nearby, s.seen[:0])
		for _, e := range s.seen {
			ledger.Remember(e)
		}
		s.perceived += len(s.seen)
	}
}

// Perceived returns how many sightings the last update recorded.
func (s *PerceptionSystem) Perceived() int {
	return s.perceived
}
