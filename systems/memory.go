package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/perception"
)

// MemorySystem ages and prunes every beast's ledger.
type MemorySystem struct {
	filter *ecs.Filter1[perception.Ledger]
}

// NewMemorySystem creates a new memory system.
func NewMemorySystem(w *ecs.World) *MemorySystem {
	return &MemorySystem{
		filter: ecs.NewFilter1[perception.Ledger](w),
	}
}

// Update ages all ledgers by one tick. Call once per tick, after perception.
// It returns the total number of entries still remembered.
func (s *MemorySystem) Update() int {
	total := 0
	query := s.filter.Query()
	for query.Next() {
		ledger := query.Get()
		ledger.Age()
		total += ledger.Len()
	}
	return total
}

// Forget drops the given entities from every ledger.
func (s *MemorySystem) Forget(ids ...ecs.Entity) {
	if len(ids) == 0 {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		ledger := query.Get()
		for _, id := range ids {
			ledger.Forget(id)
		}
	}
}
