package perception

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
)

// Entry is one remembered entity with its remaining lifetime in ticks.
type Entry struct {
	Entity    components.Entity
	Remaining int
	fresh     bool // remembered since the last Age; skips one decrement
}

// Ledger is a beast's decaying memory of perceived entities.
// It holds at most one entry per entity identity.
type Ledger struct {
	Duration int
	entries  []Entry
}

// NewLedger creates an empty ledger whose entries live for duration ticks.
func NewLedger(duration int) Ledger {
	return Ledger{Duration: duration}
}

func (l *Ledger) index(id ecs.Entity) int {
	for i := range l.entries {
		if l.entries[i].Entity.ID == id {
			return i
		}
	}
	return -1
}

// Remember records a perceived entity. Re-perceiving an entity refreshes its
// entry to the full duration and replaces the stored snapshot.
func (l *Ledger) Remember(e components.Entity) {
	if i := l.index(e.ID); i >= 0 {
		l.entries[i] = Entry{Entity: e, Remaining: l.Duration, fresh: true}
		return
	}
	l.entries = append(l.entries, Entry{Entity: e, Remaining: l.Duration, fresh: true})
}

// Forget drops the entry for id regardless of its remaining lifetime.
// It reports whether an entry was removed.
func (l *Ledger) Forget(id ecs.Entity) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

// Age advances the ledger by one tick: entries remembered this tick keep
// their full lifetime, all others lose one tick, and expired entries are
// purged. Call once per tick after perception.
func (l *Ledger) Age() {
	kept := l.entries[:0]
	for _, en := range l.entries {
		if en.fresh {
			en.fresh = false
		} else {
			en.Remaining--
		}
		if en.Remaining > 0 {
			kept = append(kept, en)
		}
	}
	clear(l.entries[len(kept):])
	l.entries = kept
}

// Len returns the number of remembered entities.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns the live entries. The slice is owned by the ledger and is
// only valid until the next mutating call.
func (l *Ledger) Entries() []Entry {
	return l.entries
}

// Lookup returns the entry for id.
func (l *Ledger) Lookup(id ecs.Entity) (Entry, bool) {
	if i := l.index(id); i >= 0 {
		return l.entries[i], true
	}
	return Entry{}, false
}

// Contains reports whether id is remembered.
func (l *Ledger) Contains(id ecs.Entity) bool {
	return l.index(id) >= 0
}

// Reset forgets everything.
func (l *Ledger) Reset() {
	clear(l.entries)
	l.entries = l.entries[:0]
}
