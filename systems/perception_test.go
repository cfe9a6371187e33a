package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/perception"
)

func runPerception(tw *testWorld) *PerceptionSystem {
	snap := tw.snapshot()
	grid := NewSpatialGrid(200, 200, 16)
	grid.Build(snap)
	ps := NewPerceptionSystem(tw.w, grid)
	ps.Update(snap)
	return ps
}

func ledgerOf(tw *testWorld, e ecs.Entity) *perception.Ledger {
	_, _, l := tw.beasts.Get(e)
	return l
}

// ---------- PerceptionSystem ----------

func TestPerceptionSystem_RemembersVisibleEntities(t *testing.T) {
	tw := newTestWorld()
	observer := tw.addBeast(components.Herbivore, 50, 50, 0)
	ahead := tw.addBeast(components.Carnivore, 60, 50, math.Pi)
	behind := tw.addBeast(components.Carnivore, 40, 50, 0)
	grown := tw.addPlant(55, 52, true)
	seed := tw.addPlant(57, 50, false)
	far := tw.addPlant(120, 50, true)

	runPerception(tw)

	l := ledgerOf(tw, observer)
	for _, e := range []ecs.Entity{ahead, grown} {
		if !l.Contains(e) {
			t.Errorf("expected %v to be remembered", e)
		}
	}
	for _, e := range []ecs.Entity{observer, behind, seed, far} {
		if l.Contains(e) {
			t.Errorf("did not expect %v to be remembered", e)
		}
	}

	// The carnivore ahead faces the observer and sees it.
	if !ledgerOf(tw, ahead).Contains(observer) {
		t.Error("expected facing carnivore to remember the observer")
	}
}

func TestPerceptionSystem_MatchesBruteForce(t *testing.T) {
	tw := newTestWorld()
	for i := 0; i < 40; i++ {
		x := float64(i*37%190) + 5
		y := float64(i*53%190) + 5
		tw.addBeast(components.BeastType(i%2), x, y, float64(i))
		tw.addPlant(y, x, i%3 != 0)
	}

	snap := tw.snapshot()
	runPerception(tw)

	for i := range snap {
		e := &snap[i]
		if !e.IsBeast() {
			continue
		}
		o := perception.ObserverOf(e.ID, &e.Pos, &e.Beast)
		want := perception.Scan(o, snap, nil)
		l := ledgerOf(tw, e.ID)
		if l.Len() != len(want) {
			t.Fatalf("beast %v: ledger has %d entries, brute force sees %d", e.ID, l.Len(), len(want))
		}
		for _, w := range want {
			if !l.Contains(w.ID) {
				t.Errorf("beast %v: missing %v", e.ID, w.ID)
			}
		}
	}
}

// ---------- MemorySystem ----------

func TestMemorySystem_AgesAndForgets(t *testing.T) {
	tw := newTestWorld()
	a := tw.addBeast(components.Herbivore, 50, 50, 0)
	b := tw.addBeast(components.Carnivore, 55, 50, math.Pi)
	c := tw.addBeast(components.Carnivore, 58, 50, math.Pi)

	runPerception(tw)
	ms := NewMemorySystem(tw.w)

	if total := ms.Update(); total == 0 {
		t.Fatal("expected remembered entries after first aging")
	}

	ms.Forget(b)
	for _, e := range []ecs.Entity{a, c} {
		if ledgerOf(tw, e).Contains(b) {
			t.Errorf("%v still remembers forgotten entity", e)
		}
	}
	if !ledgerOf(tw, a).Contains(c) {
		t.Error("Forget removed an unrelated entry")
	}

	// MemoryTicks is 3: the fresh aging plus three more purge everything.
	for i := 0; i < 3; i++ {
		ms.Update()
	}
	if total := ms.Update(); total != 0 {
		t.Errorf("expected all memories expired, %d remain", total)
	}
}
