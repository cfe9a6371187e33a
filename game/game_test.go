package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/perception"
)

type fakeAnimator struct{ open bool }

func (a fakeAnimator) ContinueAnimation() bool { return a.open }

func newTestGame(t *testing.T, seed int64, tweak func(*config.Config)) *Game {
	t.Helper()
	cfg := config.Default()
	if tweak != nil {
		tweak(cfg)
	}
	g, err := NewGame(cfg, Options{Seed: seed})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func TestRestartPopulation(t *testing.T) {
	g := newTestGame(t, 1, nil)
	cfg := g.Config()

	herb, carn, plants := g.Counts()
	if herb != cfg.Population.Herbivores || carn != cfg.Population.Carnivores || plants != cfg.Population.Plants {
		t.Fatalf("counts = %d/%d/%d, want %d/%d/%d", herb, carn, plants,
			cfg.Population.Herbivores, cfg.Population.Carnivores, cfg.Population.Plants)
	}

	snap := g.Snapshot()
	border := float64(cfg.World.Border)
	var plantEntities, sprouted int
	for _, e := range snap {
		switch e.Kind {
		case components.KindBeast:
			if e.Pos.X < border || e.Pos.X > cfg.Derived.WorldW-border ||
				e.Pos.Y < border || e.Pos.Y > cfg.Derived.WorldH-border {
				t.Errorf("beast spawned outside the border at %+v", e.Pos)
			}
		case components.KindPlant:
			plantEntities++
			if e.Plant.Sprouted {
				sprouted++
			}
		}
	}
	if plantEntities != cfg.World.PlantGrid*cfg.World.PlantGrid {
		t.Errorf("expected one plant per grid cell, got %d", plantEntities)
	}
	if sprouted != cfg.Population.Plants {
		t.Errorf("expected %d sprouted plants, got %d", cfg.Population.Plants, sprouted)
	}

	// Restart replaces everything.
	for i := 0; i < 20; i++ {
		g.Advance()
	}
	g.Restart()
	if g.Tick() != 0 {
		t.Errorf("tick after restart = %d", g.Tick())
	}
	if n := len(g.Snapshot()); n != len(snap) {
		t.Errorf("entity count after restart = %d, want %d", n, len(snap))
	}
}

func TestSnapshotOrderedAndDetached(t *testing.T) {
	g := newTestGame(t, 2, nil)

	snap := g.Snapshot()
	for i := 1; i < len(snap); i++ {
		if snap[i-1].ID.ID() >= snap[i].ID.ID() {
			t.Fatalf("snapshot not ordered by ID at %d", i)
		}
	}

	for i := range snap {
		snap[i].Pos.X = -1000
	}
	for _, e := range g.Snapshot() {
		if e.Pos.X == -1000 {
			t.Fatal("mutating a snapshot changed the world")
		}
	}
}

func TestStepForgetsRemovedEntities(t *testing.T) {
	g := newTestGame(t, 3, func(c *config.Config) {
		c.Population.Herbivores = 15
		c.Population.Carnivores = 10
		c.Beast.SightRange = 120
		c.Beast.BiteRange = 12
		c.Beast.MemoryTicks = 50
	})
	ledgers := ecs.NewFilter1[perception.Ledger](g.world)

	remembered := 0
	for tick := 0; tick < 400 && g.ContinueSimulation(nil); tick++ {
		g.Step(g.Snapshot())

		q := ledgers.Query()
		for q.Next() {
			l := q.Get()
			remembered += l.Len()
			for _, en := range l.Entries() {
				if !g.world.Alive(en.Entity.ID) {
					q.Close()
					t.Fatalf("tick %d: ledger remembers removed entity %v", tick, en.Entity.ID)
				}
				if en.Entity.Kind == components.KindPlant && !en.Entity.Plant.Sprouted {
					q.Close()
					t.Fatalf("tick %d: ledger remembers an unsprouted plant", tick)
				}
			}
		}
	}
	if remembered == 0 {
		t.Error("expected beasts to remember something")
	}
}

func TestCountsMatchSnapshot(t *testing.T) {
	g := newTestGame(t, 4, func(c *config.Config) {
		c.World.SproutRate = 0.05
		c.Beast.BiteRange = 15
	})

	for tick := 0; tick < 150 && g.ContinueSimulation(nil); tick++ {
		g.Advance()

		snap := g.Snapshot()
		herb, carn, plants := g.Counts()
		sprouted := 0
		for i := range snap {
			if snap[i].IsSproutedPlant() {
				sprouted++
			}
		}
		if herb != snap.Count(components.Herbivore) || carn != snap.Count(components.Carnivore) || plants != sprouted {
			t.Fatalf("tick %d: counts %d/%d/%d disagree with snapshot %d/%d/%d", tick,
				herb, carn, plants, snap.Count(components.Herbivore), snap.Count(components.Carnivore), sprouted)
		}
	}
}

func TestContinueSimulation(t *testing.T) {
	g := newTestGame(t, 5, nil)

	if !g.ContinueSimulation(nil) {
		t.Error("expected headless continuation with both species alive")
	}
	if !g.ContinueSimulation(fakeAnimator{open: true}) {
		t.Error("expected continuation with open display")
	}
	if g.ContinueSimulation(fakeAnimator{open: false}) {
		t.Error("expected stop when the display closes")
	}

	noCarnivores := newTestGame(t, 5, func(c *config.Config) { c.Population.Carnivores = 0 })
	if noCarnivores.ContinueSimulation(nil) {
		t.Error("expected stop without carnivores")
	}
}

func TestEpisodeEndsByExtinction(t *testing.T) {
	g := newTestGame(t, 6, func(c *config.Config) {
		c.Beast.EnergyDecay = 5 // starve within 20 ticks unless fed
		c.World.SproutRate = 0
	})

	ticks := 0
	for g.ContinueSimulation(nil) {
		g.Advance()
		ticks++
		if ticks > 1000 {
			t.Fatal("episode did not end")
		}
	}

	stats := g.EndEpisode()
	if stats.Episode != 0 || stats.Ticks != ticks {
		t.Errorf("episode stats = %+v, want episode 0 with %d ticks", stats, ticks)
	}
	if stats.Herbivores != 0 && stats.Carnivores != 0 {
		t.Errorf("expected one species extinct, got %d/%d", stats.Herbivores, stats.Carnivores)
	}
	if stats.Kills+stats.HerbivoresStarved+stats.CarnivoresStarved == 0 {
		t.Error("expected recorded deaths")
	}

	g.Restart()
	if g.Episode() != 1 || !g.ContinueSimulation(nil) {
		t.Errorf("restart did not begin a new episode (episode %d)", g.Episode())
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := newTestGame(t, 42, nil)
	b := newTestGame(t, 42, nil)

	for i := 0; i < 60; i++ {
		a.Advance()
		b.Advance()
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	if len(sa) != len(sb) {
		t.Fatalf("snapshot lengths differ: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i].Pos != sb[i].Pos || sa[i].Beast != sb[i].Beast {
			t.Fatalf("entity %d differs between identically seeded games", i)
		}
	}
}

func TestOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	cfg := config.Default()
	cfg.Telemetry.StatsWindow = 10

	g, err := NewGame(cfg, Options{Seed: 7, OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 25 && g.ContinueSimulation(nil); i++ {
		g.Advance()
	}
	g.EndEpisode()
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"config.yaml", "perf.csv", "episodes.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
