package systems

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/beasts/components"
)

func TestSpatialGrid_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const w, h = 300.0, 200.0

	snap := make(components.Snapshot, 400)
	for i := range snap {
		snap[i].Pos = components.Position{X: rng.Float64() * w, Y: rng.Float64() * h}
	}

	for _, cellSize := range []float64{7, 32, 500} {
		grid := NewSpatialGrid(w, h, cellSize)
		grid.Build(snap)

		for q := 0; q < 50; q++ {
			x, y := rng.Float64()*w, rng.Float64()*h
			radius := rng.Float64() * 60

			got := grid.QueryRadiusInto(nil, snap, x, y, radius)
			slices.Sort(got)

			var want []int
			for i := range snap {
				if distanceSq(x, y, snap[i].Pos.X, snap[i].Pos.Y) <= radius*radius {
					want = append(want, i)
				}
			}

			if !slices.Equal(got, want) {
				t.Fatalf("cell=%v query (%.1f,%.1f) r=%.1f: got %v, want %v", cellSize, x, y, radius, got, want)
			}
		}
	}
}

func TestSpatialGrid_OutOfBoundsPositions(t *testing.T) {
	snap := components.Snapshot{
		{Pos: components.Position{X: -5, Y: -5}},
		{Pos: components.Position{X: 105, Y: 50}},
		{Pos: components.Position{X: 50, Y: 50}},
	}
	grid := NewSpatialGrid(100, 100, 10)
	grid.Build(snap)

	got := grid.QueryRadiusInto(nil, snap, 0, 0, 8)
	if !slices.Equal(got, []int{0}) {
		t.Errorf("expected entity outside the grid to be found, got %v", got)
	}
	got = grid.QueryRadiusInto(nil, snap, 99, 50, 7)
	if !slices.Equal(got, []int{1}) {
		t.Errorf("expected entity past the right edge to be found, got %v", got)
	}
}

func TestSpatialGrid_ClearAndReuse(t *testing.T) {
	snap := components.Snapshot{{Pos: components.Position{X: 10, Y: 10}}}
	grid := NewSpatialGrid(50, 50, 10)
	grid.Build(snap)
	grid.Clear()

	if got := grid.QueryRadiusInto(nil, snap, 10, 10, 5); len(got) != 0 {
		t.Errorf("expected empty result after Clear, got %v", got)
	}

	buf := make([]int, 0, 4)
	grid.Build(snap)
	buf = grid.QueryRadiusInto(buf, snap, 10, 10, 5)
	buf = grid.QueryRadiusInto(buf[:0], snap, 10, 10, 5)
	if len(buf) != 1 {
		t.Errorf("expected 1 result after reuse, got %d", len(buf))
	}
	if got := grid.QueryRadiusInto(nil, snap, 10, 10, -1); len(got) != 0 {
		t.Errorf("negative radius returned %v", got)
	}
}
