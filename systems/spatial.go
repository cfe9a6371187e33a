// Package systems provides ECS systems for the simulation.
package systems

import (
	"github.com/pthm-cable/beasts/components"
)

// SpatialGrid provides cell-based neighbor lookups over a tick snapshot.
// It stores snapshot indices, so it must be rebuilt whenever the snapshot
// changes. Queries are exact; the grid only prunes candidates.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int32 // flat grid of snapshot indices
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int32, cols*rows)
	for i := range cells {
		cells[i] = make([]int32, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entries from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds snapshot index i at the given position.
func (g *SpatialGrid) Insert(i int, x, y float64) {
	col, row := g.cell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], int32(i))
}

// Build clears the grid and inserts every entity of the snapshot.
func (g *SpatialGrid) Build(snap components.Snapshot) {
	g.Clear()
	for i := range snap {
		g.Insert(i, snap[i].Pos.X, snap[i].Pos.Y)
	}
}

// QueryRadiusInto appends the snapshot indices of every entity within radius
// of (x, y) to dst and returns it. Reuse dst across calls to avoid
// allocations. The snapshot must be the one the grid was built from.
func (g *SpatialGrid) QueryRadiusInto(dst []int, snap components.Snapshot, x, y, radius float64) []int {
	if radius < 0 {
		return dst
	}
	minCol, minRow := g.cell(x-radius, y-radius)
	maxCol, maxRow := g.cell(x+radius, y+radius)
	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, i := range g.cells[row*g.cols+col] {
				p := snap[i].Pos
				if distanceSq(x, y, p.X, p.Y) <= radiusSq {
					dst = append(dst, int(i))
				}
			}
		}
	}

	return dst
}

// cell returns the column and row for a world position, clamped to the grid.
func (g *SpatialGrid) cell(x, y float64) (int, int) {
	col := clampInt(int(x/g.cellSize), 0, g.cols-1)
	row := clampInt(int(y/g.cellSize), 0, g.rows-1)
	return col, row
}
