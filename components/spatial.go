package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents a beast's continuous world position.
type Position struct {
	X, Y float64
}

// Vec returns the position as a gonum vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// PlantCell identifies a plant's slot on the plant grid.
type PlantCell struct {
	Col, Row int
}
