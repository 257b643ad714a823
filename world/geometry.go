package world

import (
	"math"

	"github.com/lixenwraith/cants/constants"
)

// Cell is a grid position in cell units
type Cell struct {
	Row, Col int
}

// Add returns c offset by d
func (c Cell) Add(d Cell) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Rect is a half-open cell rectangle [Min, Max)
type Rect struct {
	Min, Max Cell
}

// Contains reports whether c lies inside r
func (r Rect) Contains(c Cell) bool {
	return c.Row >= r.Min.Row && c.Row < r.Max.Row && c.Col >= r.Min.Col && c.Col < r.Max.Col
}

// Empty reports whether r covers no cell
func (r Rect) Empty() bool {
	return r.Max.Row <= r.Min.Row || r.Max.Col <= r.Min.Col
}

// CellAt maps a world pixel position to the cell containing it
// The result may lie outside the grid, callers check InBounds
func CellAt(x, y float64) Cell {
	return Cell{
		Row: int(math.Floor(y / constants.CellSize)),
		Col: int(math.Floor(x / constants.CellSize)),
	}
}

// Center returns the world pixel position of the centre of c
func Center(c Cell) (x, y float64) {
	return float64(c.Col)*constants.CellSize + constants.CellSize/2.0,
		float64(c.Row)*constants.CellSize + constants.CellSize/2.0
}
