package datastructure

import "math"

// Index is the linear number of a cell: x + z*width.
type Index uint32

const (
	INVALID_CELL_ID Index = math.MaxUint32
)

type Cell struct {
	X int `json:"x"`
	Z int `json:"z"`
}

func NewCell(x, z int) Cell {
	return Cell{X: x, Z: z}
}

func (c Cell) GetX() int {
	return c.X
}

func (c Cell) GetZ() int {
	return c.Z
}

// Step returns the coordinate one unit away in direction d. The result may be outside the grid.
func (c Cell) Step(d Direction) Cell {
	return Cell{X: c.X + DELTA_X[d], Z: c.Z + DELTA_Z[d]}
}
