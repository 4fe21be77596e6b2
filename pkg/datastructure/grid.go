package datastructure

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/Mazex/pkg/util"
)

// MAX_GRID_DIMENSION bounds the width and height accepted from outside input.
const MAX_GRID_DIMENSION = 1024

var (
	ErrOutOfBounds        = errors.New("coordinate out of bounds")
	ErrInvalidDimensions  = errors.New("grid width and height must be at least 1")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrDimensionsMismatch = errors.New("grid dimensions do not match")
)

/*
Grid stores the walls of a width x height maze as two edge arrays:

	northWalls[x][z], 0 <= x < width, 0 <= z <= height
	  horizontal edge below cell (x,z). northWalls[x][0] is the south boundary,
	  northWalls[x][height] the north boundary.
	westWalls[x][z], 0 <= x <= width, 0 <= z < height
	  vertical edge left of cell (x,z). westWalls[0][z] is the west boundary,
	  westWalls[width][z] the east boundary.

Every wall between two cells lives in exactly one slot, so the four directional views of a cell
can never disagree with the views of its neighbours.
*/
type Grid struct {
	width  int
	height int

	northWalls [][]bool
	westWalls  [][]bool
}

// NewGrid returns a grid with every wall standing.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}

	g := &Grid{
		width:      width,
		height:     height,
		northWalls: make([][]bool, width),
		westWalls:  make([][]bool, width+1),
	}
	for x := 0; x < width; x++ {
		g.northWalls[x] = make([]bool, height+1)
	}
	for x := 0; x <= width; x++ {
		g.westWalls[x] = make([]bool, height)
	}
	g.Reset()
	return g, nil
}

// Reset raises every wall, boundary included.
func (g *Grid) Reset() {
	for x := range g.northWalls {
		for z := range g.northWalls[x] {
			g.northWalls[x][z] = true
		}
	}
	for x := range g.westWalls {
		for z := range g.westWalls[x] {
			g.westWalls[x][z] = true
		}
	}
}

func (g *Grid) GetWidth() int {
	return g.width
}

func (g *Grid) GetHeight() int {
	return g.height
}

func (g *Grid) NumberOfCells() int {
	return g.width * g.height
}

func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && x < g.width && z >= 0 && z < g.height
}

func (g *Grid) ValidCell(cell Index) bool {
	return cell != INVALID_CELL_ID && int(cell) < g.NumberOfCells()
}

func (g *Grid) checkBounds(x, z int) error {
	if !g.InBounds(x, z) {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrOutOfBounds, x, z, g.width, g.height)
	}
	return nil
}

func (g *Grid) CellIndex(x, z int) (Index, error) {
	if err := g.checkBounds(x, z); err != nil {
		return INVALID_CELL_ID, err
	}
	return g.cellIndex(x, z), nil
}

func (g *Grid) cellIndex(x, z int) Index {
	return Index(x + z*g.width)
}

// PosX returns the column of cell. cell must be valid.
func (g *Grid) PosX(cell Index) int {
	util.AssertPanic(g.ValidCell(cell), fmt.Sprintf("cell index %d out of bounds", cell))
	return int(cell) % g.width
}

// PosY returns the row of cell. cell must be valid.
func (g *Grid) PosY(cell Index) int {
	util.AssertPanic(g.ValidCell(cell), fmt.Sprintf("cell index %d out of bounds", cell))
	return int(cell) / g.width
}

// CellPos returns the column and row of cell, or ErrOutOfBounds for an index outside the grid.
// PosX and PosY are the unchecked forms for indices the caller produced from this grid.
func (g *Grid) CellPos(cell Index) (int, int, error) {
	if !g.ValidCell(cell) {
		return 0, 0, fmt.Errorf("%w: cell index %d in %dx%d grid", ErrOutOfBounds, cell, g.width, g.height)
	}
	return int(cell) % g.width, int(cell) / g.width, nil
}

func (g *Grid) CellOf(cell Index) Cell {
	return NewCell(g.PosX(cell), g.PosY(cell))
}

// edge resolves the single storage slot behind side d of cell (x,z).
func (g *Grid) edge(x, z int, d Direction) *bool {
	switch d {
	case NORTH:
		return &g.northWalls[x][z+1]
	case EAST:
		return &g.westWalls[x+1][z]
	case SOUTH:
		return &g.northWalls[x][z]
	default:
		return &g.westWalls[x][z]
	}
}

func (g *Grid) GetWall(x, z int, d Direction) (bool, error) {
	if err := g.checkBounds(x, z); err != nil {
		return false, err
	}
	if !d.Valid() {
		return false, ErrInvalidDirection
	}
	return *g.edge(x, z, d), nil
}

func (g *Grid) SetWall(x, z int, d Direction, value bool) error {
	if err := g.checkBounds(x, z); err != nil {
		return err
	}
	if !d.Valid() {
		return ErrInvalidDirection
	}
	*g.edge(x, z, d) = value
	return nil
}

// SetAllWalls sets the four sides of (x,z). The neighbours see the change through the shared edges.
func (g *Grid) SetAllWalls(x, z int, value bool) error {
	if err := g.checkBounds(x, z); err != nil {
		return err
	}
	for _, d := range Directions {
		*g.edge(x, z, d) = value
	}
	return nil
}

func (g *Grid) NumWalls(x, z int) (int, error) {
	if err := g.checkBounds(x, z); err != nil {
		return 0, err
	}
	return g.numWalls(x, z), nil
}

func (g *Grid) numWalls(x, z int) int {
	n := 0
	for _, d := range Directions {
		if *g.edge(x, z, d) {
			n++
		}
	}
	return n
}

// DirectNeighbor returns the cell next to (x,z) in direction d, or INVALID_CELL_ID when that
// would leave the grid. Walls are ignored.
func (g *Grid) DirectNeighbor(x, z int, d Direction) (Index, error) {
	if err := g.checkBounds(x, z); err != nil {
		return INVALID_CELL_ID, err
	}
	if !d.Valid() {
		return INVALID_CELL_ID, ErrInvalidDirection
	}
	return g.directNeighbor(x, z, d), nil
}

func (g *Grid) directNeighbor(x, z int, d Direction) Index {
	nx, nz := x+DELTA_X[d], z+DELTA_Z[d]
	if !g.InBounds(nx, nz) {
		return INVALID_CELL_ID
	}
	return g.cellIndex(nx, nz)
}

// index based accessors. the cell must be valid, an invalid one panics.

func (g *Grid) HasWall(cell Index, d Direction) bool {
	x, z := g.PosX(cell), g.PosY(cell)
	return *g.edge(x, z, d)
}

func (g *Grid) IsOpen(cell Index, d Direction) bool {
	return !g.HasWall(cell, d)
}

func (g *Grid) NumWallsOf(cell Index) int {
	return g.numWalls(g.PosX(cell), g.PosY(cell))
}

func (g *Grid) Neighbor(cell Index, d Direction) Index {
	return g.directNeighbor(g.PosX(cell), g.PosY(cell), d)
}

// OpenNeighbors lists the cells reachable from cell in one step, in direction order.
// An opened boundary side has no cell behind it and is skipped.
func (g *Grid) OpenNeighbors(cell Index) []Index {
	x, z := g.PosX(cell), g.PosY(cell)
	neighbors := make([]Index, 0, NUM_DIRECTIONS)
	for _, d := range Directions {
		if *g.edge(x, z, d) {
			continue
		}
		if n := g.directNeighbor(x, z, d); n != INVALID_CELL_ID {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

func (g *Grid) ForAllCells(handle func(cell Index)) {
	for cell := 0; cell < g.NumberOfCells(); cell++ {
		handle(Index(cell))
	}
}

/*
CornerWallCount counts the walls meeting at lattice point (px,pz), 0 <= px <= width,
0 <= pz <= height. Point (px,pz) is the lower-left corner of cell (px,pz). At most four
edges meet at a point: the horizontal edges to its left and right and the vertical edges
below and above it. A count of zero at an interior point means the four cells around it
form an open 2x2 room.
*/
func (g *Grid) CornerWallCount(px, pz int) (int, error) {
	if px < 0 || px > g.width || pz < 0 || pz > g.height {
		return 0, fmt.Errorf("%w: corner (%d,%d) outside %dx%d grid", ErrOutOfBounds, px, pz, g.width, g.height)
	}
	return g.cornerWallCount(px, pz), nil
}

func (g *Grid) cornerWallCount(px, pz int) int {
	n := 0
	if px > 0 && g.northWalls[px-1][pz] {
		n++
	}
	if px < g.width && g.northWalls[px][pz] {
		n++
	}
	if pz > 0 && g.westWalls[px][pz-1] {
		n++
	}
	if pz < g.height && g.westWalls[px][pz] {
		n++
	}
	return n
}

// raw edge access, used by renderers and the snapshot codec.

// GetNorthEdge reads northWalls[x][z], 0 <= x < width, 0 <= z <= height.
func (g *Grid) GetNorthEdge(x, z int) bool {
	return g.northWalls[x][z]
}

// GetWestEdge reads westWalls[x][z], 0 <= x <= width, 0 <= z < height.
func (g *Grid) GetWestEdge(x, z int) bool {
	return g.westWalls[x][z]
}

func (g *Grid) setNorthEdge(x, z int, v bool) {
	g.northWalls[x][z] = v
}

func (g *Grid) setWestEdge(x, z int, v bool) {
	g.westWalls[x][z] = v
}

// OpenEdges counts the removed walls between two cells. Opened boundary walls are not counted.
func (g *Grid) OpenEdges() int {
	n := 0
	for x := 0; x < g.width; x++ {
		for z := 1; z < g.height; z++ {
			if !g.northWalls[x][z] {
				n++
			}
		}
	}
	for x := 1; x < g.width; x++ {
		for z := 0; z < g.height; z++ {
			if !g.westWalls[x][z] {
				n++
			}
		}
	}
	return n
}

// BoundaryIntact reports whether every wall on the outer border is standing.
func (g *Grid) BoundaryIntact() bool {
	for x := 0; x < g.width; x++ {
		if !g.northWalls[x][0] || !g.northWalls[x][g.height] {
			return false
		}
	}
	for z := 0; z < g.height; z++ {
		if !g.westWalls[0][z] || !g.westWalls[g.width][z] {
			return false
		}
	}
	return true
}

func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:      g.width,
		height:     g.height,
		northWalls: make([][]bool, len(g.northWalls)),
		westWalls:  make([][]bool, len(g.westWalls)),
	}
	for x := range g.northWalls {
		c.northWalls[x] = append([]bool(nil), g.northWalls[x]...)
	}
	for x := range g.westWalls {
		c.westWalls[x] = append([]bool(nil), g.westWalls[x]...)
	}
	return c
}

func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for x := range g.northWalls {
		for z := range g.northWalls[x] {
			if g.northWalls[x][z] != other.northWalls[x][z] {
				return false
			}
		}
	}
	for x := range g.westWalls {
		for z := range g.westWalls[x] {
			if g.westWalls[x][z] != other.westWalls[x][z] {
				return false
			}
		}
	}
	return true
}
