package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/lintang-b-s/Mazex/pkg/datastructure"
)

var ErrOutOfWorld = errors.New("point outside the maze")

// World places a maze on the plane: cell (x,z) covers
// [Origin.X + x*CellSize, Origin.X + (x+1)*CellSize) x [Origin.Y + z*CellSize, ...).
// The plane's Y axis is the maze's z axis, so north is +Y.
type World struct {
	CellSize float64
	Origin   r2.Point

	// WallThickness is the full thickness of a wall slab centred on its edge.
	WallThickness float64

	width, height int
}

func NewWorld(width, height int, cellSize, wallThickness float64, origin r2.Point) World {
	return World{
		CellSize:      cellSize,
		Origin:        origin,
		WallThickness: wallThickness,
		width:         width,
		height:        height,
	}
}

func (w World) GetWidth() int {
	return w.width
}

func (w World) GetHeight() int {
	return w.height
}

func (w World) CellOrigin(x, z int) r2.Point {
	return w.Origin.Add(r2.Point{X: float64(x) * w.CellSize, Y: float64(z) * w.CellSize})
}

func (w World) CellCenter(x, z int) r2.Point {
	return w.CellOrigin(x, z).Add(r2.Point{X: w.CellSize / 2, Y: w.CellSize / 2})
}

func (w World) CellRect(x, z int) r2.Rect {
	lo := w.CellOrigin(x, z)
	return r2.RectFromPoints(lo, lo.Add(r2.Point{X: w.CellSize, Y: w.CellSize}))
}

// CellAt returns the cell containing p.
func (w World) CellAt(p r2.Point) (int, int, error) {
	d := p.Sub(w.Origin)
	x := int(math.Floor(d.X / w.CellSize))
	z := int(math.Floor(d.Y / w.CellSize))
	if x < 0 || x >= w.width || z < 0 || z >= w.height {
		return 0, 0, fmt.Errorf("%w: (%.3f,%.3f)", ErrOutOfWorld, p.X, p.Y)
	}
	return x, z, nil
}

// WallRect is the slab of side d of cell (x,z), extended by half a thickness past both lattice
// points so neighbouring slabs overlap at the corners.
func (w World) WallRect(x, z int, d datastructure.Direction) r2.Rect {
	half := w.WallThickness / 2
	lo := w.CellOrigin(x, z)
	hi := lo.Add(r2.Point{X: w.CellSize, Y: w.CellSize})

	var a, b r2.Point
	switch d {
	case datastructure.NORTH:
		a, b = r2.Point{X: lo.X, Y: hi.Y}, hi
	case datastructure.EAST:
		a, b = r2.Point{X: hi.X, Y: lo.Y}, hi
	case datastructure.SOUTH:
		a, b = lo, r2.Point{X: hi.X, Y: lo.Y}
	default:
		a, b = lo, r2.Point{X: lo.X, Y: hi.Y}
	}
	return r2.RectFromPoints(a, b).ExpandedByMargin(half)
}

// PathPoints maps cell indices to cell centres.
func (w World) PathPoints(g *datastructure.Grid, cells []datastructure.Index) []r2.Point {
	pts := make([]r2.Point, len(cells))
	for i, c := range cells {
		pts[i] = w.CellCenter(g.PosX(c), g.PosY(c))
	}
	return pts
}

// PathLength is the length of the polyline through the centres of cells.
func (w World) PathLength(g *datastructure.Grid, cells []datastructure.Index) float64 {
	pts := w.PathPoints(g, cells)
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Norm()
	}
	return total
}
