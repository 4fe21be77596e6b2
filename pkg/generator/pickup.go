package generator

import (
	"errors"

	"github.com/golang/geo/r2"
	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/spatialindex"
	"github.com/lintang-b-s/Mazex/pkg/util"
	"golang.org/x/exp/rand"
)

var ErrNoPickupCell = errors.New("no cell qualifies for the pickup")

// Pickup is the item placement: its cell and the point inside that cell on the plane.
type Pickup struct {
	Cell     datastructure.Index
	Position r2.Point
}

/*
PickupCandidates draws one random point inside every eligible cell (not the start, not the end,
not next to the end) and keeps the cells whose point is clear of the walls in index.
A point is offset up to half a cell from the centre on both axes; it is rejected when it lies in
a wall slab or, for pickupRadius > 0, when a wall is within pickupRadius of it.
rejected counts eligible cells dropped by the wall test.
*/
func PickupCandidates(g *datastructure.Grid, start, end datastructure.Index, rng *rand.Rand,
	index *spatialindex.WallIndex, pickupRadius float64) (accepted []Pickup, rejected int) {

	ex, ez := -2, -2
	if g.ValidCell(end) {
		ex, ez = g.PosX(end), g.PosY(end)
	}
	world := index.GetWorld()

	accepted = make([]Pickup, 0, g.NumberOfCells())
	g.ForAllCells(func(cell datastructure.Index) {
		if cell == start || cell == end {
			return
		}
		x, z := g.PosX(cell), g.PosY(cell)
		if util.Abs(x-ex)+util.Abs(z-ez) == 1 {
			return
		}

		p := world.CellCenter(x, z).Add(r2.Point{
			X: (rng.Float64() - 0.5) * world.CellSize,
			Y: (rng.Float64() - 0.5) * world.CellSize,
		})
		if index.PointBlocked(p, pickupRadius) {
			rejected++
			return
		}
		accepted = append(accepted, Pickup{Cell: cell, Position: p})
	})
	return accepted, rejected
}

// SelectPickup picks uniformly among PickupCandidates.
func SelectPickup(g *datastructure.Grid, start, end datastructure.Index, rng *rand.Rand,
	index *spatialindex.WallIndex, pickupRadius float64) (Pickup, error) {

	candidates, _ := PickupCandidates(g, start, end, rng, index, pickupRadius)
	if len(candidates) == 0 {
		return Pickup{Cell: datastructure.INVALID_CELL_ID}, ErrNoPickupCell
	}
	return candidates[rng.Intn(len(candidates))], nil
}
