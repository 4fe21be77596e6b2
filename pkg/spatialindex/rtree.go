package spatialindex

import (
	"github.com/golang/geo/r2"
	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// WallSlab is one standing wall as stored in the index.
type WallSlab struct {
	cell      datastructure.Index
	direction datastructure.Direction
	rect      r2.Rect
}

func (ws WallSlab) GetCell() datastructure.Index {
	return ws.cell
}

func (ws WallSlab) GetDirection() datastructure.Direction {
	return ws.direction
}

func (ws WallSlab) GetRect() r2.Rect {
	return ws.rect
}

// WallIndex is an r-tree over the standing walls of a maze placed in a World.
type WallIndex struct {
	tr    *rtree.RTreeG[WallSlab]
	world geo.World
	size  int
}

func NewWallIndex(world geo.World) *WallIndex {
	var tr rtree.RTreeG[WallSlab]
	return &WallIndex{
		tr:    &tr,
		world: world,
	}
}

func (wi *WallIndex) GetWorld() geo.World {
	return wi.world
}

func (wi *WallIndex) Len() int {
	return wi.size
}

// Build inserts every standing wall once: the south and west side of each cell, plus the north
// side of the top row and the east side of the right column.
func (wi *WallIndex) Build(g *datastructure.Grid, log *zap.Logger) {
	log.Debug("building wall r-tree", zap.Int("width", g.GetWidth()), zap.Int("height", g.GetHeight()))

	insert := func(cell datastructure.Index, d datastructure.Direction) {
		if !g.HasWall(cell, d) {
			return
		}
		x, z := g.PosX(cell), g.PosY(cell)
		rect := wi.world.WallRect(x, z, d)
		wi.tr.Insert([2]float64{rect.X.Lo, rect.Y.Lo}, [2]float64{rect.X.Hi, rect.Y.Hi},
			WallSlab{cell: cell, direction: d, rect: rect})
		wi.size++
	}

	g.ForAllCells(func(cell datastructure.Index) {
		insert(cell, datastructure.SOUTH)
		insert(cell, datastructure.WEST)
		if g.PosY(cell) == g.GetHeight()-1 {
			insert(cell, datastructure.NORTH)
		}
		if g.PosX(cell) == g.GetWidth()-1 {
			insert(cell, datastructure.EAST)
		}
	})

	log.Debug("wall r-tree built", zap.Int("walls", wi.size))
}

// IsPositionInWall reports whether p lies inside (or on the border of) any wall slab.
func (wi *WallIndex) IsPositionInWall(p r2.Point) bool {
	found := false
	wi.tr.Search([2]float64{p.X, p.Y}, [2]float64{p.X, p.Y},
		func(min, max [2]float64, data WallSlab) bool {
			found = true
			return false
		})
	return found
}

// SearchWithinRadius returns the walls whose slab intersects the square of half side radius around p.
func (wi *WallIndex) SearchWithinRadius(p r2.Point, radius float64) []WallSlab {
	results := make([]WallSlab, 0, 8)
	wi.tr.Search([2]float64{p.X - radius, p.Y - radius}, [2]float64{p.X + radius, p.Y + radius},
		func(min, max [2]float64, data WallSlab) bool {
			results = append(results, data)
			return true
		})
	return results
}

// PointBlocked reports whether p lies in a wall or, for radius > 0, whether the square of half
// side radius around p touches one.
func (wi *WallIndex) PointBlocked(p r2.Point, radius float64) bool {
	if radius <= 0 {
		return wi.IsPositionInWall(p)
	}
	return len(wi.SearchWithinRadius(p, radius)) > 0
}
