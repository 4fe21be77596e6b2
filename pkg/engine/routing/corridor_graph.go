package routing

import (
	"sort"

	da "github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/zyedidia/generic/mapset"
)

/*
CorridorGraph is the maze seen as a junction graph: runs of pass-through cells are collapsed and
only their far endpoints are reported as neighbours.

A cell is pass-through when it has exactly two walls. With foldTurns unset the two open sides must
also be opposite, so only straight corridors collapse and every L corner is a vertex of its own.
With foldTurns set a corridor is followed around its corners as well.

Pinned cells (typically start and end) are always vertices, so a search over the junction graph
can reach them even when they sit in the middle of a corridor.
*/
type CorridorGraph struct {
	grid      *da.Grid
	foldTurns bool
	pinned    mapset.Set[da.Index]
}

func NewCorridorGraph(grid *da.Grid, foldTurns bool, pinned ...da.Index) *CorridorGraph {
	p := mapset.New[da.Index]()
	for _, c := range pinned {
		p.Put(c)
	}
	return &CorridorGraph{
		grid:      grid,
		foldTurns: foldTurns,
		pinned:    p,
	}
}

func (cg *CorridorGraph) GetGrid() *da.Grid {
	return cg.grid
}

func (cg *CorridorGraph) FoldsTurns() bool {
	return cg.foldTurns
}

// exitSide returns the side a walk entering cell heading in direction heading leaves through,
// or false when cell is not pass-through.
func (cg *CorridorGraph) exitSide(cell da.Index, heading da.Direction) (da.Direction, bool) {
	if cg.grid.NumWallsOf(cell) != 2 {
		return 0, false
	}
	back := heading.Opposite()
	if cg.grid.HasWall(cell, back) {
		return 0, false
	}
	if cg.grid.IsOpen(cell, heading) {
		return heading, true
	}
	if !cg.foldTurns {
		return 0, false
	}
	for _, d := range [2]da.Direction{heading.Clockwise(), heading.CounterClockwise()} {
		if cg.grid.IsOpen(cell, d) {
			return d, true
		}
	}
	return 0, false
}

// IsPassThrough reports whether cell is collapsed into a corridor.
func (cg *CorridorGraph) IsPassThrough(cell da.Index) bool {
	if cg.pinned.Has(cell) || cg.grid.NumWallsOf(cell) != 2 {
		return false
	}
	for _, d := range da.Directions {
		if cg.grid.IsOpen(cell, d) {
			_, ok := cg.exitSide(cell, d.Opposite())
			return ok
		}
	}
	return false
}

func (cg *CorridorGraph) IsVertex(cell da.Index) bool {
	return !cg.IsPassThrough(cell)
}

/*
walk leaves from through side d and follows the corridor until it reaches a vertex. It returns the
cells stepped on (the endpoint last) or nil when side d is walled, leads off the grid right away, or
the corridor loops back to from.

An open side pointing off the grid (an opened boundary wall) ends the walk at the current cell.
*/
func (cg *CorridorGraph) walk(from da.Index, d da.Direction) []da.Index {
	if cg.grid.HasWall(from, d) {
		return nil
	}
	cur := cg.grid.Neighbor(from, d)
	if cur == da.INVALID_CELL_ID {
		return nil
	}

	cells := []da.Index{cur}
	heading := d
	// a corridor never visits a cell twice, so it is at most NumberOfCells long.
	for steps := 0; steps < cg.grid.NumberOfCells(); steps++ {
		if cur == from {
			return nil
		}
		if cg.pinned.Has(cur) {
			break
		}
		out, ok := cg.exitSide(cur, heading)
		if !ok {
			break
		}
		next := cg.grid.Neighbor(cur, out)
		if next == da.INVALID_CELL_ID {
			break
		}
		heading = out
		cur = next
		cells = append(cells, cur)
	}
	return cells
}

// Neighbors returns the vertices reachable from from through one corridor each.
func (cg *CorridorGraph) Neighbors(from da.Index) mapset.Set[da.Index] {
	res := mapset.New[da.Index]()
	for _, d := range da.Directions {
		if cells := cg.walk(from, d); len(cells) > 0 {
			res.Put(cells[len(cells)-1])
		}
	}
	return res
}

// sortedNeighbors is Neighbors in ascending order, so searches are reproducible.
func (cg *CorridorGraph) sortedNeighbors(from da.Index) []da.Index {
	set := cg.Neighbors(from)
	out := make([]da.Index, 0, set.Size())
	set.Each(func(c da.Index) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllVertices collects every vertex reachable from start, start included, in ascending order.
func (cg *CorridorGraph) AllVertices(start da.Index) []da.Index {
	seen := mapset.New[da.Index]()
	seen.Put(start)
	stack := []da.Index{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range cg.sortedNeighbors(cur) {
			if seen.Has(n) {
				continue
			}
			seen.Put(n)
			stack = append(stack, n)
		}
	}

	out := make([]da.Index, 0, seen.Size())
	seen.Each(func(c da.Index) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Junctions returns the reachable vertices with more than two open sides.
func (cg *CorridorGraph) Junctions(start da.Index) []da.Index {
	out := make([]da.Index, 0)
	for _, v := range cg.AllVertices(start) {
		if len(cg.grid.OpenNeighbors(v)) > 2 {
			out = append(out, v)
		}
	}
	return out
}

// Expand turns a vertex path into the full cell path by replaying the corridor between each pair.
func (cg *CorridorGraph) Expand(vertices []da.Index) []da.Index {
	if len(vertices) == 0 {
		return nil
	}
	cells := []da.Index{vertices[0]}
	for i := 1; i < len(vertices); i++ {
		from, to := vertices[i-1], vertices[i]
		for _, d := range da.Directions {
			if w := cg.walk(from, d); len(w) > 0 && w[len(w)-1] == to {
				cells = append(cells, w...)
				break
			}
		}
	}
	return cells
}
