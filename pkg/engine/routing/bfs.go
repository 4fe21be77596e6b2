package routing

import (
	"errors"
	"fmt"

	da "github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/util"
	"github.com/zyedidia/generic/mapset"
)

var ErrNoPathFound = errors.New("no path found")

// BFS searches the cell graph directly: two cells are adjacent iff no wall separates them.
type BFS struct {
	grid *da.Grid

	parent []da.Index
}

func NewBFS(grid *da.Grid) *BFS {
	return &BFS{
		grid: grid,
	}
}

func (b *BFS) Preallocate() {
	n := b.grid.NumberOfCells()
	if cap(b.parent) < n {
		b.parent = make([]da.Index, n)
	}
	b.parent = b.parent[:n]
	for i := range b.parent {
		b.parent[i] = da.INVALID_CELL_ID
	}
}

func checkEndpoints(g *da.Grid, start, end da.Index) error {
	if !g.ValidCell(start) {
		return fmt.Errorf("%w: start cell %d", da.ErrOutOfBounds, start)
	}
	if !g.ValidCell(end) {
		return fmt.Errorf("%w: end cell %d", da.ErrOutOfBounds, end)
	}
	return nil
}

// Search returns the shortest cell path from start to end and every cell the search discovered.
func (b *BFS) Search(start, end da.Index) (*da.Path, error) {
	if err := checkEndpoints(b.grid, start, end); err != nil {
		return nil, err
	}

	visited := mapset.New[da.Index]()
	visited.Put(start)
	if start == end {
		return da.NewPath([]da.Index{start}, visited), nil
	}

	b.Preallocate()

	queue := []da.Index{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, n := range b.grid.OpenNeighbors(cur) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			b.parent[n] = cur
			if n == end {
				return da.NewPath(unwind(b.parent, start, end), visited), nil
			}
			queue = append(queue, n)
		}
	}

	return da.NewPath(nil, visited), ErrNoPathFound
}

// unwind follows parent pointers back from end and returns the path start..end.
func unwind(parent []da.Index, start, end da.Index) []da.Index {
	path := []da.Index{end}
	for cur := end; cur != start; {
		cur = parent[cur]
		path = append(path, cur)
	}
	return util.ReverseG(path)
}

// JunctionBFS searches the collapsed junction graph of a CorridorGraph. It expands fewer nodes
// than BFS on mazes with long corridors. The returned path lists vertices only; use
// CorridorGraph.Expand for the cells in between.
type JunctionBFS struct {
	cg *CorridorGraph
}

func NewJunctionBFS(cg *CorridorGraph) *JunctionBFS {
	return &JunctionBFS{
		cg: cg,
	}
}

/*
Search runs breadth-first search from start to end over CorridorGraph.Neighbors. start and end
must be vertices of the corridor graph, pin them when building it. Because a corridor counts as one
hop, the result has the fewest vertices, which is not always the fewest cells once pruning added
loops.
*/
func (jb *JunctionBFS) Search(start, end da.Index) (*da.Path, error) {
	g := jb.cg.GetGrid()
	if err := checkEndpoints(g, start, end); err != nil {
		return nil, err
	}

	visited := mapset.New[da.Index]()
	visited.Put(start)
	if start == end {
		return da.NewPath([]da.Index{start}, visited), nil
	}

	parent := make(map[da.Index]da.Index)
	queue := []da.Index{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, n := range jb.cg.sortedNeighbors(cur) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)
			parent[n] = cur
			if n == end {
				path := []da.Index{end}
				for c := end; c != start; {
					c = parent[c]
					path = append(path, c)
				}
				return da.NewPath(util.ReverseG(path), visited), nil
			}
			queue = append(queue, n)
		}
	}
	return da.NewPath(nil, visited), ErrNoPathFound
}
