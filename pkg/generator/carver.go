package generator

import (
	"fmt"

	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"golang.org/x/exp/rand"
)

type FrontierStrategy string

const (
	// StackFrontier is the recursive backtracker: long winding corridors, few branches.
	StackFrontier FrontierStrategy = "stack"
	// QueueFrontier walks until it runs into a dead end, then restarts next to the carved region.
	QueueFrontier FrontierStrategy = "queue"
)

func ParseFrontierStrategy(s string) (FrontierStrategy, error) {
	switch FrontierStrategy(s) {
	case StackFrontier, QueueFrontier:
		return FrontierStrategy(s), nil
	}
	return "", fmt.Errorf("unknown frontier strategy %q", s)
}

// Carver grows a spanning tree into a grid with the growing-tree algorithm.
type Carver struct {
	rng      *rand.Rand
	strategy FrontierStrategy
}

func NewCarver(rng *rand.Rand, strategy FrontierStrategy) *Carver {
	return &Carver{
		rng:      rng,
		strategy: strategy,
	}
}

type carveState struct {
	g       *datastructure.Grid
	rng     *rand.Rand
	visited []bool
	count   int
	removed int

	dirs [datastructure.NUM_DIRECTIONS]datastructure.Direction
}

func newCarveState(g *datastructure.Grid, rng *rand.Rand) *carveState {
	return &carveState{
		g:       g,
		rng:     rng,
		visited: make([]bool, g.NumberOfCells()),
	}
}

func (cs *carveState) visit(cell datastructure.Index) {
	cs.visited[cell] = true
	cs.count++
}

// shuffled returns the four directions in random order. The slice is reused across calls.
func (cs *carveState) shuffled() []datastructure.Direction {
	cs.dirs = datastructure.Directions
	cs.rng.Shuffle(len(cs.dirs), func(i, j int) {
		cs.dirs[i], cs.dirs[j] = cs.dirs[j], cs.dirs[i]
	})
	return cs.dirs[:]
}

// unvisitedNeighbor returns the first unvisited neighbour of cell in a random direction order.
func (cs *carveState) unvisitedNeighbor(cell datastructure.Index) (datastructure.Index, datastructure.Direction, bool) {
	for _, d := range cs.shuffled() {
		n := cs.g.Neighbor(cell, d)
		if n != datastructure.INVALID_CELL_ID && !cs.visited[n] {
			return n, d, true
		}
	}
	return datastructure.INVALID_CELL_ID, 0, false
}

func (cs *carveState) carve(cell datastructure.Index, d datastructure.Direction) {
	x, z := cs.g.PosX(cell), cs.g.PosY(cell)
	// (x,z) is valid and d is one of the four directions, SetWall cannot fail.
	_ = cs.g.SetWall(x, z, d, false)
	cs.removed++
}

/*
Carve raises every wall of g and carves a perfect maze into it, starting from a random cell.
Every cell ends up visited and exactly width*height-1 interior walls are removed, so the open
walls form a spanning tree over the cells. Returns the number of removed walls.
*/
func (c *Carver) Carve(g *datastructure.Grid) int {
	g.Reset()

	cs := newCarveState(g, c.rng)
	start := datastructure.Index(c.rng.Intn(g.NumberOfCells()))
	cs.visit(start)

	switch c.strategy {
	case StackFrontier:
		cs.carveStack(start)
	default:
		cs.carveQueue(start)
	}
	return cs.removed
}

func (cs *carveState) carveStack(start datastructure.Index) {
	stack := []datastructure.Index{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, d, ok := cs.unvisitedNeighbor(cur)
		if !ok {
			continue
		}
		stack = append(stack, cur)
		cs.carve(cur, d)
		cs.visit(n)
		stack = append(stack, n)
	}
}

func (cs *carveState) carveQueue(start datastructure.Index) {
	total := cs.g.NumberOfCells()

	// unvisited cells next to the carved region. a cell may appear more than once and is
	// skipped when it was visited in the meantime.
	border := make([]datastructure.Index, 0, total)
	addBorder := func(cell datastructure.Index) {
		for _, d := range datastructure.Directions {
			n := cs.g.Neighbor(cell, d)
			if n != datastructure.INVALID_CELL_ID && !cs.visited[n] {
				border = append(border, n)
			}
		}
	}

	queue := []datastructure.Index{start}
	addBorder(start)
	for {
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			n, d, ok := cs.unvisitedNeighbor(cur)
			if !ok {
				continue
			}
			cs.carve(cur, d)
			cs.visit(n)
			addBorder(n)
			queue = append(queue, n)
		}

		if cs.count == total {
			return
		}

		// restart from a random unvisited cell touching the carved region and join it to the tree.
		var restart datastructure.Index = datastructure.INVALID_CELL_ID
		for len(border) > 0 {
			i := cs.rng.Intn(len(border))
			cell := border[i]
			border[i] = border[len(border)-1]
			border = border[:len(border)-1]
			if !cs.visited[cell] {
				restart = cell
				break
			}
		}
		if restart == datastructure.INVALID_CELL_ID {
			// unreachable on a rectangular grid: some unvisited cell always borders the visited region.
			return
		}

		for _, d := range cs.shuffled() {
			n := cs.g.Neighbor(restart, d)
			if n != datastructure.INVALID_CELL_ID && cs.visited[n] {
				cs.carve(restart, d)
				break
			}
		}
		cs.visit(restart)
		addBorder(restart)
		queue = append(queue, restart)
	}
}
