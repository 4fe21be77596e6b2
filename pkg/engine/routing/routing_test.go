package routing

import (
	"fmt"
	"testing"

	da "github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type opening struct {
	x, z int
	d    da.Direction
}

func buildGrid(t *testing.T, w, h int, open []opening) *da.Grid {
	t.Helper()
	g, err := da.NewGrid(w, h)
	require.NoError(t, err)
	for _, o := range open {
		require.NoError(t, g.SetWall(o.x, o.z, o.d, false))
	}
	return g
}

func carvedTree(t *testing.T, w, h int, seed int64) *da.Grid {
	t.Helper()
	g, err := da.NewGrid(w, h)
	require.NoError(t, err)
	generator.NewCarver(rand.New(rand.NewSource(uint64(seed))), generator.StackFrontier).Carve(g)
	return g
}

func neighborList(cg *CorridorGraph, c da.Index) []da.Index {
	return cg.sortedNeighbors(c)
}

func TestCorridorStraight(t *testing.T) {
	testCases := []struct {
		name string
		w, h int
		open []opening
		a, b da.Index
	}{
		{
			name: "horizontal 5x1 with open ends",
			w:    5, h: 1,
			open: []opening{
				{0, 0, da.WEST}, {0, 0, da.EAST}, {1, 0, da.EAST}, {2, 0, da.EAST}, {3, 0, da.EAST}, {4, 0, da.EAST},
			},
			a: 0, b: 4,
		},
		{
			name: "vertical 1x5 with open ends",
			w:    1, h: 5,
			open: []opening{
				{0, 0, da.SOUTH}, {0, 0, da.NORTH}, {0, 1, da.NORTH}, {0, 2, da.NORTH}, {0, 3, da.NORTH}, {0, 4, da.NORTH},
			},
			a: 0, b: 4,
		},
		{
			name: "horizontal 5x1 closed ends",
			w:    5, h: 1,
			open: []opening{
				{0, 0, da.EAST}, {1, 0, da.EAST}, {2, 0, da.EAST}, {3, 0, da.EAST},
			},
			a: 0, b: 4,
		},
	}

	for _, tt := range testCases {
		for _, fold := range []bool{false, true} {
			t.Run(fmt.Sprintf("%s fold=%v", tt.name, fold), func(t *testing.T) {
				g := buildGrid(t, tt.w, tt.h, tt.open)
				cg := NewCorridorGraph(g, fold)

				assert.Equal(t, []da.Index{tt.b}, neighborList(cg, tt.a))
				assert.Equal(t, []da.Index{tt.a}, neighborList(cg, tt.b))
				for c := tt.a + 1; c < tt.b; c++ {
					assert.True(t, cg.IsPassThrough(c))
				}
				// from the middle both ends are visible
				assert.Equal(t, []da.Index{tt.a, tt.b}, neighborList(cg, 2))
			})
		}
	}
}

func TestCorridorLTurn(t *testing.T) {
	// 0 -> 1 -> 3 in a 2x2 grid, cell 2 closed off.
	g := buildGrid(t, 2, 2, []opening{{0, 0, da.EAST}, {1, 0, da.NORTH}})

	straight := NewCorridorGraph(g, false)
	assert.False(t, straight.IsPassThrough(1))
	assert.Equal(t, []da.Index{1}, neighborList(straight, 0))
	assert.Equal(t, []da.Index{0, 3}, neighborList(straight, 1))
	assert.Equal(t, []da.Index{0, 1, 3}, straight.AllVertices(0))

	folded := NewCorridorGraph(g, true)
	assert.True(t, folded.IsPassThrough(1))
	assert.Equal(t, []da.Index{3}, neighborList(folded, 0))
	assert.Equal(t, []da.Index{0}, neighborList(folded, 3))
	assert.Equal(t, []da.Index{0, 3}, folded.AllVertices(0))
	assert.Equal(t, []da.Index{0, 1, 3}, folded.Expand([]da.Index{0, 3}))
}

func TestCorridorPinned(t *testing.T) {
	g := buildGrid(t, 5, 1, []opening{{0, 0, da.EAST}, {1, 0, da.EAST}, {2, 0, da.EAST}, {3, 0, da.EAST}})
	cg := NewCorridorGraph(g, false, 2)

	assert.False(t, cg.IsPassThrough(2))
	assert.Equal(t, []da.Index{2}, neighborList(cg, 0))
	assert.Equal(t, []da.Index{0, 4}, neighborList(cg, 2))
}

func TestCorridorJunctions(t *testing.T) {
	// T shape: 0 - 1 - 2 along the bottom row, 1 - 4 upwards.
	g := buildGrid(t, 3, 2, []opening{{0, 0, da.EAST}, {1, 0, da.EAST}, {1, 0, da.NORTH}})
	cg := NewCorridorGraph(g, false)

	assert.Equal(t, []da.Index{0, 2, 4}, neighborList(cg, 1))
	assert.Equal(t, 3, cg.Neighbors(1).Size())
	assert.Equal(t, []da.Index{0, 1, 2, 4}, cg.AllVertices(0))
	assert.Equal(t, []da.Index{1}, cg.Junctions(0))
	assert.Equal(t, []da.Index{0, 1, 4}, cg.Expand([]da.Index{0, 1, 4}))
}

func TestCorridorLoop(t *testing.T) {
	// a ring of four pass-through cells around a 2x2 grid's centre point.
	g := buildGrid(t, 2, 2, []opening{{0, 0, da.EAST}, {1, 0, da.NORTH}, {1, 1, da.WEST}, {0, 1, da.SOUTH}})
	cg := NewCorridorGraph(g, true)

	assert.Empty(t, neighborList(cg, 0))
	assert.Equal(t, []da.Index{0}, cg.AllVertices(0))

	pinned := NewCorridorGraph(g, true, 0, 3)
	assert.Equal(t, []da.Index{3}, neighborList(pinned, 0))
}

func TestBFSSelfPath(t *testing.T) {
	g := carvedTree(t, 4, 4, 1)

	for _, search := range []func(s, e da.Index) (*da.Path, error){
		NewBFS(g).Search,
		NewJunctionBFS(NewCorridorGraph(g, true)).Search,
	} {
		p, err := search(5, 5)
		require.NoError(t, err)
		assert.Equal(t, []da.Index{5}, p.GetCells())
		assert.Equal(t, 1, p.GetVisited().Size())
		assert.True(t, p.GetVisited().Has(5))
	}
}

func TestBFSNoPath(t *testing.T) {
	g := buildGrid(t, 3, 1, []opening{{0, 0, da.EAST}})

	p, err := NewBFS(g).Search(0, 2)
	assert.ErrorIs(t, err, ErrNoPathFound)
	assert.Equal(t, []da.Index{0, 1}, p.VisitedCells())

	_, err = NewJunctionBFS(NewCorridorGraph(g, false, 0, 2)).Search(0, 2)
	assert.ErrorIs(t, err, ErrNoPathFound)
}

func TestBFSOutOfBounds(t *testing.T) {
	g := buildGrid(t, 2, 2, nil)
	_, err := NewBFS(g).Search(0, 4)
	assert.ErrorIs(t, err, da.ErrOutOfBounds)
	_, err = NewJunctionBFS(NewCorridorGraph(g, false)).Search(da.INVALID_CELL_ID, 0)
	assert.ErrorIs(t, err, da.ErrOutOfBounds)
}

// treeDistances is an independent DFS over the carved tree.
func treeDistances(g *da.Grid, from da.Index) []int {
	dist := make([]int, g.NumberOfCells())
	for i := range dist {
		dist[i] = -1
	}
	dist[from] = 0
	stack := []da.Index{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range g.OpenNeighbors(cur) {
			if dist[n] < 0 {
				dist[n] = dist[cur] + 1
				stack = append(stack, n)
			}
		}
	}
	return dist
}

func assertValidPath(t *testing.T, g *da.Grid, cells []da.Index, start, end da.Index) {
	t.Helper()
	require.NotEmpty(t, cells)
	assert.Equal(t, start, cells[0])
	assert.Equal(t, end, cells[len(cells)-1])
	for i := 1; i < len(cells); i++ {
		assert.Contains(t, g.OpenNeighbors(cells[i-1]), cells[i], "step %d -> %d crosses a wall", cells[i-1], cells[i])
	}
}

func TestBFSTreeUniqueness(t *testing.T) {
	for seed := int64(0); seed < 6; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			g := carvedTree(t, 9, 7, seed)
			rng := rand.New(rand.NewSource(uint64(seed)))
			bfs := NewBFS(g)

			for i := 0; i < 20; i++ {
				start := da.Index(rng.Intn(g.NumberOfCells()))
				end := da.Index(rng.Intn(g.NumberOfCells()))

				p, err := bfs.Search(start, end)
				require.NoError(t, err)
				assertValidPath(t, g, p.GetCells(), start, end)
				assert.Equal(t, treeDistances(g, start)[end]+1, p.Len())

				for _, fold := range []bool{false, true} {
					cg := NewCorridorGraph(g, fold, start, end)
					jp, err := NewJunctionBFS(cg).Search(start, end)
					require.NoError(t, err)
					assert.Equal(t, p.GetCells(), cg.Expand(jp.GetCells()))
				}
			}
		})
	}
}
