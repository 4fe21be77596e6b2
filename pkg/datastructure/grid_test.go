package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	testCases := []struct {
		name    string
		width   int
		height  int
		wantErr error
	}{
		{name: "1x1", width: 1, height: 1},
		{name: "rectangular", width: 7, height: 3},
		{name: "zero width", width: 0, height: 3, wantErr: ErrInvalidDimensions},
		{name: "negative height", width: 3, height: -1, wantErr: ErrInvalidDimensions},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.width, tt.height)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width*tt.height, g.NumberOfCells())
			for x := 0; x < tt.width; x++ {
				for z := 0; z < tt.height; z++ {
					n, err := g.NumWalls(x, z)
					require.NoError(t, err)
					assert.Equal(t, 4, n)
				}
			}
			assert.True(t, g.BoundaryIntact())
			assert.Equal(t, 0, g.OpenEdges())
		})
	}
}

func TestCellIndexRoundTrip(t *testing.T) {
	g, err := NewGrid(5, 4)
	require.NoError(t, err)

	for x := 0; x < 5; x++ {
		for z := 0; z < 4; z++ {
			idx, err := g.CellIndex(x, z)
			require.NoError(t, err)
			assert.Equal(t, Index(x+z*5), idx)
			assert.Equal(t, x, g.PosX(idx))
			assert.Equal(t, z, g.PosY(idx))
			assert.Equal(t, NewCell(x, z), g.CellOf(idx))

			px, pz, err := g.CellPos(idx)
			require.NoError(t, err)
			assert.Equal(t, x, px)
			assert.Equal(t, z, pz)
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	g, err := NewGrid(3, 2)
	require.NoError(t, err)

	testCases := []struct {
		name string
		x, z int
	}{
		{name: "negative x", x: -1, z: 0},
		{name: "x == width", x: 3, z: 0},
		{name: "z == height", x: 0, z: 2},
		{name: "negative z", x: 1, z: -1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.CellIndex(tt.x, tt.z)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			_, err = g.GetWall(tt.x, tt.z, NORTH)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			assert.ErrorIs(t, g.SetWall(tt.x, tt.z, EAST, false), ErrOutOfBounds)
			assert.ErrorIs(t, g.SetAllWalls(tt.x, tt.z, false), ErrOutOfBounds)
			_, err = g.NumWalls(tt.x, tt.z)
			assert.ErrorIs(t, err, ErrOutOfBounds)
			_, err = g.DirectNeighbor(tt.x, tt.z, WEST)
			assert.ErrorIs(t, err, ErrOutOfBounds)
		})
	}

	assert.Panics(t, func() { g.PosX(6) })
	assert.Panics(t, func() { g.PosY(INVALID_CELL_ID) })

	for _, cell := range []Index{6, 100, INVALID_CELL_ID} {
		_, _, err := g.CellPos(cell)
		assert.ErrorIs(t, err, ErrOutOfBounds, "cell %d", cell)
	}

	_, err = g.CornerWallCount(4, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSharedEdges(t *testing.T) {
	testCases := []struct {
		name string
		x, z int
		d    Direction
	}{
		{name: "north", x: 1, z: 1, d: NORTH},
		{name: "east", x: 1, z: 1, d: EAST},
		{name: "south", x: 1, z: 1, d: SOUTH},
		{name: "west", x: 1, z: 1, d: WEST},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(3, 3)
			require.NoError(t, err)

			require.NoError(t, g.SetWall(tt.x, tt.z, tt.d, false))

			nx, nz := tt.x+DELTA_X[tt.d], tt.z+DELTA_Z[tt.d]
			open, err := g.GetWall(nx, nz, tt.d.Opposite())
			require.NoError(t, err)
			assert.False(t, open)

			n, err := g.DirectNeighbor(tt.x, tt.z, tt.d)
			require.NoError(t, err)
			assert.Equal(t, g.cellIndex(nx, nz), n)
			assert.Equal(t, 1, g.OpenEdges())

			require.NoError(t, g.SetWall(nx, nz, tt.d.Opposite(), true))
			wall, err := g.GetWall(tt.x, tt.z, tt.d)
			require.NoError(t, err)
			assert.True(t, wall)
		})
	}
}

func TestSetAllWalls(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	require.NoError(t, g.SetAllWalls(1, 1, false))

	n, err := g.NumWalls(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, d := range Directions {
		nx, nz := 1+DELTA_X[d], 1+DELTA_Z[d]
		wall, err := g.GetWall(nx, nz, d.Opposite())
		require.NoError(t, err)
		assert.False(t, wall, "neighbour %v of centre should see the open wall", d)
		n, err := g.NumWalls(nx, nz)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	}
	assert.True(t, g.BoundaryIntact())
	assert.Equal(t, 4, g.OpenEdges())
}

func TestBoundaryNeighbors(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)

	n, err := g.DirectNeighbor(0, 0, SOUTH)
	require.NoError(t, err)
	assert.Equal(t, INVALID_CELL_ID, n)

	n, err = g.DirectNeighbor(1, 1, NORTH)
	require.NoError(t, err)
	assert.Equal(t, INVALID_CELL_ID, n)

	// an opened boundary side leads nowhere
	require.NoError(t, g.SetWall(0, 0, WEST, false))
	assert.False(t, g.BoundaryIntact())
	assert.Empty(t, g.OpenNeighbors(0))
	assert.Equal(t, 0, g.OpenEdges())
}

func TestCornerWallCount(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		px, pz int
		want   int
	}{
		{name: "outer corner", px: 0, pz: 0, want: 2},
		{name: "boundary midpoint", px: 1, pz: 0, want: 3},
		{name: "centre", px: 1, pz: 1, want: 4},
		{name: "top right", px: 2, pz: 2, want: 2},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.CornerWallCount(tt.px, tt.pz)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	// open the four walls around the centre point
	require.NoError(t, g.SetWall(0, 0, NORTH, false))
	require.NoError(t, g.SetWall(0, 0, EAST, false))
	require.NoError(t, g.SetWall(1, 1, SOUTH, false))
	require.NoError(t, g.SetWall(1, 1, WEST, false))
	got, err := g.CornerWallCount(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestCloneAndEqual(t *testing.T) {
	g, err := NewGrid(3, 2)
	require.NoError(t, err)

	c := g.Clone()
	assert.True(t, g.Equal(c))

	require.NoError(t, c.SetWall(0, 0, EAST, false))
	assert.False(t, g.Equal(c))

	wall, err := g.GetWall(0, 0, EAST)
	require.NoError(t, err)
	assert.True(t, wall)

	other, err := NewGrid(2, 3)
	require.NoError(t, err)
	assert.False(t, g.Equal(other))
	assert.False(t, g.Equal(nil))
}

func TestDirection(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.Equal(t, d, d.Clockwise().CounterClockwise())
		assert.True(t, d.IsPerpendicular(d.Clockwise()))
		assert.False(t, d.IsPerpendicular(d.Opposite()))
		assert.Equal(t, 0, DELTA_X[d]+DELTA_X[d.Opposite()])
		assert.Equal(t, 0, DELTA_Z[d]+DELTA_Z[d.Opposite()])

		parsed, ok := ParseDirection(d.String())
		assert.True(t, ok)
		assert.Equal(t, d, parsed)
	}
	_, ok := ParseDirection("up")
	assert.False(t, ok)
	assert.False(t, Direction(7).Valid())
}

func TestRender(t *testing.T) {
	g, err := NewGrid(2, 1)
	require.NoError(t, err)
	require.NoError(t, g.SetWall(0, 0, EAST, false))

	want := "+---+---+\n" +
		"|       |\n" +
		"+---+---+\n"
	assert.Equal(t, want, g.String())

	require.NoError(t, g.SetWall(1, 0, NORTH, false))
	s := NewSnapshot(g, 1, 0, 1, NewPath([]Index{0, 1}, setOf([]Index{0, 1})))
	want = "+---+   +\n" +
		"| S   E |\n" +
		"+---+---+\n"
	assert.Equal(t, want, s.Render(true))
}
