package generator

import (
	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"golang.org/x/exp/rand"
)

type EntryExit struct {
	Start datastructure.Index
	End   datastructure.Index
	// ExitSide is the boundary side of End that was opened: NORTH (top row) or WEST (left column).
	ExitSide datastructure.Direction
}

// StartCell returns the fixed start cell (2W/3, 2H/3).
func StartCell(g *datastructure.Grid) (int, int) {
	return 2 * g.GetWidth() / 3, 2 * g.GetHeight() / 3
}

/*
ConfigureEntryExit opens the start room and the exit.

The start cell (2W/3, 2H/3) loses all four walls. The exit is placed on the top row (opening
its north boundary wall) or on the left column (opening its west boundary wall), side and
position chosen at random. When the side has more than one cell the exit never lands on the
start cell.
*/
func ConfigureEntryExit(g *datastructure.Grid, rng *rand.Rand) (EntryExit, error) {
	sx, sz := StartCell(g)
	if err := g.SetAllWalls(sx, sz, false); err != nil {
		return EntryExit{}, err
	}
	start, err := g.CellIndex(sx, sz)
	if err != nil {
		return EntryExit{}, err
	}

	var (
		ex, ez int
		side   datastructure.Direction
	)
	if rng.Intn(2) == 0 {
		side = datastructure.NORTH
		ez = g.GetHeight() - 1
		ex = pickAvoiding(rng, g.GetWidth(), sx, sz == ez)
	} else {
		side = datastructure.WEST
		ex = 0
		ez = pickAvoiding(rng, g.GetHeight(), sz, sx == ex)
	}

	if err := g.SetWall(ex, ez, side, false); err != nil {
		return EntryExit{}, err
	}
	end, err := g.CellIndex(ex, ez)
	if err != nil {
		return EntryExit{}, err
	}

	return EntryExit{
		Start:    start,
		End:      end,
		ExitSide: side,
	}, nil
}

// pickAvoiding draws from [0,n), skipping avoid when the start lies on the chosen side.
func pickAvoiding(rng *rand.Rand, n, avoid int, onSide bool) int {
	if !onSide || n < 2 {
		return rng.Intn(n)
	}
	v := rng.Intn(n - 1)
	if v >= avoid {
		v++
	}
	return v
}
