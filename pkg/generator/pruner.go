package generator

import (
	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// Pruner knocks extra walls out of a carved maze so it gets loops, without ever opening a 2x2 room.
type Pruner struct {
	rng    *rand.Rand
	logger *zap.Logger
}

func NewPruner(rng *rand.Rand, logger *zap.Logger) *Pruner {
	return &Pruner{
		rng:    rng,
		logger: logger,
	}
}

type PruneResult struct {
	Requested int
	Removed   int
	Attempts  int
}

func (r PruneResult) Partial() bool {
	return r.Removed < r.Requested
}

/*
Prune tries to remove n walls using at most n*n random attempts. Each attempt picks a uniformly
random cell and flips a coin between its north and west wall, falling back to the other one. A
wall is removed only when it separates two cells and both lattice points at its ends keep more
than one wall, so no corner is left free standing.

Running out of attempts is not an error: the partial count is logged and returned.
*/
func (p *Pruner) Prune(g *datastructure.Grid, n int) PruneResult {
	res := PruneResult{Requested: n}
	if n <= 0 {
		return res
	}

	maxAttempts := n * n
	for res.Removed < n && res.Attempts < maxAttempts {
		res.Attempts++

		x := p.rng.Intn(g.GetWidth())
		z := p.rng.Intn(g.GetHeight())

		first, second := datastructure.NORTH, datastructure.WEST
		if p.rng.Intn(2) == 1 {
			first, second = second, first
		}

		if p.tryRemove(g, x, z, first) || p.tryRemove(g, x, z, second) {
			res.Removed++
		}
	}

	if res.Partial() {
		p.logger.Info("wall pruning stopped early",
			zap.Int("requested", res.Requested),
			zap.Int("removed", res.Removed),
			zap.Int("attempts", res.Attempts))
	}
	return res
}

// Removable reports whether side d of (x,z) may be opened. Only NORTH and WEST are considered.
func Removable(g *datastructure.Grid, x, z int, d datastructure.Direction) bool {
	wall, err := g.GetWall(x, z, d)
	if err != nil || !wall {
		return false
	}
	n, err := g.DirectNeighbor(x, z, d)
	if err != nil || n == datastructure.INVALID_CELL_ID {
		return false
	}

	// the lattice points at both ends of the edge.
	var ax, az, bx, bz int
	switch d {
	case datastructure.NORTH:
		ax, az, bx, bz = x, z+1, x+1, z+1
	case datastructure.WEST:
		ax, az, bx, bz = x, z, x, z+1
	default:
		return false
	}

	ca, err := g.CornerWallCount(ax, az)
	if err != nil {
		return false
	}
	cb, err := g.CornerWallCount(bx, bz)
	if err != nil {
		return false
	}
	return ca > 1 && cb > 1
}

func (p *Pruner) tryRemove(g *datastructure.Grid, x, z int, d datastructure.Direction) bool {
	if !Removable(g, x, z, d) {
		return false
	}
	return g.SetWall(x, z, d, false) == nil
}
