package datastructure

import "github.com/golang/geo/r2"

// Snapshot is a finished maze as handed to collaborators: a private copy of the walls, the
// start/end cells and the certified path. Nothing in it is shared with the generator.
type Snapshot struct {
	grid   *Grid
	seed   int64
	start  Index
	end    Index
	pickup Index
	// pickupPos is the pickup point on the plane, set together with hasPickupPos.
	pickupPos    r2.Point
	hasPickupPos bool

	path      *Path
	junctions []Index

	regenerations int
	pruneAttempts int
	prunedWalls   int
}

func NewSnapshot(grid *Grid, seed int64, start, end Index, path *Path) *Snapshot {
	var p *Path
	if path != nil {
		p = path.Clone()
	}
	return &Snapshot{
		grid:   grid.Clone(),
		seed:   seed,
		start:  start,
		end:    end,
		pickup: INVALID_CELL_ID,
		path:   p,
	}
}

func (s *Snapshot) SetPickup(cell Index) {
	s.pickup = cell
}

func (s *Snapshot) SetPickupPosition(p r2.Point) {
	s.pickupPos = p
	s.hasPickupPos = true
}

func (s *Snapshot) SetJunctions(junctions []Index) {
	s.junctions = append([]Index(nil), junctions...)
}

func (s *Snapshot) SetStats(regenerations, pruneAttempts, prunedWalls int) {
	s.regenerations = regenerations
	s.pruneAttempts = pruneAttempts
	s.prunedWalls = prunedWalls
}

func (s *Snapshot) GetWidth() int {
	return s.grid.GetWidth()
}

func (s *Snapshot) GetHeight() int {
	return s.grid.GetHeight()
}

func (s *Snapshot) GetWall(x, z int, d Direction) (bool, error) {
	return s.grid.GetWall(x, z, d)
}

// GetGrid returns a copy; mutating it does not affect the snapshot.
func (s *Snapshot) GetGrid() *Grid {
	return s.grid.Clone()
}

// grid gives read-only access inside the package without copying.
func (s *Snapshot) view() *Grid {
	return s.grid
}

func (s *Snapshot) GetSeed() int64 {
	return s.seed
}

func (s *Snapshot) GetStart() Index {
	return s.start
}

func (s *Snapshot) GetEnd() Index {
	return s.end
}

func (s *Snapshot) GetPickup() Index {
	return s.pickup
}

// GetPickupPosition returns the pickup point; false when none was placed or it was not stored.
func (s *Snapshot) GetPickupPosition() (r2.Point, bool) {
	return s.pickupPos, s.hasPickupPos
}

func (s *Snapshot) GetPath() *Path {
	return s.path
}

func (s *Snapshot) GetJunctions() []Index {
	return s.junctions
}

func (s *Snapshot) GetRegenerations() int {
	return s.regenerations
}

func (s *Snapshot) GetPruneAttempts() int {
	return s.pruneAttempts
}

func (s *Snapshot) GetPrunedWalls() int {
	return s.prunedWalls
}

func (s *Snapshot) CellPos(cell Index) (int, int, error) {
	return s.grid.CellPos(cell)
}

func (s *Snapshot) CellOf(cell Index) Cell {
	return s.grid.CellOf(cell)
}
