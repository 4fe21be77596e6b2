package controllers

import (
	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/geo"
	"github.com/lintang-b-s/Mazex/pkg/http/usecases"
)

type generateMazeRequest struct {
	Width     int    `json:"width" validate:"required,min=1,max=1024"`
	Height    int    `json:"height" validate:"required,min=1,max=1024"`
	Seed      int64  `json:"seed"`
	Frontier  string `json:"frontier" validate:"omitempty,oneof=stack queue"`
	FoldTurns bool   `json:"fold_turns"`
}

func (r generateMazeRequest) toParams() usecases.GenerateParams {
	return usecases.GenerateParams{
		Width:     r.Width,
		Height:    r.Height,
		Seed:      r.Seed,
		Frontier:  r.Frontier,
		FoldTurns: r.FoldTurns,
	}
}

type solveMazeRequest struct {
	FromX int    `validate:"min=0"`
	FromZ int    `validate:"min=0"`
	ToX   int    `validate:"min=0"`
	ToZ   int    `validate:"min=0"`
	Level string `validate:"omitempty,oneof=cell junction"`
}

type cellResponse struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// newCellResponse is nil for INVALID_CELL_ID and any other index outside the maze.
func newCellResponse(s *datastructure.Snapshot, cell datastructure.Index) *cellResponse {
	x, z, err := s.CellPos(cell)
	if err != nil {
		return nil
	}
	return &cellResponse{X: x, Z: z}
}

func newCellsResponse(s *datastructure.Snapshot, cells []datastructure.Index) []cellResponse {
	out := make([]cellResponse, 0, len(cells))
	for _, c := range cells {
		if cr := newCellResponse(s, c); cr != nil {
			out = append(out, *cr)
		}
	}
	return out
}

type pointResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type mazeResponse struct {
	ID             string         `json:"id"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	Seed           int64          `json:"seed"`
	Frontier       string         `json:"frontier"`
	FoldTurns      bool           `json:"fold_turns"`
	Start          *cellResponse  `json:"start"`
	End            *cellResponse  `json:"end"`
	Pickup         *cellResponse  `json:"pickup,omitempty"`
	// PickupPosition is the pickup point on the plane, north is +y.
	PickupPosition *pointResponse `json:"pickup_position,omitempty"`
	NorthWalls     []string       `json:"north_walls"`
	WestWalls      []string       `json:"west_walls"`
	Path           []cellResponse `json:"path"`
	PathPolyline   string         `json:"path_polyline"`
	VisitedCount   int            `json:"visited_count"`
	Junctions      []cellResponse `json:"junctions"`
	Regenerations  int            `json:"regenerations"`
	PruneAttempts  int            `json:"prune_attempts"`
	PrunedWalls    int            `json:"pruned_walls"`
}

// wallRows encodes the edge arrays row by row as strings of '0'/'1', z = 0 first.
func wallRows(g *datastructure.Grid) ([]string, []string) {
	w, h := g.GetWidth(), g.GetHeight()
	north := make([]string, h+1)
	for z := 0; z <= h; z++ {
		row := make([]byte, w)
		for x := 0; x < w; x++ {
			row[x] = bit(g.GetNorthEdge(x, z))
		}
		north[z] = string(row)
	}
	west := make([]string, h)
	for z := 0; z < h; z++ {
		row := make([]byte, w+1)
		for x := 0; x <= w; x++ {
			row[x] = bit(g.GetWestEdge(x, z))
		}
		west[z] = string(row)
	}
	return north, west
}

func bit(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

func NewMazeResponse(m *usecases.Maze) mazeResponse {
	s := m.Snapshot
	g := s.GetGrid()
	north, west := wallRows(g)

	resp := mazeResponse{
		ID:            m.ID,
		Width:         s.GetWidth(),
		Height:        s.GetHeight(),
		Seed:          s.GetSeed(),
		Frontier:      m.Options.Frontier,
		FoldTurns:     m.Options.FoldTurns,
		Start:         newCellResponse(s, s.GetStart()),
		End:           newCellResponse(s, s.GetEnd()),
		Pickup:        newCellResponse(s, s.GetPickup()),
		NorthWalls:    north,
		WestWalls:     west,
		Path:          []cellResponse{},
		Junctions:     newCellsResponse(s, s.GetJunctions()),
		Regenerations: s.GetRegenerations(),
		PruneAttempts: s.GetPruneAttempts(),
		PrunedWalls:   s.GetPrunedWalls(),
	}
	if p, ok := s.GetPickupPosition(); ok {
		resp.PickupPosition = &pointResponse{X: p.X, Y: p.Y}
	}
	if p := s.GetPath(); p != nil {
		resp.Path = newCellsResponse(s, p.GetCells())
		resp.PathPolyline = geo.EncodePolyline(m.World.PathPoints(g, p.GetCells()))
		resp.VisitedCount = p.GetVisited().Size()
	}
	return resp
}

type solveResponse struct {
	Level        string         `json:"level"`
	Path         []cellResponse `json:"path"`
	PathPolyline string         `json:"path_polyline"`
	PathLength   float64        `json:"path_length"`
	VisitedCount int            `json:"visited_count"`
	Junctions    []cellResponse `json:"junctions,omitempty"`
}

func NewSolveResponse(m *usecases.Maze, level string, path *datastructure.Path, junctions []datastructure.Index) solveResponse {
	g := m.Snapshot.GetGrid()
	return solveResponse{
		Level:        level,
		Path:         newCellsResponse(m.Snapshot, path.GetCells()),
		PathPolyline: geo.EncodePolyline(m.World.PathPoints(g, path.GetCells())),
		PathLength:   m.World.PathLength(g, path.GetCells()),
		VisitedCount: path.GetVisited().Size(),
		Junctions:    newCellsResponse(m.Snapshot, junctions),
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// progressMessage is streamed over the websocket for every generation phase.
type progressMessage struct {
	Phase        string `json:"phase"`
	Regeneration int    `json:"regeneration"`
	PruneAttempt int    `json:"prune_attempt"`
	Detail       string `json:"detail,omitempty"`
}
