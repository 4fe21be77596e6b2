package usecases

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/engine"
	"github.com/lintang-b-s/Mazex/pkg/engine/routing"
	"github.com/lintang-b-s/Mazex/pkg/geo"
	"github.com/lintang-b-s/Mazex/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrMazeNotFound = errors.New("maze not found")
	ErrInvalidLevel = errors.New("solve level must be cell or junction")
)

const (
	SOLVE_LEVEL_CELL     = "cell"
	SOLVE_LEVEL_JUNCTION = "junction"
)

type GenerateParams struct {
	Width     int
	Height    int
	Seed      int64
	Frontier  string
	FoldTurns bool
}

type cacheKey struct {
	width, height int
	seed          int64
	frontier      string
	foldTurns     bool
}

func (p GenerateParams) key() cacheKey {
	return cacheKey{width: p.Width, height: p.Height, seed: p.Seed, frontier: p.Frontier, foldTurns: p.FoldTurns}
}

// Maze is a generated maze as kept by the service.
type Maze struct {
	ID       string
	Options  engine.Options
	Snapshot *datastructure.Snapshot
	World    geo.World
}

type MazeService struct {
	log       *zap.Logger
	newEngine EngineFactory
	defaults  engine.Options
	byID      *lru.Cache[string, *Maze]
	byParams  *lru.Cache[cacheKey, string]
}

func NewMazeService(log *zap.Logger, defaults engine.Options, factory EngineFactory, cacheSize int) (*MazeService, error) {
	byID, err := lru.New[string, *Maze](cacheSize)
	if err != nil {
		return nil, err
	}
	byParams, err := lru.New[cacheKey, string](cacheSize)
	if err != nil {
		return nil, err
	}
	return &MazeService{
		log:       log,
		newEngine: factory,
		defaults:  defaults,
		byID:      byID,
		byParams:  byParams,
	}, nil
}

// DefaultEngineFactory builds engine.Engine values logging to log.
func DefaultEngineFactory(log *zap.Logger) EngineFactory {
	return func(opts engine.Options) (MazeEngine, error) {
		return engine.NewEngine(opts, log)
	}
}

func (ms *MazeService) GetDefaults() engine.Options {
	return ms.defaults
}

func (ms *MazeService) options(p GenerateParams) engine.Options {
	opts := ms.defaults.WithSize(p.Width, p.Height)
	if p.Frontier != "" {
		opts.Frontier = p.Frontier
	}
	opts.FoldTurns = p.FoldTurns
	return opts
}

// Generate returns the maze for p, from the cache when the same parameters were requested before.
func (ms *MazeService) Generate(ctx context.Context, p GenerateParams) (*Maze, error) {
	if id, ok := ms.byParams.Get(p.key()); ok {
		if m, ok := ms.byID.Get(id); ok {
			return m, nil
		}
	}
	return ms.GenerateWithProgress(ctx, p, nil)
}

// GenerateWithProgress always generates, reporting each phase to listener.
func (ms *MazeService) GenerateWithProgress(ctx context.Context, p GenerateParams, listener engine.PhaseListener) (*Maze, error) {
	eng, err := ms.newEngine(ms.options(p))
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid maze parameters")
	}

	snap, err := eng.GenerateWithListener(ctx, p.Seed, listener)
	if err != nil {
		if errors.Is(err, engine.ErrGenerationFailed) {
			return nil, util.WrapErrorf(err, util.ErrUnprocessable, "could not generate a solvable maze")
		}
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "%s", util.MessageInternalServerError)
	}

	m := &Maze{
		ID:       uuid.NewString(),
		Options:  eng.GetOptions(),
		Snapshot: snap,
		World:    eng.World(),
	}
	ms.byID.Add(m.ID, m)
	ms.byParams.Add(p.key(), m.ID)

	ms.log.Info("maze generated",
		zap.String("id", m.ID),
		zap.Int("width", p.Width),
		zap.Int("height", p.Height),
		zap.Int64("seed", p.Seed),
		zap.Int("regenerations", snap.GetRegenerations()))
	return m, nil
}

func (ms *MazeService) Get(id string) (*Maze, error) {
	m, ok := ms.byID.Get(id)
	if !ok {
		return nil, util.WrapErrorf(ErrMazeNotFound, util.ErrNotFound, "maze %s not found", id)
	}
	return m, nil
}

/*
Solve searches the maze id between two cells. level "cell" runs BFS over the cells, level
"junction" runs BFS over the corridor graph and expands the result back to cells. The returned
path always lists cells; junctions are the vertices the search went through.
*/
func (ms *MazeService) Solve(id string, from, to datastructure.Cell, level string) (*datastructure.Path, []datastructure.Index, error) {
	m, err := ms.Get(id)
	if err != nil {
		return nil, nil, err
	}

	g := m.Snapshot.GetGrid()
	src, err := g.CellIndex(from.X, from.Z)
	if err != nil {
		return nil, nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid from cell")
	}
	dst, err := g.CellIndex(to.X, to.Z)
	if err != nil {
		return nil, nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid to cell")
	}

	switch level {
	case SOLVE_LEVEL_CELL, "":
		path, err := routing.NewBFS(g).Search(src, dst)
		if err != nil {
			return nil, nil, solveError(err, from, to)
		}
		return path, nil, nil
	case SOLVE_LEVEL_JUNCTION:
		cg := routing.NewCorridorGraph(g, m.Options.FoldTurns, src, dst)
		jp, err := routing.NewJunctionBFS(cg).Search(src, dst)
		if err != nil {
			return nil, nil, solveError(err, from, to)
		}
		cells := cg.Expand(jp.GetCells())
		return datastructure.NewPath(cells, jp.GetVisited()), jp.GetCells(), nil
	default:
		return nil, nil, util.WrapErrorf(ErrInvalidLevel, util.ErrBadParamInput, "unknown level %q", level)
	}
}

func solveError(err error, from, to datastructure.Cell) error {
	if errors.Is(err, routing.ErrNoPathFound) {
		return util.WrapErrorf(err, util.ErrUnprocessable, "no path from (%d,%d) to (%d,%d)", from.X, from.Z, to.X, to.Z)
	}
	return util.WrapErrorf(err, util.ErrInternalServerError, "%s", util.MessageInternalServerError)
}

// Export writes the compressed snapshot of maze id to w.
func (ms *MazeService) Export(id string, w io.Writer) error {
	m, err := ms.Get(id)
	if err != nil {
		return err
	}
	if err := datastructure.WriteSnapshot(w, m.Snapshot); err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "export maze %s", id)
	}
	return nil
}
