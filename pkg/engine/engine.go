package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
	da "github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/engine/routing"
	"github.com/lintang-b-s/Mazex/pkg/generator"
	"github.com/lintang-b-s/Mazex/pkg/geo"
	"github.com/lintang-b-s/Mazex/pkg/spatialindex"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var ErrGenerationFailed = errors.New("maze generation failed")

type Phase string

const (
	PhaseInit               Phase = "init"
	PhaseCarve              Phase = "carve"
	PhaseConfigureEntryExit Phase = "configure_entry_exit"
	PhasePrune              Phase = "prune"
	PhaseSolve              Phase = "solve"
	PhaseRetryPrune         Phase = "retry_prune"
	PhaseRegenerate         Phase = "regenerate"
	PhaseDone               Phase = "done"
	PhaseFailed             Phase = "failed"
)

type PhaseEvent struct {
	Phase        Phase  `json:"phase"`
	Regeneration int    `json:"regeneration"`
	PruneAttempt int    `json:"prune_attempt"`
	Detail       string `json:"detail,omitempty"`
}

type PhaseListener func(ev PhaseEvent)

type solveFunc func(g *da.Grid, start, end da.Index) (*da.Path, error)

func bfsSolve(g *da.Grid, start, end da.Index) (*da.Path, error) {
	return routing.NewBFS(g).Search(start, end)
}

/*
Engine drives one maze through carve, entry/exit, prune and solve.

When the solver finds no path the grid is pruned again with a larger budget, up to PruneRetries
times. After that the grid is thrown away and regenerated from scratch, at most MaxRegenerations
times, before Generate gives up with ErrGenerationFailed.
*/
type Engine struct {
	opts     Options
	strategy generator.FrontierStrategy
	logger   *zap.Logger

	solve solveFunc
}

func NewEngine(opts Options, logger *zap.Logger) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	strategy, err := generator.ParseFrontierStrategy(opts.Frontier)
	if err != nil {
		return nil, err
	}
	return &Engine{
		opts:     opts,
		strategy: strategy,
		logger:   logger,
		solve:    bfsSolve,
	}, nil
}

func (e *Engine) GetOptions() Options {
	return e.opts
}

type generation struct {
	e        *Engine
	seed     int64
	rng      *rand.Rand
	listener PhaseListener

	regeneration  int
	pruneAttempts int
}

func (gen *generation) emit(phase Phase, pruneAttempt int, detail string) {
	gen.e.logger.Debug("maze generation phase",
		zap.String("phase", string(phase)),
		zap.Int64("seed", gen.seed),
		zap.Int("regeneration", gen.regeneration),
		zap.Int("prune_attempt", pruneAttempt))
	if gen.listener != nil {
		gen.listener(PhaseEvent{
			Phase:        phase,
			Regeneration: gen.regeneration,
			PruneAttempt: pruneAttempt,
			Detail:       detail,
		})
	}
}

// Generate builds a solvable maze for seed. The same options and seed always give the same maze.
func (e *Engine) Generate(ctx context.Context, seed int64) (*da.Snapshot, error) {
	return e.GenerateWithListener(ctx, seed, nil)
}

// GenerateWithListener is Generate, reporting every phase transition to listener.
func (e *Engine) GenerateWithListener(ctx context.Context, seed int64, listener PhaseListener) (*da.Snapshot, error) {
	gen := &generation{
		e:        e,
		seed:     seed,
		rng:      rand.New(rand.NewSource(uint64(seed))),
		listener: listener,
	}

	carver := generator.NewCarver(gen.rng, e.strategy)
	pruner := generator.NewPruner(gen.rng, e.logger)
	base := e.opts.basePruneBudget()

	for gen.regeneration = 0; gen.regeneration <= e.opts.MaxRegenerations; gen.regeneration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if gen.regeneration > 0 {
			e.logger.Warn("no path after pruning retries, regenerating maze",
				zap.Int64("seed", seed), zap.Int("regeneration", gen.regeneration))
			gen.emit(PhaseRegenerate, 0, "")
		}

		gen.emit(PhaseInit, 0, fmt.Sprintf("%dx%d", e.opts.Width, e.opts.Height))
		g, err := da.NewGrid(e.opts.Width, e.opts.Height)
		if err != nil {
			return nil, err
		}

		gen.emit(PhaseCarve, 0, string(e.strategy))
		carver.Carve(g)

		gen.emit(PhaseConfigureEntryExit, 0, "")
		ee, err := generator.ConfigureEntryExit(g, gen.rng)
		if err != nil {
			return nil, err
		}

		budget := base
		pruned := 0
		for attempt := 0; attempt <= e.opts.PruneRetries; attempt++ {
			if attempt > 0 {
				budget += base
				gen.emit(PhaseRetryPrune, attempt, fmt.Sprintf("budget %d", budget))
			}

			gen.emit(PhasePrune, attempt, fmt.Sprintf("budget %d", budget))
			res := pruner.Prune(g, budget)
			pruned += res.Removed
			gen.pruneAttempts++

			gen.emit(PhaseSolve, attempt, "")
			path, err := e.solve(g, ee.Start, ee.End)
			if err == nil {
				snap := e.finish(gen, g, ee, path, pruned)
				gen.emit(PhaseDone, attempt, fmt.Sprintf("path length %d", path.Len()))
				return snap, nil
			}
			if !errors.Is(err, routing.ErrNoPathFound) {
				return nil, err
			}
			gen.logUnreachable(g, ee, attempt)
		}
	}

	gen.regeneration = e.opts.MaxRegenerations
	gen.emit(PhaseFailed, e.opts.PruneRetries, "")
	e.logger.Error("maze generation failed",
		zap.Int64("seed", seed),
		zap.Int("regenerations", e.opts.MaxRegenerations),
		zap.Int("prune_attempts", gen.pruneAttempts))
	return nil, fmt.Errorf("%w: seed %d, %d regenerations, %d prune attempts", ErrGenerationFailed,
		seed, e.opts.MaxRegenerations, gen.pruneAttempts)
}

// logUnreachable reports, at debug level, how the open cells split up when the solver found no path.
func (gen *generation) logUnreachable(g *da.Grid, ee generator.EntryExit, attempt int) {
	ce := gen.e.logger.Check(zap.DebugLevel, "no path from start to end")
	if ce == nil {
		return
	}
	component := da.ComponentOf(g, ee.Start)
	endReachable := false
	for _, c := range component {
		if c == ee.End {
			endReachable = true
			break
		}
	}
	report := da.AnalyzeConnectivity(g)
	ce.Write(
		zap.Int64("seed", gen.seed),
		zap.Int("regeneration", gen.regeneration),
		zap.Int("prune_attempt", attempt),
		zap.Int("start_component", len(component)),
		zap.Bool("end_reachable", endReachable),
		zap.Int("components", report.Components),
		zap.Int("cycles", report.Cycles))
}

// finish copies the solved grid into a snapshot and attaches the pickup cell and junction list.
func (e *Engine) finish(gen *generation, g *da.Grid, ee generator.EntryExit, path *da.Path, pruned int) *da.Snapshot {
	snap := da.NewSnapshot(g, gen.seed, ee.Start, ee.End, path)
	snap.SetStats(gen.regeneration, gen.pruneAttempts, pruned)

	world := geo.NewWorld(g.GetWidth(), g.GetHeight(), e.opts.CellSize, e.opts.WallThickness, r2.Point{})
	index := spatialindex.NewWallIndex(world)
	index.Build(g, e.logger)
	pickup, err := generator.SelectPickup(g, ee.Start, ee.End, gen.rng, index, e.opts.PickupRadius)
	if err != nil {
		e.logger.Debug("maze has no pickup cell", zap.Int64("seed", gen.seed), zap.Error(err))
	} else {
		snap.SetPickup(pickup.Cell)
		snap.SetPickupPosition(pickup.Position)
	}

	cg := routing.NewCorridorGraph(g, e.opts.FoldTurns, ee.Start, ee.End)
	snap.SetJunctions(cg.Junctions(ee.Start))
	return snap
}

// World returns the placement of this engine's mazes on the plane.
func (e *Engine) World() geo.World {
	return geo.NewWorld(e.opts.Width, e.opts.Height, e.opts.CellSize, e.opts.WallThickness, r2.Point{})
}
