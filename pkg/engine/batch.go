package engine

import (
	"context"
	"sort"

	"github.com/lintang-b-s/Mazex/pkg/concurrent"
	da "github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type BatchResult struct {
	Seed     int64
	Snapshot *da.Snapshot
	Err      error
}

// SeedRange returns count consecutive seeds starting at first.
func SeedRange(first int64, count int) []int64 {
	seeds := make([]int64, count)
	for i := range seeds {
		seeds[i] = first + int64(i)
	}
	return seeds
}

/*
GenerateBatch generates one maze per seed on numWorkers workers. Results come back in the order
of seeds. A seed that fails to generate reports its error in its BatchResult; the returned error is
only set when ctx is cancelled before every seed was queued.
*/
func (e *Engine) GenerateBatch(ctx context.Context, seeds []int64, numWorkers int) ([]BatchResult, error) {
	numWorkers = util.Clamp(numWorkers, 1, max(len(seeds), 1))

	order := make(map[int64]int, len(seeds))
	for i, s := range seeds {
		order[s] = i
	}

	pool := concurrent.NewWorkerPool[int64, BatchResult](numWorkers, len(seeds))
	pool.Start(func(seed int64) BatchResult {
		snap, err := e.Generate(ctx, seed)
		return BatchResult{Seed: seed, Snapshot: snap, Err: err}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer pool.Close()
		for _, s := range seeds {
			if util.StopConcurrentOperation(gctx) {
				return gctx.Err()
			}
			pool.AddJob(s)
		}
		return nil
	})
	feedErr := g.Wait()

	pool.Wait()
	results := make([]BatchResult, 0, len(seeds))
	for res := range pool.CollectResults() {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		return order[results[i].Seed] < order[results[j].Seed]
	})

	e.logger.Info("batch generation finished",
		zap.Int("requested", len(seeds)),
		zap.Int("generated", len(results)),
		zap.Int("workers", numWorkers))
	return results, feedErr
}
