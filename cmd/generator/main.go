package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/engine"
	"github.com/lintang-b-s/Mazex/pkg/logger"
	"github.com/lintang-b-s/Mazex/pkg/util"
	"go.uber.org/zap"
)

type cliFlags struct {
	fs *flag.FlagSet

	width      *int
	height     *int
	seed       *int64
	randomSeed *bool
	count      *int
	workers    *int
	frontier   *string
	foldTurns  *bool
	showPath   *bool
	outDir     *string
}

func newCLIFlags(name string, errorHandling flag.ErrorHandling) *cliFlags {
	fs := flag.NewFlagSet(name, errorHandling)
	return &cliFlags{
		fs:         fs,
		width:      fs.Int("width", engine.DEFAULT_WIDTH, "maze width in cells (default from MAZE_WIDTH)"),
		height:     fs.Int("height", engine.DEFAULT_HEIGHT, "maze height in cells (default from MAZE_HEIGHT)"),
		seed:       fs.Int64("seed", 0, "seed of the first maze"),
		randomSeed: fs.Bool("random_seed", false, "seed the first maze from the current time, -seed is ignored"),
		count:      fs.Int("count", 1, "number of mazes, seeds seed..seed+count-1"),
		workers:    fs.Int("workers", 4, "number of concurrent generations"),
		frontier:   fs.String("frontier", "", "carving frontier: stack or queue (default from MAZE_FRONTIER)"),
		foldTurns:  fs.Bool("fold_turns", false, "treat single turns as corridor cells in the junction graph (default from MAZE_FOLD_TURNS)"),
		showPath:   fs.Bool("show_path", true, "draw the solution path"),
		outDir:     fs.String("out", "", "write every maze as <out>/<seed>.maze.bz2"),
	}
}

// options overrides the configured maze options with the flags given on the command line only.
func (c *cliFlags) options(opts engine.Options) engine.Options {
	c.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			opts.Width = *c.width
		case "height":
			opts.Height = *c.height
		case "frontier":
			opts.Frontier = *c.frontier
		case "fold_turns":
			opts.FoldTurns = *c.foldTurns
		}
	})
	return opts
}

func (c *cliFlags) firstSeed(now func() time.Time) int64 {
	if *c.randomSeed {
		return now().UnixNano()
	}
	return *c.seed
}

func main() {
	cli := newCLIFlags(os.Args[0], flag.ExitOnError)
	_ = cli.fs.Parse(os.Args[1:])
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()

	opts := cli.options(engine.OptionsFromViper())

	eng, err := engine.NewEngine(opts, logger)
	if err != nil {
		logger.Fatal("create engine", zap.Error(err))
	}

	first := cli.firstSeed(time.Now)
	sugar.Infof("first seed %d", first)

	start := time.Now()
	results, err := eng.GenerateBatch(context.Background(), engine.SeedRange(first, *cli.count), *cli.workers)
	if err != nil {
		logger.Fatal("generate mazes", zap.Error(err))
	}
	sugar.Infof("generated %d mazes in %s", len(results), time.Since(start))

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			sugar.Errorf("seed %d: %v", res.Seed, res.Err)
			continue
		}
		snap := res.Snapshot
		fmt.Printf("seed %d\n%s", res.Seed, snap.Render(*cli.showPath))
		sugar.Infow("maze",
			"seed", res.Seed,
			"path_length", snap.GetPath().Len(),
			"visited", snap.GetPath().GetVisited().Size(),
			"junctions", len(snap.GetJunctions()),
			"regenerations", snap.GetRegenerations(),
			"prune_attempts", snap.GetPruneAttempts(),
			"pruned_walls", snap.GetPrunedWalls())

		if *cli.outDir != "" {
			if err := export(*cli.outDir, snap); err != nil {
				sugar.Errorf("export seed %d: %v", res.Seed, err)
			}
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func export(dir string, snap *datastructure.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("%d.maze.bz2", snap.GetSeed())))
	if err != nil {
		return err
	}
	defer f.Close()
	return datastructure.WriteSnapshot(f, snap)
}
