package usecases

import (
	"context"

	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/engine"
	"github.com/lintang-b-s/Mazex/pkg/geo"
)

type MazeEngine interface {
	GenerateWithListener(ctx context.Context, seed int64, listener engine.PhaseListener) (*datastructure.Snapshot, error)
	GetOptions() engine.Options
	World() geo.World
}

// EngineFactory builds an engine for one set of options.
type EngineFactory func(opts engine.Options) (MazeEngine, error)
