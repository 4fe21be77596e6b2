package controllers

import (
	"context"
	"io"

	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/engine"
	"github.com/lintang-b-s/Mazex/pkg/http/usecases"
)

type MazeService interface {
	Generate(ctx context.Context, p usecases.GenerateParams) (*usecases.Maze, error)
	GenerateWithProgress(ctx context.Context, p usecases.GenerateParams, listener engine.PhaseListener) (*usecases.Maze, error)
	Get(id string) (*usecases.Maze, error)
	Solve(id string, from, to datastructure.Cell, level string) (*datastructure.Path, []datastructure.Index, error)
	Export(id string, w io.Writer) error
	GetDefaults() engine.Options
}
