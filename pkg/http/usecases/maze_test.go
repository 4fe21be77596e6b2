package usecases

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/engine"
	"github.com/lintang-b-s/Mazex/pkg/geo"
	"github.com/lintang-b-s/Mazex/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, factory EngineFactory) *MazeService {
	t.Helper()
	if factory == nil {
		factory = DefaultEngineFactory(zap.NewNop())
	}
	ms, err := NewMazeService(zap.NewNop(), engine.DefaultOptions(), factory, 8)
	require.NoError(t, err)
	return ms
}

func codeOf(t *testing.T, err error) error {
	t.Helper()
	var ierr *util.Error
	require.True(t, errors.As(err, &ierr), "expected util.Error, got %v", err)
	return ierr.Code()
}

func TestGenerateCachesByParams(t *testing.T) {
	ms := newTestService(t, nil)
	p := GenerateParams{Width: 8, Height: 6, Seed: 42}

	m1, err := ms.Generate(context.Background(), p)
	require.NoError(t, err)
	m2, err := ms.Generate(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, m1.ID, m2.ID)

	got, err := ms.Get(m1.ID)
	require.NoError(t, err)
	assert.Same(t, m1, got)
	assert.Equal(t, 8, got.Snapshot.GetWidth())
	assert.Equal(t, 6, got.Snapshot.GetHeight())
	assert.Equal(t, string(engine.DefaultOptions().Frontier), got.Options.Frontier)

	p.Seed = 43
	m3, err := ms.Generate(context.Background(), p)
	require.NoError(t, err)
	assert.NotEqual(t, m1.ID, m3.ID)
}

func TestGenerateWithProgressReportsPhases(t *testing.T) {
	ms := newTestService(t, nil)

	var phases []engine.Phase
	m, err := ms.GenerateWithProgress(context.Background(), GenerateParams{Width: 5, Height: 5, Seed: 1, Frontier: "stack"},
		func(ev engine.PhaseEvent) { phases = append(phases, ev.Phase) })
	require.NoError(t, err)
	require.NotEmpty(t, phases)
	assert.Equal(t, engine.PhaseInit, phases[0])
	assert.Equal(t, engine.PhaseDone, phases[len(phases)-1])
	assert.Equal(t, "stack", m.Options.Frontier)
}

func TestGenerateErrors(t *testing.T) {
	ms := newTestService(t, nil)

	_, err := ms.Generate(context.Background(), GenerateParams{Width: 0, Height: 5})
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, codeOf(t, err))

	_, err = ms.Generate(context.Background(), GenerateParams{Width: 5, Height: 5, Frontier: "heap"})
	require.Error(t, err)
	assert.Equal(t, util.ErrBadParamInput, codeOf(t, err))
}

type failingEngine struct {
	opts engine.Options
	err  error
}

func (f failingEngine) GenerateWithListener(ctx context.Context, seed int64, listener engine.PhaseListener) (*datastructure.Snapshot, error) {
	return nil, f.err
}

func (f failingEngine) GetOptions() engine.Options { return f.opts }

func (f failingEngine) World() geo.World { return geo.World{} }

func TestGenerateFailureCodes(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		code error
	}{
		{name: "generation failed", err: engine.ErrGenerationFailed, code: util.ErrUnprocessable},
		{name: "cancelled", err: context.Canceled, code: util.ErrInternalServerError},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			ms := newTestService(t, func(opts engine.Options) (MazeEngine, error) {
				return failingEngine{opts: opts, err: tt.err}, nil
			})
			_, err := ms.Generate(context.Background(), GenerateParams{Width: 3, Height: 3})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.code, codeOf(t, err))
		})
	}
}

func TestGetUnknown(t *testing.T) {
	ms := newTestService(t, nil)
	_, err := ms.Get("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMazeNotFound)
	assert.Equal(t, util.ErrNotFound, codeOf(t, err))
}

func TestSolveLevels(t *testing.T) {
	ms := newTestService(t, nil)
	m, err := ms.Generate(context.Background(), GenerateParams{Width: 10, Height: 7, Seed: 9})
	require.NoError(t, err)

	start := m.Snapshot.CellOf(m.Snapshot.GetStart())
	end := m.Snapshot.CellOf(m.Snapshot.GetEnd())

	cellPath, junctions, err := ms.Solve(m.ID, start, end, SOLVE_LEVEL_CELL)
	require.NoError(t, err)
	assert.Nil(t, junctions)
	assert.Equal(t, m.Snapshot.GetStart(), cellPath.GetStart())
	assert.Equal(t, m.Snapshot.GetEnd(), cellPath.GetEnd())
	assert.Equal(t, m.Snapshot.GetPath().Len(), cellPath.Len())

	jPath, junctions, err := ms.Solve(m.ID, start, end, SOLVE_LEVEL_JUNCTION)
	require.NoError(t, err)
	require.NotEmpty(t, junctions)
	assert.Equal(t, m.Snapshot.GetStart(), junctions[0])
	assert.Equal(t, m.Snapshot.GetEnd(), junctions[len(junctions)-1])
	assert.Equal(t, m.Snapshot.GetStart(), jPath.GetStart())
	assert.Equal(t, m.Snapshot.GetEnd(), jPath.GetEnd())
	// fewest junctions is not always fewest cells
	assert.GreaterOrEqual(t, jPath.Len(), cellPath.Len())
}

func TestSolveErrors(t *testing.T) {
	ms := newTestService(t, nil)
	m, err := ms.Generate(context.Background(), GenerateParams{Width: 4, Height: 4, Seed: 3})
	require.NoError(t, err)

	_, _, err = ms.Solve(m.ID, datastructure.NewCell(0, 0), datastructure.NewCell(4, 0), SOLVE_LEVEL_CELL)
	assert.Equal(t, util.ErrBadParamInput, codeOf(t, err))

	_, _, err = ms.Solve(m.ID, datastructure.NewCell(0, 0), datastructure.NewCell(1, 1), "teleport")
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, _, err = ms.Solve("missing", datastructure.NewCell(0, 0), datastructure.NewCell(1, 1), SOLVE_LEVEL_CELL)
	assert.Equal(t, util.ErrNotFound, codeOf(t, err))
}

func TestExportReadsBack(t *testing.T) {
	ms := newTestService(t, nil)
	m, err := ms.Generate(context.Background(), GenerateParams{Width: 6, Height: 5, Seed: 11})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ms.Export(m.ID, &buf))

	snap, err := datastructure.ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.True(t, snap.GetGrid().Equal(m.Snapshot.GetGrid()))
	assert.Equal(t, m.Snapshot.GetSeed(), snap.GetSeed())
	assert.Equal(t, m.Snapshot.GetPath().GetCells(), snap.GetPath().GetCells())
}
