package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	da "github.com/lintang-b-s/Mazex/pkg/datastructure"
	"github.com/lintang-b-s/Mazex/pkg/generator"
	"github.com/spf13/viper"
)

const (
	DEFAULT_WIDTH             = 20
	DEFAULT_HEIGHT            = 20
	DEFAULT_PRUNE_RETRIES     = 10
	DEFAULT_MAX_REGENERATIONS = 5
	DEFAULT_CELL_SIZE         = 1.0
	DEFAULT_WALL_THICKNESS    = 0.1
	DEFAULT_PICKUP_RADIUS     = 0.25
	MAX_DIMENSION             = da.MAX_GRID_DIMENSION
)

type Options struct {
	Width    int    `validate:"required,min=1,max=1024"`
	Height   int    `validate:"required,min=1,max=1024"`
	Frontier string `validate:"oneof=stack queue"`

	// PruneBudget is the number of extra walls removed on the first prune of a grid and the
	// increment added on every retry. 0 means 3*Width.
	PruneBudget      int `validate:"min=0"`
	PruneRetries     int `validate:"min=0,max=100"`
	MaxRegenerations int `validate:"min=0,max=100"`

	FoldTurns bool

	CellSize      float64 `validate:"gt=0"`
	WallThickness float64 `validate:"gte=0"`
	PickupRadius  float64 `validate:"gte=0"`
}

func DefaultOptions() Options {
	return Options{
		Width:            DEFAULT_WIDTH,
		Height:           DEFAULT_HEIGHT,
		Frontier:         string(generator.QueueFrontier),
		PruneRetries:     DEFAULT_PRUNE_RETRIES,
		MaxRegenerations: DEFAULT_MAX_REGENERATIONS,
		CellSize:         DEFAULT_CELL_SIZE,
		WallThickness:    DEFAULT_WALL_THICKNESS,
		PickupRadius:     DEFAULT_PICKUP_RADIUS,
	}
}

// OptionsFromViper reads the MAZE_* keys, falling back to DefaultOptions.
func OptionsFromViper() Options {
	def := DefaultOptions()
	viper.SetDefault("MAZE_WIDTH", def.Width)
	viper.SetDefault("MAZE_HEIGHT", def.Height)
	viper.SetDefault("MAZE_FRONTIER", def.Frontier)
	viper.SetDefault("MAZE_PRUNE_BUDGET", def.PruneBudget)
	viper.SetDefault("MAZE_PRUNE_RETRIES", def.PruneRetries)
	viper.SetDefault("MAZE_MAX_REGENERATIONS", def.MaxRegenerations)
	viper.SetDefault("MAZE_FOLD_TURNS", def.FoldTurns)
	viper.SetDefault("MAZE_CELL_SIZE", def.CellSize)
	viper.SetDefault("MAZE_WALL_THICKNESS", def.WallThickness)
	viper.SetDefault("MAZE_PICKUP_RADIUS", def.PickupRadius)

	return Options{
		Width:            viper.GetInt("MAZE_WIDTH"),
		Height:           viper.GetInt("MAZE_HEIGHT"),
		Frontier:         viper.GetString("MAZE_FRONTIER"),
		PruneBudget:      viper.GetInt("MAZE_PRUNE_BUDGET"),
		PruneRetries:     viper.GetInt("MAZE_PRUNE_RETRIES"),
		MaxRegenerations: viper.GetInt("MAZE_MAX_REGENERATIONS"),
		FoldTurns:        viper.GetBool("MAZE_FOLD_TURNS"),
		CellSize:         viper.GetFloat64("MAZE_CELL_SIZE"),
		WallThickness:    viper.GetFloat64("MAZE_WALL_THICKNESS"),
		PickupRadius:     viper.GetFloat64("MAZE_PICKUP_RADIUS"),
	}
}

func (o Options) WithSize(width, height int) Options {
	o.Width = width
	o.Height = height
	return o
}

func (o Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("invalid maze options: %w", err)
	}
	return nil
}

func (o Options) basePruneBudget() int {
	if o.PruneBudget > 0 {
		return o.PruneBudget
	}
	return 3 * o.Width
}
