package main

import (
	"context"
	"errors"
	"flag"

	"github.com/lintang-b-s/Mazex/pkg/engine"
	"github.com/lintang-b-s/Mazex/pkg/http"
	"github.com/lintang-b-s/Mazex/pkg/http/usecases"
	"github.com/lintang-b-s/Mazex/pkg/logger"
	"github.com/lintang-b-s/Mazex/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", false, "enable per client rate limiting on the REST API")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	defaults := engine.OptionsFromViper()
	if err := defaults.Validate(); err != nil {
		logger.Fatal("invalid maze options", zap.Error(err))
	}

	viper.SetDefault("CACHE_SIZE", 256)
	mazeService, err := usecases.NewMazeService(logger, defaults,
		usecases.DefaultEngineFactory(logger), viper.GetInt("CACHE_SIZE"))
	if err != nil {
		logger.Fatal("create maze service", zap.Error(err))
	}

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, *useRateLimit, mazeService); err != nil {
		logger.Fatal("start server", zap.Error(err))
	}

	signal := http.GracefulShutdown()

	logger.Info("Mazex server stopping", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped with error", zap.Error(err))
	}
	logger.Info("Mazex server stopped")
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
