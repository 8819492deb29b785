package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"campuswatt/internal/app"
	"campuswatt/internal/config"
	"campuswatt/libs/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	application := app.New(cfg, logger)
	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrNoData) {
			logger.Warn("exiting: no data to process")
			return
		}
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Fatal("pipeline stopped with error", zap.Error(err))
	}
}
