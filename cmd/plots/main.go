package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ridedemand/charts"
	"ridedemand/config"
	"ridedemand/dataset"
	"ridedemand/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewConsoleLogger(os.Stderr, slog.LevelInfo)

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.LogError(logger, "failed to load config", err)
		os.Exit(1)
	}

	gen := charts.NewGenerator(dataset.NewSource(cfg.Data, logger), cfg.Charts.Dir, logger)
	files, err := gen.Run(ctx)
	if err != nil {
		logging.LogError(logger, "chart generation failed", err, slog.String("dir", cfg.Charts.Dir))
		os.Exit(1)
	}
	for _, f := range files {
		logger.Info("chart written", slog.String("path", f))
	}
}
