package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ridedemand/config"
	"ridedemand/dataset"
	"ridedemand/logging"
	"ridedemand/services"
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

	trainer := services.NewTrainer(dataset.NewSource(cfg.Data, logger), cfg.Model.Path, logger)
	report, err := trainer.Run(ctx)
	if err != nil {
		logging.LogError(logger, "training failed", err,
			slog.String("data_dir", cfg.Data.Dir),
			slog.String("source", cfg.Data.Source))
		os.Exit(1)
	}

	logger.Info("model saved",
		slog.String("path", report.ModelPath),
		slog.Int("trips", report.Trips),
		slog.Int("buckets", report.Buckets),
		slog.Duration("duration", report.Duration))
}
