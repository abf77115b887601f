package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ridedemand/dataset"
	"ridedemand/ensemble"
	"ridedemand/logging"
	"ridedemand/models"
)

// Trainer turns a trip source into a saved model artifact.
type Trainer struct {
	Source    dataset.Source
	ModelPath string
	Params    ensemble.Params
	Logger    *slog.Logger
}

type TrainingReport struct {
	Trips     int
	Buckets   int
	ModelPath string
	Duration  time.Duration
}

func NewTrainer(source dataset.Source, modelPath string, logger *slog.Logger) *Trainer {
	return &Trainer{
		Source:    source,
		ModelPath: modelPath,
		Params:    ensemble.DefaultParams(),
		Logger:    logger,
	}
}

// Run trains and writes the artifact. Nothing is written unless every step
// before the save succeeds.
func (t *Trainer) Run(ctx context.Context) (*TrainingReport, error) {
	start := time.Now()

	trips, err := t.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trips: %w", err)
	}

	samples := dataset.Aggregate(trips)
	x, y := dataset.TrainingTable(samples)
	logging.LogOperation(t.Logger, "training table prepared",
		slog.Int("trips", len(trips)),
		slog.Int("buckets", len(samples)),
		slog.Any("features", models.FeatureNames))

	fitStart := time.Now()
	model, err := ensemble.Train(ctx, x, y, t.Params)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	logging.LogOperation(t.Logger, "ensemble fitted",
		slog.Int("forest_trees", len(model.Forest.Trees)),
		slog.Int("boosting_rounds", len(model.Boosting.Trees)),
		slog.Int("xgb_rounds", len(model.XGB.Trees)),
		slog.Duration("duration", time.Since(fitStart)))

	if err := ensemble.Save(t.ModelPath, model, models.FeatureNames); err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}

	return &TrainingReport{
		Trips:     len(trips),
		Buckets:   len(samples),
		ModelPath: t.ModelPath,
		Duration:  time.Since(start),
	}, nil
}
