// Package ensemble fits and persists the trip-volume regressor: a random
// forest, a gradient-boosted model and a regularised boosted model whose
// predictions are averaged with equal weight.
package ensemble

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyTrainingSet = errors.New("empty training set")
	ErrNotFitted        = errors.New("model is not fitted")
	ErrFeatureMismatch  = errors.New("feature vector does not match model")
)

// DefaultSeed seeds the randomised members.
const DefaultSeed = 42

// Regressor is one member of the ensemble.
type Regressor interface {
	Fit(ctx context.Context, x [][]float64, y []float64) error
	Predict(x []float64) float64
}

type Params struct {
	Forest   ForestParams
	Boosting BoostParams
	XGB      BoostParams
}

// DefaultParams mirrors the stock hyperparameters of the three members.
func DefaultParams() Params {
	return Params{
		Forest: ForestParams{
			Trees: 100,
			Seed:  DefaultSeed,
		},
		Boosting: BoostParams{
			Rounds:       100,
			LearningRate: 0.1,
			MaxDepth:     3,
			Subsample:    1,
			Seed:         DefaultSeed,
		},
		XGB: BoostParams{
			Rounds:       100,
			LearningRate: 0.3,
			MaxDepth:     6,
			Lambda:       1,
			Subsample:    1,
			Seed:         DefaultSeed,
		},
	}
}

// Ensemble owns its three members and predicts their unweighted mean.
type Ensemble struct {
	NumFeatures int
	Forest      *RandomForest
	Boosting    *Booster
	XGB         *Booster
}

func New(p Params) *Ensemble {
	return &Ensemble{
		Forest:   NewRandomForest(p.Forest),
		Boosting: NewBooster(p.Boosting),
		XGB:      NewBooster(p.XGB),
	}
}

func (e *Ensemble) members() []Regressor {
	return []Regressor{e.Forest, e.Boosting, e.XGB}
}

// Fit trains the members independently on the full table.
func (e *Ensemble) Fit(ctx context.Context, x [][]float64, y []float64) error {
	if err := checkTrainingSet(x, y); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, m := range e.members() {
		g.Go(func() error {
			return m.Fit(ctx, x, y)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fit ensemble: %w", err)
	}

	e.NumFeatures = len(x[0])
	return nil
}

func (e *Ensemble) Fitted() bool {
	return e != nil && e.NumFeatures > 0 &&
		e.Forest != nil && e.Forest.fitted() &&
		e.Boosting != nil && e.Boosting.fitted() &&
		e.XGB != nil && e.XGB.fitted()
}

// Predict returns the mean of the members' predictions for one feature vector.
func (e *Ensemble) Predict(x []float64) (float64, error) {
	if !e.Fitted() {
		return 0, ErrNotFitted
	}
	if len(x) != e.NumFeatures {
		return 0, fmt.Errorf("%w: got %d features, want %d", ErrFeatureMismatch, len(x), e.NumFeatures)
	}

	members := e.members()
	preds := make([]float64, len(members))
	for i, m := range members {
		preds[i] = m.Predict(x)
	}
	out := stat.Mean(preds, nil)
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, fmt.Errorf("non-finite prediction %v", out)
	}
	return out, nil
}

// Train builds an ensemble with p and fits it.
func Train(ctx context.Context, x [][]float64, y []float64, p Params) (*Ensemble, error) {
	e := New(p)
	if err := e.Fit(ctx, x, y); err != nil {
		return nil, err
	}
	return e, nil
}

func checkTrainingSet(x [][]float64, y []float64) error {
	if len(x) == 0 || len(y) == 0 {
		return ErrEmptyTrainingSet
	}
	if len(x) != len(y) {
		return fmt.Errorf("training set has %d rows but %d targets", len(x), len(y))
	}
	width := len(x[0])
	if width == 0 {
		return fmt.Errorf("training rows have no features")
	}
	for i, row := range x {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrFeatureMismatch, i, len(row), width)
		}
	}
	return nil
}
