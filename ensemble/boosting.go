package ensemble

import (
	"context"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type BoostParams struct {
	Rounds       int
	LearningRate float64
	MaxDepth     int
	// Lambda is the L2 penalty on leaf weights.
	Lambda float64
	// Subsample is the fraction of rows drawn without replacement per
	// round. 1 uses every row and consumes no randomness.
	Subsample float64
	Seed      uint64
}

// Booster is a stagewise additive model of shallow trees fitted to the
// residuals of squared-error loss, starting from the target mean.
//
// With squared error every hessian is 1, so the Newton leaf weight
// -G/(H+λ) is the residual sum over (count+λ). Lambda 0 gives classic
// gradient boosting; a positive Lambda gives the regularised second-order
// variant.
type Booster struct {
	Params BoostParams
	Base   float64
	Trees  []*Tree
}

func NewBooster(p BoostParams) *Booster {
	return &Booster{Params: p}
}

func (b *Booster) Fit(ctx context.Context, x [][]float64, y []float64) error {
	if err := checkTrainingSet(x, y); err != nil {
		return err
	}

	n := len(y)
	b.Base = stat.Mean(y, nil)
	pred := make([]float64, n)
	for i := range pred {
		pred[i] = b.Base
	}
	resid := make([]float64, n)

	var rng *rand.Rand
	sampleSize := n
	if b.Params.Subsample > 0 && b.Params.Subsample < 1 {
		rng = rand.New(rand.NewPCG(b.Params.Seed, 0))
		sampleSize = max(1, int(b.Params.Subsample*float64(n)))
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	tp := treeParams{MaxDepth: b.Params.MaxDepth, Lambda: b.Params.Lambda}
	trees := make([]*Tree, 0, b.Params.Rounds)
	for round := 0; round < b.Params.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		floats.SubTo(resid, y, pred)

		idx := all
		if rng != nil {
			perm := rng.Perm(n)
			idx = perm[:sampleSize]
		}

		t := buildTree(x, resid, idx, tp, nil)
		t.scale(b.Params.LearningRate)
		for i, row := range x {
			pred[i] += t.Predict(row)
		}
		trees = append(trees, t)
	}

	b.Trees = trees
	return nil
}

func (b *Booster) Predict(x []float64) float64 {
	out := b.Base
	for _, t := range b.Trees {
		out += t.Predict(x)
	}
	return out
}

func (b *Booster) fitted() bool {
	return len(b.Trees) > 0
}
