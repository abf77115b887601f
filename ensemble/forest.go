package ensemble

import (
	"context"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

type ForestParams struct {
	Trees int
	// MaxDepth of 0 grows every tree fully.
	MaxDepth    int
	MaxFeatures int
	Seed        uint64
}

// RandomForest averages fully grown trees fitted on bootstrap resamples.
type RandomForest struct {
	Params ForestParams
	Trees  []*Tree
}

func NewRandomForest(p ForestParams) *RandomForest {
	return &RandomForest{Params: p}
}

func (f *RandomForest) Fit(ctx context.Context, x [][]float64, y []float64) error {
	if err := checkTrainingSet(x, y); err != nil {
		return err
	}

	// Seeds are drawn up front so the fitted forest does not depend on
	// which goroutine builds which tree.
	master := rand.New(rand.NewPCG(f.Params.Seed, 0))
	seeds := make([]uint64, f.Params.Trees)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	tp := treeParams{MaxDepth: f.Params.MaxDepth, MaxFeatures: f.Params.MaxFeatures}
	trees := make([]*Tree, f.Params.Trees)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(seeds[i], uint64(i)))
			idx := make([]int, len(y))
			for j := range idx {
				idx[j] = rng.IntN(len(y))
			}
			trees[i] = buildTree(x, y, idx, tp, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f.Trees = trees
	return nil
}

func (f *RandomForest) Predict(x []float64) float64 {
	preds := make([]float64, len(f.Trees))
	for i, t := range f.Trees {
		preds[i] = t.Predict(x)
	}
	return stat.Mean(preds, nil)
}

func (f *RandomForest) fitted() bool {
	return len(f.Trees) > 0
}
