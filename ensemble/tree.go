package ensemble

import (
	"math/rand/v2"
	"sort"
)

// Node is one vertex of a flattened regression tree. Leaves have Feature -1.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
}

// Tree is a binary regression tree stored as a node slice rooted at index 0.
type Tree struct {
	Nodes []Node
}

func (t *Tree) Predict(x []float64) float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Feature < 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	var walk func(i int) int
	walk = func(i int) int {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(0)
}

func (t *Tree) scale(f float64) {
	for i := range t.Nodes {
		if t.Nodes[i].Feature < 0 {
			t.Nodes[i].Value *= f
		}
	}
}

type treeParams struct {
	// MaxDepth of 0 grows until leaves are pure or too small to split.
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	// Lambda is the L2 penalty on leaf values. Zero gives plain
	// variance-reduction CART with mean leaves.
	Lambda float64
	// MaxFeatures of 0 considers every feature at every split.
	MaxFeatures int
}

type split struct {
	feature   int
	threshold float64
	gain      float64
}

type treeBuilder struct {
	x      [][]float64
	y      []float64
	params treeParams
	rng    *rand.Rand
	nodes  []Node
}

// buildTree fits a tree to y over the rows listed in idx. Rows may repeat,
// which is how bootstrap samples are weighted.
func buildTree(x [][]float64, y []float64, idx []int, p treeParams, rng *rand.Rand) *Tree {
	if p.MinSamplesSplit < 2 {
		p.MinSamplesSplit = 2
	}
	if p.MinSamplesLeaf < 1 {
		p.MinSamplesLeaf = 1
	}
	b := &treeBuilder{x: x, y: y, params: p, rng: rng}
	b.grow(idx, 0)
	return &Tree{Nodes: b.nodes}
}

func (b *treeBuilder) grow(idx []int, depth int) int {
	sum := 0.0
	pure := true
	for _, i := range idx {
		sum += b.y[i]
		if b.y[i] != b.y[idx[0]] {
			pure = false
		}
	}
	n := float64(len(idx))

	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: -1, Value: sum / (n + b.params.Lambda)})

	if pure || len(idx) < b.params.MinSamplesSplit {
		return id
	}
	if b.params.MaxDepth > 0 && depth >= b.params.MaxDepth {
		return id
	}

	s, ok := b.bestSplit(idx, sum)
	if !ok {
		return id
	}

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if b.x[i][s.feature] <= s.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[id].Feature = s.feature
	b.nodes[id].Threshold = s.threshold
	b.nodes[id].Left = l
	b.nodes[id].Right = r
	return id
}

func (b *treeBuilder) candidateFeatures() []int {
	d := len(b.x[0])
	features := make([]int, d)
	for i := range features {
		features[i] = i
	}
	k := b.params.MaxFeatures
	if k <= 0 || k >= d || b.rng == nil {
		return features
	}
	b.rng.Shuffle(d, func(i, j int) { features[i], features[j] = features[j], features[i] })
	features = features[:k]
	sort.Ints(features)
	return features
}

// bestSplit scans every candidate feature for the threshold maximising
// S_l²/(n_l+λ) + S_r²/(n_r+λ) - S²/(n+λ). Only strictly positive gains split.
func (b *treeBuilder) bestSplit(idx []int, sum float64) (split, bool) {
	lambda := b.params.Lambda
	minLeaf := b.params.MinSamplesLeaf
	n := len(idx)
	parent := sum * sum / (float64(n) + lambda)

	best := split{gain: 1e-12}
	found := false
	sorted := make([]int, n)

	for _, f := range b.candidateFeatures() {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x[sorted[i]][f] < b.x[sorted[j]][f]
		})

		left := 0.0
		for k := 0; k < n-1; k++ {
			left += b.y[sorted[k]]
			lo, hi := b.x[sorted[k]][f], b.x[sorted[k+1]][f]
			if lo == hi {
				continue
			}
			nl := k + 1
			nr := n - nl
			if nl < minLeaf || nr < minLeaf {
				continue
			}
			right := sum - left
			gain := left*left/(float64(nl)+lambda) + right*right/(float64(nr)+lambda) - parent
			if gain > best.gain {
				threshold := lo + (hi-lo)/2
				if threshold >= hi {
					threshold = lo
				}
				best = split{feature: f, threshold: threshold, gain: gain}
				found = true
			}
		}
	}
	return best, found
}
