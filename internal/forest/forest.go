// Package forest implements a random forest regressor: bootstrap-sampled
// variance-reduction trees averaged at prediction time. Deterministic for
// a fixed seed regardless of how many workers fit the trees.
package forest

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
)

// Options control forest training.
type Options struct {
	NumTrees    int   `json:"num_trees"`
	MaxDepth    int   `json:"max_depth"`
	MinLeaf     int   `json:"min_leaf"`
	MaxFeatures int   `json:"max_features"` // 0 means all features
	Seed        int64 `json:"seed"`
	Workers     int   `json:"-"`
}

// DefaultOptions mirror the parameters the model was originally tuned with.
func DefaultOptions() Options {
	return Options{
		NumTrees:    200,
		MaxDepth:    12,
		MinLeaf:     3,
		MaxFeatures: 3,
		Seed:        42,
	}
}

// Forest is a trained random forest regression model.
type Forest struct {
	Opts    Options     `json:"options"`
	Columns []string    `json:"columns"`
	Trees   []*treeNode `json:"trees"`
}

// Fit trains the forest on x (rows of feature vectors) and y (targets).
// Each tree fits a bootstrap sample drawn from its own seeded source, so
// results do not depend on worker scheduling.
func Fit(x [][]float64, y []float64, columns []string, opts Options) (*Forest, error) {
	if len(x) == 0 {
		return nil, errors.New("no training rows")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("feature rows (%d) and targets (%d) differ", len(x), len(y))
	}
	if opts.NumTrees <= 0 {
		return nil, errors.New("num_trees must be positive")
	}

	f := &Forest{
		Opts:    opts,
		Columns: append([]string(nil), columns...),
		Trees:   make([]*treeNode, opts.NumTrees),
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				rng := rand.New(rand.NewSource(opts.Seed + int64(t)))
				samples := bootstrap(len(x), rng)
				f.Trees[t] = growTree(x, y, samples, 0, opts.MaxDepth, opts.MinLeaf, opts.MaxFeatures, rng)
			}
		}()
	}
	for t := 0; t < opts.NumTrees; t++ {
		jobs <- t
	}
	close(jobs)
	wg.Wait()
	return f, nil
}

func bootstrap(n int, rng *rand.Rand) []int {
	samples := make([]int, n)
	for i := range samples {
		samples[i] = rng.Intn(n)
	}
	return samples
}

// Predict returns the forest's prediction for every row of x.
func (f *Forest) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		sum := 0.0
		for _, t := range f.Trees {
			sum += t.predict(row)
		}
		out[i] = sum / float64(len(f.Trees))
	}
	return out
}

// Save writes the model artifact as JSON.
func (f *Forest) Save(path string) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a model artifact. A missing file is reported as a distinct
// error so callers can fail fast before touching any data.
func Load(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("model not found: %s", path)
		}
		return nil, fmt.Errorf("read model: %w", err)
	}
	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if len(f.Trees) == 0 {
		return nil, errors.New("model file contains no trees")
	}
	return &f, nil
}
