// Package pipeline wires the full flow: CSV ingestion, realtime merge,
// feature engineering, prediction and recommendation scoring.
package pipeline

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"

	"StockCompass/internal/advisor"
	"StockCompass/internal/dataset"
	"StockCompass/internal/feature"
	"StockCompass/internal/forest"
	"StockCompass/internal/model"
	"StockCompass/internal/predictor"
	"StockCompass/internal/realtime"
)

const (
	// The recommendation candidate set: the top candidateSet predictions
	// out of the top rankedUniverse are scored.
	rankedUniverse = 200
	candidateSet   = 100

	holdoutFraction = 0.2
)

// TrainResult summarizes a completed training run.
type TrainResult struct {
	Rows      int
	Tickers   int
	MSE       float64
	ModelPath string
}

// Train fits a forest on the historical CSVs and writes the model artifact.
// A 20% holdout split is scored with MSE so the run is comparable over time.
func Train(csvPaths []string, modelPath string, opts forest.Options) (*TrainResult, error) {
	universe, err := dataset.LoadCSVs(csvPaths)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] loaded %d tickers from %d files", len(universe), len(csvPaths))

	rows := feature.NewEngine().Transform(universe)

	// Training keeps only rows with every required feature and the
	// forward-return label defined.
	var x [][]float64
	var y []float64
	tickers := map[string]struct{}{}
	for _, row := range rows {
		if !row.FutureRet20.Valid {
			continue
		}
		x = append(x, row.Vector())
		y = append(y, row.FutureRet20.Float64)
		tickers[row.Ticker] = struct{}{}
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("no trainable rows: every ticker is shorter than the long window plus the forward horizon")
	}
	log.Printf("[INFO] training on %d rows across %d tickers", len(x), len(tickers))

	trainX, trainY, testX, testY := split(x, y, holdoutFraction, opts.Seed)
	if opts.Workers == 0 {
		opts.Workers = runtime.NumCPU()
	}
	f, err := forest.Fit(trainX, trainY, model.FeatureColumns, opts)
	if err != nil {
		return nil, fmt.Errorf("fit model: %w", err)
	}

	mse := meanSquaredError(f.Predict(testX), testY)
	if err := f.Save(modelPath); err != nil {
		return nil, fmt.Errorf("save model: %w", err)
	}
	log.Printf("[INFO] model saved to %s (holdout MSE %.6f)", modelPath, mse)

	return &TrainResult{
		Rows:      len(x),
		Tickers:   len(tickers),
		MSE:       mse,
		ModelPath: modelPath,
	}, nil
}

// Request carries everything needed to produce recommendations.
type Request struct {
	ModelPath string
	CSVPaths  []string
	Profile   model.UserProfile
	TopK      int
	Snapshot  *model.RealtimeSnapshot
}

// Recommend runs the full prediction flow and returns the ranked top-K.
func Recommend(req Request) ([]model.Recommendation, error) {
	// Fail fast on a missing model before touching any data.
	f, err := forest.Load(req.ModelPath)
	if err != nil {
		return nil, err
	}

	universe, err := dataset.LoadCSVs(req.CSVPaths)
	if err != nil {
		return nil, err
	}
	universe = realtime.Merge(universe, req.Snapshot, realtime.Today())

	rows := feature.NewEngine().Transform(universe)
	predictions := predictor.Predict(f, rows)
	if len(predictions) > rankedUniverse {
		predictions = predictions[:rankedUniverse]
	}
	if len(predictions) > candidateSet {
		predictions = predictions[:candidateSet]
	}

	names := snapshotNames(req.Snapshot)
	recs := make([]model.Recommendation, 0, len(predictions))
	for _, row := range predictions {
		if name, ok := names[row.Ticker]; ok && name != "" {
			row.Name = name
		}
		recs = append(recs, advisor.Score(row, req.Profile))
	}
	return advisor.Rank(recs, req.TopK), nil
}

func snapshotNames(snap *model.RealtimeSnapshot) map[string]string {
	names := map[string]string{}
	if snap == nil {
		return names
	}
	for _, s := range snap.Stocks {
		names[s.Ticker] = s.Name
	}
	return names
}

// split shuffles deterministically and carves off the holdout set.
func split(x [][]float64, y []float64, fraction float64, seed int64) (trainX [][]float64, trainY []float64, testX [][]float64, testY []float64) {
	rng := rand.New(rand.NewSource(seed))
	order := rng.Perm(len(x))
	testN := int(float64(len(x)) * fraction)
	for pos, i := range order {
		if pos < testN {
			testX = append(testX, x[i])
			testY = append(testY, y[i])
		} else {
			trainX = append(trainX, x[i])
			trainY = append(trainY, y[i])
		}
	}
	return trainX, trainY, testX, testY
}

func meanSquaredError(pred, actual []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	sum := 0.0
	for i := range actual {
		d := pred[i] - actual[i]
		sum += d * d
	}
	return sum / float64(len(actual))
}
