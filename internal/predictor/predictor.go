// Package predictor applies a trained regressor to engineered features and
// reduces the output to one ranked prediction per ticker.
package predictor

import (
	"sort"

	"StockCompass/internal/model"
)

// Regressor is the black-box model contract. Anything that maps feature
// vectors to predicted 20-day returns satisfies it.
type Regressor interface {
	Predict(x [][]float64) []float64
}

// Predict runs the regressor over every feature row, keeps the prediction
// aligned to each ticker's most recent date, and ranks the result by
// predicted return descending. Undefined feature values are substituted
// with 0 at inference time rather than dropping the row.
func Predict(m Regressor, rows []model.FeatureRow) []model.PredictionRow {
	if len(rows) == 0 {
		return nil
	}
	x := make([][]float64, len(rows))
	for i, row := range rows {
		x[i] = row.Vector()
	}
	preds := m.Predict(x)

	// Latest row per ticker; on equal dates the later row wins.
	latest := map[string]model.PredictionRow{}
	for i, row := range rows {
		cur, seen := latest[row.Ticker]
		if seen && row.Date.Before(cur.Date) {
			continue
		}
		latest[row.Ticker] = model.PredictionRow{
			Ticker:       row.Ticker,
			Name:         row.Name,
			Date:         row.Date,
			Price:        row.Price,
			Volatility:   row.Volatility,
			VolAvg:       row.VolAvg,
			Momentum:     row.Momentum,
			PredReturn20: preds[i],
		}
	}

	tickers := make([]string, 0, len(latest))
	for t := range latest {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	out := make([]model.PredictionRow, 0, len(latest))
	for _, t := range tickers {
		out = append(out, latest[t])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PredReturn20 > out[j].PredReturn20
	})
	return out
}
