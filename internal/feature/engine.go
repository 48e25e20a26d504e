package feature

import (
	"runtime"
	"sort"
	"sync"

	"StockCompass/internal/model"
)

const (
	// DefaultWindowShort and DefaultWindowLong are the rolling window sizes
	// in trading days.
	DefaultWindowShort = 5
	DefaultWindowLong  = 20

	// ForwardSteps is how far ahead the training label looks.
	ForwardSteps = 20
)

// Engine turns per-ticker price series into model-ready feature rows.
type Engine struct {
	WindowShort int
	WindowLong  int
	Workers     int
}

// NewEngine returns an Engine with the default windows and one worker per CPU.
func NewEngine() *Engine {
	return &Engine{
		WindowShort: DefaultWindowShort,
		WindowLong:  DefaultWindowLong,
		Workers:     runtime.NumCPU(),
	}
}

// Transform computes feature rows for every ticker in the universe.
// Tickers are independent, so the work is spread over a worker pool;
// output order is fixed by sorting tickers up front, never by completion
// order. A row makes it into the result only when price, both moving
// averages and volatility are all defined, so tickers with fewer than
// WindowLong observations contribute nothing.
func (e *Engine) Transform(universe model.Universe) []model.FeatureRow {
	tickers := make([]string, 0, len(universe))
	for t := range universe {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}

	perTicker := make([][]model.FeatureRow, len(tickers))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				perTicker[i] = e.transformSeries(tickers[i], universe[tickers[i]])
			}
		}()
	}
	for i := range tickers {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var rows []model.FeatureRow
	for _, part := range perTicker {
		rows = append(rows, part...)
	}
	return rows
}

// transformSeries computes the rolling statistics for a single ticker.
func (e *Engine) transformSeries(ticker string, series model.Series) []model.FeatureRow {
	n := len(series)
	prices := make([]model.NullFloat, n)
	volumes := make([]float64, n)
	for i, row := range series {
		prices[i] = row.DayPrice
		volumes[i] = row.Volume
	}

	// Daily returns feed the volatility window.
	ret1 := make([]model.NullFloat, n)
	for i := 1; i < n; i++ {
		ret1[i] = PctChange(prices[i], prices[i-1])
	}

	var rows []model.FeatureRow
	for i := 0; i < n; i++ {
		if !prices[i].Valid {
			continue
		}
		maShort := SMA(prices, i, e.WindowShort)
		maLong := SMA(prices, i, e.WindowLong)
		volatility := StdDev(ret1, i, e.WindowLong)
		if !maShort.Valid || !maLong.Valid || !volatility.Valid {
			continue
		}

		row := model.FeatureRow{
			Date:       series[i].Date,
			Ticker:     ticker,
			Name:       series[i].Name,
			Price:      prices[i].Float64,
			Ret1:       ret1[i],
			Ret5:       model.NullFloat{},
			Ret20:      model.NullFloat{},
			MAShort:    maShort.Float64,
			MALong:     maLong.Float64,
			Volatility: volatility.Float64,
		}
		if i >= e.WindowShort {
			row.Ret5 = PctChange(prices[i], prices[i-e.WindowShort])
		}
		if i >= e.WindowLong {
			row.Ret20 = PctChange(prices[i], prices[i-e.WindowLong])
		}
		if avg, err := Mean(volumes, i, e.WindowLong); err == nil {
			row.VolAvg = model.Float(avg)
		}
		if maLong.Float64 != 0 {
			row.Momentum = model.Float((prices[i].Float64 - maLong.Float64) / maLong.Float64)
		}
		if i+ForwardSteps < n {
			row.FutureRet20 = PctChange(prices[i+ForwardSteps], prices[i])
		}
		rows = append(rows, row)
	}
	return rows
}
