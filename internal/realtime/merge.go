// Package realtime reconciles same-day live quotes with historical series
// and fetches the live market snapshot.
package realtime

import (
	"encoding/json"
	"sort"
	"time"

	"StockCompass/internal/model"
)

// Today returns the process-local calendar day used to stamp live rows.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Decode parses a snapshot payload. A payload without a usable `stocks`
// list decodes to nil, which callers treat as "no realtime data".
func Decode(data []byte) *model.RealtimeSnapshot {
	var snap model.RealtimeSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	if len(snap.Stocks) == 0 {
		return nil
	}
	return &snap
}

// Merge overlays the snapshot onto the historical universe: for each live
// ticker, rows dated today are dropped and a synthesized row takes their
// place (last write wins for the current date). Rows before today and
// tickers absent from the snapshot pass through untouched. A nil snapshot
// is a no-op.
func Merge(universe model.Universe, snap *model.RealtimeSnapshot, today time.Time) model.Universe {
	if snap == nil || len(snap.Stocks) == 0 {
		return universe
	}
	merged := make(model.Universe, len(universe))
	for ticker, series := range universe {
		merged[ticker] = series
	}
	for _, stock := range snap.Stocks {
		if stock.Ticker == "" {
			continue
		}
		series := merged[stock.Ticker]
		kept := make(model.Series, 0, len(series)+1)
		for _, row := range series {
			if !sameDay(row.Date, today) {
				kept = append(kept, row)
			}
		}
		kept = append(kept, model.PriceRow{
			Date:      today,
			Ticker:    stock.Ticker,
			Name:      stock.Name,
			DayPrice:  model.Float(stock.Price),
			PrevPrice: model.Float(stock.Price - stock.Change),
			Volume:    stock.Volume,
		})
		merged[stock.Ticker] = kept
	}
	return merged
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// TopByVolume returns the count most actively traded stocks in the snapshot.
func TopByVolume(snap *model.RealtimeSnapshot, count int) []model.RealtimeStock {
	if snap == nil || count <= 0 {
		return nil
	}
	stocks := append([]model.RealtimeStock(nil), snap.Stocks...)
	sort.SliceStable(stocks, func(i, j int) bool {
		return stocks[i].Volume > stocks[j].Volume
	})
	if len(stocks) > count {
		stocks = stocks[:count]
	}
	return stocks
}
