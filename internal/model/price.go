package model

import "time"

// NullFloat is a float64 that may be undefined, mirroring sql.NullFloat64.
// Rolling statistics are undefined until their window fills; modeling that
// explicitly keeps NaN out of comparisons and sorts.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Float wraps a defined value.
func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// Or returns the value, or fallback when undefined.
func (n NullFloat) Or(fallback float64) float64 {
	if n.Valid {
		return n.Float64
	}
	return fallback
}

// PriceRow is a single daily observation for one ticker.
type PriceRow struct {
	Date      time.Time
	Ticker    string
	Name      string
	DayPrice  NullFloat
	PrevPrice NullFloat
	Volume    float64 // missing volume is treated as 0
}

// Series is one ticker's rows in non-decreasing date order.
type Series []PriceRow

// Universe maps ticker to its chronologically sorted series.
type Universe map[string]Series

// RealtimeStock is a single live quote from the market snapshot.
type RealtimeStock struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
	Volume float64 `json:"volume"`
}

// RealtimeSnapshot is the live market payload merged over historical data.
type RealtimeSnapshot struct {
	Stocks []RealtimeStock `json:"stocks"`
}
