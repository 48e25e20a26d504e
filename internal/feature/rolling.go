package feature

import (
	"errors"
	"math"

	"StockCompass/internal/model"
)

// SMA computes the simple moving average of the trailing `period` values
// ending at index end (inclusive). Undefined when the window is not full
// or any value in it is undefined.
func SMA(values []model.NullFloat, end, period int) model.NullFloat {
	start := end - period + 1
	if period <= 0 || start < 0 || end >= len(values) {
		return model.NullFloat{}
	}
	sum := 0.0
	for i := start; i <= end; i++ {
		if !values[i].Valid {
			return model.NullFloat{}
		}
		sum += values[i].Float64
	}
	return model.Float(sum / float64(period))
}

// StdDev computes the sample standard deviation of the trailing `period`
// values ending at index end (inclusive). Undefined under the same
// conditions as SMA; a one-element window has no sample deviation.
func StdDev(values []model.NullFloat, end, period int) model.NullFloat {
	if period < 2 {
		return model.NullFloat{}
	}
	mean := SMA(values, end, period)
	if !mean.Valid {
		return model.NullFloat{}
	}
	sum := 0.0
	for i := end - period + 1; i <= end; i++ {
		d := values[i].Float64 - mean.Float64
		sum += d * d
	}
	return model.Float(math.Sqrt(sum / float64(period-1)))
}

// PctChange returns cur/prev - 1, undefined when either side is undefined
// or prev is zero (division by zero must not leak downstream as Inf).
func PctChange(cur, prev model.NullFloat) model.NullFloat {
	if !cur.Valid || !prev.Valid || prev.Float64 == 0 {
		return model.NullFloat{}
	}
	return model.Float(cur.Float64/prev.Float64 - 1)
}

// Mean computes the simple average of plain float values over the trailing
// window. Errors mirror the SMA contract for callers that need a reason.
func Mean(values []float64, end, period int) (float64, error) {
	start := end - period + 1
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if start < 0 || end >= len(values) {
		return 0, errors.New("not enough data for mean calculation")
	}
	sum := 0.0
	for i := start; i <= end; i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}
