package model

import "time"

// FeatureColumns is the model input order. Training and inference must use
// the same order, so it lives here rather than in the feature engine.
var FeatureColumns = []string{
	"price", "ret1", "ret5", "ret20",
	"ma_short", "ma_long", "volatility", "vol_avg", "momentum",
}

// FeatureRow is the engineered feature vector for one (ticker, date).
// Price, MAShort, MALong and Volatility are guaranteed defined for every
// emitted row; the remaining statistics may be undefined.
type FeatureRow struct {
	Date        time.Time
	Ticker      string
	Name        string
	Price       float64
	Ret1        NullFloat
	Ret5        NullFloat
	Ret20       NullFloat
	MAShort     float64
	MALong      float64
	Volatility  float64
	VolAvg      NullFloat
	Momentum    NullFloat
	FutureRet20 NullFloat // training label; undefined for the last 20 rows
}

// Vector lays the row out in FeatureColumns order, substituting 0 for
// undefined values.
func (r FeatureRow) Vector() []float64 {
	return []float64{
		r.Price,
		r.Ret1.Or(0),
		r.Ret5.Or(0),
		r.Ret20.Or(0),
		r.MAShort,
		r.MALong,
		r.Volatility,
		r.VolAvg.Or(0),
		r.Momentum.Or(0),
	}
}
