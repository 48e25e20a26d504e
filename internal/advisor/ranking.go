package advisor

import (
	"sort"
	"strconv"
	"strings"

	"StockCompass/internal/model"
)

// Rank orders recommendations for presentation and truncates to topK.
// Order: confidence descending, then Low-risk entries before others, then
// the numeric lower bound of the potential-return bucket descending.
// Only "+"-prefixed buckets contribute a lower bound; loss buckets count
// as 0 in the tie-break, not their true negative magnitude. That asymmetry
// is long-standing observable behavior and is kept on purpose.
func Rank(recs []model.Recommendation, topK int) []model.Recommendation {
	ranked := append([]model.Recommendation(nil), recs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		aLow, bLow := a.RiskLevel == model.RiskLow, b.RiskLevel == model.RiskLow
		if aLow != bLow {
			return aLow
		}
		return bucketLowerBound(a.PotentialReturn) > bucketLowerBound(b.PotentialReturn)
	})
	if topK >= 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// bucketLowerBound extracts the leading number of a "+8-15%" style label.
func bucketLowerBound(bucket string) float64 {
	if !strings.HasPrefix(bucket, "+") {
		return 0
	}
	s := strings.Trim(bucket, "+%")
	if i := strings.Index(s, "-"); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
