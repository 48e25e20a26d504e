// Package advisor converts ranked return predictions into explainable
// buy/sell/hold recommendations and orders the final list.
package advisor

import (
	"fmt"
	"math"
	"strings"

	"StockCompass/internal/model"
)

const (
	buyThreshold  = 0.08  // predicted return at or above -> BUY
	sellThreshold = -0.03 // predicted return at or below -> SELL

	lowVolMax    = 0.01 // volatility bands for risk bucketing
	mediumVolMax = 0.03

	minConfidence = 10
	maxConfidence = 95
)

// RiskLevel buckets a stock by the volatility of its daily returns.
func RiskLevel(volatility float64) model.RiskLevel {
	switch {
	case volatility <= lowVolMax:
		return model.RiskLow
	case volatility <= mediumVolMax:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

// ActionFor maps a predicted 20-day return to a trade action. The BUY
// boundary is inclusive at exactly buyThreshold.
func ActionFor(predReturn float64) model.Action {
	switch {
	case predReturn >= buyThreshold:
		return model.ActionBuy
	case predReturn <= sellThreshold:
		return model.ActionSell
	default:
		return model.ActionHold
	}
}

// Score maps one prediction row plus the user profile to a recommendation.
// The profile's diversification score is part of the contract but is not
// consulted yet; it is reserved for portfolio-level balancing.
func Score(row model.PredictionRow, profile model.UserProfile) model.Recommendation {
	pred := row.PredReturn20
	vol := row.Volatility

	risk := RiskLevel(vol)
	action := ActionFor(pred)

	// Base confidence: scaled prediction magnitude, reduced by volatility.
	predConfidence := math.Min(maxConfidence, math.Abs(pred)*500)
	volPenalty := math.Min(50, vol*1000)
	confidence := int(math.Floor(predConfidence - volPenalty))
	if confidence < minConfidence {
		confidence = minConfidence
	}

	trail := []string{
		fmt.Sprintf("ML prediction: %.1f%% return", pred*100),
		fmt.Sprintf("Base confidence: %d%%", int(math.Floor(predConfidence))),
		fmt.Sprintf("Volatility penalty: -%d%% (volatility: %.2f%%)", int(math.Floor(volPenalty)), vol*100),
		fmt.Sprintf("Initial score: %d%%", confidence),
	}

	// Profile adjustment: first matching rule wins, order is part of the
	// observable behavior.
	for _, rule := range adjustRules {
		if rule.match(profile, risk, action) {
			var line string
			confidence, line = rule.apply(confidence)
			trail = append(trail, line)
			break
		}
	}

	company := row.Name
	if company == "" {
		company = row.Ticker
	}

	return model.Recommendation{
		Ticker:                row.Ticker,
		Company:               company,
		Action:                action,
		Confidence:            confidence,
		ConfidenceExplanation: strings.Join(trail, " | "),
		Reason:                fmt.Sprintf("Model predicts %.2f%% return over ~20 trading days; volatility=%.2f%%.", pred*100, vol*100),
		PotentialReturn:       potentialBucket(pred),
		RiskLevel:             risk,
		TimeHorizon:           horizonLabel(profile.TimeHorizon),
		Price:                 row.Price,
	}
}

// potentialBucket labels the expected upside. Losses are reported as a
// signed integer percentage instead of a range.
func potentialBucket(pred float64) string {
	switch {
	case pred >= 0.15:
		return "+15-25%"
	case pred >= 0.08:
		return "+8-15%"
	case pred >= 0.03:
		return "+3-8%"
	case pred >= 0:
		return "+0-3%"
	default:
		return fmt.Sprintf("%d%%", int(math.Floor(pred*100)))
	}
}

func horizonLabel(h model.Horizon) string {
	switch h {
	case model.HorizonShort:
		return "Short-term (<1yr)"
	case model.HorizonMedium:
		return "Medium-term (1-3yr)"
	default:
		return "Long-term (3yr+)"
	}
}
