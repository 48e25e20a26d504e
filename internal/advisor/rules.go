package advisor

import (
	"fmt"
	"math"

	"StockCompass/internal/model"
)

const (
	conservativeMax = 40 // risk_score <= 40 is a conservative investor
	aggressiveMin   = 70 // risk_score >= 70 is an aggressive investor
)

// adjustRule is one profile-adjustment branch: a predicate over (profile,
// stock risk, action) and the confidence rewrite it applies. Rules are
// evaluated in declaration order and at most one fires; reordering them
// changes observable confidence values.
type adjustRule struct {
	match func(p model.UserProfile, risk model.RiskLevel, action model.Action) bool
	apply func(confidence int) (int, string)
}

var adjustRules = []adjustRule{
	{
		// Conservative investor buying a high-risk stock: halve confidence.
		match: func(p model.UserProfile, risk model.RiskLevel, action model.Action) bool {
			return p.RiskScore <= conservativeMax && risk == model.RiskHigh && action == model.ActionBuy
		},
		apply: func(confidence int) (int, string) {
			adjusted := scaled(confidence, 0.5, minConfidence)
			return adjusted, fmt.Sprintf("⚠️ Risk mismatch: %d%% → %d%% (Conservative investor + High-risk stock)", confidence, adjusted)
		},
	},
	{
		// Conservative investor buying a medium-risk stock: smaller haircut.
		match: func(p model.UserProfile, risk model.RiskLevel, action model.Action) bool {
			return p.RiskScore <= conservativeMax && risk == model.RiskMedium && action == model.ActionBuy
		},
		apply: func(confidence int) (int, string) {
			adjusted := scaled(confidence, 0.75, 15)
			return adjusted, fmt.Sprintf("⚠️ Slight mismatch: %d%% → %d%% (Conservative investor + Medium-risk stock)", confidence, adjusted)
		},
	},
	{
		// Aggressive investor buying a low-risk stock: modest bonus.
		match: func(p model.UserProfile, risk model.RiskLevel, action model.Action) bool {
			return p.RiskScore >= aggressiveMin && risk == model.RiskLow && action == model.ActionBuy
		},
		apply: func(confidence int) (int, string) {
			adjusted := int(math.Floor(float64(confidence) * 1.15))
			if adjusted > maxConfidence {
				adjusted = maxConfidence
			}
			return adjusted, fmt.Sprintf("✓ Profile bonus: %d%% → %d%% (Aggressive investor + Low-risk stock = safer bet)", confidence, adjusted)
		},
	},
	{
		// Aggressive investor buying high risk: explanation only.
		match: func(p model.UserProfile, risk model.RiskLevel, action model.Action) bool {
			return p.RiskScore >= aggressiveMin && risk == model.RiskHigh && action == model.ActionBuy
		},
		apply: func(confidence int) (int, string) {
			return confidence, "✓ Profile match: Aggressive investor comfortable with high-risk stocks"
		},
	},
	{
		// Moderate investor with a medium-risk stock: explanation only.
		match: func(p model.UserProfile, risk model.RiskLevel, action model.Action) bool {
			return p.RiskScore > conservativeMax && p.RiskScore < aggressiveMin && risk == model.RiskMedium
		},
		apply: func(confidence int) (int, string) {
			return confidence, "✓ Good match: Moderate profile + Medium-risk stock"
		},
	},
}

func scaled(confidence int, factor float64, floor int) int {
	adjusted := int(math.Floor(float64(confidence) * factor))
	if adjusted < floor {
		adjusted = floor
	}
	return adjusted
}
