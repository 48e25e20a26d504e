package model

import "time"

// Action is the discrete trade recommendation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// RiskLevel buckets a stock by its return volatility.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Horizon is the user's investment time horizon.
type Horizon string

const (
	HorizonShort  Horizon = "short"
	HorizonMedium Horizon = "medium"
	HorizonLong   Horizon = "long"
)

// PredictionRow is the latest observation per ticker with its predicted
// 20-day forward return attached.
type PredictionRow struct {
	Ticker       string
	Name         string
	Date         time.Time
	Price        float64
	Volatility   float64
	VolAvg       NullFloat
	Momentum     NullFloat
	PredReturn20 float64
}

// UserProfile describes the requesting user. DiversificationScore is
// accepted for interface stability but not consulted by scoring yet.
type UserProfile struct {
	RiskScore            int     // 0-100
	TimeHorizon          Horizon
	DiversificationScore float64 // 0.0-1.0
}

// Recommendation is the final scored output for one ticker. Constructed
// once per request and never mutated afterwards.
type Recommendation struct {
	Ticker                string    `json:"ticker"`
	Company               string    `json:"company"`
	Action                Action    `json:"action"`
	Confidence            int       `json:"confidence"`
	ConfidenceExplanation string    `json:"confidence_explanation"`
	Reason                string    `json:"reason"`
	PotentialReturn       string    `json:"potential_return"`
	RiskLevel             RiskLevel `json:"risk_level"`
	TimeHorizon           string    `json:"time_horizon"`
	Price                 float64   `json:"price"`
}
