package advisor

import (
	"strings"
	"testing"

	"StockCompass/internal/model"
)

func TestRiskLevel_Bands(t *testing.T) {
	tests := []struct {
		vol  float64
		want model.RiskLevel
	}{
		{0.0, model.RiskLow},
		{0.005, model.RiskLow},
		{0.01, model.RiskLow},
		{0.0100001, model.RiskMedium},
		{0.02, model.RiskMedium},
		{0.03, model.RiskMedium},
		{0.0300001, model.RiskHigh},
		{0.1, model.RiskHigh},
	}
	for _, tt := range tests {
		if got := RiskLevel(tt.vol); got != tt.want {
			t.Errorf("RiskLevel(%v): expected %s, got %s", tt.vol, tt.want, got)
		}
	}
}

func TestActionFor_Boundaries(t *testing.T) {
	tests := []struct {
		pred float64
		want model.Action
	}{
		{0.08, model.ActionBuy}, // inclusive on the BUY side
		{0.0799999, model.ActionHold},
		{0.12, model.ActionBuy},
		{0.0, model.ActionHold},
		{-0.0299999, model.ActionHold},
		{-0.03, model.ActionSell},
		{-0.1, model.ActionSell},
	}
	for _, tt := range tests {
		if got := ActionFor(tt.pred); got != tt.want {
			t.Errorf("ActionFor(%v): expected %s, got %s", tt.pred, tt.want, got)
		}
	}
}

func TestScore_ConservativeHighRiskBuy(t *testing.T) {
	rec := Score(model.PredictionRow{
		Ticker:       "KCB",
		Price:        38.5,
		Volatility:   0.04,
		PredReturn20: 0.20,
	}, model.UserProfile{RiskScore: 20, TimeHorizon: model.HorizonMedium})

	if rec.RiskLevel != model.RiskHigh {
		t.Errorf("expected High risk, got %s", rec.RiskLevel)
	}
	if rec.Action != model.ActionBuy {
		t.Errorf("expected BUY, got %s", rec.Action)
	}
	// pred_confidence=min(95,100)=95, vol_penalty=min(50,40)=40, base=55,
	// then the conservative+High+BUY rule halves it.
	if rec.Confidence != 27 {
		t.Errorf("expected confidence 27, got %d", rec.Confidence)
	}
	if !strings.Contains(rec.ConfidenceExplanation, "Initial score: 55%") {
		t.Errorf("trail missing initial score: %s", rec.ConfidenceExplanation)
	}
	if !strings.Contains(rec.ConfidenceExplanation, "55% → 27%") {
		t.Errorf("trail missing adjustment old→new values: %s", rec.ConfidenceExplanation)
	}
	if rec.PotentialReturn != "+15-25%" {
		t.Errorf("expected +15-25%% bucket, got %s", rec.PotentialReturn)
	}
}

func TestScore_ConservativeLowRiskBuy_NoMismatch(t *testing.T) {
	rec := Score(model.PredictionRow{
		Ticker:       "EQTY",
		Price:        45,
		Volatility:   0.005,
		PredReturn20: 0.10,
	}, model.UserProfile{RiskScore: 30, TimeHorizon: model.HorizonShort})

	if rec.RiskLevel != model.RiskLow {
		t.Errorf("expected Low risk, got %s", rec.RiskLevel)
	}
	if rec.Action != model.ActionBuy {
		t.Errorf("expected BUY, got %s", rec.Action)
	}
	// Mismatch rules require Medium or High stock risk.
	if strings.Contains(rec.ConfidenceExplanation, "mismatch") {
		t.Errorf("mismatch rule must not fire for Low risk: %s", rec.ConfidenceExplanation)
	}
	if rec.Confidence != 45 {
		t.Errorf("expected confidence 45, got %d", rec.Confidence)
	}
	if rec.TimeHorizon != "Short-term (<1yr)" {
		t.Errorf("unexpected horizon label: %s", rec.TimeHorizon)
	}
}

func TestScore_SellAndLossBucket(t *testing.T) {
	rec := Score(model.PredictionRow{
		Ticker:       "SCOM",
		Price:        14.2,
		Volatility:   0.02,
		PredReturn20: -0.05,
	}, model.UserProfile{RiskScore: 50, TimeHorizon: model.HorizonLong})

	if rec.Action != model.ActionSell {
		t.Errorf("expected SELL at -5%%, got %s", rec.Action)
	}
	if rec.PotentialReturn != "-5%" {
		t.Errorf("expected -5%% bucket, got %s", rec.PotentialReturn)
	}
	if rec.TimeHorizon != "Long-term (3yr+)" {
		t.Errorf("unexpected horizon label: %s", rec.TimeHorizon)
	}
}

func TestScore_AggressiveLowRiskBonus(t *testing.T) {
	rec := Score(model.PredictionRow{
		Ticker:       "ABSA",
		Price:        12,
		Volatility:   0.005,
		PredReturn20: 0.10,
	}, model.UserProfile{RiskScore: 80, TimeHorizon: model.HorizonMedium})

	// base 45, bonus floor(45*1.15)=51
	if rec.Confidence != 51 {
		t.Errorf("expected confidence 51, got %d", rec.Confidence)
	}
	if !strings.Contains(rec.ConfidenceExplanation, "Profile bonus: 45% → 51%") {
		t.Errorf("trail missing bonus line: %s", rec.ConfidenceExplanation)
	}
}

func TestScore_ConfidenceClamped(t *testing.T) {
	tests := []struct {
		name string
		vol  float64
		pred float64
		risk int
	}{
		{"tiny prediction, huge volatility", 0.09, 0.001, 50},
		{"huge prediction, no volatility", 0.0, 0.9, 80},
		{"conservative halving near floor", 0.05, 0.09, 10},
	}
	for _, tt := range tests {
		rec := Score(model.PredictionRow{Ticker: "X", Volatility: tt.vol, PredReturn20: tt.pred},
			model.UserProfile{RiskScore: tt.risk, TimeHorizon: model.HorizonMedium})
		if rec.Confidence < 10 || rec.Confidence > 95 {
			t.Errorf("%s: confidence %d out of [10,95]", tt.name, rec.Confidence)
		}
	}
}

func TestScore_ModerateMediumExplanationOnly(t *testing.T) {
	rec := Score(model.PredictionRow{
		Ticker:       "COOP",
		Price:        13,
		Volatility:   0.02,
		PredReturn20: 0.05,
	}, model.UserProfile{RiskScore: 55, TimeHorizon: model.HorizonMedium})

	// base: floor(min(95,25) - min(50,20)) = 5 -> clamped to 10; rule adds
	// text without touching the number.
	if rec.Confidence != 10 {
		t.Errorf("expected confidence 10, got %d", rec.Confidence)
	}
	if !strings.Contains(rec.ConfidenceExplanation, "Good match: Moderate profile + Medium-risk stock") {
		t.Errorf("trail missing moderate-match line: %s", rec.ConfidenceExplanation)
	}
}

func TestScore_CompanyFallsBackToTicker(t *testing.T) {
	rec := Score(model.PredictionRow{Ticker: "BAMB", Volatility: 0.02, PredReturn20: 0.01},
		model.UserProfile{RiskScore: 50, TimeHorizon: model.HorizonMedium})
	if rec.Company != "BAMB" {
		t.Errorf("expected company to default to ticker, got %q", rec.Company)
	}
}

func TestPotentialBucket_Boundaries(t *testing.T) {
	tests := []struct {
		pred float64
		want string
	}{
		{0.15, "+15-25%"},
		{0.30, "+15-25%"},
		{0.08, "+8-15%"},
		{0.149, "+8-15%"},
		{0.03, "+3-8%"},
		{0.0, "+0-3%"},
		{0.029, "+0-3%"},
		{-0.05, "-5%"},
		{-0.049, "-5%"}, // floor, not truncation toward zero
		{-0.001, "-1%"},
	}
	for _, tt := range tests {
		if got := potentialBucket(tt.pred); got != tt.want {
			t.Errorf("potentialBucket(%v): expected %q, got %q", tt.pred, tt.want, got)
		}
	}
}
