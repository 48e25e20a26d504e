package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"StockCompass/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_EmptyDatabase(t *testing.T) {
	r := openTestRecorder(t)
	run, err := r.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if run != nil {
		t.Errorf("expected nil run for an empty database, got %+v", run)
	}
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := openTestRecorder(t)

	at := time.Date(2024, 6, 14, 7, 0, 0, 0, time.UTC)
	want := &RunRecord{
		At:          at,
		RiskScore:   30,
		TimeHorizon: "short",
		TopK:        5,
		Realtime:    true,
		Recommendations: []model.Recommendation{
			{
				Ticker:                "KCB",
				Company:               "KCB Group",
				Action:                model.ActionBuy,
				Confidence:            72,
				ConfidenceExplanation: "ML prediction: 12.0% return | Base confidence: 60%",
				Reason:                "Model predicts 12.00% return over ~20 trading days; volatility=1.50%.",
				PotentialReturn:       "+8-15%",
				RiskLevel:             model.RiskMedium,
				TimeHorizon:           "Short-term (<1yr)",
				Price:                 38.5,
			},
			{Ticker: "EQTY", Action: model.ActionHold, Confidence: 45, RiskLevel: model.RiskLow},
		},
	}
	if err := r.RecordRun(want); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := r.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if got == nil {
		t.Fatal("expected a recorded run")
	}
	if got.At.Unix() != at.Unix() {
		t.Errorf("timestamp drifted: %v vs %v", got.At, at)
	}
	if got.RiskScore != 30 || got.TimeHorizon != "short" || got.TopK != 5 || !got.Realtime {
		t.Errorf("run header drifted: %+v", got)
	}
	if len(got.Recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(got.Recommendations))
	}
	first := got.Recommendations[0]
	if first.Ticker != "KCB" || first.Action != model.ActionBuy || first.Confidence != 72 {
		t.Errorf("first recommendation drifted: %+v", first)
	}
	if first.RiskLevel != model.RiskMedium || first.PotentialReturn != "+8-15%" || first.Price != 38.5 {
		t.Errorf("first recommendation drifted: %+v", first)
	}
}

func TestSQLiteRecorder_LatestWins(t *testing.T) {
	r := openTestRecorder(t)

	if err := r.RecordRun(&RunRecord{RiskScore: 10, TimeHorizon: "short"}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := r.RecordRun(&RunRecord{RiskScore: 90, TimeHorizon: "long"}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	got, err := r.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if got.RiskScore != 90 || got.TimeHorizon != "long" {
		t.Errorf("expected the second run, got %+v", got)
	}
}
