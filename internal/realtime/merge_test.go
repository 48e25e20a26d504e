package realtime

import (
	"testing"
	"time"

	"StockCompass/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDecode(t *testing.T) {
	snap := Decode([]byte(`{"stocks":[{"ticker":"KCB","name":"KCB Group","price":38.5,"change":0.5,"volume":120000}]}`))
	if snap == nil || len(snap.Stocks) != 1 {
		t.Fatalf("expected one stock, got %+v", snap)
	}
	if snap.Stocks[0].Ticker != "KCB" || snap.Stocks[0].Price != 38.5 {
		t.Errorf("unexpected stock: %+v", snap.Stocks[0])
	}

	if Decode([]byte(`{not json`)) != nil {
		t.Errorf("malformed payload must decode to nil")
	}
	if Decode([]byte(`{"stocks":[]}`)) != nil {
		t.Errorf("empty stocks list must decode to nil")
	}
	if Decode([]byte(`{}`)) != nil {
		t.Errorf("missing stocks list must decode to nil")
	}
}

func TestMerge_ReplacesTodayRow(t *testing.T) {
	today := day(2024, 6, 14)
	yesterday := day(2024, 6, 13)
	universe := model.Universe{
		"KCB": {
			{Date: yesterday, Ticker: "KCB", DayPrice: model.Float(37)},
			{Date: today, Ticker: "KCB", DayPrice: model.Float(37.5)},
		},
	}
	snap := &model.RealtimeSnapshot{Stocks: []model.RealtimeStock{
		{Ticker: "KCB", Name: "KCB Group", Price: 38.5, Change: 0.5, Volume: 120000},
	}}

	merged := Merge(universe, snap, today)
	series := merged["KCB"]
	if len(series) != 2 {
		t.Fatalf("expected 2 rows (yesterday + live), got %d", len(series))
	}
	if !series[0].Date.Equal(yesterday) {
		t.Errorf("historical row before today must be preserved")
	}
	live := series[1]
	if !live.Date.Equal(today) {
		t.Errorf("live row must carry today's date, got %v", live.Date)
	}
	if !live.DayPrice.Valid || live.DayPrice.Float64 != 38.5 {
		t.Errorf("live row must replace today's stale price, got %+v", live.DayPrice)
	}
	if !live.PrevPrice.Valid || live.PrevPrice.Float64 != 38.0 {
		t.Errorf("previous price must be price minus change, got %+v", live.PrevPrice)
	}
}

func TestMerge_LeavesOtherTickersAlone(t *testing.T) {
	today := day(2024, 6, 14)
	universe := model.Universe{
		"EQTY": {{Date: today, Ticker: "EQTY", DayPrice: model.Float(45)}},
	}
	snap := &model.RealtimeSnapshot{Stocks: []model.RealtimeStock{
		{Ticker: "KCB", Price: 38.5},
	}}

	merged := Merge(universe, snap, today)
	if len(merged["EQTY"]) != 1 || merged["EQTY"][0].DayPrice.Float64 != 45 {
		t.Errorf("ticker absent from the snapshot must pass through untouched")
	}
	if len(merged["KCB"]) != 1 {
		t.Errorf("snapshot ticker with no history must get a fresh one-row series")
	}
}

func TestMerge_NilSnapshotIsNoop(t *testing.T) {
	universe := model.Universe{
		"KCB": {{Date: day(2024, 6, 14), Ticker: "KCB", DayPrice: model.Float(37)}},
	}
	merged := Merge(universe, nil, day(2024, 6, 14))
	if len(merged) != 1 || len(merged["KCB"]) != 1 {
		t.Errorf("nil snapshot must leave the universe unchanged")
	}
}

func TestMerge_SkipsEmptyTicker(t *testing.T) {
	universe := model.Universe{}
	snap := &model.RealtimeSnapshot{Stocks: []model.RealtimeStock{{Ticker: "", Price: 10}}}
	merged := Merge(universe, snap, day(2024, 6, 14))
	if len(merged) != 0 {
		t.Errorf("a snapshot entry without a ticker must be ignored")
	}
}

func TestTopByVolume(t *testing.T) {
	snap := &model.RealtimeSnapshot{Stocks: []model.RealtimeStock{
		{Ticker: "A", Volume: 100},
		{Ticker: "B", Volume: 300},
		{Ticker: "C", Volume: 200},
	}}
	top := TopByVolume(snap, 2)
	if len(top) != 2 || top[0].Ticker != "B" || top[1].Ticker != "C" {
		t.Errorf("expected B,C got %+v", top)
	}
	if TopByVolume(nil, 2) != nil {
		t.Errorf("nil snapshot must return nil")
	}
	if TopByVolume(snap, 0) != nil {
		t.Errorf("non-positive count must return nil")
	}
}
