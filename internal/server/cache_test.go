package server

import (
	"testing"
	"time"

	"StockCompass/internal/model"
)

func TestCache_HitAndExpiry(t *testing.T) {
	c := NewCache(40 * time.Millisecond)
	recs := []model.Recommendation{{Ticker: "KCB", Confidence: 50}}

	c.Set("50-medium-5", recs)
	got, ok := c.Get("50-medium-5")
	if !ok || len(got) != 1 || got[0].Ticker != "KCB" {
		t.Fatalf("expected a fresh hit, got ok=%v recs=%+v", ok, got)
	}

	if _, ok := c.Get("30-short-5"); ok {
		t.Errorf("different key must miss")
	}

	time.Sleep(60 * time.Millisecond)
	if _, ok := c.Get("50-medium-5"); ok {
		t.Errorf("entry past TTL must miss")
	}
}

func TestCache_Clear(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("a", []model.Recommendation{{Ticker: "A"}})
	c.Set("b", []model.Recommendation{{Ticker: "B"}})
	c.Clear()
	if _, ok := c.Get("a"); ok {
		t.Errorf("clear must drop all entries")
	}
	if _, ok := c.Get("b"); ok {
		t.Errorf("clear must drop all entries")
	}
}
