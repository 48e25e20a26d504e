package realtime

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const snapshotJSON = `{"stocks":[{"ticker":"KCB","name":"KCB Group","price":38.5,"change":0.5,"volume":120000}]}`

func TestHTTPFetcher(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(snapshotJSON))
	}))
	defer ts.Close()

	snap, err := NewHTTPFetcher(ts.URL, "secret", "").FetchSnapshot()
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}
	if len(snap.Stocks) != 1 || snap.Stocks[0].Ticker != "KCB" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
}

func TestHTTPFetcher_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	if _, err := NewHTTPFetcher(ts.URL, "", "").FetchSnapshot(); err == nil {
		t.Errorf("expected an error for a non-200 response")
	}
}

func TestHTTPFetcher_EmptySnapshot(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stocks":[]}`))
	}))
	defer ts.Close()

	if _, err := NewHTTPFetcher(ts.URL, "", "").FetchSnapshot(); err == nil {
		t.Errorf("expected an error for a snapshot without stocks")
	}
}

func TestResolve(t *testing.T) {
	if Resolve("", "", "") != nil {
		t.Errorf("empty source must resolve to nil")
	}

	// Inline JSON.
	if snap := Resolve(snapshotJSON, "", ""); snap == nil || snap.Stocks[0].Ticker != "KCB" {
		t.Errorf("inline JSON source not resolved: %+v", snap)
	}

	// File path.
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := os.WriteFile(path, []byte(snapshotJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if snap := Resolve(path, "", ""); snap == nil || snap.Stocks[0].Ticker != "KCB" {
		t.Errorf("file source not resolved: %+v", snap)
	}

	// URL.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(snapshotJSON))
	}))
	defer ts.Close()
	if snap := Resolve(ts.URL, "", ""); snap == nil {
		t.Errorf("URL source not resolved")
	}

	// Failures degrade to nil, never panic or error.
	if Resolve("not json and not a file", "", "") != nil {
		t.Errorf("unusable source must resolve to nil")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if Resolve(bad, "", "") != nil {
		t.Errorf("unparseable file must resolve to nil")
	}
}

func TestMockFetcher(t *testing.T) {
	m := &MockFetcher{Snapshot: Decode([]byte(snapshotJSON))}
	snap, err := m.FetchSnapshot()
	if err != nil || snap == nil {
		t.Fatalf("mock fetch: %v", err)
	}
	if m.Name() != "mock" {
		t.Errorf("unexpected name %q", m.Name())
	}
}
