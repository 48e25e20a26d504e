package realtime

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"StockCompass/internal/model"
)

// Fetcher supplies the live market snapshot.
type Fetcher interface {
	FetchSnapshot() (*model.RealtimeSnapshot, error)
	Name() string
}

// HTTPFetcher pulls the snapshot from a REST endpoint.
type HTTPFetcher struct {
	URL    string
	APIKey string
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher with optional proxy support.
func NewHTTPFetcher(endpoint, apiKey, proxyURL string) *HTTPFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPFetcher{
		URL:    endpoint,
		APIKey: apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *HTTPFetcher) Name() string { return "http" }

func (f *HTTPFetcher) FetchSnapshot() (*model.RealtimeSnapshot, error) {
	req, err := http.NewRequest("GET", f.URL, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch snapshot: status %d, body: %s", resp.StatusCode, string(body))
	}
	snap := Decode(body)
	if snap == nil {
		return nil, fmt.Errorf("snapshot response has no stocks")
	}
	return snap, nil
}

// MockFetcher returns a fixed snapshot for development and testing.
type MockFetcher struct {
	Snapshot *model.RealtimeSnapshot
	Err      error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSnapshot() (*model.RealtimeSnapshot, error) {
	return m.Snapshot, m.Err
}

// Resolve turns the --realtime argument into a snapshot. The source may be
// a URL, a file path, or inline JSON. Every failure degrades to running
// without realtime data: a warning is logged, never an error returned.
func Resolve(source, apiKey, proxyURL string) *model.RealtimeSnapshot {
	if source == "" {
		return nil
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		snap, err := NewHTTPFetcher(source, apiKey, proxyURL).FetchSnapshot()
		if err != nil {
			log.Printf("[WARN] realtime fetch failed, proceeding without live data: %v", err)
			return nil
		}
		return snap
	}
	if data, err := os.ReadFile(source); err == nil {
		if snap := Decode(data); snap != nil {
			return snap
		}
		log.Printf("[WARN] realtime file %s is not a usable snapshot, proceeding without live data", source)
		return nil
	}
	if snap := Decode([]byte(source)); snap != nil {
		return snap
	}
	log.Printf("[WARN] realtime source is neither a readable file nor snapshot JSON, proceeding without live data")
	return nil
}
