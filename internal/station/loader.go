package station

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

const (
	// DefaultStationsURL is the project's curated station list.
	DefaultStationsURL = "https://litescript.github.io/globeradio-data/stations.json"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 30 * time.Second
)

// Loader fetches the station list over HTTP. The list resolves once at
// startup, before any markers exist; a failed load leaves the directory
// empty and the rest of the app keeps running.
type Loader struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithURL sets a custom station list URL.
func WithURL(url string) LoaderOption {
	return func(l *Loader) {
		l.url = url
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.client = client
	}
}

// NewLoader creates a station list loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		url:     DefaultStationsURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		l.client = &http.Client{
			Timeout: l.timeout,
		}
	}

	return l
}

// LoadResult contains the outcome of a station list fetch.
type LoadResult struct {
	Records   []Record
	Skipped   int // records dropped for failing validation
	FetchedAt time.Time
	Duration  time.Duration
}

// Load fetches and decodes the station list. Records that fail validation
// (missing stream URL, out-of-range coordinates) are skipped, not fatal.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	start := time.Now()
	result := LoadResult{FetchedAt: start}

	raw, err := l.fetchRaw(ctx)
	result.Duration = time.Since(start)
	if err != nil {
		return result, err
	}

	var decoded []Record
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return result, fmt.Errorf("parse station list: %w", err)
	}

	result.Records = make([]Record, 0, len(decoded))
	for _, r := range decoded {
		if r.Validate() != nil {
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, r)
	}

	return result, nil
}

func (l *Loader) fetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "ls-globeradio/1.0 (Globe Radio Browser)")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch station list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

// URL returns the configured station list URL.
func (l *Loader) URL() string {
	return l.url
}
