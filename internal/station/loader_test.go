package station

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoader_Load(t *testing.T) {
	body := `[
		{"stream_url": "http://nyc.example/stream", "name": "NYC", "country": "USA", "city": "New York", "latitude": 40, "longitude": -74},
		{"stream_url": "http://london.example/stream", "name": "London", "country": "UK", "latitude": 51, "longitude": 0, "timezone": "Europe/London"},
		{"name": "no stream url", "latitude": 0, "longitude": 0},
		{"stream_url": "http://bad.example/stream", "name": "bad coords", "latitude": 200, "longitude": 0}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	l := NewLoader(WithURL(srv.URL), WithTimeout(5*time.Second))

	result, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(result.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(result.Records))
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}
	if result.Records[1].Timezone != "Europe/London" {
		t.Errorf("Timezone = %q, want Europe/London", result.Records[1].Timezone)
	}
}

func TestLoader_LoadErrors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}))
		defer srv.Close()

		if _, err := NewLoader(WithURL(srv.URL)).Load(context.Background()); err == nil {
			t.Error("expected error for HTTP 500")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		if _, err := NewLoader(WithURL(srv.URL)).Load(context.Background()); err == nil {
			t.Error("expected error for malformed body")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := NewLoader().Load(ctx); err == nil {
			t.Error("expected error for canceled context")
		}
	})
}
