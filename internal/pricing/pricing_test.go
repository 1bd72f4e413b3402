package pricing_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/pricing"
	"github.com/niveshai/niveshai-backend/internal/yahoo"
)

// TestStaticProvider tests lookups against the simulated market tables.
//
// WHY: The static provider is the default price source; refresh behaviour in
// development depends on it answering for known symbols and failing cleanly
// for unknown ones.
func TestStaticProvider(t *testing.T) {
	p := pricing.NewStaticProvider()
	ctx := context.Background()

	tests := []struct {
		name   string
		symbol string
		want   float64
	}{
		{"listed stock", "TCS", 3567.89},
		{"lower case", "reliance", 2543.21},
		{"exchange suffix", "TATAMOTORS.NS", 652.34},
		{"mover only", "YESBANK", 23.45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.LookupPrice(ctx, tt.symbol)
			if err != nil {
				t.Fatalf("LookupPrice(%q) returned unexpected error: %v", tt.symbol, err)
			}
			if got != tt.want {
				t.Errorf("LookupPrice(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := p.LookupPrice(ctx, "NOPE")
		if !errors.Is(err, apperrors.ErrPriceUnavailable) {
			t.Errorf("Expected ErrPriceUnavailable, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := p.LookupPrice(cctx, "TCS"); err == nil {
			t.Error("Expected error for cancelled context")
		}
	})
}

// TestCachedLookup tests TTL caching of successful lookups.
//
// WHY: The cache must not serve stale prices past the TTL, and must never
// cache failures, or an upstream blip would pin a symbol as unavailable.
func TestCachedLookup(t *testing.T) {
	var calls atomic.Int32
	fail := false
	next := pricing.LookupFunc(func(_ context.Context, symbol string) (float64, error) {
		calls.Add(1)
		if fail {
			return 0, apperrors.ErrPriceUnavailable
		}
		return 100, nil
	})

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	cache := pricing.NewCachedLookup(next, 5*time.Minute).WithClock(func() time.Time { return now })
	ctx := context.Background()

	if _, err := cache.LookupPrice(ctx, "tcs"); err != nil {
		t.Fatalf("LookupPrice() returned unexpected error: %v", err)
	}
	if _, err := cache.LookupPrice(ctx, "TCS"); err != nil {
		t.Fatalf("LookupPrice() returned unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected 1 upstream call within TTL, got %d", calls.Load())
	}

	now = now.Add(6 * time.Minute)
	if _, err := cache.LookupPrice(ctx, "TCS"); err != nil {
		t.Fatalf("LookupPrice() returned unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected refetch after TTL, got %d calls", calls.Load())
	}

	fail = true
	if _, err := cache.LookupPrice(ctx, "INFY"); err == nil {
		t.Error("Expected error from failing upstream")
	}
	fail = false
	if _, err := cache.LookupPrice(ctx, "INFY"); err != nil {
		t.Errorf("Failure should not be cached, got %v", err)
	}

	cache.Invalidate()
	before := calls.Load()
	if _, err := cache.LookupPrice(ctx, "TCS"); err != nil {
		t.Fatalf("LookupPrice() returned unexpected error: %v", err)
	}
	if calls.Load() != before+1 {
		t.Error("Expected upstream call after Invalidate")
	}
}

// TestYahooProvider tests suffixing and error mapping over a fake chart endpoint.
func TestYahooProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/TCS.NS") {
			_, _ = w.Write([]byte(`{"chart":{"result":[{"meta":{"symbol":"TCS.NS","regularMarketPrice":3567.89}}],"error":null}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"description":"No data found"}}}`))
	}))
	defer server.Close()

	p := pricing.NewYahooProvider(yahoo.NewFinanceClient().WithBaseURL(server.URL + "/"))

	got, err := p.LookupPrice(context.Background(), "tcs")
	if err != nil {
		t.Fatalf("LookupPrice() returned unexpected error: %v", err)
	}
	if got != 3567.89 {
		t.Errorf("Expected 3567.89, got %v", got)
	}

	_, err = p.LookupPrice(context.Background(), "NOPE")
	if !errors.Is(err, apperrors.ErrPriceUnavailable) {
		t.Errorf("Expected ErrPriceUnavailable, got %v", err)
	}
}

// TestNew tests provider selection by name.
func TestNew(t *testing.T) {
	for _, name := range []string{"", "static", "yahoo", "YAHOO"} {
		if _, err := pricing.New(name); err != nil {
			t.Errorf("New(%q) returned unexpected error: %v", name, err)
		}
	}
	if _, err := pricing.New("bloomberg"); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
