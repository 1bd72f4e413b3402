package testutil

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/niveshai/niveshai-backend/internal/analytics"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/repository"
	"github.com/niveshai/niveshai-backend/internal/service"
)

// NewTestPortfolioService returns a service over repo that looks prices up in
// prices and uses a fixed clock and the default thresholds.
func NewTestPortfolioService(t *testing.T, repo repository.Store, prices *MockPriceLookup) *service.PortfolioService {
	t.Helper()

	if prices == nil {
		prices = NewMockPriceLookup(nil)
	}
	return service.NewPortfolioService(repo, prices, analytics.DefaultThresholds()).
		WithClock(func() time.Time { return FixedTime })
}

// MockPriceLookup is a pricing.Lookup that serves prices from a map.
// Symbols missing from the map fail with apperrors.ErrPriceUnavailable.
type MockPriceLookup struct {
	mu     sync.Mutex
	prices map[string]float64
	errs   map[string]error
	calls  map[string]int
	// Delay is slept before each lookup, honoring ctx.
	Delay time.Duration
}

// NewMockPriceLookup creates a mock serving prices.
func NewMockPriceLookup(prices map[string]float64) *MockPriceLookup {
	m := &MockPriceLookup{
		prices: make(map[string]float64),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
	for k, v := range prices {
		m.prices[k] = v
	}
	return m
}

// SetPrice sets the price returned for symbol.
func (m *MockPriceLookup) SetPrice(symbol string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[symbol] = price
	delete(m.errs, symbol)
}

// SetError makes lookups of symbol fail with err.
func (m *MockPriceLookup) SetError(symbol string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[symbol] = err
}

// Calls returns how often symbol was looked up.
func (m *MockPriceLookup) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

// LookupPrice implements pricing.Lookup.
func (m *MockPriceLookup) LookupPrice(ctx context.Context, symbol string) (float64, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[symbol]++

	if err, ok := m.errs[symbol]; ok {
		return 0, err
	}
	price, ok := m.prices[symbol]
	if !ok {
		return 0, apperrors.ErrPriceUnavailable
	}
	return price, nil
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakePortfolioName generates a unique portfolio name for testing.
//
// Example usage:
//
//	name := testutil.MakePortfolioName("MyPortfolio")
//	// Returns: "MyPortfolio ABC123"
func MakePortfolioName(base string) string {
	if base == "" {
		base = "Portfolio"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeInvestmentName generates a unique holding name for testing.
func MakeInvestmentName(base string) string {
	if base == "" {
		base = "Holding"
	}
	return base + " " + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
