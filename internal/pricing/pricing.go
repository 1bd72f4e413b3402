// Package pricing resolves the latest price of a symbol.
//
// Lookups are best effort: any error means "unavailable, keep the last known
// price". Providers are safe for concurrent use.
package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/marketdata"
	"github.com/niveshai/niveshai-backend/internal/yahoo"
)

// Provider names accepted by New.
const (
	ProviderStatic = "static"
	ProviderYahoo  = "yahoo"
)

// Lookup returns the latest price for a symbol.
type Lookup interface {
	LookupPrice(ctx context.Context, symbol string) (float64, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, symbol string) (float64, error)

// LookupPrice calls f(ctx, symbol).
func (f LookupFunc) LookupPrice(ctx context.Context, symbol string) (float64, error) {
	return f(ctx, symbol)
}

// normalize upper-cases and trims a symbol.
func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// StaticProvider serves prices from the simulated market tables.
type StaticProvider struct {
	prices map[string]float64
}

// NewStaticProvider creates a provider backed by marketdata.Prices.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{prices: marketdata.Prices()}
}

// LookupPrice returns the simulated price. Exchange suffixes (.NS, .BO) are ignored.
func (p *StaticProvider) LookupPrice(ctx context.Context, symbol string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s := normalize(symbol)
	s = strings.TrimSuffix(strings.TrimSuffix(s, ".NS"), ".BO")
	price, ok := p.prices[s]
	if !ok {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrPriceUnavailable, symbol)
	}
	return price, nil
}

// YahooProvider resolves prices through the Yahoo Finance chart endpoint.
// Symbols without an exchange suffix get Suffix appended (".NS" by default).
type YahooProvider struct {
	client *yahoo.FinanceClient
	Suffix string
}

// NewYahooProvider creates a provider for NSE symbols.
func NewYahooProvider(client *yahoo.FinanceClient) *YahooProvider {
	return &YahooProvider{client: client, Suffix: ".NS"}
}

func (p *YahooProvider) LookupPrice(ctx context.Context, symbol string) (float64, error) {
	s := normalize(symbol)
	if s == "" {
		return 0, fmt.Errorf("%w: empty symbol", apperrors.ErrPriceUnavailable)
	}
	if !strings.Contains(s, ".") && p.Suffix != "" {
		s += p.Suffix
	}

	q, err := p.client.QueryQuote(ctx, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", apperrors.ErrPriceUnavailable, s, err)
	}
	if q.Price <= 0 {
		return 0, fmt.Errorf("%w: %s: non-positive price", apperrors.ErrPriceUnavailable, s)
	}
	return q.Price, nil
}

// New builds the provider named by name.
func New(name string) (Lookup, error) {
	switch strings.ToLower(name) {
	case "", ProviderStatic:
		return NewStaticProvider(), nil
	case ProviderYahoo:
		return NewYahooProvider(yahoo.NewFinanceClient()), nil
	default:
		return nil, fmt.Errorf("unknown price provider: %s", name)
	}
}
