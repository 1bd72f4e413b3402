package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultBaseURL is the Yahoo Finance v8 chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// JSON paths into the chart response.
const (
	pathError       = "$.chart.error.description"
	pathResult      = "$.chart.result"
	pathSymbol      = "$.chart.result[0].meta.symbol"
	pathCurrency    = "$.chart.result[0].meta.currency"
	pathMarketPrice = "$.chart.result[0].meta.regularMarketPrice"
	pathMarketTime  = "$.chart.result[0].meta.regularMarketTime"
	pathClosePrices = "$.chart.result[0].indicators.quote[0].close"
)

// FinanceClient provides methods for fetching financial data from Yahoo Finance API.
// It wraps an HTTP client and reads the loosely-typed chart JSON with jsonpath.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client with an 8 second timeout.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 8 * time.Second},
		baseURL:    DefaultBaseURL,
	}
}

// WithBaseURL returns a copy of the client that queries baseURL instead of Yahoo.
// baseURL must end with a slash; the symbol is appended to it.
func (c *FinanceClient) WithBaseURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: c.httpClient,
		baseURL:    baseURL,
	}
}

// QueryQuote fetches the last 5 days of daily data for symbol and extracts the
// latest quote from it.
//
// The latest price is meta.regularMarketPrice when present, otherwise the last
// non-null close of the series.
func (c *FinanceClient) QueryQuote(ctx context.Context, symbol string) (Quote, error) {
	chart, err := c.queryChart(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}
	return ParseQuote(chart)
}

// ParseQuote extracts a Quote from a decoded chart response.
func ParseQuote(chart any) (Quote, error) {
	if desc, err := jsonpath.Get(pathError, chart); err == nil {
		if s, ok := first(desc).(string); ok && s != "" {
			return Quote{}, fmt.Errorf("yahoo error: %s", s)
		}
	}

	results, err := jsonpath.Get(pathResult, chart)
	if err != nil {
		return Quote{}, fmt.Errorf("no results returned: %w", err)
	}
	if list, ok := results.([]any); !ok || len(list) == 0 {
		return Quote{}, fmt.Errorf("no results returned")
	}

	q := Quote{
		Symbol:   getString(pathSymbol, chart),
		Currency: getString(pathCurrency, chart),
	}

	if price, ok := getFloat(pathMarketPrice, chart); ok && price > 0 {
		q.Price = price
	} else {
		closes, err := jsonpath.Get(pathClosePrices, chart)
		if err != nil {
			return Quote{}, fmt.Errorf("no close prices returned: %w", err)
		}
		list, _ := closes.([]any)
		for i := len(list) - 1; i >= 0; i-- {
			if v, ok := list[i].(float64); ok {
				q.Price = v
				break
			}
		}
		if q.Price == 0 {
			return Quote{}, fmt.Errorf("no close prices returned")
		}
	}

	if ts, ok := getFloat(pathMarketTime, chart); ok {
		q.AsOf = time.Unix(int64(ts), 0).UTC()
	}
	return q, nil
}

// queryChart executes the HTTP request to the chart endpoint and decodes the body.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryChart(ctx context.Context, symbol string) (any, error) {
	addr := c.baseURL + url.PathEscape(symbol) + "?interval=1d&range=5d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var chart any
	if err := json.Unmarshal(data, &chart); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("yahoo http %d", resp.StatusCode)
		}
		return nil, err
	}
	return chart, nil
}

// first unwraps single-element lists: jsonpath may return either a value or
// a list containing it.
func first(v any) any {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return v
}

func getString(path string, obj any) string {
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return ""
	}
	s, _ := first(v).(string)
	return s
}

func getFloat(path string, obj any) (float64, bool) {
	v, err := jsonpath.Get(path, obj)
	if err != nil {
		return 0, false
	}
	f, ok := first(v).(float64)
	return f, ok
}
