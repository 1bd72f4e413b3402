package model

// PriceRefreshResponse represents the response for a portfolio price refresh.
// It lists both the investments whose price was updated and the symbols whose
// lookup failed. Failed investments keep their last known price.
// Success is true if at least one investment was updated or nothing needed updating.
type PriceRefreshResponse struct {
	Success         bool                `json:"success"`
	Portfolio       *Portfolio          `json:"portfolio,omitempty"`
	UpdatedPrices   []UpdatedPrice      `json:"updatedPrices"`
	Errors          []UpdatedPriceError `json:"errors"`
	TotalUpdated    int                 `json:"totalUpdated"`
	TotalErrors     int                 `json:"totalErrors"`
	SkippedNoSymbol int                 `json:"skippedNoSymbol"`
}

// UpdatedPrice represents an investment whose price was refreshed.
type UpdatedPrice struct {
	InvestmentID string  `json:"investmentId"`
	Symbol       string  `json:"symbol"`
	OldPrice     float64 `json:"oldPrice"`
	NewPrice     float64 `json:"newPrice"`
}

// UpdatedPriceError represents a symbol whose lookup failed.
type UpdatedPriceError struct {
	InvestmentID string `json:"investmentId"`
	Symbol       string `json:"symbol"`
	Error        string `json:"error"`
}

// BulkRefreshResponse summarises a refresh over every stored portfolio.
type BulkRefreshResponse struct {
	Success         bool                    `json:"success"`
	Portfolios      []PortfolioRefresh      `json:"portfolios"`
	Errors          []PortfolioRefreshError `json:"errors"`
	TotalPortfolios int                     `json:"totalPortfolios"`
	TotalUpdated    int                     `json:"totalUpdated"`
	TotalErrors     int                     `json:"totalErrors"`
}

// PortfolioRefresh is the per-portfolio line of a bulk refresh.
type PortfolioRefresh struct {
	PortfolioID  string `json:"portfolioId"`
	TotalUpdated int    `json:"totalUpdated"`
	TotalErrors  int    `json:"totalErrors"`
}

// PortfolioRefreshError is a portfolio that could not be refreshed at all.
type PortfolioRefreshError struct {
	PortfolioID string `json:"portfolioId"`
	Error       string `json:"error"`
}
