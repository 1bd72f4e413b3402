package request

// CreatePortfolioRequest represents the request body for creating a portfolio.
// Only userId is required; the rest fall back to defaults.
type CreatePortfolioRequest struct {
	UserID           string             `json:"userId"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	RiskProfile      string             `json:"riskProfile"`
	TargetAllocation map[string]float64 `json:"targetAllocation,omitempty"`
}

// AddInvestmentRequest represents the request body for adding an investment.
// Quantity and averagePrice are pointers so that a missing value can be told
// apart from zero.
type AddInvestmentRequest struct {
	Type         string   `json:"type"`
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Sector       string   `json:"sector"`
	MarketCap    string   `json:"marketCap"`
	ISIN         string   `json:"isin"`
	Quantity     *float64 `json:"quantity"`
	AveragePrice *float64 `json:"averagePrice"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"` // Defaults to averagePrice.
	PurchaseDate string   `json:"purchaseDate,omitempty"` // YYYY-MM-DD or RFC3339.
}

// UpdateInvestmentRequest represents the request body for updating an investment.
// All fields are optional. Only provided fields will be updated.
type UpdateInvestmentRequest struct {
	Quantity     *float64 `json:"quantity,omitempty"`
	CurrentPrice *float64 `json:"currentPrice,omitempty"`
	AveragePrice *float64 `json:"averagePrice,omitempty"`
	Sector       *string  `json:"sector,omitempty"`
	Name         *string  `json:"name,omitempty"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateInvestmentRequest) IsEmpty() bool {
	return r.Quantity == nil && r.CurrentPrice == nil && r.AveragePrice == nil &&
		r.Sector == nil && r.Name == nil
}
