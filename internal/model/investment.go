package model

import "time"

// Investment kinds. The set is open: unknown kinds are accepted and land in
// the "other" asset-class bucket.
const (
	KindEquity             = "equity"
	KindMutualFund         = "mutual_fund"
	KindExchangeTradedFund = "exchange_traded_fund"
	KindBond               = "bond"
	KindStock              = "stock"
	KindEquityFund         = "equity_fund"
	KindGoldETF            = "gold_etf"
	KindGoldFund           = "gold_fund"
	KindLiquidFund         = "liquid_fund"
)

// Investment is a single holding inside a portfolio.
// InvestedAmount, CurrentValue, AbsoluteReturn and ReturnPercentage are derived
// from Quantity, AverageCost and CurrentPrice.
type Investment struct {
	ID               string     `json:"id"`
	Kind             string     `json:"type"`
	Symbol           string     `json:"symbol"`
	Name             string     `json:"name"`
	Sector           string     `json:"sector"`
	MarketCap        string     `json:"marketCap"`
	ISIN             string     `json:"isin"`
	Quantity         float64    `json:"quantity"`
	AverageCost      float64    `json:"averagePrice"`
	CurrentPrice     float64    `json:"currentPrice"`
	InvestedAmount   float64    `json:"investedAmount"`
	CurrentValue     float64    `json:"currentValue"`
	AbsoluteReturn   float64    `json:"absoluteReturn"`
	ReturnPercentage float64    `json:"returnPercentage"`
	PurchaseDate     *time.Time `json:"purchaseDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"lastUpdated"`
}

// Clone returns a copy of the investment that shares no pointers with inv.
func (inv Investment) Clone() Investment {
	c := inv
	if inv.PurchaseDate != nil {
		d := *inv.PurchaseDate
		c.PurchaseDate = &d
	}
	return c
}

// InvestmentPatch carries the optional fields of an investment update.
// Nil fields are left unchanged.
type InvestmentPatch struct {
	Quantity     *float64
	CurrentPrice *float64
	AverageCost  *float64
	Sector       *string
	Name         *string
}
