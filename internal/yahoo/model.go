package yahoo

import "time"

// Quote is the latest price of a symbol as reported by the chart endpoint.
type Quote struct {
	Symbol   string    `json:"symbol"`
	Currency string    `json:"currency"`
	Price    float64   `json:"price"`
	AsOf     time.Time `json:"asOf"`
}
