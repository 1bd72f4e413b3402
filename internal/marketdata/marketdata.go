// Package marketdata holds the simulated Indian market tables served by the
// static price provider, the market endpoints and the chat advisor.
package marketdata

import (
	"sort"
	"strings"
)

// Stock is a simulated NSE listing.
type Stock struct {
	Key         string   `json:"-"`
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Sector      string   `json:"sector"`
	Price       float64  `json:"price"`
	Change      float64  `json:"change"`
	Volume      string   `json:"volume"`
	MarketCap   string   `json:"marketCap"`
	PE          float64  `json:"pe"`
	PB          float64  `json:"pb"`
	ROE         float64  `json:"roe"`
	Debt        float64  `json:"debtToEquity"`
	Promoter    float64  `json:"promoterHolding"`
	Dividend    float64  `json:"dividendYield"`
	Description string   `json:"description"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	RecentNews  string   `json:"recentNews"`
	Outlook     string   `json:"outlook"`
}

// Index is a market index snapshot.
type Index struct {
	Current       float64 `json:"current"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	PE            float64 `json:"pe"`
	PB            float64 `json:"pb"`
	Dividend      float64 `json:"dividend"`
}

// Mover is a top gainer or loser.
type Mover struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

// Overview is the market overview snapshot.
type Overview struct {
	Nifty50    Index   `json:"nifty50"`
	Sensex     Index   `json:"sensex"`
	Sentiment  string  `json:"marketSentiment"`
	VIX        float64 `json:"vix"`
	TopGainers []Mover `json:"topGainers"`
	TopLosers  []Mover `json:"topLosers"`
}

// Fund is a single mutual fund within a category.
type Fund struct {
	Name     string  `json:"name"`
	Return1Y float64 `json:"return1Y"`
	Return3Y float64 `json:"return3Y"`
	AUM      float64 `json:"aum"`
	Expense  float64 `json:"expenseRatio"`
}

// FundCategory groups funds with category-average returns.
type FundCategory struct {
	Key      string  `json:"key"`
	Category string  `json:"category"`
	Avg1Y    float64 `json:"avgReturn1Y"`
	Avg3Y    float64 `json:"avgReturn3Y"`
	Avg5Y    float64 `json:"avgReturn5Y"`
	AvgPE    float64 `json:"avgPE"`
	TopFunds []Fund  `json:"topFunds"`
}

// TaxOption is a Section 80C eligible instrument.
type TaxOption struct {
	Name    string `json:"name"`
	Returns string `json:"returns"`
	LockIn  string `json:"lockIn"`
	Risk    string `json:"risk"`
}

// Section80CLimit is the annual deduction limit in rupees.
const Section80CLimit = 150000

var stocks = []Stock{
	{
		Key: "tata motors", Name: "Tata Motors", Symbol: "TATAMOTORS", Sector: "Automobile",
		Price: 652.34, Change: 2.5, Volume: "8.2M", MarketCap: "₹2.3L Cr",
		PE: 18.5, PB: 2.3, ROE: 14.2, Debt: 0.85, Promoter: 42, Dividend: 1.8,
		Description: "Leading Indian automobile manufacturer with EV leadership.",
		Strengths:   []string{"Strong brand", "EV leadership", "Global presence"},
		Weaknesses:  []string{"High competition", "Cyclical nature"},
		RecentNews:  "Launched new EV models, Q2 results beat expectations",
		Outlook:     "Positive on EV transition",
	},
	{
		Key: "reliance", Name: "Reliance Industries", Symbol: "RELIANCE", Sector: "Conglomerate",
		Price: 2543.21, Change: 1.8, Volume: "12.5M", MarketCap: "₹17.2L Cr",
		PE: 22.3, PB: 1.8, ROE: 12.5, Debt: 0.45, Promoter: 50.2, Dividend: 0.9,
		Description: "Diversified conglomerate with leadership in petrochemicals, retail, telecom.",
		Strengths:   []string{"Market leadership", "Cash reserves", "Digital growth"},
		Weaknesses:  []string{"Regulatory risks", "Competition"},
		RecentNews:  "Jio user base crosses 450 million",
		Outlook:     "Strong growth in digital, stable in petrochemicals",
	},
	{
		Key: "tcs", Name: "TCS", Symbol: "TCS", Sector: "IT Services",
		Price: 3567.89, Change: 1.2, Volume: "2.1M", MarketCap: "₹13.1L Cr",
		PE: 28.5, PB: 8.2, ROE: 28.9, Debt: 0.12, Promoter: 72.3, Dividend: 1.5,
		Description: "India's largest IT services company with global presence.",
		Strengths:   []string{"Market leadership", "Global delivery", "Digital capabilities"},
		Weaknesses:  []string{"High valuation", "US dependency"},
		RecentNews:  "Won multi-billion dollar deals, AI initiatives gaining traction",
		Outlook:     "Positive on digital transformation",
	},
}

var overview = Overview{
	Nifty50:   Index{Current: 19876.45, Change: 125.30, ChangePercent: 0.63, PE: 22.5, PB: 3.2, Dividend: 1.2},
	Sensex:    Index{Current: 66543.21, Change: 234.56, ChangePercent: 0.35, PE: 24.1, PB: 3.8, Dividend: 1.1},
	Sentiment: "Positive",
	VIX:       14.2,
	TopGainers: []Mover{
		{Symbol: "RELIANCE", Price: 2543.20, Change: 2.3},
		{Symbol: "TCS", Price: 3456.70, Change: 1.8},
		{Symbol: "HDFCBANK", Price: 1678.90, Change: 1.5},
	},
	TopLosers: []Mover{
		{Symbol: "YESBANK", Price: 23.45, Change: -3.2},
		{Symbol: "IDEA", Price: 12.34, Change: -2.1},
	},
}

var fundCategories = []FundCategory{
	{
		Key: "largeCap", Category: "Large Cap", Avg1Y: 18.5, Avg3Y: 14.2, Avg5Y: 12.8, AvgPE: 22.1,
		TopFunds: []Fund{
			{Name: "Axis Bluechip Fund", Return1Y: 19.2, Return3Y: 15.1, AUM: 28543, Expense: 0.49},
			{Name: "Mirae Asset Large Cap Fund", Return1Y: 18.8, Return3Y: 14.8, AUM: 19876, Expense: 0.54},
			{Name: "Canara Robeco Equity Fund", Return1Y: 17.9, Return3Y: 13.9, AUM: 12345, Expense: 0.62},
		},
	},
	{
		Key: "midCap", Category: "Mid Cap", Avg1Y: 24.3, Avg3Y: 18.7, Avg5Y: 16.2, AvgPE: 28.5,
		TopFunds: []Fund{
			{Name: "Axis Midcap Fund", Return1Y: 25.1, Return3Y: 19.3, AUM: 15432, Expense: 0.67},
			{Name: "HDFC Mid-Cap Opportunities", Return1Y: 23.8, Return3Y: 18.1, AUM: 22198, Expense: 0.72},
		},
	},
	{
		Key: "smallCap", Category: "Small Cap", Avg1Y: 28.7, Avg3Y: 22.1, Avg5Y: 19.3, AvgPE: 35.2,
		TopFunds: []Fund{
			{Name: "Nippon India Small Cap Fund", Return1Y: 29.3, Return3Y: 22.8, AUM: 18765, Expense: 0.78},
			{Name: "SBI Small Cap Fund", Return1Y: 28.1, Return3Y: 21.4, AUM: 12345, Expense: 0.85},
		},
	},
	{
		Key: "elss", Category: "ELSS (Tax Saving)", Avg1Y: 20.3, Avg3Y: 15.7, Avg5Y: 13.9, AvgPE: 24.8,
		TopFunds: []Fund{
			{Name: "Axis Long Term Equity Fund", Return1Y: 21.2, Return3Y: 16.3, AUM: 28765, Expense: 0.82},
			{Name: "Parag Parikh Tax Saver Fund", Return1Y: 19.8, Return3Y: 15.1, AUM: 9876, Expense: 0.75},
		},
	},
}

var section80C = []TaxOption{
	{Name: "ELSS Mutual Funds", Returns: "12-15%", LockIn: "3 years", Risk: "High"},
	{Name: "PPF", Returns: "7.1%", LockIn: "15 years", Risk: "Low"},
	{Name: "Tax Saving FD", Returns: "6.5-7%", LockIn: "5 years", Risk: "Low"},
	{Name: "NPS", Returns: "10-12%", LockIn: "Till retirement", Risk: "Medium"},
}

// Stocks returns the simulated listings.
func Stocks() []Stock {
	out := make([]Stock, len(stocks))
	copy(out, stocks)
	return out
}

// FindStock looks a stock up by symbol (case-insensitive, optional .NS/.BO suffix)
// or by its lowercase display key.
func FindStock(query string) (Stock, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	q = strings.TrimSuffix(strings.TrimSuffix(q, ".ns"), ".bo")
	for _, s := range stocks {
		if q == strings.ToLower(s.Symbol) || q == s.Key {
			return s, true
		}
	}
	return Stock{}, false
}

// MentionedStock returns the first stock whose key or symbol occurs as a word in text.
func MentionedStock(text string) (Stock, bool) {
	lower := " " + strings.ToLower(text) + " "
	for _, s := range stocks {
		if strings.Contains(lower, s.Key) || strings.Contains(lower, " "+strings.ToLower(s.Symbol)+" ") {
			return s, true
		}
	}
	return Stock{}, false
}

// MarketOverview returns the market snapshot.
func MarketOverview() Overview {
	o := overview
	o.TopGainers = append([]Mover(nil), overview.TopGainers...)
	o.TopLosers = append([]Mover(nil), overview.TopLosers...)
	return o
}

// FundCategories returns the mutual fund categories in display order.
func FundCategories() []FundCategory {
	out := make([]FundCategory, len(fundCategories))
	copy(out, fundCategories)
	return out
}

// Section80COptions returns the 80C instruments.
func Section80COptions() []TaxOption {
	out := make([]TaxOption, len(section80C))
	copy(out, section80C)
	return out
}

// Prices returns symbol -> price for every simulated instrument, listings
// taking precedence over mover snapshots.
func Prices() map[string]float64 {
	prices := make(map[string]float64)
	for _, m := range overview.TopGainers {
		prices[m.Symbol] = m.Price
	}
	for _, m := range overview.TopLosers {
		prices[m.Symbol] = m.Price
	}
	for _, s := range stocks {
		prices[s.Symbol] = s.Price
	}
	return prices
}

// Symbols returns every priced symbol, sorted.
func Symbols() []string {
	prices := Prices()
	out := make([]string, 0, len(prices))
	for s := range prices {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
