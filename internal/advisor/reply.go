package advisor

import (
	"github.com/niveshai/niveshai-backend/internal/marketdata"
	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/report"
	"github.com/niveshai/niveshai-backend/internal/riskprofile"
)

// Disclaimer is appended to every rendered reply.
const Disclaimer = "\n\n---\n⚠️ **Disclaimer:** This is for educational purposes only and not SEBI-registered investment advice. " +
	"Please consult a licensed financial advisor before investing."

// Reply is one of the reply kinds below. Each kind carries exactly the data
// its template needs.
type Reply interface {
	Intent() Intent
	template() string
}

// StockReply describes a known stock.
type StockReply struct {
	Stock marketdata.Stock
}

// UnknownStockReply lists the stocks that can be looked up.
type UnknownStockReply struct {
	Known []marketdata.Stock
}

// FundReply lists mutual fund categories.
type FundReply struct {
	Categories []marketdata.FundCategory
}

// PortfolioReply reviews one analysed portfolio.
type PortfolioReply struct {
	Analysis model.PortfolioAnalysis
}

// PortfolioTipsReply gives general portfolio guidance when no portfolio is referenced.
type PortfolioTipsReply struct{}

// TaxReply lists the Section 80C options.
type TaxReply struct {
	Limit   float64
	Options []marketdata.TaxOption
}

// RiskReply explains the risk profiles.
type RiskReply struct {
	QuestionCount int
	Profiles      []riskprofile.Profile
}

// MarketReply summarises the market snapshot.
type MarketReply struct {
	Overview marketdata.Overview
}

// GeneralReply introduces the assistant.
type GeneralReply struct{}

func (StockReply) Intent() Intent         { return IntentStockLookup }
func (UnknownStockReply) Intent() Intent  { return IntentStockLookup }
func (FundReply) Intent() Intent          { return IntentMutualFund }
func (PortfolioReply) Intent() Intent     { return IntentPortfolioAdvice }
func (PortfolioTipsReply) Intent() Intent { return IntentPortfolioAdvice }
func (TaxReply) Intent() Intent           { return IntentTaxPlanning }
func (RiskReply) Intent() Intent          { return IntentRiskProfiling }
func (MarketReply) Intent() Intent        { return IntentMarketOverview }
func (GeneralReply) Intent() Intent       { return IntentGeneral }

func (StockReply) template() string         { return "chat_stock.md" }
func (UnknownStockReply) template() string  { return "chat_stock_unknown.md" }
func (FundReply) template() string          { return "chat_funds.md" }
func (PortfolioReply) template() string     { return "chat_portfolio.md" }
func (PortfolioTipsReply) template() string { return "chat_portfolio_tips.md" }
func (TaxReply) template() string           { return "chat_tax.md" }
func (RiskReply) template() string          { return "chat_risk.md" }
func (MarketReply) template() string        { return "chat_market.md" }
func (GeneralReply) template() string       { return "chat_general.md" }

// Markdown renders r with the disclaimer appended.
func Markdown(r Reply) (string, error) {
	var data any = r
	switch v := r.(type) {
	case PortfolioReply:
		data = v.Analysis
	case MarketReply:
		data = v.Overview
	}

	body, err := report.Render(r.template(), data)
	if err != nil {
		return "", err
	}
	return body + Disclaimer, nil
}
