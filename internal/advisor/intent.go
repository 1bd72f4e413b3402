package advisor

import (
	"strings"
	"unicode"

	"github.com/niveshai/niveshai-backend/internal/marketdata"
)

// Intent is the category a chat message is classified into.
type Intent string

// Intents, in rule-table order.
const (
	IntentStockLookup     Intent = "stock_lookup"
	IntentMutualFund      Intent = "mutual_fund"
	IntentPortfolioAdvice Intent = "portfolio_advice"
	IntentTaxPlanning     Intent = "tax_planning"
	IntentRiskProfiling   Intent = "risk_profiling"
	IntentMarketOverview  Intent = "market_overview"
	IntentGeneral         Intent = "general"
)

// stockMentionWeight is added to stock_lookup when a known stock is named.
const stockMentionWeight = 3

type keyword struct {
	term   string
	weight int
}

type rule struct {
	intent   Intent
	keywords []keyword
}

// rules is evaluated top to bottom. The highest total weight wins; on a tie
// the earlier rule wins. Multi-word terms match as phrases, single words
// match whole words only.
var rules = []rule{
	{IntentStockLookup, []keyword{
		{"stock", 2}, {"share", 2}, {"shares", 2}, {"price", 1}, {"quote", 2},
		{"p/e", 1}, {"valuation", 1}, {"dividend yield", 1}, {"nse", 1}, {"bse", 1},
	}},
	{IntentMutualFund, []keyword{
		{"mutual fund", 3}, {"mutual funds", 3}, {"fund", 2}, {"funds", 2}, {"sip", 3},
		{"nav", 2}, {"large cap", 2}, {"mid cap", 2}, {"small cap", 2}, {"expense ratio", 2},
	}},
	{IntentPortfolioAdvice, []keyword{
		{"portfolio", 3}, {"my investments", 3}, {"holdings", 2}, {"rebalance", 2},
		{"allocation", 2}, {"diversify", 2}, {"diversification", 2},
	}},
	{IntentTaxPlanning, []keyword{
		{"tax", 3}, {"80c", 3}, {"elss", 2}, {"ppf", 2}, {"nps", 2},
		{"deduction", 2}, {"save tax", 2}, {"capital gains", 2},
	}},
	{IntentRiskProfiling, []keyword{
		{"risk", 2}, {"risk profile", 3}, {"risk appetite", 3}, {"risk tolerance", 3},
		{"conservative", 2}, {"aggressive", 2}, {"questionnaire", 2},
	}},
	{IntentMarketOverview, []keyword{
		{"market", 2}, {"nifty", 3}, {"sensex", 3}, {"index", 2}, {"indices", 2},
		{"today", 1}, {"gainers", 2}, {"losers", 2}, {"vix", 2},
	}},
}

// Classification is the outcome of classifying one message.
type Classification struct {
	Intent  Intent   `json:"intent"`
	Score   int      `json:"score"`
	Matched []string `json:"matched,omitempty"`
}

// Classify scores message against every rule and returns the winner, or
// IntentGeneral when nothing matches.
func Classify(message string) Classification {
	text := normalize(message)

	best := Classification{Intent: IntentGeneral}
	for _, r := range rules {
		c := Classification{Intent: r.intent}
		for _, k := range r.keywords {
			if strings.Contains(text, " "+k.term+" ") {
				c.Score += k.weight
				c.Matched = append(c.Matched, k.term)
			}
		}
		if r.intent == IntentStockLookup {
			if s, ok := marketdata.MentionedStock(text); ok {
				c.Score += stockMentionWeight
				c.Matched = append(c.Matched, strings.ToLower(s.Symbol))
			}
		}
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}

// normalize lower-cases text, turns punctuation other than '/' into spaces
// and pads it with a space on each side so that terms match whole words.
func normalize(text string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '/':
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, text)
	return " " + strings.Join(strings.Fields(mapped), " ") + " "
}
