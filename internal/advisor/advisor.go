// Package advisor answers free-text investment questions. Messages are
// classified with an ordered keyword rule table and answered from the
// simulated market tables or, for portfolio questions, from a live analysis.
package advisor

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/niveshai/niveshai-backend/internal/api/request"
	"github.com/niveshai/niveshai-backend/internal/marketdata"
	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/riskprofile"
)

// PortfolioAnalyzer returns the analysis of a stored portfolio.
type PortfolioAnalyzer interface {
	GetAnalysis(ctx context.Context, portfolioID string) (model.PortfolioAnalysis, error)
}

// Answer is the response to one chat message.
type Answer struct {
	Intent    Intent    `json:"intent"`
	Response  string    `json:"response"`
	HTML      string    `json:"html,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Advisor classifies messages and renders replies.
type Advisor struct {
	portfolios PortfolioAnalyzer
	markdown   goldmark.Markdown
	now        func() time.Time
}

// New creates an Advisor. portfolios may be nil, in which case portfolio
// questions get general guidance.
func New(portfolios PortfolioAnalyzer) *Advisor {
	return &Advisor{
		portfolios: portfolios,
		markdown:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Reply classifies req.Message and builds the matching reply.
// Callers validate req first.
func (a *Advisor) Reply(ctx context.Context, req request.ChatRequest) (Reply, error) {
	c := Classify(req.Message)

	switch c.Intent {
	case IntentStockLookup:
		if s, ok := marketdata.MentionedStock(normalize(req.Message)); ok {
			return StockReply{Stock: s}, nil
		}
		return UnknownStockReply{Known: marketdata.Stocks()}, nil
	case IntentMutualFund:
		return FundReply{Categories: marketdata.FundCategories()}, nil
	case IntentPortfolioAdvice:
		if req.PortfolioID == "" || a.portfolios == nil {
			return PortfolioTipsReply{}, nil
		}
		analysis, err := a.portfolios.GetAnalysis(ctx, req.PortfolioID)
		if err != nil {
			return nil, err
		}
		return PortfolioReply{Analysis: analysis}, nil
	case IntentTaxPlanning:
		return TaxReply{Limit: marketdata.Section80CLimit, Options: marketdata.Section80COptions()}, nil
	case IntentRiskProfiling:
		return RiskReply{QuestionCount: len(riskprofile.Questions()), Profiles: riskprofile.Profiles()}, nil
	case IntentMarketOverview:
		return MarketReply{Overview: marketdata.MarketOverview()}, nil
	default:
		return GeneralReply{}, nil
	}
}

// Answer replies to req as markdown, and additionally as HTML when withHTML is set.
func (a *Advisor) Answer(ctx context.Context, req request.ChatRequest, withHTML bool) (Answer, error) {
	reply, err := a.Reply(ctx, req)
	if err != nil {
		return Answer{}, err
	}

	md, err := Markdown(reply)
	if err != nil {
		return Answer{}, err
	}
	log.Printf("advisor: answered %s question (%d chars)", reply.Intent(), len(md))

	answer := Answer{
		Intent:    reply.Intent(),
		Response:  md,
		Timestamp: a.now(),
	}
	if withHTML {
		html, err := a.HTML(md)
		if err != nil {
			return Answer{}, err
		}
		answer.HTML = html
	}
	return answer, nil
}

// HTML converts markdown to HTML.
func (a *Advisor) HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := a.markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
