package advisor_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/niveshai/niveshai-backend/internal/advisor"
	"github.com/niveshai/niveshai-backend/internal/api/request"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/repository"
	"github.com/niveshai/niveshai-backend/internal/testutil"
)

// TestClassify tests the ordered rule table.
//
// WHY: Precedence between overlapping intents is visible only through tests;
// a reordering of the table must show up here.
func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    advisor.Intent
	}{
		{"Tell me about TCS", advisor.IntentStockLookup},
		{"What is the share price of Reliance?", advisor.IntentStockLookup},
		{"tata motors outlook", advisor.IntentStockLookup},
		{"Which mutual funds are good for SIP?", advisor.IntentMutualFund},
		{"How is my portfolio doing?", advisor.IntentPortfolioAdvice},
		{"Should I rebalance my allocation?", advisor.IntentPortfolioAdvice},
		{"How can I save tax under 80C?", advisor.IntentTaxPlanning},
		{"What is my risk appetite?", advisor.IntentRiskProfiling},
		{"How is the market today? Nifty up?", advisor.IntentMarketOverview},
		{"Hello there", advisor.IntentGeneral},
		{"", advisor.IntentGeneral},
		// "fund" (2) vs "tax" (3) + "elss" (2): tax wins.
		{"Is an ELSS fund good for tax?", advisor.IntentTaxPlanning},
		// "stock" (2) vs "market" (2): tie goes to the earlier rule.
		{"stock market", advisor.IntentStockLookup},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := advisor.Classify(tt.message)
			if got.Intent != tt.want {
				t.Errorf("Classify(%q) = %s (score %d, matched %v), want %s",
					tt.message, got.Intent, got.Score, got.Matched, tt.want)
			}
		})
	}
}

// TestClassify_WholeWords tests that terms do not match inside other words.
func TestClassify_WholeWords(t *testing.T) {
	// "taxi" must not match "tax", "marketing" must not match "market".
	if got := advisor.Classify("taxi marketing"); got.Intent != advisor.IntentGeneral {
		t.Errorf("Expected general intent, got %s (%v)", got.Intent, got.Matched)
	}
}

// TestAdvisor_Answer tests rendered replies per intent.
func TestAdvisor_Answer(t *testing.T) {
	ctx := context.Background()
	a := advisor.New(nil)

	tests := []struct {
		message string
		intent  advisor.Intent
		want    []string
	}{
		{"Tell me about TCS", advisor.IntentStockLookup, []string{"## TCS (TCS)", "₹3,567.89", "**Outlook:**"}},
		{"share price of infosys", advisor.IntentStockLookup, []string{"I don't have data for that stock", "Reliance Industries"}},
		{"best mutual funds for sip", advisor.IntentMutualFund, []string{"### Large Cap", "Axis Bluechip Fund"}},
		{"how do I diversify my portfolio", advisor.IntentPortfolioAdvice, []string{"Building a balanced portfolio"}},
		{"save tax 80c", advisor.IntentTaxPlanning, []string{"₹150,000.00", "| PPF | 7.1% | 15 years | Low |"}},
		{"what is my risk profile", advisor.IntentRiskProfiling, []string{"10-question", "**Conservative Investor**", "equity 10.00%"}},
		{"nifty today", advisor.IntentMarketOverview, []string{"| NIFTY 50 | 19876.45 |", "RELIANCE +2.30%"}},
		{"hi", advisor.IntentGeneral, []string{"NiveshAI"}},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			ans, err := a.Answer(ctx, request.ChatRequest{Message: tt.message}, false)
			if err != nil {
				t.Fatalf("Answer() returned unexpected error: %v", err)
			}
			if ans.Intent != tt.intent {
				t.Errorf("Expected intent %s, got %s", tt.intent, ans.Intent)
			}
			for _, want := range tt.want {
				if !strings.Contains(ans.Response, want) {
					t.Errorf("Expected response to contain %q\n%s", want, ans.Response)
				}
			}
			if !strings.HasSuffix(ans.Response, advisor.Disclaimer) {
				t.Error("Expected disclaimer at the end of the response")
			}
			if ans.HTML != "" {
				t.Error("Did not expect HTML without request")
			}
		})
	}
}

// TestAdvisor_PortfolioReply tests replies that use a stored portfolio.
func TestAdvisor_PortfolioReply(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryPortfolioRepository()
	svc := testutil.NewTestPortfolioService(t, repo, nil)
	p := testutil.NewPortfolio().
		WithName("Growth").
		WithInvestment(testutil.NewInvestment("A").WithCurrentPrice(150).Build()).
		Build(t, repo)

	a := advisor.New(svc)

	ans, err := a.Answer(ctx, request.ChatRequest{Message: "review my portfolio", PortfolioID: p.ID}, true)
	if err != nil {
		t.Fatalf("Answer() returned unexpected error: %v", err)
	}
	if !strings.Contains(ans.Response, "## Your portfolio: Growth") || !strings.Contains(ans.Response, "₹1,500.00") {
		t.Errorf("Unexpected portfolio reply\n%s", ans.Response)
	}
	if !strings.Contains(ans.HTML, "<h2>Your portfolio: Growth</h2>") {
		t.Errorf("Expected rendered HTML heading, got\n%s", ans.HTML)
	}

	_, err = a.Answer(ctx, request.ChatRequest{Message: "review my portfolio", PortfolioID: testutil.MakeID()}, false)
	if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
		t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
	}
}

// TestAdvisor_HTML tests markdown to HTML conversion including tables.
func TestAdvisor_HTML(t *testing.T) {
	a := advisor.New(nil)
	html, err := a.HTML("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("HTML() returned unexpected error: %v", err)
	}
	for _, want := range []string{"<h1>Title</h1>", "<table>", "<td>1</td>"} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected HTML to contain %q, got\n%s", want, html)
		}
	}
}
