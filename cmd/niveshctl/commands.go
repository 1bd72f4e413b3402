package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/niveshai/niveshai-backend/internal/advisor"
	"github.com/niveshai/niveshai-backend/internal/api/handlers"
	"github.com/niveshai/niveshai-backend/internal/api/request"
	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/report"
)

func apiClient() *client {
	return newClient(*serverURL, *apiKey)
}

// portfoliosCmd lists the portfolios of a user.
type portfoliosCmd struct {
	owner string
}

func (*portfoliosCmd) Name() string     { return "portfolios" }
func (*portfoliosCmd) Synopsis() string { return "list the portfolios of a user" }
func (*portfoliosCmd) Usage() string {
	return `niveshctl portfolios -owner <user id>

  Lists every portfolio of the user with its value and return.
`
}

func (c *portfoliosCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "user id owning the portfolios")
}

func (c *portfoliosCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.owner == "" {
		fmt.Fprintln(os.Stderr, "Error: -owner is required")
		return subcommands.ExitUsageError
	}

	var portfolios []model.Portfolio
	if err := apiClient().getJSON(ctx, "/api/portfolio/user/"+escape(c.owner), &portfolios); err != nil {
		fmt.Fprintf(os.Stderr, "Error listing portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	md, err := report.Portfolios(portfolios)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering portfolios: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// analysisCmd shows the analysis report of a portfolio.
type analysisCmd struct {
	id  string
	raw bool
}

func (*analysisCmd) Name() string     { return "analysis" }
func (*analysisCmd) Synopsis() string { return "show the analysis of a portfolio" }
func (*analysisCmd) Usage() string {
	return `niveshctl analysis -id <portfolio id> [-raw]

  Shows allocation, performance, risk and recommendations of a portfolio.
  With -raw the analysis is printed as JSON.
`
}

func (c *analysisCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "portfolio id")
	f.BoolVar(&c.raw, "raw", false, "print the analysis as JSON")
}

func (c *analysisCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	path := "/api/portfolio/" + escape(c.id) + "/analysis"
	if c.raw {
		path += "?format=" + request.FormatJSON
	} else {
		path += "?format=" + request.FormatMarkdown
	}

	body, err := apiClient().getText(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching analysis: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.raw {
		fmt.Fprint(stdout, body)
		return subcommands.ExitSuccess
	}
	printMarkdown(body)
	return subcommands.ExitSuccess
}

// refreshCmd refreshes the prices of one portfolio.
type refreshCmd struct {
	id string
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "refresh the prices of a portfolio" }
func (*refreshCmd) Usage() string {
	return `niveshctl refresh -id <portfolio id>

  Looks up the latest price of every investment with a symbol and revalues
  the portfolio. Failed lookups keep the last known price.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "portfolio id")
}

func (c *refreshCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	var result model.PriceRefreshResponse
	if err := apiClient().postJSON(ctx, "/api/portfolio/"+escape(c.id)+"/refresh", nil, &result, false); err != nil {
		fmt.Fprintf(os.Stderr, "Error refreshing prices: %v\n", err)
		return subcommands.ExitFailure
	}

	md, err := report.Refresh(result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering refresh: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	if !result.Success {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// refreshAllCmd refreshes every portfolio through the internal endpoint.
type refreshAllCmd struct{}

func (*refreshAllCmd) Name() string     { return "refresh-all" }
func (*refreshAllCmd) Synopsis() string { return "refresh the prices of every portfolio" }
func (*refreshAllCmd) Usage() string {
	return `niveshctl [-api-key <key>] refresh-all

  Refreshes every stored portfolio. Requires the server's INTERNAL_API_KEY.
`
}

func (*refreshAllCmd) SetFlags(*flag.FlagSet) {}

func (*refreshAllCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var result model.BulkRefreshResponse
	if err := apiClient().postJSON(ctx, "/api/system/refresh", nil, &result, true); err != nil {
		fmt.Fprintf(os.Stderr, "Error refreshing portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Bulk refresh\n\n%d portfolios, %d prices updated, %d lookups failed.\n",
		result.TotalPortfolios, result.TotalUpdated, result.TotalErrors)
	for _, e := range result.Errors {
		fmt.Fprintf(&b, "\n- `%s`: %s", e.PortfolioID, e.Error)
	}
	printMarkdown(b.String())

	if !result.Success {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// riskQuestionsCmd prints the risk questionnaire.
type riskQuestionsCmd struct{}

func (*riskQuestionsCmd) Name() string     { return "risk-questions" }
func (*riskQuestionsCmd) Synopsis() string { return "print the risk profile questionnaire" }
func (*riskQuestionsCmd) Usage() string {
	return `niveshctl risk-questions

  Prints the questions and answer values accepted by POST /api/risk-profile.
`
}

func (*riskQuestionsCmd) SetFlags(*flag.FlagSet) {}

func (*riskQuestionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var resp handlers.RiskQuestionsResponse
	if err := apiClient().getJSON(ctx, "/api/risk-profile/questions", &resp); err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching questions: %v\n", err)
		return subcommands.ExitFailure
	}

	md, err := report.Render("risk_questions.md", resp.Questions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering questions: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// askCmd sends a message to the chat advisor.
type askCmd struct {
	portfolio string
}

func (*askCmd) Name() string     { return "ask" }
func (*askCmd) Synopsis() string { return "ask the investment advisor a question" }
func (*askCmd) Usage() string {
	return `niveshctl ask [-portfolio <portfolio id>] <message>

  Sends the message to the chat advisor. With -portfolio, portfolio questions
  are answered from that portfolio's analysis.
`
}

func (c *askCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "portfolio", "", "portfolio id to ground portfolio questions")
}

func (c *askCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	message := strings.TrimSpace(strings.Join(f.Args(), " "))
	if message == "" {
		fmt.Fprintln(os.Stderr, "Error: a message is required")
		return subcommands.ExitUsageError
	}

	req := request.ChatRequest{Message: message, PortfolioID: c.portfolio}
	var answer advisor.Answer
	if err := apiClient().postJSON(ctx, "/api/chat", req, &answer, false); err != nil {
		fmt.Fprintf(os.Stderr, "Error asking advisor: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(answer.Response)
	return subcommands.ExitSuccess
}
