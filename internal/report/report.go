// Package report renders portfolio analyses and advisor replies as markdown.
package report

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/niveshai/niveshai-backend/internal/model"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"inr":     INR,
	"pct":     Percent,
	"signed":  SignedPercent,
	"num":     Number,
	"upper":   strings.ToUpper,
	"join":    strings.Join,
	"inc":     func(i int) int { return i + 1 },
	"orDash":  orDash,
	"display": displayPerformer,
}

var analysisTemplate = template.Must(
	template.New("analysis.md").Funcs(funcs).ParseFS(templates, "templates/analysis.md"),
)

// Analysis renders a portfolio analysis as a markdown report.
func Analysis(a model.PortfolioAnalysis) (string, error) {
	var b strings.Builder
	if err := analysisTemplate.Execute(&b, a); err != nil {
		return "", fmt.Errorf("failed to render analysis report: %w", err)
	}
	return b.String(), nil
}

// Portfolios renders a portfolio list as a markdown table.
func Portfolios(portfolios []model.Portfolio) (string, error) {
	return Render("portfolios.md", portfolios)
}

// Refresh renders the outcome of a price refresh.
func Refresh(r model.PriceRefreshResponse) (string, error) {
	return Render("refresh.md", r)
}

// Render executes one of the embedded templates with data. Templates can use
// the same helper functions as the analysis report.
func Render(name string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(funcs).ParseFS(templates, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", name, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return b.String(), nil
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func displayPerformer(p *model.Performer) string {
	if p == nil {
		return "-"
	}
	name := p.Name
	if p.Symbol != "" && p.Symbol != p.Name {
		name = fmt.Sprintf("%s (%s)", p.Name, p.Symbol)
	}
	return fmt.Sprintf("%s %s", name, SignedPercent(p.ReturnPercentage))
}
