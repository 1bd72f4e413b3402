package request

import "github.com/niveshai/niveshai-backend/internal/riskprofile"

// RiskProfileRequest is the request body for scoring the risk questionnaire.
// Radio answers are strings, checkbox answers are arrays of strings.
type RiskProfileRequest struct {
	Responses map[string]riskprofile.Answer `json:"responses"`
}

// ChatRequest is the request body for the chat advisor.
// PortfolioID optionally grounds portfolio questions in a stored portfolio.
type ChatRequest struct {
	Message     string `json:"message"`
	PortfolioID string `json:"portfolioId,omitempty"`
}
