package handlers

import (
	"net/http"

	"github.com/niveshai/niveshai-backend/internal/advisor"
	"github.com/niveshai/niveshai-backend/internal/api/request"
	"github.com/niveshai/niveshai-backend/internal/api/response"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/riskprofile"
	"github.com/niveshai/niveshai-backend/internal/validation"
)

// AdvisorHandler serves the risk questionnaire and the chat advisor.
type AdvisorHandler struct {
	advisor *advisor.Advisor
}

// NewAdvisorHandler creates a new AdvisorHandler.
func NewAdvisorHandler(a *advisor.Advisor) *AdvisorHandler {
	return &AdvisorHandler{advisor: a}
}

// RiskQuestionsResponse wraps the questionnaire.
type RiskQuestionsResponse struct {
	Questions []riskprofile.Question `json:"questions"`
}

// RiskQuestions handles GET requests for the risk-profile questionnaire.
//
// Endpoint: GET /api/risk-profile/questions
// Response: 200 OK with RiskQuestionsResponse
func (h *AdvisorHandler) RiskQuestions(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, RiskQuestionsResponse{Questions: riskprofile.Questions()})
}

// ScoreRiskProfile handles POST requests scoring a completed questionnaire.
//
// Endpoint: POST /api/risk-profile
// Request Body: RiskProfileRequest (responses keyed by question id)
// Response: 200 OK with Assessment (score, profile, recommendations)
// Error: 400 Bad Request if the body is invalid or a required question is unanswered
func (h *AdvisorHandler) ScoreRiskProfile(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RiskProfileRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRiskProfile(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToScoreRiskProfile)
		return
	}

	response.RespondJSON(w, http.StatusOK, riskprofile.Assess(req.Responses))
}

// Chat handles POST requests to the chat advisor.
//
// Endpoint: POST /api/chat
// Query Parameters:
//   - format: "json" (default) or "html" to include the reply rendered as HTML
//
// Request Body: ChatRequest (message required, portfolioId optional)
// Response: 200 OK with advisor.Answer
// Error: 400 Bad Request if the body is invalid or the message is missing
// Error: 404 Not Found if portfolioId names a portfolio that does not exist
// Error: 500 Internal Server Error if the reply cannot be rendered
func (h *AdvisorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	format, err := request.ParseFormat(r.URL.Query().Get("format"), request.FormatHTML)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid format", err.Error())
		return
	}

	req, err := parseJSON[request.ChatRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateChat(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToAnswerChatMessage)
		return
	}

	answer, err := h.advisor.Answer(r.Context(), req, format == request.FormatHTML)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToAnswerChatMessage)
		return
	}

	response.RespondJSON(w, http.StatusOK, answer)
}
