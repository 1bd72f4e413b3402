package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niveshai/niveshai-backend/internal/api/request"
	"github.com/niveshai/niveshai-backend/internal/api/response"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/report"
	"github.com/niveshai/niveshai-backend/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio and investment endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolioService.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// InvestmentResponse is returned by investment mutations: the affected
// investment together with the revalued portfolio.
type InvestmentResponse struct {
	Investment model.Investment `json:"investment"`
	Portfolio  model.Portfolio  `json:"portfolio"`
}

// CreatePortfolio handles POST requests to create a new portfolio.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest (userId required; name, description, riskProfile, targetAllocation optional)
// Response: 201 Created with Portfolio
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreatePortfolio)
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// UserPortfolios handles GET requests to list the portfolios of one user.
//
// Endpoint: GET /api/portfolio/user/{ownerId}
// Response: 200 OK with array of Portfolio (empty array when the user has none)
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) UserPortfolios(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")

	portfolios, err := h.portfolioService.ListPortfolios(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolios)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET requests to retrieve a single portfolio with its investments.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with Portfolio
// Error: 400 Bad Request if the portfolio ID is invalid (validated by middleware)
// Error: 404 Not Found if the portfolio does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolio)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio handles DELETE requests to remove a portfolio and all of its investments.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the portfolio ID is invalid (validated by middleware)
// Error: 404 Not Found if the portfolio does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	if err := h.portfolioService.DeletePortfolio(r.Context(), portfolioID); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeletePortfolio)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// AddInvestment handles POST requests to add an investment to a portfolio.
// The portfolio aggregates are recomputed before the response is sent.
//
// Endpoint: POST /api/portfolio/{uuid}/investments
// Request Body: AddInvestmentRequest (type, quantity and averagePrice required)
// Response: 201 Created with InvestmentResponse
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 404 Not Found if the portfolio does not exist
// Error: 500 Internal Server Error if the update fails
func (h *PortfolioHandler) AddInvestment(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.AddInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investment, portfolio, err := h.portfolioService.AddInvestment(r.Context(), portfolioID, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToAddInvestment)
		return
	}

	response.RespondJSON(w, http.StatusCreated, InvestmentResponse{Investment: investment, Portfolio: portfolio})
}

// UpdateInvestment handles PUT requests to update an investment.
// Only the provided fields are changed.
//
// Endpoint: PUT /api/portfolio/{uuid}/investments/{investmentId}
// Request Body: UpdateInvestmentRequest (all fields optional, at least one required)
// Response: 200 OK with InvestmentResponse
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 404 Not Found if the portfolio or investment does not exist
// Error: 500 Internal Server Error if the update fails
func (h *PortfolioHandler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")
	investmentID := chi.URLParam(r, "investmentId")

	req, err := parseJSON[request.UpdateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	investment, portfolio, err := h.portfolioService.UpdateInvestment(r.Context(), portfolioID, investmentID, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateInvestment)
		return
	}

	response.RespondJSON(w, http.StatusOK, InvestmentResponse{Investment: investment, Portfolio: portfolio})
}

// RemoveInvestment handles DELETE requests to remove an investment from a portfolio.
//
// Endpoint: DELETE /api/portfolio/{uuid}/investments/{investmentId}
// Response: 200 OK with the updated Portfolio
// Error: 404 Not Found if the portfolio or investment does not exist
// Error: 500 Internal Server Error if the update fails
func (h *PortfolioHandler) RemoveInvestment(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")
	investmentID := chi.URLParam(r, "investmentId")

	portfolio, err := h.portfolioService.RemoveInvestment(r.Context(), portfolioID, investmentID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRemoveInvestment)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// RefreshPrices handles POST requests to refresh the current price of every
// investment with a symbol. Lookup failures do not fail the request; they are
// listed in the response and the affected investments keep their last price.
//
// Endpoint: POST /api/portfolio/{uuid}/refresh
// Response: 200 OK with PriceRefreshResponse
// Error: 404 Not Found if the portfolio does not exist
// Error: 500 Internal Server Error if the refreshed portfolio cannot be stored
func (h *PortfolioHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	result, err := h.portfolioService.RefreshPrices(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRefreshPrices)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Analysis handles GET requests for the composite portfolio analysis.
//
// Endpoint: GET /api/portfolio/{uuid}/analysis
// Query Parameters:
//   - format: "json" (default) or "markdown"
//
// Response: 200 OK with PortfolioAnalysis, or a text/markdown report
// Error: 400 Bad Request if the format is unknown
// Error: 404 Not Found if the portfolio does not exist
// Error: 500 Internal Server Error if the analysis fails
func (h *PortfolioHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	format, err := request.ParseFormat(r.URL.Query().Get("format"), request.FormatMarkdown)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid format", err.Error())
		return
	}

	analysis, err := h.portfolioService.GetAnalysis(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToAnalyzePortfolio)
		return
	}

	if format == request.FormatMarkdown {
		md, err := report.Analysis(analysis)
		if err != nil {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToAnalyzePortfolio.Error(), err.Error())
			return
		}
		response.RespondMarkdown(w, http.StatusOK, md)
		return
	}

	response.RespondJSON(w, http.StatusOK, analysis)
}
