package handlers

import (
	"context"
	"net/http"

	"github.com/niveshai/niveshai-backend/internal/api/response"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/service"
)

// BulkRefresher refreshes every stored portfolio.
type BulkRefresher interface {
	RefreshAll(ctx context.Context) (model.BulkRefreshResponse, error)
}

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
	refresher     BulkRefresher
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, refresher BulkRefresher) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
		refresher:     refresher,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and storage connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.CheckHealth(r.Context()); err != nil {
		resp := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		response.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	response.RespondJSON(w, http.StatusOK, resp)
}

// Version handles GET requests to retrieve version information and feature availability.
// Returns the application version, storage driver, schema version, price provider and features.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with model.VersionInfo
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	info, err := h.systemService.GetVersionInfo(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetVersionInfo.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, info)
}

// RefreshAll handles POST requests to refresh the prices of every portfolio now.
// Protected by the API key middleware.
//
// Endpoint: POST /api/system/refresh
// Response: 200 OK with BulkRefreshResponse
// Error: 500 Internal Server Error if the portfolios cannot be listed
func (h *SystemHandler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.refresher.RefreshAll(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshAllPortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
