package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/niveshai/niveshai-backend/internal/api/response"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/marketdata"
)

// MarketHandler serves the simulated market data.
type MarketHandler struct{}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler() *MarketHandler {
	return &MarketHandler{}
}

// Overview handles GET requests for the market snapshot.
//
// Endpoint: GET /api/market/overview
// Response: 200 OK with marketdata.Overview
func (h *MarketHandler) Overview(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, marketdata.MarketOverview())
}

// Stock handles GET requests for a single stock quote.
// The symbol is case-insensitive and may carry a .NS or .BO suffix.
//
// Endpoint: GET /api/stock/{symbol}
// Response: 200 OK with marketdata.Stock
// Error: 404 Not Found if the symbol is unknown
func (h *MarketHandler) Stock(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	stock, ok := marketdata.FindStock(symbol)
	if !ok {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrSymbolNotFound.Error(), symbol)
		return
	}

	response.RespondJSON(w, http.StatusOK, stock)
}
