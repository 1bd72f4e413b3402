package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/niveshai/niveshai-backend/internal/advisor"
	"github.com/niveshai/niveshai-backend/internal/api/handlers"
	custommiddleware "github.com/niveshai/niveshai-backend/internal/api/middleware"
	"github.com/niveshai/niveshai-backend/internal/config"
	"github.com/niveshai/niveshai-backend/internal/service"
	"github.com/niveshai/niveshai-backend/internal/stream"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	portfolioService *service.PortfolioService,
	chatAdvisor *advisor.Advisor,
	hub *stream.Hub,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	advisorHandler := handlers.NewAdvisorHandler(chatAdvisor)
	marketHandler := handlers.NewMarketHandler()
	systemHandler := handlers.NewSystemHandler(systemService, portfolioService)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.With(custommiddleware.APIKeyMiddleware(cfg.Auth.InternalAPIKey)).Post("/refresh", systemHandler.RefreshAll)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Get("/user/{ownerId}", portfolioHandler.UserPortfolios)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Post("/investments", portfolioHandler.AddInvestment)
				r.Put("/investments/{investmentId}", portfolioHandler.UpdateInvestment)
				r.Delete("/investments/{investmentId}", portfolioHandler.RemoveInvestment)
				r.Post("/refresh", portfolioHandler.RefreshPrices)
				r.Get("/analysis", portfolioHandler.Analysis)
			})
		})

		r.Route("/risk-profile", func(r chi.Router) {
			r.Get("/questions", advisorHandler.RiskQuestions)
			r.Post("/", advisorHandler.ScoreRiskProfile)
		})

		r.Post("/chat", advisorHandler.Chat)

		r.Get("/market/overview", marketHandler.Overview)
		r.Get("/stock/{symbol}", marketHandler.Stock)

		if hub != nil {
			r.Get("/ws", hub.ServeHTTP)
		}
	})

	return r
}
