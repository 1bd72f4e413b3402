// Package repository provides storage for portfolios and their investments.
//
// Two implementations satisfy Store: MemoryPortfolioRepository,
// a process-local map used by default and in tests, and PortfolioRepository,
// backed by database/sql (SQLite or PostgreSQL).
package repository

import (
	"context"

	"github.com/niveshai/niveshai-backend/internal/model"
)

// Store is the storage contract used by the service layer.
// Implementations return deep copies: mutating a returned portfolio has no
// effect until it is passed back to Save.
type Store interface {
	// Create stores a new portfolio together with its investments.
	Create(ctx context.Context, p model.Portfolio) error
	// Get returns the portfolio with the given ID or apperrors.ErrPortfolioNotFound.
	Get(ctx context.Context, portfolioID string) (model.Portfolio, error)
	// List returns every stored portfolio.
	List(ctx context.Context) ([]model.Portfolio, error)
	// ListByOwner returns the portfolios attributed to ownerID, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Portfolio, error)
	// Save replaces the stored portfolio, including its full set of investments.
	Save(ctx context.Context, p model.Portfolio) error
	// Delete removes the portfolio and all of its investments.
	Delete(ctx context.Context, portfolioID string) error
}
