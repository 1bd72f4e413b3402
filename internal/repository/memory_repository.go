package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/niveshai/niveshai-backend/internal/analytics"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/model"
)

// MemoryPortfolioRepository keeps portfolios in a map guarded by a RWMutex.
// Like the SQL store it only trusts stored inputs: derived fields are
// recomputed on every write.
type MemoryPortfolioRepository struct {
	mu         sync.RWMutex
	portfolios map[string]model.Portfolio
}

// NewMemoryPortfolioRepository creates an empty in-memory repository.
func NewMemoryPortfolioRepository() *MemoryPortfolioRepository {
	return &MemoryPortfolioRepository{
		portfolios: make(map[string]model.Portfolio),
	}
}

func (r *MemoryPortfolioRepository) Create(_ context.Context, p model.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.portfolios[p.ID]; exists {
		return fmt.Errorf("portfolio %s already exists", p.ID)
	}
	r.portfolios[p.ID] = stored(p)
	return nil
}

func (r *MemoryPortfolioRepository) Get(_ context.Context, portfolioID string) (model.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.portfolios[portfolioID]
	if !ok {
		return model.Portfolio{}, fmt.Errorf("%w: %s", apperrors.ErrPortfolioNotFound, portfolioID)
	}
	return p.Clone(), nil
}

func (r *MemoryPortfolioRepository) List(_ context.Context) ([]model.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	portfolios := make([]model.Portfolio, 0, len(r.portfolios))
	for _, p := range r.portfolios {
		portfolios = append(portfolios, p.Clone())
	}
	sortPortfolios(portfolios)
	return portfolios, nil
}

func (r *MemoryPortfolioRepository) ListByOwner(_ context.Context, ownerID string) ([]model.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	portfolios := []model.Portfolio{}
	for _, p := range r.portfolios {
		if p.OwnerID == ownerID {
			portfolios = append(portfolios, p.Clone())
		}
	}
	sortPortfolios(portfolios)
	return portfolios, nil
}

func (r *MemoryPortfolioRepository) Save(_ context.Context, p model.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.portfolios[p.ID]; !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrPortfolioNotFound, p.ID)
	}
	r.portfolios[p.ID] = stored(p)
	return nil
}

func (r *MemoryPortfolioRepository) Delete(_ context.Context, portfolioID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.portfolios[portfolioID]; !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrPortfolioNotFound, portfolioID)
	}
	delete(r.portfolios, portfolioID)
	return nil
}

// stored returns the copy of p kept in the map, with derived fields
// recomputed from quantities and prices.
func stored(p model.Portfolio) model.Portfolio {
	c := p.Clone()
	analytics.RecomputeAll(&c)
	return c
}

// sortPortfolios orders by creation time, then ID, so listings are stable.
func sortPortfolios(portfolios []model.Portfolio) {
	sort.Slice(portfolios, func(i, j int) bool {
		if !portfolios[i].CreatedAt.Equal(portfolios[j].CreatedAt) {
			return portfolios[i].CreatedAt.Before(portfolios[j].CreatedAt)
		}
		return portfolios[i].ID < portfolios[j].ID
	})
}
