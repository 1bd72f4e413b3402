package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/niveshai/niveshai-backend/internal/analytics"
	"github.com/niveshai/niveshai-backend/internal/api/request"
	"github.com/niveshai/niveshai-backend/internal/apperrors"
	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/pricing"
	"github.com/niveshai/niveshai-backend/internal/repository"
	"github.com/niveshai/niveshai-backend/internal/riskprofile"
	"github.com/niveshai/niveshai-backend/internal/validation"
)

// DefaultLookupConcurrency bounds the number of in-flight price lookups per refresh.
const DefaultLookupConcurrency = 8

// Publisher receives an update after every successful mutation or refresh.
type Publisher interface {
	Publish(update model.PortfolioUpdate)
}

// PortfolioService handles portfolio-related business logic operations.
// It owns every mutation of a portfolio and its investments: requests are
// validated first, then applied under the portfolio's write lock, derived
// fields are recomputed and the result is saved in one step.
type PortfolioService struct {
	repo        repository.Store
	prices      pricing.Lookup
	locks       *PortfolioLocks
	thresholds  analytics.Thresholds
	concurrency int
	publisher   Publisher
	now         func() time.Time
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	repo repository.Store,
	prices pricing.Lookup,
	thresholds analytics.Thresholds,
) *PortfolioService {
	return &PortfolioService{
		repo:        repo,
		prices:      prices,
		locks:       NewPortfolioLocks(),
		thresholds:  thresholds,
		concurrency: DefaultLookupConcurrency,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithPublisher sets the receiver of portfolio updates.
func (s *PortfolioService) WithPublisher(p Publisher) *PortfolioService {
	s.publisher = p
	return s
}

// WithConcurrency sets the maximum number of concurrent price lookups.
func (s *PortfolioService) WithConcurrency(n int) *PortfolioService {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// WithClock replaces the time source. Used by tests.
func (s *PortfolioService) WithClock(now func() time.Time) *PortfolioService {
	s.now = now
	return s
}

// WithLocks replaces the per-portfolio lock set. Used by tests.
func (s *PortfolioService) WithLocks(l *PortfolioLocks) *PortfolioService {
	s.locks = l
	return s
}

// Thresholds returns the analytics thresholds in use.
func (s *PortfolioService) Thresholds() analytics.Thresholds {
	return s.thresholds
}

// CreatePortfolio validates req and stores a new, empty portfolio.
//
// Defaults: name "My Portfolio", risk profile "moderate", and the model
// allocation of the risk profile as target allocation when none is given.
// Asset-class keys of the target allocation are lower-cased.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (model.Portfolio, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	req.Name = strings.TrimSpace(req.Name)
	req.RiskProfile = strings.ToLower(strings.TrimSpace(req.RiskProfile))
	req.TargetAllocation = normalizeAllocation(req.TargetAllocation)

	if err := validation.ValidateCreatePortfolio(req, s.thresholds.AllocationTolerance); err != nil {
		return model.Portfolio{}, err
	}

	if req.Name == "" {
		req.Name = model.DefaultPortfolioName
	}
	if req.RiskProfile == "" {
		req.RiskProfile = model.DefaultRiskProfile
	}
	if req.TargetAllocation == nil {
		req.TargetAllocation = riskprofile.ModelAllocation(req.RiskProfile)
	}

	now := s.now()
	p := model.Portfolio{
		ID:               uuid.New().String(),
		OwnerID:          req.UserID,
		Name:             req.Name,
		Description:      strings.TrimSpace(req.Description),
		RiskProfile:      req.RiskProfile,
		TargetAllocation: req.TargetAllocation,
		Investments:      []model.Investment{},
		CreatedAt:        now,
	}
	analytics.RecomputePortfolio(&p, now)

	if err := s.repo.Create(ctx, p); err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to store portfolio: %w", err)
	}

	log.Printf("created portfolio %s for user %s", p.ID, p.OwnerID)
	s.publish(model.UpdateCreated, &p)
	return p, nil
}

// GetPortfolio returns the portfolio with the given ID.
func (s *PortfolioService) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	unlock := s.locks.RLock(portfolioID)
	defer unlock()

	return s.repo.Get(ctx, portfolioID)
}

// ListPortfolios returns every portfolio owned by ownerID, oldest first.
func (s *PortfolioService) ListPortfolios(ctx context.Context, ownerID string) ([]model.Portfolio, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: userId", apperrors.ErrMissingRequiredField)
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// DeletePortfolio removes the portfolio together with all of its investments.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	unlock := s.locks.Lock(portfolioID)
	defer unlock()

	p, err := s.repo.Get(ctx, portfolioID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, portfolioID); err != nil {
		return err
	}

	log.Printf("deleted portfolio %s with %d investments", portfolioID, len(p.Investments))
	s.publish(model.UpdateDeleted, &model.Portfolio{ID: p.ID, OwnerID: p.OwnerID})
	return nil
}

// AddInvestment validates req and appends a new investment to the portfolio.
// The current price defaults to the average price.
// Returns the new investment and the updated portfolio.
func (s *PortfolioService) AddInvestment(ctx context.Context, portfolioID string, req request.AddInvestmentRequest) (model.Investment, model.Portfolio, error) {
	if err := validation.ValidateAddInvestment(req); err != nil {
		return model.Investment{}, model.Portfolio{}, err
	}

	var purchaseDate *time.Time
	if req.PurchaseDate != "" {
		d, _ := validation.ParseDate(req.PurchaseDate)
		d = d.UTC()
		purchaseDate = &d
	}

	var added model.Investment
	p, err := s.mutate(ctx, portfolioID, func(p *model.Portfolio, now time.Time) error {
		inv := model.Investment{
			ID:           uuid.New().String(),
			Kind:         strings.ToLower(strings.TrimSpace(req.Type)),
			Symbol:       strings.ToUpper(strings.TrimSpace(req.Symbol)),
			Name:         strings.TrimSpace(req.Name),
			Sector:       strings.TrimSpace(req.Sector),
			MarketCap:    strings.TrimSpace(req.MarketCap),
			ISIN:         strings.ToUpper(strings.TrimSpace(req.ISIN)),
			Quantity:     *req.Quantity,
			AverageCost:  *req.AveragePrice,
			CurrentPrice: *req.AveragePrice,
			PurchaseDate: purchaseDate,
			CreatedAt:    now,
		}
		if inv.Name == "" {
			inv.Name = inv.Symbol
		}
		if req.CurrentPrice != nil {
			inv.CurrentPrice = *req.CurrentPrice
		}
		analytics.RecomputeInvestment(&inv, now)

		p.Investments = append(p.Investments, inv)
		added = inv
		return nil
	})
	if err != nil {
		return model.Investment{}, model.Portfolio{}, err
	}
	return added, p, nil
}

// UpdateInvestment applies the provided fields of req to one investment.
// Returns the updated investment and portfolio.
func (s *PortfolioService) UpdateInvestment(ctx context.Context, portfolioID, investmentID string, req request.UpdateInvestmentRequest) (model.Investment, model.Portfolio, error) {
	if err := validation.ValidateUpdateInvestment(req); err != nil {
		return model.Investment{}, model.Portfolio{}, err
	}

	var updated model.Investment
	p, err := s.mutate(ctx, portfolioID, func(p *model.Portfolio, now time.Time) error {
		idx := p.FindInvestment(investmentID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", apperrors.ErrInvestmentNotFound, investmentID)
		}
		inv := &p.Investments[idx]
		applyUpdate(inv, model.InvestmentPatch{
			Quantity:     req.Quantity,
			CurrentPrice: req.CurrentPrice,
			AverageCost:  req.AveragePrice,
			Sector:       req.Sector,
			Name:         req.Name,
		})
		// The patch is only valid together with the stored fields it leaves alone.
		if err := validation.ValidateHolding(inv.Quantity, inv.AverageCost, inv.CurrentPrice); err != nil {
			return err
		}
		analytics.RecomputeInvestment(inv, now)
		updated = *inv
		return nil
	})
	if err != nil {
		return model.Investment{}, model.Portfolio{}, err
	}
	return updated, p, nil
}

// RemoveInvestment deletes one investment from the portfolio.
func (s *PortfolioService) RemoveInvestment(ctx context.Context, portfolioID, investmentID string) (model.Portfolio, error) {
	return s.mutate(ctx, portfolioID, func(p *model.Portfolio, _ time.Time) error {
		idx := p.FindInvestment(investmentID)
		if idx < 0 {
			return fmt.Errorf("%w: %s", apperrors.ErrInvestmentNotFound, investmentID)
		}
		p.Investments = append(p.Investments[:idx], p.Investments[idx+1:]...)
		return nil
	})
}

// GetAnalysis returns the composite analysis of the portfolio.
func (s *PortfolioService) GetAnalysis(ctx context.Context, portfolioID string) (model.PortfolioAnalysis, error) {
	p, err := s.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return model.PortfolioAnalysis{}, err
	}
	return analytics.Analyze(&p, s.thresholds), nil
}

// lookupResult is the outcome of one symbol lookup.
type lookupResult struct {
	price float64
	err   error
}

// RefreshPrices looks up the latest price of every symbol in the portfolio and
// applies the results.
//
// Lookups run concurrently, bounded by the configured concurrency, without
// holding the portfolio lock. Once every lookup has settled the write lock is
// taken, the portfolio is re-read, successful prices are applied to the
// investments that still exist and the portfolio is recomputed once.
// A failed lookup leaves that investment untouched and is reported in Errors;
// it never fails the refresh as a whole.
func (s *PortfolioService) RefreshPrices(ctx context.Context, portfolioID string) (model.PriceRefreshResponse, error) {
	snapshot, err := s.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return model.PriceRefreshResponse{}, err
	}

	results := s.lookupAll(ctx, symbolsOf(snapshot.Investments))

	unlock := s.locks.Lock(portfolioID)
	defer unlock()

	p, err := s.repo.Get(ctx, portfolioID)
	if err != nil {
		return model.PriceRefreshResponse{}, err
	}

	now := s.now()
	resp := model.PriceRefreshResponse{
		UpdatedPrices: []model.UpdatedPrice{},
		Errors:        []model.UpdatedPriceError{},
	}

	for i := range p.Investments {
		inv := &p.Investments[i]
		symbol := normalizeSymbol(inv.Symbol)
		if symbol == "" {
			resp.SkippedNoSymbol++
			continue
		}

		result, ok := results[symbol]
		if !ok {
			// Added after the snapshot was taken.
			continue
		}
		if result.err == nil && validation.ValidateHolding(inv.Quantity, inv.AverageCost, result.price) != nil {
			result.err = fmt.Errorf("%w: price %v for %s exceeds the holding limit", apperrors.ErrPriceUnavailable, result.price, symbol)
		}
		if result.err != nil {
			resp.Errors = append(resp.Errors, model.UpdatedPriceError{
				InvestmentID: inv.ID,
				Symbol:       symbol,
				Error:        result.err.Error(),
			})
			continue
		}

		resp.UpdatedPrices = append(resp.UpdatedPrices, model.UpdatedPrice{
			InvestmentID: inv.ID,
			Symbol:       symbol,
			OldPrice:     inv.CurrentPrice,
			NewPrice:     result.price,
		})
		inv.CurrentPrice = result.price
		analytics.RecomputeInvestment(inv, now)
	}

	analytics.RecomputePortfolio(&p, now)
	if err := s.repo.Save(ctx, p); err != nil {
		return model.PriceRefreshResponse{}, fmt.Errorf("failed to save refreshed portfolio: %w", err)
	}

	resp.TotalUpdated = len(resp.UpdatedPrices)
	resp.TotalErrors = len(resp.Errors)
	resp.Success = resp.TotalUpdated > 0 || resp.TotalErrors == 0
	resp.Portfolio = &p

	for _, e := range resp.Errors {
		log.Printf("price refresh: portfolio %s: %s unavailable: %s", portfolioID, e.Symbol, e.Error)
	}
	log.Printf("price refresh: portfolio %s: %d updated, %d failed, %d without symbol",
		portfolioID, resp.TotalUpdated, resp.TotalErrors, resp.SkippedNoSymbol)

	s.publish(model.UpdateRefreshed, &p)
	return resp, nil
}

// RefreshAll refreshes every stored portfolio in turn.
// A portfolio that cannot be refreshed is reported and does not stop the others.
func (s *PortfolioService) RefreshAll(ctx context.Context) (model.BulkRefreshResponse, error) {
	portfolios, err := s.repo.List(ctx)
	if err != nil {
		return model.BulkRefreshResponse{}, err
	}

	resp := model.BulkRefreshResponse{
		Portfolios: []model.PortfolioRefresh{},
		Errors:     []model.PortfolioRefreshError{},
	}
	for _, p := range portfolios {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		r, err := s.RefreshPrices(ctx, p.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrPortfolioNotFound) {
				// Deleted while we were working.
				continue
			}
			resp.Errors = append(resp.Errors, model.PortfolioRefreshError{PortfolioID: p.ID, Error: err.Error()})
			continue
		}
		resp.Portfolios = append(resp.Portfolios, model.PortfolioRefresh{
			PortfolioID:  p.ID,
			TotalUpdated: r.TotalUpdated,
			TotalErrors:  r.TotalErrors,
		})
		resp.TotalUpdated += r.TotalUpdated
		resp.TotalErrors += r.TotalErrors
	}

	resp.TotalPortfolios = len(resp.Portfolios)
	resp.Success = len(resp.Errors) == 0
	return resp, nil
}

// lookupAll resolves every symbol concurrently. Each symbol gets exactly one
// entry in the result, either a price or an error.
func (s *PortfolioService) lookupAll(ctx context.Context, symbols []string) map[string]lookupResult {
	results := make(map[string]lookupResult, len(symbols))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, symbol := range symbols {
		g.Go(func() error {
			price, err := s.prices.LookupPrice(gctx, symbol)
			if err == nil && (math.IsNaN(price) || math.IsInf(price, 0) || price < 0) {
				err = fmt.Errorf("%w: invalid price %v for %s", apperrors.ErrPriceUnavailable, price, symbol)
			}

			mu.Lock()
			results[symbol] = lookupResult{price: price, err: err}
			mu.Unlock()
			// Failures are absorbed per symbol.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// mutate runs fn against the stored portfolio under its write lock, then
// recomputes the aggregates and saves the result.
func (s *PortfolioService) mutate(ctx context.Context, portfolioID string, fn func(p *model.Portfolio, now time.Time) error) (model.Portfolio, error) {
	unlock := s.locks.Lock(portfolioID)
	defer unlock()

	p, err := s.repo.Get(ctx, portfolioID)
	if err != nil {
		return model.Portfolio{}, err
	}

	now := s.now()
	if err := fn(&p, now); err != nil {
		return model.Portfolio{}, err
	}
	analytics.RecomputePortfolio(&p, now)

	if err := s.repo.Save(ctx, p); err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.publish(model.UpdateChanged, &p)
	return p, nil
}

func (s *PortfolioService) publish(kind string, p *model.Portfolio) {
	if s.publisher == nil {
		return
	}
	u := model.PortfolioUpdate{
		Type:        kind,
		PortfolioID: p.ID,
		OwnerID:     p.OwnerID,
		Timestamp:   s.now(),
	}
	if kind != model.UpdateDeleted {
		summary := p.Summary()
		u.Summary = &summary
	}
	s.publisher.Publish(u)
}

// applyUpdate copies the non-nil fields of patch onto inv.
func applyUpdate(inv *model.Investment, patch model.InvestmentPatch) {
	if patch.Quantity != nil {
		inv.Quantity = *patch.Quantity
	}
	if patch.CurrentPrice != nil {
		inv.CurrentPrice = *patch.CurrentPrice
	}
	if patch.AverageCost != nil {
		inv.AverageCost = *patch.AverageCost
	}
	if patch.Sector != nil {
		inv.Sector = strings.TrimSpace(*patch.Sector)
	}
	if patch.Name != nil {
		inv.Name = strings.TrimSpace(*patch.Name)
	}
}

// symbolsOf returns the distinct normalized symbols of investments, in order
// of first appearance.
func symbolsOf(investments []model.Investment) []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, inv := range investments {
		symbol := normalizeSymbol(inv.Symbol)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	}
	return symbols
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// normalizeAllocation lower-cases and trims asset-class keys. Keys that
// collide after normalization are summed.
func normalizeAllocation(alloc map[string]float64) map[string]float64 {
	if alloc == nil {
		return nil
	}
	out := make(map[string]float64, len(alloc))
	for k, v := range alloc {
		out[strings.ToLower(strings.TrimSpace(k))] += v
	}
	return out
}
