package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/niveshai/niveshai-backend/internal/analytics"
	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/repository"
)

// FixedTime is the clock used by builders so that derived timestamps are stable.
var FixedTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, repo)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithOwner("user-1").
//	    WithInvestment(testutil.NewInvestment("TCS").WithQuantity(10).Build()).
//	    Build(t, repo)
type PortfolioBuilder struct {
	ID               string
	OwnerID          string
	Name             string
	Description      string
	RiskProfile      string
	TargetAllocation map[string]float64
	Investments      []model.Investment
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		OwnerID:     "user-1",
		Name:        MakePortfolioName("Test Portfolio"),
		Description: "Test description",
		RiskProfile: model.DefaultRiskProfile,
		TargetAllocation: map[string]float64{
			analytics.AssetEquity: 60,
			analytics.AssetDebt:   30,
			analytics.AssetGold:   5,
			analytics.AssetCash:   5,
		},
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithOwner sets the owning user.
func (b *PortfolioBuilder) WithOwner(ownerID string) *PortfolioBuilder {
	b.OwnerID = ownerID
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *PortfolioBuilder) WithDescription(desc string) *PortfolioBuilder {
	b.Description = desc
	return b
}

// WithRiskProfile sets the risk profile.
func (b *PortfolioBuilder) WithRiskProfile(profile string) *PortfolioBuilder {
	b.RiskProfile = profile
	return b
}

// WithTargetAllocation replaces the target allocation.
func (b *PortfolioBuilder) WithTargetAllocation(alloc map[string]float64) *PortfolioBuilder {
	b.TargetAllocation = alloc
	return b
}

// WithInvestment appends a holding.
func (b *PortfolioBuilder) WithInvestment(inv model.Investment) *PortfolioBuilder {
	b.Investments = append(b.Investments, inv)
	return b
}

// Value returns the portfolio with all derived fields computed, without storing it.
func (b *PortfolioBuilder) Value() model.Portfolio {
	p := model.Portfolio{
		ID:               b.ID,
		OwnerID:          b.OwnerID,
		Name:             b.Name,
		Description:      b.Description,
		RiskProfile:      b.RiskProfile,
		TargetAllocation: b.TargetAllocation,
		Investments:      append([]model.Investment{}, b.Investments...),
		CreatedAt:        FixedTime,
		UpdatedAt:        FixedTime,
	}
	analytics.RecomputeAll(&p)
	return p
}

// Build stores the portfolio in repo and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, repo repository.Store) model.Portfolio {
	t.Helper()

	p := b.Value()
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}
	return p
}

// CreatePortfolio is a shorthand for NewPortfolio().WithOwner(ownerID).Build(t, repo).
func CreatePortfolio(t *testing.T, repo repository.Store, ownerID string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithOwner(ownerID).Build(t, repo)
}

// InvestmentBuilder provides a fluent interface for creating test investments.
type InvestmentBuilder struct {
	inv model.Investment
}

// NewInvestment creates an equity holding of 10 units bought at 100.
func NewInvestment(symbol string) *InvestmentBuilder {
	return &InvestmentBuilder{inv: model.Investment{
		ID:           MakeID(),
		Kind:         model.KindEquity,
		Symbol:       symbol,
		Name:         MakeInvestmentName(symbol),
		Sector:       "IT",
		Quantity:     10,
		AverageCost:  100,
		CurrentPrice: 100,
		CreatedAt:    FixedTime,
	}}
}

// WithID sets a custom ID.
func (b *InvestmentBuilder) WithID(id string) *InvestmentBuilder {
	b.inv.ID = id
	return b
}

// WithKind sets the investment kind.
func (b *InvestmentBuilder) WithKind(kind string) *InvestmentBuilder {
	b.inv.Kind = kind
	return b
}

// WithSector sets the sector.
func (b *InvestmentBuilder) WithSector(sector string) *InvestmentBuilder {
	b.inv.Sector = sector
	return b
}

// WithQuantity sets the number of units held.
func (b *InvestmentBuilder) WithQuantity(q float64) *InvestmentBuilder {
	b.inv.Quantity = q
	return b
}

// WithAverageCost sets the average purchase price.
func (b *InvestmentBuilder) WithAverageCost(cost float64) *InvestmentBuilder {
	b.inv.AverageCost = cost
	return b
}

// WithCurrentPrice sets the latest price.
func (b *InvestmentBuilder) WithCurrentPrice(price float64) *InvestmentBuilder {
	b.inv.CurrentPrice = price
	return b
}

// Build returns the investment with derived fields computed.
func (b *InvestmentBuilder) Build() model.Investment {
	inv := b.inv
	analytics.RecomputeInvestment(&inv, FixedTime)
	return inv
}
