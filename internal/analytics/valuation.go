package analytics

import (
	"time"

	"github.com/niveshai/niveshai-backend/internal/model"
)

// RecomputeInvestment sets the derived fields of inv from its quantity,
// average cost and current price, and bumps UpdatedAt to now.
// ReturnPercentage is 0 when nothing was invested.
func RecomputeInvestment(inv *model.Investment, now time.Time) {
	inv.InvestedAmount = inv.Quantity * inv.AverageCost
	inv.CurrentValue = inv.Quantity * inv.CurrentPrice
	inv.AbsoluteReturn = inv.CurrentValue - inv.InvestedAmount
	inv.ReturnPercentage = percentOf(inv.AbsoluteReturn, inv.InvestedAmount)
	inv.UpdatedAt = now
}

// RecomputePortfolio sums the derived fields of every investment into the
// portfolio aggregates and bumps UpdatedAt to now. It does not recompute the
// investments themselves; callers recompute the ones they changed first.
func RecomputePortfolio(p *model.Portfolio, now time.Time) {
	var invested, current float64
	for i := range p.Investments {
		invested += p.Investments[i].InvestedAmount
		current += p.Investments[i].CurrentValue
	}

	p.TotalInvested = invested
	p.CurrentValue = current
	p.TotalReturns = current - invested
	p.ReturnPercentage = percentOf(p.TotalReturns, invested)
	p.UpdatedAt = now
}

// RecomputeAll recomputes every investment and then the portfolio.
// Used after loading a portfolio from storage, where derived fields are not persisted.
func RecomputeAll(p *model.Portfolio) {
	for i := range p.Investments {
		inv := &p.Investments[i]
		updated := inv.UpdatedAt
		RecomputeInvestment(inv, updated)
	}
	updated := p.UpdatedAt
	RecomputePortfolio(p, updated)
}

// percentOf returns part/whole*100, or 0 when whole is 0.
func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
