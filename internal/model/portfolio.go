package model

import "time"

// DefaultPortfolioName is used when a portfolio is created without a name.
const DefaultPortfolioName = "My Portfolio"

// DefaultRiskProfile is used when a portfolio is created without a risk profile.
const DefaultRiskProfile = "moderate"

// Portfolio is the aggregate that owns a set of investments.
// The Total* fields and ReturnPercentage are derived from the investments and are
// recomputed by the valuation engine after every mutation. They are never set directly.
type Portfolio struct {
	ID               string             `json:"id"`
	OwnerID          string             `json:"userId"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	RiskProfile      string             `json:"riskProfile"`
	TargetAllocation map[string]float64 `json:"targetAllocation"`
	TotalInvested    float64            `json:"totalInvested"`    // Sum of invested amounts
	CurrentValue     float64            `json:"currentValue"`     // Sum of current values
	TotalReturns     float64            `json:"totalReturns"`     // CurrentValue - TotalInvested
	ReturnPercentage float64            `json:"returnPercentage"` // 0 when TotalInvested is 0
	Investments      []Investment       `json:"investments"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// FindInvestment returns the index of the investment with the given ID, or -1.
func (p *Portfolio) FindInvestment(investmentID string) int {
	for i := range p.Investments {
		if p.Investments[i].ID == investmentID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the portfolio. Repositories hand out clones so
// that no caller can mutate stored state outside of the service's lock.
func (p Portfolio) Clone() Portfolio {
	c := p
	if p.TargetAllocation != nil {
		c.TargetAllocation = make(map[string]float64, len(p.TargetAllocation))
		for k, v := range p.TargetAllocation {
			c.TargetAllocation[k] = v
		}
	}
	c.Investments = make([]Investment, len(p.Investments))
	for i, inv := range p.Investments {
		c.Investments[i] = inv.Clone()
	}
	return c
}

// PortfolioSummary is the list view of a portfolio, without its investments.
type PortfolioSummary struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"userId"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	RiskProfile      string    `json:"riskProfile"`
	InvestmentCount  int       `json:"investmentCount"`
	TotalInvested    float64   `json:"totalInvested"`
	CurrentValue     float64   `json:"currentValue"`
	TotalReturns     float64   `json:"totalReturns"`
	ReturnPercentage float64   `json:"returnPercentage"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Summary returns the list view of p.
func (p *Portfolio) Summary() PortfolioSummary {
	return PortfolioSummary{
		ID:               p.ID,
		OwnerID:          p.OwnerID,
		Name:             p.Name,
		Description:      p.Description,
		RiskProfile:      p.RiskProfile,
		InvestmentCount:  len(p.Investments),
		TotalInvested:    p.TotalInvested,
		CurrentValue:     p.CurrentValue,
		TotalReturns:     p.TotalReturns,
		ReturnPercentage: p.ReturnPercentage,
		UpdatedAt:        p.UpdatedAt,
	}
}

// Portfolio update event types.
const (
	UpdateCreated   = "created"
	UpdateChanged   = "updated"
	UpdateRefreshed = "refreshed"
	UpdateDeleted   = "deleted"
)

// PortfolioUpdate is published after every mutation and refresh.
// Summary is nil for deletions.
type PortfolioUpdate struct {
	Type        string            `json:"type"`
	PortfolioID string            `json:"portfolioId"`
	OwnerID     string            `json:"userId"`
	Summary     *PortfolioSummary `json:"summary,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}
