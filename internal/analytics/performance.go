package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/niveshai/niveshai-backend/internal/model"
)

// BestAndWorst returns the investments with the highest and lowest return
// percentage. Ties go to the earliest investment. Both are nil for an empty portfolio.
func BestAndWorst(p *model.Portfolio) (best, worst *model.Performer) {
	if len(p.Investments) == 0 {
		return nil, nil
	}
	bi, wi := 0, 0
	for i := 1; i < len(p.Investments); i++ {
		if p.Investments[i].ReturnPercentage > p.Investments[bi].ReturnPercentage {
			bi = i
		}
		if p.Investments[i].ReturnPercentage < p.Investments[wi].ReturnPercentage {
			wi = i
		}
	}
	return performer(&p.Investments[bi]), performer(&p.Investments[wi])
}

// Basic returns the aggregates of p plus average return and best/worst performer.
func Basic(p *model.Portfolio) model.BasicMetrics {
	best, worst := BestAndWorst(p)
	return model.BasicMetrics{
		TotalInvested:    p.TotalInvested,
		CurrentValue:     p.CurrentValue,
		TotalReturns:     p.TotalReturns,
		ReturnPercentage: p.ReturnPercentage,
		InvestmentCount:  len(p.Investments),
		AverageReturn:    mean(returns(p)),
		BestPerformer:    best,
		WorstPerformer:   worst,
	}
}

// Performance computes mean, median, population std dev and sign counts of
// the per-investment return percentages. All zero for an empty portfolio.
func Performance(p *model.Portfolio) model.PerformanceStats {
	r := returns(p)
	if len(r) == 0 {
		return model.PerformanceStats{}
	}

	stats := model.PerformanceStats{
		AverageReturn:     mean(r),
		MedianReturn:      median(r),
		StandardDeviation: ReturnVolatility(p),
		BestReturn:        r[0],
		WorstReturn:       r[0],
	}
	for _, v := range r {
		switch {
		case v > 0:
			stats.PositiveReturns++
		case v < 0:
			stats.NegativeReturns++
		}
		stats.BestReturn = max(stats.BestReturn, v)
		stats.WorstReturn = min(stats.WorstReturn, v)
	}
	stats.PositiveReturnsPercentage = float64(stats.PositiveReturns) / float64(len(r)) * 100
	return stats
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

func median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func performer(inv *model.Investment) *model.Performer {
	return &model.Performer{
		InvestmentID:     inv.ID,
		Symbol:           inv.Symbol,
		Name:             inv.Name,
		ReturnPercentage: inv.ReturnPercentage,
	}
}
