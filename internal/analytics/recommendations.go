package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/niveshai/niveshai-backend/internal/model"
)

// Recommend compares the current asset-class allocation of p against its
// target allocation and emits suggestions in generation order:
// rebalancing (target classes in canonical order, unknown classes
// alphabetically), then a review of the worst performer, then diversify.
// An empty result means the portfolio needs no changes.
func Recommend(p *model.Portfolio, assets []model.AllocationBucket, score float64, th Thresholds) []model.Recommendation {
	recs := []model.Recommendation{}

	current := AllocationMap(assets)
	for _, class := range targetOrder(p.TargetAllocation) {
		target := p.TargetAllocation[class]
		difference := target - current[class]
		if math.Abs(difference) <= th.RebalanceBand {
			continue
		}

		rec := model.Recommendation{
			Type:       model.RecommendationRebalance,
			Priority:   model.PriorityMedium,
			AssetClass: class,
			Difference: difference,
		}
		if difference > 0 {
			rec.Action = model.ActionBuy
			rec.Message = fmt.Sprintf("Consider increasing %s allocation by %.1f%% to reach target of %s%%",
				class, difference, formatPercent(target))
		} else {
			rec.Action = model.ActionSell
			rec.Message = fmt.Sprintf("Consider reducing %s allocation by %.1f%% to reach target of %s%%",
				class, -difference, formatPercent(target))
		}
		recs = append(recs, rec)
	}

	if _, worst := BestAndWorst(p); worst != nil && worst.ReturnPercentage < th.ReviewReturn {
		recs = append(recs, model.Recommendation{
			Type:         model.RecommendationPerformance,
			Action:       model.ActionReview,
			Priority:     model.PriorityHigh,
			InvestmentID: worst.InvestmentID,
			Message: fmt.Sprintf("%s has underperformed with %.2f%% returns. Consider reviewing this investment.",
				displayName(worst), worst.ReturnPercentage),
		})
	}

	if score < th.DiversifyScore {
		recs = append(recs, model.Recommendation{
			Type:     model.RecommendationDiversification,
			Action:   model.ActionDiversify,
			Priority: model.PriorityHigh,
			Message:  "Your portfolio needs better diversification. Consider adding investments across different sectors and asset classes.",
		})
	}

	return recs
}

// targetOrder returns the keys of target in canonical bucket order followed
// by any other keys sorted alphabetically.
func targetOrder(target map[string]float64) []string {
	keys := make([]string, 0, len(target))
	for _, class := range AssetClasses {
		if _, ok := target[class]; ok {
			keys = append(keys, class)
		}
	}

	var extra []string
	for class := range target {
		if !IsAssetClass(class) {
			extra = append(extra, class)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func displayName(p *model.Performer) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Symbol
}
