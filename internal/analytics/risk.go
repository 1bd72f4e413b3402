package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/niveshai/niveshai-backend/internal/model"
)

var riskGuidance = map[string][]string{
	model.RiskHigh: {
		"Consider reducing exposure to volatile investments",
		"Increase diversification across sectors",
		"Review stop-loss levels for high-risk investments",
	},
	model.RiskMedium: {
		"Monitor portfolio regularly",
		"Consider rebalancing if allocation deviates significantly",
	},
	model.RiskLow: {
		"Portfolio appears well-balanced",
		"Continue regular monitoring",
	},
}

// DiversificationScore computes the 0-10 breadth score:
// one point per non-empty asset class and one per sector (each capped),
// minus a concentration penalty for the largest sector, clamped to [0, 10].
func DiversificationScore(assets, sectors []model.AllocationBucket, th Thresholds) float64 {
	assetPoints := 0
	for _, b := range assets {
		if b.Value > 0 {
			assetPoints++
		}
	}
	assetPoints = min(assetPoints, th.BreadthCap)
	sectorPoints := min(len(sectors), th.BreadthCap)

	score := float64(assetPoints + sectorPoints)

	largest := largestPercentage(sectors)
	switch {
	case largest > th.SectorHighConcentration:
		score -= 2
	case largest > th.SectorModerateConcentration:
		score -= 1
	}

	return math.Max(0, math.Min(10, score))
}

// ReturnVolatility is the population standard deviation of the per-investment
// return percentages. Zero or one investment yields 0.
func ReturnVolatility(p *model.Portfolio) float64 {
	if len(p.Investments) < 2 {
		return 0
	}
	_, std := stat.PopMeanStdDev(returns(p), nil)
	return std
}

// RiskLevel classifies volatility and score. High is checked before Medium.
func RiskLevel(volatility, score float64, th Thresholds) string {
	switch {
	case volatility > th.VolatilityHigh || score < th.ScoreHigh:
		return model.RiskHigh
	case volatility > th.VolatilityMedium || score < th.ScoreMedium:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// AnalyzeRisk runs the scorer over p.
func AnalyzeRisk(p *model.Portfolio, assets, sectors []model.AllocationBucket, th Thresholds) model.RiskAnalysis {
	score := DiversificationScore(assets, sectors, th)
	volatility := ReturnVolatility(p)
	level := RiskLevel(volatility, score, th)

	sectorMax := largestPercentage(sectors)
	assetMax := largestPercentage(assets)

	guidance := make([]string, len(riskGuidance[level]))
	copy(guidance, riskGuidance[level])

	return model.RiskAnalysis{
		DiversificationScore: score,
		Volatility:           volatility,
		RiskLevel:            level,
		ConcentrationRisk: model.ConcentrationRisk{
			Sector:     sectorMax,
			AssetClass: assetMax,
			Overall:    (sectorMax + assetMax) / 2,
		},
		Guidance: guidance,
	}
}

func returns(p *model.Portfolio) []float64 {
	r := make([]float64, len(p.Investments))
	for i := range p.Investments {
		r[i] = p.Investments[i].ReturnPercentage
	}
	return r
}
