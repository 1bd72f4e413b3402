package analytics

import "github.com/niveshai/niveshai-backend/internal/model"

// Analyze builds the composite analysis of p. The derived fields of p must be
// current; the service guarantees this by recomputing on every mutation.
func Analyze(p *model.Portfolio, th Thresholds) model.PortfolioAnalysis {
	assets := ByAssetClass(p)
	sectors := BySector(p)
	risk := AnalyzeRisk(p, assets, sectors, th)

	return model.PortfolioAnalysis{
		PortfolioID:      p.ID,
		PortfolioName:    p.Name,
		RiskProfile:      p.RiskProfile,
		BasicMetrics:     Basic(p),
		AssetAllocation:  assets,
		SectorAllocation: sectors,
		Performance:      Performance(p),
		Risk:             risk,
		Recommendations:  Recommend(p, assets, risk.DiversificationScore, th),
	}
}
