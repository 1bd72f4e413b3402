// Package analytics implements the portfolio valuation engine, the allocation
// analyzer, the risk and diversification scorer, and the recommendation generator.
//
// Every function in this package is pure: it reads a model.Portfolio and
// either returns derived values or updates the derived fields of the portfolio
// passed in. Locking and persistence are the caller's concern.
package analytics

// Thresholds groups the tunable constants of the scorer and the recommendation
// generator. The zero value is not useful; start from DefaultThresholds.
type Thresholds struct {
	// RebalanceBand is the minimum |target - current| percentage that produces a buy/sell.
	RebalanceBand float64
	// SectorHighConcentration is the largest-sector percentage above which 2 points are deducted.
	SectorHighConcentration float64
	// SectorModerateConcentration is the largest-sector percentage above which 1 point is deducted.
	SectorModerateConcentration float64
	// VolatilityHigh and VolatilityMedium classify the std dev of returns.
	VolatilityHigh   float64
	VolatilityMedium float64
	// ScoreHigh and ScoreMedium are the diversification scores below which risk is High / Medium.
	ScoreHigh   float64
	ScoreMedium float64
	// ReviewReturn is the return percentage below which the worst performer is flagged.
	ReviewReturn float64
	// DiversifyScore is the diversification score below which a diversify recommendation is emitted.
	DiversifyScore float64
	// AllocationTolerance is how far a target allocation may sum away from 100.
	AllocationTolerance float64
	// BreadthCap caps the points awarded for asset-class and sector breadth.
	BreadthCap int
}

// DefaultThresholds returns the documented defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RebalanceBand:               5,
		SectorHighConcentration:     40,
		SectorModerateConcentration: 30,
		VolatilityHigh:              20,
		VolatilityMedium:            15,
		ScoreHigh:                   3,
		ScoreMedium:                 6,
		ReviewReturn:                -20,
		DiversifyScore:              5,
		AllocationTolerance:         1,
		BreadthCap:                  5,
	}
}
