package model

// AllocationBucket is one slice of an allocation breakdown.
type AllocationBucket struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Performer identifies a single investment and its return percentage.
type Performer struct {
	InvestmentID     string  `json:"investmentId"`
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	ReturnPercentage float64 `json:"returnPercentage"`
}

// BasicMetrics holds the portfolio aggregates plus best/worst performer.
// BestPerformer and WorstPerformer are nil for an empty portfolio.
type BasicMetrics struct {
	TotalInvested    float64    `json:"totalInvested"`
	CurrentValue     float64    `json:"currentValue"`
	TotalReturns     float64    `json:"totalReturns"`
	ReturnPercentage float64    `json:"returnPercentage"`
	InvestmentCount  int        `json:"investmentCount"`
	AverageReturn    float64    `json:"averageReturn"`
	BestPerformer    *Performer `json:"bestPerformer,omitempty"`
	WorstPerformer   *Performer `json:"worstPerformer,omitempty"`
}

// PerformanceStats summarises the distribution of per-investment return percentages.
type PerformanceStats struct {
	AverageReturn             float64 `json:"averageReturn"`
	MedianReturn              float64 `json:"medianReturn"`
	StandardDeviation         float64 `json:"standardDeviation"` // population std dev
	PositiveReturns           int     `json:"positiveReturns"`
	NegativeReturns           int     `json:"negativeReturns"`
	PositiveReturnsPercentage float64 `json:"positiveReturnsPercentage"`
	BestReturn                float64 `json:"bestReturn"`
	WorstReturn               float64 `json:"worstReturn"`
}

// ConcentrationRisk reports the largest single share of value per dimension.
type ConcentrationRisk struct {
	Sector     float64 `json:"sector"`
	AssetClass float64 `json:"assetClass"`
	Overall    float64 `json:"overall"`
}

// Risk levels.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// RiskAnalysis is the output of the risk and diversification scorer.
type RiskAnalysis struct {
	DiversificationScore float64           `json:"diversificationScore"`
	Volatility           float64           `json:"volatility"`
	RiskLevel            string            `json:"riskLevel"`
	ConcentrationRisk    ConcentrationRisk `json:"concentrationRisk"`
	Guidance             []string          `json:"recommendations"`
}

// Recommendation actions and priorities.
const (
	ActionBuy       = "buy"
	ActionSell      = "sell"
	ActionReview    = "review"
	ActionDiversify = "diversify"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Recommendation types.
const (
	RecommendationRebalance       = "rebalance"
	RecommendationPerformance     = "performance"
	RecommendationDiversification = "diversification"
)

// Recommendation is a single actionable suggestion.
// AssetClass and Difference are only set for rebalance recommendations,
// InvestmentID only for review recommendations.
type Recommendation struct {
	Type         string  `json:"type"`
	Action       string  `json:"action"`
	Priority     string  `json:"priority"`
	Message      string  `json:"message"`
	AssetClass   string  `json:"assetClass,omitempty"`
	Difference   float64 `json:"difference,omitempty"`
	InvestmentID string  `json:"investmentId,omitempty"`
}

// PortfolioAnalysis is the composite returned by the analysis operation.
type PortfolioAnalysis struct {
	PortfolioID      string             `json:"portfolioId"`
	PortfolioName    string             `json:"portfolioName"`
	RiskProfile      string             `json:"riskProfile"`
	BasicMetrics     BasicMetrics       `json:"basicMetrics"`
	AssetAllocation  []AllocationBucket `json:"assetAllocation"`
	SectorAllocation []AllocationBucket `json:"sectorAllocation"`
	Performance      PerformanceStats   `json:"performanceMetrics"`
	Risk             RiskAnalysis       `json:"riskAnalysis"`
	Recommendations  []Recommendation   `json:"recommendations"`
}
