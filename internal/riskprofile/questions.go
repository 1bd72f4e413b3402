package riskprofile

var questions = []Question{
	{
		ID: "age", Question: "What is your age group?", Type: TypeRadio, Required: true, Weight: 0.20,
		Options: []Option{
			{Value: "18-25", Score: 10, Label: "18-25 years"},
			{Value: "26-35", Score: 8, Label: "26-35 years"},
			{Value: "36-45", Score: 6, Label: "36-45 years"},
			{Value: "46-55", Score: 4, Label: "46-55 years"},
			{Value: "56-65", Score: 2, Label: "56-65 years"},
			{Value: "65+", Score: 1, Label: "65+ years"},
		},
	},
	{
		ID: "income", Question: "What is your annual household income?", Type: TypeRadio, Required: true, Weight: 0.15,
		Options: []Option{
			{Value: "<3", Score: 2, Label: "Less than ₹3 Lakhs"},
			{Value: "3-6", Score: 4, Label: "₹3-6 Lakhs"},
			{Value: "6-10", Score: 6, Label: "₹6-10 Lakhs"},
			{Value: "10-20", Score: 8, Label: "₹10-20 Lakhs"},
			{Value: "20-50", Score: 9, Label: "₹20-50 Lakhs"},
			{Value: ">50", Score: 10, Label: "More than ₹50 Lakhs"},
		},
	},
	{
		ID: "investment_experience", Question: "How many years of investment experience do you have?", Type: TypeRadio, Required: true, Weight: 0.15,
		Options: []Option{
			{Value: "0", Score: 1, Label: "None (Just starting)"},
			{Value: "1-3", Score: 4, Label: "1-3 years"},
			{Value: "3-5", Score: 6, Label: "3-5 years"},
			{Value: "5-10", Score: 8, Label: "5-10 years"},
			{Value: ">10", Score: 10, Label: "More than 10 years"},
		},
	},
	{
		ID: "risk_tolerance", Question: "How would you describe your risk tolerance?", Type: TypeRadio, Required: true, Weight: 0.20,
		Options: []Option{
			{Value: "conservative", Score: 2, Label: "Very Conservative - Cannot tolerate any loss"},
			{Value: "moderately_conservative", Score: 4, Label: "Moderately Conservative - Prefer safety over returns"},
			{Value: "moderate", Score: 6, Label: "Moderate - Willing to take calculated risks"},
			{Value: "moderately_aggressive", Score: 8, Label: "Moderately Aggressive - Comfortable with market volatility"},
			{Value: "aggressive", Score: 10, Label: "Very Aggressive - Willing to take high risks for high returns"},
		},
	},
	{
		ID: "investment_horizon", Question: "What is your investment time horizon?", Type: TypeRadio, Required: true, Weight: 0.15,
		Options: []Option{
			{Value: "<1", Score: 2, Label: "Less than 1 year"},
			{Value: "1-3", Score: 4, Label: "1-3 years"},
			{Value: "3-5", Score: 6, Label: "3-5 years"},
			{Value: "5-10", Score: 8, Label: "5-10 years"},
			{Value: ">10", Score: 10, Label: "More than 10 years"},
		},
	},
	{
		ID: "dependents", Question: "How many financial dependents do you have?", Type: TypeRadio, Required: true, Weight: 0.10,
		Options: []Option{
			{Value: "0", Score: 10, Label: "None"},
			{Value: "1-2", Score: 7, Label: "1-2 dependents"},
			{Value: "3-4", Score: 4, Label: "3-4 dependents"},
			{Value: ">4", Score: 2, Label: "More than 4 dependents"},
		},
	},
	{
		ID: "emergency_fund", Question: "Do you have an emergency fund covering at least 6 months of expenses?", Type: TypeRadio, Required: true, Weight: 0.10,
		Options: []Option{
			{Value: "yes_full", Score: 10, Label: "Yes, fully covered"},
			{Value: "yes_partial", Score: 6, Label: "Yes, partially covered"},
			{Value: "no", Score: 2, Label: "No"},
		},
	},
	{
		ID: "market_reaction", Question: "If your portfolio fell by 20% in a market downturn, what would you do?", Type: TypeRadio, Required: true, Weight: 0.15,
		Options: []Option{
			{Value: "sell_all", Score: 1, Label: "Sell all investments"},
			{Value: "sell_some", Score: 4, Label: "Sell some investments"},
			{Value: "hold_wait", Score: 7, Label: "Hold and wait for recovery"},
			{Value: "buy_more", Score: 10, Label: "Buy more at lower prices"},
		},
	},
	{
		ID: "investment_knowledge", Question: "How would you rate your knowledge of financial products and markets?", Type: TypeRadio, Required: true, Weight: 0.10,
		Options: []Option{
			{Value: "none", Score: 2, Label: "No knowledge"},
			{Value: "basic", Score: 4, Label: "Basic knowledge"},
			{Value: "intermediate", Score: 7, Label: "Intermediate knowledge"},
			{Value: "advanced", Score: 10, Label: "Advanced knowledge"},
		},
	},
	{
		ID: "investment_goals", Question: "What are your primary investment goals? (Select all that apply)", Type: TypeCheckbox, Required: true, Weight: 0.10,
		Options: []Option{
			{Value: "retirement", Score: 8, Label: "Retirement Planning"},
			{Value: "wealth_creation", Score: 10, Label: "Wealth Creation"},
			{Value: "children_education", Score: 6, Label: "Children's Education"},
			{Value: "buy_property", Score: 6, Label: "Buy Property"},
			{Value: "emergency_fund", Score: 2, Label: "Emergency Fund"},
			{Value: "tax_saving", Score: 4, Label: "Tax Saving"},
			{Value: "regular_income", Score: 3, Label: "Regular Income"},
		},
	},
}

// profiles are ordered by maxScore; the last band is open-ended.
var profiles = []Profile{
	{
		Type:        Conservative,
		Label:       "Conservative Investor",
		Description: "You prioritize capital preservation over high returns. You prefer stable, low-risk investments.",
		Characteristics: []string{
			"Low risk tolerance",
			"Preference for guaranteed returns",
			"Focus on capital preservation",
			"Short to medium-term investment horizon",
		},
		SuitableInvestments: []string{"Fixed Deposits", "PPF", "Debt Mutual Funds", "Government Bonds", "Large-cap Equity Funds (small allocation)"},
		AssetAllocation:     map[string]float64{"equity": 10, "debt": 75, "gold": 5, "cash": 10},
		maxScore:            30,
	},
	{
		Type:        ModeratelyConservative,
		Label:       "Moderately Conservative Investor",
		Description: "You seek stable returns with moderate risk. You prefer a balanced approach with emphasis on safety.",
		Characteristics: []string{
			"Low to moderate risk tolerance",
			"Preference for stable returns",
			"Willing to take calculated risks",
			"Medium-term investment horizon",
		},
		SuitableInvestments: []string{"Hybrid Mutual Funds", "Large-cap Equity Funds", "Corporate Bonds", "ELSS Funds", "Index Funds"},
		AssetAllocation:     map[string]float64{"equity": 30, "debt": 60, "gold": 5, "cash": 5},
		maxScore:            50,
	},
	{
		Type:        Moderate,
		Label:       "Moderate Investor",
		Description: "You seek balanced growth with manageable risk. You understand market volatility and are willing to take calculated risks.",
		Characteristics: []string{
			"Moderate risk tolerance",
			"Balanced approach to growth and safety",
			"Understanding of market cycles",
			"Medium to long-term investment horizon",
		},
		SuitableInvestments: []string{"Multi-cap Equity Funds", "Large & Mid-cap Funds", "Hybrid Aggressive Funds", "ELSS Funds", "Select Blue-chip Stocks"},
		AssetAllocation:     map[string]float64{"equity": 60, "debt": 30, "gold": 5, "cash": 5},
		maxScore:            70,
	},
	{
		Type:        ModeratelyAggressive,
		Label:       "Moderately Aggressive Investor",
		Description: "You prioritize growth and are comfortable with market volatility for potentially higher returns.",
		Characteristics: []string{
			"High risk tolerance",
			"Growth-focused approach",
			"Comfortable with market volatility",
			"Long-term investment horizon",
		},
		SuitableInvestments: []string{"Mid-cap Equity Funds", "Small-cap Funds", "Sector-specific Funds", "Direct Stocks", "International Funds"},
		AssetAllocation:     map[string]float64{"equity": 75, "debt": 20, "gold": 3, "cash": 2},
		maxScore:            85,
	},
	{
		Type:        Aggressive,
		Label:       "Aggressive Investor",
		Description: "You prioritize maximum growth and are willing to take high risks for potentially high returns.",
		Characteristics: []string{
			"Very high risk tolerance",
			"High growth expectations",
			"Comfortable with high volatility",
			"Very long-term investment horizon",
		},
		SuitableInvestments: []string{"Small-cap Funds", "Micro-cap Funds", "Thematic Funds", "Direct Stocks (including small-cap)", "Alternative Investments"},
		AssetAllocation:     map[string]float64{"equity": 85, "debt": 10, "gold": 3, "cash": 2},
		maxScore:            100,
	},
}

var strategies = map[string]Strategy{
	Conservative: {
		InvestmentStrategy:   "Focus on capital preservation with stable returns. Start with debt instruments and gradually add equity exposure.",
		PortfolioRebalancing: "Review quarterly. Maintain 70-80% in debt instruments.",
		RiskManagement:       "Maintain 6-12 months emergency fund. Avoid speculative investments.",
		TaxPlanning:          "Maximize PPF, tax-saving FDs, and traditional tax-saving options.",
		Monitoring:           "Monitor interest rate changes and inflation impact on returns.",
	},
	ModeratelyConservative: {
		InvestmentStrategy:   "Balanced approach with 30% equity exposure. Focus on large-cap funds and hybrid funds.",
		PortfolioRebalancing: "Review semi-annually. Maintain 60-70% in debt, 30% in equity.",
		RiskManagement:       "Maintain 6 months emergency fund. Limit equity to large-cap stocks.",
		TaxPlanning:          "Combine traditional options with ELSS for equity exposure.",
		Monitoring:           "Monitor both debt and equity market performance.",
	},
	Moderate: {
		InvestmentStrategy:   "Balanced growth approach with 60% equity. Diversify across market caps and sectors.",
		PortfolioRebalancing: "Review quarterly. Maintain 60% equity, 30% debt allocation.",
		RiskManagement:       "Maintain 6 months emergency fund. Use SIP for equity investments.",
		TaxPlanning:          "Optimize between ELSS, PPF, and other tax-saving instruments.",
		Monitoring:           "Regular monitoring of portfolio performance and market trends.",
	},
	ModeratelyAggressive: {
		InvestmentStrategy:   "Growth-focused with 75% equity. Include mid-cap and small-cap exposure.",
		PortfolioRebalancing: "Review quarterly. Maintain 75% equity, 20% debt allocation.",
		RiskManagement:       "Maintain 3-6 months emergency fund. Use systematic transfer plans.",
		TaxPlanning:          "Focus on ELSS and tax-efficient equity funds.",
		Monitoring:           "Active monitoring required. Consider professional advice.",
	},
	Aggressive: {
		InvestmentStrategy:   "High growth strategy with 85% equity. Include small-cap and sector funds.",
		PortfolioRebalancing: "Review monthly. Maintain 85% equity, 10% debt allocation.",
		RiskManagement:       "Maintain 3 months emergency fund. Be prepared for high volatility.",
		TaxPlanning:          "Focus on tax-efficient equity investments and long-term gains.",
		Monitoring:           "Very active monitoring required. Regular portfolio review essential.",
	},
}
