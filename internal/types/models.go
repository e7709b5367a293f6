package types

// CompanyRecord is one canonical row of the portfolio workbook. Numeric
// pointers distinguish "absent in the spreadsheet" from a real zero.
type CompanyRecord struct {
	ID          int    `json:"id"`
	CompanyName string `json:"company_name"`

	// Investment facts
	TotalInvestment               *float64 `json:"total_investment,omitempty"`
	EquityStake                   *float64 `json:"equity_stake,omitempty"`
	AdditionalInvestmentRequested *float64 `json:"additional_investment_requested,omitempty"`
	PreMoneyValuation             *float64 `json:"pre_money_valuation,omitempty"`
	PostMoneyValuation            *float64 `json:"post_money_valuation,omitempty"`
	TotalRaiseRequest             *float64 `json:"total_raise_request,omitempty"`
	AmountRequestedFromFirm       *float64 `json:"amount_requested_from_firm,omitempty"`
	CAEquityValuation             *float64 `json:"ca_equity_valuation,omitempty"`

	// Performance facts
	MOIC                   *float64 `json:"moic,omitempty"`
	RevenueGrowth          *float64 `json:"revenue_growth,omitempty"`
	ProjectedRevenueGrowth *float64 `json:"projected_revenue_growth,omitempty"`
	BurnMultiple           *float64 `json:"burn_multiple,omitempty"`
	RunwayMonths           *float64 `json:"runway_months,omitempty"`
	Revenue                *float64 `json:"revenue,omitempty"`
	ARR                    *float64 `json:"arr,omitempty"`
	CurrentARR             *float64 `json:"current_arr,omitempty"`

	// Five-point revenue timeline, t-2 .. t+2. Any subset may be nil.
	RevenueYearMinus2     *float64 `json:"revenue_year_minus_2,omitempty"`
	RevenueYearMinus1     *float64 `json:"revenue_year_minus_1,omitempty"`
	CurrentRevenue        *float64 `json:"current_revenue,omitempty"`
	ProjectedRevenueYear1 *float64 `json:"projected_revenue_year_1,omitempty"`
	ProjectedRevenueYear2 *float64 `json:"projected_revenue_year_2,omitempty"`

	// Qualitative / rated facts
	TAM              int     `json:"tam"`
	BarrierToEntry   int     `json:"barrier_to_entry"`
	RoundComplexity  int     `json:"round_complexity"`
	ExitTimelineYrs  int     `json:"exit_timeline_years"`
	ExitActivity     string  `json:"exit_activity,omitempty"`
	Industry         string  `json:"industry,omitempty"`
	InvestorInterest *int    `json:"investor_interest,omitempty"`
	SeriesStage      *string `json:"series_stage,omitempty"`
	TopPerformer     bool    `json:"top_performer,omitempty"`

	// false when the row looks prospective (an investment fact is exactly zero)
	IsExistingInvestment bool `json:"is_existing_investment"`

	Analytics *RevenueAnalytics `json:"revenue_analytics,omitempty"`
}

// AnalyzedRecord is a CompanyRecord after the AI analysis pass.
type AnalyzedRecord struct {
	*CompanyRecord
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}
