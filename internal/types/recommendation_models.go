// internal/types/recommendation_models.go
package types

// --------------------------------------------
// AI recommendation payload (schema-validated
// LLM output; the reasoning itself is external)
// --------------------------------------------
type Recommendation struct {
	Action          string   `json:"action"` // invest_more / hold / exit / pass / watch
	ConfidenceScore float64  `json:"confidence_score"` // 0-1
	Rationale       string   `json:"rationale"`
	KeyRisks        []string `json:"key_risks,omitempty"`
	GrowthOutlook   string   `json:"growth_outlook,omitempty"`
	ResearchNotes   string   `json:"research_notes,omitempty"`

	Provider string `json:"provider,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PortfolioInsight is the aggregate rollup rendered on the dashboard.
type PortfolioInsight struct {
	TotalCompanies       int            `json:"total_companies"`
	ExistingInvestments  int            `json:"existing_investments"`
	ProspectiveCompanies int            `json:"prospective_companies"`
	ByStage              map[string]int `json:"by_stage"`
	ByCredibility        map[string]int `json:"by_credibility"`
	ByTrajectory         map[string]int `json:"by_trajectory"`
	AvgTrajectoryScore   *float64       `json:"avg_trajectory_score,omitempty"`
}
