// internal/types/analytics_models.go
package types

// --------------------------------------------
// Primary revenue metric selection
// --------------------------------------------
const (
	MetricARR     = "arr"
	MetricRevenue = "revenue"
	MetricNone    = "none"
)

// --------------------------------------------
// Trajectory patterns
// --------------------------------------------
const (
	TrajectoryInsufficientData = "insufficient_data"
	TrajectoryAccelerating     = "accelerating"
	TrajectoryVolatile         = "volatile"
	TrajectoryStagnating       = "stagnating"
)

// --------------------------------------------
// Credibility flags
// --------------------------------------------
const (
	CredibilityHigh     = "high"
	CredibilityModerate = "moderate"
	CredibilityLow      = "low"
	CredibilityRedFlag  = "red_flag"
	CredibilityUnknown  = "unknown"
)

// --------------------------------------------
// Confidence levels for the completeness report
// --------------------------------------------
const (
	ConfidenceHigh         = "high"
	ConfidenceMedium       = "medium"
	ConfidenceLow          = "low"
	ConfidenceInsufficient = "insufficient"
)

// RevenueAnalytics holds every derived growth metric for one company.
// A nil metric always has a matching entry in WarningFlags explaining
// which inputs were missing; finite numbers and nils are the only
// values that ever appear here.
type RevenueAnalytics struct {
	PrimaryMetric string `json:"primary_metric"`

	YoYGrowthPercent       *float64 `json:"yoy_growth_percent,omitempty"`
	HistoricalCAGR2Y       *float64 `json:"historical_cagr_2y,omitempty"`
	ForwardCAGR2Y          *float64 `json:"forward_cagr_2y,omitempty"`
	ForwardRevenueMultiple *float64 `json:"forward_revenue_multiple,omitempty"`

	TrajectoryPattern      string   `json:"trajectory_pattern"`
	CredibilityFlag        string   `json:"credibility_flag"`
	RevenueTrajectoryScore *float64 `json:"revenue_trajectory_score,omitempty"`

	WarningFlags []string           `json:"warning_flags,omitempty"`
	Completeness CompletenessReport `json:"completeness"`
}

// CompletenessReport scores how much of the revenue picture the
// spreadsheet actually provided.
type CompletenessReport struct {
	Score                 float64  `json:"score"` // 0-100
	ConfidenceLevel       string   `json:"confidence_level"`
	MissingCriticalFields []string `json:"missing_critical_fields,omitempty"`

	CanCalculateYoY            bool `json:"can_calculate_yoy"`
	CanCalculateHistoricalCAGR bool `json:"can_calculate_historical_cagr"`
	CanCalculateForwardCAGR    bool `json:"can_calculate_forward_cagr"`
	CanCalculateExitModeling   bool `json:"can_calculate_exit_modeling"`
}
