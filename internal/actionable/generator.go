package actionable

import (
	"fmt"

	"portfolio-insights-go/internal/types"
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// Generate turns the portfolio rollup into the single headline card
// shown on the dashboard.
func Generate(ins types.PortfolioInsight) ActionCard {
	if ins.TotalCompanies > 0 {
		redFlags := ins.ByCredibility[types.CredibilityRedFlag]
		if share := float64(redFlags) / float64(ins.TotalCompanies); share >= 0.3 {
			return ActionCard{
				Insight: fmt.Sprintf("%d of %d companies carry red-flag projections (%.0f%%)", redFlags, ins.TotalCompanies, share*100),
				Action:  "Schedule projection reviews with the flagged founders before the next capital call",
				Impact:  "Avoid deploying follow-on capital against unvalidated forecasts",
			}
		}
	}
	if ins.AvgTrajectoryScore != nil && *ins.AvgTrajectoryScore >= 3.5 {
		return ActionCard{
			Insight: fmt.Sprintf("Portfolio trajectory score averages %.1f/5", *ins.AvgTrajectoryScore),
			Action:  "Prioritize follow-on allocations into the accelerating cohort",
			Impact:  "Concentrate capital where growth is already compounding",
		}
	}
	return ActionCard{
		Insight: "No strong portfolio-wide pattern detected",
		Action:  "Monitor and request updated metrics at the next reporting cycle",
		Impact:  "Low immediate intervention",
	}
}
