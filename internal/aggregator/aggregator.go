package aggregator

import (
	"math"

	"portfolio-insights-go/internal/types"
)

// Aggregate rolls the ingested records up into the dashboard-level
// portfolio insight.
func Aggregate(records []*types.CompanyRecord) types.PortfolioInsight {
	ins := types.PortfolioInsight{
		ByStage:       map[string]int{},
		ByCredibility: map[string]int{},
		ByTrajectory:  map[string]int{},
	}

	scoreSum := 0.0
	scored := 0
	for _, r := range records {
		ins.TotalCompanies++
		if r.IsExistingInvestment {
			ins.ExistingInvestments++
		} else {
			ins.ProspectiveCompanies++
		}

		stage := "Unknown"
		if r.SeriesStage != nil {
			stage = *r.SeriesStage
		}
		ins.ByStage[stage]++

		if r.Analytics == nil {
			continue
		}
		ins.ByCredibility[r.Analytics.CredibilityFlag]++
		ins.ByTrajectory[r.Analytics.TrajectoryPattern]++
		if r.Analytics.RevenueTrajectoryScore != nil {
			scoreSum += *r.Analytics.RevenueTrajectoryScore
			scored++
		}
	}
	if scored > 0 {
		avg := math.Round(scoreSum/float64(scored)*10) / 10
		ins.AvgTrajectoryScore = &avg
	}
	return ins
}
