// Package analytics derives growth metrics from the sparse five-point
// revenue timeline of a company record. Every computation either
// returns a finite number or nil plus a human-readable warning; NaN and
// Inf never reach a record.
package analytics

import (
	"fmt"
	"math"

	"portfolio-insights-go/internal/types"
)

// Trajectory classification thresholds, in percentage points.
const (
	acceleratingKeepRatio = 0.8
	acceleratingAvgMin    = 25.0
	volatileVarianceMax   = 2500.0
	stagnatingAvgMax      = 15.0
	stagnatingRateMax     = 30.0
	fallbackAvgSplit      = 30.0
)

// Compute runs the full analytics pass for one record.
func Compute(rec *types.CompanyRecord) *types.RevenueAnalytics {
	a := &types.RevenueAnalytics{
		TrajectoryPattern: types.TrajectoryInsufficientData,
		CredibilityFlag:   types.CredibilityUnknown,
	}
	warn := func(format string, args ...any) {
		a.WarningFlags = append(a.WarningFlags, fmt.Sprintf(format, args...))
	}

	// Primary metric: prefer ARR when a positive ARR exists, else
	// revenue, else none. The choice decides which timeline the CAGR
	// computations may use.
	var current *float64
	switch {
	case positive(rec.CurrentARR):
		a.PrimaryMetric = types.MetricARR
		current = rec.CurrentARR
	case positive(rec.ARR):
		a.PrimaryMetric = types.MetricARR
		current = rec.ARR
	case positive(rec.CurrentRevenue):
		a.PrimaryMetric = types.MetricRevenue
		current = rec.CurrentRevenue
	case positive(rec.Revenue):
		a.PrimaryMetric = types.MetricRevenue
		current = rec.Revenue
	default:
		a.PrimaryMetric = types.MetricNone
		warn("no positive ARR or revenue value; growth metrics skipped")
	}

	timelineCurrent := rec.CurrentRevenue
	if !positive(timelineCurrent) && a.PrimaryMetric == types.MetricRevenue {
		timelineCurrent = current
	}

	switch a.PrimaryMetric {
	case types.MetricRevenue:
		if a.YoYGrowthPercent = GrowthPercent(rec.RevenueYearMinus1, timelineCurrent); a.YoYGrowthPercent == nil {
			warn("yoy growth needs positive current and prior-year revenue")
		}
		if a.HistoricalCAGR2Y = CAGR2Y(rec.RevenueYearMinus2, timelineCurrent); a.HistoricalCAGR2Y == nil {
			warn("historical cagr needs positive current and year-2 revenue")
		}
		if a.ForwardCAGR2Y = CAGR2Y(timelineCurrent, rec.ProjectedRevenueYear2); a.ForwardCAGR2Y == nil {
			warn("forward cagr needs positive current and projected year-2 revenue")
		}
		a.TrajectoryPattern = TrajectoryPattern(
			rec.RevenueYearMinus2, rec.RevenueYearMinus1, timelineCurrent,
			rec.ProjectedRevenueYear1, rec.ProjectedRevenueYear2)
		if a.TrajectoryPattern == types.TrajectoryInsufficientData {
			warn("trajectory needs at least 3 timeline points and 2 computable growth rates")
		}
	case types.MetricARR:
		warn("arr is the primary metric and carries no historical timeline; cagr and trajectory skipped")
	}

	if a.ForwardRevenueMultiple = Ratio(rec.PostMoneyValuation, rec.ProjectedRevenueYear2); a.ForwardRevenueMultiple == nil {
		warn("forward revenue multiple needs positive post-money valuation and projected year-2 revenue")
	}

	interest := 1
	if rec.InvestorInterest != nil {
		interest = *rec.InvestorInterest
	}
	a.CredibilityFlag = CredibilityFlag(a.HistoricalCAGR2Y, a.ForwardCAGR2Y, interest)
	if a.HistoricalCAGR2Y == nil || a.ForwardCAGR2Y == nil {
		warn("credibility assessed from investor interest only; cagr comparison unavailable")
	}

	a.RevenueTrajectoryScore = TrajectoryScore(a.HistoricalCAGR2Y, a.ForwardCAGR2Y, a.CredibilityFlag)
	a.Completeness = completeness(rec, a, timelineCurrent)
	return a
}

// GrowthPercent is the plain period-over-period growth rate,
// (to-from)/from x 100. Both operands must be positive.
func GrowthPercent(from, to *float64) *float64 {
	if !positive(from) || !positive(to) {
		return nil
	}
	return finite((*to - *from) / *from * 100)
}

// CAGR2Y is the two-year compound annual growth rate between two
// timeline points, ((later/earlier)^(1/2) - 1) x 100.
func CAGR2Y(earlier, later *float64) *float64 {
	if !positive(earlier) || !positive(later) {
		return nil
	}
	return finite((math.Sqrt(*later / *earlier) - 1) * 100)
}

// Ratio divides two positive values, nil otherwise.
func Ratio(num, den *float64) *float64 {
	if !positive(num) || !positive(den) {
		return nil
	}
	return finite(*num / *den)
}

// TrajectoryPattern classifies the growth-rate sequence across the up
// to four consecutive gaps of the five-point timeline.
func TrajectoryPattern(points ...*float64) string {
	nonNull := 0
	for _, p := range points {
		if p != nil {
			nonNull++
		}
	}

	var rates []float64
	for i := 0; i+1 < len(points); i++ {
		if r := GrowthPercent(points[i], points[i+1]); r != nil {
			rates = append(rates, *r)
		}
	}
	if nonNull < 3 || len(rates) < 2 {
		return types.TrajectoryInsufficientData
	}

	avg := mean(rates)

	sustained := true
	for i := 1; i < len(rates); i++ {
		if rates[i] < acceleratingKeepRatio*rates[i-1] {
			sustained = false
			break
		}
	}
	if sustained && avg > acceleratingAvgMin {
		return types.TrajectoryAccelerating
	}

	if variance(rates, avg) > volatileVarianceMax {
		return types.TrajectoryVolatile
	}

	allModest := true
	for _, r := range rates {
		if r >= stagnatingRateMax {
			allModest = false
			break
		}
	}
	if avg < stagnatingAvgMax && allModest {
		return types.TrajectoryStagnating
	}

	if avg > fallbackAvgSplit {
		return types.TrajectoryAccelerating
	}
	return types.TrajectoryStagnating
}

// CredibilityFlag weighs the forward projection against historical
// growth and the external validation signal (investor interest, 1-5).
// Without both CAGRs the comparison collapses to the interest signal.
func CredibilityFlag(historical, forward *float64, interest int) string {
	if historical == nil || forward == nil {
		if interest <= 2 {
			return types.CredibilityLow
		}
		if interest >= 4 {
			return types.CredibilityHigh
		}
		return types.CredibilityModerate
	}
	h, f := *historical, *forward
	switch {
	case f > 2*h && f > 100 && interest <= 2:
		return types.CredibilityRedFlag
	case interest >= 4 && f <= 1.5*h:
		return types.CredibilityHigh
	case interest <= 2 || f > 3*h:
		return types.CredibilityLow
	default:
		return types.CredibilityModerate
	}
}

// TrajectoryScore is the composite 0-5 score: up to 2 points per CAGR
// tier plus a credibility modifier, clamped and rounded to one decimal.
// nil when no CAGR input exists at all.
func TrajectoryScore(historical, forward *float64, credibility string) *float64 {
	if historical == nil && forward == nil {
		return nil
	}
	s := cagrTier(historical) + cagrTier(forward)
	switch credibility {
	case types.CredibilityHigh:
		s += 1
	case types.CredibilityModerate:
		s += 0.7
	case types.CredibilityLow:
		s += 0.3
	case types.CredibilityRedFlag:
		s -= 1
	}
	if s < 0 {
		s = 0
	}
	if s > 5 {
		s = 5
	}
	s = math.Round(s*10) / 10
	return &s
}

func cagrTier(p *float64) float64 {
	if p == nil {
		return 0
	}
	switch v := *p; {
	case v >= 100:
		return 2
	case v >= 50:
		return 1.5
	case v >= 25:
		return 1
	case v >= 0:
		return 0.5
	default:
		return 0
	}
}

// completeness scores the 8 tracked revenue fields and derives the
// confidence level from the score and the missing critical fields.
func completeness(rec *types.CompanyRecord, a *types.RevenueAnalytics, timelineCurrent *float64) types.CompletenessReport {
	tracked := []bool{
		a.PrimaryMetric != types.MetricNone,
		rec.RevenueYearMinus2 != nil,
		rec.RevenueYearMinus1 != nil,
		rec.ProjectedRevenueYear1 != nil,
		rec.ProjectedRevenueYear2 != nil,
		rec.RevenueGrowth != nil,
		rec.ProjectedRevenueGrowth != nil,
		rec.CurrentARR != nil || rec.ARR != nil,
	}
	present := 0
	for _, ok := range tracked {
		if ok {
			present++
		}
	}

	r := types.CompletenessReport{
		Score:                      math.Round(float64(present)/float64(len(tracked))*100*10) / 10,
		CanCalculateYoY:            positive(timelineCurrent) && positive(rec.RevenueYearMinus1),
		CanCalculateHistoricalCAGR: positive(timelineCurrent) && positive(rec.RevenueYearMinus2),
		CanCalculateForwardCAGR:    positive(timelineCurrent) && positive(rec.ProjectedRevenueYear2),
		CanCalculateExitModeling:   positive(rec.ProjectedRevenueYear2) && positive(rec.PostMoneyValuation),
	}

	critical := []struct {
		name string
		ok   bool
	}{
		{"currentRevenue", positive(timelineCurrent) || a.PrimaryMetric == types.MetricARR},
		{"revenueYearMinus1", rec.RevenueYearMinus1 != nil},
		{"projectedRevenueYear2", rec.ProjectedRevenueYear2 != nil},
		{"postMoneyValuation", rec.PostMoneyValuation != nil},
	}
	for _, c := range critical {
		if !c.ok {
			r.MissingCriticalFields = append(r.MissingCriticalFields, c.name)
		}
	}

	switch {
	case r.Score >= 80:
		r.ConfidenceLevel = types.ConfidenceHigh
	case r.Score >= 60:
		r.ConfidenceLevel = types.ConfidenceMedium
	case r.Score >= 40:
		r.ConfidenceLevel = types.ConfidenceLow
	default:
		r.ConfidenceLevel = types.ConfidenceInsufficient
	}
	// the percentage alone overstates confidence when the fields that
	// drive the models are the missing ones
	switch n := len(r.MissingCriticalFields); {
	case n >= 3:
		r.ConfidenceLevel = types.ConfidenceInsufficient
	case n == 2 && (r.ConfidenceLevel == types.ConfidenceHigh || r.ConfidenceLevel == types.ConfidenceMedium):
		r.ConfidenceLevel = types.ConfidenceLow
	}
	return r
}

func positive(p *float64) bool { return p != nil && *p > 0 }

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func mean(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func variance(vs []float64, avg float64) float64 {
	sum := 0.0
	for _, v := range vs {
		d := v - avg
		sum += d * d
	}
	return sum / float64(len(vs))
}
