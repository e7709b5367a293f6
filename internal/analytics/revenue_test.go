package analytics

import (
	"math"
	"testing"

	"portfolio-insights-go/internal/types"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestCAGR2YDoubling(t *testing.T) {
	// 100 -> 400 over two years is doubling each year: 100% CAGR
	got := CAGR2Y(fp(100), fp(400))
	if got == nil {
		t.Fatal("CAGR should be computable")
	}
	if math.Abs(*got-100) > 1e-9 {
		t.Errorf("CAGR2Y(100, 400) = %v, want 100", *got)
	}
}

func TestCAGR2YRequiresPositiveOperands(t *testing.T) {
	if CAGR2Y(nil, fp(400)) != nil {
		t.Error("nil earlier operand should yield nil")
	}
	if CAGR2Y(fp(0), fp(400)) != nil {
		t.Error("zero earlier operand should yield nil")
	}
	if CAGR2Y(fp(100), fp(-5)) != nil {
		t.Error("negative later operand should yield nil")
	}
}

func TestGrowthPercent(t *testing.T) {
	got := GrowthPercent(fp(200), fp(400))
	if got == nil || *got != 100 {
		t.Errorf("GrowthPercent(200, 400) = %v, want 100", got)
	}
	if GrowthPercent(fp(0), fp(400)) != nil {
		t.Error("zero base should yield nil")
	}
}

func TestMissingDataPropagation(t *testing.T) {
	rec := &types.CompanyRecord{ID: 1, CompanyName: "Acme", CurrentRevenue: fp(1000000)}
	a := Compute(rec)

	if a.PrimaryMetric != types.MetricRevenue {
		t.Errorf("primary metric = %q, want revenue", a.PrimaryMetric)
	}
	if a.YoYGrowthPercent != nil {
		t.Errorf("yoy = %v, want nil", *a.YoYGrowthPercent)
	}
	if a.HistoricalCAGR2Y != nil {
		t.Errorf("historical CAGR = %v, want nil", *a.HistoricalCAGR2Y)
	}
	if a.ForwardCAGR2Y != nil {
		t.Errorf("forward CAGR = %v, want nil", *a.ForwardCAGR2Y)
	}
	if a.TrajectoryPattern != types.TrajectoryInsufficientData {
		t.Errorf("trajectory = %q, want insufficient_data", a.TrajectoryPattern)
	}
	if len(a.WarningFlags) == 0 {
		t.Error("warning flags should not be empty")
	}
}

func TestNoMetricAtAll(t *testing.T) {
	a := Compute(&types.CompanyRecord{ID: 1, CompanyName: "Husk"})
	if a.PrimaryMetric != types.MetricNone {
		t.Errorf("primary metric = %q, want none", a.PrimaryMetric)
	}
	if a.RevenueTrajectoryScore != nil {
		t.Errorf("score = %v, want nil", *a.RevenueTrajectoryScore)
	}
	if len(a.WarningFlags) == 0 {
		t.Error("warning flags should not be empty")
	}
}

func TestARRPreferredOverRevenue(t *testing.T) {
	rec := &types.CompanyRecord{
		ID: 1, CompanyName: "Acme",
		CurrentARR:        fp(2000000),
		CurrentRevenue:    fp(1500000),
		RevenueYearMinus2: fp(500000),
	}
	a := Compute(rec)
	if a.PrimaryMetric != types.MetricARR {
		t.Errorf("primary metric = %q, want arr", a.PrimaryMetric)
	}
	// ARR carries no historical timeline, so the CAGRs stay nil
	if a.HistoricalCAGR2Y != nil {
		t.Errorf("historical CAGR = %v, want nil for ARR metric", *a.HistoricalCAGR2Y)
	}
	if len(a.WarningFlags) == 0 {
		t.Error("skipping the timeline should leave a warning")
	}
}

func TestFullTimelineComputations(t *testing.T) {
	rec := &types.CompanyRecord{
		ID: 1, CompanyName: "Acme",
		RevenueYearMinus2:     fp(100),
		RevenueYearMinus1:     fp(200),
		CurrentRevenue:        fp(400),
		ProjectedRevenueYear1: fp(600),
		ProjectedRevenueYear2: fp(900),
		PostMoneyValuation:    fp(9000),
	}
	a := Compute(rec)

	if a.YoYGrowthPercent == nil || math.Abs(*a.YoYGrowthPercent-100) > 1e-9 {
		t.Errorf("yoy = %v, want 100", a.YoYGrowthPercent)
	}
	if a.HistoricalCAGR2Y == nil || math.Abs(*a.HistoricalCAGR2Y-100) > 1e-9 {
		t.Errorf("historical CAGR = %v, want 100", a.HistoricalCAGR2Y)
	}
	// (900/400)^(1/2)-1 = 0.5 -> 50%
	if a.ForwardCAGR2Y == nil || math.Abs(*a.ForwardCAGR2Y-50) > 1e-9 {
		t.Errorf("forward CAGR = %v, want 50", a.ForwardCAGR2Y)
	}
	if a.ForwardRevenueMultiple == nil || math.Abs(*a.ForwardRevenueMultiple-10) > 1e-9 {
		t.Errorf("forward revenue multiple = %v, want 10", a.ForwardRevenueMultiple)
	}
}

func TestTrajectoryAccelerating(t *testing.T) {
	// rates 50%, 50%, 51%: each within 80% of the previous, avg > 25%
	got := TrajectoryPattern(fp(100), fp(150), fp(225), fp(340), nil)
	if got != types.TrajectoryAccelerating {
		t.Errorf("pattern = %q, want accelerating", got)
	}
}

func TestTrajectoryVolatile(t *testing.T) {
	// rates 120% then ~4.5%: collapse breaks the accelerating check and
	// variance exceeds 2500
	got := TrajectoryPattern(fp(100), fp(220), fp(230), nil, nil)
	if got != types.TrajectoryVolatile {
		t.Errorf("pattern = %q, want volatile", got)
	}
}

func TestTrajectoryStagnating(t *testing.T) {
	// rates 5%, ~4.8%: low average, every rate under 30%
	got := TrajectoryPattern(fp(100), fp(105), fp(110), nil, nil)
	if got != types.TrajectoryStagnating {
		t.Errorf("pattern = %q, want stagnating", got)
	}
}

func TestTrajectoryInsufficientData(t *testing.T) {
	if got := TrajectoryPattern(fp(100), nil, fp(400), nil, nil); got != types.TrajectoryInsufficientData {
		t.Errorf("pattern with 1 computable rate = %q, want insufficient_data", got)
	}
	if got := TrajectoryPattern(nil, nil, fp(400), nil, nil); got != types.TrajectoryInsufficientData {
		t.Errorf("pattern with 1 point = %q, want insufficient_data", got)
	}
}

func TestCredibilityRedFlag(t *testing.T) {
	// forward > 2x historical, forward > 100%, interest <= 2
	got := CredibilityFlag(fp(20), fp(150), 1)
	if got != types.CredibilityRedFlag {
		t.Errorf("flag = %q, want red_flag", got)
	}
}

func TestCredibilityHigh(t *testing.T) {
	got := CredibilityFlag(fp(100), fp(120), 4)
	if got != types.CredibilityHigh {
		t.Errorf("flag = %q, want high", got)
	}
}

func TestCredibilityLow(t *testing.T) {
	if got := CredibilityFlag(fp(80), fp(90), 2); got != types.CredibilityLow {
		t.Errorf("low interest: flag = %q, want low", got)
	}
	if got := CredibilityFlag(fp(20), fp(70), 3); got != types.CredibilityLow {
		t.Errorf("forward > 3x historical: flag = %q, want low", got)
	}
}

func TestCredibilityModerate(t *testing.T) {
	got := CredibilityFlag(fp(50), fp(60), 3)
	if got != types.CredibilityModerate {
		t.Errorf("flag = %q, want moderate", got)
	}
}

func TestCredibilityWithoutCAGRsUsesInterest(t *testing.T) {
	if got := CredibilityFlag(nil, nil, 1); got != types.CredibilityLow {
		t.Errorf("flag = %q, want low", got)
	}
	if got := CredibilityFlag(nil, fp(50), 5); got != types.CredibilityHigh {
		t.Errorf("flag = %q, want high", got)
	}
	if got := CredibilityFlag(fp(50), nil, 3); got != types.CredibilityModerate {
		t.Errorf("flag = %q, want moderate", got)
	}
}

func TestTrajectoryScoreComposition(t *testing.T) {
	// historical 100 -> 2 points, forward 60 -> 1.5 points, moderate +0.7
	got := TrajectoryScore(fp(100), fp(60), types.CredibilityModerate)
	if got == nil || *got != 4.2 {
		t.Errorf("score = %v, want 4.2", got)
	}
}

func TestTrajectoryScoreClamps(t *testing.T) {
	// negative CAGRs score 0 per tier; red flag pushes below zero
	got := TrajectoryScore(fp(-10), fp(-20), types.CredibilityRedFlag)
	if got == nil || *got != 0 {
		t.Errorf("score = %v, want 0", got)
	}
	got = TrajectoryScore(fp(500), fp(500), types.CredibilityHigh)
	if got == nil || *got != 5 {
		t.Errorf("score = %v, want 5", got)
	}
}

func TestTrajectoryScoreNilWithoutInputs(t *testing.T) {
	if got := TrajectoryScore(nil, nil, types.CredibilityHigh); got != nil {
		t.Errorf("score = %v, want nil", *got)
	}
}

func TestCompletenessFullRecord(t *testing.T) {
	rec := &types.CompanyRecord{
		ID: 1, CompanyName: "Acme",
		RevenueYearMinus2:      fp(100),
		RevenueYearMinus1:      fp(200),
		CurrentRevenue:         fp(400),
		ProjectedRevenueYear1:  fp(600),
		ProjectedRevenueYear2:  fp(900),
		RevenueGrowth:          fp(100),
		ProjectedRevenueGrowth: fp(50),
		ARR:                    fp(380),
		PostMoneyValuation:     fp(9000),
		InvestorInterest:       ip(4),
	}
	a := Compute(rec)
	c := a.Completeness
	if c.Score != 100 {
		t.Errorf("score = %v, want 100", c.Score)
	}
	if c.ConfidenceLevel != types.ConfidenceHigh {
		t.Errorf("confidence = %q, want high", c.ConfidenceLevel)
	}
	if len(c.MissingCriticalFields) != 0 {
		t.Errorf("missing critical fields = %v, want none", c.MissingCriticalFields)
	}
	if !c.CanCalculateExitModeling {
		t.Error("exit modeling should be possible with projections and post-money")
	}
}

func TestCompletenessSparseRecord(t *testing.T) {
	a := Compute(&types.CompanyRecord{ID: 1, CompanyName: "Husk"})
	c := a.Completeness
	if c.Score != 0 {
		t.Errorf("score = %v, want 0", c.Score)
	}
	if c.ConfidenceLevel != types.ConfidenceInsufficient {
		t.Errorf("confidence = %q, want insufficient", c.ConfidenceLevel)
	}
	if len(c.MissingCriticalFields) != 4 {
		t.Errorf("missing critical fields = %v, want all 4", c.MissingCriticalFields)
	}
	if c.CanCalculateYoY || c.CanCalculateHistoricalCAGR || c.CanCalculateForwardCAGR || c.CanCalculateExitModeling {
		t.Error("no capability flag should be set on an empty record")
	}
}
