// Package rowparse turns one workbook data row into a typed company
// record. Malformed cells never fail a row; they degrade to nil or a
// documented default. A row is only dropped when it is entirely empty
// or carries no company name.
package rowparse

import (
	"strconv"
	"strings"

	"portfolio-insights-go/internal/columnmap"
	"portfolio-insights-go/internal/types"
)

const (
	defaultRating          = 1
	defaultRoundComplexity = 3
	defaultExitTimeline    = 3
)

// Parse builds a CompanyRecord from one data row. ok is false when the
// row is empty or has no company name.
func Parse(row []string, m columnmap.Mapping, id int) (rec *types.CompanyRecord, ok bool) {
	if isEmptyRow(row) {
		return nil, false
	}
	name, _ := m.Cell(columnmap.FieldCompanyName, row)
	if name == "" {
		return nil, false
	}

	rec = &types.CompanyRecord{ID: id, CompanyName: name}

	rec.TotalInvestment = currency(m, row, columnmap.FieldTotalInvestment)
	rec.AdditionalInvestmentRequested = currency(m, row, columnmap.FieldAdditionalInvestmentRequested)
	rec.PreMoneyValuation = currency(m, row, columnmap.FieldPreMoneyValuation)
	rec.PostMoneyValuation = currency(m, row, columnmap.FieldPostMoneyValuation)
	rec.TotalRaiseRequest = currency(m, row, columnmap.FieldTotalRaiseRequest)
	rec.AmountRequestedFromFirm = currency(m, row, columnmap.FieldAmountRequestedFromFirm)
	rec.CAEquityValuation = currency(m, row, columnmap.FieldCAEquityValuation)

	rec.EquityStake = percent(m, row, columnmap.FieldEquityStake)
	rec.RevenueGrowth = percent(m, row, columnmap.FieldRevenueGrowth)
	rec.ProjectedRevenueGrowth = percent(m, row, columnmap.FieldProjectedRevenueGrowth)

	rec.MOIC = multiplier(m, row, columnmap.FieldMOIC)
	rec.BurnMultiple = multiplier(m, row, columnmap.FieldBurnMultiple)
	rec.RunwayMonths = currency(m, row, columnmap.FieldRunway)

	rec.Revenue = currency(m, row, columnmap.FieldRevenue)
	rec.ARR = currency(m, row, columnmap.FieldARR)
	rec.CurrentARR = currency(m, row, columnmap.FieldCurrentARR)
	rec.RevenueYearMinus2 = currency(m, row, columnmap.FieldRevenueYearMinus2)
	rec.RevenueYearMinus1 = currency(m, row, columnmap.FieldRevenueYearMinus1)
	rec.CurrentRevenue = currency(m, row, columnmap.FieldCurrentRevenue)
	rec.ProjectedRevenueYear1 = currency(m, row, columnmap.FieldProjectedRevenueYear1)
	rec.ProjectedRevenueYear2 = currency(m, row, columnmap.FieldProjectedRevenueYear2)

	rec.TAM = rating(cell(m, row, columnmap.FieldTAM))
	rec.BarrierToEntry = rating(cell(m, row, columnmap.FieldBarrierToEntry))
	rec.RoundComplexity = boundedInt(cell(m, row, columnmap.FieldRoundComplexity), 1, 5, defaultRoundComplexity)
	rec.ExitTimelineYrs = boundedInt(cell(m, row, columnmap.FieldExitTimeline), 1, 20, defaultExitTimeline)
	rec.InvestorInterest = optionalBoundedInt(cell(m, row, columnmap.FieldInvestorInterest), 1, 5)
	rec.SeriesStage = normalizeStage(cell(m, row, columnmap.FieldSeriesStage))
	rec.ExitActivity = cell(m, row, columnmap.FieldExitActivity)
	rec.Industry = cell(m, row, columnmap.FieldIndustry)
	rec.TopPerformer = truthy(cell(m, row, columnmap.FieldTopPerformer))

	// A hard zero in any of these marks the row as a prospective
	// company, not an existing position. Absent is not zero.
	rec.IsExistingInvestment = !(isZero(rec.TotalInvestment) ||
		isZero(rec.EquityStake) ||
		isZero(rec.CAEquityValuation))

	return rec, true
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func cell(m columnmap.Mapping, row []string, f columnmap.Field) string {
	s, _ := m.Cell(f, row)
	return s
}

func isZero(p *float64) bool { return p != nil && *p == 0 }

// ParseCurrency strips $, commas, % and whitespace and parses a float.
// Empty, "-" and "N/A" cells are nil, as is anything unparseable.
func ParseCurrency(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if isPlaceholder(s) {
		return nil
	}
	for _, cut := range []string{"$", ",", "%", " "} {
		s = strings.ReplaceAll(s, cut, "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func currency(m columnmap.Mapping, row []string, f columnmap.Field) *float64 {
	raw, ok := m.Cell(f, row)
	if !ok {
		return nil
	}
	v := ParseCurrency(raw)
	if v != nil && m.InThousands(f) {
		scaled := *v * 1000
		return &scaled
	}
	return v
}

// ParsePercent keeps values from cells with a literal % as-is, treats a
// bare value strictly between 0 and 1 as a decimal fraction, and leaves
// everything else untouched (covers sheets already in absolute
// percentage points, including >100% hyper-growth).
func ParsePercent(raw string) *float64 {
	v := ParseCurrency(raw)
	if v == nil {
		return nil
	}
	if strings.Contains(raw, "%") {
		return v
	}
	if *v > 0 && *v < 1 {
		scaled := *v * 100
		return &scaled
	}
	return v
}

func percent(m columnmap.Mapping, row []string, f columnmap.Field) *float64 {
	raw, ok := m.Cell(f, row)
	if !ok {
		return nil
	}
	return ParsePercent(raw)
}

// ParseMultiplier parses "2.5x" style cells.
func ParseMultiplier(raw string) *float64 {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, "xX ")
	return ParseCurrency(s)
}

func multiplier(m columnmap.Mapping, row []string, f columnmap.Field) *float64 {
	raw, ok := m.Cell(f, row)
	if !ok {
		return nil
	}
	return ParseMultiplier(raw)
}

// rating parses a 1-5 rating, keeping digits only. Unparseable input
// falls back to 1; out-of-range values clamp.
func rating(raw string) int {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return defaultRating
	}
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// boundedInt parses an int and substitutes def when the value is
// unparseable or outside [lo, hi].
func boundedInt(raw string, lo, hi, def int) int {
	n, ok := parseInt(raw)
	if !ok || n < lo || n > hi {
		return def
	}
	return n
}

// optionalBoundedInt is boundedInt without a default: absence stays nil
// because it is meaningful (unrated is not the same as rated low).
func optionalBoundedInt(raw string, lo, hi int) *int {
	n, ok := parseInt(raw)
	if !ok || n < lo || n > hi {
		return nil
	}
	return &n
}

func parseInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if isPlaceholder(s) {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	// spreadsheets routinely store ints as "3.0"
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// normalizeStage maps free-text round descriptions onto the fixed stage
// vocabulary. Placeholders become nil; unknown text passes through.
func normalizeStage(raw string) *string {
	s := strings.TrimSpace(raw)
	if isPlaceholder(s) || strings.EqualFold(s, "tbd") {
		return nil
	}
	l := strings.ToLower(s)
	var stage string
	switch {
	case strings.Contains(l, "seed"):
		stage = "Seed"
	case strings.Contains(l, "series a"):
		stage = "Series A"
	case strings.Contains(l, "series b"):
		stage = "Series B"
	case strings.Contains(l, "series c"):
		stage = "Series C"
	case strings.Contains(l, "growth"):
		stage = "Growth"
	default:
		stage = s
	}
	return &stage
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "true":
		return true
	}
	return false
}

func isPlaceholder(s string) bool {
	return s == "" || s == "-" || strings.EqualFold(s, "n/a")
}
