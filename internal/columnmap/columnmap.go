// Package columnmap resolves inconsistently named workbook headers to
// the canonical company-record schema. Matching is two-pass: an exact
// lookup against a versioned variant dictionary, then a keyword-count
// fuzzy pass for whatever is still unmapped.
package columnmap

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is a canonical record field name.
type Field string

const (
	FieldCompanyName                   Field = "companyName"
	FieldTotalInvestment               Field = "totalInvestment"
	FieldEquityStake                   Field = "equityStake"
	FieldAdditionalInvestmentRequested Field = "additionalInvestmentRequested"
	FieldPreMoneyValuation             Field = "preMoneyValuation"
	FieldPostMoneyValuation            Field = "postMoneyValuation"
	FieldTotalRaiseRequest             Field = "totalRaiseRequest"
	FieldAmountRequestedFromFirm       Field = "amountRequestedFromFirm"
	FieldCAEquityValuation             Field = "caEquityValuation"
	FieldMOIC                          Field = "moic"
	FieldRevenueGrowth                 Field = "revenueGrowth"
	FieldProjectedRevenueGrowth        Field = "projectedRevenueGrowth"
	FieldBurnMultiple                  Field = "burnMultiple"
	FieldRunway                        Field = "runway"
	FieldRevenue                       Field = "revenue"
	FieldARR                           Field = "arr"
	FieldCurrentARR                    Field = "currentARR"
	FieldRevenueYearMinus2             Field = "revenueYearMinus2"
	FieldRevenueYearMinus1             Field = "revenueYearMinus1"
	FieldCurrentRevenue                Field = "currentRevenue"
	FieldProjectedRevenueYear1         Field = "projectedRevenueYear1"
	FieldProjectedRevenueYear2         Field = "projectedRevenueYear2"
	FieldTAM                           Field = "tam"
	FieldBarrierToEntry                Field = "barrierToEntry"
	FieldRoundComplexity               Field = "roundComplexity"
	FieldExitTimeline                  Field = "exitTimeline"
	FieldExitActivity                  Field = "exitActivity"
	FieldIndustry                      Field = "industry"
	FieldInvestorInterest              Field = "investorInterest"
	FieldSeriesStage                   Field = "seriesStage"
	FieldTopPerformer                  Field = "topPerformer"
)

// The ingestion run is unusable without these three.
var essentialFields = []Field{FieldCompanyName, FieldTotalInvestment, FieldEquityStake}

//go:embed columns.yaml
var columnsYAML []byte

type tableField struct {
	Name     string   `yaml:"name"`
	Variants []string `yaml:"variants"`
	Keywords []string `yaml:"keywords"`
}

type mappingTable struct {
	Version int          `yaml:"version"`
	Fields  []tableField `yaml:"fields"`
}

var defaultTable = mustLoadTable(columnsYAML)

func mustLoadTable(raw []byte) mappingTable {
	var t mappingTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		panic(fmt.Sprintf("columnmap: bad embedded mapping table: %v", err))
	}
	if len(t.Fields) == 0 {
		panic("columnmap: embedded mapping table has no fields")
	}
	return t
}

// Normalize lowercases a header and strips everything that is not a
// letter or digit, so "Total Investment ($ in Thousands)" becomes
// "totalinvestmentinthousands".
func Normalize(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Column is one resolved workbook column.
type Column struct {
	Index  int    `json:"index"`
	Header string `json:"header"` // raw header text, unit suffixes intact
	Field  Field  `json:"field"`
}

// Mapping is the resolved header→field assignment for one workbook.
type Mapping struct {
	Version int
	columns map[Field]Column
}

// Column returns the resolved column for a field, if any.
func (m Mapping) Column(f Field) (Column, bool) {
	c, ok := m.columns[f]
	return c, ok
}

// Cell reads the trimmed raw cell for a field out of a data row.
// ok is false when the field is unmapped or the row is too short.
func (m Mapping) Cell(f Field, row []string) (string, bool) {
	c, ok := m.columns[f]
	if !ok || c.Index >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[c.Index]), true
}

// InThousands reports whether a field's source header declares thousands
// units. totalInvestment templates always carry the suffix, so it is
// scaled regardless.
func (m Mapping) InThousands(f Field) bool {
	if f == FieldTotalInvestment {
		return true
	}
	c, ok := m.columns[f]
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(c.Header), "thousand")
}

// Len returns how many fields were resolved.
func (m Mapping) Len() int { return len(m.columns) }

// Map resolves raw headers to canonical fields. It fails only when one
// of the essential fields (company name, total investment, equity
// stake) cannot be located; the error names the missing fields and the
// full header list so the user knows what to fix.
func Map(headers []string) (Mapping, error) {
	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = Normalize(h)
	}

	cols := make(map[Field]Column)
	claimed := make(map[int]bool)

	// Pass 1: exact variant dictionary. First hit wins.
	for _, tf := range defaultTable.Fields {
		for i, n := range norm {
			if claimed[i] || n == "" {
				continue
			}
			if hasVariant(tf, n) {
				cols[Field(tf.Name)] = Column{Index: i, Header: headers[i], Field: Field(tf.Name)}
				claimed[i] = true
				break
			}
		}
	}

	// Pass 2: keyword threshold over whatever is still unmapped.
	for _, tf := range defaultTable.Fields {
		f := Field(tf.Name)
		if _, ok := cols[f]; ok || len(tf.Keywords) == 0 {
			continue
		}
		need := 2
		if len(tf.Keywords) < need {
			need = len(tf.Keywords)
		}
		for i, n := range norm {
			if claimed[i] || n == "" {
				continue
			}
			hits := 0
			for _, kw := range tf.Keywords {
				if strings.Contains(n, Normalize(kw)) {
					hits++
				}
			}
			if hits >= need {
				cols[f] = Column{Index: i, Header: headers[i], Field: f}
				claimed[i] = true
				break
			}
		}
	}

	var missing []string
	for _, f := range essentialFields {
		if _, ok := cols[f]; !ok {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return Mapping{}, fmt.Errorf("essential columns not found: %s (available headers: %s)",
			strings.Join(missing, ", "), strings.Join(nonEmptyHeaders(headers), ", "))
	}

	return Mapping{Version: defaultTable.Version, columns: cols}, nil
}

func hasVariant(tf tableField, normalized string) bool {
	for _, v := range tf.Variants {
		if v == normalized {
			return true
		}
	}
	return false
}

func nonEmptyHeaders(headers []string) []string {
	var out []string
	for _, h := range headers {
		if strings.TrimSpace(h) != "" {
			out = append(out, strings.TrimSpace(h))
		}
	}
	return out
}
