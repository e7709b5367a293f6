package orchestrator

import (
	"encoding/json"
	"fmt"

	"portfolio-insights-go/internal/types"
)

const recommendationSystemPrompt = `You are a venture capital portfolio analyst. You evaluate portfolio companies from their canonical metrics and produce investment recommendations strictly as JSON.`

const researchSystemPrompt = `You are a market research assistant. Summarize current market conditions, comparable transactions and exit activity relevant to the given company. Be concise and factual.`

// BuildRecommendationPrompt assembles the reasoning prompt for one
// company. researchNotes may be empty when the research leg failed or
// is disabled.
func BuildRecommendationPrompt(rec *types.CompanyRecord, researchNotes string) string {
	recJSON, _ := json.MarshalIndent(rec, "", "  ")
	if researchNotes == "" {
		researchNotes = "(no external research available)"
	}

	prompt := `Analyze the portfolio company below and produce an investment recommendation.

Your answer MUST be grounded in:
- The company record (including its derived revenue analytics and warning flags)
- The market research notes
- NO outside knowledge
- NO hallucinated numbers

If information is missing, say so in the rationale instead of inventing figures.
Respect the credibility flag and the data-completeness report: a record with
insufficient data cannot support a high-confidence recommendation.

----------------------------------------------------------------------
SCHEMA (STRICT - RETURN ONLY JSON)
{
  "action": "",              // one of: invest_more, hold, exit, pass, watch
  "confidence_score": 0.0,   // 0.0 - 1.0
  "rationale": "",
  "key_risks": [],
  "growth_outlook": ""
}
----------------------------------------------------------------------

MARKET RESEARCH NOTES:
%s

COMPANY RECORD:
%s

----------------------------------------------------------------------
Return ONLY valid JSON matching the schema. No commentary, no markdown fences.
`
	return fmt.Sprintf(prompt, researchNotes, string(recJSON))
}

// BuildResearchPrompt asks the web-research provider for market context
// on one company.
func BuildResearchPrompt(rec *types.CompanyRecord) string {
	stage := "unknown stage"
	if rec.SeriesStage != nil {
		stage = *rec.SeriesStage
	}
	industry := rec.Industry
	if industry == "" {
		industry = "unspecified industry"
	}
	return fmt.Sprintf(
		"Summarize, in under 200 words, the current funding and exit environment for a %s company in %s. "+
			"Cover: recent comparable rounds, exit activity, and any sector headwinds. Company: %s.",
		stage, industry, rec.CompanyName)
}
