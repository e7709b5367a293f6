package orchestrator

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"portfolio-insights-go/internal/types"
)

// ParseRecommendation extracts the recommendation JSON out of raw LLM
// output: strip markdown fences, find the first balanced object, and
// run it through json-repair before giving up.
func ParseRecommendation(content string) (types.Recommendation, error) {
	var rec types.Recommendation

	candidate := extractJSON(content)
	if candidate == "" {
		candidate = content
	}
	if err := json.Unmarshal([]byte(candidate), &rec); err == nil {
		return rec, validateRecommendation(rec)
	}

	repaired, err := jsonrepair.RepairJSON(candidate)
	if err != nil {
		return rec, fmt.Errorf("no JSON found in LLM output: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &rec); err != nil {
		return rec, fmt.Errorf("repaired LLM output still not a recommendation: %w", err)
	}
	return rec, validateRecommendation(rec)
}

func validateRecommendation(rec types.Recommendation) error {
	switch rec.Action {
	case "invest_more", "hold", "exit", "pass", "watch":
	default:
		return fmt.Errorf("unknown recommendation action %q", rec.Action)
	}
	if rec.ConfidenceScore < 0 || rec.ConfidenceScore > 1 {
		return fmt.Errorf("confidence score %v outside [0,1]", rec.ConfidenceScore)
	}
	return nil
}

// extractJSON finds the first balanced JSON object in a string,
// stripping common markdown fences first.
func extractJSON(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, fence := range []string{"```json", "```yaml", "```text", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
