package orchestrator

import (
	"context"
	"strings"
)

// mockProvider returns deterministic output for offline demos and
// tests, keyed off the prompt so research and recommendation calls
// stay distinguishable.
type mockProvider struct {
	name string
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Complete(_ context.Context, systemPrompt, _ string) (string, error) {
	if strings.Contains(systemPrompt, "market research") {
		return "Seed and Series A rounds in this sector closed at flat valuations this quarter; exit activity is limited to small strategic acquisitions.", nil
	}
	return `{
  "action": "hold",
  "confidence_score": 0.6,
  "rationale": "Growth metrics are positive but the forward projection is not yet validated by external investor interest.",
  "key_risks": ["projection credibility", "limited runway"],
  "growth_outlook": "moderate"
}`, nil
}
