// Package orchestrator merges AI-generated recommendations onto
// canonical company records. The records themselves are read-mostly
// input; one provider failure marks that record's recommendation and
// never fails the batch.
package orchestrator

import (
	"context"

	"github.com/sirupsen/logrus"
	"portfolio-insights-go/internal/config"
	"portfolio-insights-go/internal/logger"
	"portfolio-insights-go/internal/types"
)

type Orchestrator struct {
	reasoner   Provider
	researcher Provider
}

// New wires the reasoning and research providers from config. With
// UseMockLLM set both legs are deterministic mocks.
func New(cfg config.Config) *Orchestrator {
	if cfg.UseMockLLM {
		return &Orchestrator{
			reasoner:   &mockProvider{name: "mock-reasoner"},
			researcher: &mockProvider{name: "mock-researcher"},
		}
	}
	o := &Orchestrator{reasoner: NewOpenAI(cfg)}
	if cfg.PerplexityKey != "" {
		o.researcher = NewPerplexity(cfg)
	}
	return o
}

// NewWithProviders exists for wiring custom providers (tests, gateways).
func NewWithProviders(reasoner, researcher Provider) *Orchestrator {
	return &Orchestrator{reasoner: reasoner, researcher: researcher}
}

// AnalyzeRecords runs research + recommendation per record,
// sequentially, and returns every input record: failed analyses carry
// the error in the recommendation payload instead of dropping the row.
func (o *Orchestrator) AnalyzeRecords(ctx context.Context, records []*types.CompanyRecord) []types.AnalyzedRecord {
	log := logger.New().WithComponent("orchestrator")

	out := make([]types.AnalyzedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, types.AnalyzedRecord{
			CompanyRecord:  rec,
			Recommendation: o.analyzeOne(ctx, rec, log),
		})
	}
	return out
}

func (o *Orchestrator) analyzeOne(ctx context.Context, rec *types.CompanyRecord, log *logrus.Entry) *types.Recommendation {
	recLog := log.WithField("company", rec.CompanyName)

	researchNotes := ""
	if o.researcher != nil {
		notes, err := o.researcher.Complete(ctx, researchSystemPrompt, BuildResearchPrompt(rec))
		if err != nil {
			// research is enrichment, not a prerequisite
			recLog.WithError(err).Warn("research provider failed, continuing without notes")
		} else {
			researchNotes = notes
		}
	}

	content, err := o.reasoner.Complete(ctx, recommendationSystemPrompt, BuildRecommendationPrompt(rec, researchNotes))
	if err != nil {
		recLog.WithError(err).Warn("reasoning provider failed")
		return &types.Recommendation{Provider: o.reasoner.Name(), Error: err.Error()}
	}

	parsed, err := ParseRecommendation(content)
	if err != nil {
		recLog.WithError(err).Warn("recommendation payload invalid")
		return &types.Recommendation{Provider: o.reasoner.Name(), Error: err.Error()}
	}
	parsed.Provider = o.reasoner.Name()
	parsed.ResearchNotes = researchNotes
	recLog.WithField("action", parsed.Action).Info("recommendation produced")
	return &parsed
}
