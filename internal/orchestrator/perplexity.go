package orchestrator

import (
	"portfolio-insights-go/internal/config"
)

// NewPerplexity builds the research provider (web-grounded market
// context fed into the recommendation prompt). Perplexity speaks the
// same chat-completions dialect as OpenAI.
func NewPerplexity(cfg config.Config) Provider {
	return &chatClient{
		name:         "perplexity",
		url:          cfg.PerplexityBaseURL + "/chat/completions",
		apiKey:       cfg.PerplexityKey,
		model:        cfg.PerplexityModel,
		timeout:      cfg.ProviderTimeout,
		maxRetryTime: cfg.MaxRetryTime,
	}
}
