package orchestrator

import (
	"portfolio-insights-go/internal/config"
)

// NewOpenAI builds the reasoning provider (investment recommendations).
func NewOpenAI(cfg config.Config) Provider {
	return &chatClient{
		name:         "openai",
		url:          cfg.OpenAIBaseURL + "/chat/completions",
		apiKey:       cfg.OpenAIKey,
		model:        cfg.OpenAIModel,
		timeout:      cfg.ProviderTimeout,
		maxRetryTime: cfg.MaxRetryTime,
	}
}
