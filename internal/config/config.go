// Package config materializes service configuration from the
// environment (plus an optional .env) into one explicit struct. API
// keys only ever travel inside this struct; no other package reads
// ambient storage.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatasetPath string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	PerplexityKey     string
	PerplexityBaseURL string
	PerplexityModel   string

	// UseMockLLM swaps both providers for deterministic mocks (offline
	// demos, tests).
	UseMockLLM bool

	ProviderTimeout time.Duration
	MaxRetryTime    time.Duration
}

// Load reads .env if present and resolves the config with defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        envOr("PORT", "8080"),
		DatasetPath: envOr("DATASET_PATH", "portfolio.xlsx"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o"),

		PerplexityKey:     os.Getenv("PERPLEXITY_API_KEY"),
		PerplexityBaseURL: envOr("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
		PerplexityModel:   envOr("PERPLEXITY_MODEL", "sonar-pro"),

		UseMockLLM: envBool("USE_MOCK_LLM"),

		ProviderTimeout: envDuration("PROVIDER_TIMEOUT_SEC", 25*time.Second),
		MaxRetryTime:    envDuration("PROVIDER_MAX_RETRY_SEC", 45*time.Second),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string) bool {
	return os.Getenv(k) == "true"
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			return time.Duration(sec) * time.Second
		}
	}
	return def
}
