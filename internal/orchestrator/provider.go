package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"portfolio-insights-go/internal/logger"
)

// Provider is one external LLM endpoint.
type Provider interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// chatClient talks to an OpenAI-compatible chat-completions endpoint
// with exponential-backoff retry. Both providers here speak this shape.
type chatClient struct {
	name         string
	url          string
	apiKey       string
	model        string
	timeout      time.Duration
	maxRetryTime time.Duration
}

func (c *chatClient) Name() string { return c.name }

func (c *chatClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	log := logger.New().WithComponent("llm-client").WithField("provider", c.name)

	if c.url == "" || c.apiKey == "" {
		return "", fmt.Errorf("%s provider not configured", c.name)
	}

	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature": 0.0,
	}
	data, _ := json.Marshal(reqBody)

	var content string
	var lastErr error

	op := func() error {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req, _ := http.NewRequestWithContext(reqCtx, "POST", c.url, bytes.NewReader(data))
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		client := &http.Client{Timeout: c.timeout}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("llm request failed")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		log.WithField("http_status", resp.StatusCode).Debug("llm response received")

		var parsed struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Choices) > 0 {
			content = parsed.Choices[0].Message.Content
			lastErr = nil
			return nil
		}

		lastErr = fmt.Errorf("unexpected %s response (status %d): %s", c.name, resp.StatusCode, truncate(string(body), 300))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// client errors don't get better on retry
			return backoff.Permanent(lastErr)
		}
		return lastErr
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.maxRetryTime

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return "", fmt.Errorf("%s completion failed: %w", c.name, lastErr)
	}
	return content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
