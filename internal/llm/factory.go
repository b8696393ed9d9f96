// ABOUTME: Builds the configured SummaryService from the run configuration
// ABOUTME: Gemini is the default backend, OpenAI is selected with SUMMARY_PROVIDER=openai
package llm

import (
	"fmt"

	"github.com/harper/wosum/internal/config"
)

// NewFromConfig returns the summary backend selected by cfg.SummaryProvider
func NewFromConfig(cfg *config.Config) (SummaryService, error) {
	if err := cfg.RequireSummaryCredentials(); err != nil {
		return nil, err
	}

	switch cfg.SummaryProvider {
	case config.ProviderGemini, "":
		client, err := NewGeminiClient(GeminiConfig{
			APIURL:     cfg.GeminiAPIURL,
			APIKey:     cfg.GeminiAPIKey,
			Timeout:    cfg.SummaryTimeout,
			MaxRetries: cfg.SummaryMaxRetries,
			RetryDelay: cfg.SummaryRetryDelay,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderOpenAI:
		client, err := NewOpenAIClient(OpenAIConfig{
			APIKey:     cfg.OpenAIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			ChatModel:  cfg.SummaryModel,
			Timeout:    cfg.SummaryTimeout,
			MaxRetries: cfg.SummaryMaxRetries,
			RetryDelay: cfg.SummaryRetryDelay,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown summary provider: %s", cfg.SummaryProvider)
	}
}
