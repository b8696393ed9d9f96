// ABOUTME: Builds the configured TextEmbedder from the run configuration
// ABOUTME: Maps the local default model name onto each remote provider's default
package embedding

import (
	"fmt"

	"github.com/harper/wosum/internal/config"
)

// NewFromConfig returns the embedder selected by cfg.EmbeddingProvider
func NewFromConfig(cfg *config.Config) (TextEmbedder, error) {
	model := cfg.EmbeddingModel
	if model == config.DefaultEmbeddingModel {
		model = ""
	}

	switch cfg.EmbeddingProvider {
	case config.ProviderHash, "":
		return NewHashEmbedder(cfg.EmbeddingDimension), nil
	case config.ProviderOpenAI:
		e, err := NewOpenAIEmbedder(OpenAIConfig{
			APIKey:     cfg.OpenAIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      model,
			BatchSize:  cfg.EmbeddingBatchSize,
			MaxRetries: cfg.EmbeddingMaxRetries,
			Timeout:    cfg.EmbeddingTimeout,
		})
		if err != nil {
			return nil, err
		}
		return e, nil
	case config.ProviderGemini:
		e, err := NewGeminiEmbedder(GeminiConfig{
			APIKey:     cfg.GeminiAPIKey,
			BaseURL:    cfg.GeminiBaseURL,
			Model:      model,
			BatchSize:  cfg.EmbeddingBatchSize,
			MaxRetries: cfg.EmbeddingMaxRetries,
			Timeout:    cfg.EmbeddingTimeout,
		})
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.EmbeddingProvider)
	}
}
