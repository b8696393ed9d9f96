// ABOUTME: Tests for provider selection from configuration
// ABOUTME: Verifies each provider name maps to the right embedder
package embedding

import (
	"testing"

	"github.com/harper/wosum/internal/config"
)

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{
			name:     "hash",
			cfg:      config.Config{EmbeddingProvider: config.ProviderHash, EmbeddingDimension: 16},
			wantName: "hash",
		},
		{
			name:     "openai",
			cfg:      config.Config{EmbeddingProvider: config.ProviderOpenAI, OpenAIKey: "k", EmbeddingModel: config.DefaultEmbeddingModel},
			wantName: "openai",
		},
		{
			name:     "gemini",
			cfg:      config.Config{EmbeddingProvider: config.ProviderGemini, GeminiAPIKey: "k", EmbeddingModel: config.DefaultEmbeddingModel},
			wantName: "gemini",
		},
		{
			name:    "openai without key",
			cfg:     config.Config{EmbeddingProvider: config.ProviderOpenAI},
			wantErr: true,
		},
		{
			name:    "unknown",
			cfg:     config.Config{EmbeddingProvider: "word2vec"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			e, err := NewFromConfig(&cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFromConfig() error = %v", err)
			}
			if e.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", e.Name(), tt.wantName)
			}
		})
	}
}

func TestNewFromConfig_DefaultModelMapping(t *testing.T) {
	cfg := &config.Config{EmbeddingProvider: config.ProviderOpenAI, OpenAIKey: "k", EmbeddingModel: config.DefaultEmbeddingModel}
	e, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	if got := e.(*OpenAIEmbedder).model; got != DefaultOpenAIModel {
		t.Errorf("model = %q, want %q", got, DefaultOpenAIModel)
	}
}
