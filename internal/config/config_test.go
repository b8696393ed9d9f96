// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing, defaults and validation
package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.CSVPath != "data/workorders.csv" {
		t.Errorf("CSVPath = %s, want data/workorders.csv", cfg.CSVPath)
	}
	if cfg.TargetAsset != "HVAC-321" {
		t.Errorf("TargetAsset = %s, want HVAC-321", cfg.TargetAsset)
	}
	if cfg.WindowSize != 10 {
		t.Errorf("WindowSize = %d, want 10", cfg.WindowSize)
	}
	if cfg.SummaryProvider != ProviderGemini {
		t.Errorf("SummaryProvider = %s, want gemini", cfg.SummaryProvider)
	}
	if cfg.SummaryTimeout != 60*time.Second {
		t.Errorf("SummaryTimeout = %v, want 60s", cfg.SummaryTimeout)
	}
	if cfg.SummaryMaxRetries != 0 {
		t.Errorf("SummaryMaxRetries = %d, want 0", cfg.SummaryMaxRetries)
	}
	if cfg.EmbeddingProvider != ProviderHash {
		t.Errorf("EmbeddingProvider = %s, want hash", cfg.EmbeddingProvider)
	}
	if cfg.EmbeddingModel != "all-MiniLM-L6-v2" {
		t.Errorf("EmbeddingModel = %s, want all-MiniLM-L6-v2", cfg.EmbeddingModel)
	}
	if cfg.EmbeddingDimension != 384 {
		t.Errorf("EmbeddingDimension = %d, want 384", cfg.EmbeddingDimension)
	}
	if cfg.EmbeddingBatchSize != 64 {
		t.Errorf("EmbeddingBatchSize = %d, want 64", cfg.EmbeddingBatchSize)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("LogLevel/LogFormat = %s/%s, want info/console", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.GeminiAPIKey != "" {
		t.Errorf("GeminiAPIKey = %q, want empty", cfg.GeminiAPIKey)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("CSV_PATH", "/tmp/wo.csv")
	os.Setenv("TARGET_ASSET", "PUMP-7")
	os.Setenv("WINDOW_SIZE", "25")
	os.Setenv("SUMMARY_PROVIDER", "openai")
	os.Setenv("GEMINI_API_KEY", "gem-key")
	os.Setenv("GEMINI_API_URL", "http://localhost:9999/generate")
	os.Setenv("OPENAI_API_KEY", "oa-key")
	os.Setenv("SUMMARY_MODEL", "gpt-4o")
	os.Setenv("SUMMARY_TIMEOUT", "15s")
	os.Setenv("SUMMARY_MAX_RETRIES", "2")
	os.Setenv("SUMMARY_RETRY_DELAY", "500ms")
	os.Setenv("EMBEDDING_PROVIDER", "openai")
	os.Setenv("EMBEDDING_MODEL", "text-embedding-3-small")
	os.Setenv("EMBEDDING_BATCH_SIZE", "16")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.CSVPath != "/tmp/wo.csv" {
		t.Errorf("CSVPath = %s", cfg.CSVPath)
	}
	if cfg.TargetAsset != "PUMP-7" {
		t.Errorf("TargetAsset = %s", cfg.TargetAsset)
	}
	if cfg.WindowSize != 25 {
		t.Errorf("WindowSize = %d", cfg.WindowSize)
	}
	if cfg.SummaryProvider != ProviderOpenAI {
		t.Errorf("SummaryProvider = %s", cfg.SummaryProvider)
	}
	if cfg.GeminiAPIKey != "gem-key" || cfg.GeminiAPIURL != "http://localhost:9999/generate" {
		t.Errorf("Gemini settings = %s %s", cfg.GeminiAPIKey, cfg.GeminiAPIURL)
	}
	if cfg.OpenAIKey != "oa-key" || cfg.SummaryModel != "gpt-4o" {
		t.Errorf("OpenAI settings = %s %s", cfg.OpenAIKey, cfg.SummaryModel)
	}
	if cfg.SummaryTimeout != 15*time.Second {
		t.Errorf("SummaryTimeout = %v", cfg.SummaryTimeout)
	}
	if cfg.SummaryMaxRetries != 2 || cfg.SummaryRetryDelay != 500*time.Millisecond {
		t.Errorf("retry settings = %d %v", cfg.SummaryMaxRetries, cfg.SummaryRetryDelay)
	}
	if cfg.EmbeddingProvider != ProviderOpenAI || cfg.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("embedding settings = %s %s", cfg.EmbeddingProvider, cfg.EmbeddingModel)
	}
	if cfg.EmbeddingBatchSize != 16 {
		t.Errorf("EmbeddingBatchSize = %d", cfg.EmbeddingBatchSize)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log settings = %s %s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_MalformedValuesUseDefaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("WINDOW_SIZE", "ten")
	os.Setenv("SUMMARY_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.WindowSize != 10 {
		t.Errorf("WindowSize = %d, want default 10", cfg.WindowSize)
	}
	if cfg.SummaryTimeout != 60*time.Second {
		t.Errorf("SummaryTimeout = %v, want default 60s", cfg.SummaryTimeout)
	}
}

func validConfig() *Config {
	os.Clearenv()
	cfg, _ := Load()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		contains string
	}{
		{"negative window", func(c *Config) { c.WindowSize = -1 }, "WINDOW_SIZE"},
		{"summary retries too high", func(c *Config) { c.SummaryMaxRetries = 11 }, "SUMMARY_MAX_RETRIES"},
		{"embedding retries negative", func(c *Config) { c.EmbeddingMaxRetries = -1 }, "EMBEDDING_MAX_RETRIES"},
		{"zero batch", func(c *Config) { c.EmbeddingBatchSize = 0 }, "EMBEDDING_BATCH_SIZE"},
		{"zero timeout", func(c *Config) { c.SummaryTimeout = 0 }, "SUMMARY_TIMEOUT"},
		{"zero hash dimension", func(c *Config) { c.EmbeddingDimension = 0 }, "EMBEDDING_DIMENSION"},
		{"unknown embedder", func(c *Config) { c.EmbeddingProvider = "bert" }, "EMBEDDING_PROVIDER"},
		{"openai embedder without key", func(c *Config) { c.EmbeddingProvider = ProviderOpenAI }, "OPENAI_API_KEY"},
		{"gemini embedder without key", func(c *Config) { c.EmbeddingProvider = ProviderGemini }, "GEMINI_API_KEY"},
		{"unknown summarizer", func(c *Config) { c.SummaryProvider = "claude" }, "SUMMARY_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should mention %s", err.Error(), tt.contains)
			}
		})
	}
}

func TestValidate_WindowZeroAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.WindowSize = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestRequireSummaryCredentials(t *testing.T) {
	cfg := validConfig()

	if err := cfg.RequireSummaryCredentials(); err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("expected missing GEMINI_API_KEY error, got %v", err)
	}

	cfg.GeminiAPIKey = "key"
	if err := cfg.RequireSummaryCredentials(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.SummaryProvider = ProviderOpenAI
	if err := cfg.RequireSummaryCredentials(); err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("expected missing OPENAI_API_KEY error, got %v", err)
	}

	cfg.OpenAIKey = "key"
	if err := cfg.RequireSummaryCredentials(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
