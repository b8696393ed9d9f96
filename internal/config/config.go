// ABOUTME: Centralized configuration for the work-order summarizer
// ABOUTME: Loads from environment variables once at startup with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted by EMBEDDING_PROVIDER and SUMMARY_PROVIDER
const (
	ProviderHash   = "hash"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// DefaultEmbeddingModel names the local model the hash embedder stands in for
const DefaultEmbeddingModel = "all-MiniLM-L6-v2"

// Config holds all configuration for one run
type Config struct {
	// Input settings
	CSVPath     string
	TargetAsset string
	WindowSize  int

	// Summary service settings
	SummaryProvider   string
	GeminiAPIKey      string
	GeminiAPIURL      string
	GeminiBaseURL     string
	OpenAIKey         string
	OpenAIBaseURL     string
	SummaryModel      string
	SummaryTimeout    time.Duration
	SummaryMaxRetries int
	SummaryRetryDelay time.Duration

	// Embedding settings
	EmbeddingProvider   string
	EmbeddingModel      string
	EmbeddingDimension  int
	EmbeddingBatchSize  int
	EmbeddingMaxRetries int
	EmbeddingTimeout    time.Duration

	// Logging settings
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		CSVPath:     getEnv("CSV_PATH", "data/workorders.csv"),
		TargetAsset: getEnv("TARGET_ASSET", "HVAC-321"),
		WindowSize:  getEnvInt("WINDOW_SIZE", 10),

		SummaryProvider:   getEnv("SUMMARY_PROVIDER", ProviderGemini),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiAPIURL:      getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		SummaryModel:      getEnv("SUMMARY_MODEL", "gpt-4o-mini"),
		SummaryTimeout:    getEnvDuration("SUMMARY_TIMEOUT", 60*time.Second),
		SummaryMaxRetries: getEnvInt("SUMMARY_MAX_RETRIES", 0),
		SummaryRetryDelay: getEnvDuration("SUMMARY_RETRY_DELAY", time.Second),

		EmbeddingProvider:   getEnv("EMBEDDING_PROVIDER", ProviderHash),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", DefaultEmbeddingModel),
		EmbeddingDimension:  getEnvInt("EMBEDDING_DIMENSION", 384),
		EmbeddingBatchSize:  getEnvInt("EMBEDDING_BATCH_SIZE", 64),
		EmbeddingMaxRetries: getEnvInt("EMBEDDING_MAX_RETRIES", 3),
		EmbeddingTimeout:    getEnvDuration("EMBEDDING_TIMEOUT", 30*time.Second),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges and provider names
func (c *Config) Validate() error {
	if c.WindowSize < 0 {
		return fmt.Errorf("WINDOW_SIZE must be >= 0, got %d", c.WindowSize)
	}
	if c.SummaryMaxRetries < 0 || c.SummaryMaxRetries > 10 {
		return fmt.Errorf("SUMMARY_MAX_RETRIES must be 0-10, got %d", c.SummaryMaxRetries)
	}
	if c.EmbeddingMaxRetries < 0 || c.EmbeddingMaxRetries > 10 {
		return fmt.Errorf("EMBEDDING_MAX_RETRIES must be 0-10, got %d", c.EmbeddingMaxRetries)
	}
	if c.EmbeddingBatchSize <= 0 {
		return fmt.Errorf("EMBEDDING_BATCH_SIZE must be positive, got %d", c.EmbeddingBatchSize)
	}
	if c.SummaryTimeout <= 0 {
		return fmt.Errorf("SUMMARY_TIMEOUT must be positive, got %v", c.SummaryTimeout)
	}
	switch c.EmbeddingProvider {
	case ProviderHash:
		if c.EmbeddingDimension <= 0 {
			return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", c.EmbeddingDimension)
		}
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for EMBEDDING_PROVIDER=openai")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for EMBEDDING_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("EMBEDDING_PROVIDER must be one of hash, openai, gemini, got %q", c.EmbeddingProvider)
	}
	switch c.SummaryProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("SUMMARY_PROVIDER must be gemini or openai, got %q", c.SummaryProvider)
	}
	return nil
}

// RequireSummaryCredentials reports a missing credential for the configured summary provider.
// Commands that never call the generator skip this check.
func (c *Config) RequireSummaryCredentials() error {
	switch c.SummaryProvider {
	case ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for SUMMARY_PROVIDER=openai")
		}
	default:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for SUMMARY_PROVIDER=gemini")
		}
		if c.GeminiAPIURL == "" {
			return fmt.Errorf("GEMINI_API_URL is required for SUMMARY_PROVIDER=gemini")
		}
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
