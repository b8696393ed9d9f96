// ABOUTME: OpenAI embeddings provider using go-openai
// ABOUTME: Embeds in batches and restores input order from the response index field
package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/harper/wosum/internal/logging"
	"github.com/harper/wosum/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no OpenAI-specific model is configured
const DefaultOpenAIModel = openai.SmallEmbedding3

// OpenAIConfig configures the OpenAI embedder
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	BatchSize  int
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// OpenAIEmbedder wraps the OpenAI embeddings API with batching and retry
type OpenAIEmbedder struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	batchSize  int
	maxRetries int
	retryDelay time.Duration
}

// NewOpenAIEmbedder creates an embedder from cfg
func NewOpenAIEmbedder(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	model := openai.EmbeddingModel(cfg.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 64
	}
	delay := cfg.RetryDelay
	if delay == 0 {
		delay = time.Second
	}

	return &OpenAIEmbedder{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      model,
		batchSize:  batch,
		maxRetries: cfg.MaxRetries,
		retryDelay: delay,
	}, nil
}

// Name returns the identifier of this embedder implementation
func (e *OpenAIEmbedder) Name() string { return "openai" }

// Embed embeds texts batch by batch, keeping input order
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))

	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		vectors, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", start, end-1, err)
		}
		out = append(out, vectors...)
		logging.L().Debugw("embedded batch", "provider", e.Name(), "model", e.model, "start", start, "size", end-start)
	}

	return out, nil
}

func (e *OpenAIEmbedder) embedBatch(ctx context.Context, batch []string) ([][]float64, error) {
	var resp openai.EmbeddingResponse

	err := util.Retry(ctx, e.maxRetries, e.retryDelay, func(attempt int) error {
		if attempt > 0 {
			logging.L().Warnw("retrying embedding batch", "attempt", attempt+1, "size", len(batch))
		}
		r, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: batch,
			Model: e.model,
		})
		if err != nil {
			if status := openAIStatus(err); status != 0 && !util.RetryableStatus(status) {
				return util.Permanent(err)
			}
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Data may arrive out of order; Index is authoritative.
	vectors := make([][]float64, len(batch))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(batch) || vectors[d.Index] != nil {
			return nil, &ShapeError{Provider: e.Name(), Want: len(batch), Got: len(resp.Data), Index: -1}
		}
		vec := make([]float64, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float64(v)
		}
		vectors[d.Index] = vec
	}
	for _, v := range vectors {
		if v == nil {
			return nil, &ShapeError{Provider: e.Name(), Want: len(batch), Got: len(resp.Data), Index: -1}
		}
	}
	return vectors, nil
}

// openAIStatus extracts the HTTP status from a go-openai error, 0 if none
func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
