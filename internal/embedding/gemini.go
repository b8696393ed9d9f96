// ABOUTME: Gemini embeddings provider using the batchEmbedContents REST endpoint
// ABOUTME: Credential passed as the key query parameter like the generateContent call
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harper/wosum/internal/logging"
	"github.com/harper/wosum/internal/util"
)

// DefaultGeminiModel is used when no Gemini-specific model is configured
const DefaultGeminiModel = "text-embedding-004"

// GeminiConfig configures the Gemini embedder
type GeminiConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	BatchSize  int
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// GeminiEmbedder calls models/<model>:batchEmbedContents
type GeminiEmbedder struct {
	apiKey     string
	baseURL    string
	model      string
	batchSize  int
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
}

type geminiEmbedRequest struct {
	Requests []geminiEmbedContentRequest `json:"requests"`
}

type geminiEmbedContentRequest struct {
	Model   string        `json:"model"`
	Content geminiContent `json:"content"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiEmbedResponse struct {
	Embeddings []struct {
		Values []float64 `json:"values"`
	} `json:"embeddings"`
}

// NewGeminiEmbedder creates an embedder from cfg
func NewGeminiEmbedder(cfg GeminiConfig) (*GeminiEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > 100 {
		cfg.BatchSize = 100
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}

	return &GeminiEmbedder{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      strings.TrimPrefix(cfg.Model, "models/"),
		batchSize:  cfg.BatchSize,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Name returns the identifier of this embedder implementation
func (e *GeminiEmbedder) Name() string { return "gemini" }

// Embed embeds texts batch by batch, keeping input order
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
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

func (e *GeminiEmbedder) embedBatch(ctx context.Context, batch []string) ([][]float64, error) {
	requests := make([]geminiEmbedContentRequest, len(batch))
	for i, text := range batch {
		requests[i] = geminiEmbedContentRequest{
			Model:   "models/" + e.model,
			Content: geminiContent{Parts: []geminiPart{{Text: text}}},
		}
	}
	body, err := json.Marshal(geminiEmbedRequest{Requests: requests})
	if err != nil {
		return nil, fmt.Errorf("marshaling embed request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:batchEmbedContents?key=%s", e.baseURL, e.model, url.QueryEscape(e.apiKey))

	var parsed geminiEmbedResponse
	err = util.Retry(ctx, e.maxRetries, e.retryDelay, func(int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return util.Permanent(fmt.Errorf("creating embed request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := e.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("calling embed api: %w", err)
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading embed response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("embed api returned status %d: %s", resp.StatusCode, string(payload))
			if util.RetryableStatus(resp.StatusCode) {
				return statusErr
			}
			return util.Permanent(statusErr)
		}
		if err := json.Unmarshal(payload, &parsed); err != nil {
			return util.Permanent(fmt.Errorf("decoding embed response: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Rows are aligned by position, so every batch must come back whole
	if len(parsed.Embeddings) != len(batch) {
		return nil, &ShapeError{Provider: e.Name(), Want: len(batch), Got: len(parsed.Embeddings), Index: -1}
	}

	vectors := make([][]float64, len(parsed.Embeddings))
	for i, emb := range parsed.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}
