// ABOUTME: Gemini generateContent client for work-order summaries
// ABOUTME: Single prompt in contents[0].parts[0].text, key passed as a query parameter
package llm

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

// GeminiConfig holds configuration for the Gemini client
type GeminiConfig struct {
	APIURL     string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// GeminiClient posts prompts to a generateContent endpoint
type GeminiClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// NewGeminiClient creates a Gemini client from cfg
func NewGeminiClient(cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("Gemini API URL is required")
	}
	if _, err := url.Parse(cfg.APIURL); err != nil {
		return nil, fmt.Errorf("invalid Gemini API URL: %w", err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}

	return &GeminiClient{
		apiURL:     cfg.APIURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Name returns the backend identifier
func (c *GeminiClient) Name() string { return "gemini" }

// Complete sends prompt and returns the top candidate's text, or NoSummary when
// the response carries no candidates or no parts.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling generate request: %w", err)
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return "", err
	}

	var payload []byte
	err = util.Retry(ctx, c.maxRetries, c.retryDelay, func(attempt int) error {
		if attempt > 0 {
			logging.L().Warnw("retrying summary request", "provider", c.Name(), "attempt", attempt+1)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return util.Permanent(fmt.Errorf("creating generate request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("calling generate api: %w", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading generate response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			svcErr := &ServiceError{Provider: c.Name(), StatusCode: resp.StatusCode, Body: string(raw)}
			if util.RetryableStatus(resp.StatusCode) {
				return svcErr
			}
			return util.Permanent(svcErr)
		}

		payload = raw
		return nil
	})
	if err != nil {
		return "", err
	}

	var parsed generateResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("decoding generate response: %w", err)
	}

	if len(parsed.Candidates) == 0 {
		logging.L().Warnw("summary response had no candidates", "provider", c.Name())
		return NoSummary, nil
	}
	parts := parsed.Candidates[0].Content.Parts
	if len(parts) == 0 {
		logging.L().Warnw("summary response had no parts", "provider", c.Name(), "finish_reason", parsed.Candidates[0].FinishReason)
		return NoSummary, nil
	}

	text := parts[0].Text
	if strings.TrimSpace(text) == "" {
		return NoSummary, nil
	}
	return text, nil
}

// endpoint returns the configured URL with the credential added as the key parameter
func (c *GeminiClient) endpoint() (string, error) {
	u, err := url.Parse(c.apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid Gemini API URL: %w", err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
