// ABOUTME: OpenAI chat-completion backend for work-order summaries
// ABOUTME: Sends the rendered prompt as a single user message, gpt-4o-mini by default
package llm

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

// DefaultChatModel is the default model for chat completions
const DefaultChatModel = "gpt-4o-mini"

// OpenAIConfig holds configuration for the OpenAI client
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ChatModel   string
	Temperature float32
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
}

// OpenAIClient wraps the OpenAI chat API with retry logic
type OpenAIClient struct {
	client      *openai.Client
	chatModel   string
	temperature float32
	maxRetries  int
	retryDelay  time.Duration
}

// NewOpenAIClient creates an OpenAI summary client from cfg
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.ChatModel
	if model == "" {
		model = DefaultChatModel
	}
	delay := cfg.RetryDelay
	if delay == 0 {
		delay = time.Second
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientCfg),
		chatModel:   model,
		temperature: cfg.Temperature,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  delay,
	}, nil
}

// Name returns the backend identifier
func (c *OpenAIClient) Name() string { return "openai" }

// Complete sends prompt as one user message and returns the first choice
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	var resp openai.ChatCompletionResponse

	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func(attempt int) error {
		if attempt > 0 {
			logging.L().Warnw("retrying summary request", "provider", c.Name(), "attempt", attempt+1)
		}

		r, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: c.temperature,
		})
		if err != nil {
			svcErr := c.serviceError(err)
			if svcErr == nil {
				return err
			}
			if util.RetryableStatus(svcErr.StatusCode) {
				return svcErr
			}
			return util.Permanent(svcErr)
		}
		resp = r
		return nil
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		logging.L().Warnw("summary response had no choices", "provider", c.Name(), "model", c.chatModel)
		return NoSummary, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// serviceError converts a go-openai error carrying an HTTP status, nil otherwise
func (c *OpenAIClient) serviceError(err error) *ServiceError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &ServiceError{Provider: c.Name(), StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return &ServiceError{Provider: c.Name(), StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}
	return nil
}
