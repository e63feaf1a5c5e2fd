package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"solana_analyst/internal/app/port"
	"solana_analyst/internal/pkg/metrics"
)

// ErrMissingAPIKey is returned for every completion when no OpenAI key is configured.
var ErrMissingAPIKey = errors.New("openai api key is not configured")

type openAIClient struct {
	client  port.CompletionClient
	timeout time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewOpenAIClient creates a completion client. baseURL overrides the public endpoint when set.
func NewOpenAIClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) port.CompletionClient {
	named := logger.Named("OpenAIClient")
	if apiKey == "" {
		named.Warn("OpenAI API key is empty, chat requests will fail")
		return &openAIClient{logger: named, metrics: m}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return newWithClient(openai.NewClientWithConfig(cfg), timeout, named, m)
}

func newWithClient(client port.CompletionClient, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *openAIClient {
	return &openAIClient{client: client, timeout: timeout, logger: logger, metrics: m}
}

// CreateChatCompletion implements port.CompletionClient.
func (c *openAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if c.client == nil {
		return openai.ChatCompletionResponse{}, ErrMissingAPIKey
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	timer := metrics.NewTimer()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	c.metrics.RecordUpstreamCall("openai", "chat_completion", err, timer.Seconds())
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			c.logger.Warn("OpenAI API error",
				zap.Int("statusCode", apiErr.HTTPStatusCode),
				zap.Any("code", apiErr.Code),
				zap.String("message", apiErr.Message))
		}
		return openai.ChatCompletionResponse{}, err
	}

	c.logger.Debug("Completion received",
		zap.String("model", resp.Model),
		zap.Int("promptTokens", resp.Usage.PromptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens))
	return resp, nil
}
