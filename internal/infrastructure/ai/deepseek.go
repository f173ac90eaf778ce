// Package ai contains chat-completion provider clients
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lawai/backend/internal/application/assistant"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/lawai/backend/internal/infrastructure/config"
	"github.com/lawai/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.deepseek.com/v1"
	defaultModel   = "deepseek-chat"
	maxBodyBytes   = 10 * 1024 * 1024
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// DeepSeekClient calls the OpenAI-compatible DeepSeek chat completions API.
// It never retries.
type DeepSeekClient struct {
	endpoint   string
	model      string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDeepSeekClient creates a client from the AI configuration
func NewDeepSeekClient(cfg config.AIConfig, logger *zap.Logger) *DeepSeekClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &DeepSeekClient{
		endpoint:   baseURL + "/chat/completions",
		model:      model,
		apiKey:     cfg.APIKey,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Complete sends the prompt and returns the first choice's content.
// A non-200 answer yields *assistant.APIError; transport and decoding
// failures yield an UPSTREAM_ERROR domain error.
func (c *DeepSeekClient) Complete(ctx context.Context, prompt assistant.Prompt, params assistant.Params) (string, error) {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := telemetry.StartSpan(ctx, "deepseek.chat_completion",
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttribute("ai.model", c.model),
		telemetry.WithAttribute("ai.max_tokens", params.MaxTokens),
	)
	defer span.End()

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		MaxTokens: params.MaxTokens,
	}
	if params.Temperature != 0 {
		t := params.Temperature
		body.Temperature = &t
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.RecordError(span, err)
		return "", shared.NewUpstreamError("%v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		telemetry.RecordError(span, err)
		return "", shared.NewUpstreamError("reading response body: %v", err)
	}

	telemetry.SetAttribute(span, "http.status_code", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		apiErr := &assistant.APIError{StatusCode: resp.StatusCode, Body: truncate(string(raw), 200)}
		c.logger.Error("DeepSeek API error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", apiErr.Body),
		)
		telemetry.RecordError(span, apiErr)
		return "", apiErr
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		telemetry.RecordError(span, err)
		return "", shared.NewUpstreamError("parsing response JSON: %v", err)
	}
	if len(parsed.Choices) == 0 {
		return "", shared.NewUpstreamError("empty choices in response")
	}

	telemetry.SetOK(span)
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ assistant.Completer = (*DeepSeekClient)(nil)
