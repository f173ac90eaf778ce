package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lawai/backend/internal/application/assistant"
	"github.com/lawai/backend/internal/domain/shared"
	"github.com/lawai/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *DeepSeekClient {
	return NewDeepSeekClient(config.AIConfig{
		BaseURL: url,
		APIKey:  "sk-test",
		Timeout: 5 * time.Second,
	}, nil)
}

func TestDeepSeekClient_Complete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Análise pronta"}}]}`))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).Complete(context.Background(),
		assistant.Prompt{System: "sys", User: "usr"},
		assistant.Params{Temperature: 0.3, MaxTokens: 1500},
	)

	require.NoError(t, err)
	assert.Equal(t, "Análise pronta", text)
	assert.Equal(t, "deepseek-chat", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "usr", got.Messages[1].Content)
	require.NotNil(t, got.Temperature)
	assert.InDelta(t, 0.3, *got.Temperature, 1e-9)
	assert.Equal(t, 1500, got.MaxTokens)
}

func TestDeepSeekClient_OmitsZeroTemperature(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), assistant.Prompt{}, assistant.Params{MaxTokens: 5})

	require.NoError(t, err)
	assert.NotContains(t, raw, "temperature")
	assert.EqualValues(t, 5, raw["max_tokens"])
}

func TestDeepSeekClient_Non200(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), assistant.Prompt{}, assistant.Params{})

	var apiErr *assistant.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "Erro na API: 429", err.Error())
	assert.Equal(t, 1, calls, "no retries")
}

func TestDeepSeekClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Complete(context.Background(), assistant.Prompt{}, assistant.Params{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUpstream))
	var apiErr *assistant.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestDeepSeekClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), assistant.Prompt{},
		assistant.Params{Timeout: 50 * time.Millisecond})

	assert.True(t, errors.Is(err, shared.ErrUpstream))
}

func TestDeepSeekClient_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), assistant.Prompt{}, assistant.Params{})

	assert.EqualError(t, err, "empty choices in response")
}

func TestNewDeepSeekClient_Defaults(t *testing.T) {
	c := NewDeepSeekClient(config.AIConfig{}, nil)

	assert.Equal(t, "https://api.deepseek.com/v1/chat/completions", c.endpoint)
	assert.Equal(t, "deepseek-chat", c.model)
	assert.Equal(t, 60*time.Second, c.timeout)
}
