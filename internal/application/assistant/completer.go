// Package assistant proxies legal questions, document analysis and document
// drafting to a chat-completion provider. Upstream failures never surface as
// errors to callers; every operation returns a payload with fallback text.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/lawai/backend/internal/domain/shared"
)

// Prompt is a system/user message pair
type Prompt struct {
	System string
	User   string
}

// Params tunes a single completion call. Zero values are omitted.
type Params struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Completer sends one prompt to a chat-completion provider
type Completer interface {
	Complete(ctx context.Context, prompt Prompt, params Params) (string, error)
}

// APIError is returned by a Completer when the provider answers with a
// non-200 status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Erro na API: %d", e.StatusCode)
}

// Is makes errors.Is(err, shared.ErrUpstream) match
func (e *APIError) Is(target error) bool {
	return target == shared.ErrUpstream
}

// Recorder receives one observation per provider call
type Recorder interface {
	RecordAICall(ctx context.Context, operation, outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordAICall(context.Context, string, string, time.Duration) {}
