// Package medqa answers free-text medical questions through a language model.
package medqa

import (
	"context"
	"errors"
)

// ErrNoChoices is returned when a provider answers without any content.
var ErrNoChoices = errors.New("medqa: no choices returned")

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// Request is a single-turn completion: a system prompt and one user question.
type Request struct {
	Model       string
	System      string
	Question    string
	MaxTokens   int32
	Temperature float32
}

type Response struct {
	Text       string
	Usage      TokenUsage
	StopReason string
}

// LLMClient completes one request against a provider.
type LLMClient interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
