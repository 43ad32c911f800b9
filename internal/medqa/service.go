package medqa

import (
	"context"
	"strings"
	"time"

	"github.com/carebridge/medchat/internal/observability/metrics"
	"github.com/carebridge/medchat/pkg/logging"
)

// Apology is returned whenever a question cannot be answered.
const Apology = "Sorry, I couldn't process your medical question at this time. Please try again or ask another question."

const systemPrompt = "You are a medical information assistant. Provide accurate and concise answers to " +
	"medical-related questions, limiting responses to approximately 10 lines. Do not provide personal " +
	"medical advice or diagnoses, but offer general information. If the question is unclear or not " +
	"medical-related, politely redirect the user to ask a relevant medical question."

const (
	defaultMaxTokens = 150
	defaultTimeout   = 20 * time.Second
)

// ServiceConfig tunes a Service. Zero values pick the defaults.
type ServiceConfig struct {
	Provider  string
	Model     string
	MaxTokens int32
	Timeout   time.Duration
}

// Service turns a question into a short plain-text answer. It never fails.
type Service struct {
	client    LLMClient
	provider  string
	model     string
	maxTokens int32
	timeout   time.Duration
	metrics   *metrics.ChatMetrics
	logger    *logging.Logger
}

func NewService(client LLMClient, cfg ServiceConfig, m *metrics.ChatMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Provider == "" {
		cfg.Provider = "unknown"
	}
	return &Service{
		client:    client,
		provider:  cfg.Provider,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		metrics:   m,
		logger:    logger,
	}
}

// Answer asks the model; any error or empty answer yields Apology.
func (s *Service) Answer(ctx context.Context, question string) string {
	if s == nil || s.client == nil {
		return Apology
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.Complete(ctx, Request{
		Model:     s.model,
		System:    systemPrompt,
		Question:  question,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		s.logger.Error("medqa: completion failed", "error", err, "provider", s.provider)
		s.metrics.ObserveLLMRequest(s.provider, "error")
		return Apology
	}
	answer := strings.TrimSpace(resp.Text)
	if answer == "" {
		s.logger.Warn("medqa: empty answer", "provider", s.provider, "stop_reason", resp.StopReason)
		s.metrics.ObserveLLMRequest(s.provider, "empty")
		return Apology
	}

	s.logger.Debug("medqa: answered question",
		"provider", s.provider,
		"latency_ms", time.Since(start).Milliseconds(),
		"output_tokens", resp.Usage.OutputTokens,
	)
	s.metrics.ObserveLLMRequest(s.provider, "ok")
	return answer
}
