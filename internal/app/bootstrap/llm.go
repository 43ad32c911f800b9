package bootstrap

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	appconfig "github.com/carebridge/medchat/internal/config"
	"github.com/carebridge/medchat/internal/medqa"
	"github.com/carebridge/medchat/pkg/logging"
)

// LLM providers accepted in LLM_PROVIDER.
const (
	LLMProviderGroq    = "groq"
	LLMProviderOpenAI  = "openai"
	LLMProviderBedrock = "bedrock"
	LLMProviderGemini  = "gemini"
)

// LLMSetup is the resolved question-answering client. Client is nil when no
// provider is usable; the Q&A stage then replies with the apology text.
type LLMSetup struct {
	Client   medqa.LLMClient
	Provider string
	Model    string
	closers  []func() error
}

// Close releases provider connections.
func (s *LLMSetup) Close() {
	if s == nil {
		return
	}
	for _, c := range s.closers {
		_ = c()
	}
}

type llmCandidate struct {
	provider string
	model    string
	client   medqa.LLMClient
}

// BuildLLMClient builds the configured provider and, when another provider is
// also configured, wraps both in a fallback client.
func BuildLLMClient(ctx context.Context, cfg *appconfig.Config, awsCfg *aws.Config, logger *logging.Logger) *LLMSetup {
	if logger == nil {
		logger = logging.Default()
	}
	setup := &LLMSetup{}
	if cfg == nil {
		return setup
	}

	build := func(provider string) *llmCandidate {
		switch provider {
		case LLMProviderGroq, LLMProviderOpenAI:
			client, err := medqa.NewOpenAIClient(medqa.OpenAIConfig{
				APIKey:  cfg.LLMAPIKey,
				BaseURL: cfg.LLMBaseURL,
				Model:   cfg.LLMModel,
			})
			if err != nil {
				return nil
			}
			return &llmCandidate{provider: provider, model: cfg.LLMModel, client: client}
		case LLMProviderBedrock:
			model := strings.TrimSpace(cfg.BedrockModel)
			if model == "" || awsCfg == nil {
				return nil
			}
			return &llmCandidate{
				provider: provider,
				model:    model,
				client:   medqa.NewBedrockClient(bedrockruntime.NewFromConfig(*awsCfg), model),
			}
		case LLMProviderGemini:
			if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
				return nil
			}
			client, err := medqa.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
			if err != nil {
				logger.Warn("failed to create gemini client", "error", err)
				return nil
			}
			setup.closers = append(setup.closers, client.Close)
			return &llmCandidate{provider: provider, model: cfg.GeminiModelID, client: client}
		}
		return nil
	}

	primaryName := strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if primaryName == "" {
		primaryName = LLMProviderGroq
	}
	primary := build(primaryName)
	if primary == nil {
		logger.Warn("primary llm provider not configured", "provider", primaryName)
	}

	var fallback *llmCandidate
	for _, name := range []string{LLMProviderBedrock, LLMProviderGemini, LLMProviderGroq} {
		if name == primaryName || (name == LLMProviderGroq && primaryName == LLMProviderOpenAI) {
			continue
		}
		if fallback = build(name); fallback != nil {
			break
		}
	}

	switch {
	case primary != nil && fallback != nil:
		setup.Client = medqa.NewFallbackClient(primary.client, fallback.client, logger)
		setup.Provider = primary.provider
		setup.Model = primary.model
		logger.Info("llm configured", "provider", primary.provider, "model", primary.model, "fallback", fallback.provider)
	case primary != nil:
		setup.Client, setup.Provider, setup.Model = primary.client, primary.provider, primary.model
		logger.Info("llm configured", "provider", primary.provider, "model", primary.model)
	case fallback != nil:
		setup.Client, setup.Provider, setup.Model = fallback.client, fallback.provider, fallback.model
		logger.Info("llm configured from fallback", "provider", fallback.provider, "model", fallback.model)
	default:
		logger.Warn("no llm provider configured; medical questions receive the apology reply")
	}
	return setup
}
