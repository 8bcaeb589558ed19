package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/tuskshop/internal/config"
	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/pkg/log"
)

const (
	ProviderOllama     = "ollama"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderCustom     = "custom"
)

// Provider is a chat backend that can also list its models.
type Provider interface {
	core.AIProvider
	ModelLister
}

// NewProvider creates the provider selected by cfg.
func NewProvider(ctx context.Context, cfg *config.LLMConfig) (Provider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	switch cfg.Provider {
	case ProviderOllama:
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.Model, cfg.Temperature, cfg.Timeout), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.Model, cfg.Temperature, cfg.Timeout), nil
	case ProviderOpenRouter:
		return NewOpenRouter(cfg.OpenRouterAPIKey, cfg.Model, cfg.Temperature, cfg.Timeout), nil
	case ProviderCustom:
		if cfg.CustomBaseURL == "" {
			return nil, fmt.Errorf("custom provider requires TUSK_CUSTOM_BASE_URL")
		}
		return NewCustomOpenAI(cfg.CustomBaseURL, cfg.CustomAPIKey, cfg.Model, cfg.Temperature, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
