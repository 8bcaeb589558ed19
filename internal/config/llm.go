package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/tuskshop/pkg/log"
)

type LLMConfig struct {
	Provider    string        `env:"TUSK_LLM_PROVIDER" envDefault:"ollama"`
	Model       string        `env:"TUSK_LLM_MODEL" envDefault:"llama3.2:3b"`
	Temperature float64       `env:"TUSK_LLM_TEMPERATURE" envDefault:"0.1"`
	Timeout     time.Duration `env:"TUSK_LLM_TIMEOUT" envDefault:"120s"`

	OllamaBaseURL    string `env:"TUSK_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey     string `env:"TUSK_OLLAMA_API_KEY"`
	OpenAIAPIKey     string `env:"TUSK_OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"TUSK_OPENROUTER_API_KEY"`

	CustomBaseURL string `env:"TUSK_CUSTOM_BASE_URL"`
	CustomAPIKey  string `env:"TUSK_CUSTOM_API_KEY"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}
