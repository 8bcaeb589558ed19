package llm

import (
	"time"

	"github.com/sandevgo/tuskshop/internal/core"
)

type OpenRouter struct {
	*OpenAICompatible
}

func NewOpenRouter(apiKey, model string, temperature float64, timeout time.Duration) *OpenRouter {
	return &OpenRouter{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:     "https://openrouter.ai/api",
			APIKey:      apiKey,
			Model:       model,
			Temperature: temperature,
			Timeout:     timeout,
			AuthHeader:  "Authorization",
			AuthPrefix:  "Bearer ",
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.ShopRepositoryURL,
				"X-Title":      core.ShopName,
			},
		}),
	}
}
