package agent

import (
	"context"
	"fmt"

	"github.com/sandevgo/tuskshop/internal/core"
)

// Fallback asks the model directly, without history or tools.
type Fallback struct {
	ai core.AIProvider
}

func NewFallback(ai core.AIProvider) *Fallback {
	return &Fallback{ai: ai}
}

func (f *Fallback) Generate(ctx context.Context, input string) (string, error) {
	resp, err := f.ai.Chat(ctx, []core.Message{
		{Role: core.RoleUser, Content: fallbackPrompt(input)},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("fallback generation: %w", err)
	}
	return resp.Content, nil
}
