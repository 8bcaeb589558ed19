package agent

import (
	"context"
	"fmt"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/pkg/log"
)

// MaxIterations bounds the tool-using rounds before the planner must answer.
const MaxIterations = 2

// Planner lets the model consult store tools before answering. Every round
// executes at most one tool call; once the budget is spent the model is asked
// for a final answer with tools withheld.
type Planner struct {
	ai       core.AIProvider
	tools    core.ToolExecutor
	executor *Executor
	maxIter  int
}

func NewPlanner(ai core.AIProvider, tools core.ToolExecutor) *Planner {
	return &Planner{
		ai:       ai,
		tools:    tools,
		executor: NewExecutor(tools),
		maxIter:  MaxIterations,
	}
}

// Answer runs the bounded plan for input. history is the prior conversation,
// oldest first, without input itself.
func (p *Planner) Answer(ctx context.Context, history []core.Message, input string) (string, error) {
	logger := log.FromCtx(ctx)

	tools, err := p.tools.GetTools(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get tools: %w", err)
	}

	messages := make([]core.Message, 0, len(history)+2+2*p.maxIter)
	messages = append(messages, core.Message{Role: core.RoleSystem, Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, core.Message{Role: core.RoleUser, Content: input})

	for i := 0; i < p.maxIter; i++ {
		resp, err := p.ai.Chat(ctx, messages, tools)
		if err != nil {
			return "", fmt.Errorf("ai chat error: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		tc := resp.ToolCalls[0]
		if len(resp.ToolCalls) > 1 {
			logger.Debug().Int("dropped", len(resp.ToolCalls)-1).Msg("ignoring extra tool calls")
		}
		logger.Info().Int("iteration", i+1).Str("tool", tc.Function.Name).Msg("planner tool call")

		resp.ToolCalls = []core.ToolCall{tc}
		messages = append(messages, resp, p.executor.Execute(ctx, tc))
	}

	messages = append(messages, core.Message{Role: core.RoleUser, Content: finalAnswerNudge})
	resp, err := p.ai.Chat(ctx, messages, nil)
	if err != nil {
		return "", fmt.Errorf("ai final answer: %w", err)
	}
	return resp.Content, nil
}
