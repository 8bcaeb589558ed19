package agent

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/pkg/log"
)

const (
	maxToolOutput  = 2000
	toolOutputHead = 500
)

type Executor struct {
	tools core.ToolExecutor
}

func NewExecutor(tools core.ToolExecutor) *Executor {
	return &Executor{
		tools: tools,
	}
}

// Execute runs one tool call. Failures are reported to the model as the tool
// result instead of aborting the turn.
func (e *Executor) Execute(ctx context.Context, tc core.ToolCall) core.Message {
	res, err := e.tools.CallTool(ctx, tc.Function.Name, tc.Function.Arguments)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("tool", tc.Function.Name).Msg("tool call failed")
		res = fmt.Sprintf("Error: %v", err)
	}

	return core.Message{
		Role:       core.RoleTool,
		Content:    truncate(res),
		ToolCallID: tc.ID,
	}
}

func truncate(input string) string {
	if len(input) <= maxToolOutput {
		return input
	}

	// Cuts land on rune boundaries so the model never sees broken UTF-8.
	end := toolOutputHead
	for end > 0 && !utf8.RuneStart(input[end]) {
		end--
	}
	start := len(input) - (maxToolOutput - toolOutputHead)
	for start < len(input) && !utf8.RuneStart(input[start]) {
		start++
	}

	head, tail := input[:end], input[start:]
	return fmt.Sprintf("%s\n\n... [TRUNCATED %d bytes] ...\n\n%s", head, len(input)-len(head)-len(tail), tail)
}
