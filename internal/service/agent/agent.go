package agent

import (
	"context"
	"strings"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/pkg/log"
)

const (
	minAnswerLen = 5
	clarifyReply = "Maaf, bisa dijelaskan lebih detail pertanyaannya?"
)

// Outcome records which branch produced a reply.
type Outcome string

const (
	OutcomePlanned Outcome = "planned"
	OutcomeClarify Outcome = "clarify"
	OutcomeDirect  Outcome = "direct"
)

type Result struct {
	Text    string
	Outcome Outcome
}

type Agent struct {
	planner  *Planner
	fallback *Fallback
}

func NewAgent(ai core.AIProvider, tools core.ToolExecutor) *Agent {
	return &Agent{
		planner:  NewPlanner(ai, tools),
		fallback: NewFallback(ai),
	}
}

// Reply answers messages the deterministic responders could not. A failed plan
// degrades to a single direct generation whose output is used as is; a plan
// that yields almost nothing asks the customer to clarify.
func (a *Agent) Reply(ctx context.Context, history []core.Message, input string) (Result, error) {
	answer, err := a.planner.Answer(ctx, history, input)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("planner failed, using direct generation")

		text, err := a.fallback.Generate(ctx, input)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: text, Outcome: OutcomeDirect}, nil
	}

	if len(strings.TrimSpace(answer)) < minAnswerLen {
		return Result{Text: clarifyReply, Outcome: OutcomeClarify}, nil
	}
	return Result{Text: answer, Outcome: OutcomePlanned}, nil
}
