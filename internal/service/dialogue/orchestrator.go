// Package dialogue runs one customer message through classification,
// answering, sanitizing and persistence.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/internal/observability"
	"github.com/sandevgo/tuskshop/internal/service/agent"
	"github.com/sandevgo/tuskshop/internal/service/intent"
	"github.com/sandevgo/tuskshop/internal/service/sanitizer"
	"github.com/sandevgo/tuskshop/pkg/log"
)

const (
	ApologyReply = "Maaf, terjadi kesalahan. Silakan coba lagi."
	EmptyReply   = "Maaf, ada masalah teknis. Silakan coba lagi."

	DefaultWindow  = 3
	DefaultTimeout = 60 * time.Second

	persistTimeout = 5 * time.Second
)

const (
	pathDeterministic = "deterministic"
	pathAgent         = "agent"
	pathFailed        = "failed"
)

type Responder interface {
	Respond(ctx context.Context, in core.Intent, message string, window []core.Turn) (string, bool, error)
}

type Generator interface {
	Reply(ctx context.Context, history []core.Message, input string) (agent.Result, error)
}

type Options struct {
	// Window is the number of exchanges loaded as context.
	Window  int
	Timeout time.Duration
	Metrics *observability.Metrics
}

type Orchestrator struct {
	turns     core.TurnRepository
	responder Responder
	generator Generator
	metrics   *observability.Metrics
	window    int
	timeout   time.Duration
	locks     *sessionLocks
}

func NewOrchestrator(turns core.TurnRepository, responder Responder, generator Generator, opts Options) *Orchestrator {
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Orchestrator{
		turns:     turns,
		responder: responder,
		generator: generator,
		metrics:   opts.Metrics,
		window:    opts.Window,
		timeout:   opts.Timeout,
		locks:     newSessionLocks(),
	}
}

// Reply always returns a customer-facing answer. Failures are logged and
// replaced by a fixed apology that is stored as the assistant turn.
func (o *Orchestrator) Reply(ctx context.Context, sessionID, message string) string {
	start := time.Now()
	ctx = log.WithFields(ctx, "session", sessionID)
	logger := log.FromCtx(ctx)

	if o.metrics != nil {
		o.metrics.InFlight.Inc()
		defer o.metrics.InFlight.Dec()
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	unlock, err := o.locks.Lock(ctx, sessionID)
	if err != nil {
		return o.fail(ctx, sessionID, "lock", err, start)
	}
	defer unlock()

	conv, err := o.load(ctx, sessionID, message)
	if err != nil {
		return o.fail(ctx, sessionID, "history", err, start)
	}

	conv.Intent = intent.Classify(message)
	logger.Debug().Str("intent", conv.Intent.String()).Int("window", len(conv.Window)).Msg("message classified")

	reply, path, err := o.dispatch(ctx, conv)
	if err != nil {
		return o.fail(ctx, sessionID, path, err, start)
	}

	// A reply that was only a role prefix is empty after cleaning.
	if reply = sanitizer.Clean(reply); reply == "" {
		reply = EmptyReply
	}

	if err := o.turns.Append(ctx, sessionID, core.RoleAssistant, reply); err != nil {
		return o.fail(ctx, sessionID, "persist", err, start)
	}

	if o.metrics != nil {
		o.metrics.ObserveReply(conv.Intent.String(), path, time.Since(start))
	}
	logger.Info().
		Str("intent", conv.Intent.String()).
		Str("path", path).
		Dur("took", time.Since(start)).
		Msg("reply sent")

	return reply
}

// load fetches the window before storing the new user turn, so the window
// never contains the message being answered.
func (o *Orchestrator) load(ctx context.Context, sessionID, message string) (*Conversation, error) {
	window, err := o.turns.FetchLast(ctx, sessionID, o.window)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	if err := o.turns.Append(ctx, sessionID, core.RoleUser, message); err != nil {
		return nil, fmt.Errorf("save user turn: %w", err)
	}
	return newConversation(sessionID, message, window), nil
}

func (o *Orchestrator) dispatch(ctx context.Context, conv *Conversation) (string, string, error) {
	reply, ok, err := o.responder.Respond(ctx, conv.Intent, conv.Message, conv.Window)
	if err != nil {
		return "", pathDeterministic, err
	}
	if ok {
		return reply, pathDeterministic, nil
	}

	res, err := o.generator.Reply(ctx, conv.History(), conv.Message)
	if err != nil {
		return "", pathAgent, fmt.Errorf("generate: %w", err)
	}
	if o.metrics != nil {
		o.metrics.Fallbacks.WithLabelValues(string(res.Outcome)).Inc()
	}
	return res.Text, pathAgent, nil
}

func (o *Orchestrator) fail(ctx context.Context, sessionID, stage string, err error, start time.Time) string {
	logger := log.FromCtx(ctx)
	logger.Error().Err(err).Str("stage", stage).Msg("reply failed")

	if o.metrics != nil {
		o.metrics.Failures.WithLabelValues(stage).Inc()
		o.metrics.ReplyLatency.WithLabelValues(pathFailed).Observe(time.Since(start).Seconds())
	}

	// The request context may already be done; the apology is still recorded.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if perr := o.turns.Append(pctx, sessionID, core.RoleAssistant, ApologyReply); perr != nil {
		logger.Error().Err(errors.Join(err, perr)).Msg("failed to store apology")
	}
	return ApologyReply
}
