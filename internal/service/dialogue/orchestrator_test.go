package dialogue

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/internal/observability"
	"github.com/sandevgo/tuskshop/internal/providers/tools"
	"github.com/sandevgo/tuskshop/internal/service/agent"
	"github.com/sandevgo/tuskshop/internal/service/responder"
	"github.com/sandevgo/tuskshop/internal/storage/memory"
	"github.com/sandevgo/tuskshop/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replayAI answers from a queue; an error in the queue is returned instead.
type replayAI struct {
	mu    sync.Mutex
	queue []any
	calls int
}

func (r *replayAI) Chat(_ context.Context, _ []core.Message, _ []core.Tool) (core.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if len(r.queue) == 0 {
		return core.Message{}, errors.New("no scripted response")
	}
	next := r.queue[0]
	r.queue = r.queue[1:]

	switch v := next.(type) {
	case error:
		return core.Message{}, v
	case string:
		return core.Message{Role: core.RoleAssistant, Content: v}, nil
	default:
		return v.(core.Message), nil
	}
}

type fixture struct {
	orch  *Orchestrator
	turns *memory.TurnStore
	ai    *replayAI
}

func newFixture(t *testing.T, ai *replayAI) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.NewDB(ctx, filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = sqlite.Seed(ctx, db)
	require.NoError(t, err)

	lookups := responder.NewLookups(sqlite.NewCatalogRepo(db), sqlite.NewOrdersRepo(db))
	turns := memory.NewTurnStore()
	gen := agent.NewAgent(ai, tools.NewRegistry(tools.NewStore(lookups)))

	orch := NewOrchestrator(turns, responder.New(lookups), gen, Options{
		Window:  3,
		Timeout: 5 * time.Second,
		Metrics: observability.NewMetrics("test"),
	})
	return &fixture{orch: orch, turns: turns, ai: ai}
}

func (f *fixture) history(t *testing.T, session string) []core.Turn {
	t.Helper()
	turns, err := f.turns.FetchLast(context.Background(), session, 100)
	require.NoError(t, err)
	return turns
}

func TestOrchestrator_OrderStatusEndToEnd(t *testing.T) {
	f := newFixture(t, &replayAI{})

	reply := f.orch.Reply(context.Background(), "s1", "Status pesanan 2001")
	for _, want := range []string{"#2001", "Dikirim", "JNE", "2025-09-25"} {
		assert.Contains(t, reply, want)
	}
	assert.Zero(t, f.ai.calls, "deterministic intents never reach the model")

	h := f.history(t, "s1")
	require.Len(t, h, 2)
	assert.Equal(t, core.RoleUser, h[0].Role)
	assert.Equal(t, "Status pesanan 2001", h[0].Text)
	assert.Equal(t, core.RoleAssistant, h[1].Role)
	assert.Equal(t, reply, h[1].Text)
}

func TestOrchestrator_NameRecallAcrossTurns(t *testing.T) {
	f := newFixture(t, &replayAI{})
	ctx := context.Background()

	assert.Contains(t, f.orch.Reply(ctx, "s1", "Halo, nama saya Malinda"), "Malinda")
	assert.Contains(t, f.orch.Reply(ctx, "s1", "Siapa nama saya?"), "Malinda")
	assert.Equal(t, "Saya belum mengetahui nama Anda dalam percakapan ini.", f.orch.Reply(ctx, "s2", "Siapa nama saya?"))
}

func TestOrchestrator_PreviousQuestionExcludesCurrentMessage(t *testing.T) {
	f := newFixture(t, &replayAI{})
	ctx := context.Background()

	f.orch.Reply(ctx, "s1", "Halo")
	f.orch.Reply(ctx, "s1", "Ada garansi?")

	// Window holds "Halo" and "Ada garansi?"; the second-to-last is "Halo".
	reply := f.orch.Reply(ctx, "s1", "Apa pertanyaan sebelumnya?")
	assert.Equal(t, `Pertanyaan sebelumnya: "Halo"`, reply)
}

func TestOrchestrator_GeneralUsesAgent(t *testing.T) {
	f := newFixture(t, &replayAI{queue: []any{"AI: Toko kami buka setiap hari."}})

	reply := f.orch.Reply(context.Background(), "s1", "Apakah toko buka hari minggu?")
	assert.Equal(t, "Toko kami buka setiap hari.", reply)
	assert.Equal(t, 1, f.ai.calls)
}

func TestOrchestrator_FallbackOnAgentFailure(t *testing.T) {
	f := newFixture(t, &replayAI{queue: []any{
		errors.New("could not parse LLM output"),
		"Bot: Silakan hubungi kami lewat WhatsApp.",
	}})

	reply := f.orch.Reply(context.Background(), "s1", "Bagaimana cara menghubungi toko?")
	assert.Equal(t, "Silakan hubungi kami lewat WhatsApp.", reply)

	h := f.history(t, "s1")
	require.Len(t, h, 2)
	assert.Equal(t, reply, h[1].Text)
}

func TestOrchestrator_TotalGenerationFailureApologizes(t *testing.T) {
	boom := errors.New("connection refused")
	f := newFixture(t, &replayAI{queue: []any{boom, boom}})

	reply := f.orch.Reply(context.Background(), "s1", "Bagaimana cara menghubungi toko?")
	assert.Equal(t, ApologyReply, reply)

	h := f.history(t, "s1")
	require.Len(t, h, 2)
	assert.Equal(t, ApologyReply, h[1].Text)
}

func TestOrchestrator_EmptyGeneration(t *testing.T) {
	f := newFixture(t, &replayAI{queue: []any{errors.New("bad plan"), "   "}})

	reply := f.orch.Reply(context.Background(), "s1", "Bagaimana cara menghubungi toko?")
	assert.Equal(t, EmptyReply, reply)
}

func TestOrchestrator_PrefixOnlyGeneration(t *testing.T) {
	for _, out := range []string{"Assistant:", "Bot: ", "AI: Assistant:"} {
		t.Run(out, func(t *testing.T) {
			f := newFixture(t, &replayAI{queue: []any{out}})

			reply := f.orch.Reply(context.Background(), "s1", "Bagaimana cara menghubungi toko?")
			assert.Equal(t, EmptyReply, reply)

			h := f.history(t, "s1")
			require.Len(t, h, 2)
			assert.Equal(t, EmptyReply, h[1].Text)
		})
	}
}

type brokenTurns struct {
	fetchErr  error
	appendErr error
	appended  []string
	mu        sync.Mutex
}

func (b *brokenTurns) Append(_ context.Context, _, _, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.appended = append(b.appended, text)
	return b.appendErr
}

func (b *brokenTurns) FetchLast(context.Context, string, int) ([]core.Turn, error) {
	return nil, b.fetchErr
}

type staticResponder struct{}

func (staticResponder) Respond(context.Context, core.Intent, string, []core.Turn) (string, bool, error) {
	return "ok", true, nil
}

func TestOrchestrator_StorageFailureApologizes(t *testing.T) {
	store := &brokenTurns{fetchErr: errors.New("disk I/O error")}
	orch := NewOrchestrator(store, staticResponder{}, nil, Options{})

	reply := orch.Reply(context.Background(), "s1", "Halo")
	assert.Equal(t, ApologyReply, reply)
	assert.Equal(t, []string{ApologyReply}, store.appended)
}

func TestOrchestrator_PersistFailureApologizes(t *testing.T) {
	store := &brokenTurns{appendErr: errors.New("readonly database")}
	orch := NewOrchestrator(store, staticResponder{}, nil, Options{})

	assert.Equal(t, ApologyReply, orch.Reply(context.Background(), "s1", "Halo"))
}

// blockingResponder records how many calls run at once per session.
type blockingResponder struct {
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (b *blockingResponder) Respond(context.Context, core.Intent, string, []core.Turn) (string, bool, error) {
	n := b.active.Add(1)
	for {
		old := b.maxSeen.Load()
		if n <= old || b.maxSeen.CompareAndSwap(old, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	b.active.Add(-1)
	return "ok", true, nil
}

func TestOrchestrator_SerializesSameSession(t *testing.T) {
	resp := &blockingResponder{}
	turns := memory.NewTurnStore()
	orch := NewOrchestrator(turns, resp, nil, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			orch.Reply(context.Background(), "same", "Halo")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), resp.maxSeen.Load())
	assert.Zero(t, orch.locks.size())

	h, err := turns.FetchLast(context.Background(), "same", 100)
	require.NoError(t, err)
	require.Len(t, h, 16)
	for i := 0; i < len(h); i += 2 {
		assert.Equal(t, core.RoleUser, h[i].Role)
		assert.Equal(t, core.RoleAssistant, h[i+1].Role)
	}
}

func TestOrchestrator_DifferentSessionsRunInParallel(t *testing.T) {
	resp := &blockingResponder{}
	orch := NewOrchestrator(memory.NewTurnStore(), resp, nil, Options{})

	var wg sync.WaitGroup
	for _, s := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(session string) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				orch.Reply(context.Background(), session, "Halo")
			}
		}(s)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, resp.maxSeen.Load(), int32(1))
	assert.Zero(t, orch.locks.size())
}
