package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, s)
}

type namedService struct {
	name     string
	rec      *recorder
	startErr error
	sawLive  bool
}

func (n *namedService) Start(context.Context) error { return n.startErr }

func (n *namedService) Shutdown(ctx context.Context) error {
	n.sawLive = ctx.Err() == nil
	n.rec.add(n.name)
	return nil
}

func TestShutdownServices_ReverseOrderWithLiveContext(t *testing.T) {
	rec := &recorder{}
	a := &namedService{name: "a", rec: rec}
	b := &namedService{name: "b", rec: rec}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ShutdownServices(ctx, time.Second, []Service{a, b})

	assert.Equal(t, []string{"b", "a"}, rec.order)
	assert.True(t, a.sawLive)
	assert.True(t, b.sawLive)
}

func TestStartServices_ReportsErrors(t *testing.T) {
	boom := errors.New("port in use")
	errs := StartServices(context.Background(), []Service{
		&namedService{name: "ok", rec: &recorder{}},
		&namedService{name: "bad", rec: &recorder{}, startErr: boom},
	})

	select {
	case err := <-errs:
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("expected a start error")
	}
}

func TestCleanup(t *testing.T) {
	called := false
	svc := NewCleanup(func() error {
		called = true
		return nil
	})

	require.NoError(t, svc.Start(context.Background()))
	assert.False(t, called)
	require.NoError(t, svc.Shutdown(context.Background()))
	assert.True(t, called)
}

func TestCleanup_RunsOnceInReverse(t *testing.T) {
	var order []string
	boom := errors.New("boom")

	c := NewCleanup(
		func() error { order = append(order, "db"); return nil },
		func() error { order = append(order, "pool"); return boom },
	)

	require.NoError(t, c.Start(context.Background()))
	assert.ErrorIs(t, c.Shutdown(context.Background()), boom)
	assert.ErrorIs(t, c.Shutdown(context.Background()), boom)
	assert.Equal(t, []string{"pool", "db"}, order)
}
