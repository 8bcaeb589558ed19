package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sandevgo/tuskshop/internal/observability"
	"github.com/sandevgo/tuskshop/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReplier struct {
	mu    sync.Mutex
	calls [][2]string
}

func (f *fakeReplier) Reply(_ context.Context, sessionID, message string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, [2]string{sessionID, message})
	return "balasan untuk " + message
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeReplier) {
	t.Helper()
	replier := &fakeReplier{}
	s := New(context.Background(), ":0", replier, observability.NewMetrics("test"))
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts, replier
}

func postChat(t *testing.T, url, body string) (*http.Response, map[string]string) {
	t.Helper()
	resp, err := http.Post(url+"/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestChat(t *testing.T) {
	ts, replier := newTestServer(t)

	resp, out := postChat(t, ts.URL, `{"session_id":"s1","message":"Status pesanan 2001"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "balasan untuk Status pesanan 2001", out["reply"])
	assert.Equal(t, [][2]string{{"s1", "Status pesanan 2001"}}, replier.calls)
}

func TestChat_BadRequests(t *testing.T) {
	ts, replier := newTestServer(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "empty body", body: "", code: "empty_body"},
		{name: "not json", body: "halo", code: "invalid_json"},
		{name: "wrong type", body: `{"session_id":1,"message":"halo"}`, code: "invalid_json"},
		{name: "missing session", body: `{"message":"halo"}`, code: "missing_session_id"},
		{name: "blank message", body: `{"session_id":"s1","message":"   "}`, code: "missing_message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := postChat(t, ts.URL, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.code, out["code"])
			assert.NotEmpty(t, out["error"])
		})
	}
	assert.Empty(t, replier.calls)
}

func TestChat_KeepsRequestID(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/chat", strings.NewReader(`{"session_id":"s","message":"halo"}`))
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestInfoAndHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var info map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "ok", info["status"])
	assert.Equal(t, infoMessage, info["info"])

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	postChat(t, ts.URL, `{"session_id":"s1","message":"halo"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), `test_http_requests_total{code="200",route="/chat"} 1`)
}

func TestBaseContextOutlivesShutdownSignal(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(zerolog.New(&buf).WithContext(context.Background()))

	s := New(ctx, ":0", &fakeReplier{}, observability.NewMetrics("test"))
	cancel()

	base := s.server.BaseContext(nil)
	assert.NoError(t, base.Err())

	log.FromCtx(base).Info().Msg("still logging")
	assert.Contains(t, buf.String(), "still logging")
}
