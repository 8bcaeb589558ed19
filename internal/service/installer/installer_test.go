package installer

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/tuskshop/internal/config"
	"github.com/sandevgo/tuskshop/internal/providers/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func questionSteps() []Step {
	return []Step{
		NewProviderStep(),
		NewOllamaURLStep(),
		NewCustomURLStep(),
		NewAPIKeyStep(),
		NewStorageStep(),
		NewPostgresURLStep(),
		NewChannelStep(),
		NewTelegramTokenStep(),
	}
}

func TestWizard_OllamaDefaults(t *testing.T) {
	m := newModel(NewInstallState(t.TempDir()), questionSteps())

	m = press(t, m,
		enter, // Ollama
		enter, // base URL placeholder
		enter, // sqlite
		enter, // HTTP only
	)

	require.True(t, m.done)
	assert.Equal(t, llm.ProviderOllama, m.state.LLM.Provider)
	assert.Equal(t, "http://localhost:11434", m.state.LLM.OllamaBaseURL)
	assert.Equal(t, config.StoreSQLite, m.state.App.StoreBackend)
	assert.True(t, m.state.App.EnableHTTP)
	assert.False(t, m.state.App.EnableTelegram)
	assert.Empty(t, m.state.Telegram.Token)
}

func TestWizard_OpenRouterPostgresTelegram(t *testing.T) {
	m := newModel(NewInstallState(t.TempDir()), questionSteps())

	m = press(t, m,
		down, down, enter, // OpenRouter
		typed("sk-or-123"), enter,
		down, enter, // PostgreSQL
		typed("postgres://shop@db/shop"), enter,
		down, down, enter, // HTTP and Telegram
		typed("42:token"), enter,
	)

	require.True(t, m.done)
	assert.Equal(t, llm.ProviderOpenRouter, m.state.LLM.Provider)
	assert.Equal(t, "sk-or-123", m.state.LLM.OpenRouterAPIKey)
	assert.Equal(t, config.StorePostgres, m.state.App.StoreBackend)
	assert.Equal(t, "postgres://shop@db/shop", m.state.App.PostgresURL)
	assert.True(t, m.state.App.EnableHTTP)
	assert.True(t, m.state.App.EnableTelegram)
	assert.Equal(t, "42:token", m.state.Telegram.Token)
}

func TestWizard_CustomKeyIsOptional(t *testing.T) {
	m := newModel(NewInstallState(t.TempDir()), questionSteps())

	m = press(t, m,
		down, down, down, enter, // Custom
		typed("http://llm.local:8080"), enter,
		enter, // no key
		down, down, enter, // memory
		down, enter, // Telegram only
		typed("1:abc"), enter,
	)

	require.True(t, m.done)
	assert.Equal(t, "http://llm.local:8080", m.state.LLM.CustomBaseURL)
	assert.Empty(t, m.state.LLM.CustomAPIKey)
	assert.Equal(t, config.StoreMemory, m.state.App.StoreBackend)
	assert.False(t, m.state.App.EnableHTTP)
}

func TestWizard_CtrlCQuits(t *testing.T) {
	m := newModel(NewInstallState(t.TempDir()), questionSteps())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, m.quitting)
	assert.False(t, m.done)
	assert.Equal(t, "Installation cancelled.\n", m.View())
}

func TestInstallState_EnvContent(t *testing.T) {
	state := NewInstallState("/srv/shop")
	state.App.EnableHTTP = false
	state.App.EnableTelegram = true
	state.Telegram.Token = "1:abc"

	content, err := state.EnvContent()
	require.NoError(t, err)

	assert.Contains(t, content, "TUSK_STORE_BACKEND=sqlite\n")
	assert.Contains(t, content, "TUSK_ENABLE_TELEGRAM=true\n")
	assert.Contains(t, content, "TUSK_ENABLE_HTTP=false\n")
	assert.Contains(t, content, "TUSK_LLM_PROVIDER=ollama\n")
	assert.Contains(t, content, "TUSK_TELEGRAM_TOKEN=1:abc\n")
	assert.NotContains(t, content, "TUSK_RUNTIME_PATH")
	assert.NotContains(t, content, "TUSK_SEED_ON_START=false")
}

func TestInstallState_WriteEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runtime")
	state := NewInstallState(dir)

	require.NoError(t, state.WriteEnv())

	info, err := os.Stat(state.EnvPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(state.EnvPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "TUSK_LLM_MODEL=llama3.2:3b\n")

	// An existing configuration is never overwritten.
	assert.Error(t, state.WriteEnv())
}

func TestSaveEnvStep_ReportsExistingFile(t *testing.T) {
	state := NewInstallState(t.TempDir())
	require.NoError(t, os.WriteFile(state.EnvPath(), []byte("X=1\n"), 0o600))

	step := NewSaveEnvStep()
	next, _ := step.Update(nextMsg{}, state, 80, 24)

	require.NotNil(t, next)
	assert.Contains(t, next.View(state), "Error")
}

func TestModelStep_PicksFromOllama(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"qwen2.5:7b"},{"name":"llama3.2:3b"}]}`))
	}))
	defer srv.Close()

	state := NewInstallState(t.TempDir())
	state.LLM.OllamaBaseURL = srv.URL

	msg := fetchModels(state)()
	items, ok := msg.(modelsMsg)
	require.True(t, ok, "unexpected message %#v", msg)
	require.Len(t, items, 2)

	var step Step = NewModelStep()
	step, _ = step.Update(spinner.TickMsg{}, state, 80, 40)
	step, _ = step.Update(items, state, 80, 40)
	step, _ = step.Update(down, state, 80, 40)
	next, _ := step.Update(enter, state, 80, 40)

	assert.Nil(t, next)
	assert.Equal(t, "llama3.2:3b", state.LLM.Model)
}

func TestModelStep_ErrorAllowsKeepingDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	state := NewInstallState(t.TempDir())
	state.LLM.OllamaBaseURL = srv.URL

	msg := fetchModels(state)()
	_, isErr := msg.(errMsg)
	require.True(t, isErr)

	var step Step = NewModelStep()
	step, _ = step.Update(spinner.TickMsg{}, state, 80, 40)
	step, _ = step.Update(msg, state, 80, 40)
	assert.Contains(t, step.View(state), "Error fetching models")

	next, _ := step.Update(typed("s"), state, 80, 40)
	assert.Nil(t, next)
	assert.Equal(t, "llama3.2:3b", state.LLM.Model)
}

func TestSeedCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuskshop.db")

	msg := seedCatalog(path)()
	stats, ok := msg.(seededMsg)
	require.True(t, ok, "unexpected message %#v", msg)
	assert.Equal(t, 4, stats.Products)
	assert.Equal(t, 3, stats.Orders)

	// Running again keeps the existing data.
	again, ok := seedCatalog(path)().(seededMsg)
	require.True(t, ok)
	assert.True(t, again.Skipped)
}
