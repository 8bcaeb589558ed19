package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoReplier struct {
	mu    sync.Mutex
	calls []string
}

func (e *echoReplier) Reply(_ context.Context, sessionID, message string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, sessionID+"|"+message)
	return "balasan: " + message
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestChat_SendAndReceive(t *testing.T) {
	r := &echoReplier{}
	m := NewModel(context.Background(), r, "cli-1")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("halo")})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Empty(t, m.input.Value())

	m, _ = update(t, m, cmd())
	assert.False(t, m.waiting)
	assert.Equal(t, []string{"user: halo", "assistant: balasan: halo"}, m.Transcript())
	assert.Equal(t, []string{"cli-1|halo"}, r.calls)
	assert.Contains(t, m.View(), "balasan: halo")
}

func TestChat_IgnoresBlankAndBusyInput(t *testing.T) {
	r := &echoReplier{}
	m := NewModel(context.Background(), r, "cli-2")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.Transcript())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("satu")})
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// A second message while the first is pending is held back.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("dua")})
	m, second := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, second)
	assert.Equal(t, "dua", m.input.Value())
	assert.Len(t, m.Transcript(), 1)
}

func TestChat_EscQuits(t *testing.T) {
	m := NewModel(context.Background(), &echoReplier{}, "cli-3")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Equal(t, "Sampai jumpa!\n", m.View())
}
