// Package tui is a terminal chat client for trying the responder locally.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/sandevgo/tuskshop/internal/service/ui"
)

// Replier produces the reply for one customer message.
type Replier interface {
	Reply(ctx context.Context, sessionID, message string) string
}

type replyMsg struct {
	text string
}

type entry struct {
	role string
	text string
}

type Model struct {
	ctx       context.Context
	replier   Replier
	sessionID string

	input    textinput.Model
	view     viewport.Model
	entries  []entry
	waiting  bool
	quitting bool
	ready    bool
}

func NewModel(ctx context.Context, replier Replier, sessionID string) Model {
	ti := textinput.New()
	ti.Placeholder = "Tulis pertanyaan Anda..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Focus()

	return Model{
		ctx:       ctx,
		replier:   replier,
		sessionID: sessionID,
		input:     ti,
		view:      viewport.New(80, 20),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) ask(text string) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{text: m.replier.Reply(m.ctx, m.sessionID, text)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.view.Width = msg.Width
		m.view.Height = max(msg.Height-4, 3)
		m.input.Width = max(msg.Width-4, 10)
		m.ready = true
		m.refresh()
		return m, nil

	case replyMsg:
		m.waiting = false
		m.entries = append(m.entries, entry{role: core.RoleAssistant, text: msg.text})
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.entries = append(m.entries, entry{role: core.RoleUser, text: text})
			m.refresh()
			return m, m.ask(text)
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.view, cmd = m.view.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) refresh() {
	width := m.view.Width
	if width <= 0 {
		width = 80
	}
	body := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	for _, e := range m.entries {
		label := ui.CustomerStyle.Render("Anda")
		if e.role == core.RoleAssistant {
			label = ui.ShopStyle.Render(core.ShopName)
		}
		b.WriteString(label + "\n" + body.Render(e.text) + "\n\n")
	}
	if m.waiting {
		b.WriteString(ui.DescStyle.Render("mengetik...") + "\n")
	}
	m.view.SetContent(b.String())
	m.view.GotoBottom()
}

// Transcript returns the conversation shown so far, oldest first.
func (m Model) Transcript() []string {
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.role+": "+e.text)
	}
	return out
}

func (m Model) View() string {
	if m.quitting {
		return "Sampai jumpa!\n"
	}
	header := ui.TitleStyle.Render(core.ShopName+" chat") + ui.DescStyle.Render("  sesi "+m.sessionID+" (esc untuk keluar)")
	return header + "\n" + m.view.View() + "\n" + m.input.View()
}

// Run opens the chat in the alternate screen until the user quits.
func Run(ctx context.Context, replier Replier, sessionID string) error {
	_, err := tea.NewProgram(NewModel(ctx, replier, sessionID), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
