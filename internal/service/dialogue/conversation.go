package dialogue

import (
	"github.com/sandevgo/tuskshop/internal/core"
)

// Conversation is the working memory of a single in-flight message. It is
// rebuilt from the store for every message and never shared between calls.
type Conversation struct {
	SessionID string
	Message   string
	// Window holds the persisted turns preceding Message, oldest first.
	Window []core.Turn
	Intent core.Intent
}

func newConversation(sessionID, message string, window []core.Turn) *Conversation {
	return &Conversation{
		SessionID: sessionID,
		Message:   message,
		Window:    window,
	}
}

// History renders the window as chat messages for the generative agent.
func (c *Conversation) History() []core.Message {
	out := make([]core.Message, 0, len(c.Window))
	for _, t := range c.Window {
		switch t.Role {
		case core.RoleUser, core.RoleAssistant:
			out = append(out, core.Message{Role: t.Role, Content: t.Text})
		}
	}
	return out
}
