package state

import (
	"github.com/google/uuid"

	"riski-agent-be/pkg/llm"
)

// guardTerminalKey flags an assistant message as the definitive last message
// of the turn. Downstream nodes observe it and exit.
const guardTerminalKey = "guard_terminal"

// NewGuardTerminalMessage builds the canned terminal assistant message.
func NewGuardTerminalMessage(content string) llm.Message {
	return llm.Message{
		ID:       uuid.NewString(),
		Role:     llm.RoleAssistant,
		Content:  content,
		Metadata: map[string]any{guardTerminalKey: true},
	}
}

// IsGuardTerminal reports whether the message carries the guard-terminal flag.
func IsGuardTerminal(m *llm.Message) bool {
	if m == nil || m.Metadata == nil {
		return false
	}
	terminal, ok := m.Metadata[guardTerminalKey].(bool)
	return ok && terminal
}

// HasToolMessageInTurn reports whether a tool message was produced since the
// most recent user message.
func (c *Conversation) HasToolMessageInTurn() bool {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		switch c.Messages[i].Role {
		case llm.RoleTool:
			return true
		case llm.RoleUser:
			return false
		}
	}
	return false
}
