package llm

import (
	"context"
)

// Message roles in a provider-agnostic format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// Message represents a chat message in a provider-agnostic format.
type Message struct {
	ID         string         `json:"id,omitempty"`
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []ToolCall     `json:"tool_calls,omitempty"`   // assistant messages only
	ToolCallID string         `json:"tool_call_id,omitempty"` // tool messages only
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// HasToolCalls reports whether the message requests any tool invocation.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// ToolSpec describes a tool the model may call. Parameters is a JSON schema.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature    float64
	MaxTokens      int
	Model          string // Override default model
	Tools          []ToolSpec
	ResponseSchema map[string]any // JSON schema constraining the output
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithTools binds tool descriptors so the model may emit tool calls.
func WithTools(tools []ToolSpec) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// WithResponseSchema constrains the model output to a JSON schema.
func WithResponseSchema(schema map[string]any) Option {
	return func(o *Options) {
		o.ResponseSchema = schema
	}
}

// Provider defines the contract for any chat model backend. Implementations
// must be safe for concurrent use; the agent fan-out shares one instance.
type Provider interface {
	// Chat sends a chat history to the model and returns the assistant reply,
	// which may carry tool calls instead of plain content.
	Chat(ctx context.Context, history []Message, options ...Option) (*Message, error)
}
