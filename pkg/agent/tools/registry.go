package tools

import (
	"context"
	"fmt"

	"riski-agent-be/pkg/agent/state"
	"riski-agent-be/pkg/llm"
)

// Artifact is the structured payload a tool attaches alongside its textual
// summary. A tool message carries an artifact iff the tool succeeded.
type Artifact struct {
	Documents []state.TrackedDocument `json:"documents"`
	Proposals []state.TrackedProposal `json:"proposals"`
}

// Result is what a tool returns: a compact human-readable summary plus an
// optional structured artifact.
type Result struct {
	Content  string
	Artifact *Artifact
}

// Tool is a callable the model may invoke.
type Tool interface {
	Spec() llm.ToolSpec
	Call(ctx context.Context, args map[string]any) (*Result, error)
}

// Registry dispatches tool calls by name, preserving registration order for
// the descriptors handed to the model.
type Registry struct {
	byName map[string]Tool
	order  []string
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{byName: make(map[string]Tool)}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

func (r *Registry) Register(t Tool) {
	name := t.Spec().Name
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, name)
	}
	r.byName[name] = t
}

// Specs returns the descriptors of all registered tools.
func (r *Registry) Specs() []llm.ToolSpec {
	specs := make([]llm.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.byName[name].Spec())
	}
	return specs
}

// Call dispatches one tool call to its implementation.
func (r *Registry) Call(ctx context.Context, call llm.ToolCall) (*Result, error) {
	t, ok := r.byName[call.Name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", call.Name)
	}
	return t.Call(ctx, call.Args)
}
