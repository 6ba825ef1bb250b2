package tools

import (
	"context"

	"riski-agent-be/internal/constant"
	"riski-agent-be/pkg/llm"
)

// DescribeCapabilities returns the static description of the knowledge base
// and its limits. No artifact; the text is the whole result.
type DescribeCapabilities struct{}

func (DescribeCapabilities) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        "describe_capabilities",
		Description: "Describe what the knowledge base covers and what questions the agent can answer.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

func (DescribeCapabilities) Call(_ context.Context, _ map[string]any) (*Result, error) {
	return &Result{Content: constant.CapabilitiesPrompt}, nil
}
