package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"riski-agent-be/pkg/agent/state"
	"riski-agent-be/pkg/agent/stream"
	"riski-agent-be/pkg/llm"
)

// toolsNode executes the tool calls of the most recent assistant message,
// in order. Each call yields one tool message; artifacts are collected into
// a full replacement of the tracked documents and proposals.
func (g *Graph) toolsNode(ctx context.Context, threadId, runId string, conv *state.Conversation) (state.Update, error) {
	last := conv.LastMessage()
	if last == nil || !last.HasToolCalls() {
		return state.Update{}, fmt.Errorf("tools node reached without tool calls")
	}

	var messages []llm.Message
	var docs []state.TrackedDocument
	var proposals []state.TrackedProposal
	sawArtifact := false

	for _, call := range last.ToolCalls {
		g.emit(ctx, stream.Event{
			Type:         stream.EventToolCallStart,
			ThreadId:     threadId,
			RunId:        runId,
			ToolCallId:   call.ID,
			ToolCallName: call.Name,
		})

		result, err := g.registry.Call(ctx, call)
		if err != nil {
			// A failed tool yields an error message and no artifact.
			g.log.Warn("graph", "Tool call failed", map[string]interface{}{
				"tool":  call.Name,
				"error": err.Error(),
			})
			messages = append(messages, llm.Message{
				ID:         uuid.NewString(),
				Role:       llm.RoleTool,
				Content:    fmt.Sprintf("Tool %s failed: %v", call.Name, err),
				ToolCallID: call.ID,
			})
			g.emit(ctx, stream.Event{
				Type:         stream.EventToolCallEnd,
				ThreadId:     threadId,
				RunId:        runId,
				ToolCallId:   call.ID,
				ToolCallName: call.Name,
				Payload:      map[string]any{"error": err.Error()},
			})
			continue
		}

		messages = append(messages, llm.Message{
			ID:         uuid.NewString(),
			Role:       llm.RoleTool,
			Content:    result.Content,
			ToolCallID: call.ID,
		})

		var payload map[string]any
		if result.Artifact != nil {
			sawArtifact = true
			docs = append(docs, result.Artifact.Documents...)
			proposals = append(proposals, result.Artifact.Proposals...)
			// Bulk content never leaves the process.
			payload = stream.ScrubToolEndPayload(result.Artifact.Documents, result.Artifact.Proposals)
		}

		g.emit(ctx, stream.Event{
			Type:         stream.EventToolCallEnd,
			ThreadId:     threadId,
			RunId:        runId,
			ToolCallId:   call.ID,
			ToolCallName: call.Name,
			Payload:      payload,
		})
	}

	update := state.Update{Messages: messages}
	if sawArtifact {
		update.Documents = &state.DocumentsUpdate{Replace: docs}
		update.Proposals = proposals
	}
	return update, nil
}
