package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"riski-agent-be/internal/constant"
	"riski-agent-be/internal/pkg/logger"
	"riski-agent-be/pkg/agent/checkpoint"
	"riski-agent-be/pkg/agent/state"
	"riski-agent-be/pkg/agent/stream"
	"riski-agent-be/pkg/agent/tools"
	"riski-agent-be/pkg/llm"
)

// Node names, also used as step names in the event stream.
const (
	NodeModel         = "MODEL"
	NodeTools         = "TOOLS"
	NodeGuard         = "GUARD"
	NodeCheckDocument = "CHECK_DOCUMENT"
	NodeCollect       = "COLLECT"
	nodeEnd           = "END"
)

// Config tunes a Graph. Zero values fall back to sane defaults.
type Config struct {
	SystemPrompt      string
	NoResultsResponse string
	SnippetMaxLen     int
	MaxSteps          int
}

// Graph is the state machine driving one conversational turn:
//
//	MODEL → TOOLS → GUARD → CHECK_DOCUMENT* → COLLECT → MODEL → END
//
// with short-circuits through GUARD/COLLECT when retrieval produced nothing.
type Graph struct {
	provider    llm.Provider
	registry    *tools.Registry
	checkpoints checkpoint.Store
	sink        stream.Sink
	log         logger.ILogger
	cfg         Config
}

func New(provider llm.Provider, registry *tools.Registry, checkpoints checkpoint.Store, sink stream.Sink, log logger.ILogger, cfg Config) *Graph {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = constant.AgentSystemPrompt
	}
	if cfg.NoResultsResponse == "" {
		cfg.NoResultsResponse = constant.NoResultsResponse
	}
	if cfg.SnippetMaxLen <= 0 {
		cfg.SnippetMaxLen = 2000
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 24
	}
	if sink == nil {
		sink = stream.NopSink{}
	}
	return &Graph{
		provider:    provider,
		registry:    registry,
		checkpoints: checkpoints,
		sink:        sink,
		log:         log,
		cfg:         cfg,
	}
}

// Run drives one turn for a thread. The incoming messages are appended to
// the persisted conversation; per-turn retrieval state is reset first.
func (g *Graph) Run(ctx context.Context, threadId, runId string, incoming []llm.Message) (*state.Conversation, error) {
	conv, err := g.checkpoints.Load(ctx, threadId)
	if errors.Is(err, checkpoint.ErrNotFound) {
		conv = &state.Conversation{}
	} else if err != nil {
		return nil, fmt.Errorf("load checkpoint: %w", err)
	}

	// A new turn starts with a clean retrieval slate; only messages carry
	// over between turns.
	conv.TrackedDocuments = nil
	conv.TrackedProposals = nil
	conv.UserQuery = ""

	// Clients usually resend the whole history; merge by message id.
	known := make(map[string]bool, len(conv.Messages))
	for _, m := range conv.Messages {
		if m.ID != "" {
			known[m.ID] = true
		}
	}
	for _, m := range incoming {
		if m.ID != "" && known[m.ID] {
			continue
		}
		conv.Messages = append(conv.Messages, m)
	}

	g.emit(ctx, stream.Event{Type: stream.EventRunStarted, ThreadId: threadId, RunId: runId})

	node := NodeModel
	for step := 0; node != nodeEnd; step++ {
		if step >= g.cfg.MaxSteps {
			err := fmt.Errorf("graph did not terminate after %d steps", g.cfg.MaxSteps)
			g.fail(ctx, threadId, runId, err)
			return nil, err
		}
		if ctx.Err() != nil {
			g.fail(ctx, threadId, runId, ctx.Err())
			return nil, ctx.Err()
		}

		g.emit(ctx, stream.Event{Type: stream.EventStepStarted, ThreadId: threadId, RunId: runId, StepName: node})

		var update state.Update
		var nodeErr error

		switch node {
		case NodeModel:
			update, nodeErr = g.modelNode(ctx, conv)
		case NodeTools:
			update, nodeErr = g.toolsNode(ctx, threadId, runId, conv)
		case NodeGuard:
			update, nodeErr = g.guardNode(conv)
		case NodeCheckDocument:
			update, nodeErr = g.checkDocumentsNode(ctx, conv)
		case NodeCollect:
			update, nodeErr = g.collectNode(conv)
		}
		if nodeErr != nil {
			g.fail(ctx, threadId, runId, nodeErr)
			return nil, nodeErr
		}

		conv.Apply(update)

		// Checkpoint I/O failure is fatal; the turn cannot resume safely.
		if err := g.checkpoints.Save(ctx, threadId, runId, conv); err != nil {
			err = fmt.Errorf("save checkpoint: %w", err)
			g.fail(ctx, threadId, runId, err)
			return nil, err
		}

		g.emit(ctx, stream.Event{Type: stream.EventStepFinished, ThreadId: threadId, RunId: runId, StepName: node})

		node = g.route(node, conv)
	}

	g.emitFinalMessage(ctx, threadId, runId, conv)
	g.emit(ctx, stream.Event{Type: stream.EventRunFinished, ThreadId: threadId, RunId: runId})

	return conv, nil
}

// route implements the transition table.
func (g *Graph) route(from string, conv *state.Conversation) string {
	switch from {
	case NodeModel:
		last := conv.LastMessage()
		if last != nil && last.HasToolCalls() {
			return NodeTools
		}
		if conv.HasDocuments() && conv.AllChecked() {
			return nodeEnd // generation finished
		}
		return NodeGuard
	case NodeTools:
		return NodeGuard
	case NodeGuard:
		if state.IsGuardTerminal(conv.LastMessage()) {
			return NodeCollect
		}
		return NodeCheckDocument
	case NodeCheckDocument:
		return NodeCollect
	case NodeCollect:
		if state.IsGuardTerminal(conv.LastMessage()) {
			return nodeEnd
		}
		return NodeModel
	}
	return nodeEnd
}

func (g *Graph) emit(ctx context.Context, ev stream.Event) {
	ev.Timestamp = time.Now()
	if err := g.sink.Emit(ctx, ev); err != nil {
		g.log.Warn("graph", "Failed to emit event", map[string]interface{}{
			"type":  string(ev.Type),
			"error": err.Error(),
		})
	}
}

// fail surfaces a terminal error to the sink. No partial answer is emitted.
func (g *Graph) fail(ctx context.Context, threadId, runId string, err error) {
	g.log.Error("graph", "Run failed", map[string]interface{}{
		"thread": threadId,
		"run":    runId,
		"error":  err.Error(),
	})
	g.emit(ctx, stream.Event{
		Type:     stream.EventRunError,
		ThreadId: threadId,
		RunId:    runId,
		Message:  err.Error(),
	})
}

// emitFinalMessage streams the content of the turn's final assistant message.
func (g *Graph) emitFinalMessage(ctx context.Context, threadId, runId string, conv *state.Conversation) {
	last := conv.LastMessage()
	if last == nil || last.Role != llm.RoleAssistant || last.Content == "" {
		return
	}
	g.emit(ctx, stream.Event{Type: stream.EventTextMessageStart, ThreadId: threadId, RunId: runId, MessageId: last.ID})
	g.emit(ctx, stream.Event{Type: stream.EventTextMessageContent, ThreadId: threadId, RunId: runId, MessageId: last.ID, Delta: last.Content})
	g.emit(ctx, stream.Event{Type: stream.EventTextMessageEnd, ThreadId: threadId, RunId: runId, MessageId: last.ID})
}
