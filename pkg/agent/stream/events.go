package stream

import (
	"context"
	"time"
)

// EventType enumerates the graph events forwarded to clients.
type EventType string

const (
	EventRunStarted         EventType = "RUN_STARTED"
	EventRunFinished        EventType = "RUN_FINISHED"
	EventRunError           EventType = "RUN_ERROR"
	EventStepStarted        EventType = "STEP_STARTED"
	EventStepFinished       EventType = "STEP_FINISHED"
	EventTextMessageStart   EventType = "TEXT_MESSAGE_START"
	EventTextMessageContent EventType = "TEXT_MESSAGE_CONTENT"
	EventTextMessageEnd     EventType = "TEXT_MESSAGE_END"
	EventToolCallStart      EventType = "TOOL_CALL_START"
	EventToolCallEnd        EventType = "TOOL_CALL_END"
)

// Event is one entry in the stream of a single run.
type Event struct {
	Type         EventType      `json:"type"`
	ThreadId     string         `json:"threadId,omitempty"`
	RunId        string         `json:"runId,omitempty"`
	StepName     string         `json:"stepName,omitempty"`
	MessageId    string         `json:"messageId,omitempty"`
	Delta        string         `json:"delta,omitempty"`
	ToolCallId   string         `json:"toolCallId,omitempty"`
	ToolCallName string         `json:"toolCallName,omitempty"`
	Message      string         `json:"message,omitempty"` // RUN_ERROR only
	Payload      map[string]any `json:"payload,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// forwardable is the fixed set of event types relayed to the UI. Everything
// else stays internal.
var forwardable = map[EventType]bool{
	EventRunStarted:         true,
	EventRunFinished:        true,
	EventRunError:           true,
	EventStepStarted:        true,
	EventStepFinished:       true,
	EventTextMessageStart:   true,
	EventTextMessageContent: true,
	EventTextMessageEnd:     true,
	EventToolCallStart:      true,
	EventToolCallEnd:        true,
}

// Forwardable reports whether the event should be relayed downstream.
func Forwardable(t EventType) bool {
	return forwardable[t]
}

// Sink receives the event stream of a run.
type Sink interface {
	Emit(ctx context.Context, ev Event) error
}

// NopSink discards all events. Used in tests and when streaming is disabled.
type NopSink struct{}

func (NopSink) Emit(context.Context, Event) error { return nil }

// MultiSink fans one event out to several sinks; the first error wins but
// all sinks still see the event.
type MultiSink []Sink

func (m MultiSink) Emit(ctx context.Context, ev Event) error {
	var firstErr error
	for _, s := range m {
		if err := s.Emit(ctx, ev); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
