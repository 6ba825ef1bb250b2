package checkpoint

import (
	"context"
	"errors"

	"riski-agent-be/pkg/agent/state"
)

// ErrNotFound is returned when no snapshot exists for a thread.
var ErrNotFound = errors.New("checkpoint: no snapshot for thread")

// Store persists conversation snapshots at node boundaries, keyed by thread.
// Entries carry a TTL that is refreshed on read, so active conversations
// stay alive while abandoned ones expire.
type Store interface {
	// Save snapshots the conversation for a thread, tagged with the run that
	// produced it.
	Save(ctx context.Context, threadId, runId string, conv *state.Conversation) error
	// Load returns the latest snapshot of a thread, refreshing its TTL.
	// Returns ErrNotFound when nothing is stored.
	Load(ctx context.Context, threadId string) (*state.Conversation, error)
}

// snapshot is the stored envelope.
type snapshot struct {
	RunId        string             `json:"run_id"`
	Conversation state.Conversation `json:"conversation"`
}
