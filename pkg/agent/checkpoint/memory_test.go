package checkpoint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riski-agent-be/pkg/agent/state"
	"riski-agent-be/pkg/llm"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	conv := &state.Conversation{
		Messages:  []llm.Message{{ID: "m1", Role: llm.RoleUser, Content: "Frage"}},
		UserQuery: "Frage",
		TrackedDocuments: []state.TrackedDocument{
			{Id: "doc-1", Content: "Inhalt", Checked: true, Relevant: true, Reason: "passt"},
		},
	}

	require.NoError(t, store.Save(ctx, "thread-1", "run-1", conv))

	loaded, err := store.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, conv.UserQuery, loaded.UserQuery)
	require.Len(t, loaded.Messages, 1)
	require.Len(t, loaded.TrackedDocuments, 1)
	assert.True(t, loaded.TrackedDocuments[0].Relevant)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreLoadReturnsCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	conv := &state.Conversation{UserQuery: "original"}
	require.NoError(t, store.Save(ctx, "thread-1", "run-1", conv))

	first, err := store.Load(ctx, "thread-1")
	require.NoError(t, err)
	first.UserQuery = "mutated"

	second, err := store.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, "original", second.UserQuery)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "thread-1", "run-1", &state.Conversation{UserQuery: "alt"}))
	require.NoError(t, store.Save(ctx, "thread-1", "run-2", &state.Conversation{UserQuery: "neu"}))

	loaded, err := store.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, "neu", loaded.UserQuery)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "thread-1", "run-1", &state.Conversation{}))
	time.Sleep(50 * time.Millisecond)

	_, err := store.Load(ctx, "thread-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
