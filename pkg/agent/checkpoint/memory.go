package checkpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"riski-agent-be/pkg/agent/state"
)

// MemoryStore keeps snapshots in an in-process TTL cache. Snapshots are
// stored as JSON so loads return copies, not aliases into live state.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

var _ Store = &MemoryStore{}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: cache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (s *MemoryStore) Save(_ context.Context, threadId, runId string, conv *state.Conversation) error {
	data, err := json.Marshal(snapshot{RunId: runId, Conversation: *conv})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	s.cache.Set(threadId, data, s.ttl)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, threadId string) (*state.Conversation, error) {
	raw, found := s.cache.Get(threadId)
	if !found {
		return nil, ErrNotFound
	}
	data := raw.([]byte)

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	// Read-refresh: an active thread keeps its checkpoint alive.
	s.cache.Set(threadId, data, s.ttl)

	return &snap.Conversation, nil
}
