package vectorstore

import (
	"context"
)

// Document is a raw similarity-search hit.
type Document struct {
	Id       string
	Content  string
	Metadata map[string]any
	Score    float32
}

// Store runs similarity search over the embedded document corpus. Handles
// are shared read-only; each query acquires its own short-lived session.
type Store interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error)
}
