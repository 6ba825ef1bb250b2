package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"riski-agent-be/pkg/embedding"
)

// PgVectorStore searches document_embeddings by cosine distance.
type PgVectorStore struct {
	db       *gorm.DB
	embedder embedding.Provider
}

var _ Store = &PgVectorStore{}

func NewPgVectorStore(db *gorm.DB, embedder embedding.Provider) *PgVectorStore {
	return &PgVectorStore{db: db, embedder: embedder}
}

type embeddingRow struct {
	Id       string  `gorm:"column:id"`
	FileId   string  `gorm:"column:file_id"`
	Content  string  `gorm:"column:content"`
	Metadata []byte  `gorm:"column:metadata"`
	Score    float32 `gorm:"column:score"`
}

func (s *PgVectorStore) SimilaritySearch(ctx context.Context, query string, k int) ([]Document, error) {
	if k <= 0 {
		k = 5
	}

	values, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	vec := pgvector.NewVector(values)

	var rows []embeddingRow
	err = s.db.WithContext(ctx).Raw(`
		SELECT id, file_id, content, metadata,
		       1 - (embedding <=> ?) AS score
		FROM document_embeddings
		ORDER BY embedding <=> ?
		LIMIT ?`, vec, vec, k).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		metadata := map[string]any{}
		if len(row.Metadata) > 0 {
			if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
				// Malformed metadata is not fatal, keep the hit
				metadata = map[string]any{}
			}
		}
		metadata["file_id"] = row.FileId
		metadata["score"] = row.Score

		docs = append(docs, Document{
			Id:       row.FileId,
			Content:  row.Content,
			Metadata: metadata,
			Score:    row.Score,
		})
	}
	return docs, nil
}
