package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riski-agent-be/internal/model"
	"riski-agent-be/internal/repository/implementation"
	"riski-agent-be/pkg/database"
)

// Requires a Postgres with the vector extension and migrated tables.
// Skipped unless DB_CONNECTION_STRING is set.
func TestProposalRepository(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	ctx := context.Background()
	tx := gormDB.Begin()
	defer tx.Rollback()

	fileId := "https://ris.example.de/file/" + uuid.NewString()
	paper := model.Paper{
		Id:        "https://ris.example.de/paper/" + uuid.NewString(),
		Reference: "A-2026-001",
		Name:      "Radweg Hauptstraße",
		Subject:   "Ausbau des Radwegs",
		PaperType: "Stadtratsantrag",
	}
	file := model.File{
		Id:     fileId,
		Name:   "Antrag.pdf",
		Papers: []model.Paper{paper},
	}
	require.NoError(t, tx.Create(&file).Error)

	repo := implementation.NewProposalRepository(tx)

	t.Run("finds linked proposals", func(t *testing.T) {
		proposals, err := repo.FindForFiles(ctx, []string{fileId})
		require.NoError(t, err)
		require.Len(t, proposals, 1)
		assert.Equal(t, "A-2026-001", proposals[0].Identifier)
		assert.Equal(t, []string{fileId}, proposals[0].SourceDocumentIds)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		proposals, err := repo.FindForFiles(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, proposals)
	})
}

func TestDocumentEmbeddingRoundTrip(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")

	tx := gormDB.Begin()
	defer tx.Rollback()

	vec := make([]float32, 768)
	vec[0] = 1

	embedding := model.DocumentEmbedding{
		Id:        uuid.New(),
		FileId:    "https://ris.example.de/file/" + uuid.NewString(),
		Content:   "Radwegekonzept Innenstadt",
		Embedding: pgvector.NewVector(vec),
	}
	require.NoError(t, tx.Create(&embedding).Error)

	var loaded model.DocumentEmbedding
	require.NoError(t, tx.First(&loaded, "id = ?", embedding.Id).Error)
	assert.Equal(t, embedding.Content, loaded.Content)
	assert.Len(t, loaded.Embedding.Slice(), 768)
}
