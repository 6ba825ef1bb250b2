package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riski-agent-be/internal/pkg/logger"
	"riski-agent-be/pkg/agent/state"
	"riski-agent-be/pkg/vectorstore"
)

type stubVectorStore struct {
	hits []vectorstore.Document
	err  error
	gotK int
}

func (s *stubVectorStore) SimilaritySearch(_ context.Context, _ string, k int) ([]vectorstore.Document, error) {
	s.gotK = k
	return s.hits, s.err
}

type stubProposalRepo struct {
	proposals  []state.TrackedProposal
	err        error
	gotFileIds []string
}

func (s *stubProposalRepo) FindForFiles(_ context.Context, fileIds []string) ([]state.TrackedProposal, error) {
	s.gotFileIds = fileIds
	return s.proposals, s.err
}

func TestRetrieveDocumentsCall(t *testing.T) {
	store := &stubVectorStore{hits: []vectorstore.Document{
		{Id: "file-1", Content: "Radwegekonzept", Metadata: map[string]any{"name": "Konzept.pdf"}, Score: 0.91},
		{Id: "file-2", Content: "Haushaltsplan", Metadata: map[string]any{"name": "Haushalt.pdf"}, Score: 0.72},
	}}
	repo := &stubProposalRepo{proposals: []state.TrackedProposal{
		{Identifier: "A-1", Name: "Radweg", SourceDocumentIds: []string{"file-1"}},
	}}

	tool := NewRetrieveDocuments(store, repo, 5, logger.NewNopLogger())

	result, err := tool.Call(context.Background(), map[string]any{"query": "Radwege"})
	require.NoError(t, err)

	assert.Equal(t, 5, store.gotK)
	assert.Equal(t, []string{"file-1", "file-2"}, repo.gotFileIds)

	require.NotNil(t, result.Artifact)
	require.Len(t, result.Artifact.Documents, 2)
	assert.Equal(t, "file-1", result.Artifact.Documents[0].Id)
	assert.False(t, result.Artifact.Documents[0].Checked)
	assert.True(t, result.Artifact.Documents[0].Relevant)

	require.Len(t, result.Artifact.Proposals, 1)
	assert.Equal(t, "2 Dokumente und 1 Stadtratsanträge gefunden.", result.Content)
}

func TestRetrieveDocumentsMissingQuery(t *testing.T) {
	tool := NewRetrieveDocuments(&stubVectorStore{}, &stubProposalRepo{}, 5, logger.NewNopLogger())

	_, err := tool.Call(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing query")

	_, err = tool.Call(context.Background(), map[string]any{"query": 42})
	require.Error(t, err)
}

func TestRetrieveDocumentsSearchFailure(t *testing.T) {
	store := &stubVectorStore{err: errors.New("connection refused")}
	tool := NewRetrieveDocuments(store, &stubProposalRepo{}, 5, logger.NewNopLogger())

	_, err := tool.Call(context.Background(), map[string]any{"query": "Radwege"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "similarity search failed")
}

func TestRetrieveDocumentsProposalFailure(t *testing.T) {
	store := &stubVectorStore{hits: []vectorstore.Document{{Id: "file-1", Content: "text"}}}
	repo := &stubProposalRepo{err: errors.New("db down")}
	tool := NewRetrieveDocuments(store, repo, 5, logger.NewNopLogger())

	_, err := tool.Call(context.Background(), map[string]any{"query": "Radwege"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proposal lookup failed")
}

func TestRegistryDispatch(t *testing.T) {
	tool := NewRetrieveDocuments(&stubVectorStore{}, &stubProposalRepo{}, 5, logger.NewNopLogger())
	registry := NewRegistry(tool, DescribeCapabilities{})

	specs := registry.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, RetrieveToolName, specs[0].Name, "registration order is preserved")
	assert.Equal(t, "describe_capabilities", specs[1].Name)
}
