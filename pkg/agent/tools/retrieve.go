package tools

import (
	"context"
	"fmt"

	"riski-agent-be/internal/pkg/logger"
	"riski-agent-be/internal/repository/contract"
	"riski-agent-be/pkg/agent/state"
	"riski-agent-be/pkg/llm"
	"riski-agent-be/pkg/vectorstore"
)

// RetrieveToolName is the name the model uses to call retrieval.
const RetrieveToolName = "retrieve_documents"

// RetrieveDocuments is the retrieval tool: similarity search over the RIS
// corpus plus a lookup of linked council motions.
type RetrieveDocuments struct {
	store     vectorstore.Store
	proposals contract.ProposalRepository
	topK      int
	log       logger.ILogger
}

func NewRetrieveDocuments(store vectorstore.Store, proposals contract.ProposalRepository, topK int, log logger.ILogger) *RetrieveDocuments {
	if topK <= 0 {
		topK = 5
	}
	return &RetrieveDocuments{store: store, proposals: proposals, topK: topK, log: log}
}

func (t *RetrieveDocuments) Spec() llm.ToolSpec {
	return llm.ToolSpec{
		Name:        RetrieveToolName,
		Description: "Retrieve relevant documents and proposals from the council information system based on a query.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query string.",
				},
			},
			"required": []string{"query"},
		},
	}
}

func (t *RetrieveDocuments) Call(ctx context.Context, args map[string]any) (*Result, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("retrieve_documents: missing query argument")
	}

	t.log.Info("tools", "Retrieving documents", map[string]interface{}{"query": query})

	hits, err := t.store.SimilaritySearch(ctx, query, t.topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	docs := make([]state.TrackedDocument, 0, len(hits))
	fileIds := make([]string, 0, len(hits))
	for _, hit := range hits {
		docs = append(docs, state.NewTrackedDocument(hit.Id, hit.Content, hit.Metadata))
		fileIds = append(fileIds, hit.Id)
	}

	proposals, err := t.proposals.FindForFiles(ctx, fileIds)
	if err != nil {
		return nil, fmt.Errorf("proposal lookup failed: %w", err)
	}

	t.log.Debug("tools", "Retrieval finished", map[string]interface{}{
		"documents": len(docs),
		"proposals": len(proposals),
	})

	summary := fmt.Sprintf("%d Dokumente und %d Stadtratsanträge gefunden.", len(docs), len(proposals))
	return &Result{
		Content: summary,
		Artifact: &Artifact{
			Documents: docs,
			Proposals: proposals,
		},
	}, nil
}
