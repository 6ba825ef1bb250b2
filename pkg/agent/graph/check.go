package graph

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"riski-agent-be/internal/constant"
	"riski-agent-be/pkg/agent/state"
	"riski-agent-be/pkg/llm"
)

// checkDocumentsNode fans out one relevance check per tracked document.
// Checks run concurrently and join here; the verdicts go through the
// reducer as per-document patches, so completion order does not matter.
func (g *Graph) checkDocumentsNode(ctx context.Context, conv *state.Conversation) (state.Update, error) {
	docs := conv.TrackedDocuments
	if len(docs) == 0 {
		return state.Update{}, nil
	}

	userQuery := conv.UserQuery
	if userQuery == "" {
		userQuery = conv.LatestHumanQuery()
	}

	updates := make([]state.RelevanceUpdate, len(docs))

	grp, gctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		grp.Go(func() error {
			update, err := g.checkDocument(gctx, doc, userQuery)
			if err != nil {
				return err
			}
			updates[i] = update
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		// Only cancellation reaches here; model failures are recovered
		// inside checkDocument.
		return state.Update{}, err
	}

	return state.Update{Documents: &state.DocumentsUpdate{Patch: updates}}, nil
}

// checkDocument runs a single relevance check. Model failures never drop a
// document: the verdict falls back to relevant with a diagnostic reason.
func (g *Graph) checkDocument(ctx context.Context, doc state.TrackedDocument, userQuery string) (state.RelevanceUpdate, error) {
	if err := ctx.Err(); err != nil {
		return state.RelevanceUpdate{}, err
	}

	snippet := doc.Content
	if runes := []rune(snippet); len(runes) > g.cfg.SnippetMaxLen {
		snippet = string(runes[:g.cfg.SnippetMaxLen])
	}

	prompt := fmt.Sprintf(constant.RelevanceCheckPrompt, userQuery, doc.DisplayName(), snippet)

	reply, err := g.provider.Chat(ctx,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		llm.WithResponseSchema(state.RelevanceSchema()),
		llm.WithTemperature(0.1),
	)
	if err != nil {
		if ctx.Err() != nil {
			return state.RelevanceUpdate{}, ctx.Err()
		}
		g.log.Warn("graph", "Relevance check call failed, keeping document", map[string]interface{}{
			"doc":   doc.Id,
			"error": err.Error(),
		})
		return state.RelevanceUpdate{
			DocId:    doc.Id,
			Relevant: true,
			Reason:   fmt.Sprintf("relevance check failed, keeping document: %v", err),
		}, nil
	}

	var verdict state.RelevanceVerdict
	if err := llm.DecodeJSON(reply.Content, &verdict); err != nil {
		g.log.Warn("graph", "Relevance verdict not decodable, keeping document", map[string]interface{}{
			"doc":   doc.Id,
			"error": err.Error(),
		})
		return state.RelevanceUpdate{
			DocId:    doc.Id,
			Relevant: true,
			Reason:   "relevance check failed, keeping document",
		}, nil
	}

	return state.RelevanceUpdate{
		DocId:    doc.Id,
		Relevant: verdict.Relevant,
		Reason:   verdict.Reason,
	}, nil
}
