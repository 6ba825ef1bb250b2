package stream

import (
	"riski-agent-be/pkg/agent/state"
)

// ScrubToolEndPayload strips bulk document content from a tool-end payload
// before it leaves the process. Clients get ids, metadata and verdicts; the
// full text stays server-side.
func ScrubToolEndPayload(docs []state.TrackedDocument, proposals []state.TrackedProposal) map[string]any {
	slimDocs := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		slimDocs = append(slimDocs, d.Slim())
	}

	slimProposals := make([]map[string]any, 0, len(proposals))
	for _, p := range proposals {
		slimProposals = append(slimProposals, map[string]any{
			"identifier": p.Identifier,
			"name":       p.Name,
			"risUrl":     p.RisUrl,
		})
	}

	return map[string]any{
		"documents": slimDocs,
		"proposals": slimProposals,
	}
}
