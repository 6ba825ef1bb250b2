package graph

import (
	"riski-agent-be/pkg/agent/state"
)

// FilterTrackedProposals keeps proposals that are linked to at least one
// relevant document, plus proposals with no source links. Without any
// relevant document everything is dropped.
func FilterTrackedProposals(proposals []state.TrackedProposal, relevantDocs []state.TrackedDocument) []state.TrackedProposal {
	if len(relevantDocs) == 0 {
		return []state.TrackedProposal{}
	}

	relevantIds := make(map[string]bool, len(relevantDocs))
	for _, d := range relevantDocs {
		relevantIds[d.Id] = true
	}

	filtered := make([]state.TrackedProposal, 0, len(proposals))
	for _, p := range proposals {
		if len(p.SourceDocumentIds) == 0 {
			filtered = append(filtered, p)
			continue
		}
		for _, id := range p.SourceDocumentIds {
			if relevantIds[id] {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered
}
