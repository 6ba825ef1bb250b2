package contract

import (
	"context"

	"riski-agent-be/pkg/agent/state"
)

// ProposalRepository looks up council motions linked to retrieved files.
type ProposalRepository interface {
	// FindForFiles returns the proposals (paper type "Stadtratsantrag")
	// linked to the given file ids, deduplicated by (identifier, url), each
	// carrying the file ids it was found through.
	FindForFiles(ctx context.Context, fileIds []string) ([]state.TrackedProposal, error)
}
