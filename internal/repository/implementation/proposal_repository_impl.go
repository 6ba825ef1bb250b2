package implementation

import (
	"context"
	"time"

	"gorm.io/gorm"

	"riski-agent-be/internal/model"
	"riski-agent-be/internal/repository/contract"
	"riski-agent-be/pkg/agent/state"
)

// paperTypeProposal is the OParl paper type surfaced as a proposal.
const paperTypeProposal = "Stadtratsantrag"

const queryTimeout = 10 * time.Second

type ProposalRepositoryImpl struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) contract.ProposalRepository {
	return &ProposalRepositoryImpl{db: db}
}

func (r *ProposalRepositoryImpl) FindForFiles(ctx context.Context, fileIds []string) ([]state.TrackedProposal, error) {
	if len(fileIds) == 0 {
		return []state.TrackedProposal{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var files []model.File
	err := r.db.WithContext(ctx).
		Preload("Papers").
		Where("id IN ?", fileIds).
		Find(&files).Error
	if err != nil {
		return nil, err
	}

	type proposalKey struct {
		identifier string
		url        string
	}

	byKey := make(map[proposalKey]*state.TrackedProposal)
	var order []proposalKey

	for _, f := range files {
		for _, p := range f.Papers {
			if p.PaperType != paperTypeProposal {
				continue
			}
			key := proposalKey{identifier: p.Reference, url: p.Id}
			existing, ok := byKey[key]
			if !ok {
				prop := state.TrackedProposal{
					Identifier:        p.Reference,
					Name:              p.Name,
					Subject:           p.Subject,
					RisUrl:            p.Id,
					SourceDocumentIds: []string{f.Id},
				}
				if !p.Date.IsZero() {
					prop.Date = p.Date.Format("2006-01-02")
				}
				byKey[key] = &prop
				order = append(order, key)
				continue
			}
			existing.SourceDocumentIds = appendUnique(existing.SourceDocumentIds, f.Id)
		}
	}

	proposals := make([]state.TrackedProposal, 0, len(order))
	for _, key := range order {
		proposals = append(proposals, *byKey[key])
	}
	return proposals, nil
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
