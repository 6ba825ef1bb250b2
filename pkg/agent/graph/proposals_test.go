package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"riski-agent-be/pkg/agent/state"
)

func TestFilterTrackedProposals(t *testing.T) {
	relevantDoc := state.TrackedDocument{Id: "doc-1", Checked: true, Relevant: true}

	linked := state.TrackedProposal{Identifier: "A-1", Name: "Radweg", SourceDocumentIds: []string{"doc-1"}}
	linkedElsewhere := state.TrackedProposal{Identifier: "A-2", Name: "Parkhaus", SourceDocumentIds: []string{"doc-99"}}
	unlinked := state.TrackedProposal{Identifier: "A-3", Name: "Spielplatz"}

	t.Run("keeps proposals linked to a relevant document", func(t *testing.T) {
		filtered := FilterTrackedProposals(
			[]state.TrackedProposal{linked, linkedElsewhere},
			[]state.TrackedDocument{relevantDoc},
		)

		assert.Len(t, filtered, 1)
		assert.Equal(t, "A-1", filtered[0].Identifier)
	})

	t.Run("keeps proposals without source links", func(t *testing.T) {
		filtered := FilterTrackedProposals(
			[]state.TrackedProposal{linkedElsewhere, unlinked},
			[]state.TrackedDocument{relevantDoc},
		)

		assert.Len(t, filtered, 1)
		assert.Equal(t, "A-3", filtered[0].Identifier)
	})

	t.Run("drops everything without relevant documents", func(t *testing.T) {
		filtered := FilterTrackedProposals(
			[]state.TrackedProposal{linked, unlinked},
			nil,
		)

		assert.Empty(t, filtered)
		assert.NotNil(t, filtered)
	})

	t.Run("one relevant link among many suffices", func(t *testing.T) {
		multi := state.TrackedProposal{
			Identifier:        "A-4",
			SourceDocumentIds: []string{"doc-98", "doc-1", "doc-99"},
		}
		filtered := FilterTrackedProposals(
			[]state.TrackedProposal{multi},
			[]state.TrackedDocument{relevantDoc},
		)

		assert.Len(t, filtered, 1)
	})

	t.Run("preserves proposal order", func(t *testing.T) {
		filtered := FilterTrackedProposals(
			[]state.TrackedProposal{unlinked, linked},
			[]state.TrackedDocument{relevantDoc},
		)

		assert.Len(t, filtered, 2)
		assert.Equal(t, "A-3", filtered[0].Identifier)
		assert.Equal(t, "A-1", filtered[1].Identifier)
	})
}
