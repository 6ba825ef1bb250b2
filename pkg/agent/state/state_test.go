package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"riski-agent-be/pkg/llm"
)

func TestNewTrackedDocument(t *testing.T) {
	doc := NewTrackedDocument("doc-1", "content", nil)

	assert.Equal(t, "doc-1", doc.Id)
	assert.False(t, doc.Checked)
	assert.True(t, doc.Relevant, "unchecked documents are provisionally kept")
	assert.NotNil(t, doc.Metadata)
}

func TestTrackedDocumentDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		doc      TrackedDocument
		expected string
	}{
		{
			name:     "metadata name wins",
			doc:      TrackedDocument{Id: "id-1", Metadata: map[string]any{"name": "Antrag.pdf", "title": "Titel"}},
			expected: "Antrag.pdf",
		},
		{
			name:     "falls back to title",
			doc:      TrackedDocument{Id: "id-1", Metadata: map[string]any{"title": "Titel"}},
			expected: "Titel",
		},
		{
			name:     "falls back to id",
			doc:      TrackedDocument{Id: "id-1", Metadata: map[string]any{}},
			expected: "id-1",
		},
		{
			name:     "nothing available",
			doc:      TrackedDocument{},
			expected: "Unbenanntes Dokument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.doc.DisplayName())
		})
	}
}

func TestTrackedDocumentSlim(t *testing.T) {
	doc := TrackedDocument{
		Id:       "doc-1",
		Content:  "very long content that must not leave the process",
		Metadata: map[string]any{"name": "Antrag.pdf"},
		Checked:  true,
		Relevant: false,
		Reason:   "off topic",
	}

	slim := doc.Slim()

	assert.Equal(t, "doc-1", slim["id"])
	assert.Equal(t, false, slim["relevant"])
	assert.Equal(t, "off topic", slim["reason"])
	assert.NotContains(t, slim, "content")
}

func TestMergeTrackedDocuments(t *testing.T) {
	current := []TrackedDocument{
		NewTrackedDocument("a", "content a", nil),
		NewTrackedDocument("b", "content b", nil),
		NewTrackedDocument("c", "content c", nil),
	}

	t.Run("replace overwrites everything", func(t *testing.T) {
		replacement := []TrackedDocument{NewTrackedDocument("x", "content x", nil)}
		merged := MergeTrackedDocuments(current, DocumentsUpdate{Replace: replacement})

		assert.Len(t, merged, 1)
		assert.Equal(t, "x", merged[0].Id)
	})

	t.Run("replace wins when both are set", func(t *testing.T) {
		merged := MergeTrackedDocuments(current, DocumentsUpdate{
			Replace: []TrackedDocument{NewTrackedDocument("x", "content x", nil)},
			Patch:   []RelevanceUpdate{{DocId: "a", Relevant: false}},
		})

		assert.Len(t, merged, 1)
		assert.Equal(t, "x", merged[0].Id)
		assert.False(t, merged[0].Checked)
	})

	t.Run("patch targets by id and preserves order", func(t *testing.T) {
		merged := MergeTrackedDocuments(current, DocumentsUpdate{
			Patch: []RelevanceUpdate{
				{DocId: "c", Relevant: false, Reason: "off topic"},
				{DocId: "a", Relevant: true, Reason: "on topic"},
			},
		})

		assert.Len(t, merged, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{merged[0].Id, merged[1].Id, merged[2].Id})

		assert.True(t, merged[0].Checked)
		assert.True(t, merged[0].Relevant)
		assert.Equal(t, "on topic", merged[0].Reason)

		assert.False(t, merged[1].Checked, "unpatched document stays untouched")

		assert.True(t, merged[2].Checked)
		assert.False(t, merged[2].Relevant)
	})

	t.Run("patch for unknown id is ignored", func(t *testing.T) {
		merged := MergeTrackedDocuments(current, DocumentsUpdate{
			Patch: []RelevanceUpdate{{DocId: "ghost", Relevant: false}},
		})

		assert.Len(t, merged, 3)
		for _, d := range merged {
			assert.False(t, d.Checked)
		}
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		merged := MergeTrackedDocuments(current, DocumentsUpdate{})
		assert.Equal(t, current, merged)
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		MergeTrackedDocuments(current, DocumentsUpdate{
			Patch: []RelevanceUpdate{{DocId: "a", Relevant: false}},
		})
		assert.False(t, current[0].Checked)
	})
}

func TestConversationApply(t *testing.T) {
	conv := &Conversation{}

	conv.Apply(Update{
		Messages:        []llm.Message{{Role: llm.RoleUser, Content: "Frage"}},
		UserQuery:       "Frage",
		InitialQuestion: "Frage",
	})
	conv.Apply(Update{
		Documents: &DocumentsUpdate{Replace: []TrackedDocument{NewTrackedDocument("a", "text", nil)}},
		Proposals: []TrackedProposal{{Identifier: "A-1"}},
	})

	assert.Len(t, conv.Messages, 1)
	assert.Equal(t, "Frage", conv.UserQuery)
	assert.Len(t, conv.TrackedDocuments, 1)
	assert.Len(t, conv.TrackedProposals, 1)

	// Empty scalars do not clobber existing values.
	conv.Apply(Update{Messages: []llm.Message{{Role: llm.RoleAssistant, Content: "Antwort"}}})
	assert.Equal(t, "Frage", conv.UserQuery)
	assert.Equal(t, "Frage", conv.InitialQuestion)
}

func TestConversationAllChecked(t *testing.T) {
	conv := &Conversation{}
	assert.False(t, conv.AllChecked(), "no documents means not checked")

	conv.TrackedDocuments = []TrackedDocument{
		{Id: "a", Checked: true},
		{Id: "b", Checked: false},
	}
	assert.False(t, conv.AllChecked())

	conv.TrackedDocuments[1].Checked = true
	assert.True(t, conv.AllChecked())
}

func TestConversationRelevantDocuments(t *testing.T) {
	conv := &Conversation{TrackedDocuments: []TrackedDocument{
		{Id: "a", Checked: true, Relevant: true},
		{Id: "b", Checked: true, Relevant: false},
		{Id: "c", Checked: false, Relevant: true},
	}}

	relevant := conv.RelevantDocuments()

	assert.Len(t, relevant, 2)
	assert.Equal(t, "a", relevant[0].Id)
	assert.Equal(t, "c", relevant[1].Id)
}

func TestConversationLatestHumanQuery(t *testing.T) {
	conv := &Conversation{Messages: []llm.Message{
		{Role: llm.RoleUser, Content: "erste Frage"},
		{Role: llm.RoleAssistant, Content: "Antwort"},
		{Role: llm.RoleUser, Content: "zweite Frage"},
		{Role: llm.RoleTool, Content: "tool output"},
	}}

	assert.Equal(t, "zweite Frage", conv.LatestHumanQuery())

	empty := &Conversation{}
	assert.Equal(t, "", empty.LatestHumanQuery())
}

func TestHasToolMessageInTurn(t *testing.T) {
	conv := &Conversation{Messages: []llm.Message{
		{Role: llm.RoleUser, Content: "alte Frage"},
		{Role: llm.RoleTool, Content: "old tool output"},
		{Role: llm.RoleAssistant, Content: "alte Antwort"},
		{Role: llm.RoleUser, Content: "neue Frage"},
	}}

	assert.False(t, conv.HasToolMessageInTurn(), "tool message from a previous turn does not count")

	conv.Messages = append(conv.Messages, llm.Message{Role: llm.RoleTool, Content: "fresh output"})
	assert.True(t, conv.HasToolMessageInTurn())
}

func TestGuardTerminalMessage(t *testing.T) {
	msg := NewGuardTerminalMessage("nichts gefunden")

	assert.Equal(t, llm.RoleAssistant, msg.Role)
	assert.NotEmpty(t, msg.ID)
	assert.True(t, IsGuardTerminal(&msg))

	plain := llm.Message{Role: llm.RoleAssistant, Content: "hallo"}
	assert.False(t, IsGuardTerminal(&plain))
	assert.False(t, IsGuardTerminal(nil))
}
