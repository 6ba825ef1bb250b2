package state

import (
	"riski-agent-be/pkg/llm"
)

// TrackedDocument is a retrieved document enriched with relevance-check
// bookkeeping.
//
// Lifecycle:
//  1. The retrieval tool creates the entry (Checked=false, Relevant=true).
//  2. The per-document check sets Checked=true and the verdict.
//  3. Generation uses only documents where Relevant is true.
type TrackedDocument struct {
	Id       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`

	// Relevance-check fields, written only through the reducer.
	Checked  bool   `json:"checked"`
	Relevant bool   `json:"relevant"`
	Reason   string `json:"reason"`
}

// NewTrackedDocument returns an unchecked document; unchecked documents are
// provisionally kept.
func NewTrackedDocument(id, content string, metadata map[string]any) TrackedDocument {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return TrackedDocument{
		Id:       id,
		Content:  content,
		Metadata: metadata,
		Checked:  false,
		Relevant: true,
	}
}

// DisplayName returns a human-readable label for the document.
func (d TrackedDocument) DisplayName() string {
	if name, ok := d.Metadata["name"].(string); ok && name != "" {
		return name
	}
	if title, ok := d.Metadata["title"].(string); ok && title != "" {
		return title
	}
	if d.Id != "" {
		return d.Id
	}
	return "Unbenanntes Dokument"
}

// Slim returns a copy without content, for streaming to clients.
func (d TrackedDocument) Slim() map[string]any {
	return map[string]any{
		"id":       d.Id,
		"metadata": d.Metadata,
		"checked":  d.Checked,
		"relevant": d.Relevant,
		"reason":   d.Reason,
	}
}

// TrackedProposal is a council motion (Stadtratsantrag) linked to one or
// more retrieved documents. Proposals are created by the retrieval tool and
// never mutated afterwards.
type TrackedProposal struct {
	Identifier        string   `json:"identifier"`
	Name              string   `json:"name"`
	Subject           string   `json:"subject"`
	Date              string   `json:"date"`
	RisUrl            string   `json:"risUrl"`
	SourceDocumentIds []string `json:"source_document_ids"`
}

// RelevanceUpdate carries a single relevance-check verdict back to the reducer.
type RelevanceUpdate struct {
	DocId    string `json:"doc_id"`
	Relevant bool   `json:"relevant"`
	Reason   string `json:"reason"`
}

// DocumentsUpdate is the tagged variant written to the tracked_documents
// channel: either a full replacement (from the tool node) or a list of
// per-document patches (from the relevance checks). Replace wins when both
// are set; nodes never set both.
type DocumentsUpdate struct {
	Replace []TrackedDocument
	Patch   []RelevanceUpdate
}

// MergeTrackedDocuments is the reducer for the tracked_documents channel.
// It is the only writer allowed to change Checked/Relevant/Reason, patches
// by id rather than position, and preserves the current ordering.
func MergeTrackedDocuments(current []TrackedDocument, update DocumentsUpdate) []TrackedDocument {
	if len(update.Replace) > 0 {
		replaced := make([]TrackedDocument, len(update.Replace))
		copy(replaced, update.Replace)
		return replaced
	}

	if len(update.Patch) == 0 {
		return current
	}

	byId := make(map[string]RelevanceUpdate, len(update.Patch))
	for _, u := range update.Patch {
		byId[u.DocId] = u
	}

	patched := make([]TrackedDocument, len(current))
	for i, doc := range current {
		if upd, ok := byId[doc.Id]; ok {
			doc.Checked = true
			doc.Relevant = upd.Relevant
			doc.Reason = upd.Reason
		}
		patched[i] = doc
	}
	return patched
}

// Conversation is the state threaded through one turn of the graph and
// persisted at node boundaries.
type Conversation struct {
	Messages         []llm.Message     `json:"messages"`
	UserQuery        string            `json:"user_query"`
	InitialQuestion  string            `json:"initial_question"`
	TrackedDocuments []TrackedDocument `json:"tracked_documents"`
	TrackedProposals []TrackedProposal `json:"tracked_proposals"`
}

// Update is a partial state update returned by a graph node.
type Update struct {
	Messages        []llm.Message
	UserQuery       string
	InitialQuestion string
	Documents       *DocumentsUpdate
	Proposals       []TrackedProposal
}

// Apply merges a node update into the conversation. Messages append,
// scalar fields overwrite when non-empty, documents go through the reducer
// and proposals replace wholesale.
func (c *Conversation) Apply(u Update) {
	c.Messages = append(c.Messages, u.Messages...)
	if u.UserQuery != "" {
		c.UserQuery = u.UserQuery
	}
	if u.InitialQuestion != "" {
		c.InitialQuestion = u.InitialQuestion
	}
	if u.Documents != nil {
		c.TrackedDocuments = MergeTrackedDocuments(c.TrackedDocuments, *u.Documents)
	}
	if u.Proposals != nil {
		c.TrackedProposals = u.Proposals
	}
}

// HasDocuments reports whether any documents were retrieved, regardless of
// relevance.
func (c *Conversation) HasDocuments() bool {
	return len(c.TrackedDocuments) > 0
}

// RelevantDocuments returns the documents that passed (or have not yet run)
// the relevance check, in retrieval order.
func (c *Conversation) RelevantDocuments() []TrackedDocument {
	var relevant []TrackedDocument
	for _, d := range c.TrackedDocuments {
		if d.Relevant {
			relevant = append(relevant, d)
		}
	}
	return relevant
}

// AllChecked is true once every tracked document has a verdict.
func (c *Conversation) AllChecked() bool {
	if len(c.TrackedDocuments) == 0 {
		return false
	}
	for _, d := range c.TrackedDocuments {
		if !d.Checked {
			return false
		}
	}
	return true
}

// LastMessage returns the most recent message, or nil for an empty turn.
func (c *Conversation) LastMessage() *llm.Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// LatestHumanQuery returns the content of the most recent user message.
func (c *Conversation) LatestHumanQuery() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == llm.RoleUser {
			return c.Messages[i].Content
		}
	}
	return ""
}
