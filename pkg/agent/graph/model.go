package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"riski-agent-be/pkg/agent/state"
	"riski-agent-be/pkg/llm"
)

// modelNode is the dual-mode model call. With relevant, fully checked
// documents in state it generates the grounded answer; otherwise it lets
// the model decide between answering and calling a tool.
func (g *Graph) modelNode(ctx context.Context, conv *state.Conversation) (state.Update, error) {
	if len(conv.RelevantDocuments()) > 0 && conv.AllChecked() {
		return g.generate(ctx, conv)
	}
	return g.decide(ctx, conv)
}

func (g *Graph) decide(ctx context.Context, conv *state.Conversation) (state.Update, error) {
	userQuery := conv.UserQuery
	if userQuery == "" {
		userQuery = conv.LatestHumanQuery()
	}

	history := make([]llm.Message, 0, len(conv.Messages)+1)
	history = append(history, llm.Message{Role: llm.RoleSystem, Content: g.cfg.SystemPrompt})
	history = append(history, conv.Messages...)

	g.log.Debug("graph", "Model decide call", map[string]interface{}{"messages": len(history)})

	reply, err := g.provider.Chat(ctx, history, llm.WithTools(g.registry.Specs()))
	if err != nil {
		return state.Update{}, fmt.Errorf("model call failed: %w", err)
	}
	reply.ID = uuid.NewString()

	update := state.Update{
		Messages:  []llm.Message{*reply},
		UserQuery: userQuery,
	}
	if conv.InitialQuestion == "" {
		update.InitialQuestion = userQuery
	}
	return update, nil
}

// generationPayload is the JSON handed to the model in generate mode.
// Documents are projected without the relevance bookkeeping fields.
type generationPayload struct {
	Documents []payloadDocument       `json:"documents"`
	Proposals []state.TrackedProposal `json:"proposals"`
}

type payloadDocument struct {
	Id       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

func (g *Graph) generate(ctx context.Context, conv *state.Conversation) (state.Update, error) {
	relevant := conv.RelevantDocuments()

	payload := generationPayload{
		Documents: make([]payloadDocument, 0, len(relevant)),
		Proposals: FilterTrackedProposals(conv.TrackedProposals, relevant),
	}
	for _, d := range relevant {
		payload.Documents = append(payload.Documents, payloadDocument{
			Id:       d.Id,
			Content:  d.Content,
			Metadata: d.Metadata,
		})
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return state.Update{}, fmt.Errorf("marshal generation payload: %w", err)
	}

	// Clean history: system prompt, prior messages minus tool chatter, then
	// the framing instruction and the document payload.
	history := []llm.Message{{Role: llm.RoleSystem, Content: g.cfg.SystemPrompt}}
	for _, msg := range conv.Messages {
		if msg.Role == llm.RoleTool {
			continue
		}
		history = append(history, msg)
	}
	history = append(history,
		llm.Message{
			Role:    llm.RoleUser,
			Content: "Beantworte die Frage ausschließlich anhand der folgenden geprüften Dokumente und Stadtratsanträge. Verweise in der Antwort auf die verwendeten Dokumente.",
		},
		llm.Message{Role: llm.RoleUser, Content: string(payloadJson)},
	)

	g.log.Info("graph", "Generating grounded answer", map[string]interface{}{
		"documents": len(payload.Documents),
		"proposals": len(payload.Proposals),
	})

	reply, err := g.provider.Chat(ctx, history, llm.WithResponseSchema(state.AnswerSchema()))
	if err != nil {
		return state.Update{}, fmt.Errorf("generation call failed: %w", err)
	}

	answer := g.decodeAnswer(reply.Content)
	content, err := json.Marshal(answer)
	if err != nil {
		return state.Update{}, fmt.Errorf("marshal structured answer: %w", err)
	}

	return state.Update{
		Messages: []llm.Message{{
			ID:      uuid.NewString(),
			Role:    llm.RoleAssistant,
			Content: string(content),
		}},
	}, nil
}

// decodeAnswer parses the structured model output, coercing loose mappings
// field-by-field and falling back to a best-effort dump of the raw content.
func (g *Graph) decodeAnswer(content string) state.StructuredAnswer {
	var answer state.StructuredAnswer
	if err := llm.DecodeJSON(content, &answer); err == nil {
		if answer.Documents == nil {
			answer.Documents = []state.AnswerDocument{}
		}
		if answer.Proposals == nil {
			answer.Proposals = []state.AnswerProposal{}
		}
		return answer
	}

	var raw map[string]any
	if err := llm.DecodeJSON(content, &raw); err == nil {
		return state.CoerceAnswer(raw)
	}

	g.log.Warn("graph", "Structured answer not decodable, dumping raw content", nil)
	return state.StructuredAnswer{
		Response:  content,
		Documents: []state.AnswerDocument{},
		Proposals: []state.AnswerProposal{},
	}
}
