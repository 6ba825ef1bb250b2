package graph

import (
	"riski-agent-be/pkg/agent/state"
	"riski-agent-be/pkg/llm"
)

// guardNode validates post-retrieval state and captures the user query.
// When no tool ran or retrieval came back empty it emits the canned
// no-results answer as the turn's terminal message.
func (g *Graph) guardNode(conv *state.Conversation) (state.Update, error) {
	if !conv.HasToolMessageInTurn() {
		g.log.Info("graph", "Guard: no tool message in turn, short-circuiting", nil)
		return g.terminalNoResults(), nil
	}

	userQuery := conv.UserQuery
	if userQuery == "" {
		userQuery = conv.LatestHumanQuery()
	}

	if !conv.HasDocuments() {
		g.log.Info("graph", "Guard: retrieval returned no documents, short-circuiting", nil)
		return g.terminalNoResults(), nil
	}

	update := state.Update{UserQuery: userQuery}
	if conv.InitialQuestion == "" {
		update.InitialQuestion = userQuery
	}
	return update, nil
}

func (g *Graph) terminalNoResults() state.Update {
	return state.Update{
		Messages: []llm.Message{state.NewGuardTerminalMessage(g.cfg.NoResultsResponse)},
	}
}
