package graph

import (
	"riski-agent-be/pkg/agent/state"
)

// collectNode is the convergence point after the relevance fan-out. It
// decides whether any document survived; if none did the turn ends with the
// canned no-results answer instead of entering generation.
func (g *Graph) collectNode(conv *state.Conversation) (state.Update, error) {
	if state.IsGuardTerminal(conv.LastMessage()) {
		return state.Update{}, nil
	}

	surviving := 0
	for _, d := range conv.TrackedDocuments {
		if d.Checked && d.Relevant {
			surviving++
		}
	}

	if surviving == 0 {
		g.log.Info("graph", "Collect: no document passed the relevance check", map[string]interface{}{
			"checked": len(conv.TrackedDocuments),
		})
		return g.terminalNoResults(), nil
	}

	g.log.Debug("graph", "Collect: documents passed", map[string]interface{}{
		"surviving": surviving,
		"total":     len(conv.TrackedDocuments),
	})
	return state.Update{}, nil
}
