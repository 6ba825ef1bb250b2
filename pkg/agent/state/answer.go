package state

// StructuredAnswer is the schema of the final grounded answer.
type StructuredAnswer struct {
	Response  string           `json:"response"`
	Documents []AnswerDocument `json:"documents"`
	Proposals []AnswerProposal `json:"proposals"`
}

// AnswerDocument is a document reference inside a structured answer.
type AnswerDocument struct {
	Name       string `json:"name"`
	Url        string `json:"url"`
	Size       int64  `json:"size"`
	Identifier string `json:"identifier"`
}

// AnswerProposal is a proposal reference inside a structured answer.
type AnswerProposal struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Url        string `json:"url"`
}

// AnswerSchema is the JSON schema handed to the model for constrained
// generation of the final answer.
func AnswerSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response": map[string]any{
				"type":        "string",
				"description": "Die Antwort auf die Frage des Nutzers, gestützt auf die Dokumente.",
			},
			"documents": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":       map[string]any{"type": "string"},
						"url":        map[string]any{"type": "string"},
						"size":       map[string]any{"type": "integer"},
						"identifier": map[string]any{"type": "string"},
					},
					"required": []string{"name", "url"},
				},
			},
			"proposals": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"identifier": map[string]any{"type": "string"},
						"name":       map[string]any{"type": "string"},
						"url":        map[string]any{"type": "string"},
					},
					"required": []string{"identifier", "name"},
				},
			},
		},
		"required": []string{"response", "documents", "proposals"},
	}
}

// RelevanceVerdict is the schema of a single document relevance check.
type RelevanceVerdict struct {
	Relevant bool   `json:"relevant"`
	Reason   string `json:"reason"`
}

// RelevanceSchema constrains the relevance-check model call.
func RelevanceSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"relevant": map[string]any{"type": "boolean"},
			"reason":   map[string]any{"type": "string"},
		},
		"required": []string{"relevant", "reason"},
	}
}

// CoerceAnswer builds a StructuredAnswer from a loose mapping, with
// documented defaults: missing strings become "", missing lists stay empty,
// numeric sizes are truncated to int64.
func CoerceAnswer(raw map[string]any) StructuredAnswer {
	answer := StructuredAnswer{
		Documents: []AnswerDocument{},
		Proposals: []AnswerProposal{},
	}
	if s, ok := raw["response"].(string); ok {
		answer.Response = s
	}
	if docs, ok := raw["documents"].([]any); ok {
		for _, entry := range docs {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			doc := AnswerDocument{}
			if v, ok := m["name"].(string); ok {
				doc.Name = v
			}
			if v, ok := m["url"].(string); ok {
				doc.Url = v
			}
			if v, ok := m["identifier"].(string); ok {
				doc.Identifier = v
			}
			if v, ok := m["size"].(float64); ok {
				doc.Size = int64(v)
			}
			answer.Documents = append(answer.Documents, doc)
		}
	}
	if props, ok := raw["proposals"].([]any); ok {
		for _, entry := range props {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			prop := AnswerProposal{}
			if v, ok := m["identifier"].(string); ok {
				prop.Identifier = v
			}
			if v, ok := m["name"].(string); ok {
				prop.Name = v
			}
			if v, ok := m["url"].(string); ok {
				prop.Url = v
			}
			answer.Proposals = append(answer.Proposals, prop)
		}
	}
	return answer
}
