package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeJSON parses a model response into v, tolerating markdown code fences
// around the JSON body. Models regularly wrap structured output in ```json
// fences even when told not to.
func DecodeJSON(content string, v any) error {
	raw := []byte(content)
	raw = bytes.TrimSpace(raw)
	raw = bytes.TrimPrefix(raw, []byte("```json"))
	raw = bytes.TrimPrefix(raw, []byte("```"))
	raw = bytes.TrimSuffix(raw, []byte("```"))
	raw = bytes.TrimSpace(raw)

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse error: %w | raw: %s", err, string(raw))
	}
	return nil
}
