package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceAnswer(t *testing.T) {
	t.Run("full mapping", func(t *testing.T) {
		answer := CoerceAnswer(map[string]any{
			"response": "Die Antwort.",
			"documents": []any{
				map[string]any{"name": "Antrag.pdf", "url": "https://ris/doc/1", "size": float64(1024), "identifier": "D-1"},
			},
			"proposals": []any{
				map[string]any{"identifier": "A-1", "name": "Radweg", "url": "https://ris/antrag/1"},
			},
		})

		assert.Equal(t, "Die Antwort.", answer.Response)
		assert.Len(t, answer.Documents, 1)
		assert.Equal(t, int64(1024), answer.Documents[0].Size)
		assert.Len(t, answer.Proposals, 1)
		assert.Equal(t, "A-1", answer.Proposals[0].Identifier)
	})

	t.Run("missing fields default", func(t *testing.T) {
		answer := CoerceAnswer(map[string]any{})

		assert.Equal(t, "", answer.Response)
		assert.NotNil(t, answer.Documents)
		assert.Empty(t, answer.Documents)
		assert.NotNil(t, answer.Proposals)
		assert.Empty(t, answer.Proposals)
	})

	t.Run("malformed entries are skipped", func(t *testing.T) {
		answer := CoerceAnswer(map[string]any{
			"response":  "ok",
			"documents": []any{"not an object", map[string]any{"name": "gut.pdf"}},
			"proposals": []any{float64(42)},
		})

		assert.Len(t, answer.Documents, 1)
		assert.Equal(t, "gut.pdf", answer.Documents[0].Name)
		assert.Empty(t, answer.Proposals)
	})

	t.Run("wrong types fall back to zero values", func(t *testing.T) {
		answer := CoerceAnswer(map[string]any{
			"response":  float64(7),
			"documents": []any{map[string]any{"name": true, "size": "big"}},
		})

		assert.Equal(t, "", answer.Response)
		assert.Equal(t, "", answer.Documents[0].Name)
		assert.Equal(t, int64(0), answer.Documents[0].Size)
	})
}
