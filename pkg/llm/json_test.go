package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type verdict struct {
		Relevant bool   `json:"relevant"`
		Reason   string `json:"reason"`
	}

	tests := []struct {
		name    string
		content string
		want    verdict
		wantErr bool
	}{
		{
			name:    "plain json",
			content: `{"relevant": true, "reason": "passt"}`,
			want:    verdict{Relevant: true, Reason: "passt"},
		},
		{
			name:    "json fence",
			content: "```json\n{\"relevant\": false, \"reason\": \"anderes Thema\"}\n```",
			want:    verdict{Relevant: false, Reason: "anderes Thema"},
		},
		{
			name:    "bare fence",
			content: "```\n{\"relevant\": true, \"reason\": \"ok\"}\n```",
			want:    verdict{Relevant: true, Reason: "ok"},
		},
		{
			name:    "surrounding whitespace",
			content: "  \n{\"relevant\": true, \"reason\": \"ok\"}\n  ",
			want:    verdict{Relevant: true, Reason: "ok"},
		},
		{
			name:    "not json",
			content: "Das Dokument ist relevant.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got verdict
			err := DecodeJSON(tt.content, &got)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "parse error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
