package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIcebreakers(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  bool
	}{
		{
			name:     "plain json",
			input:    `["Hi!", "Want to review flashcards?"]`,
			expected: []string{"Hi!", "Want to review flashcards?"},
		},
		{
			name:     "fenced json",
			input:    "```json\n[\"One\", \" \", \"Two\"]\n```",
			expected: []string{"One", "Two"},
		},
		{
			name:     "lines",
			input:    "First line\n\nSecond line",
			expected: []string{"First line", "Second line"},
		},
		{
			name:    "empty",
			input:   "[]",
			wantErr: true,
		},
		{
			name:    "only brackets",
			input:   "[\n]",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIcebreakers(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
