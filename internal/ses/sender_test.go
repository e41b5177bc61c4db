package ses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupRecipients(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "empty input",
			input:    nil,
			expected: nil,
		},
		{
			name:     "case-insensitive duplicates keep the first spelling",
			input:    []string{"Ana@Example.com", "ana@example.com", "max@example.com"},
			expected: []string{"Ana@Example.com", "max@example.com"},
		},
		{
			name:     "blank and whitespace entries are dropped",
			input:    []string{"", "  ", " ana@example.com ", "max@example.com"},
			expected: []string{"ana@example.com", "max@example.com"},
		},
		{
			name:     "order is preserved",
			input:    []string{"c@example.com", "a@example.com", "b@example.com", "a@example.com"},
			expected: []string{"c@example.com", "a@example.com", "b@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupRecipients(tt.input))
		})
	}
}
