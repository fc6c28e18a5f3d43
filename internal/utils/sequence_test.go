package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSequence(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		last        string
		expected    string
		expectError bool
	}{
		{
			name:     "first allocation starts at one",
			prefix:   "INS",
			last:     "",
			expected: "INS-000001",
		},
		{
			name:     "increments and keeps padding",
			prefix:   "INS",
			last:     "INS-000041",
			expected: "INS-000042",
		},
		{
			name:     "crosses padding boundary",
			prefix:   "INS",
			last:     "INS-000099",
			expected: "INS-000100",
		},
		{
			name:     "grows past fixed width",
			prefix:   "INS",
			last:     "INS-999999",
			expected: "INS-1000000",
		},
		{
			name:        "prefix mismatch",
			prefix:      "INS",
			last:        "SCH-000003",
			expectError: true,
		},
		{
			name:        "non-numeric suffix",
			prefix:      "INS",
			last:        "INS-abc",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NextSequence(tt.prefix, tt.last)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestNextSequenceMonotonicity(t *testing.T) {
	last := ""
	seen := make(map[string]bool)

	for i := 0; i < 250; i++ {
		next, err := NextSequence("INS", last)
		assert.NoError(t, err)
		assert.Greater(t, next, last, "identifiers must be strictly increasing")
		assert.False(t, seen[next], fmt.Sprintf("duplicate identifier %s", next))
		seen[next] = true
		last = next
	}

	assert.Equal(t, "INS-000250", last)
}
