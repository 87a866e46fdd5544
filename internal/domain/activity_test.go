package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipantPercentage(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		max      int
		expected int
	}{
		{
			name:     "empty activity",
			current:  0,
			max:      30,
			expected: 0,
		},
		{
			name:     "full activity",
			current:  30,
			max:      30,
			expected: 100,
		},
		{
			name:     "half full",
			current:  15,
			max:      30,
			expected: 50,
		},
		{
			name:     "rounds half up",
			current:  1,
			max:      8, // 12.5%
			expected: 13,
		},
		{
			name:     "rounds down below half",
			current:  1,
			max:      3, // 33.33%
			expected: 33,
		},
		{
			name:     "rounds up above half",
			current:  2,
			max:      3, // 66.67%
			expected: 67,
		},
		{
			name:     "over capacity exceeds 100",
			current:  12,
			max:      10,
			expected: 120,
		},
		{
			name:     "zero capacity",
			current:  5,
			max:      0,
			expected: 0,
		},
		{
			name:     "negative capacity",
			current:  5,
			max:      -1,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParticipantPercentage(tt.current, tt.max))
		})
	}
}
