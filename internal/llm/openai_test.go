package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestIsQuotaExceeded(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "insufficient quota code",
			err:      &openai.APIError{Code: "insufficient_quota", Message: "Billing hard limit reached"},
			expected: true,
		},
		{
			name:     "quota message without code",
			err:      &openai.APIError{Message: "You exceeded your current quota, please check your plan and billing details."},
			expected: true,
		},
		{
			name:     "quota message mixed case",
			err:      &openai.APIError{Message: "You Exceeded Your Current Quota."},
			expected: true,
		},
		{
			name:     "wrapped api error",
			err:      fmt.Errorf("failed to create chat completion: %w", &openai.APIError{Code: "insufficient_quota"}),
			expected: true,
		},
		{
			name:     "unrelated api error",
			err:      &openai.APIError{Code: "invalid_api_key", Message: "Incorrect API key provided"},
			expected: false,
		},
		{
			name:     "non-string code",
			err:      &openai.APIError{Code: 429},
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("connection refused"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsQuotaExceeded(tt.err))
		})
	}
}
