package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyBuilderPrefix(t *testing.T) {
	tests := []struct {
		environment string
		expected    string
	}{
		{"production", "prod"},
		{"development", "staging"},
		{"staging", "staging"},
		{"test", "staging"},
		{"", "prod"},
		{"unknown", "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.expected, kb.GetPrefix())
		})
	}
}

func TestKeyBuilderKeys(t *testing.T) {
	kb := NewKeyBuilder("production")

	assert.Equal(t, "prod:activity:42", kb.KeyActivityByID(42))
	assert.Equal(t, "prod:registration:42:user:7", kb.KeyRegistrationCheck(42, 7))
	assert.Equal(t, "prod:registration:pending:feed", kb.KeyPendingFeed())
	assert.Equal(t, "prod:custom:9", kb.KeyCustom("custom:%d", 9))
}

func TestKeyBuilderEnvironmentIsolation(t *testing.T) {
	prod := NewKeyBuilder("production")
	staging := NewKeyBuilder("staging")

	assert.NotEqual(t, prod.KeyActivityByID(1), staging.KeyActivityByID(1))
}
