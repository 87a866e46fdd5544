package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyActivityByID builds the cache key for an activity snapshot
func (kb *KeyBuilder) KeyActivityByID(activityID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyActivityByID, activityID))
}

// KeyRegistrationCheck builds the cache key for a registration existence probe
func (kb *KeyBuilder) KeyRegistrationCheck(activityID, userID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyRegistrationCheck, activityID, userID))
}

// KeyPendingFeed builds the cache key for the admin pending-registration feed
func (kb *KeyBuilder) KeyPendingFeed() string {
	return kb.BuildKey(KeyPendingFeed)
}

// KeyCustom builds a key from a custom pattern
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	key := fmt.Sprintf(pattern, args...)
	return kb.BuildKey(key)
}
