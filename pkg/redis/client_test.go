package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient("not-a-url", "test", zap.NewNop())
	assert.Error(t, err)
}

func TestClientSetGet(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyActivityByID(1)
	require.NoError(t, client.Set(ctx, key, "cached", TTLActivity))

	val, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "cached", val)
}

func TestClientGetMissing(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Get(context.Background(), "staging:missing")
	assert.Equal(t, goredis.Nil, err)
}

func TestClientExistsAndDelete(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyRegistrationCheck(1, 7)

	n, err := client.Exists(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, client.Set(ctx, key, "1", TTLRegistrationCheck))

	n, err = client.Exists(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, client.Delete(ctx, key))

	n, err = client.Exists(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestClientSetNX(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyRegistrationCheck(1, 7)

	ok, err := client.SetNX(ctx, key, "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SetNX(ctx, key, "1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientHealth(t *testing.T) {
	client := newTestClient(t)
	assert.NoError(t, client.Health(context.Background()))
}

func TestPrefixForLog(t *testing.T) {
	assert.Equal(t, "short", prefixForLog("short"))

	long := "staging:registration:42:user:700000001"
	truncated := prefixForLog(long)
	assert.Len(t, []rune(truncated), 25)
	assert.Equal(t, long[:24], truncated[:24])
}
