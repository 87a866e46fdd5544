package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"va-backend/internal/domain"
	"va-backend/pkg/errors"
	"va-backend/pkg/redis"
)

func TestActivityServiceGetByID(t *testing.T) {
	regs := newFakeRegistrationRepo()
	acts := newFakeActivityRepo(regs)
	acts.activities[1] = &domain.Activity{ID: 1, Title: "Beach Cleanup", ParticipantsMax: 30}

	svc := NewActivityService(acts, nil, zap.NewNop())

	activity, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Beach Cleanup", activity.Title)

	_, err = svc.GetByID(context.Background(), 99)
	requireAppError(t, err, errors.ErrorTypeNotFound)
}

func TestActivityServiceGetByIDServesFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { redisClient.Close() })

	regs := newFakeRegistrationRepo()
	acts := newFakeActivityRepo(regs)
	acts.activities[1] = &domain.Activity{ID: 1, Title: "Beach Cleanup", ParticipantsMax: 30}

	svc := NewActivityService(acts, redisClient, zap.NewNop())

	// First call hits the repo and fills the cache
	activity, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Beach Cleanup", activity.Title)

	// Mutate the backing store; the cached snapshot is still served
	acts.activities[1].Title = "Renamed"

	cached, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Beach Cleanup", cached.Title)

	// Invalidation falls through to the repo again
	require.NoError(t, redisClient.Delete(context.Background(),
		redisClient.KeyBuilder.KeyActivityByID(1)))

	fresh, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", fresh.Title)
}

func TestActivityServiceList(t *testing.T) {
	regs := newFakeRegistrationRepo()
	acts := newFakeActivityRepo(regs)
	acts.activities[1] = &domain.Activity{ID: 1, Title: "Beach Cleanup"}
	acts.activities[2] = &domain.Activity{ID: 2, Title: "Tree Planting"}

	svc := NewActivityService(acts, nil, zap.NewNop())

	activities, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, activities, 2)
}
