package service

import (
	"context"
	"encoding/json"

	"va-backend/internal/domain"
	"va-backend/internal/repository"
	"va-backend/pkg/errors"
	"va-backend/pkg/redis"

	"go.uber.org/zap"
)

// ActivityService serves the activity read model with its derived
// participant aggregates.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	redis        *redis.Client
	logger       *zap.Logger
}

// NewActivityService creates a new activity service. redisClient may be nil.
func NewActivityService(activityRepo repository.ActivityRepository, redisClient *redis.Client, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		redis:        redisClient,
		logger:       logger,
	}
}

// GetByID returns an activity, serving from cache when possible
func (s *ActivityService) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	if s.redis != nil {
		key := s.redis.KeyBuilder.KeyActivityByID(id)
		if cached, err := s.redis.Get(ctx, key); err == nil && cached != "" {
			var a domain.Activity
			if err := json.Unmarshal([]byte(cached), &a); err == nil {
				return &a, nil
			}
		}
	}

	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get activity", err)
	}
	if activity == nil {
		return nil, errors.NewNotFoundError("activity not found")
	}

	if s.redis != nil {
		if data, err := json.Marshal(activity); err == nil {
			key := s.redis.KeyBuilder.KeyActivityByID(id)
			if err := s.redis.Set(ctx, key, string(data), redis.TTLActivity); err != nil {
				s.logger.Warn("failed to cache activity",
					zap.Int64("activity_id", id), zap.Error(err))
			}
		}
	}

	return activity, nil
}

// List returns all activities, newest first
func (s *ActivityService) List(ctx context.Context) ([]domain.Activity, error) {
	activities, err := s.activityRepo.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list activities", err)
	}
	return activities, nil
}
