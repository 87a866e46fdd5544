package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"va-backend/internal/domain"
	"va-backend/internal/event"
	"va-backend/internal/repository"
	"va-backend/pkg/errors"
	"va-backend/pkg/redis"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// RegistrationService orchestrates the registration lifecycle: uniqueness,
// status transitions, participant aggregate recomputation, and notification
// event publication.
type RegistrationService struct {
	regRepo      repository.RegistrationRepository
	activityRepo repository.ActivityRepository
	redis        *redis.Client
	publisher    event.Publisher
	logger       *zap.Logger
}

// NewRegistrationService creates a new registration service. redisClient may
// be nil; caching is then skipped.
func NewRegistrationService(
	regRepo repository.RegistrationRepository,
	activityRepo repository.ActivityRepository,
	redisClient *redis.Client,
	publisher event.Publisher,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		regRepo:      regRepo,
		activityRepo: activityRepo,
		redis:        redisClient,
		publisher:    publisher,
		logger:       logger,
	}
}

// Submit creates a pending registration for an activity. userID may be nil
// for the guest flow; a known user may hold at most one registration per
// activity.
func (s *RegistrationService) Submit(ctx context.Context, userID *int64, req *domain.SubmitRegistrationRequest) (*domain.Registration, error) {
	activity, err := s.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		return nil, errors.NewInternalError("failed to look up activity", err)
	}
	if activity == nil {
		return nil, errors.NewNotFoundError("activity not found")
	}

	if userID != nil {
		// Cheap cache probe first, database as the source of truth
		if s.redis != nil {
			key := s.redis.KeyBuilder.KeyRegistrationCheck(req.ActivityID, *userID)
			if n, err := s.redis.Exists(ctx, key); err == nil && n > 0 {
				return nil, errors.NewConflictError("already registered for this activity")
			}
		}

		existing, err := s.regRepo.GetByActivityAndUser(ctx, req.ActivityID, *userID)
		if err != nil {
			return nil, errors.NewInternalError("failed to check existing registration", err)
		}
		if existing != nil {
			s.cacheRegistrationCheck(ctx, req.ActivityID, *userID)
			return nil, errors.NewConflictError("already registered for this activity")
		}
	}

	reg := &domain.Registration{
		ActivityID: req.ActivityID,
		UserID:     userID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Email:      req.Email,
		BirthDate:  req.BirthDate,
		Gender:     req.Gender,
		Address:    req.Address,
		Education:  req.Education,
		School:     req.School,
		Major:      req.Major,
		Occupation: req.Occupation,
		Company:    req.Company,
		Experience: req.Experience,
		Skills:     req.Skills,
		Ability:    req.Ability,
	}

	if err := s.regRepo.Create(ctx, reg); err != nil {
		// The partial unique index on (activity_id, user_id) is the last line
		// of defense against a concurrent duplicate submit
		var pgErr *pgconn.PgError
		if stderrors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, errors.NewConflictError("already registered for this activity")
		}
		return nil, errors.NewInternalError("failed to save registration", err)
	}

	// A pending registration does not change the approved count; the recompute
	// still runs so the stored aggregate is always derived the same way
	s.recomputeAggregate(ctx, reg.ActivityID)

	if userID != nil {
		s.cacheRegistrationCheck(ctx, reg.ActivityID, *userID)
	}
	s.invalidatePendingFeed(ctx)

	s.publishNewRegistration(reg, activity)

	return reg, nil
}

// GetByID returns a registration with its activity title
func (s *RegistrationService) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get registration", err)
	}
	if reg == nil {
		return nil, errors.NewNotFoundError("registration not found")
	}
	return reg, nil
}

// ListByActivity returns an activity's registrations, newest first
func (s *RegistrationService) ListByActivity(ctx context.Context, activityID int64, status *domain.RegistrationStatus) ([]domain.Registration, error) {
	if status != nil && !domain.ValidStatus(*status) {
		return nil, errors.NewValidationError(
			fmt.Sprintf("invalid status filter: %s", *status), nil)
	}

	regs, err := s.regRepo.ListByActivity(ctx, activityID, status)
	if err != nil {
		return nil, errors.NewInternalError("failed to list registrations", err)
	}
	return regs, nil
}

// ListByUser returns a user's registrations with activity display fields
func (s *RegistrationService) ListByUser(ctx context.Context, userID int64) ([]domain.Registration, error) {
	regs, err := s.regRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to list registrations", err)
	}
	return regs, nil
}

// ListAll returns every registration with activity display fields
func (s *RegistrationService) ListAll(ctx context.Context) ([]domain.Registration, error) {
	regs, err := s.regRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to list registrations", err)
	}
	return regs, nil
}

// PendingNotifications maps pending registrations into the admin feed view,
// newest first
func (s *RegistrationService) PendingNotifications(ctx context.Context) ([]domain.RegistrationNotificationView, error) {
	regs, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]domain.RegistrationNotificationView, 0)
	for _, reg := range regs {
		if reg.Status != domain.StatusPending {
			continue
		}
		title := "New registration"
		if reg.ActivityTitle != "" {
			title = "New registration: " + reg.ActivityTitle
		}
		views = append(views, domain.RegistrationNotificationView{
			RegistrationID: reg.ID,
			ActivityID:     reg.ActivityID,
			Title:          title,
			FullName:       reg.FullName,
			CreatedAt:      reg.CreatedAt,
		})
	}

	return views, nil
}

// UpdateStatus persists a status change, recomputes the activity aggregate and
// notifies the owning user. Returns the full updated record.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id int64, status domain.RegistrationStatus) (*domain.Registration, error) {
	if !domain.ValidStatus(status) {
		return nil, errors.NewValidationError(
			fmt.Sprintf("invalid status: %s (must be pending, approved or rejected)", status), nil)
	}

	reg, err := s.regRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, errors.NewInternalError("failed to update registration status", err)
	}
	if reg == nil {
		return nil, errors.NewNotFoundError("registration not found")
	}

	s.recomputeAggregate(ctx, reg.ActivityID)
	s.invalidateActivityCache(ctx, reg.ActivityID)
	s.invalidatePendingFeed(ctx)

	// A registration with no linked account has no addressable room
	if reg.UserID != nil {
		s.publisher.Publish(domain.NotificationEvent{
			Kind:           domain.KindRegistrationStatusUpdate,
			RegistrationID: reg.ID,
			ActivityID:     reg.ActivityID,
			UserID:         reg.UserID,
			Status:         reg.Status,
			Message:        statusMessage(reg.Status),
			Timestamp:      time.Now().UTC(),
		})
	}

	return reg, nil
}

// Delete removes a registration and rederives the activity aggregate. No
// notification is emitted on delete.
func (s *RegistrationService) Delete(ctx context.Context, id int64) error {
	reg, err := s.regRepo.GetByID(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to get registration", err)
	}
	if reg == nil {
		return errors.NewNotFoundError("registration not found")
	}

	deleted, err := s.regRepo.Delete(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to delete registration", err)
	}
	if !deleted {
		return errors.NewNotFoundError("registration not found")
	}

	s.recomputeAggregate(ctx, reg.ActivityID)
	s.invalidateActivityCache(ctx, reg.ActivityID)
	s.invalidatePendingFeed(ctx)

	if reg.UserID != nil && s.redis != nil {
		key := s.redis.KeyBuilder.KeyRegistrationCheck(reg.ActivityID, *reg.UserID)
		if err := s.redis.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to invalidate registration check cache",
				zap.Int64("registration_id", id), zap.Error(err))
		}
	}

	return nil
}

// CheckRegistration reports whether a user already holds a registration for
// an activity. Returns nil when no registration exists.
func (s *RegistrationService) CheckRegistration(ctx context.Context, activityID, userID int64) (*domain.Registration, error) {
	reg, err := s.regRepo.GetByActivityAndUser(ctx, activityID, userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to check registration", err)
	}
	if reg != nil {
		s.cacheRegistrationCheck(ctx, activityID, userID)
	}
	return reg, nil
}

// publishNewRegistration emits the newRegistration event to the staff rooms.
// Activity info is best effort: the event goes out even when the snapshot is
// incomplete.
func (s *RegistrationService) publishNewRegistration(reg *domain.Registration, activity *domain.Activity) {
	message := "New registration"
	var activityInfo *domain.ActivityInfo
	if activity != nil {
		message = "New registration: " + activity.Title
		activityInfo = &domain.ActivityInfo{
			Title:    activity.Title,
			Date:     activity.Date,
			Location: activity.Location,
		}
	}

	s.publisher.Publish(domain.NotificationEvent{
		Kind:           domain.KindNewRegistration,
		RegistrationID: reg.ID,
		ActivityID:     reg.ActivityID,
		UserID:         reg.UserID,
		Status:         reg.Status,
		Message:        message,
		Timestamp:      time.Now().UTC(),
		UserInfo: &domain.UserInfo{
			FullName: reg.FullName,
			Email:    reg.Email,
			Phone:    reg.Phone,
		},
		ActivityInfo: activityInfo,
	})
}

// recomputeAggregate rederives the participant aggregate. Failure is logged
// and swallowed: the registration mutation already succeeded.
func (s *RegistrationService) recomputeAggregate(ctx context.Context, activityID int64) {
	if err := s.activityRepo.RecomputeParticipants(ctx, activityID); err != nil {
		s.logger.Error("failed to recompute participant aggregate",
			zap.Int64("activity_id", activityID),
			zap.Error(err))
	}
}

func (s *RegistrationService) cacheRegistrationCheck(ctx context.Context, activityID, userID int64) {
	if s.redis == nil {
		return
	}
	key := s.redis.KeyBuilder.KeyRegistrationCheck(activityID, userID)
	if err := s.redis.Set(ctx, key, "1", redis.TTLRegistrationCheck); err != nil {
		s.logger.Warn("failed to cache registration check",
			zap.Int64("activity_id", activityID),
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}

func (s *RegistrationService) invalidateActivityCache(ctx context.Context, activityID int64) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, s.redis.KeyBuilder.KeyActivityByID(activityID)); err != nil {
		s.logger.Warn("failed to invalidate activity cache",
			zap.Int64("activity_id", activityID),
			zap.Error(err))
	}
}

func (s *RegistrationService) invalidatePendingFeed(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, s.redis.KeyBuilder.KeyPendingFeed()); err != nil {
		s.logger.Warn("failed to invalidate pending feed cache", zap.Error(err))
	}
}

func statusMessage(status domain.RegistrationStatus) string {
	switch status {
	case domain.StatusApproved:
		return "Your registration has been approved"
	case domain.StatusRejected:
		return "Your registration has been rejected"
	default:
		return "Your registration is pending review"
	}
}
