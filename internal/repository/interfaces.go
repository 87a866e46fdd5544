package repository

import (
	"context"

	"va-backend/internal/domain"
)

// RegistrationRepository defines the interface for registration data operations
type RegistrationRepository interface {
	// Create persists a new registration and fills generated fields
	Create(ctx context.Context, reg *domain.Registration) error

	// GetByID retrieves a registration with its activity title, nil if unknown
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)

	// GetByActivityAndUser retrieves the registration for an (activity, user)
	// pair, nil if none exists
	GetByActivityAndUser(ctx context.Context, activityID, userID int64) (*domain.Registration, error)

	// ListByActivity retrieves registrations for an activity, newest first,
	// optionally filtered by status
	ListByActivity(ctx context.Context, activityID int64, status *domain.RegistrationStatus) ([]domain.Registration, error)

	// ListByUser retrieves a user's registrations with activity display fields
	ListByUser(ctx context.Context, userID int64) ([]domain.Registration, error)

	// ListAll retrieves all registrations joined with activity display fields,
	// newest first
	ListAll(ctx context.Context) ([]domain.Registration, error)

	// UpdateStatus persists a status change and returns the full updated row,
	// nil if the id is unknown
	UpdateStatus(ctx context.Context, id int64, status domain.RegistrationStatus) (*domain.Registration, error)

	// Delete removes a registration, reporting whether a row existed
	Delete(ctx context.Context, id int64) (bool, error)
}

// ActivityRepository defines the interface for activity data operations
type ActivityRepository interface {
	// GetByID retrieves an activity, nil if unknown
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)

	// List retrieves all activities, newest first
	List(ctx context.Context) ([]domain.Activity, error)

	// RecomputeParticipants rederives participants_current and
	// participants_percentage from approved registrations in a single
	// statement. Idempotent.
	RecomputeParticipants(ctx context.Context, activityID int64) error
}
