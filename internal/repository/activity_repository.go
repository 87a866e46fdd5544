package repository

import (
	"context"
	"fmt"

	"va-backend/internal/domain"
	"va-backend/pkg/database"

	"github.com/jackc/pgx/v5"
)

type activityRepository struct {
	db *database.PostgresDB
}

// NewActivityRepository creates an activity repository backed by Postgres
func NewActivityRepository(db *database.PostgresDB) ActivityRepository {
	return &activityRepository{db: db}
}

const activityColumns = `
	id, title, COALESCE(description, ''), date, COALESCE(location, ''),
	COALESCE(image, ''), participants_current, participants_max,
	participants_percentage, created_at, updated_at`

// GetByID gets an activity by id
func (r *activityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`

	var a domain.Activity
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Date,
		&a.Location,
		&a.Image,
		&a.ParticipantsCurrent,
		&a.ParticipantsMax,
		&a.ParticipantsPercentage,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return &a, nil
}

// List lists all activities, newest first
func (r *activityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var a domain.Activity
		err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Description,
			&a.Date,
			&a.Location,
			&a.Image,
			&a.ParticipantsCurrent,
			&a.ParticipantsMax,
			&a.ParticipantsPercentage,
			&a.CreatedAt,
			&a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}

// RecomputeParticipants rederives the participant aggregate from approved
// registrations. A single statement, so two concurrent status changes cannot
// write a stale count.
func (r *activityRepository) RecomputeParticipants(ctx context.Context, activityID int64) error {
	query := `
		UPDATE activities a
		SET participants_current = sub.approved,
		    participants_percentage = CASE
		        WHEN a.participants_max > 0
		        THEN round(sub.approved * 100.0 / a.participants_max)::int
		        ELSE 0
		    END,
		    updated_at = NOW()
		FROM (
			SELECT COUNT(*) AS approved
			FROM activity_registrations
			WHERE activity_id = $1 AND status = 'approved'
		) sub
		WHERE a.id = $1
	`

	if _, err := r.db.Pool.Exec(ctx, query, activityID); err != nil {
		return fmt.Errorf("failed to recompute participants for activity %d: %w", activityID, err)
	}

	return nil
}
