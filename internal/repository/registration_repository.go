package repository

import (
	"context"
	"fmt"

	"va-backend/internal/domain"
	"va-backend/pkg/database"

	"github.com/jackc/pgx/v5"
)

type registrationRepository struct {
	db *database.PostgresDB
}

// NewRegistrationRepository creates a registration repository backed by Postgres
func NewRegistrationRepository(db *database.PostgresDB) RegistrationRepository {
	return &registrationRepository{db: db}
}

const registrationColumns = `
	r.id, r.activity_id, r.user_id, r.full_name, r.phone, r.email,
	r.birth_date, r.gender, r.address, r.education, r.school, r.major,
	r.occupation, r.company, r.experience, r.skills, r.participation_ability,
	r.status, r.created_at, r.updated_at`

// Create persists a new registration with status pending
func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO activity_registrations (
			activity_id, user_id, full_name, phone, email, birth_date, gender,
			address, education, school, major, occupation, company, experience,
			skills, participation_ability
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, status, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		reg.ActivityID,
		reg.UserID,
		reg.FullName,
		reg.Phone,
		reg.Email,
		reg.BirthDate,
		reg.Gender,
		reg.Address,
		reg.Education,
		reg.School,
		reg.Major,
		reg.Occupation,
		reg.Company,
		reg.Experience,
		reg.Skills,
		reg.Ability,
	).Scan(&reg.ID, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return nil
}

// GetByID gets a registration by id with the parent activity title
func (r *registrationRepository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `, COALESCE(a.title, '')
		FROM activity_registrations r
		LEFT JOIN activities a ON a.id = r.activity_id
		WHERE r.id = $1
	`

	var reg domain.Registration
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		append(registrationFields(&reg), &reg.ActivityTitle)...,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return &reg, nil
}

// GetByActivityAndUser gets the registration for an (activity, user) pair
func (r *registrationRepository) GetByActivityAndUser(ctx context.Context, activityID, userID int64) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM activity_registrations r
		WHERE r.activity_id = $1 AND r.user_id = $2
	`

	var reg domain.Registration
	err := r.db.Pool.QueryRow(ctx, query, activityID, userID).Scan(registrationFields(&reg)...)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration by activity and user: %w", err)
	}

	return &reg, nil
}

// ListByActivity lists registrations for an activity, newest first
func (r *registrationRepository) ListByActivity(ctx context.Context, activityID int64, status *domain.RegistrationStatus) ([]domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM activity_registrations r
		WHERE r.activity_id = $1 AND ($2::text IS NULL OR r.status = $2)
		ORDER BY r.created_at DESC
	`

	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}

	rows, err := r.db.Pool.Query(ctx, query, activityID, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations by activity: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(registrationFields(&reg)...); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

// ListByUser lists a user's registrations with activity display fields
func (r *registrationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `,
			COALESCE(a.title, ''), a.date, COALESCE(a.location, '')
		FROM activity_registrations r
		LEFT JOIN activities a ON a.id = r.activity_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations by user: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		fields := append(registrationFields(&reg), &reg.ActivityTitle, &reg.ActivityDate, &reg.ActivityLocation)
		if err := rows.Scan(fields...); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

// ListAll lists every registration with activity display fields, newest first
func (r *registrationRepository) ListAll(ctx context.Context) ([]domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `,
			COALESCE(a.title, ''), a.date, COALESCE(a.location, ''), COALESCE(a.image, '')
		FROM activity_registrations r
		LEFT JOIN activities a ON a.id = r.activity_id
		ORDER BY r.created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		fields := append(registrationFields(&reg),
			&reg.ActivityTitle, &reg.ActivityDate, &reg.ActivityLocation, &reg.ActivityImage)
		if err := rows.Scan(fields...); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}

	return regs, rows.Err()
}

// UpdateStatus persists a status change and returns the full updated row
func (r *registrationRepository) UpdateStatus(ctx context.Context, id int64, status domain.RegistrationStatus) (*domain.Registration, error) {
	query := `
		UPDATE activity_registrations r
		SET status = $2, updated_at = NOW()
		WHERE r.id = $1
		RETURNING ` + registrationColumns + `
	`

	var reg domain.Registration
	err := r.db.Pool.QueryRow(ctx, query, id, string(status)).Scan(registrationFields(&reg)...)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update registration status: %w", err)
	}

	return &reg, nil
}

// Delete removes a registration row
func (r *registrationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM activity_registrations WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete registration: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// registrationFields returns scan destinations matching registrationColumns
func registrationFields(reg *domain.Registration) []interface{} {
	return []interface{}{
		&reg.ID,
		&reg.ActivityID,
		&reg.UserID,
		&reg.FullName,
		&reg.Phone,
		&reg.Email,
		&reg.BirthDate,
		&reg.Gender,
		&reg.Address,
		&reg.Education,
		&reg.School,
		&reg.Major,
		&reg.Occupation,
		&reg.Company,
		&reg.Experience,
		&reg.Skills,
		&reg.Ability,
		&reg.Status,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	}
}
