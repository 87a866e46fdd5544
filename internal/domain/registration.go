package domain

import (
	"time"
)

// RegistrationStatus is the lifecycle state of a registration
type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
)

// ValidStatus reports whether s is a known registration status
func ValidStatus(s RegistrationStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Gender values accepted on the registration form
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// ValidGender reports whether g is a known gender value. Empty is allowed.
func ValidGender(g string) bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Registration is a volunteer's application to participate in an activity.
// Profile fields are a snapshot taken at submission time; only the status
// and updated_at mutate afterwards.
type Registration struct {
	ID         int64              `json:"id"`
	ActivityID int64              `json:"activity_id"`
	UserID     *int64             `json:"user_id,omitempty"`
	FullName   string             `json:"full_name"`
	Phone      string             `json:"phone"`
	Email      string             `json:"email"`
	BirthDate  *time.Time         `json:"birth_date,omitempty"`
	Gender     string             `json:"gender,omitempty"`
	Address    string             `json:"address,omitempty"`
	Education  string             `json:"education,omitempty"`
	School     string             `json:"school,omitempty"`
	Major      string             `json:"major,omitempty"`
	Occupation string             `json:"occupation,omitempty"`
	Company    string             `json:"company,omitempty"`
	Experience string             `json:"experience,omitempty"`
	Skills     string             `json:"skills,omitempty"`
	Ability    string             `json:"participation_ability,omitempty"`
	Status     RegistrationStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`

	// Denormalized activity display fields, populated by list/get queries
	ActivityTitle    string     `json:"activity_title,omitempty"`
	ActivityDate     *time.Time `json:"activity_date,omitempty"`
	ActivityLocation string     `json:"activity_location,omitempty"`
	ActivityImage    string     `json:"activity_image,omitempty"`
}

// SubmitRegistrationRequest is the registration form payload
type SubmitRegistrationRequest struct {
	ActivityID int64      `json:"activity_id"`
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Gender     string     `json:"gender,omitempty"`
	Address    string     `json:"address,omitempty"`
	Education  string     `json:"education,omitempty"`
	School     string     `json:"school,omitempty"`
	Major      string     `json:"major,omitempty"`
	Occupation string     `json:"occupation,omitempty"`
	Company    string     `json:"company,omitempty"`
	Experience string     `json:"experience,omitempty"`
	Skills     string     `json:"skills,omitempty"`
	Ability    string     `json:"participation_ability,omitempty"`
}

// UpdateStatusRequest is the admin status-change payload
type UpdateStatusRequest struct {
	Status RegistrationStatus `json:"status"`
}

// RegistrationNotificationView is an admin feed entry derived from a pending registration
type RegistrationNotificationView struct {
	RegistrationID int64     `json:"registration_id"`
	ActivityID     int64     `json:"activity_id"`
	Title          string    `json:"title"`
	FullName       string    `json:"full_name"`
	CreatedAt      time.Time `json:"created_at"`
}
