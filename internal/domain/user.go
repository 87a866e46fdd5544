package domain

// Role values carried in auth claims and used for room membership
const (
	RoleVolunteer = "volunteer"
	RoleLeader    = "leader"
	RoleAdmin     = "admin"
)

// AuthUser is the authenticated principal extracted from a verified token
type AuthUser struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
}

// IsStaff reports whether the user may manage registrations
func (u *AuthUser) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleLeader
}
