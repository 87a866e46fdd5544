package domain

import (
	"time"
)

// Activity is a volunteer activity. participants_current and
// participants_percentage are derived from approved registrations and are
// never set by a client.
type Activity struct {
	ID                     int64      `json:"id"`
	Title                  string     `json:"title"`
	Description            string     `json:"description,omitempty"`
	Date                   *time.Time `json:"date,omitempty"`
	Location               string     `json:"location,omitempty"`
	Image                  string     `json:"image,omitempty"`
	ParticipantsCurrent    int        `json:"participants_current"`
	ParticipantsMax        int        `json:"participants_max"`
	ParticipantsPercentage int        `json:"participants_percentage"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// ActivityInfo is the display snapshot attached to notifications
type ActivityInfo struct {
	Title    string     `json:"title"`
	Date     *time.Time `json:"date,omitempty"`
	Location string     `json:"location,omitempty"`
}

// ParticipantPercentage computes the fill percentage for an activity,
// rounded half up. Zero capacity yields zero.
func ParticipantPercentage(current, max int) int {
	if max <= 0 {
		return 0
	}
	return (current*100*2 + max) / (max * 2)
}
