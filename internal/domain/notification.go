package domain

import (
	"strconv"
	"time"
)

// NotificationKind identifies the push-channel event type
type NotificationKind string

const (
	KindNewRegistration          NotificationKind = "newRegistration"
	KindRegistrationStatusUpdate NotificationKind = "registrationStatusUpdate"
)

// Push-channel room names. Each connection joins its own user room plus at
// most one role room.
const (
	RoomAdmins  = "admins"
	RoomLeaders = "leaders"
)

// UserRoom returns the per-user room name for a user id
func UserRoom(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

// UserInfo is the submitter snapshot attached to newRegistration events
type UserInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// NotificationEvent is an ephemeral push-channel event. It is constructed at
// the moment of the triggering mutation and delivered at most once per
// connected recipient; it is never persisted or retried.
type NotificationEvent struct {
	Kind           NotificationKind   `json:"kind"`
	RegistrationID int64              `json:"registrationId"`
	ActivityID     int64              `json:"activityId"`
	UserID         *int64             `json:"userId,omitempty"`
	Status         RegistrationStatus `json:"status"`
	Message        string             `json:"message"`
	Timestamp      time.Time          `json:"timestamp"`
	UserInfo       *UserInfo          `json:"userInfo,omitempty"`
	ActivityInfo   *ActivityInfo      `json:"activityInfo,omitempty"`

	// TargetUserIDs overrides role-room addressing for newRegistration
	// events. Nil means deliver to the admins and leaders rooms.
	TargetUserIDs []int64 `json:"-"`
}

// Rooms resolves the rooms this event is addressed to. An empty result means
// the event has no addressable recipient and is dropped.
func (e *NotificationEvent) Rooms() []string {
	switch e.Kind {
	case KindNewRegistration:
		if len(e.TargetUserIDs) > 0 {
			rooms := make([]string, 0, len(e.TargetUserIDs))
			for _, id := range e.TargetUserIDs {
				rooms = append(rooms, UserRoom(id))
			}
			return rooms
		}
		return []string{RoomAdmins, RoomLeaders}
	case KindRegistrationStatusUpdate:
		if e.UserID == nil {
			return nil
		}
		return []string{UserRoom(*e.UserID)}
	}
	return nil
}
