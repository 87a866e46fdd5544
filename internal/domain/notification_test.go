package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRoom(t *testing.T) {
	assert.Equal(t, "user:42", UserRoom(42))
	assert.Equal(t, "user:1", UserRoom(1))
}

func TestNotificationEventRooms(t *testing.T) {
	userID := int64(7)

	tests := []struct {
		name     string
		event    NotificationEvent
		expected []string
	}{
		{
			name: "new registration goes to staff rooms",
			event: NotificationEvent{
				Kind: KindNewRegistration,
			},
			expected: []string{RoomAdmins, RoomLeaders},
		},
		{
			name: "new registration with explicit targets",
			event: NotificationEvent{
				Kind:          KindNewRegistration,
				TargetUserIDs: []int64{3, 9},
			},
			expected: []string{"user:3", "user:9"},
		},
		{
			name: "status update goes to the owning user",
			event: NotificationEvent{
				Kind:   KindRegistrationStatusUpdate,
				UserID: &userID,
				Status: StatusApproved,
			},
			expected: []string{"user:7"},
		},
		{
			name: "status update without a linked user has no rooms",
			event: NotificationEvent{
				Kind:   KindRegistrationStatusUpdate,
				Status: StatusApproved,
			},
			expected: nil,
		},
		{
			name: "unknown kind has no rooms",
			event: NotificationEvent{
				Kind: NotificationKind("somethingElse"),
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Rooms())
		})
	}
}
