package ws

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"va-backend/internal/domain"
)

// fakeSession records events delivered to it
type fakeSession struct {
	id      string
	mu      sync.Mutex
	events  []domain.NotificationEvent
	sendErr error
}

func (s *fakeSession) ID() string { return s.id }

func (s *fakeSession) Send(evt domain.NotificationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.events = append(s.events, evt)
	return nil
}

func (s *fakeSession) received() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(zap.NewNop())

	admin := &fakeSession{id: "admin-1"}
	leader := &fakeSession{id: "leader-1"}
	volunteer := &fakeSession{id: "volunteer-1"}

	hub.Join(admin, domain.RoomAdmins)
	hub.Join(leader, domain.RoomLeaders)
	hub.Join(volunteer, domain.UserRoom(7))

	evt := domain.NotificationEvent{Kind: domain.KindNewRegistration, RegistrationID: 1}

	delivered := hub.Broadcast(domain.RoomAdmins, evt)
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, admin.received())
	assert.Equal(t, 0, leader.received())
	assert.Equal(t, 0, volunteer.received())
}

func TestHubBroadcastEmptyRoom(t *testing.T) {
	hub := NewHub(zap.NewNop())

	delivered := hub.Broadcast("user:999", domain.NotificationEvent{})
	assert.Equal(t, 0, delivered)
}

func TestHubBroadcastSkipsFailedSends(t *testing.T) {
	hub := NewHub(zap.NewNop())

	healthy := &fakeSession{id: "s1"}
	broken := &fakeSession{id: "s2", sendErr: errors.New("connection gone")}

	hub.Join(healthy, domain.RoomAdmins)
	hub.Join(broken, domain.RoomAdmins)

	delivered := hub.Broadcast(domain.RoomAdmins, domain.NotificationEvent{})
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, healthy.received())
}

func TestHubLeave(t *testing.T) {
	hub := NewHub(zap.NewNop())

	s := &fakeSession{id: "s1"}
	hub.Join(s, domain.RoomAdmins)
	assert.Equal(t, 1, hub.RoomSize(domain.RoomAdmins))

	hub.Leave(s.ID(), domain.RoomAdmins)
	assert.Equal(t, 0, hub.RoomSize(domain.RoomAdmins))

	delivered := hub.Broadcast(domain.RoomAdmins, domain.NotificationEvent{})
	assert.Equal(t, 0, delivered)
}

func TestHubDisconnectLeavesAllRooms(t *testing.T) {
	hub := NewHub(zap.NewNop())

	s := &fakeSession{id: "s1"}
	hub.Join(s, domain.UserRoom(7))
	hub.Join(s, domain.RoomLeaders)

	other := &fakeSession{id: "s2"}
	hub.Join(other, domain.RoomLeaders)

	hub.Disconnect(s.ID())

	assert.Equal(t, 0, hub.RoomSize(domain.UserRoom(7)))
	assert.Equal(t, 1, hub.RoomSize(domain.RoomLeaders))
	assert.Equal(t, 0, s.received())

	hub.Broadcast(domain.RoomLeaders, domain.NotificationEvent{})
	assert.Equal(t, 0, s.received())
	assert.Equal(t, 1, other.received())
}

func TestHubRejoinIsIdempotent(t *testing.T) {
	hub := NewHub(zap.NewNop())

	s := &fakeSession{id: "s1"}
	hub.Join(s, domain.RoomAdmins)
	hub.Join(s, domain.RoomAdmins)

	assert.Equal(t, 1, hub.RoomSize(domain.RoomAdmins))

	delivered := hub.Broadcast(domain.RoomAdmins, domain.NotificationEvent{})
	assert.Equal(t, 1, delivered)
}
