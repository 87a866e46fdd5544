package ws

import (
	"sync"

	"va-backend/internal/domain"

	"go.uber.org/zap"
)

// Session is one connected push-channel client. The websocket client
// implements it; tests use in-memory fakes.
type Session interface {
	ID() string
	Send(evt domain.NotificationEvent) error
}

// Hub maintains room membership for connected sessions. Membership is
// presence-scoped: disconnecting a session drops all of its rooms.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[string]Session // room -> session id -> session
	joined map[string]map[string]bool    // session id -> rooms
	logger *zap.Logger
}

// NewHub creates an empty hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[string]Session),
		joined: make(map[string]map[string]bool),
		logger: logger,
	}
}

// Join adds a session to a room
func (h *Hub) Join(session Session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]Session)
	}
	h.rooms[room][session.ID()] = session

	if h.joined[session.ID()] == nil {
		h.joined[session.ID()] = make(map[string]bool)
	}
	h.joined[session.ID()][room] = true

	h.logger.Debug("session joined room",
		zap.String("session_id", session.ID()),
		zap.String("room", room))
}

// Leave removes a session from a room
func (h *Hub) Leave(sessionID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(sessionID, room)
}

// Disconnect removes a session from every room it joined
func (h *Hub) Disconnect(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room := range h.joined[sessionID] {
		h.removeLocked(sessionID, room)
	}

	h.logger.Debug("session disconnected", zap.String("session_id", sessionID))
}

// Broadcast delivers an event to every session in a room and returns the
// number of sessions it reached. A failed send drops only that recipient's
// copy.
func (h *Hub) Broadcast(room string, evt domain.NotificationEvent) int {
	h.mu.RLock()
	sessions := make([]Session, 0, len(h.rooms[room]))
	for _, s := range h.rooms[room] {
		sessions = append(sessions, s)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, s := range sessions {
		if err := s.Send(evt); err != nil {
			h.logger.Warn("failed to deliver notification",
				zap.String("session_id", s.ID()),
				zap.String("room", room),
				zap.Error(err))
			continue
		}
		delivered++
	}

	return delivered
}

// RoomSize returns the number of sessions in a room
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) removeLocked(sessionID, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	if rooms, ok := h.joined[sessionID]; ok {
		delete(rooms, room)
		if len(rooms) == 0 {
			delete(h.joined, sessionID)
		}
	}
}
