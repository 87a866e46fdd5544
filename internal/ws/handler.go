package ws

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"va-backend/internal/domain"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const handshakeWait = 10 * time.Second

// HandshakePayload is the first client frame on a new connection. A missing
// userId fails the handshake and the connection never joins a room.
type HandshakePayload struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role,omitempty"`
}

// Handler upgrades HTTP requests to websocket sessions and walks them
// through the connecting -> authenticated -> joined lifecycle.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler creates a websocket handler. allowedOrigins restricts upgrade
// requests; an empty list allows any origin.
func NewHandler(hub *Hub, allowedOrigins []string, logger *zap.Logger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 || allowed["*"] {
					return true
				}
				return allowed[r.Header.Get("Origin")]
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles GET /ws
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	// Handshake: the first frame must identify the user
	_ = conn.SetReadDeadline(time.Now().Add(handshakeWait))
	var handshake HandshakePayload
	if err := conn.ReadJSON(&handshake); err != nil || handshake.UserID <= 0 {
		h.logger.Debug("websocket handshake rejected",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err))
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unauthorized")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		conn.Close()
		return
	}

	sessionID := fmt.Sprintf("%d-%d", handshake.UserID, time.Now().UnixNano())
	client := newClient(sessionID, conn, h.hub, h.logger)

	h.hub.Join(client, domain.UserRoom(handshake.UserID))
	switch handshake.Role {
	case domain.RoleLeader:
		h.hub.Join(client, domain.RoomLeaders)
	case domain.RoleAdmin:
		h.hub.Join(client, domain.RoomAdmins)
	}

	h.logger.Info("websocket session joined",
		zap.String("session_id", sessionID),
		zap.String("user_id", strconv.FormatInt(handshake.UserID, 10)),
		zap.String("role", handshake.Role))

	go client.writePump()
	go client.readPump()
}
