package ws

import (
	"net/http"
	"strings"

	"pitchmatch/internal/pkg/jwt"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler upgrades authenticated requests. The access token travels in the
// token query parameter because browsers cannot set headers on websocket
// handshakes.
type Handler struct {
	hub    *Hub
	jwt    jwt.Service
	logger *zap.Logger
}

func NewHandler(hub *Hub, jwtSvc jwt.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, jwt: jwtSvc, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.hub == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" || h.jwt == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade error", zap.Error(err))
		return
	}

	h.logger.Debug("ws client authenticated",
		zap.String("user_id", claims.UserID.String()),
		zap.String("role", string(claims.Role)),
	)

	client := NewClient(h.hub, conn, claims.UserID)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}

// Mux serves the handler on /ws.
func (h *Handler) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	return mux
}
