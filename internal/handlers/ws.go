package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/linklyhq/linkly/internal/auth"
	"github.com/linklyhq/linkly/internal/boot"
	"github.com/linklyhq/linkly/internal/presence"
)

const (
	wsWriteWait    = 10 * time.Second
	wsPongWait     = 60 * time.Second
	wsPingInterval = 30 * time.Second
)

// WSHandler upgrades GET /ws to a websocket session and streams presence
// events to the connected user.
type WSHandler struct {
	hub       *presence.Hub
	jwtSecret string
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

// NewWSHandler creates a websocket handler.
func NewWSHandler(log *slog.Logger, hub *presence.Hub, runtime *boot.RuntimeConfig) *WSHandler {
	return &WSHandler{
		hub:       hub,
		jwtSecret: runtime.JwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: log.With(slog.String("handler", "ws")),
	}
}

// Register mounts GET /ws on the Echo instance.
func (h *WSHandler) Register(e *echo.Echo) {
	e.GET("/ws", h.Connect)
}

// Connect authenticates the token query parameter, upgrades the connection,
// and pumps presence events until the client goes away or a newer connection
// for the same user replaces this one.
func (h *WSHandler) Connect(c echo.Context) error {
	token := strings.TrimSpace(c.QueryParam("token"))
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "token query parameter is required")
	}
	userID, err := auth.ParseToken(token, h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return nil
	}

	events, cancel := h.hub.Register(userID, presence.DefaultBufferSize)
	h.logger.Debug("session opened", slog.String("user_id", userID))

	go h.readLoop(conn, cancel)
	h.writeLoop(conn, events)

	cancel()
	conn.Close()
	h.logger.Debug("session closed", slog.String("user_id", userID))
	return nil
}

// readLoop drains inbound frames so close and pong control messages are
// processed; the protocol is push-only, client payloads are discarded.
func (h *WSHandler) readLoop(conn *websocket.Conn, cancel func()) {
	defer cancel()
	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop forwards hub events as JSON frames and keeps the connection alive
// with pings. Returns when the event channel is closed, either by cancel or
// because a newer registration evicted this session.
func (h *WSHandler) writeLoop(conn *websocket.Conn, events <-chan presence.Event) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session replaced"))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
