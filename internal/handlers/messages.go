package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/linklyhq/linkly/internal/auth"
	"github.com/linklyhq/linkly/internal/thread"
)

// MessagesHandler serves the direct-message endpoints.
type MessagesHandler struct {
	threadService *thread.Service
	logger        *slog.Logger
}

// PostMessageRequest is the body for POST /messages.
type PostMessageRequest struct {
	To   string `json:"to" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// NewMessagesHandler creates a messages handler.
func NewMessagesHandler(log *slog.Logger, threadService *thread.Service) *MessagesHandler {
	return &MessagesHandler{
		threadService: threadService,
		logger:        log.With(slog.String("handler", "messages")),
	}
}

// Register mounts the message routes on the Echo instance.
func (h *MessagesHandler) Register(e *echo.Echo) {
	group := e.Group("/messages")
	group.POST("", h.Post)
	group.GET("/threads", h.ListThreads)
	group.GET("/thread/:threadId", h.ListThread)
	group.POST("/thread/:threadId/seen", h.MarkSeen)
}

// Post appends a direct message and returns the stored record with resolved
// participant summaries.
func (h *MessagesHandler) Post(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	var req PostMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	message, err := h.threadService.PostMessage(c.Request().Context(), viewerID, req.To, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, message)
}

// ListThread returns a thread's messages oldest first.
func (h *MessagesHandler) ListThread(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	threadID := strings.TrimSpace(c.Param("threadId"))
	if threadID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "thread id is required")
	}
	messages, err := h.threadService.ListThread(c.Request().Context(), threadID, viewerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, messages)
}

// MarkSeen marks all messages addressed to the viewer in the thread as seen.
func (h *MessagesHandler) MarkSeen(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	threadID := strings.TrimSpace(c.Param("threadId"))
	if threadID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "thread id is required")
	}
	if err := h.threadService.MarkSeen(c.Request().Context(), threadID, viewerID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// ListThreads returns the viewer's thread summaries, most recent first.
func (h *MessagesHandler) ListThreads(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	items, err := h.threadService.ListThreads(c.Request().Context(), viewerID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}
