package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/linklyhq/linkly/internal/auth"
	"github.com/linklyhq/linkly/internal/identity"
	"github.com/linklyhq/linkly/internal/relationship"
)

// ConnectionsHandler serves the connection-request state machine endpoints.
type ConnectionsHandler struct {
	relationshipService *relationship.Service
	identityService     *identity.Service
	logger              *slog.Logger
}

// ConnectionRequest is the body for POST /connections/request.
type ConnectionRequest struct {
	ToUserID string `json:"toUserId" validate:"required"`
}

// AcceptRequest is the body for POST /connections/accept.
type AcceptRequest struct {
	FromUserID string `json:"fromUserId" validate:"required"`
}

// PairRequest is the body for cancel and decline.
type PairRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// PendingResponse lists unresolved requests in both directions.
type PendingResponse struct {
	Incoming []identity.Summary `json:"incoming"`
	Outgoing []identity.Summary `json:"outgoing"`
}

// NewConnectionsHandler creates a connections handler.
func NewConnectionsHandler(log *slog.Logger, relationshipService *relationship.Service, identityService *identity.Service) *ConnectionsHandler {
	return &ConnectionsHandler{
		relationshipService: relationshipService,
		identityService:     identityService,
		logger:              log.With(slog.String("handler", "connections")),
	}
}

// Register mounts the connection routes on the Echo instance.
func (h *ConnectionsHandler) Register(e *echo.Echo) {
	group := e.Group("/connections")
	group.POST("/request", h.Request)
	group.POST("/accept", h.Accept)
	group.POST("/cancel", h.Cancel)
	group.POST("/decline", h.Decline)
	group.GET("/me", h.Me)
	group.GET("/pending", h.Pending)
	group.GET("/status/:targetId", h.Status)
}

// Request sends a connection request to the target user.
func (h *ConnectionsHandler) Request(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	var req ConnectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.relationshipService.SendInvite(c.Request().Context(), viewerID, req.ToUserID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Request sent"})
}

// Accept resolves a pending inbound request into a connection.
func (h *ConnectionsHandler) Accept(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	var req AcceptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.relationshipService.AcceptInvite(c.Request().Context(), viewerID, req.FromUserID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Accepted"})
}

// Cancel withdraws a request the viewer sent.
func (h *ConnectionsHandler) Cancel(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	var req PairRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.relationshipService.CancelInvite(c.Request().Context(), viewerID, req.UserID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Request cancelled"})
}

// Decline rejects a request the viewer received.
func (h *ConnectionsHandler) Decline(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	var req PairRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.relationshipService.DeclineInvite(c.Request().Context(), viewerID, req.UserID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Request declined"})
}

// Me returns summaries of the viewer's connections.
func (h *ConnectionsHandler) Me(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	sets, err := h.relationshipService.GetSets(c.Request().Context(), viewerID)
	if err != nil {
		return httpError(err)
	}
	items, err := h.resolve(c, sets.Connections)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Pending returns unresolved requests in both directions.
func (h *ConnectionsHandler) Pending(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	sets, err := h.relationshipService.GetSets(c.Request().Context(), viewerID)
	if err != nil {
		return httpError(err)
	}
	incoming, err := h.resolve(c, sets.PendingInbound)
	if err != nil {
		return httpError(err)
	}
	outgoing, err := h.resolve(c, sets.PendingOutbound)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, PendingResponse{Incoming: incoming, Outgoing: outgoing})
}

// Status reports the relationship state toward :targetId.
func (h *ConnectionsHandler) Status(c echo.Context) error {
	viewerID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID := strings.TrimSpace(c.Param("targetId"))
	if targetID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "target id is required")
	}
	status, err := h.relationshipService.Status(c.Request().Context(), viewerID, targetID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(status)})
}

func (h *ConnectionsHandler) resolve(c echo.Context, ids []string) ([]identity.Summary, error) {
	summaries, err := h.identityService.Summaries(c.Request().Context(), ids)
	if err != nil {
		return nil, err
	}
	items := make([]identity.Summary, 0, len(ids))
	for _, id := range ids {
		if summary, ok := summaries[id]; ok {
			items = append(items, summary)
		}
	}
	return items, nil
}
