package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/linklyhq/linkly/internal/auth"
	"github.com/linklyhq/linkly/internal/identity"
)

// UsersHandler serves the identity read surface.
type UsersHandler struct {
	identityService *identity.Service
	logger          *slog.Logger
}

// NewUsersHandler creates a users handler.
func NewUsersHandler(log *slog.Logger, identityService *identity.Service) *UsersHandler {
	return &UsersHandler{
		identityService: identityService,
		logger:          log.With(slog.String("handler", "users")),
	}
}

// Register mounts the user routes on the Echo instance.
func (h *UsersHandler) Register(e *echo.Echo) {
	e.GET("/users/me", h.Me)
	e.GET("/users/search", h.Search)
}

// Me returns the authenticated user's own record.
func (h *UsersHandler) Me(c echo.Context) error {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return err
	}
	user, err := h.identityService.Get(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Search returns identity summaries matching the q parameter.
func (h *UsersHandler) Search(c echo.Context) error {
	if _, err := auth.UserIDFromContext(c); err != nil {
		return err
	}
	query := strings.TrimSpace(c.QueryParam("q"))
	items, err := h.identityService.Search(c.Request().Context(), query)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}
