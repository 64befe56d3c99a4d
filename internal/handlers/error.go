package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	dbpkg "github.com/linklyhq/linkly/internal/db"
	"github.com/linklyhq/linkly/internal/identity"
	"github.com/linklyhq/linkly/internal/relationship"
	"github.com/linklyhq/linkly/internal/thread"
)

// ErrorResponse is the standard API error body (message only).
type ErrorResponse struct {
	Message string `json:"message"`
}

// httpError maps service sentinel errors onto HTTP status codes. Storage
// connectivity failures surface as 503 so clients can tell them apart from
// their own bad input.
func httpError(err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	switch {
	case errors.Is(err, relationship.ErrSelfInvite),
		errors.Is(err, relationship.ErrAlreadyConnected),
		errors.Is(err, relationship.ErrDuplicateRequest),
		errors.Is(err, thread.ErrEmptyMessage):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, relationship.ErrUserNotFound),
		errors.Is(err, identity.ErrUserNotFound),
		errors.Is(err, thread.ErrInvalidRecipient):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, thread.ErrNotParticipant):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, identity.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, identity.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case dbpkg.IsUnavailable(err):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
