package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linklyhq/linkly/internal/identity"
	"github.com/linklyhq/linkly/internal/relationship"
	"github.com/linklyhq/linkly/internal/thread"
)

func TestHTTPErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"self invite", relationship.ErrSelfInvite, http.StatusBadRequest},
		{"already connected", relationship.ErrAlreadyConnected, http.StatusBadRequest},
		{"duplicate request", relationship.ErrDuplicateRequest, http.StatusBadRequest},
		{"empty message", thread.ErrEmptyMessage, http.StatusBadRequest},
		{"relationship user missing", relationship.ErrUserNotFound, http.StatusNotFound},
		{"identity user missing", identity.ErrUserNotFound, http.StatusNotFound},
		{"invalid recipient", thread.ErrInvalidRecipient, http.StatusNotFound},
		{"not participant", thread.ErrNotParticipant, http.StatusForbidden},
		{"bad credentials", identity.ErrInvalidCredentials, http.StatusUnauthorized},
		{"email taken", identity.ErrEmailTaken, http.StatusConflict},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var httpErr *echo.HTTPError
			require.ErrorAs(t, httpError(tc.err), &httpErr)
			assert.Equal(t, tc.want, httpErr.Code)
		})
	}
}

func TestHTTPErrorWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("send invite: %w", relationship.ErrSelfInvite)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, httpError(wrapped), &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestHTTPErrorPassesThroughEchoErrors(t *testing.T) {
	original := echo.NewHTTPError(http.StatusTeapot, "short and stout")
	result := httpError(original)
	assert.Same(t, original, result)
}
