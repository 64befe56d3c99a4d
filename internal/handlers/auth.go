// Package handlers provides the HTTP API handlers for the Linkly server.
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linklyhq/linkly/internal/auth"
	"github.com/linklyhq/linkly/internal/boot"
	"github.com/linklyhq/linkly/internal/identity"
)

// AuthHandler serves /auth/signup and /auth/login and issues JWTs.
type AuthHandler struct {
	identityService *identity.Service
	jwtSecret       string
	expiresIn       time.Duration
	logger          *slog.Logger
}

// SignupRequest is the body for POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Headline string `json:"headline"`
	PhotoURL string `json:"photoUrl"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is the success body for signup and login.
type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresAt   string        `json:"expires_at"`
	User        identity.User `json:"user"`
}

// NewAuthHandler creates an auth handler with identity service and JWT config.
func NewAuthHandler(log *slog.Logger, identityService *identity.Service, runtime *boot.RuntimeConfig) *AuthHandler {
	return &AuthHandler{
		identityService: identityService,
		jwtSecret:       runtime.JwtSecret,
		expiresIn:       runtime.JwtExpiresIn,
		logger:          log.With(slog.String("handler", "auth")),
	}
}

// Register mounts the auth routes on the Echo instance.
func (h *AuthHandler) Register(e *echo.Echo) {
	e.POST("/auth/signup", h.Signup)
	e.POST("/auth/login", h.Login)
}

// Signup creates a user and responds 201 with a token for it. A taken email
// maps to 409.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, err := h.identityService.Register(c.Request().Context(), identity.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Headline: req.Headline,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		return httpError(err)
	}
	return h.issueToken(c, http.StatusCreated, user)
}

// Login validates credentials and responds with a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, err := h.identityService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return h.issueToken(c, http.StatusOK, user)
}

func (h *AuthHandler) issueToken(c echo.Context, status int, user identity.User) error {
	token, expiresAt, err := auth.GenerateToken(user.ID, h.jwtSecret, h.expiresIn)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(status, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Format(time.RFC3339),
		User:        user,
	})
}
