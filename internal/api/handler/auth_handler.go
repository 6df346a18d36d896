package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tripdesk/travio-gateway/internal/core/ports"
)

// AuthHandler handles token, profile and login requests.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Token handles POST /auth/token: fetch (or reuse) a bearer token using the
// configured credentials.
func (h *AuthHandler) Token(c echo.Context) error {
	token, err := h.service.IssueToken(c.Request().Context())
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadGateway, "Travio authentication failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected authentication error")
	}

	return c.JSON(http.StatusOK, map[string]any{"token": token})
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c echo.Context) error {
	profile, err := h.service.Profile(c.Request().Context())
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusBadGateway, "Could not fetch profile information")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected profile retrieval error")
	}

	return c.JSON(http.StatusOK, profile)
}

// Login handles POST /auth/login: authenticate end-user credentials against
// the upstream and return the enriched token response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), map[string]any{
		"username": req.Username,
		"password": req.Password,
	})
	if err != nil {
		if isUpstreamError(err) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Travio login failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unexpected Travio login error")
	}

	return c.JSON(http.StatusOK, result)
}
