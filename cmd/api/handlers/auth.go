package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/touchly/directory/cmd/api/middleware"
	"github.com/touchly/directory/cmd/api/service"
	"github.com/touchly/directory/common/apperr"
)

// AuthHandler handles account provisioning and login requests
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// CreateUser provisions an account
// POST /admin/users
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(err, "invalid request body")
	}

	user, err := h.auth.CreateUser(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for a bearer token
// POST /api/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(err, "invalid request body")
	}

	token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Me returns the authenticated user's account
// GET /api/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	user, err := h.auth.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}
