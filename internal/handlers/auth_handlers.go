package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"splitledger_app_echo/internal/auth"
	"splitledger_app_echo/internal/services"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	users *services.UserService
	jwt   *auth.JWTManager
}

func NewAuthHandler(users *services.UserService, jwt *auth.JWTManager) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

// Register creates an account and returns a token for it
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.Request().Context(), req.Name, req.Email, hash)
	if err != nil {
		return err
	}

	token, err := h.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue token")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// Login verifies credentials and returns a token
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.GetUserByEmail(c.Request().Context(), req.Email)
	if err != nil {
		// Same response for unknown email and bad password.
		return auth.ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return auth.ErrInvalidCredentials
	}

	token, err := h.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue token")
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
