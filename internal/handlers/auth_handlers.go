package handlers

import (
	"net/http"

	"boardsuite/internal/common"
	"boardsuite/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, login, and token refresh.
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Register handles POST /auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.FullName)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return common.SendValidationError(c, "Refresh token is required")
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}
