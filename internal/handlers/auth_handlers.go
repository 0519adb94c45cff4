package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/services"
)

type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	user, err := h.authService.Register(c.Request().Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return common.SendServiceError(c, err, "registration")
	}

	return c.JSON(http.StatusCreated, user.View())
}

// Login handles POST /api/auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return common.SendValidationError(c, err.Error())
	}
	if err := common.ValidateRequiredString(req.Password, "password"); err != nil {
		return common.SendValidationError(c, err.Error())
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return common.SendUnauthorized(c, "Invalid email or password")
		}
		return common.SendServerError(c, "Failed to log in", err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.RefreshToken, "refreshToken"); err != nil {
		return common.SendValidationError(c, err.Error())
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, common.ErrNotFound) {
			return common.SendUnauthorized(c, "Invalid or expired refresh token")
		}
		return common.SendServerError(c, "Failed to refresh token", err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// Me handles GET /api/auth/me and returns the authenticated user together
// with the role and company scope carried by the token.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorized(c, "User not authenticated")
	}

	user, err := h.authService.GetUser(ctx, userID)
	if err != nil {
		return common.SendServiceError(c, err, "user")
	}

	resp := map[string]interface{}{
		"user": user.View(),
		"role": common.GetRoleFromContext(ctx),
	}
	if companyID, ok := common.GetCompanyIDFromContext(ctx); ok {
		resp["companyId"] = companyID
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandlers) Logout(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "Invalid request format")
	}

	if req.RefreshToken != "" {
		if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
			return common.SendServerError(c, "Failed to log out", err)
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}
