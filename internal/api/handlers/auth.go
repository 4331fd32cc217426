package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/travelops/console-service/internal/api/dto"
	"github.com/travelops/console-service/internal/api/middleware"
	"github.com/travelops/console-service/internal/core/gateway"
	"github.com/travelops/console-service/internal/domain/errors"
	"github.com/travelops/console-service/internal/domain/models"
	"github.com/travelops/console-service/internal/services/authbridge"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	bridge *authbridge.Bridge
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(bridge *authbridge.Bridge) *AuthHandler {
	return &AuthHandler{
		bridge: bridge,
	}
}

// SignIn handles POST /auth/sign-in
// @Summary Sign in
// @Description Verifies staff credentials, loads the dashboard and subscribes to changes
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.bridge.SignIn(c.Request.Context(), req.Email, req.Password); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "signed in",
	})
}

// SignUp handles POST /auth/sign-up
// @Summary Create account
// @Description Creates a new staff account; the account is not signed in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "New account"
// @Success 201 {object} models.Identity
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/sign-up [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.RoleAgent
	}

	identity, err := h.bridge.SignUp(c.Request.Context(), gateway.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     role,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, identity)
}

// SignOut handles POST /auth/sign-out
// @Summary Sign out
// @Description Revokes the session and resets the dashboard state
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/sign-out [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.bridge.SignOut(c.Request.Context()); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "signed out",
	})
}

// ResetPassword handles POST /auth/reset-password
// @Summary Request password reset
// @Description Sends a password reset email for the account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.bridge.ResetPassword(c.Request.Context(), req.Email); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "reset email sent",
	})
}

// UpdatePassword handles PUT /auth/password
// @Summary Update password
// @Description Sets a new password for the signed-in account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.UpdatePasswordRequest true "New password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/password [put]
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.bridge.UpdatePassword(c.Request.Context(), req.Password); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "password updated",
	})
}
