package handlers

import (
	"errors"
	"net/http"

	"fitnesshub_backend/internal/services"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Register handles member registration, including re-application over a
// rejected account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrEmailExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"An account with this email already exists.", err.Error()))
		default:
			utils.LogError(err, "Register: registration failed")
			respondInternal(c, "Failed to register.")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration received. A staff member will activate your account after your first payment.",
		"user":    user,
	})
}

// Login authenticates an email, password and role and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"No account found for this email.", err.Error()))
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Incorrect password.", err.Error()))
		case errors.Is(err, services.ErrRoleMismatch):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"This account does not match the selected role.", err.Error()))
		case errors.Is(err, services.ErrAccountInactive):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"Your account is awaiting activation by staff.", err.Error()))
		default:
			utils.LogError(err, "Login: login failed")
			respondInternal(c, "Failed to log in.")
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangePassword updates the caller's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.authService.ChangePassword(userID, req); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
				"Current password is incorrect.", err.Error()))
		default:
			utils.LogError(err, "ChangePassword: update failed")
			respondInternal(c, "Failed to change password.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}

// Me returns the caller's identity and role profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.authService.GetProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Account not found.", err.Error()))
			return
		}
		utils.LogError(err, "Me: failed to load profile")
		respondInternal(c, "Failed to load profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}
