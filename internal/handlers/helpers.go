package handlers

import (
	"net/http"

	"fitnesshub_backend/internal/middleware"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user's ID from the context set by
// AuthMiddleware. The second return is false after an error response has
// been written.
func currentUserID(c *gin.Context) (int64, bool) {
	raw, exists := c.Get(middleware.CtxUserID)
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"User not authenticated.", "Missing user ID in context"))
		return 0, false
	}
	userID, ok := raw.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"User ID format incorrect.", "Invalid user ID in context"))
		return 0, false
	}
	return userID, true
}

// currentStaffProfileID pulls the staff profile ID resolved by StaffOnly.
func currentStaffProfileID(c *gin.Context) (int64, bool) {
	raw, exists := c.Get(middleware.CtxStaffProfileID)
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Staff access required.", "Missing staff profile in context"))
		return 0, false
	}
	staffID, ok := raw.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Staff profile format incorrect.", "Invalid staff profile in context"))
		return 0, false
	}
	return staffID, true
}

func respondBindError(c *gin.Context, err error) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
		"Invalid request payload: "+err.Error(), err.Error()))
}

func respondInternal(c *gin.Context, message string) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
		message, "Internal error"))
}
