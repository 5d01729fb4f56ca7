package middleware

import (
	"net/http"
	"strings"

	"fitnesshub_backend/internal/repositories"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware for downstream handlers.
const (
	CtxUserID         = "userID"
	CtxUserEmail      = "userEmail"
	CtxIsStaff        = "isStaff"
	CtxStaffProfileID = "staffProfileID"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxIsStaff, claims.IsStaff)

		c.Next()
	}
}

// StaffOnly gates a route group to staff accounts and resolves the caller's
// staff profile ID into the context. Ensure AuthMiddleware runs first.
func StaffOnly(staffRepo repositories.StaffRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		isStaff, exists := c.Get(CtxIsStaff)
		if !exists || !isStaff.(bool) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"Staff access required.", "This endpoint is restricted to staff accounts"))
			return
		}

		userID := c.GetInt64(CtxUserID)
		profile, err := staffRepo.GetStaffProfileByUserID(userID)
		if err != nil {
			utils.LogError(err, "StaffOnly: failed to resolve staff profile for user "+utils.Int64ToStr(userID))
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"Staff access required.", "No staff profile found for this account"))
			return
		}
		c.Set(CtxStaffProfileID, profile.ID)

		c.Next()
	}
}
