package handlers

import (
	"errors"
	"net/http"

	"fitnesshub_backend/internal/services"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler holds the notification service.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// List returns the caller's newest notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	staffID, ok := currentStaffProfileID(c)
	if !ok {
		return
	}

	notifications, err := h.notificationService.GetRecentForStaff(staffID)
	if err != nil {
		utils.LogError(err, "List: failed to load notifications")
		respondInternal(c, "Failed to load notifications.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead flips a notification to read and returns its redirect target.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	staffID, ok := currentStaffProfileID(c)
	if !ok {
		return
	}

	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "notification ID must be a number")
		return
	}

	target, err := h.notificationService.MarkRead(id, staffID)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Notification not found.", err.Error()))
			return
		}
		utils.LogError(err, "MarkRead: update failed")
		respondInternal(c, "Failed to mark notification read.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read.", "redirect_target": target})
}
