package handlers

import (
	"errors"
	"net/http"

	"fitnesshub_backend/internal/services"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SettingsHandler holds the settings service.
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(ss services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: ss}
}

// GetSettings returns the gym-wide settings, created with defaults on first
// access.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		utils.LogError(err, "GetSettings: load failed")
		respondInternal(c, "Failed to load settings.")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings saves the gym-wide settings.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	settings, err := h.settingsService.UpdateSettings(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "UpdateSettings: save failed")
		respondInternal(c, "Failed to save settings.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved.", "settings": settings})
}
