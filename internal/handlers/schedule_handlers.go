package handlers

import (
	"errors"
	"net/http"

	"fitnesshub_backend/internal/services"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler holds the class-schedule service.
type ScheduleHandler struct {
	scheduleService services.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(ss services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: ss}
}

// GetClasses lists the weekly schedule.
func (h *ScheduleHandler) GetClasses(c *gin.Context) {
	classes, err := h.scheduleService.GetClasses()
	if err != nil {
		utils.LogError(err, "GetClasses: load failed")
		respondInternal(c, "Failed to load class schedule.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

// CreateClass adds a class to the weekly schedule.
func (h *ScheduleHandler) CreateClass(c *gin.Context) {
	var req services.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	class, err := h.scheduleService.CreateClass(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrScheduleConflict):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"Another class overlaps this time slot.", err.Error()))
		default:
			utils.LogError(err, "CreateClass: create failed")
			respondInternal(c, "Failed to create class.")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Class created.", "class": class})
}

// DeleteClass removes a class from the schedule.
func (h *ScheduleHandler) DeleteClass(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "class ID must be a number")
		return
	}

	if err := h.scheduleService.DeleteClass(id); err != nil {
		if errors.Is(err, services.ErrClassNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Class not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteClass: delete failed")
		respondInternal(c, "Failed to delete class.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Class deleted."})
}
