package handlers

import (
	"errors"
	"net/http"

	"fitnesshub_backend/internal/services"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CheckinHandler holds the check-in service.
type CheckinHandler struct {
	checkinService services.CheckinService
}

// NewCheckinHandler creates a new CheckinHandler.
func NewCheckinHandler(cs services.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinService: cs}
}

// CheckInOut opens or closes a visit at the front desk.
func (h *CheckinHandler) CheckInOut(c *gin.Context) {
	if _, ok := currentStaffProfileID(c); !ok {
		return
	}

	var req services.CheckInOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.checkinService.CheckInOut(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCheckAction):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrMemberNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Member not found.", err.Error()))
		case errors.Is(err, services.ErrAlreadyCheckedIn):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"Member is already checked in.", err.Error()))
		case errors.Is(err, services.ErrNoOpenCheckIn):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Member has no open check-in.", err.Error()))
		default:
			utils.LogError(err, "CheckInOut: action failed")
			respondInternal(c, "Failed to record check-in/out.")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// History returns the caller's visit history.
func (h *CheckinHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := h.checkinService.GetHistory(userID)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Member profile not found.", err.Error()))
			return
		}
		utils.LogError(err, "History: load failed")
		respondInternal(c, "Failed to load check-in history.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"check_ins": history})
}
