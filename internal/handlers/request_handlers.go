package handlers

import (
	"errors"
	"net/http"

	"fitnesshub_backend/internal/services"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RequestHandler holds the account-request service.
type RequestHandler struct {
	requestService services.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(rs services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: rs}
}

// SubmitRequest files a freeze/unfreeze request for the calling member.
// Conflicts come back as an informational 200, not an error.
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.requestService.SubmitRequest(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrMemberNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Member profile not found.", err.Error()))
		default:
			utils.LogError(err, "SubmitRequest: submit failed")
			respondInternal(c, "Failed to submit request.")
		}
		return
	}

	if !result.Created {
		c.JSON(http.StatusOK, gin.H{"status": "info", "message": result.Message})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "message": result.Message, "request": result.Request})
}

// ProcessRequest approves or rejects a pending request.
func (h *RequestHandler) ProcessRequest(c *gin.Context) {
	staffID, ok := currentStaffProfileID(c)
	if !ok {
		return
	}

	var req services.ProcessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	request, err := h.requestService.ProcessRequest(staffID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrRequestNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Pending request not found.", err.Error()))
		case errors.Is(err, services.ErrAlreadyFrozen), errors.Is(err, services.ErrNotFrozen):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"Membership state no longer matches this request.", err.Error()))
		default:
			utils.LogError(err, "ProcessRequest: decision failed")
			respondInternal(c, "Failed to process request.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request processed.", "request": request})
}
