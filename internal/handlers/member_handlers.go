package handlers

import (
	"errors"
	"net/http"

	"fitnesshub_backend/internal/services"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MemberHandler holds the member lifecycle service.
type MemberHandler struct {
	memberService services.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: ms}
}

func respondMemberConflict(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Member not found.", err.Error()))
	case errors.Is(err, services.ErrAlreadyActive):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
			"Member is already active.", err.Error()))
	case errors.Is(err, services.ErrAlreadyFrozen):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
			"Membership is already frozen.", err.Error()))
	case errors.Is(err, services.ErrNotFrozen):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
			"Membership is not frozen.", err.Error()))
	case errors.Is(err, services.ErrValidation):
		utils.RespondValidationFailed(c, err.Error())
	default:
		return false
	}
	return true
}

// ActivateMember activates a pending member after their first payment.
func (h *MemberHandler) ActivateMember(c *gin.Context) {
	staffID, ok := currentStaffProfileID(c)
	if !ok {
		return
	}

	var req services.ActivateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.memberService.ActivateMember(staffID, req)
	if err != nil {
		if !respondMemberConflict(c, err) {
			utils.LogError(err, "ActivateMember: activation failed")
			respondInternal(c, "Failed to activate member.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member activated.", "profile": profile})
}

// ManualFreeze pauses a membership at the front desk.
func (h *MemberHandler) ManualFreeze(c *gin.Context) {
	staffID, ok := currentStaffProfileID(c)
	if !ok {
		return
	}

	var req services.ManualFreezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.memberService.ManualFreeze(staffID, req)
	if err != nil {
		if !respondMemberConflict(c, err) {
			utils.LogError(err, "ManualFreeze: freeze failed")
			respondInternal(c, "Failed to freeze membership.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Membership frozen.", "profile": profile})
}

// ManualUnfreeze resumes a frozen membership at the front desk.
func (h *MemberHandler) ManualUnfreeze(c *gin.Context) {
	staffID, ok := currentStaffProfileID(c)
	if !ok {
		return
	}

	var req services.ManualFreezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.memberService.ManualUnfreeze(staffID, req)
	if err != nil {
		if !respondMemberConflict(c, err) {
			utils.LogError(err, "ManualUnfreeze: unfreeze failed")
			respondInternal(c, "Failed to unfreeze membership.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Membership unfrozen.", "profile": profile})
}

// EditMember is the staff edit of a member's identity details.
func (h *MemberHandler) EditMember(c *gin.Context) {
	if _, ok := currentStaffProfileID(c); !ok {
		return
	}

	var req services.EditMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.memberService.EditMember(req); err != nil {
		if !respondMemberConflict(c, err) {
			utils.LogError(err, "EditMember: update failed")
			respondInternal(c, "Failed to update member details.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member details updated."})
}

// UpdateOwnDetails is the member's self-service edit of contact and
// emergency details.
func (h *MemberHandler) UpdateOwnDetails(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateOwnDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.memberService.UpdateOwnDetails(userID, req); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Account not found.", err.Error()))
		default:
			utils.LogError(err, "UpdateOwnDetails: update failed")
			respondInternal(c, "Failed to update details.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Details updated."})
}
