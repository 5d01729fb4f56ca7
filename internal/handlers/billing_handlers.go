package handlers

import (
	"errors"
	"net/http"
	"time"

	"fitnesshub_backend/internal/services"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BillingHandler holds the billing service.
type BillingHandler struct {
	billingService services.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(bs services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: bs}
}

// LogPayment records a payment against an active member's balance.
func (h *BillingHandler) LogPayment(c *gin.Context) {
	staffID, ok := currentStaffProfileID(c)
	if !ok {
		return
	}

	var req services.LogPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.billingService.LogPayment(staffID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrMemberNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Member not found.", err.Error()))
		case errors.Is(err, services.ErrMemberInactive):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"Member account is not active.", err.Error()))
		case errors.Is(err, services.ErrNoOutstandingBalance):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict,
				"Member has no outstanding balance.", err.Error()))
		default:
			utils.LogError(err, "LogPayment: payment failed")
			respondInternal(c, "Failed to log payment.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment recorded.", "profile": profile})
}

// BillingHistory returns the caller's ledger with running balances.
func (h *BillingHandler) BillingHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := h.billingService.GetBillingHistory(userID)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Member profile not found.", err.Error()))
			return
		}
		utils.LogError(err, "BillingHistory: load failed")
		respondInternal(c, "Failed to load billing history.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// RevenueChart returns revenue bucketed per day of the current month or per
// month of the current year.
func (h *BillingHandler) RevenueChart(c *gin.Context) {
	filter := c.DefaultQuery("filter", services.ChartFilterDaily)

	chart, err := h.billingService.RevenueChart(filter, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidChartFilter) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "RevenueChart: load failed")
		respondInternal(c, "Failed to load revenue chart.")
		return
	}
	c.JSON(http.StatusOK, chart)
}
