package handlers

import (
	"errors"
	"net/http"

	"fitnesshub_backend/internal/services"
	"fitnesshub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler holds the dashboard service.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// MemberDashboard returns the caller's attendance and account summary.
func (h *DashboardHandler) MemberDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.MemberDashboard(userID)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Member profile not found.", err.Error()))
			return
		}
		utils.LogError(err, "MemberDashboard: load failed")
		respondInternal(c, "Failed to load dashboard.")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// StaffDashboard returns the KPIs, member tables, approval queue, recent
// payments and the caller's notifications. An optional ?search= filters the
// active member list.
func (h *DashboardHandler) StaffDashboard(c *gin.Context) {
	staffID, ok := currentStaffProfileID(c)
	if !ok {
		return
	}

	var search *string
	if term := c.Query("search"); term != "" {
		search = &term
	}

	dashboard, err := h.dashboardService.StaffDashboard(staffID, search)
	if err != nil {
		utils.LogError(err, "StaffDashboard: load failed")
		respondInternal(c, "Failed to load dashboard.")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
