package router

import (
	"fitnesshub_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes registers routes that need no token.
func SetupPublicAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}
}

// SetupAuthenticatedAuthRoutes registers token-gated auth routes.
func SetupAuthenticatedAuthRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := authenticatedGroup.Group("/auth")
	{
		authRoutes.POST("/change-password", authHandler.ChangePassword)
		authRoutes.GET("/me", authHandler.Me)
	}
}

// SetupMemberRoutes registers the member-facing routes.
func SetupMemberRoutes(
	authenticatedGroup *gin.RouterGroup,
	memberHandler *handlers.MemberHandler,
	billingHandler *handlers.BillingHandler,
	requestHandler *handlers.RequestHandler,
	checkinHandler *handlers.CheckinHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	authenticatedGroup.GET("/billing/history", billingHandler.BillingHistory)
	authenticatedGroup.GET("/checkins/history", checkinHandler.History)
	authenticatedGroup.GET("/dashboard/member", dashboardHandler.MemberDashboard)

	accountRoutes := authenticatedGroup.Group("/account")
	{
		accountRoutes.POST("/requests", requestHandler.SubmitRequest)
		accountRoutes.PUT("/details", memberHandler.UpdateOwnDetails)
	}
}

// SetupScheduleRoutes registers the schedule view open to all members and
// staff.
func SetupScheduleRoutes(authenticatedGroup *gin.RouterGroup, scheduleHandler *handlers.ScheduleHandler) {
	authenticatedGroup.GET("/schedule/classes", scheduleHandler.GetClasses)
}

// SetupStaffRoutes registers all staff-only routes. The group already runs
// the StaffOnly middleware.
func SetupStaffRoutes(
	staffGroup *gin.RouterGroup,
	memberHandler *handlers.MemberHandler,
	billingHandler *handlers.BillingHandler,
	requestHandler *handlers.RequestHandler,
	checkinHandler *handlers.CheckinHandler,
	scheduleHandler *handlers.ScheduleHandler,
	settingsHandler *handlers.SettingsHandler,
	notificationHandler *handlers.NotificationHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	staffGroup.POST("/activate-member", memberHandler.ActivateMember)
	staffGroup.POST("/log-payment", billingHandler.LogPayment)
	staffGroup.GET("/revenue-chart-data", billingHandler.RevenueChart)

	staffGroup.POST("/manual-freeze", memberHandler.ManualFreeze)
	staffGroup.POST("/manual-unfreeze", memberHandler.ManualUnfreeze)
	staffGroup.POST("/process-request", requestHandler.ProcessRequest)

	staffGroup.POST("/check-in-out", checkinHandler.CheckInOut)

	staffGroup.GET("/notifications", notificationHandler.List)
	staffGroup.POST("/notifications/:id/read", notificationHandler.MarkRead)

	staffGroup.POST("/schedule/classes", scheduleHandler.CreateClass)
	staffGroup.DELETE("/schedule/classes/:id", scheduleHandler.DeleteClass)

	staffGroup.GET("/settings", settingsHandler.GetSettings)
	staffGroup.POST("/settings", settingsHandler.UpdateSettings)

	staffGroup.GET("/dashboard", dashboardHandler.StaffDashboard)
	staffGroup.POST("/edit-member", memberHandler.EditMember)
}
