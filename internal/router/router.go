package router

import (
	"database/sql"

	"fitnesshub_backend/internal/handlers"
	"fitnesshub_backend/internal/middleware"
	"fitnesshub_backend/internal/repositories"
	"fitnesshub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers and registers all routes
// under /api/v1.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Repositories
	authRepo := repositories.NewAuthRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	billingRepo := repositories.NewBillingRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	checkinRepo := repositories.NewCheckinRepository(db)
	trackerRepo := repositories.NewTrackerRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	scheduleRepo := repositories.NewScheduleRepository(db)

	// Services
	notificationService := services.NewNotificationService(notificationRepo, staffRepo, db)
	authService := services.NewAuthService(authRepo, memberRepo, staffRepo, notificationService, db)
	memberService := services.NewMemberService(memberRepo, authRepo, billingRepo, requestRepo, trackerRepo, db)
	billingService := services.NewBillingService(billingRepo, memberRepo, authRepo, db)
	requestService := services.NewRequestService(requestRepo, memberRepo, authRepo, notificationService, db)
	checkinService := services.NewCheckinService(checkinRepo, memberRepo, trackerRepo, db)
	scheduleService := services.NewScheduleService(scheduleRepo, db)
	settingsService := services.NewSettingsService(trackerRepo, db)
	dashboardService := services.NewDashboardService(
		memberRepo, authRepo, billingRepo, requestRepo, checkinRepo, trackerRepo, notificationService, db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService)
	billingHandler := handlers.NewBillingHandler(billingService)
	requestHandler := handlers.NewRequestHandler(requestService)
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated, authHandler)
		SetupMemberRoutes(authenticated, memberHandler, billingHandler, requestHandler, checkinHandler, dashboardHandler)
		SetupScheduleRoutes(authenticated, scheduleHandler)

		staff := authenticated.Group("/staff")
		staff.Use(middleware.StaffOnly(staffRepo))
		{
			SetupStaffRoutes(staff, memberHandler, billingHandler, requestHandler, checkinHandler,
				scheduleHandler, settingsHandler, notificationHandler, dashboardHandler)
		}
	}
}
