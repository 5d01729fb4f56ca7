package services

import (
	"errors"
	"fmt"
	"time"

	"fitnesshub_backend/internal/models"
	"fitnesshub_backend/internal/repositories"
)

// Gym floor status labels derived from occupancy.
const (
	GymStatusOpen = "Open"
	GymStatusPeak = "Peak"
	GymStatusFull = "Full"
)

// Member account status labels.
const (
	AccountStatusActive   = "Active"
	AccountStatusFrozen   = "Frozen"
	AccountStatusInactive = "Inactive"
)

// --- DashboardService Interface ---
type DashboardService interface {
	MemberDashboard(userID int64) (*models.MemberDashboard, error)
	// StaffDashboard aggregates KPIs, member tables, the approval queue,
	// recent payments and the caller's notifications.
	StaffDashboard(staffProfileID int64, search *string) (*models.StaffDashboard, error)
}

type dashboardService struct {
	memberRepo          repositories.MemberRepository
	authRepo            repositories.AuthRepository
	billingRepo         repositories.BillingRepository
	requestRepo         repositories.RequestRepository
	checkinRepo         repositories.CheckinRepository
	trackerRepo         repositories.TrackerRepository
	notificationService NotificationService
	db                  repositories.SQLExecutor
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(
	mr repositories.MemberRepository,
	ar repositories.AuthRepository,
	br repositories.BillingRepository,
	rr repositories.RequestRepository,
	cr repositories.CheckinRepository,
	tr repositories.TrackerRepository,
	ns NotificationService,
	db repositories.SQLExecutor,
) DashboardService {
	return &dashboardService{
		memberRepo:          mr,
		authRepo:            ar,
		billingRepo:         br,
		requestRepo:         rr,
		checkinRepo:         cr,
		trackerRepo:         tr,
		notificationService: ns,
		db:                  db,
	}
}

// OccupancyPercent converts headcount to a whole percentage of capacity.
func OccupancyPercent(currentCount, capacityLimit int) int {
	if capacityLimit <= 0 {
		return 0
	}
	return currentCount * 100 / capacityLimit
}

// OccupancyStatus maps an occupancy percentage to the floor status label.
func OccupancyStatus(percent int) string {
	switch {
	case percent >= 95:
		return GymStatusFull
	case percent >= 70:
		return GymStatusPeak
	default:
		return GymStatusOpen
	}
}

var weekdayKeys = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// BuildWeeklyActivity sums activity minutes per weekday over the seven days
// ending today.
func BuildWeeklyActivity(logs []models.ActivityLog, today time.Time) map[string]int {
	weekly := make(map[string]int, 7)
	for _, key := range weekdayKeys {
		weekly[key] = 0
	}
	windowStart := dateOnly(today).AddDate(0, 0, -6)
	for _, log := range logs {
		day := dateOnly(log.ActivityDate)
		if day.Before(windowStart) || day.After(dateOnly(today)) {
			continue
		}
		weekly[day.Format("Mon")] += log.DurationMinutes
	}
	return weekly
}

func accountStatus(profile *models.MemberProfile, user *models.User) string {
	switch {
	case profile.IsFrozen:
		return AccountStatusFrozen
	case user.IsActive:
		return AccountStatusActive
	default:
		return AccountStatusInactive
	}
}

func (s *dashboardService) MemberDashboard(userID int64) (*models.MemberDashboard, error) {
	profile, err := s.memberRepo.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member profile: %w", err)
	}
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	now := time.Now()
	daysAttended, err := s.checkinRepo.CountDistinctDaysInMonth(profile.ID, now.Year(), now.Month())
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}
	totalCheckIns, err := s.checkinRepo.CountByMember(profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count check-ins: %w", err)
	}
	logs, err := s.checkinRepo.GetActivityLogsSince(profile.ID, dateOnly(now).AddDate(0, 0, -6))
	if err != nil {
		return nil, fmt.Errorf("failed to load activity logs: %w", err)
	}

	tracker, err := s.trackerRepo.GetOrCreate(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load occupancy: %w", err)
	}
	percent := OccupancyPercent(tracker.CurrentCount, tracker.CapacityLimit)

	return &models.MemberDashboard{
		DaysAttendedThisMonth: daysAttended,
		TotalCheckIns:         totalCheckIns,
		WeeklyActivity:        BuildWeeklyActivity(logs, now),
		AccountStatus:         accountStatus(profile, user),
		Balance:               profile.Balance,
		NextDueDate:           profile.NextDueDate,
		MembershipID:          profile.MembershipID,
		OccupancyPercent:      percent,
		GymStatus:             OccupancyStatus(percent),
	}, nil
}

const recentPaymentLimit = 10

func (s *dashboardService) StaffDashboard(staffProfileID int64, search *string) (*models.StaffDashboard, error) {
	dashboard := &models.StaffDashboard{}

	pending, err := s.requestRepo.CountPending()
	if err != nil {
		return nil, fmt.Errorf("failed to count pending requests: %w", err)
	}
	dashboard.PendingApprovals = pending

	active, err := s.memberRepo.CountActiveMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to count active members: %w", err)
	}
	dashboard.ActiveMembers = active

	now := time.Now()
	todayStart := dateOnly(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	if dashboard.TodaysRevenue, err = s.billingRepo.SumPaymentsBetween(todayStart, todayStart.AddDate(0, 0, 1)); err != nil {
		return nil, fmt.Errorf("failed to sum today's revenue: %w", err)
	}
	if dashboard.MonthlyRevenue, err = s.billingRepo.SumPaymentsBetween(monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return nil, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}
	if dashboard.MRR, err = s.billingRepo.SumFeesBetween(monthStart, monthStart.AddDate(0, 1, 0)); err != nil {
		return nil, fmt.Errorf("failed to sum recurring revenue: %w", err)
	}

	if dashboard.ActiveMemberList, err = s.memberRepo.GetActiveMembers(search); err != nil {
		return nil, fmt.Errorf("failed to list active members: %w", err)
	}
	if dashboard.PendingMemberList, err = s.memberRepo.GetPendingMembers(); err != nil {
		return nil, fmt.Errorf("failed to list pending members: %w", err)
	}
	if dashboard.FrozenMemberList, err = s.memberRepo.GetFrozenMembers(); err != nil {
		return nil, fmt.Errorf("failed to list frozen members: %w", err)
	}

	if dashboard.ApprovalRequests, err = s.requestRepo.GetPendingAll(); err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	if dashboard.RevenueTransactions, err = s.billingRepo.GetRecentPayments(recentPaymentLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent payments: %w", err)
	}
	if dashboard.Notifications, err = s.notificationService.GetRecentForStaff(staffProfileID); err != nil {
		return nil, err
	}
	if dashboard.UnreadNotifications, err = s.notificationService.CountUnreadForStaff(staffProfileID); err != nil {
		return nil, err
	}

	return dashboard, nil
}
