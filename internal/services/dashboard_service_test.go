package services

import (
	"testing"
	"time"

	"fitnesshub_backend/internal/models"
)

func TestOccupancyPercent(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		capacity int
		want     int
	}{
		{"empty floor", 0, 120, 0},
		{"three quarters", 90, 120, 75},
		{"full", 120, 120, 100},
		{"over capacity reads past 100", 130, 120, 108},
		{"zero capacity reads zero", 50, 0, 0},
		{"negative capacity reads zero", 50, -1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := OccupancyPercent(tc.count, tc.capacity); got != tc.want {
				t.Errorf("OccupancyPercent(%d, %d) = %d, want %d", tc.count, tc.capacity, got, tc.want)
			}
		})
	}
}

func TestOccupancyStatus(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{0, GymStatusOpen},
		{69, GymStatusOpen},
		{70, GymStatusPeak},
		{94, GymStatusPeak},
		{95, GymStatusFull},
		{100, GymStatusFull},
	}
	for _, tc := range tests {
		if got := OccupancyStatus(tc.percent); got != tc.want {
			t.Errorf("OccupancyStatus(%d) = %q, want %q", tc.percent, got, tc.want)
		}
	}
}

func TestBuildWeeklyActivity(t *testing.T) {
	today := date(2026, time.August, 31) // a Monday
	logs := []models.ActivityLog{
		{ActivityDate: today, DurationMinutes: 60},
		{ActivityDate: today, DurationMinutes: 30},
		{ActivityDate: date(2026, time.August, 29), DurationMinutes: 45},
		// Outside the seven-day window.
		{ActivityDate: date(2026, time.August, 24), DurationMinutes: 100},
		{ActivityDate: date(2026, time.September, 1), DurationMinutes: 50},
	}

	weekly := BuildWeeklyActivity(logs, today)
	if len(weekly) != 7 {
		t.Fatalf("expected 7 weekday buckets, got %d", len(weekly))
	}
	if weekly["Mon"] != 90 {
		t.Errorf("Mon = %d, want 90", weekly["Mon"])
	}
	if weekly["Sat"] != 45 {
		t.Errorf("Sat = %d, want 45", weekly["Sat"])
	}
	for _, key := range []string{"Tue", "Wed", "Thu", "Fri", "Sun"} {
		if weekly[key] != 0 {
			t.Errorf("%s = %d, want 0", key, weekly[key])
		}
	}
}

func TestAccountStatus(t *testing.T) {
	tests := []struct {
		name    string
		profile models.MemberProfile
		user    models.User
		want    string
	}{
		{"frozen wins over active", models.MemberProfile{IsFrozen: true}, models.User{IsActive: true}, AccountStatusFrozen},
		{"active", models.MemberProfile{}, models.User{IsActive: true}, AccountStatusActive},
		{"inactive", models.MemberProfile{}, models.User{}, AccountStatusInactive},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := accountStatus(&tc.profile, &tc.user); got != tc.want {
				t.Errorf("accountStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMemberDashboard(t *testing.T) {
	membershipID := "CFH-2026-0001"
	due := date(2026, time.September, 15)
	profile := &models.MemberProfile{
		ID:           1,
		UserID:       10,
		Balance:      500,
		NextDueDate:  &due,
		MembershipID: &membershipID,
	}
	user := &models.User{ID: 10, IsActive: true}
	checkinRepo := &fakeCheckinRepo{distinctDays: 12, totalCheckIns: 40}
	trackerRepo := newFakeTrackerRepo()
	trackerRepo.tracker.CurrentCount = 90

	notificationService := NewNotificationService(&fakeNotificationRepo{}, &fakeStaffRepo{}, nil)
	svc := NewDashboardService(newFakeMemberRepo(profile), newFakeAuthRepo(user), &fakeBillingRepo{},
		newFakeRequestRepo(), checkinRepo, trackerRepo, notificationService, nil)

	dashboard, err := svc.MemberDashboard(10)
	if err != nil {
		t.Fatalf("MemberDashboard failed: %v", err)
	}
	if dashboard.DaysAttendedThisMonth != 12 {
		t.Errorf("days attended = %d, want 12", dashboard.DaysAttendedThisMonth)
	}
	if dashboard.TotalCheckIns != 40 {
		t.Errorf("total check-ins = %d, want 40", dashboard.TotalCheckIns)
	}
	if dashboard.AccountStatus != AccountStatusActive {
		t.Errorf("account status = %q, want %q", dashboard.AccountStatus, AccountStatusActive)
	}
	if dashboard.Balance != 500 {
		t.Errorf("balance = %.2f, want 500", dashboard.Balance)
	}
	if dashboard.MembershipID == nil || *dashboard.MembershipID != membershipID {
		t.Errorf("membership ID = %v, want %s", dashboard.MembershipID, membershipID)
	}
	if dashboard.OccupancyPercent != 75 {
		t.Errorf("occupancy = %d%%, want 75%%", dashboard.OccupancyPercent)
	}
	if dashboard.GymStatus != GymStatusPeak {
		t.Errorf("gym status = %q, want %q", dashboard.GymStatus, GymStatusPeak)
	}
}

func TestStaffDashboard(t *testing.T) {
	profile := &models.MemberProfile{ID: 1, UserID: 10}
	requestRepo := newFakeRequestRepo()
	pending := &models.AccountRequest{ID: 1, MemberID: 1, RequestType: models.RequestTypeFreeze}
	requestRepo.pendingByMember[1] = pending
	requestRepo.pendingByID[1] = pending

	target := "/staff/dashboard#requests"
	notificationRepo := &fakeNotificationRepo{created: []models.Notification{
		{ID: 1, RecipientID: 5, Message: "read already", IsRead: true, RedirectTarget: &target},
		{ID: 2, RecipientID: 5, Message: "still unread", RedirectTarget: &target},
		{ID: 3, RecipientID: 9, Message: "someone else's", RedirectTarget: &target},
	}}
	notificationService := NewNotificationService(notificationRepo, &fakeStaffRepo{}, nil)
	svc := NewDashboardService(newFakeMemberRepo(profile), newFakeAuthRepo(), &fakeBillingRepo{},
		requestRepo, &fakeCheckinRepo{}, newFakeTrackerRepo(), notificationService, nil)

	dashboard, err := svc.StaffDashboard(5, nil)
	if err != nil {
		t.Fatalf("StaffDashboard failed: %v", err)
	}
	if dashboard.PendingApprovals != 1 {
		t.Errorf("pending approvals = %d, want 1", dashboard.PendingApprovals)
	}
	if dashboard.ActiveMembers != 1 {
		t.Errorf("active members = %d, want 1", dashboard.ActiveMembers)
	}
	if dashboard.ActiveMemberList == nil || dashboard.ApprovalRequests == nil {
		t.Error("member tables should never be nil")
	}
	if dashboard.UnreadNotifications != 1 {
		t.Errorf("unread notifications = %d, want 1", dashboard.UnreadNotifications)
	}
}

// A rejected applicant must not reappear in the approval queue.
func TestStaffDashboard_PendingListExcludesRejected(t *testing.T) {
	pending := &models.MemberProfile{ID: 1, UserID: 10, ActivationStatus: models.ActivationPending}
	rejected := &models.MemberProfile{ID: 2, UserID: 11, ActivationStatus: models.ActivationRejected}

	notificationService := NewNotificationService(&fakeNotificationRepo{}, &fakeStaffRepo{}, nil)
	svc := NewDashboardService(newFakeMemberRepo(pending, rejected), newFakeAuthRepo(), &fakeBillingRepo{},
		newFakeRequestRepo(), &fakeCheckinRepo{}, newFakeTrackerRepo(), notificationService, nil)

	dashboard, err := svc.StaffDashboard(5, nil)
	if err != nil {
		t.Fatalf("StaffDashboard failed: %v", err)
	}
	if len(dashboard.PendingMemberList) != 1 {
		t.Fatalf("pending member list has %d entries, want 1", len(dashboard.PendingMemberList))
	}
	if dashboard.PendingMemberList[0].ID != pending.ID {
		t.Errorf("pending member ID = %d, want %d", dashboard.PendingMemberList[0].ID, pending.ID)
	}
}
