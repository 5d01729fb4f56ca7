package models

import "time"

// MemberDashboard is the aggregated payload backing the member dashboard.
type MemberDashboard struct {
	DaysAttendedThisMonth int            `json:"days_attended_this_month"`
	TotalCheckIns         int            `json:"total_check_ins"`
	WeeklyActivity        map[string]int `json:"weekly_activity"` // Mon..Sun -> minutes
	AccountStatus         string         `json:"account_status"`  // Active / Frozen / Inactive
	Balance               float64        `json:"balance"`
	NextDueDate           *time.Time     `json:"next_due_date,omitempty"`
	MembershipID          *string        `json:"membership_id,omitempty"`
	OccupancyPercent      int            `json:"occupancy_percent"`
	GymStatus             string         `json:"gym_status"` // Open / Peak / Full
}

// MemberListEntry is one row of the staff dashboard member tables.
type MemberListEntry struct {
	Member          MemberProfile `json:"member"`
	IsCheckedIn     bool          `json:"is_checked_in"`
	LastCheckInTime *time.Time    `json:"last_check_in_time,omitempty"`
}

// StaffDashboard bundles the KPIs, member tables, approval queue, recent
// payments and notifications for the staff dashboard.
type StaffDashboard struct {
	PendingApprovals int     `json:"pending_approvals"`
	ActiveMembers    int     `json:"active_members"`
	TodaysRevenue    float64 `json:"todays_revenue"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	MRR              float64 `json:"mrr"`

	ActiveMemberList  []MemberListEntry `json:"active_member_list"`
	PendingMemberList []MemberProfile   `json:"pending_member_list"`
	FrozenMemberList  []MemberListEntry `json:"frozen_member_list"`

	ApprovalRequests    []AccountRequest `json:"approval_requests"`
	RevenueTransactions []BillingRecord  `json:"revenue_transactions"`
	Notifications       []Notification   `json:"notifications"`
	UnreadNotifications int              `json:"unread_notifications"`
}

// RevenueChart is the {labels, data} payload consumed by the dashboard chart.
type RevenueChart struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// BillingHistoryEntry pairs a ledger record with the balance that held
// immediately after it was applied.
type BillingHistoryEntry struct {
	Record         BillingRecord `json:"record"`
	BalanceAfterTx float64       `json:"balance_after_tx"`
}
