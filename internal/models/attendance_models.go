package models

import "time"

// CheckIn is a gym visit. CheckOutTime is null while the member is on the
// floor; at most one open row exists per member.
type CheckIn struct {
	ID           int64      `json:"id" db:"id"`
	MemberID     int64      `json:"member_id" db:"member_id"`
	CheckInTime  time.Time  `json:"check_in_time" db:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty" db:"check_out_time"`

	// DurationMinutes is derived for closed rows in history payloads.
	DurationMinutes *int `json:"duration_minutes,omitempty" db:"-"`
}

// ActivityLog is the derived attendance record written at checkout.
type ActivityLog struct {
	ID              int64     `json:"id" db:"id"`
	MemberID        int64     `json:"member_id" db:"member_id"`
	ActivityDate    time.Time `json:"activity_date" db:"activity_date"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
}
