package models

import "time"

// TrackerSingletonID is the primary key of the one occupancy/settings row.
const TrackerSingletonID = 1

// OccupancyTracker is the singleton row holding live headcount and the
// gym-wide configuration (capacity, fee, membership ID prefix, peak hours).
type OccupancyTracker struct {
	ID                int64     `json:"id" db:"id"`
	CurrentCount      int       `json:"current_count" db:"current_count"`
	CapacityLimit     int       `json:"capacity_limit" db:"capacity_limit"`
	PeakHoursStart    string    `json:"peak_hours_start" db:"peak_hours_start"`
	PeakHoursEnd      string    `json:"peak_hours_end" db:"peak_hours_end"`
	GymName           string    `json:"gym_name" db:"gym_name"`
	ContactNumber     *string   `json:"contact_number,omitempty" db:"contact_number"`
	ContactAddress    *string   `json:"contact_address,omitempty" db:"contact_address"`
	DefaultMonthlyFee float64   `json:"default_monthly_fee" db:"default_monthly_fee"`
	MemberIDPrefix    string    `json:"member_id_prefix" db:"member_id_prefix"`
	LastUpdated       time.Time `json:"last_updated" db:"last_updated"`
}
