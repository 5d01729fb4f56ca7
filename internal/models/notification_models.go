package models

import "time"

// Notification types surfaced on the staff dashboard.
const (
	NotificationTypeRegistration   = "REGISTRATION"
	NotificationTypeAccountRequest = "ACCOUNT_REQUEST"
)

// Notification is a staff-facing alert created by registration and
// account-request fan-out.
type Notification struct {
	ID               int64     `json:"id" db:"id"`
	RecipientID      int64     `json:"recipient_id" db:"recipient_id"`
	Message          string    `json:"message" db:"message"`
	NotificationType string    `json:"notification_type" db:"notification_type"`
	IsRead           bool      `json:"is_read" db:"is_read"`
	RedirectTarget   *string   `json:"redirect_target,omitempty" db:"redirect_target"`
	RelatedMemberID  *int64    `json:"related_member_id,omitempty" db:"related_member_id"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
