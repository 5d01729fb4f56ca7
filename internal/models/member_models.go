package models

import "time"

// Activation status values for a member profile.
const (
	ActivationPending  = "pending"
	ActivationApproved = "approved"
	ActivationRejected = "rejected"
)

// MemberProfile carries the financial and lifecycle state of a non-staff
// user. Balance is a debt ledger: positive means the member owes money.
type MemberProfile struct {
	ID                    int64      `json:"id" db:"id"`
	UserID                int64      `json:"user_id" db:"user_id"`
	Balance               float64    `json:"balance" db:"balance"`
	NextDueDate           *time.Time `json:"next_due_date,omitempty" db:"next_due_date"`
	IsFrozen              bool       `json:"is_frozen" db:"is_frozen"`
	DaysRemainingOnFreeze *int       `json:"days_remaining_on_freeze,omitempty" db:"days_remaining_on_freeze"`
	MembershipID          *string    `json:"membership_id,omitempty" db:"membership_id"`
	ActivationStatus      string     `json:"activation_status" db:"activation_status"`

	// Joined identity fields, populated by list queries.
	User *User `json:"user,omitempty" db:"-"`
}

// Billing transaction types. FEE is positive (debt up), PAYMENT is negative
// (debt down), ADJUSTMENT may be either.
const (
	TxTypePayment    = "PAYMENT"
	TxTypeFee        = "FEE"
	TxTypeAdjustment = "ADJUSTMENT"
)

// BillingRecord is one immutable ledger entry. The sum of a member's
// records equals their current balance.
type BillingRecord struct {
	ID              int64     `json:"id" db:"id"`
	MemberID        int64     `json:"member_id" db:"member_id"`
	StaffID         *int64    `json:"staff_id,omitempty" db:"staff_id"`
	TransactionType string    `json:"transaction_type" db:"transaction_type"`
	Amount          float64   `json:"amount" db:"amount"`
	Description     *string   `json:"description,omitempty" db:"description"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	MemberName *string `json:"member_name,omitempty" db:"-"`
}

// Account request types and statuses.
const (
	RequestTypeFreeze   = "FREEZE"
	RequestTypeUnfreeze = "UNFREEZE"

	RequestStatusPending  = "PENDING"
	RequestStatusApproved = "APPROVED"
	RequestStatusRejected = "REJECTED"
)

// AccountRequest is a member's freeze/unfreeze request, or the auto-approved
// audit row written by a manual staff freeze/unfreeze.
type AccountRequest struct {
	ID                  int64      `json:"id" db:"id"`
	MemberID            int64      `json:"member_id" db:"member_id"`
	StaffReviewerID     *int64     `json:"staff_reviewer_id,omitempty" db:"staff_reviewer_id"`
	RequestType         string     `json:"request_type" db:"request_type"`
	Status              string     `json:"status" db:"status"`
	Reason              *string    `json:"reason,omitempty" db:"reason"`
	StaffDecisionReason *string    `json:"staff_decision_reason,omitempty" db:"staff_decision_reason"`
	RequestDate         time.Time  `json:"request_date" db:"request_date"`
	DecisionDate        *time.Time `json:"decision_date,omitempty" db:"decision_date"`

	MemberName  *string `json:"member_name,omitempty" db:"-"`
	MemberEmail *string `json:"member_email,omitempty" db:"-"`
}
