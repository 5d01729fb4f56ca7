package models

// StaffProfile is the one-to-one profile row for a staff user.
type StaffProfile struct {
	ID       int64   `json:"id" db:"id"`
	UserID   int64   `json:"user_id" db:"user_id"`
	Position *string `json:"position,omitempty" db:"position"`

	User *User `json:"user,omitempty" db:"-"`
}
