package models

import "time"

// User is the identity record for both members and staff.
// Members start inactive and are activated by staff after the first payment.
type User struct {
	ID                     int64     `json:"id" db:"id"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	FirstName              string    `json:"first_name" db:"first_name"`
	LastName               string    `json:"last_name" db:"last_name"`
	ContactNumber          *string   `json:"contact_number,omitempty" db:"contact_number"`
	EmergencyContactName   *string   `json:"emergency_contact_name,omitempty" db:"emergency_contact_name"`
	EmergencyContactNumber *string   `json:"emergency_contact_number,omitempty" db:"emergency_contact_number"`
	MedicalConditions      *string   `json:"medical_conditions,omitempty" db:"medical_conditions"`
	FitnessGoals           *string   `json:"fitness_goals,omitempty" db:"fitness_goals"`
	IsActive               bool      `json:"is_active" db:"is_active"`
	IsStaff                bool      `json:"is_staff" db:"is_staff"`
	DateJoined             time.Time `json:"date_joined" db:"date_joined"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
