package models

// ClassSchedule is one recurring weekly class. DayOfWeek runs 1 (Monday)
// through 7 (Sunday); times are stored as "HH:MM".
type ClassSchedule struct {
	ID             int64   `json:"class_id" db:"id"`
	ClassName      string  `json:"class_name" db:"class_name"`
	InstructorName string  `json:"instructor_name" db:"instructor_name"`
	DayOfWeek      int     `json:"day_of_week" db:"day_of_week"`
	StartTime      string  `json:"start_time" db:"start_time"`
	EndTime        string  `json:"end_time" db:"end_time"`
	Description    *string `json:"description,omitempty" db:"description"`
	Location       *string `json:"location,omitempty" db:"location"`

	DayLabel   string `json:"day_label,omitempty" db:"-"`
	StartLabel string `json:"start_label,omitempty" db:"-"`
	EndLabel   string `json:"end_label,omitempty" db:"-"`
}
