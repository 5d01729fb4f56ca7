package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitnesshub_backend/internal/models"
	"fitnesshub_backend/internal/repositories"
	"fitnesshub_backend/pkg/utils"
)

var (
	ErrClassNotFound    = errors.New("class not found")
	ErrScheduleConflict = errors.New("another class overlaps this time slot")
)

// The bookable day runs 07:30 to 19:00 on a 30-minute grid.
const (
	scheduleWindowStart = 7*60 + 30
	scheduleWindowEnd   = 19 * 60
	scheduleSlotMinutes = 30
)

var dayNames = [8]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type CreateClassRequest struct {
	ClassName      string `json:"class_name" binding:"required"`
	InstructorName string `json:"instructor_name" binding:"required"`
	DayOfWeek      int    `json:"day_of_week" binding:"required"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	Description    string `json:"description"`
	Location       string `json:"location"`
}

// --- ScheduleService Interface ---
type ScheduleService interface {
	GetClasses() ([]models.ClassSchedule, error)
	CreateClass(req CreateClassRequest) (*models.ClassSchedule, error)
	DeleteClass(id int64) error
}

type scheduleService struct {
	scheduleRepo repositories.ScheduleRepository
	db           *sql.DB
}

// NewScheduleService creates a new instance of ScheduleService.
func NewScheduleService(sr repositories.ScheduleRepository, db *sql.DB) ScheduleService {
	return &scheduleService{scheduleRepo: sr, db: db}
}

// parseClockTime parses "HH:MM" into minutes since midnight.
func parseClockTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateClassTimes applies the scheduling rules: both times parse, end is
// after start, the class fits inside the bookable window, and both times sit
// on the 30-minute grid.
func ValidateClassTimes(startTime, endTime string) error {
	start, err := parseClockTime(startTime)
	if err != nil {
		return fmt.Errorf("%w: start time must be HH:MM", ErrValidation)
	}
	end, err := parseClockTime(endTime)
	if err != nil {
		return fmt.Errorf("%w: end time must be HH:MM", ErrValidation)
	}
	if end <= start {
		return fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	if start < scheduleWindowStart || end > scheduleWindowEnd {
		return fmt.Errorf("%w: classes must run between 07:30 and 19:00", ErrValidation)
	}
	if (start-scheduleWindowStart)%scheduleSlotMinutes != 0 || (end-scheduleWindowStart)%scheduleSlotMinutes != 0 {
		return fmt.Errorf("%w: times must fall on 30-minute slots starting at 07:30", ErrValidation)
	}
	return nil
}

// Overlaps reports whether two same-day [start, end) intervals intersect.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

func decorateClass(class *models.ClassSchedule) {
	if class.DayOfWeek >= 1 && class.DayOfWeek <= 7 {
		class.DayLabel = dayNames[class.DayOfWeek]
	}
	class.StartLabel = clockLabel(class.StartTime)
	class.EndLabel = clockLabel(class.EndTime)
}

// clockLabel renders "14:30" as "2:30 PM".
func clockLabel(s string) string {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return s
	}
	return t.Format("3:04 PM")
}

func (s *scheduleService) GetClasses() ([]models.ClassSchedule, error) {
	classes, err := s.scheduleRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load class schedule: %w", err)
	}
	for i := range classes {
		decorateClass(&classes[i])
	}
	return classes, nil
}

func (s *scheduleService) CreateClass(req CreateClassRequest) (*models.ClassSchedule, error) {
	if utils.IsEmpty(req.ClassName) || utils.IsEmpty(req.InstructorName) {
		return nil, fmt.Errorf("%w: class name and instructor are required", ErrValidation)
	}
	if req.DayOfWeek < 1 || req.DayOfWeek > 7 {
		return nil, fmt.Errorf("%w: day of week must be 1 (Monday) through 7 (Sunday)", ErrValidation)
	}
	if err := ValidateClassTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	conflict, err := s.scheduleRepo.HasOverlap(req.DayOfWeek, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to check schedule conflicts: %w", err)
	}
	if conflict {
		return nil, ErrScheduleConflict
	}

	class := &models.ClassSchedule{
		ClassName:      req.ClassName,
		InstructorName: req.InstructorName,
		DayOfWeek:      req.DayOfWeek,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Description:    utils.NewNullString(req.Description),
		Location:       utils.NewNullString(req.Location),
	}
	if _, err := s.scheduleRepo.Create(s.db, class); err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}
	decorateClass(class)
	return class, nil
}

func (s *scheduleService) DeleteClass(id int64) error {
	if err := s.scheduleRepo.Delete(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClassNotFound
		}
		return fmt.Errorf("failed to delete class: %w", err)
	}
	return nil
}
