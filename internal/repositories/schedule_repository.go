package repositories

import (
	"database/sql"
	"fmt"

	"fitnesshub_backend/internal/models"
)

// ScheduleRepository defines the interface for the weekly class schedule.
type ScheduleRepository interface {
	Create(executor SQLExecutor, class *models.ClassSchedule) (int64, error)
	// GetAll returns every class ordered by weekday and start time.
	GetAll() ([]models.ClassSchedule, error)
	// HasOverlap reports whether any class on the same weekday overlaps the
	// [start, end) window.
	HasOverlap(dayOfWeek int, startTime, endTime string) (bool, error)
	Delete(executor SQLExecutor, id int64) error
}

type scheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new instance of ScheduleRepository.
func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(executor SQLExecutor, class *models.ClassSchedule) (int64, error) {
	query := `INSERT INTO class_schedules (class_name, instructor_name, day_of_week, start_time, end_time, description, location)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	err := executor.QueryRow(query,
		class.ClassName, class.InstructorName, class.DayOfWeek,
		class.StartTime, class.EndTime, class.Description, class.Location,
	).Scan(&class.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating class: %v", ErrDatabaseError, err)
	}
	return class.ID, nil
}

func (r *scheduleRepository) GetAll() ([]models.ClassSchedule, error) {
	query := `SELECT id, class_name, instructor_name, day_of_week,
	              to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	              description, location
	          FROM class_schedules
	          ORDER BY day_of_week, start_time`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying class schedules: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	classes := []models.ClassSchedule{}
	for rows.Next() {
		class := models.ClassSchedule{}
		if err := rows.Scan(
			&class.ID, &class.ClassName, &class.InstructorName, &class.DayOfWeek,
			&class.StartTime, &class.EndTime, &class.Description, &class.Location,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning class schedule: %v", ErrDatabaseError, err)
		}
		classes = append(classes, class)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating class schedules: %v", ErrDatabaseError, err)
	}
	return classes, nil
}

// HasOverlap uses the half-open interval test: an existing class conflicts
// when it starts before the new end and ends after the new start.
func (r *scheduleRepository) HasOverlap(dayOfWeek int, startTime, endTime string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
	            SELECT 1 FROM class_schedules
	            WHERE day_of_week = $1 AND start_time < $3::time AND end_time > $2::time
	          )`
	if err := r.db.QueryRow(query, dayOfWeek, startTime, endTime).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: checking schedule overlap: %v", ErrDatabaseError, err)
	}
	return exists, nil
}

func (r *scheduleRepository) Delete(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM class_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting class %d: %v", ErrDatabaseError, id, err)
	}
	return checkAffected(result, id)
}
