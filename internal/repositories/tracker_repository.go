package repositories

import (
	"database/sql"
	"fmt"

	"fitnesshub_backend/internal/models"
)

// TrackerRepository defines the interface for the occupancy/settings
// singleton row.
type TrackerRepository interface {
	// GetOrCreate returns the singleton, inserting it with defaults on first
	// use.
	GetOrCreate(executor SQLExecutor) (*models.OccupancyTracker, error)
	UpdateSettings(executor SQLExecutor, tracker *models.OccupancyTracker) error
	// IncrementCount bumps the live headcount server-side.
	IncrementCount(executor SQLExecutor) (int, error)
	// DecrementCount lowers the headcount, floored at zero.
	DecrementCount(executor SQLExecutor) (int, error)
}

type trackerRepository struct {
	db *sql.DB
}

// NewTrackerRepository creates a new instance of TrackerRepository.
func NewTrackerRepository(db *sql.DB) TrackerRepository {
	return &trackerRepository{db: db}
}

const trackerColumns = `id, current_count, capacity_limit, peak_hours_start, peak_hours_end,
	gym_name, contact_number, contact_address, default_monthly_fee, member_id_prefix, last_updated`

func scanTracker(s scanner) (*models.OccupancyTracker, error) {
	tracker := &models.OccupancyTracker{}
	err := s.Scan(
		&tracker.ID, &tracker.CurrentCount, &tracker.CapacityLimit,
		&tracker.PeakHoursStart, &tracker.PeakHoursEnd, &tracker.GymName,
		&tracker.ContactNumber, &tracker.ContactAddress,
		&tracker.DefaultMonthlyFee, &tracker.MemberIDPrefix, &tracker.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return tracker, nil
}

// GetOrCreate inserts the singleton with column defaults if it is missing,
// then reads it back.
func (r *trackerRepository) GetOrCreate(executor SQLExecutor) (*models.OccupancyTracker, error) {
	insert := `INSERT INTO occupancy_tracker (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`
	if _, err := executor.Exec(insert, models.TrackerSingletonID); err != nil {
		return nil, fmt.Errorf("%w: seeding occupancy tracker: %v", ErrDatabaseError, err)
	}

	query := `SELECT ` + trackerColumns + ` FROM occupancy_tracker WHERE id = $1`
	tracker, err := scanTracker(executor.QueryRow(query, models.TrackerSingletonID))
	if err != nil {
		return nil, fmt.Errorf("%w: getting occupancy tracker: %v", ErrDatabaseError, err)
	}
	return tracker, nil
}

// UpdateSettings writes the gym-wide configuration fields. The live
// headcount is not touched here.
func (r *trackerRepository) UpdateSettings(executor SQLExecutor, tracker *models.OccupancyTracker) error {
	query := `UPDATE occupancy_tracker SET
	            capacity_limit = $1, peak_hours_start = $2, peak_hours_end = $3,
	            gym_name = $4, contact_number = $5, contact_address = $6,
	            default_monthly_fee = $7, member_id_prefix = $8, last_updated = NOW()
	          WHERE id = $9`

	result, err := executor.Exec(query,
		tracker.CapacityLimit, tracker.PeakHoursStart, tracker.PeakHoursEnd,
		tracker.GymName, tracker.ContactNumber, tracker.ContactAddress,
		tracker.DefaultMonthlyFee, tracker.MemberIDPrefix, models.TrackerSingletonID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating settings: %v", ErrDatabaseError, err)
	}
	return checkAffected(result, models.TrackerSingletonID)
}

func (r *trackerRepository) IncrementCount(executor SQLExecutor) (int, error) {
	var count int
	query := `UPDATE occupancy_tracker
	          SET current_count = current_count + 1, last_updated = NOW()
	          WHERE id = $1
	          RETURNING current_count`
	if err := executor.QueryRow(query, models.TrackerSingletonID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: incrementing occupancy: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// DecrementCount floors at zero so a stray checkout cannot push the
// headcount negative.
func (r *trackerRepository) DecrementCount(executor SQLExecutor) (int, error) {
	var count int
	query := `UPDATE occupancy_tracker
	          SET current_count = GREATEST(current_count - 1, 0), last_updated = NOW()
	          WHERE id = $1
	          RETURNING current_count`
	if err := executor.QueryRow(query, models.TrackerSingletonID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: decrementing occupancy: %v", ErrDatabaseError, err)
	}
	return count, nil
}
