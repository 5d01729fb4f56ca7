package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitnesshub_backend/internal/models"

	"github.com/lib/pq"
)

// CheckinRepository defines the interface for gym visits and the derived
// activity log.
type CheckinRepository interface {
	// CreateOpen starts a visit. The one-open-per-member index turns a
	// concurrent double check-in into ErrDuplicateKey.
	CreateOpen(executor SQLExecutor, memberID int64) (*models.CheckIn, error)
	GetOpenByMember(executor SQLExecutor, memberID int64) (*models.CheckIn, error)
	// CloseCheckIn stamps the checkout time and returns the closed row.
	CloseCheckIn(executor SQLExecutor, checkInID int64) (*models.CheckIn, error)
	GetHistoryByMember(memberID int64, limit int) ([]models.CheckIn, error)
	// CountDistinctDaysInMonth counts days with at least one visit, for the
	// member dashboard attendance KPI.
	CountDistinctDaysInMonth(memberID int64, year int, month time.Month) (int, error)
	CountByMember(memberID int64) (int, error)
	CreateActivityLog(executor SQLExecutor, log *models.ActivityLog) (int64, error)
	GetActivityLogsSince(memberID int64, since time.Time) ([]models.ActivityLog, error)
}

type checkinRepository struct {
	db *sql.DB
}

// NewCheckinRepository creates a new instance of CheckinRepository.
func NewCheckinRepository(db *sql.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) CreateOpen(executor SQLExecutor, memberID int64) (*models.CheckIn, error) {
	checkIn := &models.CheckIn{MemberID: memberID}
	query := `INSERT INTO check_ins (member_id) VALUES ($1) RETURNING id, check_in_time`
	err := executor.QueryRow(query, memberID).Scan(&checkIn.ID, &checkIn.CheckInTime)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: creating check-in: %v", ErrDatabaseError, err)
	}
	return checkIn, nil
}

// GetOpenByMember returns the member's open visit, locked for the checkout
// transaction.
func (r *checkinRepository) GetOpenByMember(executor SQLExecutor, memberID int64) (*models.CheckIn, error) {
	checkIn := &models.CheckIn{}
	query := `SELECT id, member_id, check_in_time FROM check_ins
	          WHERE member_id = $1 AND check_out_time IS NULL
	          FOR UPDATE`
	err := executor.QueryRow(query, memberID).Scan(&checkIn.ID, &checkIn.MemberID, &checkIn.CheckInTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting open check-in for member %d: %v", ErrDatabaseError, memberID, err)
	}
	return checkIn, nil
}

func (r *checkinRepository) CloseCheckIn(executor SQLExecutor, checkInID int64) (*models.CheckIn, error) {
	checkIn := &models.CheckIn{}
	var checkOut time.Time
	query := `UPDATE check_ins SET check_out_time = NOW()
	          WHERE id = $1 AND check_out_time IS NULL
	          RETURNING id, member_id, check_in_time, check_out_time`
	err := executor.QueryRow(query, checkInID).Scan(
		&checkIn.ID, &checkIn.MemberID, &checkIn.CheckInTime, &checkOut,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: closing check-in %d: %v", ErrDatabaseError, checkInID, err)
	}
	checkIn.CheckOutTime = &checkOut
	return checkIn, nil
}

// GetHistoryByMember returns the member's visits newest-first.
func (r *checkinRepository) GetHistoryByMember(memberID int64, limit int) ([]models.CheckIn, error) {
	query := `SELECT id, member_id, check_in_time, check_out_time FROM check_ins
	          WHERE member_id = $1
	          ORDER BY check_in_time DESC
	          LIMIT $2`

	rows, err := r.db.Query(query, memberID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying check-in history for member %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	checkIns := []models.CheckIn{}
	for rows.Next() {
		checkIn := models.CheckIn{}
		var checkOut sql.NullTime
		if err := rows.Scan(&checkIn.ID, &checkIn.MemberID, &checkIn.CheckInTime, &checkOut); err != nil {
			return nil, fmt.Errorf("%w: scanning check-in: %v", ErrDatabaseError, err)
		}
		if checkOut.Valid {
			t := checkOut.Time
			checkIn.CheckOutTime = &t
		}
		checkIns = append(checkIns, checkIn)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating check-ins: %v", ErrDatabaseError, err)
	}
	return checkIns, nil
}

func (r *checkinRepository) CountDistinctDaysInMonth(memberID int64, year int, month time.Month) (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT check_in_time::date) FROM check_ins
	          WHERE member_id = $1
	            AND EXTRACT(YEAR FROM check_in_time) = $2
	            AND EXTRACT(MONTH FROM check_in_time) = $3`
	if err := r.db.QueryRow(query, memberID, year, int(month)).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting visit days for member %d: %v", ErrDatabaseError, memberID, err)
	}
	return count, nil
}

func (r *checkinRepository) CountByMember(memberID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM check_ins WHERE member_id = $1`
	if err := r.db.QueryRow(query, memberID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting check-ins for member %d: %v", ErrDatabaseError, memberID, err)
	}
	return count, nil
}

// CreateActivityLog writes the derived attendance row at checkout.
func (r *checkinRepository) CreateActivityLog(executor SQLExecutor, log *models.ActivityLog) (int64, error) {
	query := `INSERT INTO activity_logs (member_id, activity_date, duration_minutes)
	          VALUES ($1, $2, $3)
	          RETURNING id`
	err := executor.QueryRow(query, log.MemberID, log.ActivityDate, log.DurationMinutes).Scan(&log.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating activity log: %v", ErrDatabaseError, err)
	}
	return log.ID, nil
}

// GetActivityLogsSince returns attendance rows on or after a date, oldest
// first, for the member dashboard activity chart.
func (r *checkinRepository) GetActivityLogsSince(memberID int64, since time.Time) ([]models.ActivityLog, error) {
	query := `SELECT id, member_id, activity_date, duration_minutes FROM activity_logs
	          WHERE member_id = $1 AND activity_date >= $2
	          ORDER BY activity_date`

	rows, err := r.db.Query(query, memberID, since)
	if err != nil {
		return nil, fmt.Errorf("%w: querying activity logs for member %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	logs := []models.ActivityLog{}
	for rows.Next() {
		log := models.ActivityLog{}
		if err := rows.Scan(&log.ID, &log.MemberID, &log.ActivityDate, &log.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: scanning activity log: %v", ErrDatabaseError, err)
		}
		logs = append(logs, log)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating activity logs: %v", ErrDatabaseError, err)
	}
	return logs, nil
}
