package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"fitnesshub_backend/internal/models"

	"github.com/lib/pq"
)

// StaffRepository defines the interface for staff-profile operations.
type StaffRepository interface {
	CreateStaffProfile(executor SQLExecutor, profile *models.StaffProfile) (int64, error)
	GetStaffProfileByUserID(userID int64) (*models.StaffProfile, error)
	// GetAllStaffProfileIDs returns every staff profile ID, used by the
	// notification fan-out.
	GetAllStaffProfileIDs() ([]int64, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

// CreateStaffProfile inserts a staff profile for an existing staff user.
func (r *staffRepository) CreateStaffProfile(executor SQLExecutor, profile *models.StaffProfile) (int64, error) {
	query := `INSERT INTO staff_profiles (user_id, position) VALUES ($1, $2) RETURNING id`
	err := executor.QueryRow(query, profile.UserID, profile.Position).Scan(&profile.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating staff profile: %v", ErrDatabaseError, err)
	}
	return profile.ID, nil
}

// GetStaffProfileByUserID retrieves the staff profile owned by a user.
func (r *staffRepository) GetStaffProfileByUserID(userID int64) (*models.StaffProfile, error) {
	profile := &models.StaffProfile{}
	query := `SELECT id, user_id, position FROM staff_profiles WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&profile.ID, &profile.UserID, &profile.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting staff profile for user %d: %v", ErrDatabaseError, userID, err)
	}
	return profile, nil
}

// GetAllStaffProfileIDs lists every staff profile ID.
func (r *staffRepository) GetAllStaffProfileIDs() ([]int64, error) {
	rows, err := r.db.Query(`SELECT id FROM staff_profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying staff profiles: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning staff profile ID: %v", ErrDatabaseError, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating staff profiles: %v", ErrDatabaseError, err)
	}
	return ids, nil
}
