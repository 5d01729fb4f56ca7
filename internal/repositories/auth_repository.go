package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"fitnesshub_backend/internal/models"

	"github.com/lib/pq"
)

// AuthRepository defines the interface for identity (users table) operations.
type AuthRepository interface {
	CreateUser(executor SQLExecutor, user *models.User, passwordHash string) (int64, error)
	FindUserByID(id int64) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	GetPasswordHash(userID int64) (string, error)
	// OverwriteRegistration replaces the identity fields and credential of an
	// existing account. Used by the re-registration-over-rejection path.
	OverwriteRegistration(executor SQLExecutor, user *models.User, passwordHash string) error
	UpdatePassword(executor SQLExecutor, userID int64, passwordHash string) error
	SetUserActive(executor SQLExecutor, userID int64, active bool) error
	UpdateUserDetails(executor SQLExecutor, user *models.User) error
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, contact_number,
	emergency_contact_name, emergency_contact_number, medical_conditions,
	fitness_goals, is_active, is_staff, date_joined`

func scanUser(s scanner) (*models.User, error) {
	user := &models.User{}
	err := s.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.ContactNumber,
		&user.EmergencyContactName, &user.EmergencyContactNumber, &user.MedicalConditions,
		&user.FitnessGoals, &user.IsActive, &user.IsStaff, &user.DateJoined,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser inserts a new user row. The account starts inactive unless the
// caller sets IsActive beforehand.
func (r *authRepository) CreateUser(executor SQLExecutor, user *models.User, passwordHash string) (int64, error) {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, contact_number,
	              emergency_contact_name, emergency_contact_number, medical_conditions,
	              fitness_goals, is_active, is_staff)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, date_joined`

	err := executor.QueryRow(query,
		user.Email, passwordHash, user.FirstName, user.LastName, user.ContactNumber,
		user.EmergencyContactName, user.EmergencyContactNumber, user.MedicalConditions,
		user.FitnessGoals, user.IsActive, user.IsStaff,
	).Scan(&user.ID, &user.DateJoined)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

// FindUserByID retrieves a user by primary key.
func (r *authRepository) FindUserByID(id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by ID %d: %v", ErrDatabaseError, id, err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by email (case-insensitive).
func (r *authRepository) FindUserByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	user, err := scanUser(r.db.QueryRow(query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user by email: %v", ErrDatabaseError, err)
	}
	return user, nil
}

// GetPasswordHash fetches the stored credential for password checks.
func (r *authRepository) GetPasswordHash(userID int64) (string, error) {
	var hash string
	err := r.db.QueryRow(`SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: getting password hash for user %d: %v", ErrDatabaseError, userID, err)
	}
	return hash, nil
}

// OverwriteRegistration resets an account with a fresh submission. The row
// keeps its ID so profile and ledger references survive.
func (r *authRepository) OverwriteRegistration(executor SQLExecutor, user *models.User, passwordHash string) error {
	query := `UPDATE users SET
	            password_hash = $1, first_name = $2, last_name = $3, contact_number = $4,
	            emergency_contact_name = $5, emergency_contact_number = $6,
	            medical_conditions = $7, fitness_goals = $8, is_active = FALSE,
	            date_joined = NOW()
	          WHERE id = $9`

	result, err := executor.Exec(query,
		passwordHash, user.FirstName, user.LastName, user.ContactNumber,
		user.EmergencyContactName, user.EmergencyContactNumber,
		user.MedicalConditions, user.FitnessGoals, user.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: overwriting registration for user %d: %v", ErrDatabaseError, user.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for user %d: %v", ErrDatabaseError, user.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored credential.
func (r *authRepository) UpdatePassword(executor SQLExecutor, userID int64, passwordHash string) error {
	result, err := executor.Exec(`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("%w: updating password for user %d: %v", ErrDatabaseError, userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for user %d: %v", ErrDatabaseError, userID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetUserActive flips the active flag.
func (r *authRepository) SetUserActive(executor SQLExecutor, userID int64, active bool) error {
	result, err := executor.Exec(`UPDATE users SET is_active = $1 WHERE id = $2`, active, userID)
	if err != nil {
		return fmt.Errorf("%w: setting active=%t for user %d: %v", ErrDatabaseError, active, userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for user %d: %v", ErrDatabaseError, userID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUserDetails writes the editable profile fields (names, contact,
// emergency contacts, medical conditions, fitness goals).
func (r *authRepository) UpdateUserDetails(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET
	            first_name = $1, last_name = $2, contact_number = $3,
	            emergency_contact_name = $4, emergency_contact_number = $5,
	            medical_conditions = $6, fitness_goals = $7
	          WHERE id = $8`

	result, err := executor.Exec(query,
		user.FirstName, user.LastName, user.ContactNumber,
		user.EmergencyContactName, user.EmergencyContactNumber,
		user.MedicalConditions, user.FitnessGoals, user.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating details for user %d: %v", ErrDatabaseError, user.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for user %d: %v", ErrDatabaseError, user.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
