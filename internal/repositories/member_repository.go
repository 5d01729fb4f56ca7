package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitnesshub_backend/internal/models"

	"github.com/lib/pq"
)

// MemberRepository defines the interface for member-profile operations,
// including the membership-ID sequence and the staff dashboard lists.
type MemberRepository interface {
	CreateProfile(executor SQLExecutor, profile *models.MemberProfile) (int64, error)
	GetProfileByID(id int64) (*models.MemberProfile, error)
	GetProfileByUserID(userID int64) (*models.MemberProfile, error)
	SetActivationStatus(executor SQLExecutor, profileID int64, status string) error
	// ActivateProfile applies the activation state in one statement. The
	// membership ID is only assigned when the profile does not already
	// carry one.
	ActivateProfile(executor SQLExecutor, profileID int64, balance float64, nextDueDate time.Time, membershipID string) error
	// ApplyPayment decrements the balance server-side so concurrent staff
	// sessions cannot lose updates.
	ApplyPayment(executor SQLExecutor, profileID int64, amount float64) error
	SetFrozen(executor SQLExecutor, profileID int64, daysRemaining int) error
	SetUnfrozen(executor SQLExecutor, profileID int64, nextDueDate time.Time) error
	// NextMembershipSeq atomically bumps and returns the per-(prefix, year)
	// sequence counter.
	NextMembershipSeq(executor SQLExecutor, prefix string, year int) (int, error)

	CountActiveMembers() (int, error)
	GetActiveMembers(searchTerm *string) ([]models.MemberListEntry, error)
	GetPendingMembers() ([]models.MemberProfile, error)
	GetFrozenMembers() ([]models.MemberListEntry, error)
}

type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new instance of MemberRepository.
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

const profileColumns = `mp.id, mp.user_id, mp.balance, mp.next_due_date, mp.is_frozen,
	mp.days_remaining_on_freeze, mp.membership_id, mp.activation_status`

func scanProfile(s scanner) (*models.MemberProfile, error) {
	profile := &models.MemberProfile{}
	var nextDue sql.NullTime
	err := s.Scan(
		&profile.ID, &profile.UserID, &profile.Balance, &nextDue, &profile.IsFrozen,
		&profile.DaysRemainingOnFreeze, &profile.MembershipID, &profile.ActivationStatus,
	)
	if err != nil {
		return nil, err
	}
	if nextDue.Valid {
		profile.NextDueDate = &nextDue.Time
	}
	return profile, nil
}

// CreateProfile inserts a fresh pending profile for a registered user.
func (r *memberRepository) CreateProfile(executor SQLExecutor, profile *models.MemberProfile) (int64, error) {
	if profile.ActivationStatus == "" {
		profile.ActivationStatus = models.ActivationPending
	}
	query := `INSERT INTO member_profiles (user_id, balance, activation_status)
	          VALUES ($1, $2, $3)
	          RETURNING id`

	err := executor.QueryRow(query, profile.UserID, profile.Balance, profile.ActivationStatus).Scan(&profile.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating member profile: %v", ErrDatabaseError, err)
	}
	return profile.ID, nil
}

// GetProfileByID retrieves a member profile by primary key.
func (r *memberRepository) GetProfileByID(id int64) (*models.MemberProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM member_profiles mp WHERE mp.id = $1`
	profile, err := scanProfile(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member profile %d: %v", ErrDatabaseError, id, err)
	}
	return profile, nil
}

// GetProfileByUserID retrieves a member profile by the owning user's ID.
func (r *memberRepository) GetProfileByUserID(userID int64) (*models.MemberProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM member_profiles mp WHERE mp.user_id = $1`
	profile, err := scanProfile(r.db.QueryRow(query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting member profile for user %d: %v", ErrDatabaseError, userID, err)
	}
	return profile, nil
}

// SetActivationStatus updates only the activation status.
func (r *memberRepository) SetActivationStatus(executor SQLExecutor, profileID int64, status string) error {
	result, err := executor.Exec(`UPDATE member_profiles SET activation_status = $1 WHERE id = $2`, status, profileID)
	if err != nil {
		return fmt.Errorf("%w: setting activation status for profile %d: %v", ErrDatabaseError, profileID, err)
	}
	return checkAffected(result, profileID)
}

// ActivateProfile writes balance, due date and (first-time only) the
// membership ID, and marks the profile approved and unfrozen. The update is
// conditional on the profile not already being approved, so the activation
// that loses a race sees zero rows affected (ErrNotFound) instead of
// double-posting the ledger.
func (r *memberRepository) ActivateProfile(executor SQLExecutor, profileID int64, balance float64, nextDueDate time.Time, membershipID string) error {
	query := `UPDATE member_profiles SET
	            balance = $1,
	            next_due_date = $2,
	            is_frozen = FALSE,
	            days_remaining_on_freeze = NULL,
	            membership_id = COALESCE(membership_id, $3),
	            activation_status = $4
	          WHERE id = $5 AND activation_status <> $4`

	result, err := executor.Exec(query, balance, nextDueDate, membershipID, models.ActivationApproved, profileID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: activating profile %d: %v", ErrDatabaseError, profileID, err)
	}
	return checkAffected(result, profileID)
}

// ApplyPayment decrements the debt balance by amount.
func (r *memberRepository) ApplyPayment(executor SQLExecutor, profileID int64, amount float64) error {
	result, err := executor.Exec(`UPDATE member_profiles SET balance = balance - $1 WHERE id = $2`, amount, profileID)
	if err != nil {
		return fmt.Errorf("%w: applying payment to profile %d: %v", ErrDatabaseError, profileID, err)
	}
	return checkAffected(result, profileID)
}

// SetFrozen pauses the membership, banking the remaining paid days. The
// is_frozen predicate makes the update a no-op (ErrNotFound) when another
// session froze the profile first.
func (r *memberRepository) SetFrozen(executor SQLExecutor, profileID int64, daysRemaining int) error {
	query := `UPDATE member_profiles SET
	            is_frozen = TRUE, days_remaining_on_freeze = $1, next_due_date = NULL
	          WHERE id = $2 AND is_frozen = FALSE`
	result, err := executor.Exec(query, daysRemaining, profileID)
	if err != nil {
		return fmt.Errorf("%w: freezing profile %d: %v", ErrDatabaseError, profileID, err)
	}
	return checkAffected(result, profileID)
}

// SetUnfrozen resumes the membership with a recomputed due date. Only a
// currently frozen row is touched.
func (r *memberRepository) SetUnfrozen(executor SQLExecutor, profileID int64, nextDueDate time.Time) error {
	query := `UPDATE member_profiles SET
	            is_frozen = FALSE, days_remaining_on_freeze = NULL, next_due_date = $1
	          WHERE id = $2 AND is_frozen = TRUE`
	result, err := executor.Exec(query, nextDueDate, profileID)
	if err != nil {
		return fmt.Errorf("%w: unfreezing profile %d: %v", ErrDatabaseError, profileID, err)
	}
	return checkAffected(result, profileID)
}

// NextMembershipSeq bumps the (prefix, year) counter and returns the new
// value. The upsert serializes concurrent activations on the counter row.
func (r *memberRepository) NextMembershipSeq(executor SQLExecutor, prefix string, year int) (int, error) {
	query := `INSERT INTO membership_sequences (prefix, year, last_seq)
	          VALUES ($1, $2, 1)
	          ON CONFLICT (prefix, year)
	          DO UPDATE SET last_seq = membership_sequences.last_seq + 1
	          RETURNING last_seq`

	var seq int
	if err := executor.QueryRow(query, prefix, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: bumping membership sequence %s-%d: %v", ErrDatabaseError, prefix, year, err)
	}
	return seq, nil
}

// CountActiveMembers counts active, non-frozen members.
func (r *memberRepository) CountActiveMembers() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM member_profiles mp
	          JOIN users u ON u.id = mp.user_id
	          WHERE u.is_active = TRUE AND mp.is_frozen = FALSE`
	if err := r.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting active members: %v", ErrDatabaseError, err)
	}
	return count, nil
}

const memberListColumns = profileColumns + `, ` + `u.id, u.email, u.first_name, u.last_name,
	u.contact_number, u.emergency_contact_name, u.emergency_contact_number,
	u.medical_conditions, u.fitness_goals, u.is_active, u.is_staff, u.date_joined`

func scanProfileWithUser(s scanner, extras ...interface{}) (*models.MemberProfile, error) {
	profile := &models.MemberProfile{}
	user := &models.User{}
	var nextDue sql.NullTime
	dest := []interface{}{
		&profile.ID, &profile.UserID, &profile.Balance, &nextDue, &profile.IsFrozen,
		&profile.DaysRemainingOnFreeze, &profile.MembershipID, &profile.ActivationStatus,
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.ContactNumber, &user.EmergencyContactName, &user.EmergencyContactNumber,
		&user.MedicalConditions, &user.FitnessGoals, &user.IsActive, &user.IsStaff, &user.DateJoined,
	}
	dest = append(dest, extras...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	if nextDue.Valid {
		profile.NextDueDate = &nextDue.Time
	}
	profile.User = user
	return profile, nil
}

// GetActiveMembers lists active, non-frozen members with their latest
// check-in, optionally filtered by name, email or membership ID.
func (r *memberRepository) GetActiveMembers(searchTerm *string) ([]models.MemberListEntry, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + memberListColumns + `, ci.check_in_time, ci.check_out_time
	    FROM member_profiles mp
	    JOIN users u ON u.id = mp.user_id
	    LEFT JOIN LATERAL (
	        SELECT check_in_time, check_out_time FROM check_ins
	        WHERE member_id = mp.id ORDER BY check_in_time DESC LIMIT 1
	    ) ci ON TRUE
	    WHERE u.is_active = TRUE AND mp.is_frozen = FALSE`)

	var args []interface{}
	if searchTerm != nil && *searchTerm != "" {
		pattern := "%" + strings.ToLower(*searchTerm) + "%"
		queryBuilder.WriteString(` AND (LOWER(u.first_name) LIKE $1 OR LOWER(u.last_name) LIKE $1
		    OR LOWER(u.email) LIKE $1 OR LOWER(COALESCE(mp.membership_id, '')) LIKE $1)`)
		args = append(args, pattern)
	}
	queryBuilder.WriteString(` ORDER BY u.last_name, u.first_name`)

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying active members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	entries := []models.MemberListEntry{}
	for rows.Next() {
		var lastIn, lastOut sql.NullTime
		profile, err := scanProfileWithUser(rows, &lastIn, &lastOut)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning active member: %v", ErrDatabaseError, err)
		}
		entry := models.MemberListEntry{Member: *profile}
		if lastIn.Valid {
			t := lastIn.Time
			entry.LastCheckInTime = &t
			entry.IsCheckedIn = !lastOut.Valid
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating active members: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

// GetPendingMembers lists profiles whose accounts await activation.
// Rejected applicants stay out of the approval queue.
func (r *memberRepository) GetPendingMembers() ([]models.MemberProfile, error) {
	query := `SELECT ` + memberListColumns + `
	          FROM member_profiles mp
	          JOIN users u ON u.id = mp.user_id
	          WHERE u.is_active = FALSE AND u.is_staff = FALSE
	            AND mp.activation_status = $1
	          ORDER BY u.date_joined DESC`

	rows, err := r.db.Query(query, models.ActivationPending)
	if err != nil {
		return nil, fmt.Errorf("%w: querying pending members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	profiles := []models.MemberProfile{}
	for rows.Next() {
		profile, err := scanProfileWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning pending member: %v", ErrDatabaseError, err)
		}
		profiles = append(profiles, *profile)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating pending members: %v", ErrDatabaseError, err)
	}
	return profiles, nil
}

// GetFrozenMembers lists frozen members with their latest check-in time.
func (r *memberRepository) GetFrozenMembers() ([]models.MemberListEntry, error) {
	query := `SELECT ` + memberListColumns + `, ci.check_in_time
	    FROM member_profiles mp
	    JOIN users u ON u.id = mp.user_id
	    LEFT JOIN LATERAL (
	        SELECT check_in_time FROM check_ins
	        WHERE member_id = mp.id ORDER BY check_in_time DESC LIMIT 1
	    ) ci ON TRUE
	    WHERE mp.is_frozen = TRUE
	    ORDER BY u.last_name, u.first_name`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying frozen members: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	entries := []models.MemberListEntry{}
	for rows.Next() {
		var lastIn sql.NullTime
		profile, err := scanProfileWithUser(rows, &lastIn)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning frozen member: %v", ErrDatabaseError, err)
		}
		entry := models.MemberListEntry{Member: *profile}
		if lastIn.Valid {
			t := lastIn.Time
			entry.LastCheckInTime = &t
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating frozen members: %v", ErrDatabaseError, err)
	}
	return entries, nil
}

// checkAffected maps zero-row updates to ErrNotFound.
func checkAffected(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
