package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"fitnesshub_backend/internal/models"

	"github.com/lib/pq"
)

// RequestRepository defines the interface for freeze/unfreeze account requests.
type RequestRepository interface {
	// Create inserts a PENDING request. A partial unique index allows at most
	// one pending request per member, so a concurrent duplicate surfaces as
	// ErrDuplicateKey.
	Create(executor SQLExecutor, request *models.AccountRequest) (int64, error)
	// CreateDecided inserts an already-decided audit row, used by manual
	// staff freezes and unfreezes.
	CreateDecided(executor SQLExecutor, request *models.AccountRequest) (int64, error)
	GetPendingByMember(memberID int64) (*models.AccountRequest, error)
	// GetPendingByID locks the pending request row for the decision
	// transaction.
	GetPendingByID(executor SQLExecutor, id int64) (*models.AccountRequest, error)
	// Decide marks a pending request approved or rejected. Returns
	// ErrNotFound if the request is no longer pending.
	Decide(executor SQLExecutor, id int64, status string, staffID int64, decisionReason *string) error
	CountPending() (int, error)
	GetPendingAll() ([]models.AccountRequest, error)
}

type requestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a new instance of RequestRepository.
func NewRequestRepository(db *sql.DB) RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, member_id, staff_reviewer_id, request_type, status,
	reason, staff_decision_reason, request_date, decision_date`

func scanRequest(s scanner, extras ...interface{}) (*models.AccountRequest, error) {
	request := &models.AccountRequest{}
	dest := []interface{}{
		&request.ID, &request.MemberID, &request.StaffReviewerID, &request.RequestType,
		&request.Status, &request.Reason, &request.StaffDecisionReason,
		&request.RequestDate, &request.DecisionDate,
	}
	dest = append(dest, extras...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	return request, nil
}

func (r *requestRepository) Create(executor SQLExecutor, request *models.AccountRequest) (int64, error) {
	query := `INSERT INTO account_requests (member_id, request_type, reason, status)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, request_date`

	err := executor.QueryRow(query,
		request.MemberID, request.RequestType, request.Reason, models.RequestStatusPending,
	).Scan(&request.ID, &request.RequestDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating account request: %v", ErrDatabaseError, err)
	}
	request.Status = models.RequestStatusPending
	return request.ID, nil
}

// CreateDecided writes a request that was decided at creation time, so the
// one-pending-per-member index never sees it.
func (r *requestRepository) CreateDecided(executor SQLExecutor, request *models.AccountRequest) (int64, error) {
	query := `INSERT INTO account_requests
	              (member_id, staff_reviewer_id, request_type, status, reason,
	               staff_decision_reason, decision_date)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW())
	          RETURNING id, request_date, decision_date`

	err := executor.QueryRow(query,
		request.MemberID, request.StaffReviewerID, request.RequestType,
		request.Status, request.Reason, request.StaffDecisionReason,
	).Scan(&request.ID, &request.RequestDate, &request.DecisionDate)
	if err != nil {
		return 0, fmt.Errorf("%w: creating decided request: %v", ErrDatabaseError, err)
	}
	return request.ID, nil
}

// GetPendingByMember returns the member's open request, if any.
func (r *requestRepository) GetPendingByMember(memberID int64) (*models.AccountRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM account_requests
	          WHERE member_id = $1 AND status = $2`
	request, err := scanRequest(r.db.QueryRow(query, memberID, models.RequestStatusPending))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting pending request for member %d: %v", ErrDatabaseError, memberID, err)
	}
	return request, nil
}

func (r *requestRepository) GetPendingByID(executor SQLExecutor, id int64) (*models.AccountRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM account_requests
	          WHERE id = $1 AND status = $2
	          FOR UPDATE`
	request, err := scanRequest(executor.QueryRow(query, id, models.RequestStatusPending))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting pending request %d: %v", ErrDatabaseError, id, err)
	}
	return request, nil
}

func (r *requestRepository) Decide(executor SQLExecutor, id int64, status string, staffID int64, decisionReason *string) error {
	query := `UPDATE account_requests
	          SET status = $1, staff_reviewer_id = $2, staff_decision_reason = $3, decision_date = NOW()
	          WHERE id = $4 AND status = $5`

	result, err := executor.Exec(query, status, staffID, decisionReason, id, models.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("%w: deciding request %d: %v", ErrDatabaseError, id, err)
	}
	return checkAffected(result, id)
}

func (r *requestRepository) CountPending() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM account_requests WHERE status = $1`
	if err := r.db.QueryRow(query, models.RequestStatusPending).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting pending requests: %v", ErrDatabaseError, err)
	}
	return count, nil
}

// GetPendingAll lists pending requests with member identity, oldest first.
func (r *requestRepository) GetPendingAll() ([]models.AccountRequest, error) {
	query := `SELECT ar.id, ar.member_id, ar.staff_reviewer_id, ar.request_type, ar.status,
	              ar.reason, ar.staff_decision_reason, ar.request_date, ar.decision_date,
	              u.first_name || ' ' || u.last_name, u.email
	          FROM account_requests ar
	          JOIN member_profiles mp ON mp.id = ar.member_id
	          JOIN users u ON u.id = mp.user_id
	          WHERE ar.status = $1
	          ORDER BY ar.request_date`

	rows, err := r.db.Query(query, models.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("%w: querying pending requests: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	requests := []models.AccountRequest{}
	for rows.Next() {
		var memberName, memberEmail string
		request, err := scanRequest(rows, &memberName, &memberEmail)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning pending request: %v", ErrDatabaseError, err)
		}
		request.MemberName = &memberName
		request.MemberEmail = &memberEmail
		requests = append(requests, *request)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating pending requests: %v", ErrDatabaseError, err)
	}
	return requests, nil
}
