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
	ErrRequestNotFound = errors.New("pending request not found")
	ErrInvalidAction   = errors.New("action must be approve or reject")
)

// Process-request actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

type SubmitRequestRequest struct {
	RequestType string `json:"request_type" binding:"required"`
	Reason      string `json:"reason"`
}

// SubmitResult reports either the created request or the informational
// message explaining why nothing was created. Conflicts on this member-facing
// path are not errors.
type SubmitResult struct {
	Created bool                   `json:"created"`
	Message string                 `json:"message"`
	Request *models.AccountRequest `json:"request,omitempty"`
}

type ProcessRequestRequest struct {
	RequestID   int64  `json:"request_id" binding:"required"`
	Action      string `json:"action" binding:"required"`
	StaffReason string `json:"staff_reason"`
}

// --- RequestService Interface ---
type RequestService interface {
	// SubmitRequest files a freeze/unfreeze request for the calling member.
	// State conflicts and an existing pending request yield an informational
	// result instead of a duplicate row.
	SubmitRequest(userID int64, req SubmitRequestRequest) (*SubmitResult, error)
	// ProcessRequest approves or rejects a pending request. Approval applies
	// the same day accounting as a manual freeze or unfreeze.
	ProcessRequest(staffProfileID int64, req ProcessRequestRequest) (*models.AccountRequest, error)
}

type requestService struct {
	requestRepo         repositories.RequestRepository
	memberRepo          repositories.MemberRepository
	authRepo            repositories.AuthRepository
	notificationService NotificationService
	db                  *sql.DB
}

// NewRequestService creates a new instance of RequestService.
func NewRequestService(
	rr repositories.RequestRepository,
	mr repositories.MemberRepository,
	ar repositories.AuthRepository,
	ns NotificationService,
	db *sql.DB,
) RequestService {
	return &requestService{
		requestRepo:         rr,
		memberRepo:          mr,
		authRepo:            ar,
		notificationService: ns,
		db:                  db,
	}
}

func (s *requestService) SubmitRequest(userID int64, req SubmitRequestRequest) (*SubmitResult, error) {
	if req.RequestType != models.RequestTypeFreeze && req.RequestType != models.RequestTypeUnfreeze {
		return nil, fmt.Errorf("%w: request type must be %s or %s", ErrValidation, models.RequestTypeFreeze, models.RequestTypeUnfreeze)
	}

	profile, err := s.memberRepo.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member profile: %w", err)
	}

	if req.RequestType == models.RequestTypeFreeze && profile.IsFrozen {
		return &SubmitResult{Message: "Your membership is already frozen."}, nil
	}
	if req.RequestType == models.RequestTypeUnfreeze && !profile.IsFrozen {
		return &SubmitResult{Message: "Your membership is not frozen."}, nil
	}

	if _, err := s.requestRepo.GetPendingByMember(profile.ID); err == nil {
		return &SubmitResult{Message: "You already have a pending request awaiting staff review."}, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}

	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	request := &models.AccountRequest{
		MemberID:    profile.ID,
		RequestType: req.RequestType,
		Reason:      utils.NewNullString(req.Reason),
	}
	if _, err := s.requestRepo.Create(tx, request); err != nil {
		// The one-pending index wins the race over the check above.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return &SubmitResult{Message: "You already have a pending request awaiting staff review."}, nil
		}
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if err := s.notificationService.NotifyStaffOfAccountRequest(tx, user.FullName(), profile.ID, req.RequestType); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit request: %w", err)
	}

	return &SubmitResult{
		Created: true,
		Message: "Your request has been submitted for staff review.",
		Request: request,
	}, nil
}

func (s *requestService) ProcessRequest(staffProfileID int64, req ProcessRequestRequest) (*models.AccountRequest, error) {
	if req.Action != ActionApprove && req.Action != ActionReject {
		return nil, ErrInvalidAction
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	request, err := s.requestRepo.GetPendingByID(tx, req.RequestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to load request: %w", err)
	}

	status := models.RequestStatusRejected
	if req.Action == ActionApprove {
		status = models.RequestStatusApproved
		if err := s.applyApproval(tx, request); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Decide(tx, request.ID, status, staffProfileID, utils.NewNullString(req.StaffReason)); err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit decision: %w", err)
	}

	request.Status = status
	request.StaffReviewerID = &staffProfileID
	request.StaffDecisionReason = utils.NewNullString(req.StaffReason)
	now := time.Now()
	request.DecisionDate = &now
	return request, nil
}

// applyApproval performs the freeze or unfreeze the member asked for,
// with the same day accounting used by manual staff actions.
func (s *requestService) applyApproval(tx repositories.SQLExecutor, request *models.AccountRequest) error {
	profile, err := s.memberRepo.GetProfileByID(request.MemberID)
	if err != nil {
		return fmt.Errorf("failed to load member profile: %w", err)
	}

	switch request.RequestType {
	case models.RequestTypeFreeze:
		if profile.IsFrozen {
			return ErrAlreadyFrozen
		}
		days := FreezeDaysRemaining(profile.NextDueDate, time.Now())
		if err := s.memberRepo.SetFrozen(tx, profile.ID, days); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrAlreadyFrozen
			}
			return fmt.Errorf("failed to freeze membership: %w", err)
		}
	case models.RequestTypeUnfreeze:
		if !profile.IsFrozen {
			return ErrNotFrozen
		}
		days := 0
		if profile.DaysRemainingOnFreeze != nil {
			days = *profile.DaysRemainingOnFreeze
		}
		if err := s.memberRepo.SetUnfrozen(tx, profile.ID, RestoredDueDate(time.Now(), days)); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrNotFrozen
			}
			return fmt.Errorf("failed to unfreeze membership: %w", err)
		}
	default:
		return fmt.Errorf("unknown request type %q", request.RequestType)
	}
	return nil
}
