package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitnesshub_backend/internal/models"
	"fitnesshub_backend/internal/repositories"
)

var (
	ErrAlreadyCheckedIn   = errors.New("member already has an open check-in")
	ErrNoOpenCheckIn      = errors.New("member has no open check-in")
	ErrInvalidCheckAction = errors.New("action must be checkin or checkout")
)

// Check-in/out actions.
const (
	ActionCheckIn  = "checkin"
	ActionCheckOut = "checkout"
)

type CheckInOutRequest struct {
	MemberID int64  `json:"member_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// CheckInOutResult carries the affected visit and the headcount after the
// action.
type CheckInOutResult struct {
	CheckIn      *models.CheckIn `json:"check_in"`
	CurrentCount int             `json:"current_count"`
}

// --- CheckinService Interface ---
type CheckinService interface {
	// CheckInOut opens or closes a visit at the front desk and keeps the
	// live headcount in step, all in one transaction.
	CheckInOut(req CheckInOutRequest) (*CheckInOutResult, error)
	GetHistory(userID int64) ([]models.CheckIn, error)
}

type checkinService struct {
	checkinRepo repositories.CheckinRepository
	memberRepo  repositories.MemberRepository
	trackerRepo repositories.TrackerRepository
	db          *sql.DB
}

// NewCheckinService creates a new instance of CheckinService.
func NewCheckinService(
	cr repositories.CheckinRepository,
	mr repositories.MemberRepository,
	tr repositories.TrackerRepository,
	db *sql.DB,
) CheckinService {
	return &checkinService{checkinRepo: cr, memberRepo: mr, trackerRepo: tr, db: db}
}

func (s *checkinService) CheckInOut(req CheckInOutRequest) (*CheckInOutResult, error) {
	if req.Action != ActionCheckIn && req.Action != ActionCheckOut {
		return nil, ErrInvalidCheckAction
	}

	profile, err := s.memberRepo.GetProfileByID(req.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member profile: %w", err)
	}

	if req.Action == ActionCheckIn {
		return s.checkIn(profile.ID)
	}
	return s.checkOut(profile.ID)
}

func (s *checkinService) checkIn(memberID int64) (*CheckInOutResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	checkIn, err := s.checkinRepo.CreateOpen(tx, memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("failed to open check-in: %w", err)
	}

	count, err := s.trackerRepo.IncrementCount(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to update occupancy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit check-in: %w", err)
	}
	return &CheckInOutResult{CheckIn: checkIn, CurrentCount: count}, nil
}

func (s *checkinService) checkOut(memberID int64) (*CheckInOutResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	open, err := s.checkinRepo.GetOpenByMember(tx, memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoOpenCheckIn
		}
		return nil, fmt.Errorf("failed to find open check-in: %w", err)
	}

	closed, err := s.checkinRepo.CloseCheckIn(tx, open.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to close check-in: %w", err)
	}

	count, err := s.trackerRepo.DecrementCount(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to update occupancy: %w", err)
	}

	log := models.ActivityLog{
		MemberID:        memberID,
		ActivityDate:    dateOnly(closed.CheckInTime),
		DurationMinutes: VisitDurationMinutes(closed.CheckInTime, *closed.CheckOutTime),
	}
	if _, err := s.checkinRepo.CreateActivityLog(tx, &log); err != nil {
		return nil, fmt.Errorf("failed to record activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit check-out: %w", err)
	}
	return &CheckInOutResult{CheckIn: closed, CurrentCount: count}, nil
}

// VisitDurationMinutes reports the whole minutes between check-in and
// check-out, never negative.
func VisitDurationMinutes(in, out time.Time) int {
	minutes := int(out.Sub(in).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

const checkInHistoryLimit = 50

// GetHistory returns the caller's visits newest-first with durations for
// closed rows.
func (s *checkinService) GetHistory(userID int64) ([]models.CheckIn, error) {
	profile, err := s.memberRepo.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member profile: %w", err)
	}

	history, err := s.checkinRepo.GetHistoryByMember(profile.ID, checkInHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-in history: %w", err)
	}
	for i := range history {
		if history[i].CheckOutTime != nil {
			minutes := VisitDurationMinutes(history[i].CheckInTime, *history[i].CheckOutTime)
			history[i].DurationMinutes = &minutes
		}
	}
	return history, nil
}
