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
	ErrMemberNotFound = errors.New("member not found")
	ErrAlreadyActive  = errors.New("member is already active")
	ErrAlreadyFrozen  = errors.New("membership is already frozen")
	ErrNotFrozen      = errors.New("membership is not frozen")
)

const membershipDurationDays = 30

// --- Data Transfer Objects (DTOs) ---

type ActivateMemberRequest struct {
	MemberID   int64   `json:"member_id" binding:"required"`
	AmountPaid float64 `json:"amount" binding:"required"`
}

type ManualFreezeRequest struct {
	MemberID int64  `json:"member_id" binding:"required"`
	Reason   string `json:"reason"`
}

type EditMemberRequest struct {
	MemberID               int64  `json:"member_id" binding:"required"`
	FirstName              string `json:"first_name" binding:"required"`
	LastName               string `json:"last_name" binding:"required"`
	ContactNumber          string `json:"contact_number" binding:"required"`
	EmergencyContactName   string `json:"emergency_contact_name"`
	EmergencyContactNumber string `json:"emergency_contact_number"`
	MedicalConditions      string `json:"medical_conditions"`
	FitnessGoals           string `json:"fitness_goals"`
}

type UpdateOwnDetailsRequest struct {
	ContactNumber          string `json:"contact_number" binding:"required"`
	EmergencyContactName   string `json:"emergency_contact_name"`
	EmergencyContactNumber string `json:"emergency_contact_number"`
	FitnessGoals           string `json:"fitness_goals"`
}

// --- MemberService Interface ---
type MemberService interface {
	// ActivateMember charges the default fee, applies the initial payment,
	// assigns the membership ID and flips the account active.
	ActivateMember(staffProfileID int64, req ActivateMemberRequest) (*models.MemberProfile, error)
	ManualFreeze(staffProfileID int64, req ManualFreezeRequest) (*models.MemberProfile, error)
	ManualUnfreeze(staffProfileID int64, req ManualFreezeRequest) (*models.MemberProfile, error)
	EditMember(req EditMemberRequest) error
	UpdateOwnDetails(userID int64, req UpdateOwnDetailsRequest) error
}

type memberService struct {
	memberRepo  repositories.MemberRepository
	authRepo    repositories.AuthRepository
	billingRepo repositories.BillingRepository
	requestRepo repositories.RequestRepository
	trackerRepo repositories.TrackerRepository
	db          *sql.DB
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(
	mr repositories.MemberRepository,
	ar repositories.AuthRepository,
	br repositories.BillingRepository,
	rr repositories.RequestRepository,
	tr repositories.TrackerRepository,
	db *sql.DB,
) MemberService {
	return &memberService{
		memberRepo:  mr,
		authRepo:    ar,
		billingRepo: br,
		requestRepo: rr,
		trackerRepo: tr,
		db:          db,
	}
}

// FormatMembershipID renders a membership ID such as CFH-2026-0001.
func FormatMembershipID(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// dateOnly truncates a timestamp to its calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FreezeDaysRemaining banks the paid days left before the due date. A past
// or missing due date banks zero.
func FreezeDaysRemaining(nextDueDate *time.Time, today time.Time) int {
	if nextDueDate == nil {
		return 0
	}
	days := int(dateOnly(*nextDueDate).Sub(dateOnly(today)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// RestoredDueDate recomputes the due date when a freeze ends.
func RestoredDueDate(today time.Time, daysRemaining int) time.Time {
	return dateOnly(today).AddDate(0, 0, daysRemaining)
}

// ActivationTerms computes the opening balance and first due date for an
// activation: the member owes the full fee minus what they paid up front.
func ActivationTerms(defaultFee, amountPaid float64, today time.Time) (float64, time.Time) {
	return defaultFee - amountPaid, dateOnly(today).AddDate(0, 0, membershipDurationDays)
}

func (s *memberService) loadProfileAndUser(memberID int64) (*models.MemberProfile, *models.User, error) {
	profile, err := s.memberRepo.GetProfileByID(memberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrMemberNotFound
		}
		return nil, nil, fmt.Errorf("failed to load member profile: %w", err)
	}
	user, err := s.authRepo.FindUserByID(profile.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load member account: %w", err)
	}
	return profile, user, nil
}

func (s *memberService) ActivateMember(staffProfileID int64, req ActivateMemberRequest) (*models.MemberProfile, error) {
	if req.AmountPaid <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}

	profile, user, err := s.loadProfileAndUser(req.MemberID)
	if err != nil {
		return nil, err
	}
	if user.IsActive && profile.ActivationStatus == models.ActivationApproved {
		return nil, ErrAlreadyActive
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.applyActivation(tx, profile, user, staffProfileID, req.AmountPaid); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit activation: %w", err)
	}
	return profile, nil
}

// applyActivation performs the activation writes and updates profile in
// place. The conditional update on the profile row is the authoritative
// already-active guard: when a concurrent activation has flipped the status
// first, no ledger rows post and the caller gets ErrAlreadyActive.
func (s *memberService) applyActivation(executor repositories.SQLExecutor, profile *models.MemberProfile, user *models.User, staffProfileID int64, amountPaid float64) error {
	tracker, err := s.trackerRepo.GetOrCreate(executor)
	if err != nil {
		return fmt.Errorf("failed to load gym settings: %w", err)
	}

	now := time.Now()
	membershipID := ""
	if profile.MembershipID == nil {
		seq, err := s.memberRepo.NextMembershipSeq(executor, tracker.MemberIDPrefix, now.Year())
		if err != nil {
			return fmt.Errorf("failed to assign membership ID: %w", err)
		}
		membershipID = FormatMembershipID(tracker.MemberIDPrefix, now.Year(), seq)
	} else {
		membershipID = *profile.MembershipID
	}

	balance, nextDueDate := ActivationTerms(tracker.DefaultMonthlyFee, amountPaid, now)

	if err := s.memberRepo.ActivateProfile(executor, profile.ID, balance, nextDueDate, membershipID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAlreadyActive
		}
		return fmt.Errorf("failed to activate profile: %w", err)
	}
	if err := s.authRepo.SetUserActive(executor, user.ID, true); err != nil {
		return fmt.Errorf("failed to activate account: %w", err)
	}

	feeDesc := "Monthly membership fee"
	fee := models.BillingRecord{
		MemberID:        profile.ID,
		StaffID:         &staffProfileID,
		TransactionType: models.TxTypeFee,
		Amount:          tracker.DefaultMonthlyFee,
		Description:     &feeDesc,
	}
	if _, err := s.billingRepo.CreateRecord(executor, &fee); err != nil {
		return fmt.Errorf("failed to record membership fee: %w", err)
	}

	paymentDesc := "Initial payment on activation"
	payment := models.BillingRecord{
		MemberID:        profile.ID,
		StaffID:         &staffProfileID,
		TransactionType: models.TxTypePayment,
		Amount:          -amountPaid,
		Description:     &paymentDesc,
	}
	if _, err := s.billingRepo.CreateRecord(executor, &payment); err != nil {
		return fmt.Errorf("failed to record initial payment: %w", err)
	}

	profile.Balance = balance
	profile.NextDueDate = &nextDueDate
	profile.MembershipID = &membershipID
	profile.ActivationStatus = models.ActivationApproved
	profile.IsFrozen = false
	profile.DaysRemainingOnFreeze = nil
	return nil
}

// ManualFreeze pauses an active membership at the front desk, banking the
// paid days and writing an auto-approved audit request.
func (s *memberService) ManualFreeze(staffProfileID int64, req ManualFreezeRequest) (*models.MemberProfile, error) {
	profile, _, err := s.loadProfileAndUser(req.MemberID)
	if err != nil {
		return nil, err
	}
	if profile.IsFrozen {
		return nil, ErrAlreadyFrozen
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.applyManualFreeze(tx, profile, staffProfileID, req.Reason); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit freeze: %w", err)
	}
	return profile, nil
}

// applyManualFreeze freezes the profile and writes the audit row. SetFrozen
// only touches an unfrozen row, so a freeze that raced another one comes
// back as ErrAlreadyFrozen with no duplicate audit entry.
func (s *memberService) applyManualFreeze(executor repositories.SQLExecutor, profile *models.MemberProfile, staffProfileID int64, reason string) error {
	days := FreezeDaysRemaining(profile.NextDueDate, time.Now())

	if err := s.memberRepo.SetFrozen(executor, profile.ID, days); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAlreadyFrozen
		}
		return fmt.Errorf("failed to freeze membership: %w", err)
	}
	if err := s.createManualAudit(executor, profile.ID, staffProfileID, models.RequestTypeFreeze, reason); err != nil {
		return err
	}

	profile.IsFrozen = true
	profile.DaysRemainingOnFreeze = &days
	profile.NextDueDate = nil
	return nil
}

// ManualUnfreeze resumes a frozen membership, restoring the banked days.
func (s *memberService) ManualUnfreeze(staffProfileID int64, req ManualFreezeRequest) (*models.MemberProfile, error) {
	profile, _, err := s.loadProfileAndUser(req.MemberID)
	if err != nil {
		return nil, err
	}
	if !profile.IsFrozen {
		return nil, ErrNotFrozen
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.applyManualUnfreeze(tx, profile, staffProfileID, req.Reason); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unfreeze: %w", err)
	}
	return profile, nil
}

// applyManualUnfreeze resumes the profile and writes the audit row.
// SetUnfrozen only touches a frozen row; a stale read surfaces as
// ErrNotFrozen.
func (s *memberService) applyManualUnfreeze(executor repositories.SQLExecutor, profile *models.MemberProfile, staffProfileID int64, reason string) error {
	days := 0
	if profile.DaysRemainingOnFreeze != nil {
		days = *profile.DaysRemainingOnFreeze
	}
	nextDueDate := RestoredDueDate(time.Now(), days)

	if err := s.memberRepo.SetUnfrozen(executor, profile.ID, nextDueDate); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFrozen
		}
		return fmt.Errorf("failed to unfreeze membership: %w", err)
	}
	if err := s.createManualAudit(executor, profile.ID, staffProfileID, models.RequestTypeUnfreeze, reason); err != nil {
		return err
	}

	profile.IsFrozen = false
	profile.DaysRemainingOnFreeze = nil
	profile.NextDueDate = &nextDueDate
	return nil
}

// createManualAudit writes the already-approved request row that keeps the
// audit trail complete for staff-initiated freezes and unfreezes.
func (s *memberService) createManualAudit(executor repositories.SQLExecutor, memberID, staffProfileID int64, requestType, reason string) error {
	audit := models.AccountRequest{
		MemberID:        memberID,
		StaffReviewerID: &staffProfileID,
		RequestType:     requestType,
		Status:          models.RequestStatusApproved,
		Reason:          utils.NewNullString(reason),
	}
	staffReason := "Processed manually by staff"
	audit.StaffDecisionReason = &staffReason
	if _, err := s.requestRepo.CreateDecided(executor, &audit); err != nil {
		return fmt.Errorf("failed to record audit request: %w", err)
	}
	return nil
}

// EditMember is the staff edit of a member's identity details.
func (s *memberService) EditMember(req EditMemberRequest) error {
	if !utils.IsValidPersonName(req.FirstName) || !utils.IsValidPersonName(req.LastName) {
		return fmt.Errorf("%w: names may only contain letters, spaces, apostrophes, hyphens and periods", ErrValidation)
	}
	if !utils.IsValidContactNumber(req.ContactNumber) {
		return fmt.Errorf("%w: contact number must contain 10 to 15 digits", ErrValidation)
	}
	if req.EmergencyContactNumber != "" && !utils.IsValidContactNumber(req.EmergencyContactNumber) {
		return fmt.Errorf("%w: emergency contact number must contain 10 to 15 digits", ErrValidation)
	}

	_, user, err := s.loadProfileAndUser(req.MemberID)
	if err != nil {
		return err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.ContactNumber = &req.ContactNumber
	user.EmergencyContactName = utils.NewNullString(req.EmergencyContactName)
	user.EmergencyContactNumber = utils.NewNullString(req.EmergencyContactNumber)
	user.MedicalConditions = utils.NewNullString(req.MedicalConditions)
	user.FitnessGoals = utils.NewNullString(req.FitnessGoals)

	if err := s.authRepo.UpdateUserDetails(s.db, user); err != nil {
		return fmt.Errorf("failed to update member details: %w", err)
	}
	return nil
}

// UpdateOwnDetails is the member self-service edit. Names and email are
// staff-managed and stay untouched.
func (s *memberService) UpdateOwnDetails(userID int64, req UpdateOwnDetailsRequest) error {
	if !utils.IsValidContactNumber(req.ContactNumber) {
		return fmt.Errorf("%w: contact number must contain 10 to 15 digits", ErrValidation)
	}
	if req.EmergencyContactNumber != "" && !utils.IsValidContactNumber(req.EmergencyContactNumber) {
		return fmt.Errorf("%w: emergency contact number must contain 10 to 15 digits", ErrValidation)
	}
	if req.EmergencyContactName != "" && !utils.IsValidPersonName(req.EmergencyContactName) {
		return fmt.Errorf("%w: emergency contact name may only contain letters, spaces, apostrophes, hyphens and periods", ErrValidation)
	}

	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load account: %w", err)
	}

	user.ContactNumber = &req.ContactNumber
	user.EmergencyContactName = utils.NewNullString(req.EmergencyContactName)
	user.EmergencyContactNumber = utils.NewNullString(req.EmergencyContactNumber)
	user.FitnessGoals = utils.NewNullString(req.FitnessGoals)

	if err := s.authRepo.UpdateUserDetails(s.db, user); err != nil {
		return fmt.Errorf("failed to update details: %w", err)
	}
	return nil
}
