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
	ErrMemberInactive       = errors.New("member account is not active")
	ErrNoOutstandingBalance = errors.New("member has no outstanding balance")
	ErrInvalidChartFilter   = errors.New("filter must be daily or monthly")
)

// Revenue chart filters.
const (
	ChartFilterDaily   = "daily"
	ChartFilterMonthly = "monthly"
)

type LogPaymentRequest struct {
	MemberID    int64   `json:"member_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

// --- BillingService Interface ---
type BillingService interface {
	// LogPayment applies a payment against an active member's balance and
	// appends the ledger row in the same transaction.
	LogPayment(staffProfileID int64, req LogPaymentRequest) (*models.MemberProfile, error)
	// GetBillingHistory returns the member's ledger newest-first with the
	// balance that held after each entry.
	GetBillingHistory(userID int64) ([]models.BillingHistoryEntry, error)
	RevenueChart(filter string, now time.Time) (*models.RevenueChart, error)
}

type billingService struct {
	billingRepo repositories.BillingRepository
	memberRepo  repositories.MemberRepository
	authRepo    repositories.AuthRepository
	db          *sql.DB
}

// NewBillingService creates a new instance of BillingService.
func NewBillingService(
	br repositories.BillingRepository,
	mr repositories.MemberRepository,
	ar repositories.AuthRepository,
	db *sql.DB,
) BillingService {
	return &billingService{billingRepo: br, memberRepo: mr, authRepo: ar, db: db}
}

func (s *billingService) LogPayment(staffProfileID int64, req LogPaymentRequest) (*models.MemberProfile, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}

	profile, err := s.memberRepo.GetProfileByID(req.MemberID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member profile: %w", err)
	}
	user, err := s.authRepo.FindUserByID(profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load member account: %w", err)
	}
	if !user.IsActive {
		return nil, ErrMemberInactive
	}
	if profile.Balance <= 0 {
		return nil, ErrNoOutstandingBalance
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.memberRepo.ApplyPayment(tx, profile.ID, req.Amount); err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	description := req.Description
	if description == "" {
		description = "Payment received"
	}
	record := models.BillingRecord{
		MemberID:        profile.ID,
		StaffID:         &staffProfileID,
		TransactionType: models.TxTypePayment,
		Amount:          -req.Amount,
		Description:     utils.NewNullString(description),
	}
	if _, err := s.billingRepo.CreateRecord(tx, &record); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	profile.Balance -= req.Amount
	return profile, nil
}

// BuildRunningBalances pairs each newest-first ledger record with the
// balance that held immediately after it, rewinding from the current
// balance.
func BuildRunningBalances(records []models.BillingRecord, currentBalance float64) []models.BillingHistoryEntry {
	entries := make([]models.BillingHistoryEntry, 0, len(records))
	running := currentBalance
	for _, record := range records {
		entries = append(entries, models.BillingHistoryEntry{Record: record, BalanceAfterTx: running})
		running -= record.Amount
	}
	return entries
}

func (s *billingService) GetBillingHistory(userID int64) ([]models.BillingHistoryEntry, error) {
	profile, err := s.memberRepo.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to load member profile: %w", err)
	}

	records, err := s.billingRepo.GetRecordsByMember(profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load billing records: %w", err)
	}
	return BuildRunningBalances(records, profile.Balance), nil
}

// BuildDailyRevenue buckets payments per day of the given month. Payment
// amounts are stored negative, so each is negated into revenue.
func BuildDailyRevenue(payments []models.BillingRecord, year int, month time.Month) *models.RevenueChart {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	chart := &models.RevenueChart{
		Labels: make([]string, daysInMonth),
		Data:   make([]float64, daysInMonth),
	}
	for day := 1; day <= daysInMonth; day++ {
		chart.Labels[day-1] = fmt.Sprintf("%s %d", month.String()[:3], day)
	}
	for _, p := range payments {
		if p.CreatedAt.Year() != year || p.CreatedAt.Month() != month {
			continue
		}
		chart.Data[p.CreatedAt.Day()-1] += -p.Amount
	}
	return chart
}

// BuildMonthlyRevenue buckets payments per month of the given year.
func BuildMonthlyRevenue(payments []models.BillingRecord, year int) *models.RevenueChart {
	chart := &models.RevenueChart{
		Labels: make([]string, 12),
		Data:   make([]float64, 12),
	}
	for m := time.January; m <= time.December; m++ {
		chart.Labels[m-1] = m.String()[:3]
	}
	for _, p := range payments {
		if p.CreatedAt.Year() != year {
			continue
		}
		chart.Data[p.CreatedAt.Month()-1] += -p.Amount
	}
	return chart
}

func (s *billingService) RevenueChart(filter string, now time.Time) (*models.RevenueChart, error) {
	switch filter {
	case ChartFilterDaily:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0)
		payments, err := s.billingRepo.GetPaymentsBetween(start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to load payments: %w", err)
		}
		return BuildDailyRevenue(payments, now.Year(), now.Month()), nil
	case ChartFilterMonthly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(1, 0, 0)
		payments, err := s.billingRepo.GetPaymentsBetween(start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to load payments: %w", err)
		}
		return BuildMonthlyRevenue(payments, now.Year()), nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidChartFilter, filter)
	}
}
