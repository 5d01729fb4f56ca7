package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"fitnesshub_backend/internal/models"
)

// BillingRepository defines the interface for the append-only billing ledger.
type BillingRepository interface {
	CreateRecord(executor SQLExecutor, record *models.BillingRecord) (int64, error)
	// GetRecordsByMember returns a member's ledger newest-first.
	GetRecordsByMember(memberID int64) ([]models.BillingRecord, error)
	// SumPaymentsBetween returns collected revenue (payments negated to
	// positive) within [start, end).
	SumPaymentsBetween(start, end time.Time) (float64, error)
	// SumFeesBetween returns the fees charged within [start, end).
	SumFeesBetween(start, end time.Time) (float64, error)
	// GetPaymentsBetween returns raw payment rows within [start, end) for
	// chart bucketing.
	GetPaymentsBetween(start, end time.Time) ([]models.BillingRecord, error)
	// GetRecentPayments returns the newest payments with member names.
	GetRecentPayments(limit int) ([]models.BillingRecord, error)
}

type billingRepository struct {
	db *sql.DB
}

// NewBillingRepository creates a new instance of BillingRepository.
func NewBillingRepository(db *sql.DB) BillingRepository {
	return &billingRepository{db: db}
}

// CreateRecord appends one ledger entry. Records are never updated.
func (r *billingRepository) CreateRecord(executor SQLExecutor, record *models.BillingRecord) (int64, error) {
	query := `INSERT INTO billing_records (member_id, staff_id, transaction_type, amount, description)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`

	err := executor.QueryRow(query,
		record.MemberID, record.StaffID, record.TransactionType, record.Amount, record.Description,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating billing record: %v", ErrDatabaseError, err)
	}
	return record.ID, nil
}

const billingColumns = `id, member_id, staff_id, transaction_type, amount, description, created_at`

func scanBillingRecord(s scanner, extras ...interface{}) (*models.BillingRecord, error) {
	record := &models.BillingRecord{}
	dest := []interface{}{
		&record.ID, &record.MemberID, &record.StaffID, &record.TransactionType,
		&record.Amount, &record.Description, &record.CreatedAt,
	}
	dest = append(dest, extras...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecordsByMember returns the ledger newest-first.
func (r *billingRepository) GetRecordsByMember(memberID int64) ([]models.BillingRecord, error) {
	query := `SELECT ` + billingColumns + ` FROM billing_records
	          WHERE member_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(query, memberID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying billing records for member %d: %v", ErrDatabaseError, memberID, err)
	}
	defer rows.Close()

	records := []models.BillingRecord{}
	for rows.Next() {
		record, err := scanBillingRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning billing record: %v", ErrDatabaseError, err)
		}
		records = append(records, *record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating billing records: %v", ErrDatabaseError, err)
	}
	return records, nil
}

// SumPaymentsBetween aggregates payments (stored negative) as positive revenue.
func (r *billingRepository) SumPaymentsBetween(start, end time.Time) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount), 0) * -1 FROM billing_records
	          WHERE transaction_type = $1 AND created_at >= $2 AND created_at < $3`
	if err := r.db.QueryRow(query, models.TxTypePayment, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing payments: %v", ErrDatabaseError, err)
	}
	return total, nil
}

// SumFeesBetween aggregates fee charges (stored positive).
func (r *billingRepository) SumFeesBetween(start, end time.Time) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM billing_records
	          WHERE transaction_type = $1 AND created_at >= $2 AND created_at < $3`
	if err := r.db.QueryRow(query, models.TxTypeFee, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing fees: %v", ErrDatabaseError, err)
	}
	return total, nil
}

// GetPaymentsBetween returns payment rows for chart bucketing, oldest first.
func (r *billingRepository) GetPaymentsBetween(start, end time.Time) ([]models.BillingRecord, error) {
	query := `SELECT ` + billingColumns + ` FROM billing_records
	          WHERE transaction_type = $1 AND created_at >= $2 AND created_at < $3
	          ORDER BY created_at`

	rows, err := r.db.Query(query, models.TxTypePayment, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.BillingRecord{}
	for rows.Next() {
		record, err := scanBillingRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		records = append(records, *record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payments: %v", ErrDatabaseError, err)
	}
	return records, nil
}

// GetRecentPayments returns the newest payments joined with member names.
func (r *billingRepository) GetRecentPayments(limit int) ([]models.BillingRecord, error) {
	query := `SELECT br.id, br.member_id, br.staff_id, br.transaction_type, br.amount,
	              br.description, br.created_at, u.first_name || ' ' || u.last_name
	          FROM billing_records br
	          JOIN member_profiles mp ON mp.id = br.member_id
	          JOIN users u ON u.id = mp.user_id
	          WHERE br.transaction_type = $1
	          ORDER BY br.created_at DESC
	          LIMIT $2`

	rows, err := r.db.Query(query, models.TxTypePayment, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying recent payments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	records := []models.BillingRecord{}
	for rows.Next() {
		var memberName string
		record, err := scanBillingRecord(rows, &memberName)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning recent payment: %v", ErrDatabaseError, err)
		}
		record.MemberName = &memberName
		records = append(records, *record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating recent payments: %v", ErrDatabaseError, err)
	}
	return records, nil
}
