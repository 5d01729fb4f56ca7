package services

import (
	"database/sql"
	"fmt"

	"fitnesshub_backend/internal/models"
	"fitnesshub_backend/internal/repositories"
	"fitnesshub_backend/pkg/utils"
)

type UpdateSettingsRequest struct {
	GymName           string  `json:"gym_name" binding:"required"`
	ContactNumber     string  `json:"contact_number"`
	ContactAddress    string  `json:"contact_address"`
	CapacityLimit     int     `json:"capacity_limit" binding:"required"`
	PeakHoursStart    string  `json:"peak_hours_start" binding:"required"`
	PeakHoursEnd      string  `json:"peak_hours_end" binding:"required"`
	DefaultMonthlyFee float64 `json:"default_monthly_fee" binding:"required"`
	MemberIDPrefix    string  `json:"member_id_prefix" binding:"required"`
}

// --- SettingsService Interface ---
type SettingsService interface {
	// GetSettings returns the singleton settings row, creating it with
	// defaults on first access.
	GetSettings() (*models.OccupancyTracker, error)
	UpdateSettings(req UpdateSettingsRequest) (*models.OccupancyTracker, error)
}

type settingsService struct {
	trackerRepo repositories.TrackerRepository
	db          *sql.DB
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(tr repositories.TrackerRepository, db *sql.DB) SettingsService {
	return &settingsService{trackerRepo: tr, db: db}
}

func (s *settingsService) GetSettings() (*models.OccupancyTracker, error) {
	tracker, err := s.trackerRepo.GetOrCreate(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return tracker, nil
}

func (s *settingsService) UpdateSettings(req UpdateSettingsRequest) (*models.OccupancyTracker, error) {
	if req.CapacityLimit <= 0 {
		return nil, fmt.Errorf("%w: capacity limit must be greater than zero", ErrValidation)
	}
	if req.DefaultMonthlyFee < 0 {
		return nil, fmt.Errorf("%w: default monthly fee cannot be negative", ErrValidation)
	}
	if _, err := parseClockTime(req.PeakHoursStart); err != nil {
		return nil, fmt.Errorf("%w: peak hours start must be HH:MM", ErrValidation)
	}
	if _, err := parseClockTime(req.PeakHoursEnd); err != nil {
		return nil, fmt.Errorf("%w: peak hours end must be HH:MM", ErrValidation)
	}
	if utils.IsEmpty(req.MemberIDPrefix) {
		return nil, fmt.Errorf("%w: member ID prefix is required", ErrValidation)
	}

	tracker, err := s.trackerRepo.GetOrCreate(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	tracker.GymName = req.GymName
	tracker.ContactNumber = utils.NewNullString(req.ContactNumber)
	tracker.ContactAddress = utils.NewNullString(req.ContactAddress)
	tracker.CapacityLimit = req.CapacityLimit
	tracker.PeakHoursStart = req.PeakHoursStart
	tracker.PeakHoursEnd = req.PeakHoursEnd
	tracker.DefaultMonthlyFee = req.DefaultMonthlyFee
	tracker.MemberIDPrefix = req.MemberIDPrefix

	if err := s.trackerRepo.UpdateSettings(s.db, tracker); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return tracker, nil
}
