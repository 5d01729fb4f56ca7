package services

import (
	"database/sql"
	"errors"
	"fmt"

	"fitnesshub_backend/internal/models"
	"fitnesshub_backend/internal/repositories"
)

var ErrNotificationNotFound = errors.New("notification not found")

// RegistrationKind distinguishes a brand-new signup from a re-application
// over a rejected account. The fan-out wording depends on it; nothing else
// is inferred from the account state.
type RegistrationKind int

const (
	RegistrationNew RegistrationKind = iota
	RegistrationReapplication
)

// NotificationService fans alerts out to every staff account and serves the
// staff notification feed.
type NotificationService interface {
	NotifyStaffOfRegistration(executor repositories.SQLExecutor, memberName string, memberProfileID int64, kind RegistrationKind) error
	NotifyStaffOfAccountRequest(executor repositories.SQLExecutor, memberName string, memberProfileID int64, requestType string) error
	GetRecentForStaff(staffProfileID int64) ([]models.Notification, error)
	// CountUnreadForStaff backs the unread badge on the staff dashboard.
	CountUnreadForStaff(staffProfileID int64) (int, error)
	// MarkRead flips the read flag and returns the redirect target. Marking
	// an already-read notification succeeds again with the same target.
	MarkRead(notificationID, staffProfileID int64) (*string, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	staffRepo        repositories.StaffRepository
	db               *sql.DB
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(nr repositories.NotificationRepository, sr repositories.StaffRepository, db *sql.DB) NotificationService {
	return &notificationService{notificationRepo: nr, staffRepo: sr, db: db}
}

const recentNotificationLimit = 10

func (s *notificationService) fanOut(executor repositories.SQLExecutor, message, notificationType, redirectTarget string, memberProfileID int64) error {
	staffIDs, err := s.staffRepo.GetAllStaffProfileIDs()
	if err != nil {
		return fmt.Errorf("failed to list staff for fan-out: %w", err)
	}
	for _, staffID := range staffIDs {
		notification := models.Notification{
			RecipientID:      staffID,
			Message:          message,
			NotificationType: notificationType,
			RedirectTarget:   &redirectTarget,
			RelatedMemberID:  &memberProfileID,
		}
		if _, err := s.notificationRepo.Create(executor, &notification); err != nil {
			return fmt.Errorf("failed to create notification for staff %d: %w", staffID, err)
		}
	}
	return nil
}

func (s *notificationService) NotifyStaffOfRegistration(executor repositories.SQLExecutor, memberName string, memberProfileID int64, kind RegistrationKind) error {
	message := fmt.Sprintf("New member registration: %s is awaiting activation.", memberName)
	if kind == RegistrationReapplication {
		message = fmt.Sprintf("Re-application received: %s has registered again and is awaiting activation.", memberName)
	}
	return s.fanOut(executor, message, models.NotificationTypeRegistration, "/staff/dashboard#pending", memberProfileID)
}

func (s *notificationService) NotifyStaffOfAccountRequest(executor repositories.SQLExecutor, memberName string, memberProfileID int64, requestType string) error {
	var message string
	switch requestType {
	case models.RequestTypeFreeze:
		message = fmt.Sprintf("%s has requested to freeze their membership.", memberName)
	case models.RequestTypeUnfreeze:
		message = fmt.Sprintf("%s has requested to unfreeze their membership.", memberName)
	default:
		return fmt.Errorf("unknown request type %q", requestType)
	}
	return s.fanOut(executor, message, models.NotificationTypeAccountRequest, "/staff/dashboard#requests", memberProfileID)
}

func (s *notificationService) GetRecentForStaff(staffProfileID int64) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.GetRecentByRecipient(staffProfileID, recentNotificationLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) CountUnreadForStaff(staffProfileID int64) (int, error) {
	count, err := s.notificationRepo.CountUnreadByRecipient(staffProfileID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(notificationID, staffProfileID int64) (*string, error) {
	target, err := s.notificationRepo.MarkRead(s.db, notificationID, staffProfileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return target, nil
}
