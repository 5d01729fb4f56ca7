package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"fitnesshub_backend/internal/models"
)

// NotificationRepository defines the interface for staff notifications.
type NotificationRepository interface {
	Create(executor SQLExecutor, notification *models.Notification) (int64, error)
	// GetRecentByRecipient returns the newest notifications for one staff
	// profile.
	GetRecentByRecipient(recipientID int64, limit int) ([]models.Notification, error)
	CountUnreadByRecipient(recipientID int64) (int, error)
	// MarkRead flips the read flag and returns the redirect target, scoped
	// to the recipient so staff cannot read each other's notifications.
	MarkRead(executor SQLExecutor, id int64, recipientID int64) (*string, error)
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(executor SQLExecutor, notification *models.Notification) (int64, error) {
	query := `INSERT INTO notifications (recipient_id, message, notification_type, redirect_target, related_member_id)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`

	err := executor.QueryRow(query,
		notification.RecipientID, notification.Message, notification.NotificationType,
		notification.RedirectTarget, notification.RelatedMemberID,
	).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating notification: %v", ErrDatabaseError, err)
	}
	return notification.ID, nil
}

func (r *notificationRepository) GetRecentByRecipient(recipientID int64, limit int) ([]models.Notification, error) {
	query := `SELECT id, recipient_id, message, notification_type, is_read, redirect_target,
	              related_member_id, created_at
	          FROM notifications
	          WHERE recipient_id = $1
	          ORDER BY created_at DESC
	          LIMIT $2`

	rows, err := r.db.Query(query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: querying notifications for recipient %d: %v", ErrDatabaseError, recipientID, err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		n := models.Notification{}
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.Message, &n.NotificationType, &n.IsRead,
			&n.RedirectTarget, &n.RelatedMemberID, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning notification: %v", ErrDatabaseError, err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating notifications: %v", ErrDatabaseError, err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnreadByRecipient(recipientID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`
	if err := r.db.QueryRow(query, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting unread notifications for recipient %d: %v", ErrDatabaseError, recipientID, err)
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(executor SQLExecutor, id int64, recipientID int64) (*string, error) {
	var redirectTarget sql.NullString
	query := `UPDATE notifications SET is_read = TRUE
	          WHERE id = $1 AND recipient_id = $2
	          RETURNING redirect_target`
	err := executor.QueryRow(query, id, recipientID).Scan(&redirectTarget)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: marking notification %d read: %v", ErrDatabaseError, id, err)
	}
	if redirectTarget.Valid {
		return &redirectTarget.String, nil
	}
	return nil, nil
}
