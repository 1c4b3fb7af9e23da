package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sgpa-dev/sgpa-api/internal/models"
)

// NotificationRepository provides database access for notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, date, message, recipient_id, read, created_at`

// Create inserts a new notification. Notifications are never deleted.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if notification.Date.IsZero() {
		notification.Date = now
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = now
	}

	const query = `INSERT INTO notifications (id, date, message, recipient_id, read, created_at) VALUES (:id, :date, :message, :recipient_id, :read, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// FindByID returns a notification by identifier.
func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE id = $1 LIMIT 1`, notificationColumns)
	var notification models.Notification
	if err := r.db.GetContext(ctx, &notification, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find notification by id: %w", err)
	}
	return &notification, nil
}

// ListByRecipient returns the recipient's notifications, newest first. With
// unreadOnly set, read notifications are excluded.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]models.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE recipient_id = $1 ORDER BY date DESC`, notificationColumns)
	if unreadOnly {
		query = fmt.Sprintf(`SELECT %s FROM notifications WHERE recipient_id = $1 AND read = FALSE ORDER BY date DESC`, notificationColumns)
	}
	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, recipientID); err != nil {
		return nil, fmt.Errorf("list notifications by recipient: %w", err)
	}
	return notifications, nil
}

// SetRead flips the read flag, the only mutation a notification allows.
func (r *NotificationRepository) SetRead(ctx context.Context, id string, read bool) error {
	const query = `UPDATE notifications SET read = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, read); err != nil {
		return fmt.Errorf("set notification read flag: %w", err)
	}
	return nil
}
