package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edumentor/edumentor-api/internal/models"
)

// NotificationRepository manages the append-only notification store.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create appends a notification for one recipient.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO notifications (recipient_user_id, type, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		notification.RecipientUserID, notification.Type, notification.Content, notification.IsRead, notification.CreatedAt,
	).Scan(&notification.ID); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// CreateBatch appends the same notification content for many recipients.
func (r *NotificationRepository) CreateBatch(ctx context.Context, recipientIDs []int64, notifType, content string) error {
	if len(recipientIDs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	const query = `INSERT INTO notifications (recipient_user_id, type, content, is_read, created_at)
		VALUES ($1, $2, $3, FALSE, $4)`
	for _, id := range recipientIDs {
		if _, err := r.db.ExecContext(ctx, query, id, notifType, content, now); err != nil {
			return fmt.Errorf("batch notification for user %d: %w", id, err)
		}
	}
	return nil
}

// ListByRecipient returns a user's notifications, newest first.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, userID int64) ([]models.Notification, error) {
	const query = `SELECT id, recipient_user_id, type, content, is_read, created_at
		FROM notifications WHERE recipient_user_id = $1 ORDER BY created_at DESC`
	var notifications []models.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}
