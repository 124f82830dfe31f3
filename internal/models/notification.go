package models

import "time"

// Notification types emitted by the job service.
const (
	NotificationJobPosted            = "job_posted"
	NotificationApplicationSubmitted = "application_submitted"
)

// Notification is an append-only message addressed to a user. Only the read
// flag may ever change after insertion.
type Notification struct {
	ID              int64     `db:"id" json:"id"`
	RecipientUserID int64     `db:"recipient_user_id" json:"recipient_user_id"`
	Type            string    `db:"type" json:"type"`
	Content         string    `db:"content" json:"content"`
	IsRead          bool      `db:"is_read" json:"is_read"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
