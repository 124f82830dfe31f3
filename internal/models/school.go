package models

import "time"

// School represents a hiring school. The optional user link gives the school
// a notification channel; application alerts are addressed to that user.
type School struct {
	ID          int64     `db:"id" json:"id"`
	UserID      *int64    `db:"user_id" json:"user_id,omitempty"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Location    *string   `db:"location" json:"location,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
