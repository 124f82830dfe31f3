package models

import "time"

// UserRole distinguishes the two account types in the marketplace.
type UserRole string

const (
	RoleTeacher UserRole = "teacher"
	RoleSchool  UserRole = "school"
)

// User represents an application user stored in the users table. Accounts
// start inactive; teachers become active after a successful subscription
// payment.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
