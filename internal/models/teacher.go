package models

import "time"

// Teacher represents a teacher profile, optionally linked to a User account.
type Teacher struct {
	ID              int64     `db:"id" json:"id"`
	UserID          *int64    `db:"user_id" json:"user_id,omitempty"`
	Subject         string    `db:"subject" json:"subject"`
	Bio             *string   `db:"bio" json:"bio,omitempty"`
	Location        *string   `db:"location" json:"location,omitempty"`
	Phone           *string   `db:"phone" json:"phone,omitempty"`
	ExperienceYears *int      `db:"experience_years" json:"experience_years,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherListing is the public view of a teacher with the linked account's
// display name resolved. Name falls back to "Teacher #<id>" when the profile
// has no user link.
type TeacherListing struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Subject    string  `json:"subject"`
	Bio        *string `json:"bio,omitempty"`
	Location   *string `json:"location,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Experience *int    `json:"experience,omitempty"`
	Verified   bool    `json:"verified"`
}

// TeacherWithUser joins a teacher row with the linked user's name and
// activation status.
type TeacherWithUser struct {
	Teacher
	UserName   *string `db:"user_name"`
	UserActive *bool   `db:"user_active"`
}
