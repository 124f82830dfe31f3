package models

import "time"

// Job posting lifecycle states.
const (
	JobStatusActive = "Active"
	JobStatusClosed = "Closed"
	JobStatusDraft  = "Draft"
)

// Application lifecycle states.
const (
	ApplicationStatusSubmitted = "Submitted"
	ApplicationStatusReviewed  = "Reviewed"
	ApplicationStatusAccepted  = "Accepted"
	ApplicationStatusRejected  = "Rejected"
)

// JobPosting represents an open position published by a school.
type JobPosting struct {
	ID          int64     `db:"id" json:"id"`
	SchoolID    int64     `db:"school_id" json:"school_id"`
	Title       string    `db:"title" json:"title"`
	Subject     string    `db:"subject" json:"subject"`
	Experience  *string   `db:"experience" json:"experience,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	Salary      *string   `db:"salary" json:"salary,omitempty"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// JobView is a posting denormalized with the school's display name. The name
// falls back to "Unknown School" when the school row is gone.
type JobView struct {
	JobPosting
	SchoolName string `db:"school_name" json:"school_name"`
}

// JobApplication records a teacher applying to a posting. A (job, teacher)
// pair applies at most once.
type JobApplication struct {
	ID        int64     `db:"id" json:"id"`
	JobID     int64     `db:"job_id" json:"job_id"`
	TeacherID int64     `db:"teacher_id" json:"teacher_id"`
	Status    string    `db:"status" json:"status"`
	Message   *string   `db:"message" json:"message,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ApplicationView denormalizes an application with the applying teacher's
// display name and phone, resolved through the teacher's linked user.
type ApplicationView struct {
	ID          int64     `db:"id" json:"id"`
	JobID       int64     `db:"job_id" json:"job_id"`
	TeacherID   int64     `db:"teacher_id" json:"teacher_id"`
	TeacherName string    `db:"-" json:"teacher_name"`
	UserName    *string   `db:"user_name" json:"-"`
	Phone       *string   `db:"teacher_phone" json:"teacher_phone,omitempty"`
	Status      string    `db:"status" json:"status"`
	Message     *string   `db:"message" json:"message,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
