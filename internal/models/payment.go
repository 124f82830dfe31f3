package models

import "time"

// PaymentStatus captures the payment state machine: PENDING is the only
// non-terminal state, SUCCESS and FAILED are terminal.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Terminal reports whether no further transition is permitted.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentSuccess || s == PaymentFailed
}

// Payment records a mobile-money charge keyed by the provider-assigned
// transaction id.
type Payment struct {
	ID            int64         `db:"id" json:"id"`
	TeacherID     int64         `db:"teacher_id" json:"teacher_id"`
	Amount        float64       `db:"amount" json:"amount"`
	Method        string        `db:"method" json:"method"`
	TransactionID string        `db:"transaction_id" json:"transaction_id"`
	Status        PaymentStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}
