package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edumentor/edumentor-api/internal/models"
)

// PaymentRepository manages persistence for mobile-money payments.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment and assigns the generated id. A duplicate
// transaction id surfaces as ErrDuplicate via the unique constraint.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	const query = `INSERT INTO payments (teacher_id, amount, method, transaction_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query,
		payment.TeacherID, payment.Amount, payment.Method, payment.TransactionID, payment.Status,
		payment.CreatedAt, payment.UpdatedAt,
	).Scan(&payment.ID); err != nil {
		if dup := translateUnique(err); dup == ErrDuplicate {
			return ErrDuplicate
		}
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// FindByTransactionID fetches a payment by its provider transaction id.
func (r *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	const query = `SELECT id, teacher_id, amount, method, transaction_id, status, created_at, updated_at
		FROM payments WHERE transaction_id = $1 LIMIT 1`
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, transactionID); err != nil {
		return nil, err
	}
	return &payment, nil
}

// TransitionFromPending conditionally moves a payment out of PENDING. It
// returns false when the row was not in PENDING anymore, which bounds races
// between concurrent webhook deliveries.
func (r *PaymentRepository) TransitionFromPending(ctx context.Context, transactionID string, status models.PaymentStatus) (bool, error) {
	const query = `UPDATE payments SET status = $2, updated_at = $3 WHERE transaction_id = $1 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, transactionID, status, time.Now().UTC(), models.PaymentPending)
	if err != nil {
		return false, fmt.Errorf("transition payment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("transition payment rows: %w", err)
	}
	return affected == 1, nil
}
