package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumentor/edumentor-api/internal/models"
)

func TestPaymentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(int64(8), 50000.0, "mtn", "txn-42", models.PaymentPending, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	payment := &models.Payment{TeacherID: 8, Amount: 50000, Method: "mtn", TransactionID: "txn-42", Status: models.PaymentPending}
	require.NoError(t, repo.Create(context.Background(), payment))
	assert.Equal(t, int64(1), payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryCreateDuplicateTransaction(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery("INSERT INTO payments").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Payment{TeacherID: 8, TransactionID: "txn-42", Status: models.PaymentPending})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryFindByTransactionID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_id", "amount", "method", "transaction_id", "status", "created_at", "updated_at"}).
		AddRow(int64(1), int64(8), 50000.0, "mtn", "txn-42", "PENDING", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, teacher_id, amount, method, transaction_id, status").
		WithArgs("txn-42").
		WillReturnRows(rows)

	payment, err := repo.FindByTransactionID(context.Background(), "txn-42")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryTransitionFromPending(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	query := regexp.QuoteMeta("UPDATE payments SET status = $2, updated_at = $3 WHERE transaction_id = $1 AND status = $4")

	mock.ExpectExec(query).
		WithArgs("txn-42", models.PaymentSuccess, sqlmock.AnyArg(), models.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.TransitionFromPending(context.Background(), "txn-42", models.PaymentSuccess)
	require.NoError(t, err)
	assert.True(t, updated)

	// A payment already out of PENDING matches no row.
	mock.ExpectExec(query).
		WithArgs("txn-42", models.PaymentFailed, sqlmock.AnyArg(), models.PaymentPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err = repo.TransitionFromPending(context.Background(), "txn-42", models.PaymentFailed)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
