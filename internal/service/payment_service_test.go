package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edumentor/edumentor-api/internal/models"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
	"github.com/edumentor/edumentor-api/pkg/eversend"
)

type mockPaymentRepo struct {
	payments      map[string]*models.Payment
	created       *models.Payment
	transitioned  []models.PaymentStatus
	transitionOK  bool
	transitionErr error
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	payment.ID = 1
	m.created = payment
	return nil
}

func (m *mockPaymentRepo) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	payment, ok := m.payments[transactionID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *payment
	return &copied, nil
}

func (m *mockPaymentRepo) TransitionFromPending(ctx context.Context, transactionID string, status models.PaymentStatus) (bool, error) {
	if m.transitionErr != nil {
		return false, m.transitionErr
	}
	m.transitioned = append(m.transitioned, status)
	if m.transitionOK {
		if payment, ok := m.payments[transactionID]; ok {
			payment.Status = status
		}
	}
	return m.transitionOK, nil
}

type mockPaymentTeacherRepo struct {
	teachers     map[int64]*models.Teacher
	linkedUser   *int64
	linkedErr    error
	linkedCalled bool
}

func (m *mockPaymentTeacherRepo) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, ok := m.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return teacher, nil
}

func (m *mockPaymentTeacherRepo) LinkedUserID(ctx context.Context, teacherID int64) (*int64, error) {
	m.linkedCalled = true
	return m.linkedUser, m.linkedErr
}

type mockUserActivator struct {
	activated []int64
	err       error
}

func (m *mockUserActivator) Activate(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	m.activated = append(m.activated, id)
	return nil
}

type mockProvider struct {
	response *eversend.CollectionResponse
	err      error
	calls    int
	lastReq  eversend.CollectionRequest
}

func (m *mockProvider) InitiateMobileMoney(ctx context.Context, req eversend.CollectionRequest) (*eversend.CollectionResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func newPaymentService(repo *mockPaymentRepo, teachers *mockPaymentTeacherRepo, users *mockUserActivator, provider *mockProvider) *PaymentService {
	return NewPaymentService(repo, teachers, users, provider, "https://api.edumentor.example", validator.New(), zap.NewNop())
}

func TestPaymentServiceInitiate(t *testing.T) {
	repo := &mockPaymentRepo{}
	teachers := &mockPaymentTeacherRepo{teachers: map[int64]*models.Teacher{8: {ID: 8}}}
	provider := &mockProvider{response: &eversend.CollectionResponse{TransactionID: "txn-42"}}
	svc := newPaymentService(repo, teachers, &mockUserActivator{}, provider)

	res, err := svc.Initiate(context.Background(), InitiatePaymentRequest{
		TeacherID:   8,
		Amount:      50000,
		Method:      "MTN",
		PhoneNumber: "+256700000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "Payment initiated", res.Message)
	assert.Equal(t, "txn-42", res.TransactionID)

	assert.Equal(t, "UGX", provider.lastReq.Currency)
	assert.Equal(t, "https://api.edumentor.example/payments/webhook/eversend", provider.lastReq.CallbackURL)

	require.NotNil(t, repo.created)
	assert.Equal(t, models.PaymentPending, repo.created.Status)
	assert.Equal(t, "mtn", repo.created.Method)
	assert.Equal(t, "mtn", provider.lastReq.Network)
}

func TestPaymentServiceInitiateUnknownTeacherSkipsProvider(t *testing.T) {
	repo := &mockPaymentRepo{}
	provider := &mockProvider{response: &eversend.CollectionResponse{TransactionID: "txn-42"}}
	svc := newPaymentService(repo, &mockPaymentTeacherRepo{}, &mockUserActivator{}, provider)

	_, err := svc.Initiate(context.Background(), InitiatePaymentRequest{
		TeacherID:   99,
		Amount:      50000,
		Method:      "mtn",
		PhoneNumber: "+256700000000",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.Zero(t, provider.calls)
	assert.Nil(t, repo.created)
}

func TestPaymentServiceInitiateProviderFailure(t *testing.T) {
	repo := &mockPaymentRepo{}
	teachers := &mockPaymentTeacherRepo{teachers: map[int64]*models.Teacher{8: {ID: 8}}}
	provider := &mockProvider{err: errors.New("insufficient funds")}
	svc := newPaymentService(repo, teachers, &mockUserActivator{}, provider)

	_, err := svc.Initiate(context.Background(), InitiatePaymentRequest{
		TeacherID:   8,
		Amount:      50000,
		Method:      "airtel",
		PhoneNumber: "+256700000000",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, 502, appErr.Status)
	assert.Nil(t, repo.created)
}

func TestPaymentServiceWebhookSuccessActivatesUser(t *testing.T) {
	userID := int64(20)
	repo := &mockPaymentRepo{
		payments:     map[string]*models.Payment{"txn-42": {ID: 1, TeacherID: 8, TransactionID: "txn-42", Status: models.PaymentPending}},
		transitionOK: true,
	}
	teachers := &mockPaymentTeacherRepo{linkedUser: &userID}
	users := &mockUserActivator{}
	svc := newPaymentService(repo, teachers, users, &mockProvider{})

	res := svc.HandleWebhook(context.Background(), WebhookRequest{TransactionID: "txn-42", Status: "successful"})
	assert.Equal(t, "Payment updated successfully", res.Message)
	assert.Equal(t, []models.PaymentStatus{models.PaymentSuccess}, repo.transitioned)
	assert.Equal(t, []int64{20}, users.activated)
}

func TestPaymentServiceWebhookFailureDoesNotActivate(t *testing.T) {
	repo := &mockPaymentRepo{
		payments:     map[string]*models.Payment{"txn-42": {TransactionID: "txn-42", Status: models.PaymentPending}},
		transitionOK: true,
	}
	teachers := &mockPaymentTeacherRepo{}
	users := &mockUserActivator{}
	svc := newPaymentService(repo, teachers, users, &mockProvider{})

	res := svc.HandleWebhook(context.Background(), WebhookRequest{TransactionID: "txn-42", Status: "FAILED"})
	assert.Equal(t, "Payment updated successfully", res.Message)
	assert.False(t, teachers.linkedCalled)
	assert.Empty(t, users.activated)
}

func TestPaymentServiceWebhookMissingTransactionID(t *testing.T) {
	svc := newPaymentService(&mockPaymentRepo{}, &mockPaymentTeacherRepo{}, &mockUserActivator{}, &mockProvider{})

	res := svc.HandleWebhook(context.Background(), WebhookRequest{Status: "SUCCESS"})
	assert.Equal(t, "Missing transaction_id", res.Message)
}

func TestPaymentServiceWebhookUnknownPayment(t *testing.T) {
	svc := newPaymentService(&mockPaymentRepo{}, &mockPaymentTeacherRepo{}, &mockUserActivator{}, &mockProvider{})

	res := svc.HandleWebhook(context.Background(), WebhookRequest{TransactionID: "ghost", Status: "SUCCESS"})
	assert.Equal(t, "Payment not found", res.Message)
}

func TestPaymentServiceWebhookTerminalIsIdempotent(t *testing.T) {
	repo := &mockPaymentRepo{
		payments: map[string]*models.Payment{"txn-42": {TransactionID: "txn-42", Status: models.PaymentSuccess}},
	}
	users := &mockUserActivator{}
	svc := newPaymentService(repo, &mockPaymentTeacherRepo{}, users, &mockProvider{})

	res := svc.HandleWebhook(context.Background(), WebhookRequest{TransactionID: "txn-42", Status: "SUCCESS"})
	assert.Equal(t, "Payment already processed", res.Message)
	assert.Empty(t, repo.transitioned)
	assert.Empty(t, users.activated)
}

func TestPaymentServiceWebhookConflictingTerminalKeepsRecord(t *testing.T) {
	repo := &mockPaymentRepo{
		payments: map[string]*models.Payment{"txn-42": {TransactionID: "txn-42", Status: models.PaymentFailed}},
	}
	svc := newPaymentService(repo, &mockPaymentTeacherRepo{}, &mockUserActivator{}, &mockProvider{})

	res := svc.HandleWebhook(context.Background(), WebhookRequest{TransactionID: "txn-42", Status: "SUCCESS"})
	assert.Equal(t, "Payment already processed", res.Message)
	assert.Empty(t, repo.transitioned)
	assert.Equal(t, models.PaymentFailed, repo.payments["txn-42"].Status)
}

func TestPaymentServiceWebhookUnrecognizedStatus(t *testing.T) {
	repo := &mockPaymentRepo{
		payments: map[string]*models.Payment{"txn-42": {TransactionID: "txn-42", Status: models.PaymentPending}},
	}
	svc := newPaymentService(repo, &mockPaymentTeacherRepo{}, &mockUserActivator{}, &mockProvider{})

	res := svc.HandleWebhook(context.Background(), WebhookRequest{TransactionID: "txn-42", Status: "processing"})
	assert.Equal(t, "Unrecognized payment status", res.Message)
	assert.Empty(t, repo.transitioned)
}

func TestPaymentServiceWebhookActivationSkippedWhenUnlinked(t *testing.T) {
	repo := &mockPaymentRepo{
		payments:     map[string]*models.Payment{"txn-42": {TeacherID: 8, TransactionID: "txn-42", Status: models.PaymentPending}},
		transitionOK: true,
	}
	teachers := &mockPaymentTeacherRepo{}
	users := &mockUserActivator{}
	svc := newPaymentService(repo, teachers, users, &mockProvider{})

	res := svc.HandleWebhook(context.Background(), WebhookRequest{TransactionID: "txn-42", Status: "SUCCESS"})
	assert.Equal(t, "Payment updated successfully", res.Message)
	assert.True(t, teachers.linkedCalled)
	assert.Empty(t, users.activated)
}

func TestPaymentServiceGetByTransactionID(t *testing.T) {
	repo := &mockPaymentRepo{
		payments: map[string]*models.Payment{"txn-42": {ID: 1, TransactionID: "txn-42", Status: models.PaymentPending}},
	}
	svc := newPaymentService(repo, &mockPaymentTeacherRepo{}, &mockUserActivator{}, &mockProvider{})

	payment, err := svc.GetByTransactionID(context.Background(), "txn-42")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, payment.Status)

	_, err = svc.GetByTransactionID(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
