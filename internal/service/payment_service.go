package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edumentor/edumentor-api/internal/models"
	"github.com/edumentor/edumentor-api/internal/repository"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
	"github.com/edumentor/edumentor-api/pkg/eversend"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	TransitionFromPending(ctx context.Context, transactionID string, status models.PaymentStatus) (bool, error)
}

type paymentTeacherReader interface {
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	LinkedUserID(ctx context.Context, teacherID int64) (*int64, error)
}

type userActivator interface {
	Activate(ctx context.Context, id int64) error
}

type collectionProvider interface {
	InitiateMobileMoney(ctx context.Context, req eversend.CollectionRequest) (*eversend.CollectionResponse, error)
}

// InitiatePaymentRequest represents payload for starting a mobile-money
// charge. Method names the mobile-money network, e.g. mtn or airtel.
type InitiatePaymentRequest struct {
	TeacherID   int64   `json:"teacher_id" validate:"required,gt=0"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Method      string  `json:"method" validate:"required,max=50"`
	PhoneNumber string  `json:"phone_number" validate:"required,max=20"`
}

// InitiatePaymentResponse acknowledges a started charge.
type InitiatePaymentResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
}

// WebhookRequest is the provider's asynchronous settlement callback.
type WebhookRequest struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// WebhookResponse acknowledges a webhook delivery. Deliveries are always
// acknowledged so the provider does not retry forever.
type WebhookResponse struct {
	Message string `json:"message"`
}

// PaymentService orchestrates the Eversend payment flow and the account
// activation that follows a settled charge.
type PaymentService struct {
	repo      paymentRepository
	teachers  paymentTeacherReader
	users     userActivator
	provider  collectionProvider
	baseURL   string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(repo paymentRepository, teachers paymentTeacherReader, users userActivator, provider collectionProvider, baseURL string, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		repo:      repo,
		teachers:  teachers,
		users:     users,
		provider:  provider,
		baseURL:   strings.TrimRight(baseURL, "/"),
		validator: validate,
		logger:    logger,
	}
}

// Initiate starts a mobile-money charge for a teacher's subscription. The
// teacher must exist before any provider call happens; a provider failure
// leaves no payment row behind.
func (s *PaymentService) Initiate(ctx context.Context, req InitiatePaymentRequest) (*InitiatePaymentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	method := strings.ToLower(strings.TrimSpace(req.Method))
	collection, err := s.provider.InitiateMobileMoney(ctx, eversend.CollectionRequest{
		Amount:      req.Amount,
		Currency:    "UGX",
		PhoneNumber: req.PhoneNumber,
		Network:     method,
		CallbackURL: s.baseURL + "/payments/webhook/eversend",
		Reason:      "Edumentor subscription payment",
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "payment provider request failed")
	}

	payment := &models.Payment{
		TeacherID:     req.TeacherID,
		Amount:        req.Amount,
		Method:        method,
		TransactionID: collection.Reference(),
		Status:        models.PaymentPending,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "payment already recorded for transaction")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}

	s.logger.Info("payment initiated",
		zap.Int64("teacher_id", req.TeacherID),
		zap.String("transaction_id", payment.TransactionID))

	return &InitiatePaymentResponse{Message: "Payment initiated", TransactionID: payment.TransactionID}, nil
}

// HandleWebhook processes a settlement callback. Malformed or unknown
// deliveries are acknowledged with an informational message rather than an
// error; only PENDING payments may transition, and a SUCCESS settlement
// activates the teacher's linked user account.
func (s *PaymentService) HandleWebhook(ctx context.Context, req WebhookRequest) *WebhookResponse {
	transactionID := strings.TrimSpace(req.TransactionID)
	if transactionID == "" {
		return &WebhookResponse{Message: "Missing transaction_id"}
	}

	payment, err := s.repo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("webhook for unknown payment", zap.String("transaction_id", transactionID))
			return &WebhookResponse{Message: "Payment not found"}
		}
		s.logger.Error("webhook payment lookup failed", zap.String("transaction_id", transactionID), zap.Error(err))
		return &WebhookResponse{Message: "Payment lookup failed"}
	}

	status, ok := normalizeWebhookStatus(req.Status)
	if !ok {
		s.logger.Info("webhook with unrecognized status",
			zap.String("transaction_id", transactionID),
			zap.String("status", req.Status))
		return &WebhookResponse{Message: "Unrecognized payment status"}
	}

	if payment.Status.Terminal() {
		if payment.Status == status {
			return &WebhookResponse{Message: "Payment already processed"}
		}
		s.logger.Warn("webhook conflicts with settled payment",
			zap.String("transaction_id", transactionID),
			zap.String("recorded", string(payment.Status)),
			zap.String("reported", string(status)))
		return &WebhookResponse{Message: "Payment already processed"}
	}

	updated, err := s.repo.TransitionFromPending(ctx, transactionID, status)
	if err != nil {
		s.logger.Error("webhook transition failed", zap.String("transaction_id", transactionID), zap.Error(err))
		return &WebhookResponse{Message: "Payment update failed"}
	}
	if !updated {
		return &WebhookResponse{Message: "Payment already processed"}
	}

	if status == models.PaymentSuccess {
		s.activateTeacherUser(ctx, payment.TeacherID)
	}

	return &WebhookResponse{Message: "Payment updated successfully"}
}

// GetByTransactionID returns a payment's current state.
func (s *PaymentService) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	payment, err := s.repo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}
	return payment, nil
}

func (s *PaymentService) activateTeacherUser(ctx context.Context, teacherID int64) {
	userID, err := s.teachers.LinkedUserID(ctx, teacherID)
	if err != nil {
		s.logger.Warn("activation lookup failed", zap.Int64("teacher_id", teacherID), zap.Error(err))
		return
	}
	if userID == nil {
		s.logger.Info("teacher has no linked user, skipping activation", zap.Int64("teacher_id", teacherID))
		return
	}
	if err := s.users.Activate(ctx, *userID); err != nil {
		s.logger.Error("account activation failed", zap.Int64("user_id", *userID), zap.Error(err))
		return
	}
	s.logger.Info("account activated", zap.Int64("user_id", *userID))
}

func normalizeWebhookStatus(raw string) (models.PaymentStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SUCCESS", "SUCCESSFUL", "COMPLETED":
		return models.PaymentSuccess, true
	case "FAILED", "FAILURE", "CANCELLED":
		return models.PaymentFailed, true
	default:
		return "", false
	}
}
