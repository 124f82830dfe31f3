package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/edumentor/edumentor-api/internal/models"
	appErrors "github.com/edumentor/edumentor-api/pkg/errors"
)

type notificationReader interface {
	ListByRecipient(ctx context.Context, userID int64) ([]models.Notification, error)
}

// NotificationService exposes a user's notification feed.
type NotificationService struct {
	repo   notificationReader
	logger *zap.Logger
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo notificationReader, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, logger: logger}
}

// List returns a user's notifications, newest first. An empty feed is a
// normal outcome, not an error.
func (s *NotificationService) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications, err := s.repo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}
