package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sgpa-dev/sgpa-api/internal/authz"
	"github.com/sgpa-dev/sgpa-api/internal/models"
	appErrors "github.com/sgpa-dev/sgpa-api/pkg/errors"
)

type notificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]models.Notification, error)
	SetRead(ctx context.Context, id string, read bool) error
}

// PushNotificationRequest represents payload for pushing a notification to a
// user.
type PushNotificationRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Message     string `json:"message" validate:"required"`
}

// NotificationService exposes the per-user notification inbox.
type NotificationService struct {
	repo    notificationRepository
	metrics *MetricsService
	logger  *zap.Logger
}

// NewNotificationService creates an instance of NotificationService.
func NewNotificationService(repo notificationRepository, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, metrics: metrics, logger: logger}
}

// ListOwn returns the caller's notifications, newest first. With unreadOnly
// set, read notifications are filtered out.
func (s *NotificationService) ListOwn(ctx context.Context, unreadOnly bool, claims *models.JWTClaims) ([]models.Notification, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	notifications, err := s.repo.ListByRecipient(ctx, claims.UserID, unreadOnly)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notifications")
	}
	return notifications, nil
}

// Push persists a notification addressed to another user. Reviewer only.
func (s *NotificationService) Push(ctx context.Context, req PushNotificationRequest, claims *models.JWTClaims) (*models.Notification, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !authz.Allows(claims.Role, authz.OpPushNotification) {
		return nil, appErrors.ErrForbidden
	}
	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.RecipientID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el destinatario y el mensaje son requeridos")
	}

	notification := &models.Notification{
		Date:        time.Now().UTC(),
		Message:     req.Message,
		RecipientID: req.RecipientID,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notification")
	}
	s.metrics.RecordNotificationEmitted()
	return notification, nil
}

// MarkRead flips the read flag on one of the caller's notifications.
func (s *NotificationService) MarkRead(ctx context.Context, id string, read bool, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}

	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch notification")
	}
	if notification.RecipientID != claims.UserID {
		return appErrors.ErrForbidden
	}

	if err := s.repo.SetRead(ctx, id, read); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update notification")
	}
	return nil
}
