package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/models"
	"gigflow_backend/internal/repositories"
	"gigflow_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Publisher pushes a stored notification to live sessions. It must not block.
type Publisher interface {
	Publish(n *models.Notification)
}

type noopPublisher struct{}

func (noopPublisher) Publish(*models.Notification) {}

type NotificationService interface {
	// Append stores a new unread notification.
	Append(ctx context.Context, userID, notifType, message string, payload interface{}) (*models.Notification, error)
	// AppendTx is Append inside the caller's transaction.
	AppendTx(ctx context.Context, tx *gorm.DB, userID, notifType, message string, payload interface{}) (*models.Notification, error)
	// Publish pushes an already stored notification. Failures are logged only.
	Publish(ctx context.Context, n *models.Notification)
	// CommitAndPublish runs write, which must commit the notification it
	// returns, and publishes the result while holding the recipient's lock.
	// Live delivery to one recipient therefore follows commit order.
	CommitAndPublish(ctx context.Context, recipientID string, write func() (*models.Notification, error)) error
	// Notify is Append followed by Publish.
	Notify(ctx context.Context, userID, notifType, message string, payload interface{}) (*models.Notification, error)

	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, notificationID, userID string) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)

	// DeleteReadOlderThan removes read notifications created before cutoff.
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type notificationService struct {
	db        *gorm.DB
	repo      repositories.NotificationRepository
	publisher Publisher
	now       Clock
	order     *keyedMutex
}

func NewNotificationService(db *gorm.DB, repo repositories.NotificationRepository, publisher Publisher, now Clock) NotificationService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	if now == nil {
		now = SystemClock
	}
	return &notificationService{
		db:        db,
		repo:      repo,
		publisher: publisher,
		now:       newIncreasingClock(now).Now,
		order:     newKeyedMutex(),
	}
}

func (s *notificationService) Append(ctx context.Context, userID, notifType, message string, payload interface{}) (*models.Notification, error) {
	return s.AppendTx(ctx, s.db.WithContext(ctx), userID, notifType, message, payload)
}

func (s *notificationService) AppendTx(ctx context.Context, tx *gorm.DB, userID, notifType, message string, payload interface{}) (*models.Notification, error) {
	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		n.Data = datatypes.JSON(raw)
	}

	now := s.now()
	n.CreatedAt = now
	n.UpdatedAt = now

	if err := s.repo.CreateNotification(tx, n); err != nil {
		if errors.Is(err, repositories.ErrInvalidNotificationData) {
			return nil, apperrors.Validation("notification", err.Error())
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.CtxDebug(ctx, "notification stored", "notification_id", n.ID, "recipient_id", userID, "type", notifType)
	return n, nil
}

func (s *notificationService) Publish(ctx context.Context, n *models.Notification) {
	defer func() {
		if r := recover(); r != nil {
			logger.CtxError(ctx, "notification publish panicked", "notification_id", n.ID, "panic", r)
		}
	}()
	s.publisher.Publish(n)
}

func (s *notificationService) CommitAndPublish(ctx context.Context, recipientID string, write func() (*models.Notification, error)) error {
	unlock := s.order.Lock(recipientID)
	defer unlock()

	n, err := write()
	if err != nil {
		return err
	}
	if n != nil {
		s.Publish(ctx, n)
	}
	return nil
}

func (s *notificationService) Notify(ctx context.Context, userID, notifType, message string, payload interface{}) (*models.Notification, error) {
	var n *models.Notification
	err := s.CommitAndPublish(ctx, userID, func() (*models.Notification, error) {
		var err error
		n, err = s.Append(ctx, userID, notifType, message, payload)
		return n, err
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.repo.FindUserNotifications(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.GetUnreadCount(s.db.WithContext(ctx), userID)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) (*models.Notification, error) {
	db := s.db.WithContext(ctx)

	n, err := s.repo.FindNotificationByID(db, notificationID)
	if err != nil {
		return nil, handleNotificationError(err)
	}
	if n.UserID != userID {
		return nil, apperrors.Forbidden("notification", "Notification belongs to another user")
	}
	if n.IsRead {
		return n, nil
	}

	if err := s.repo.MarkAsRead(db, notificationID, s.now()); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	n, err = s.repo.FindNotificationByID(db, notificationID)
	if err != nil {
		return nil, handleNotificationError(err)
	}
	return n, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	updated, err := s.repo.MarkAllAsRead(s.db.WithContext(ctx), userID, s.now())
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	logger.CtxInfo(ctx, "notifications marked read", "updated", updated)
	return updated, nil
}

func (s *notificationService) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repo.DeleteReadNotifications(s.db.WithContext(ctx), cutoff)
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return deleted, nil
}

func handleNotificationError(err error) error {
	if errors.Is(err, repositories.ErrNotificationNotFound) {
		return apperrors.ErrNotFoundIn(err, "notification", "Notification not found")
	}
	return apperrors.DatabaseError(err)
}
