package notification

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"
	"volunteerhub-backend/internal/metrics"
	"volunteerhub-backend/pkg/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const pushTimeout = 10 * time.Second

type (
	// Notifier is the side-effect surface other services use. Failures are logged, never returned.
	Notifier interface {
		Notify(ctx context.Context, in domain.NotificationInput)
	}

	NotificationService interface {
		Notifier
		Create(ctx context.Context, in domain.NotificationInput) (*domain.NotificationResponse, error)
		List(ctx context.Context, userID string, filter domain.NotificationFilter) (*domain.NotificationsResponse, error)
		MarkRead(ctx context.Context, userID string, notificationID string) (*domain.NotificationResponse, error)
		MarkAllRead(ctx context.Context, userID string) (*domain.MarkAllReadResponse, error)
		Subscribe(ctx context.Context, userID string, req domain.SubscribeRequest) error
		Unsubscribe(ctx context.Context, userID string, endpoint string) error
		VapidPublicKey() (string, error)
	}

	notificationService struct {
		repo   NotificationRepository
		push   PushSender
		logger *zap.Logger
		now    func() time.Time
	}
)

func NewNotificationService(repo NotificationRepository, push PushSender, logger *zap.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		push:   push,
		logger: logger,
		now:    time.Now,
	}
}

// Create persists the notification, then pushes it to every active subscription of the
// recipient. Push outcomes never affect the returned notification.
func (s *notificationService) Create(ctx context.Context, in domain.NotificationInput) (*domain.NotificationResponse, error) {
	recipientID, err := uuid.Parse(in.RecipientID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	n := &entities.Notification{
		ID:                    uuid.New(),
		RecipientID:           recipientID,
		SenderID:              optionalUUID(in.SenderID),
		Type:                  in.Type,
		Title:                 in.Title,
		Message:               in.Message,
		RelatedEventID:        optionalUUID(in.RelatedEventID),
		RelatedPostID:         optionalUUID(in.RelatedPostID),
		RelatedRegistrationID: optionalUUID(in.RelatedRegistrationID),
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	metrics.NotificationsCreated.WithLabelValues(in.Type).Inc()

	s.fanOut(ctx, in)

	res := toNotificationResponse(n)
	return &res, nil
}

func (s *notificationService) Notify(ctx context.Context, in domain.NotificationInput) {
	if _, err := s.Create(ctx, in); err != nil {
		s.logger.Error("failed to create notification",
			zap.String("type", in.Type),
			zap.String("recipient_id", in.RecipientID),
			zap.Error(err),
		)
	}
}

func (s *notificationService) fanOut(ctx context.Context, in domain.NotificationInput) {
	if s.push == nil {
		return
	}
	subscriptions, err := s.repo.ListActiveSubscriptions(ctx, in.RecipientID)
	if err != nil {
		s.logger.Warn("failed to load push subscriptions", zap.String("recipient_id", in.RecipientID), zap.Error(err))
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(domain.PushMessage{Title: in.Title, Message: in.Message, Type: in.Type})
	if err != nil {
		s.logger.Error("failed to encode push payload", zap.Error(err))
		return
	}

	var wg sync.WaitGroup
	for _, sub := range subscriptions {
		wg.Add(1)
		go func(sub *entities.PushSubscription) {
			defer wg.Done()
			s.deliver(ctx, sub, payload)
		}(sub)
	}
	wg.Wait()
}

func (s *notificationService) deliver(ctx context.Context, sub *entities.PushSubscription, payload []byte) {
	sendCtx, cancel := context.WithTimeout(ctx, pushTimeout)
	defer cancel()

	err := s.push.Send(sendCtx, sub, payload)
	switch {
	case err == nil:
		metrics.PushDeliveries.WithLabelValues("sent").Inc()
	case errors.Is(err, ErrPushDisabled):
		metrics.PushDeliveries.WithLabelValues("disabled").Inc()
	case errors.Is(err, ErrSubscriptionGone):
		metrics.PushDeliveries.WithLabelValues("gone").Inc()
		// the request context may already be done; deactivation must still land
		if derr := s.repo.DeactivateSubscriptionByID(context.WithoutCancel(ctx), sub.ID.String()); derr != nil {
			s.logger.Error("failed to deactivate push subscription", zap.String("subscription_id", sub.ID.String()), zap.Error(derr))
		}
	default:
		metrics.PushDeliveries.WithLabelValues("failed").Inc()
		s.logger.Warn("push delivery failed", zap.String("subscription_id", sub.ID.String()), zap.Error(err))
	}
}

func (s *notificationService) List(ctx context.Context, userID string, filter domain.NotificationFilter) (*domain.NotificationsResponse, error) {
	filter.PageQuery = filter.PageQuery.Normalize(20)

	notifications, total, err := s.repo.ListNotifications(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := &domain.NotificationsResponse{
		Notifications: make([]domain.NotificationResponse, 0, len(notifications)),
		UnreadCount:   unread,
		Pagination:    domain.NewPagination(total, filter.PageQuery),
	}
	for _, n := range notifications {
		res.Notifications = append(res.Notifications, toNotificationResponse(n))
	}
	return res, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, notificationID string) (*domain.NotificationResponse, error) {
	if _, err := uuid.Parse(notificationID); err != nil {
		return nil, domain.ErrNotificationNotFound
	}
	n, err := s.repo.MarkRead(ctx, notificationID, userID, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}
	res := toNotificationResponse(n)
	return &res, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) (*domain.MarkAllReadResponse, error) {
	modified, err := s.repo.MarkAllRead(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	return &domain.MarkAllReadResponse{Modified: modified}, nil
}

func (s *notificationService) Subscribe(ctx context.Context, userID string, req domain.SubscribeRequest) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.repo.UpsertSubscription(ctx, &entities.PushSubscription{
		ID:       uuid.New(),
		UserID:   uid,
		Endpoint: req.Subscription.Endpoint,
		Keys: datatypes.NewJSONType(entities.PushKeys{
			P256dh: req.Subscription.Keys.P256dh,
			Auth:   req.Subscription.Keys.Auth,
		}),
		IsActive: true,
	})
}

func (s *notificationService) Unsubscribe(ctx context.Context, userID string, endpoint string) error {
	affected, err := s.repo.DeactivateSubscription(ctx, userID, endpoint)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (s *notificationService) VapidPublicKey() (string, error) {
	if s.push == nil || s.push.PublicKey() == "" {
		return "", domain.ErrVapidNotConfigured
	}
	return s.push.PublicKey(), nil
}

func optionalUUID(id string) *uuid.UUID {
	if id == "" {
		return nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	return &parsed
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func toNotificationResponse(n *entities.Notification) domain.NotificationResponse {
	return domain.NotificationResponse{
		ID:                    n.ID.String(),
		RecipientID:           n.RecipientID.String(),
		Sender:                user.ToUserSummary(n.Sender),
		Type:                  n.Type,
		Title:                 n.Title,
		Message:               n.Message,
		RelatedEventID:        uuidString(n.RelatedEventID),
		RelatedPostID:         uuidString(n.RelatedPostID),
		RelatedRegistrationID: uuidString(n.RelatedRegistrationID),
		IsRead:                n.IsRead,
		ReadAt:                n.ReadAt,
		CreatedAt:             n.CreatedAt,
	}
}
