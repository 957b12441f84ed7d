package notification

import (
	"context"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	NotificationRepository interface {
		CreateNotification(ctx context.Context, notification *entities.Notification) error
		ListNotifications(ctx context.Context, recipientID string, filter domain.NotificationFilter) ([]*entities.Notification, int64, error)
		CountUnread(ctx context.Context, recipientID string) (int64, error)
		// MarkRead only ever moves is_read from false to true.
		MarkRead(ctx context.Context, id string, recipientID string, at time.Time) (*entities.Notification, error)
		MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, error)

		UpsertSubscription(ctx context.Context, subscription *entities.PushSubscription) error
		DeactivateSubscription(ctx context.Context, userID string, endpoint string) (int64, error)
		DeactivateSubscriptionByID(ctx context.Context, id string) error
		ListActiveSubscriptions(ctx context.Context, userID string) ([]*entities.PushSubscription, error)
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *entities.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) ListNotifications(ctx context.Context, recipientID string, filter domain.NotificationFilter) ([]*entities.Notification, int64, error) {
	var notifications []*entities.Notification
	var count int64

	query := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("recipient_id = ?", recipientID)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Sender").
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, count, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string, recipientID string, at time.Time) (*entities.Notification, error) {
	if err := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("id = ? AND recipient_id = ? AND is_read = ?", id, recipientID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error; err != nil {
		return nil, err
	}

	var notification entities.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		First(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}

// UpsertSubscription reassigns an existing endpoint to the subscribing user.
func (r *notificationRepository) UpsertSubscription(ctx context.Context, subscription *entities.PushSubscription) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "keys", "is_active", "updated_at"}),
		}).
		Create(subscription).Error
}

func (r *notificationRepository) DeactivateSubscription(ctx context.Context, userID string, endpoint string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.PushSubscription{}).
		Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) DeactivateSubscriptionByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.PushSubscription{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *notificationRepository) ListActiveSubscriptions(ctx context.Context, userID string) ([]*entities.PushSubscription, error) {
	var subscriptions []*entities.PushSubscription
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	return subscriptions, nil
}
