package client

import (
	"context"

	"volunteerhub-backend/domain"
)

type (
	NotificationState struct {
		UnreadOnly    bool
		Page          domain.PageQuery
		Notifications []domain.NotificationResponse
		UnreadCount   int64
		Pagination    domain.Pagination
	}

	NotificationStore struct {
		client *Client
	}
)

func NewNotificationStore(client *Client) *NotificationStore {
	return &NotificationStore{client: client}
}

func (s *NotificationStore) Load(ctx context.Context, state NotificationState, unreadOnly bool, page domain.PageQuery) (NotificationState, error) {
	res, err := s.client.Notifications(ctx, unreadOnly, page.Page, page.Limit)
	if err != nil {
		return state, err
	}
	return NotificationState{
		UnreadOnly:    unreadOnly,
		Page:          page,
		Notifications: res.Notifications,
		UnreadCount:   res.UnreadCount,
		Pagination:    res.Pagination,
	}, nil
}

// MarkRead marks one notification and reloads the current page.
func (s *NotificationStore) MarkRead(ctx context.Context, state NotificationState, id string) (NotificationState, error) {
	if _, err := s.client.MarkNotificationRead(ctx, id); err != nil {
		return state, err
	}
	return s.Load(ctx, state, state.UnreadOnly, state.Page)
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, state NotificationState) (NotificationState, int64, error) {
	res, err := s.client.MarkAllNotificationsRead(ctx)
	if err != nil {
		return state, 0, err
	}
	next, err := s.Load(ctx, state, state.UnreadOnly, state.Page)
	return next, res.Modified, err
}
