package client

import (
	"context"
	"net/http"
	"net/url"

	"volunteerhub-backend/domain"
)

func (c *Client) Notifications(ctx context.Context, unreadOnly bool, page, limit int) (*domain.NotificationsResponse, error) {
	q := pageValues(page, limit)
	if unreadOnly {
		q.Set("unreadOnly", "true")
	}
	out := new(domain.NotificationsResponse)
	if err := c.do(ctx, http.MethodGet, "/api/notifications", q, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*domain.NotificationResponse, error) {
	out := new(domain.NotificationResponse)
	if err := c.do(ctx, http.MethodPut, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) (*domain.MarkAllReadResponse, error) {
	out := new(domain.MarkAllReadResponse)
	if err := c.do(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Subscribe(ctx context.Context, sub domain.PushSubscriptionPayload) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/subscribe", nil, domain.SubscribeRequest{Subscription: sub}, nil)
}

func (c *Client) Unsubscribe(ctx context.Context, endpoint string) error {
	return c.do(ctx, http.MethodPost, "/api/notifications/unsubscribe", nil, domain.UnsubscribeRequest{Endpoint: endpoint}, nil)
}

func (c *Client) VapidPublicKey(ctx context.Context) (string, error) {
	var out domain.VapidKeyResponse
	if err := c.do(ctx, http.MethodGet, "/api/notifications/vapid-public-key", nil, nil, &out); err != nil {
		return "", err
	}
	return out.PublicKey, nil
}
