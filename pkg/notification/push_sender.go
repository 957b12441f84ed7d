package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"volunteerhub-backend/entities"

	webpush "github.com/SherClockHolmes/webpush-go"
)

var (
	// ErrSubscriptionGone means the push service no longer knows the endpoint (404 or 410).
	ErrSubscriptionGone = errors.New("push subscription expired or unsubscribed")
	ErrPushDisabled     = errors.New("web push is not configured")
)

type (
	PushSender interface {
		Send(ctx context.Context, subscription *entities.PushSubscription, payload []byte) error
		PublicKey() string
	}

	VapidConfig struct {
		PublicKey  string
		PrivateKey string
		Subject    string
	}

	webPushSender struct {
		cfg    VapidConfig
		client *http.Client
	}
)

func NewWebPushSender(cfg VapidConfig) PushSender {
	return &webPushSender{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *webPushSender) PublicKey() string {
	return s.cfg.PublicKey
}

func (s *webPushSender) Send(ctx context.Context, subscription *entities.PushSubscription, payload []byte) error {
	if s.cfg.PublicKey == "" || s.cfg.PrivateKey == "" {
		return ErrPushDisabled
	}

	keys := subscription.Keys.Data()
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: subscription.Endpoint,
		Keys: webpush.Keys{
			P256dh: keys.P256dh,
			Auth:   keys.Auth,
		},
	}, &webpush.Options{
		HTTPClient:      s.client,
		Subscriber:      strings.TrimPrefix(s.cfg.Subject, "mailto:"),
		VAPIDPublicKey:  s.cfg.PublicKey,
		VAPIDPrivateKey: s.cfg.PrivateKey,
		TTL:             24 * 60 * 60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service responded %d", resp.StatusCode)
	}
	return nil
}
