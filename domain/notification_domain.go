package domain

import "time"

const (
	NotificationEventCreated         = "event_created"
	NotificationEventApproved        = "event_approved"
	NotificationEventRejected        = "event_rejected"
	NotificationRegistrationNew      = "registration_new"
	NotificationRegistrationApproved = "registration_approved"
	NotificationRegistrationRejected = "registration_rejected"
	NotificationPostNew              = "post_new"
	NotificationCommentNew           = "comment_new"
	NotificationLikeNew              = "like_new"
	NotificationEventCompleted       = "event_completed"
	NotificationManagerApplication   = "manager_application"
	NotificationManagerApproved      = "manager_approved"
	NotificationManagerRejected      = "manager_rejected"
	NotificationRoleUpdated          = "role_updated"
)

var (
	MessageSuccessGetNotifications = "Notifications retrieved successfully"
	MessageSuccessMarkRead         = "Notification marked as read"
	MessageSuccessMarkAllRead      = "All notifications marked as read"
	MessageSuccessSubscribe        = "Push subscription saved"
	MessageSuccessUnsubscribe      = "Push subscription removed"
	MessageSuccessVapidKey         = "VAPID public key retrieved"
	MessageNoUnreadNotifications   = "No unread notifications"

	MessageFailedGetNotifications = "Failed to retrieve notifications"
	MessageFailedMarkRead         = "Failed to mark notification as read"
	MessageFailedSubscribe        = "Failed to save push subscription"
	MessageFailedUnsubscribe      = "Failed to remove push subscription"

	ErrNotificationNotFound = NewError(KindNotFound, "Notification not found")
	ErrSubscriptionNotFound = NewError(KindNotFound, "Subscription not found")
	ErrVapidNotConfigured   = NewError(KindInternal, "VAPID public key not configured")
)

type (
	// NotificationInput describes a notification produced as a side effect of another operation.
	NotificationInput struct {
		RecipientID           string
		SenderID              string
		Type                  string
		Title                 string
		Message               string
		RelatedEventID        string
		RelatedPostID         string
		RelatedRegistrationID string
	}

	NotificationFilter struct {
		UnreadOnly bool
		PageQuery
	}

	NotificationResponse struct {
		ID                    string       `json:"id"`
		RecipientID           string       `json:"recipient"`
		Sender                *UserSummary `json:"sender,omitempty"`
		Type                  string       `json:"type"`
		Title                 string       `json:"title"`
		Message               string       `json:"message"`
		RelatedEventID        string       `json:"relatedEvent,omitempty"`
		RelatedPostID         string       `json:"relatedPost,omitempty"`
		RelatedRegistrationID string       `json:"relatedRegistration,omitempty"`
		IsRead                bool         `json:"isRead"`
		ReadAt                *time.Time   `json:"readAt,omitempty"`
		CreatedAt             time.Time    `json:"createdAt"`
	}

	NotificationsResponse struct {
		Notifications []NotificationResponse `json:"notifications"`
		UnreadCount   int64                  `json:"unreadCount"`
		Pagination    Pagination             `json:"pagination"`
	}

	MarkAllReadResponse struct {
		Modified int64 `json:"modifiedCount"`
	}

	PushKeys struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	}

	PushSubscriptionPayload struct {
		Endpoint string   `json:"endpoint" validate:"required,url"`
		Keys     PushKeys `json:"keys" validate:"required"`
	}

	SubscribeRequest struct {
		Subscription PushSubscriptionPayload `json:"subscription" validate:"required"`
	}

	UnsubscribeRequest struct {
		Endpoint string `json:"endpoint" validate:"required"`
	}

	// PushMessage is the JSON body delivered to push endpoints.
	PushMessage struct {
		Title   string `json:"title"`
		Message string `json:"message"`
		Type    string `json:"type"`
	}

	VapidKeyResponse struct {
		PublicKey string `json:"publicKey"`
	}
)
