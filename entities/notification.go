package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Notification struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipientID           uuid.UUID  `gorm:"type:uuid;not null;index:idx_notification_recipient_read" json:"recipient"`
	SenderID              *uuid.UUID `gorm:"type:uuid" json:"sender,omitempty"`
	Type                  string     `gorm:"type:varchar(40);not null" json:"type"`
	Title                 string     `gorm:"not null" json:"title"`
	Message               string     `gorm:"not null" json:"message"`
	RelatedEventID        *uuid.UUID `gorm:"type:uuid" json:"relatedEvent,omitempty"`
	RelatedPostID         *uuid.UUID `gorm:"type:uuid" json:"relatedPost,omitempty"`
	RelatedRegistrationID *uuid.UUID `gorm:"type:uuid" json:"relatedRegistration,omitempty"`
	IsRead                bool       `gorm:"default:false;index:idx_notification_recipient_read" json:"isRead"`
	ReadAt                *time.Time `json:"readAt,omitempty"`

	Sender *User `gorm:"foreignKey:SenderID" json:"-"`
	Timestamp
}

type PushKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type PushSubscription struct {
	ID       uuid.UUID                    `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID                    `gorm:"type:uuid;not null;index" json:"user"`
	Endpoint string                       `gorm:"uniqueIndex;not null" json:"endpoint"`
	Keys     datatypes.JSONType[PushKeys] `json:"keys"`
	IsActive bool                         `gorm:"default:true" json:"isActive"`

	Timestamp
}
