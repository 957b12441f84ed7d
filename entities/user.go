package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name             string     `gorm:"type:varchar(100);not null" json:"name"`
	Email            string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	GoogleID         *string    `gorm:"uniqueIndex" json:"googleId,omitempty"`
	FacebookID       *string    `gorm:"uniqueIndex" json:"facebookId,omitempty"`
	Phone            string     `gorm:"type:varchar(30)" json:"phone"`
	Address          string     `gorm:"type:varchar(300)" json:"address"`
	BloodType        string     `gorm:"type:varchar(3)" json:"bloodType"`
	Role             string     `gorm:"type:varchar(20);default:volunteer;index" json:"role"`
	Avatar           string     `json:"avatar"`
	Bio              string     `gorm:"type:varchar(500)" json:"bio"`
	IsActive         bool       `gorm:"default:true" json:"isActive"`
	Verified         bool       `gorm:"default:false" json:"verified"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
	EventsCompleted  int        `gorm:"default:0" json:"eventsCompleted"`
	HoursContributed float64    `gorm:"default:0" json:"hoursContributed"`

	// RequestedRole is set while a role application awaits an admin decision.
	RequestedRole     string     `gorm:"type:varchar(20);index" json:"requestedRole,omitempty"`
	RoleRequestReason string     `gorm:"type:varchar(500)" json:"roleRequestReason,omitempty"`
	RoleRequestedAt   *time.Time `json:"roleRequestedAt,omitempty"`

	Timestamp
}
