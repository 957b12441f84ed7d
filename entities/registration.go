package entities

import (
	"time"

	"github.com/google/uuid"
)

type Registration struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	VolunteerID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_registration_volunteer_event" json:"volunteer"`
	EventID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_registration_volunteer_event;index" json:"event"`
	Status         string     `gorm:"type:varchar(20);default:registered;index" json:"status"`
	HoursWorked    float64    `gorm:"default:0;check:hours_worked >= 0" json:"hoursWorked"`
	Feedback       string     `gorm:"type:varchar(500)" json:"feedback"`
	Rating         *int       `gorm:"check:rating >= 0 AND rating <= 5" json:"rating,omitempty"`
	ApprovedByID   *uuid.UUID `gorm:"type:uuid" json:"approvedBy,omitempty"`
	ApprovalDate   *time.Time `json:"approvalDate,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`

	Volunteer *User  `gorm:"foreignKey:VolunteerID" json:"-"`
	Event     *Event `gorm:"foreignKey:EventID" json:"-"`
	Timestamp
}
