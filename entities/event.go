package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Event struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Title              string         `gorm:"type:varchar(200);not null" json:"title"`
	Description        string         `gorm:"type:varchar(2000);not null" json:"description"`
	Category           string         `gorm:"type:varchar(20);not null;index" json:"category"`
	Date               time.Time      `gorm:"not null;index" json:"date"`
	StartTime          string         `gorm:"type:varchar(10)" json:"startTime"`
	EndTime            string         `gorm:"type:varchar(10)" json:"endTime"`
	Location           string         `gorm:"not null" json:"location"`
	Image              string         `json:"image"`
	Capacity           int            `gorm:"not null;check:capacity >= 1" json:"capacity"`
	RequiredVolunteers int            `json:"requiredVolunteers"`
	CreatedByID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"createdBy"`
	Status             string         `gorm:"type:varchar(20);default:pending;index" json:"status"`
	Impact             string         `gorm:"type:varchar(500)" json:"impact"`
	Skills             pq.StringArray `gorm:"type:text[]" json:"skills"`
	Requirements       pq.StringArray `gorm:"type:text[]" json:"requirements"`
	IsApproved         bool           `gorm:"default:false;index" json:"isApproved"`
	ApprovedByID       *uuid.UUID     `gorm:"type:uuid" json:"approvedBy,omitempty"`
	ApprovalDate       *time.Time     `json:"approvalDate,omitempty"`

	CreatedBy     *User           `gorm:"foreignKey:CreatedByID" json:"-"`
	Registrations []*Registration `gorm:"foreignKey:EventID" json:"-"`
	Timestamp
}
