package entities

import (
	"time"

	"github.com/google/uuid"
)

type BloodDonation struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonorName          string     `gorm:"type:varchar(100);not null" json:"donorName"`
	DonorEmail         string     `gorm:"type:varchar(255);not null;index" json:"donorEmail"`
	DonorPhone         string     `gorm:"type:varchar(30);not null" json:"donorPhone"`
	BloodType          string     `gorm:"type:varchar(3);not null;index" json:"bloodType"`
	LastDonationDate   *time.Time `json:"lastDonationDate,omitempty"`
	PreferredEventDate string     `gorm:"not null" json:"preferredEventDate"`
	Status             string     `gorm:"type:varchar(20);default:pending;index" json:"status"`
	Notes              string     `gorm:"type:varchar(500)" json:"notes"`
	UserID             *uuid.UUID `gorm:"type:uuid" json:"user,omitempty"`

	Timestamp
}
