package entities

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Membership struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FullName           string         `gorm:"type:varchar(100);not null" json:"fullName"`
	Email              string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone              string         `gorm:"type:varchar(30);not null" json:"phone"`
	Address            string         `gorm:"not null" json:"address"`
	City               string         `json:"city"`
	State              string         `json:"state"`
	ZipCode            string         `gorm:"type:varchar(20)" json:"zipCode"`
	MembershipType     string         `gorm:"type:varchar(10);default:basic;index" json:"membershipType"`
	Interests          pq.StringArray `gorm:"type:text[]" json:"interests"`
	Bio                string         `json:"bio"`
	AcceptTerms        bool           `gorm:"not null" json:"acceptTerms"`
	Status             string         `gorm:"type:varchar(10);default:pending;index" json:"status"`
	VerificationStatus bool           `gorm:"default:false" json:"verificationStatus"`

	Timestamp
}
