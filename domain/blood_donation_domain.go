package domain

import "time"

const (
	DonationStatusPending   = "pending"
	DonationStatusConfirmed = "confirmed"
	DonationStatusCompleted = "completed"
	DonationStatusCancelled = "cancelled"
)

var (
	BloodTypes = []string{"O+", "O-", "A+", "A-", "B+", "B-", "AB+", "AB-"}

	MessageSuccessRegisterDonation     = "Blood donation registration successful"
	MessageSuccessGetDonations         = "Blood donations retrieved successfully"
	MessageSuccessUpdateDonationStatus = "Blood donation status updated successfully"
	MessageSuccessGetBloodStatistics   = "Blood statistics retrieved successfully"

	MessageFailedRegisterDonation     = "Failed to register blood donation"
	MessageFailedGetDonations         = "Failed to retrieve blood donations"
	MessageFailedUpdateDonationStatus = "Failed to update blood donation status"
	MessageFailedGetBloodStatistics   = "Failed to retrieve statistics"

	ErrDonationNotFound       = NewError(KindNotFound, "Blood donation not found")
	ErrDonationAlreadyPending = NewError(KindRejected, "Email already registered for blood donation")
	ErrInvalidDonationDate    = NewError(KindInvalid, "Invalid last donation date")
)

type (
	RegisterDonationRequest struct {
		DonorName          string `json:"donorName" validate:"required,max=100"`
		DonorEmail         string `json:"donorEmail" validate:"required,email"`
		DonorPhone         string `json:"donorPhone" validate:"required,phone"`
		BloodType          string `json:"bloodType" validate:"required,bloodtype"`
		LastDonationDate   string `json:"lastDonationDate" validate:"omitempty"`
		PreferredEventDate string `json:"preferredEventDate" validate:"required"`
		Notes              string `json:"notes" validate:"omitempty,max=500"`
	}

	UpdateDonationStatusRequest struct {
		Status string  `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
		Notes  *string `json:"notes" validate:"omitempty,max=500"`
	}

	DonationFilter struct {
		Status    string
		BloodType string
		PageQuery
	}

	BloodDonationResponse struct {
		ID                 string     `json:"id"`
		DonorName          string     `json:"donorName"`
		DonorEmail         string     `json:"donorEmail"`
		DonorPhone         string     `json:"donorPhone"`
		BloodType          string     `json:"bloodType"`
		LastDonationDate   *time.Time `json:"lastDonationDate,omitempty"`
		PreferredEventDate string     `json:"preferredEventDate"`
		Status             string     `json:"status"`
		Notes              string     `json:"notes,omitempty"`
		UserID             string     `json:"user,omitempty"`
		CreatedAt          time.Time  `json:"createdAt"`
		UpdatedAt          time.Time  `json:"updatedAt"`
	}

	BloodDonationsResponse struct {
		Donations  []BloodDonationResponse `json:"donations"`
		Pagination Pagination              `json:"pagination"`
	}

	BloodTypeStatistic struct {
		BloodType string           `json:"bloodType"`
		Count     int64            `json:"count"`
		Statuses  map[string]int64 `json:"statuses"`
	}

	BloodStatistics struct {
		Statistics         []BloodTypeStatistic `json:"statistics"`
		TotalDonors        int64                `json:"totalDonors"`
		CompletedDonations int64                `json:"completedDonations"`
	}
)
