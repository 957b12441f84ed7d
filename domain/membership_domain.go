package domain

import "time"

const (
	MembershipStatusPending  = "pending"
	MembershipStatusActive   = "active"
	MembershipStatusInactive = "inactive"

	MembershipTypeBasic = "basic"
)

var (
	MessageSuccessRegisterMembership = "Membership registration successful. Check your email for verification."
	MessageSuccessGetMemberships     = "Memberships retrieved successfully"
	MessageSuccessApproveMembership  = "Membership approved successfully"
	MessageSuccessRejectMembership   = "Membership rejected"
	MessageSuccessGetMembershipStats = "Membership statistics retrieved successfully"

	MessageFailedRegisterMembership = "Failed to register membership"
	MessageFailedGetMemberships     = "Failed to retrieve memberships"
	MessageFailedUpdateMembership   = "Failed to update membership"
	MessageFailedGetMembershipStats = "Failed to retrieve statistics"

	ErrMembershipNotFound   = NewError(KindNotFound, "Membership not found")
	ErrMembershipRegistered = NewError(KindRejected, "Email already registered for membership")
	ErrTermsNotAccepted     = NewError(KindInvalid, "Must accept terms and conditions")
)

type (
	RegisterMembershipRequest struct {
		FullName       string   `json:"fullName" validate:"required,max=100"`
		Email          string   `json:"email" validate:"required,email"`
		Phone          string   `json:"phone" validate:"required,phone"`
		Address        string   `json:"address" validate:"required"`
		City           string   `json:"city" validate:"omitempty,max=100"`
		State          string   `json:"state" validate:"omitempty,max=100"`
		ZipCode        string   `json:"zipCode" validate:"omitempty,max=20"`
		MembershipType string   `json:"membershipType" validate:"omitempty,oneof=basic premium vip"`
		Interests      []string `json:"interests" validate:"omitempty,dive,max=100"`
		Bio            string   `json:"bio" validate:"omitempty,max=500"`
		AcceptTerms    bool     `json:"acceptTerms"`
	}

	MembershipFilter struct {
		Status         string
		MembershipType string
		PageQuery
	}

	MembershipResponse struct {
		ID                 string    `json:"id"`
		FullName           string    `json:"fullName"`
		Email              string    `json:"email"`
		Phone              string    `json:"phone"`
		Address            string    `json:"address"`
		City               string    `json:"city,omitempty"`
		State              string    `json:"state,omitempty"`
		ZipCode            string    `json:"zipCode,omitempty"`
		MembershipType     string    `json:"membershipType"`
		Interests          []string  `json:"interests"`
		Bio                string    `json:"bio,omitempty"`
		AcceptTerms        bool      `json:"acceptTerms"`
		Status             string    `json:"status"`
		VerificationStatus bool      `json:"verificationStatus"`
		CreatedAt          time.Time `json:"createdAt"`
		UpdatedAt          time.Time `json:"updatedAt"`
	}

	MembershipsResponse struct {
		Memberships []MembershipResponse `json:"memberships"`
		Pagination  Pagination           `json:"pagination"`
	}

	MembershipCounts struct {
		Total    int64 `json:"total"`
		Active   int64 `json:"active"`
		Pending  int64 `json:"pending"`
		Inactive int64 `json:"inactive"`
	}

	MembershipTypeStatistic struct {
		MembershipType string `json:"membershipType"`
		Count          int64  `json:"count"`
	}

	MembershipStatistics struct {
		Stats     MembershipCounts          `json:"stats"`
		TypeStats []MembershipTypeStatistic `json:"typeStats"`
	}
)
