package client

import (
	"context"
	"net/http"
	"net/url"

	"volunteerhub-backend/domain"
)

func (c *Client) RegisterBloodDonation(ctx context.Context, req domain.RegisterDonationRequest) (*domain.BloodDonationResponse, error) {
	out := new(domain.BloodDonationResponse)
	if err := c.do(ctx, http.MethodPost, "/api/blood-donation/register", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BloodStatistics(ctx context.Context) (*domain.BloodStatistics, error) {
	out := new(domain.BloodStatistics)
	if err := c.do(ctx, http.MethodGet, "/api/blood-donation/statistics", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BloodDonations(ctx context.Context, filter domain.DonationFilter) (*domain.BloodDonationsResponse, error) {
	q := pageValues(filter.Page, filter.Limit)
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.BloodType != "" {
		q.Set("bloodType", filter.BloodType)
	}
	out := new(domain.BloodDonationsResponse)
	if err := c.do(ctx, http.MethodGet, "/api/blood-donation/all", q, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateBloodDonationStatus(ctx context.Context, id string, req domain.UpdateDonationStatusRequest) (*domain.BloodDonationResponse, error) {
	out := new(domain.BloodDonationResponse)
	if err := c.do(ctx, http.MethodPut, "/api/blood-donation/"+url.PathEscape(id)+"/status", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterMembership(ctx context.Context, req domain.RegisterMembershipRequest) (*domain.MembershipResponse, error) {
	out := new(domain.MembershipResponse)
	if err := c.do(ctx, http.MethodPost, "/api/membership/register", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MembershipStatistics(ctx context.Context) (*domain.MembershipStatistics, error) {
	out := new(domain.MembershipStatistics)
	if err := c.do(ctx, http.MethodGet, "/api/membership/statistics", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Memberships(ctx context.Context, filter domain.MembershipFilter) (*domain.MembershipsResponse, error) {
	q := pageValues(filter.Page, filter.Limit)
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.MembershipType != "" {
		q.Set("membershipType", filter.MembershipType)
	}
	out := new(domain.MembershipsResponse)
	if err := c.do(ctx, http.MethodGet, "/api/membership/all", q, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveMembership(ctx context.Context, id string) (*domain.MembershipResponse, error) {
	out := new(domain.MembershipResponse)
	if err := c.do(ctx, http.MethodPut, "/api/membership/"+url.PathEscape(id)+"/approve", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RejectMembership(ctx context.Context, id string) (*domain.MembershipResponse, error) {
	out := new(domain.MembershipResponse)
	if err := c.do(ctx, http.MethodPut, "/api/membership/"+url.PathEscape(id)+"/reject", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
