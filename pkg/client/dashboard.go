package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"volunteerhub-backend/domain"
)

// DashboardStats holds exactly one of the role-scoped aggregates.
type DashboardStats struct {
	Role      domain.Role
	Admin     *domain.AdminStats
	Manager   *domain.ManagerStats
	Volunteer *domain.VolunteerStats
}

func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var raw struct {
		Role  domain.Role     `json:"role"`
		Stats json.RawMessage `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, nil, &raw); err != nil {
		return nil, err
	}

	out := &DashboardStats{Role: raw.Role}
	var target any
	switch raw.Role.Policy().Dashboard {
	case domain.DashboardPlatform:
		out.Admin = new(domain.AdminStats)
		target = out.Admin
	case domain.DashboardOwnEvents:
		out.Manager = new(domain.ManagerStats)
		target = out.Manager
	default:
		out.Volunteer = new(domain.VolunteerStats)
		target = out.Volunteer
	}
	if err := json.Unmarshal(raw.Stats, target); err != nil {
		return nil, fmt.Errorf("decode %s stats: %w", raw.Role, err)
	}
	return out, nil
}

func (c *Client) TrendingEvents(ctx context.Context, limit int) ([]domain.TrendingEvent, error) {
	var out []domain.TrendingEvent
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/trending-events", pageValues(0, limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RecentPosts(ctx context.Context, limit int) ([]domain.PostResponse, error) {
	var out []domain.PostResponse
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/recent-posts", pageValues(0, limit), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Export returns the raw file body and its content type.
func (c *Client) Export(ctx context.Context, exportType, format string) ([]byte, string, error) {
	q := url.Values{"type": {exportType}}
	if format != "" {
		q.Set("format", format)
	}
	body, header, err := c.send(ctx, http.MethodGet, "/api/dashboard/export", q, nil, "")
	if err != nil {
		return nil, "", err
	}
	return body, header.Get("Content-Type"), nil
}
