package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"volunteerhub-backend/domain"
)

func (c *Client) ListEvents(ctx context.Context, filter domain.EventFilter) (*domain.EventsResponse, error) {
	q := pageValues(filter.Page, filter.Limit)
	for key, value := range map[string]string{
		"category": filter.Category,
		"status":   filter.Status,
		"search":   filter.Search,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}
	out := new(domain.EventsResponse)
	if err := c.do(ctx, http.MethodGet, "/api/events/all", q, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (*domain.EventResponse, error) {
	out := new(domain.EventResponse)
	if err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEvent(ctx context.Context, req domain.CreateEventRequest) (*domain.EventResponse, error) {
	out := new(domain.EventResponse)
	if err := c.do(ctx, http.MethodPost, "/api/events/create", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, req domain.UpdateEventRequest) (*domain.EventResponse, error) {
	out := new(domain.EventResponse)
	if err := c.do(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id), nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UploadEventImage(ctx context.Context, id, filename string, image io.Reader) (*domain.EventResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	raw, _, err := c.send(ctx, http.MethodPost, "/api/events/"+url.PathEscape(id)+"/image", nil, &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	out := new(domain.EventResponse)
	if err := decodeData(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) RegisterForEvent(ctx context.Context, eventID string) (*domain.RegistrationResponse, error) {
	out := new(domain.RegistrationResponse)
	req := domain.RegisterEventRequest{EventID: eventID}
	if err := c.do(ctx, http.MethodPost, "/api/events/register", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyRegistrations(ctx context.Context) ([]domain.RegistrationResponse, error) {
	var out []domain.RegistrationResponse
	if err := c.do(ctx, http.MethodGet, "/api/events/user/registered", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyHistory(ctx context.Context) (*domain.HistoryResponse, error) {
	out := new(domain.HistoryResponse)
	if err := c.do(ctx, http.MethodGet, "/api/events/user/history", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveEvent(ctx context.Context, eventID, approvalStatus string) (*domain.EventResponse, error) {
	out := new(domain.EventResponse)
	req := domain.ApproveEventRequest{ApprovalStatus: approvalStatus}
	if err := c.do(ctx, http.MethodPost, "/api/events/"+url.PathEscape(eventID)+"/approve", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateRegistrationStatus(ctx context.Context, registrationID string, req domain.UpdateRegistrationStatusRequest) (*domain.RegistrationResponse, error) {
	out := new(domain.RegistrationResponse)
	path := "/api/events/registration/" + url.PathEscape(registrationID) + "/status"
	if err := c.do(ctx, http.MethodPut, path, nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CompleteEvent(ctx context.Context, eventID string) (*domain.CompleteEventResponse, error) {
	out := new(domain.CompleteEventResponse)
	if err := c.do(ctx, http.MethodPost, "/api/events/"+url.PathEscape(eventID)+"/complete", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
