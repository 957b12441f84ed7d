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

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	out := new(domain.AuthResponse)
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	out := new(domain.AuthResponse)
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Me(ctx context.Context) (*domain.UserResponse, error) {
	out := new(domain.UserResponse)
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	out := new(domain.UserResponse)
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadAvatar sends the image as the multipart field "avatar".
func (c *Client) UploadAvatar(ctx context.Context, filename string, image io.Reader) (*domain.UserResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("avatar", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	raw, _, err := c.send(ctx, http.MethodPost, "/api/auth/avatar", nil, &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	out := new(domain.UserResponse)
	if err := decodeData(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Deactivate(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/deactivate", nil, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context, role string, page, limit int) (*domain.UsersResponse, error) {
	q := pageValues(page, limit)
	if role != "" {
		q.Set("role", role)
	}
	out := new(domain.UsersResponse)
	if err := c.do(ctx, http.MethodGet, "/api/auth/users", q, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*domain.UserResponse, error) {
	out := new(domain.UserResponse)
	if err := c.do(ctx, http.MethodGet, "/api/auth/user/"+url.PathEscape(id), nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyForManager files a manager application for the caller. reason may be empty.
func (c *Client) ApplyForManager(ctx context.Context, reason string) (*domain.UserResponse, error) {
	out := new(domain.UserResponse)
	req := domain.ManagerApplicationRequest{Reason: reason}
	if err := c.do(ctx, http.MethodPost, "/api/auth/manager-application", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ManagerApplications(ctx context.Context, page, limit int) (*domain.UsersResponse, error) {
	out := new(domain.UsersResponse)
	if err := c.do(ctx, http.MethodGet, "/api/auth/manager-applications", pageValues(page, limit), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ApproveManager(ctx context.Context, userID string) (*domain.UserResponse, error) {
	return c.decideManager(ctx, userID, "approve")
}

func (c *Client) RejectManager(ctx context.Context, userID string) (*domain.UserResponse, error) {
	return c.decideManager(ctx, userID, "reject")
}

func (c *Client) decideManager(ctx context.Context, userID, decision string) (*domain.UserResponse, error) {
	out := new(domain.UserResponse)
	path := "/api/auth/manager-applications/" + url.PathEscape(userID) + "/" + decision
	if err := c.do(ctx, http.MethodPut, path, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, userID string, role domain.Role) (*domain.UserResponse, error) {
	out := new(domain.UserResponse)
	req := domain.UpdateRoleRequest{Role: string(role)}
	if err := c.do(ctx, http.MethodPut, "/api/auth/users/"+url.PathEscape(userID)+"/role", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}
