package client

import (
	"context"

	"volunteerhub-backend/domain"
)

type (
	// ManagerState lists pending manager applications for an admin.
	ManagerState struct {
		Page         domain.PageQuery
		Applications []domain.UserResponse
		Pagination   domain.Pagination
	}

	ManagerStore struct {
		client *Client
	}
)

func NewManagerStore(client *Client) *ManagerStore {
	return &ManagerStore{client: client}
}

func (s *ManagerStore) Load(ctx context.Context, state ManagerState, page domain.PageQuery) (ManagerState, error) {
	res, err := s.client.ManagerApplications(ctx, page.Page, page.Limit)
	if err != nil {
		return state, err
	}
	return ManagerState{
		Page:         page,
		Applications: res.Users,
		Pagination:   res.Pagination,
	}, nil
}

func (s *ManagerStore) Approve(ctx context.Context, state ManagerState, userID string) (ManagerState, error) {
	if _, err := s.client.ApproveManager(ctx, userID); err != nil {
		return state, err
	}
	return s.Load(ctx, state, state.Page)
}

func (s *ManagerStore) Reject(ctx context.Context, state ManagerState, userID string) (ManagerState, error) {
	if _, err := s.client.RejectManager(ctx, userID); err != nil {
		return state, err
	}
	return s.Load(ctx, state, state.Page)
}
