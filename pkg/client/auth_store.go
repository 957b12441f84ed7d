package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"volunteerhub-backend/domain"
)

var ErrNotAuthenticated = errors.New("not logged in")

type (
	// AuthState is an immutable snapshot of the signed-in session.
	AuthState struct {
		User      *domain.UserResponse
		Token     string
		ExpiresAt time.Time
	}

	AuthStore struct {
		client     *Client
		persisters []Persister
		now        func() time.Time
	}
)

func (s AuthState) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

func NewAuthStore(client *Client, persisters ...Persister) *AuthStore {
	return &AuthStore{
		client:     client,
		persisters: persisters,
		now:        time.Now,
	}
}

// Client returns an API client bound to the state's token.
func (s *AuthStore) Client(state AuthState) *Client {
	return s.client.WithToken(state.Token)
}

// Restore seeds state from the first persister holding a live session, then confirms it
// with the server. An expired or rejected session is cleared everywhere.
func (s *AuthStore) Restore(ctx context.Context) (AuthState, error) {
	for _, p := range s.persisters {
		session, err := p.Load()
		if err != nil {
			return AuthState{}, err
		}
		if session == nil {
			continue
		}
		if session.Expired(s.now()) {
			return AuthState{}, s.clear()
		}

		user, err := s.client.WithToken(session.Token).Me(ctx)
		if IsStatus(err, http.StatusUnauthorized) {
			return AuthState{}, s.clear()
		}
		if err != nil {
			return AuthState{}, err
		}

		state := AuthState{User: user, Token: session.Token, ExpiresAt: session.ExpiresAt}
		return state, s.mirror(state)
	}
	return AuthState{}, nil
}

func (s *AuthStore) Login(ctx context.Context, email, password string) (AuthState, error) {
	res, err := s.client.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return AuthState{}, err
	}
	return s.commit(res)
}

func (s *AuthStore) Register(ctx context.Context, req domain.RegisterRequest) (AuthState, error) {
	res, err := s.client.Register(ctx, req)
	if err != nil {
		return AuthState{}, err
	}
	return s.commit(res)
}

// Refresh reloads the user behind the state's token.
func (s *AuthStore) Refresh(ctx context.Context, state AuthState) (AuthState, error) {
	if state.Token == "" {
		return state, ErrNotAuthenticated
	}
	user, err := s.Client(state).Me(ctx)
	if err != nil {
		return state, err
	}
	next := AuthState{User: user, Token: state.Token, ExpiresAt: state.ExpiresAt}
	return next, s.mirror(next)
}

func (s *AuthStore) UpdateProfile(ctx context.Context, state AuthState, req domain.UpdateProfileRequest) (AuthState, error) {
	if !state.Authenticated() {
		return state, ErrNotAuthenticated
	}
	user, err := s.Client(state).UpdateProfile(ctx, req)
	if err != nil {
		return state, err
	}
	next := AuthState{User: user, Token: state.Token, ExpiresAt: state.ExpiresAt}
	return next, s.mirror(next)
}

// ApplyForManager files a manager application; the returned state carries the pending request.
func (s *AuthStore) ApplyForManager(ctx context.Context, state AuthState, reason string) (AuthState, error) {
	if !state.Authenticated() {
		return state, ErrNotAuthenticated
	}
	user, err := s.Client(state).ApplyForManager(ctx, reason)
	if err != nil {
		return state, err
	}
	next := AuthState{User: user, Token: state.Token, ExpiresAt: state.ExpiresAt}
	return next, s.mirror(next)
}

// Logout is local only; tokens are stateless on the server.
func (s *AuthStore) Logout() (AuthState, error) {
	return AuthState{}, s.clear()
}

func (s *AuthStore) commit(res *domain.AuthResponse) (AuthState, error) {
	user := res.User
	state := AuthState{User: &user, Token: res.Token, ExpiresAt: s.now().Add(SessionTTL)}
	return state, s.mirror(state)
}

func (s *AuthStore) mirror(state AuthState) error {
	session := Session{Token: state.Token, User: state.User, ExpiresAt: state.ExpiresAt}
	for _, p := range s.persisters {
		if w, ok := p.(WritablePersister); ok {
			if err := w.Save(session); err != nil {
				return fmt.Errorf("persist session: %w", err)
			}
		}
	}
	return nil
}

func (s *AuthStore) clear() error {
	for _, p := range s.persisters {
		if w, ok := p.(WritablePersister); ok {
			if err := w.Clear(); err != nil {
				return err
			}
		}
	}
	return nil
}
