package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"volunteerhub-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "tok-1"

// fakeAPI serves a small in-memory slice of the HTTP surface.
type fakeAPI struct {
	mu            sync.Mutex
	registered    map[string]bool
	notifications []domain.NotificationResponse
	events        []domain.EventResponse
	requested     bool
	applicants    []domain.UserResponse
}

func newFakeAPI(t *testing.T) (*httptest.Server, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{
		registered: map[string]bool{},
		notifications: []domain.NotificationResponse{
			{ID: "n-1", Title: "Approved"},
			{ID: "n-2", Title: "New post"},
		},
		events:     []domain.EventResponse{{ID: "e-1", Title: "Cleanup", Category: "Environment", Status: "approved", IsApproved: true}},
		applicants: []domain.UserResponse{{ID: "u-9", Name: "Applicant", Role: domain.RoleVolunteer, RequestedRole: domain.RoleManager}},
	}
	srv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(srv.Close)
	return srv, api
}

func write(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	toast := "success"
	if status >= 400 {
		toast = "error"
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   status < 400,
		"message":   message,
		"toastType": toast,
		"data":      data,
	})
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	user := domain.UserResponse{ID: "u-1", Name: "Vol", Email: "vol@example.com", Role: domain.RoleVolunteer}
	if a.requested {
		user.RequestedRole = domain.RoleManager
	}
	authed := r.Header.Get("Authorization") == "Bearer "+testToken

	switch {
	case r.URL.Path == "/api/auth/login":
		var req domain.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			write(w, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		write(w, http.StatusOK, "Login successful", domain.AuthResponse{User: user, Token: testToken})
		return
	case r.URL.Path == "/api/events/all":
		events := []domain.EventResponse{}
		for _, e := range a.events {
			if c := r.URL.Query().Get("category"); c == "" || c == e.Category {
				events = append(events, e)
			}
		}
		write(w, http.StatusOK, "ok", domain.EventsResponse{
			Events:     events,
			Pagination: domain.Pagination{Total: int64(len(events)), Page: 1, Pages: 1, Limit: 10},
		})
		return
	case strings.HasPrefix(r.URL.Path, "/api/events/") && r.Method == http.MethodGet && !strings.Contains(r.URL.Path, "/user/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/events/")
		event := domain.EventResponse{ID: id, Title: "Cleanup"}
		if i := a.eventIndex(id); i >= 0 {
			event = a.events[i]
		}
		if a.registered[id] {
			event.RegisteredCount = 1
		}
		write(w, http.StatusOK, "ok", event)
		return
	}

	if !authed {
		write(w, http.StatusUnauthorized, "Invalid or expired token", nil)
		return
	}

	switch {
	case r.URL.Path == "/api/auth/me":
		write(w, http.StatusOK, "ok", user)
	case r.URL.Path == "/api/auth/manager-application":
		if a.requested {
			write(w, http.StatusBadRequest, "A manager application is already pending", nil)
			return
		}
		a.requested = true
		user.RequestedRole = domain.RoleManager
		write(w, http.StatusCreated, "Manager application submitted", user)
	case r.URL.Path == "/api/auth/manager-applications":
		write(w, http.StatusOK, "ok", domain.UsersResponse{
			Users:      a.applicants,
			Pagination: domain.Pagination{Total: int64(len(a.applicants)), Page: 1, Pages: 1, Limit: 10},
		})
	case strings.HasPrefix(r.URL.Path, "/api/auth/manager-applications/"):
		rest := strings.TrimPrefix(r.URL.Path, "/api/auth/manager-applications/")
		id, decision, _ := strings.Cut(rest, "/")
		for i, u := range a.applicants {
			if u.ID == id {
				a.applicants = append(a.applicants[:i], a.applicants[i+1:]...)
				u.RequestedRole = ""
				if decision == "approve" {
					u.Role = domain.RoleManager
				}
				write(w, http.StatusOK, "ok", u)
				return
			}
		}
		write(w, http.StatusNotFound, "No pending manager application", nil)
	case r.URL.Path == "/api/events/create":
		var req domain.CreateEventRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		event := domain.EventResponse{ID: fmt.Sprintf("e-%d", len(a.events)+1), Title: req.Title, Category: req.Category, Status: "pending"}
		a.events = append(a.events, event)
		write(w, http.StatusCreated, "Event created successfully and is pending approval", event)
	case strings.HasSuffix(r.URL.Path, "/approve"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/events/"), "/approve")
		var req domain.ApproveEventRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		i := a.eventIndex(id)
		if i < 0 {
			write(w, http.StatusNotFound, "Event not found", nil)
			return
		}
		a.events[i].Status = req.ApprovalStatus
		a.events[i].IsApproved = req.ApprovalStatus == "approved"
		write(w, http.StatusOK, "ok", a.events[i])
	case r.URL.Path == "/api/events/register":
		var req domain.RegisterEventRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if a.registered[req.EventID] {
			write(w, http.StatusBadRequest, "Already registered for this event", nil)
			return
		}
		a.registered[req.EventID] = true
		write(w, http.StatusCreated, "ok", domain.RegistrationResponse{ID: "r-1", EventID: req.EventID, Status: "registered"})
	case r.URL.Path == "/api/events/user/registered":
		out := []domain.RegistrationResponse{}
		for id := range a.registered {
			out = append(out, domain.RegistrationResponse{EventID: id, Status: "registered"})
		}
		write(w, http.StatusOK, "ok", out)
	case r.URL.Path == "/api/notifications":
		var unread int64
		for _, n := range a.notifications {
			if !n.IsRead {
				unread++
			}
		}
		write(w, http.StatusOK, "ok", domain.NotificationsResponse{Notifications: a.notifications, UnreadCount: unread})
	case r.URL.Path == "/api/notifications/read-all":
		var modified int64
		for i := range a.notifications {
			if !a.notifications[i].IsRead {
				a.notifications[i].IsRead = true
				modified++
			}
		}
		write(w, http.StatusOK, "ok", domain.MarkAllReadResponse{Modified: modified})
	case strings.HasSuffix(r.URL.Path, "/read"):
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/notifications/"), "/read")
		for i := range a.notifications {
			if a.notifications[i].ID == id {
				a.notifications[i].IsRead = true
				write(w, http.StatusOK, "ok", a.notifications[i])
				return
			}
		}
		write(w, http.StatusNotFound, "Notification not found", nil)
	default:
		write(w, http.StatusNotFound, "Route not found", nil)
	}
}

func (a *fakeAPI) eventIndex(id string) int {
	for i, e := range a.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

type memoryPersister struct {
	session *Session
	saves   int
}

func (m *memoryPersister) Load() (*Session, error) { return m.session, nil }
func (m *memoryPersister) Save(s Session) error {
	m.session = &s
	m.saves++
	return nil
}
func (m *memoryPersister) Clear() error {
	m.session = nil
	return nil
}

type staticPersister struct{ session *Session }

func (s staticPersister) Load() (*Session, error) { return s.session, nil }

func TestAPIErrorFromEnvelope(t *testing.T) {
	srv, _ := newFakeAPI(t)
	c := New(srv.URL)

	_, err := c.Login(context.Background(), domain.LoginRequest{Email: "vol@example.com", Password: "wrong"})
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
	assert.Equal(t, "error", apiErr.ToastType)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestAuthStoreLoginMirrorsAndRestores(t *testing.T) {
	srv, _ := newFakeAPI(t)
	ctx := context.Background()
	file := &memoryPersister{}
	store := NewAuthStore(New(srv.URL), file)

	state, err := store.Login(ctx, "vol@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, state.Authenticated())
	assert.Equal(t, "u-1", state.User.ID)
	require.NotNil(t, file.session)
	assert.Equal(t, testToken, file.session.Token)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), file.session.ExpiresAt, time.Minute)

	restored, err := NewAuthStore(New(srv.URL), file).Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.Token, restored.Token)
	assert.Equal(t, "Vol", restored.User.Name)

	out, err := store.Logout()
	require.NoError(t, err)
	assert.False(t, out.Authenticated())
	assert.Nil(t, file.session)
}

func TestAuthStoreRestoreOrder(t *testing.T) {
	srv, _ := newFakeAPI(t)
	ctx := context.Background()

	// empty file falls through to the environment token, which is mirrored back
	file := &memoryPersister{}
	env := staticPersister{session: &Session{Token: testToken}}
	state, err := NewAuthStore(New(srv.URL), file, env).Restore(ctx)
	require.NoError(t, err)
	assert.True(t, state.Authenticated())
	require.NotNil(t, file.session)
	assert.Equal(t, testToken, file.session.Token)
}

func TestAuthStoreRestoreRejectsExpiredAndRevoked(t *testing.T) {
	srv, _ := newFakeAPI(t)
	ctx := context.Background()

	expired := &memoryPersister{session: &Session{Token: testToken, ExpiresAt: time.Now().Add(-time.Hour)}}
	state, err := NewAuthStore(New(srv.URL), expired).Restore(ctx)
	require.NoError(t, err)
	assert.False(t, state.Authenticated())
	assert.Nil(t, expired.session)

	revoked := &memoryPersister{session: &Session{Token: "stale", ExpiresAt: time.Now().Add(time.Hour)}}
	state, err = NewAuthStore(New(srv.URL), revoked).Restore(ctx)
	require.NoError(t, err)
	assert.False(t, state.Authenticated())
	assert.Nil(t, revoked.session)
}

func TestEventStoreRegisterRefreshesFromAPI(t *testing.T) {
	srv, _ := newFakeAPI(t)
	ctx := context.Background()
	store := NewEventStore(New(srv.URL, WithToken(testToken)))

	initial, err := store.Load(ctx, EventState{}, domain.EventFilter{Category: "Environment"})
	require.NoError(t, err)
	require.Len(t, initial.Events, 1)
	assert.Equal(t, int64(1), initial.Pagination.Total)

	next, registration, err := store.Register(ctx, initial, "e-1")
	require.NoError(t, err)
	assert.Equal(t, "registered", registration.Status)
	require.NotNil(t, next.Selected)
	assert.Equal(t, 1, next.Selected.RegisteredCount)
	assert.Len(t, next.Registrations, 1)

	// the earlier value is untouched
	assert.Nil(t, initial.Selected)
	assert.Empty(t, initial.Registrations)

	same, _, err := store.Register(ctx, next, "e-1")
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, next, same)
}

func TestEventStoreCreateAndApprove(t *testing.T) {
	srv, _ := newFakeAPI(t)
	ctx := context.Background()
	store := NewEventStore(New(srv.URL, WithToken(testToken)))

	initial, err := store.Load(ctx, EventState{}, domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, initial.Events, 1)

	created, err := store.Create(ctx, initial, domain.CreateEventRequest{Title: "Food drive", Category: "Relief"})
	require.NoError(t, err)
	require.Len(t, created.Events, 2)
	require.NotNil(t, created.Selected)
	assert.Equal(t, "e-2", created.Selected.ID)
	assert.False(t, created.Selected.IsApproved)
	assert.Len(t, initial.Events, 1)

	approved, err := store.Approve(ctx, created, "e-2", "approved")
	require.NoError(t, err)
	assert.True(t, approved.Selected.IsApproved)
	assert.Equal(t, "approved", approved.Events[1].Status)
	assert.False(t, created.Selected.IsApproved)

	same, err := store.Approve(ctx, approved, "missing", "approved")
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, approved, same)
}

func TestAuthStoreApplyForManager(t *testing.T) {
	srv, _ := newFakeAPI(t)
	ctx := context.Background()
	file := &memoryPersister{}
	store := NewAuthStore(New(srv.URL), file)

	_, err := store.ApplyForManager(ctx, AuthState{}, "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	state, err := store.Login(ctx, "vol@example.com", "secret")
	require.NoError(t, err)

	applied, err := store.ApplyForManager(ctx, state, "I lead a youth club")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, applied.User.RequestedRole)
	assert.Equal(t, domain.RoleVolunteer, applied.User.Role)
	assert.Empty(t, state.User.RequestedRole)
	assert.Equal(t, domain.RoleManager, file.session.User.RequestedRole)

	same, err := store.ApplyForManager(ctx, applied, "")
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, applied, same)
}

func TestManagerStoreDecisions(t *testing.T) {
	srv, _ := newFakeAPI(t)
	ctx := context.Background()
	c := New(srv.URL, WithToken(testToken))
	store := NewManagerStore(c)

	state, err := store.Load(ctx, ManagerState{}, domain.PageQuery{})
	require.NoError(t, err)
	require.Len(t, state.Applications, 1)

	_, err = store.Reject(ctx, state, "u-404")
	assert.True(t, IsStatus(err, http.StatusNotFound))

	next, err := store.Approve(ctx, state, "u-9")
	require.NoError(t, err)
	assert.Empty(t, next.Applications)
	assert.Len(t, state.Applications, 1)

	_, err = c.ApproveManager(ctx, "u-9")
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestNotificationStore(t *testing.T) {
	srv, _ := newFakeAPI(t)
	ctx := context.Background()
	store := NewNotificationStore(New(srv.URL, WithToken(testToken)))

	state, err := store.Load(ctx, NotificationState{}, false, domain.PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), state.UnreadCount)

	afterOne, err := store.MarkRead(ctx, state, "n-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), afterOne.UnreadCount)
	assert.Equal(t, int64(2), state.UnreadCount)

	_, err = store.MarkRead(ctx, afterOne, "missing")
	assert.True(t, IsStatus(err, http.StatusNotFound))

	afterAll, modified, err := store.MarkAllRead(ctx, afterOne)
	require.NoError(t, err)
	assert.Equal(t, int64(1), modified)
	assert.Equal(t, int64(0), afterAll.UnreadCount)
}

func TestFilePersisterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	p := FilePersister{Path: path}

	s, err := p.Load()
	require.NoError(t, err)
	assert.Nil(t, s)

	want := Session{Token: "abc", User: &domain.UserResponse{ID: "u-1"}, ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}
	require.NoError(t, p.Save(want))

	got, err := p.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Token, got.Token)
	assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, p.Clear())
	require.NoError(t, p.Clear())
	s, err = p.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestEnvPersister(t *testing.T) {
	t.Setenv(TokenEnv, "")
	s, err := EnvPersister{}.Load()
	require.NoError(t, err)
	assert.Nil(t, s)

	t.Setenv(TokenEnv, "from-env")
	s, err = EnvPersister{}.Load()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "from-env", s.Token)
	assert.False(t, s.Expired(time.Now()))
}
