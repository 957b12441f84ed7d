package event

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeEventRepository struct {
	txMu          sync.Mutex
	mu            sync.Mutex
	users         map[uuid.UUID]*entities.User
	events        map[uuid.UUID]*entities.Event
	registrations map[uuid.UUID]*entities.Registration
}

func newFakeEventRepository() *fakeEventRepository {
	return &fakeEventRepository{
		users:         map[uuid.UUID]*entities.User{},
		events:        map[uuid.UUID]*entities.Event{},
		registrations: map[uuid.UUID]*entities.Registration{},
	}
}

func (f *fakeEventRepository) addUser(name string, role domain.Role) *entities.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &entities.User{ID: uuid.New(), Name: name, Email: name + "@example.com", Role: string(role), IsActive: true}
	f.users[u.ID] = u
	return u
}

// Transaction serializes callers the way a row lock on the event does.
func (f *fakeEventRepository) Transaction(ctx context.Context, fn func(repo EventRepository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(f)
}

func (f *fakeEventRepository) CreateEvent(ctx context.Context, event *entities.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepository) GetEventByID(ctx context.Context, id string, withVolunteers bool) (*entities.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadEvent(id, withVolunteers)
}

func (f *fakeEventRepository) loadEvent(id string, withVolunteers bool) (*entities.Event, error) {
	e, ok := f.events[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *e
	out.CreatedBy = f.users[e.CreatedByID]
	out.Registrations = nil
	if withVolunteers {
		for _, r := range f.registrations {
			if r.EventID == e.ID && domain.IsActiveRegistrationStatus(r.Status) {
				reg := *r
				reg.Volunteer = f.users[r.VolunteerID]
				out.Registrations = append(out.Registrations, &reg)
			}
		}
	}
	return &out, nil
}

func (f *fakeEventRepository) LockEventByID(ctx context.Context, id string) (*entities.Event, error) {
	return f.GetEventByID(ctx, id, false)
}

func (f *fakeEventRepository) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*entities.Event, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Event
	for id, e := range f.events {
		if !e.IsApproved || (filter.Category != "" && e.Category != filter.Category) {
			continue
		}
		loaded, _ := f.loadEvent(id.String(), true)
		out = append(out, loaded)
	}
	total := int64(len(out))
	if filter.Offset() >= len(out) {
		return nil, total, nil
	}
	out = out[filter.Offset():]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (f *fakeEventRepository) UpdateEvent(ctx context.Context, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[uuid.MustParse(id)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "status":
			e.Status = value.(string)
		case "is_approved":
			e.IsApproved = value.(bool)
		case "approved_by_id":
			approver := value.(uuid.UUID)
			e.ApprovedByID = &approver
		case "approval_date":
			at := value.(time.Time)
			e.ApprovalDate = &at
		case "title":
			e.Title = value.(string)
		case "capacity":
			e.Capacity = value.(int)
		case "image":
			e.Image = value.(string)
		}
	}
	return nil
}

func (f *fakeEventRepository) CreateRegistration(ctx context.Context, registration *entities.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.registrations {
		if r.VolunteerID == registration.VolunteerID && r.EventID == registration.EventID {
			return gorm.ErrDuplicatedKey
		}
	}
	registration.ID = uuid.New()
	registration.CreatedAt = time.Now()
	stored := *registration
	f.registrations[registration.ID] = &stored
	return nil
}

func (f *fakeEventRepository) GetRegistration(ctx context.Context, volunteerID string, eventID string) (*entities.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.registrations {
		if r.VolunteerID.String() == volunteerID && r.EventID.String() == eventID {
			out := *r
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEventRepository) GetRegistrationByID(ctx context.Context, id string) (*entities.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.registrations[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *r
	out.Volunteer = f.users[r.VolunteerID]
	out.Event, _ = f.loadEvent(r.EventID.String(), false)
	return &out, nil
}

func (f *fakeEventRepository) UpdateRegistration(ctx context.Context, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.registrations[uuid.MustParse(id)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "status":
			r.Status = value.(string)
		case "hours_worked":
			switch v := value.(type) {
			case int:
				r.HoursWorked = float64(v)
			case float64:
				r.HoursWorked = v
			}
		case "feedback":
			r.Feedback = value.(string)
		case "rating":
			if v, ok := value.(int); ok {
				r.Rating = &v
			} else {
				r.Rating = nil
			}
		case "approved_by_id":
			if v, ok := value.(uuid.UUID); ok {
				r.ApprovedByID = &v
			} else {
				r.ApprovedByID = nil
			}
		case "approval_date":
			if v, ok := value.(time.Time); ok {
				r.ApprovalDate = &v
			} else {
				r.ApprovalDate = nil
			}
		case "completion_date":
			if v, ok := value.(time.Time); ok {
				r.CompletionDate = &v
			} else {
				r.CompletionDate = nil
			}
		}
	}
	return nil
}

func (f *fakeEventRepository) CountActiveRegistrations(ctx context.Context, eventID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, r := range f.registrations {
		if r.EventID.String() == eventID && domain.IsActiveRegistrationStatus(r.Status) {
			count++
		}
	}
	return count, nil
}

func (f *fakeEventRepository) ListRegistrationsByEvent(ctx context.Context, eventID string, status string) ([]*entities.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Registration
	for _, r := range f.registrations {
		if r.EventID.String() == eventID && (status == "" || r.Status == status) {
			reg := *r
			out = append(out, &reg)
		}
	}
	return out, nil
}

func (f *fakeEventRepository) ListRegistrationsByVolunteer(ctx context.Context, volunteerID string, statuses ...string) ([]*entities.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Registration
	for _, r := range f.registrations {
		if r.VolunteerID.String() != volunteerID {
			continue
		}
		if len(statuses) > 0 && !contains(statuses, r.Status) {
			continue
		}
		reg := *r
		reg.Event, _ = f.loadEvent(r.EventID.String(), false)
		out = append(out, &reg)
	}
	return out, nil
}

func (f *fakeEventRepository) CreditVolunteer(ctx context.Context, volunteerID string, events int, hours float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[uuid.MustParse(volunteerID)]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.EventsCompleted += events
	u.HoursContributed += hours
	return nil
}

func (f *fakeEventRepository) ListActiveAdmins(ctx context.Context) ([]*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.User
	for _, u := range f.users {
		if u.Role == string(domain.RoleAdmin) && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.NotificationInput
}

func (n *recordingNotifier) Notify(ctx context.Context, in domain.NotificationInput) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, in)
}

func (n *recordingNotifier) ofType(t string) []domain.NotificationInput {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []domain.NotificationInput
	for _, in := range n.sent {
		if in.Type == t {
			out = append(out, in)
		}
	}
	return out
}

type eventFixture struct {
	repo     *fakeEventRepository
	notifier *recordingNotifier
	service  EventService
	admin    domain.Actor
	manager  domain.Actor
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()
	repo := newFakeEventRepository()
	notifier := &recordingNotifier{}
	admin := repo.addUser("admin", domain.RoleAdmin)
	manager := repo.addUser("manager", domain.RoleManager)
	return &eventFixture{
		repo:     repo,
		notifier: notifier,
		service:  NewEventService(repo, repo, notifier, nil, zap.NewNop()),
		admin:    domain.Actor{ID: admin.ID.String(), Name: admin.Name, Role: domain.RoleAdmin},
		manager:  domain.Actor{ID: manager.ID.String(), Name: manager.Name, Role: domain.RoleManager},
	}
}

func (fx *eventFixture) volunteer(name string) domain.Actor {
	u := fx.repo.addUser(name, domain.RoleVolunteer)
	return domain.Actor{ID: u.ID.String(), Name: u.Name, Role: domain.RoleVolunteer}
}

func (fx *eventFixture) createEvent(t *testing.T, actor domain.Actor, capacity int) *domain.EventResponse {
	t.Helper()
	event, err := fx.service.CreateEvent(context.Background(), actor, domain.CreateEventRequest{
		Title:       "Beach cleanup",
		Description: "Collect plastic along the shore",
		Category:    "Environment",
		Date:        "2026-11-20",
		StartTime:   "08:00",
		EndTime:     "12:00",
		Location:    "Kuta",
		Capacity:    capacity,
	})
	require.NoError(t, err)
	return event
}

func TestCreateEvent_AdminIsAutoApproved(t *testing.T) {
	fx := newEventFixture(t)

	event := fx.createEvent(t, fx.admin, 5)

	assert.Equal(t, domain.EventStatusApproved, event.Status)
	assert.True(t, event.IsApproved)
	assert.Equal(t, fx.admin.ID, event.ApprovedBy)
	assert.NotNil(t, event.ApprovalDate)
	assert.Empty(t, fx.notifier.ofType(domain.NotificationEventCreated))
}

func TestCreateEvent_ManagerIsPendingAndAdminsNotified(t *testing.T) {
	fx := newEventFixture(t)

	event := fx.createEvent(t, fx.manager, 5)

	assert.Equal(t, domain.EventStatusPending, event.Status)
	assert.False(t, event.IsApproved)
	sent := fx.notifier.ofType(domain.NotificationEventCreated)
	require.Len(t, sent, 1)
	assert.Equal(t, fx.admin.ID, sent[0].RecipientID)
	assert.Equal(t, event.ID, sent[0].RelatedEventID)
}

func TestCreateEvent_InvalidDate(t *testing.T) {
	fx := newEventFixture(t)

	_, err := fx.service.CreateEvent(context.Background(), fx.admin, domain.CreateEventRequest{
		Title: "x", Description: "y", Category: "Health", Date: "next tuesday", Location: "z", Capacity: 1,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidEventDate)
}

func TestRegister_CapacityOneScenario(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	event := fx.createEvent(t, fx.admin, 1)
	a := fx.volunteer("alice")
	b := fx.volunteer("bob")

	regA, err := fx.service.Register(ctx, a, event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusRegistered, regA.Status)

	got, err := fx.service.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, got.RegisteredVolunteers, 1)
	assert.Equal(t, a.ID, got.RegisteredVolunteers[0].ID)

	_, err = fx.service.Register(ctx, b, event.ID)
	assert.ErrorIs(t, err, domain.ErrEventFull)

	updated, err := fx.service.UpdateRegistrationStatus(ctx, fx.manager, regA.ID, domain.UpdateRegistrationStatusRequest{
		Status: domain.RegistrationStatusApproved,
	})
	assert.ErrorIs(t, err, domain.ErrNotRegistrationManager, "manager does not own the admin's event")
	assert.Nil(t, updated)

	updated, err = fx.service.UpdateRegistrationStatus(ctx, fx.admin, regA.ID, domain.UpdateRegistrationStatusRequest{
		Status: domain.RegistrationStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusApproved, updated.Status)
	assert.Equal(t, fx.admin.ID, updated.ApprovedBy)

	sent := fx.notifier.ofType(domain.NotificationRegistrationApproved)
	require.Len(t, sent, 1)
	assert.Equal(t, a.ID, sent[0].RecipientID)
}

func TestRegister_ResponseCarriesSeatedEvent(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	event := fx.createEvent(t, fx.admin, 2)
	a := fx.volunteer("alice")

	reg, err := fx.service.Register(ctx, a, event.ID)
	require.NoError(t, err)

	require.NotNil(t, reg.Event)
	assert.Equal(t, 1, reg.Event.RegisteredCount)
	require.Len(t, reg.Event.RegisteredVolunteers, 1)
	assert.Equal(t, a.ID, reg.Event.RegisteredVolunteers[0].ID)
	require.NotNil(t, reg.Event.CreatedBy)
	assert.Equal(t, fx.admin.ID, reg.Event.CreatedBy.ID)

	got, err := fx.service.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, got.RegisteredCount, reg.Event.RegisteredCount)
}

func TestUpdateRegistrationStatus_ReactivationRespectsCapacity(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	event := fx.createEvent(t, fx.admin, 1)
	a := fx.volunteer("alice")
	b := fx.volunteer("bob")

	regA, err := fx.service.Register(ctx, a, event.ID)
	require.NoError(t, err)
	_, err = fx.service.UpdateRegistrationStatus(ctx, fx.admin, regA.ID, domain.UpdateRegistrationStatusRequest{
		Status: domain.RegistrationStatusRejected,
	})
	require.NoError(t, err)

	regB, err := fx.service.Register(ctx, b, event.ID)
	require.NoError(t, err)

	_, err = fx.service.UpdateRegistrationStatus(ctx, fx.admin, regA.ID, domain.UpdateRegistrationStatusRequest{
		Status: domain.RegistrationStatusApproved,
	})
	assert.ErrorIs(t, err, domain.ErrEventFull)

	got, err := fx.service.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RegisteredCount)
	require.Len(t, got.RegisteredVolunteers, 1)
	assert.Equal(t, b.ID, got.RegisteredVolunteers[0].ID)

	// a freed seat can be taken back
	_, err = fx.service.UpdateRegistrationStatus(ctx, fx.admin, regB.ID, domain.UpdateRegistrationStatusRequest{
		Status: domain.RegistrationStatusCancelled,
	})
	require.NoError(t, err)
	updated, err := fx.service.UpdateRegistrationStatus(ctx, fx.admin, regA.ID, domain.UpdateRegistrationStatusRequest{
		Status: domain.RegistrationStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationStatusApproved, updated.Status)
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	event := fx.createEvent(t, fx.admin, 3)
	a := fx.volunteer("alice")

	_, err := fx.service.Register(ctx, a, event.ID)
	require.NoError(t, err)

	_, err = fx.service.Register(ctx, a, event.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	count, _ := fx.repo.CountActiveRegistrations(ctx, event.ID)
	assert.EqualValues(t, 1, count)
}

func TestRegister_ReopensRejectedRegistration(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	event := fx.createEvent(t, fx.admin, 1)
	a := fx.volunteer("alice")

	reg, err := fx.service.Register(ctx, a, event.ID)
	require.NoError(t, err)
	_, err = fx.service.UpdateRegistrationStatus(ctx, fx.admin, reg.ID, domain.UpdateRegistrationStatusRequest{
		Status: domain.RegistrationStatusRejected,
	})
	require.NoError(t, err)
	assert.Len(t, fx.notifier.ofType(domain.NotificationRegistrationRejected), 1)

	reopened, err := fx.service.Register(ctx, a, event.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, reopened.ID)
	assert.Equal(t, domain.RegistrationStatusRegistered, reopened.Status)
	assert.Empty(t, reopened.ApprovedBy)
}

func TestRegister_PendingEventIsNotOpen(t *testing.T) {
	fx := newEventFixture(t)
	event := fx.createEvent(t, fx.manager, 3)

	_, err := fx.service.Register(context.Background(), fx.volunteer("alice"), event.ID)

	assert.ErrorIs(t, err, domain.ErrEventNotOpen)
}

func TestRegister_UnknownEvent(t *testing.T) {
	fx := newEventFixture(t)

	_, err := fx.service.Register(context.Background(), fx.volunteer("alice"), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	_, err = fx.service.Register(context.Background(), fx.volunteer("bob"), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestRegister_ConcurrentNeverExceedsCapacity(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	const capacity = 3
	event := fx.createEvent(t, fx.admin, capacity)

	volunteers := make([]domain.Actor, 10)
	for i := range volunteers {
		volunteers[i] = fx.volunteer(fmt.Sprintf("volunteer-%d", i))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, full int
	for _, v := range volunteers {
		wg.Add(1)
		go func(v domain.Actor) {
			defer wg.Done()
			_, err := fx.service.Register(ctx, v, event.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, domain.ErrEventFull):
				full++
			}
		}(v)
	}
	wg.Wait()

	assert.Equal(t, capacity, ok)
	assert.Equal(t, len(volunteers)-capacity, full)
	got, err := fx.service.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, capacity, got.RegisteredCount)
}

func TestApproveEvent(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	pending := fx.createEvent(t, fx.manager, 2)

	approved, err := fx.service.ApproveEvent(ctx, fx.admin, pending.ID, domain.ApproveEventRequest{ApprovalStatus: domain.ApprovalApproved})
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusApproved, approved.Status)
	assert.True(t, approved.IsApproved)
	assert.Equal(t, fx.admin.ID, approved.ApprovedBy)
	require.Len(t, fx.notifier.ofType(domain.NotificationEventApproved), 1)
	assert.Equal(t, fx.manager.ID, fx.notifier.ofType(domain.NotificationEventApproved)[0].RecipientID)

	rejected, err := fx.service.ApproveEvent(ctx, fx.admin, pending.ID, domain.ApproveEventRequest{ApprovalStatus: domain.ApprovalRejected})
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusCancelled, rejected.Status)
	assert.False(t, rejected.IsApproved)
	assert.Len(t, fx.notifier.ofType(domain.NotificationEventRejected), 1)

	_, err = fx.service.ApproveEvent(ctx, fx.admin, uuid.NewString(), domain.ApproveEventRequest{ApprovalStatus: domain.ApprovalApproved})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestUpdateEvent_OwnershipAndCapacity(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	event := fx.createEvent(t, fx.admin, 2)
	_, err := fx.service.Register(ctx, fx.volunteer("alice"), event.ID)
	require.NoError(t, err)
	_, err = fx.service.Register(ctx, fx.volunteer("bob"), event.ID)
	require.NoError(t, err)

	title := "Renamed"
	_, err = fx.service.UpdateEvent(ctx, fx.manager, event.ID, domain.UpdateEventRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotEventOwner)

	capacity := 1
	_, err = fx.service.UpdateEvent(ctx, fx.admin, event.ID, domain.UpdateEventRequest{Capacity: &capacity})
	assert.ErrorIs(t, err, domain.ErrCapacityBelowRegistered)

	updated, err := fx.service.UpdateEvent(ctx, fx.admin, event.ID, domain.UpdateEventRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 2, updated.Capacity)
}

func TestCompleteEvent_CreditsApprovedVolunteers(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	event := fx.createEvent(t, fx.admin, 3)
	a := fx.volunteer("alice")
	b := fx.volunteer("bob")

	regA, err := fx.service.Register(ctx, a, event.ID)
	require.NoError(t, err)
	_, err = fx.service.Register(ctx, b, event.ID)
	require.NoError(t, err)

	hours := 4.5
	_, err = fx.service.UpdateRegistrationStatus(ctx, fx.admin, regA.ID, domain.UpdateRegistrationStatusRequest{
		Status:      domain.RegistrationStatusApproved,
		HoursWorked: &hours,
	})
	require.NoError(t, err)

	_, err = fx.service.CompleteEvent(ctx, fx.manager, event.ID)
	assert.ErrorIs(t, err, domain.ErrNotEventOwner)

	res, err := fx.service.CompleteEvent(ctx, fx.admin, event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusCompleted, res.Event.Status)
	assert.Equal(t, 1, res.CompletedVolunteers)

	alice := fx.repo.users[uuid.MustParse(a.ID)]
	assert.Equal(t, 1, alice.EventsCompleted)
	assert.InDelta(t, 4.5, alice.HoursContributed, 0.001)
	bob := fx.repo.users[uuid.MustParse(b.ID)]
	assert.Equal(t, 0, bob.EventsCompleted)

	sent := fx.notifier.ofType(domain.NotificationEventCompleted)
	require.Len(t, sent, 1)
	assert.Equal(t, a.ID, sent[0].RecipientID)

	history, err := fx.service.GetHistory(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, history.TotalEvents)
	assert.InDelta(t, 4.5, history.TotalHours, 0.001)
	require.Len(t, history.Registrations, 1)
	assert.NotNil(t, history.Registrations[0].CompletionDate)

	_, err = fx.service.CompleteEvent(ctx, fx.admin, event.ID)
	assert.ErrorIs(t, err, domain.ErrEventAlreadyCompleted)
}

func TestUpdateRegistrationStatus_CompletionCreditIsNotDoubled(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	event := fx.createEvent(t, fx.admin, 3)
	a := fx.volunteer("alice")
	reg, err := fx.service.Register(ctx, a, event.ID)
	require.NoError(t, err)

	hours := 3.0
	req := domain.UpdateRegistrationStatusRequest{Status: domain.RegistrationStatusCompleted, HoursWorked: &hours}
	_, err = fx.service.UpdateRegistrationStatus(ctx, fx.admin, reg.ID, req)
	require.NoError(t, err)

	hours = 5.0
	updated, err := fx.service.UpdateRegistrationStatus(ctx, fx.admin, reg.ID, req)
	require.NoError(t, err)
	assert.NotNil(t, updated.CompletionDate)

	alice := fx.repo.users[uuid.MustParse(a.ID)]
	assert.Equal(t, 1, alice.EventsCompleted)
	assert.InDelta(t, 5.0, alice.HoursContributed, 0.001)
}

func TestGetUserRegistrations(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	a := fx.volunteer("alice")
	first := fx.createEvent(t, fx.admin, 2)
	second := fx.createEvent(t, fx.admin, 2)
	_, err := fx.service.Register(ctx, a, first.ID)
	require.NoError(t, err)
	_, err = fx.service.Register(ctx, a, second.ID)
	require.NoError(t, err)

	registrations, err := fx.service.GetUserRegistrations(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, registrations, 2)
	for _, r := range registrations {
		require.NotNil(t, r.Event)
		assert.Equal(t, r.EventID, r.Event.ID)
	}
}

func TestListEvents_CategoryFilterTotal(t *testing.T) {
	fx := newEventFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		fx.createEvent(t, fx.admin, 1)
	}
	_, err := fx.service.CreateEvent(ctx, fx.admin, domain.CreateEventRequest{
		Title: "Blood drive", Description: "d", Category: "Health", Date: "2026-12-01", Location: "Hall", Capacity: 10,
	})
	require.NoError(t, err)

	res, err := fx.service.ListEvents(ctx, domain.EventFilter{Category: "Health", PageQuery: domain.PageQuery{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Pagination.Total)
	require.Len(t, res.Events, 1)
	assert.Equal(t, "Health", res.Events[0].Category)
}

func TestCreditDelta(t *testing.T) {
	events, hours := creditDelta(domain.RegistrationStatusApproved, 2, domain.RegistrationStatusCompleted, 3)
	assert.Equal(t, 1, events)
	assert.InDelta(t, 3, hours, 0.001)

	events, hours = creditDelta(domain.RegistrationStatusCompleted, 3, domain.RegistrationStatusCancelled, 3)
	assert.Equal(t, -1, events)
	assert.InDelta(t, -3, hours, 0.001)

	events, hours = creditDelta(domain.RegistrationStatusRegistered, 0, domain.RegistrationStatusApproved, 0)
	assert.Zero(t, events)
	assert.Zero(t, hours)
}
