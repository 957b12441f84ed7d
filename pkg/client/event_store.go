package client

import (
	"context"

	"volunteerhub-backend/domain"
)

type (
	EventState struct {
		Filter        domain.EventFilter
		Events        []domain.EventResponse
		Pagination    domain.Pagination
		Selected      *domain.EventResponse
		Registrations []domain.RegistrationResponse
	}

	// EventStore derives every state from the API; nothing is simulated locally.
	EventStore struct {
		client *Client
	}
)

func NewEventStore(client *Client) *EventStore {
	return &EventStore{client: client}
}

func (s *EventStore) Load(ctx context.Context, state EventState, filter domain.EventFilter) (EventState, error) {
	res, err := s.client.ListEvents(ctx, filter)
	if err != nil {
		return state, err
	}
	next := state
	next.Filter = filter
	next.Events = res.Events
	next.Pagination = res.Pagination
	return next, nil
}

func (s *EventStore) Select(ctx context.Context, state EventState, eventID string) (EventState, error) {
	event, err := s.client.GetEvent(ctx, eventID)
	if err != nil {
		return state, err
	}
	next := state
	next.Selected = event
	return next, nil
}

func (s *EventStore) LoadRegistrations(ctx context.Context, state EventState) (EventState, error) {
	registrations, err := s.client.MyRegistrations(ctx)
	if err != nil {
		return state, err
	}
	next := state
	next.Registrations = registrations
	return next, nil
}

// Register signs the caller up, then refreshes the event and the caller's registrations.
func (s *EventStore) Register(ctx context.Context, state EventState, eventID string) (EventState, *domain.RegistrationResponse, error) {
	registration, err := s.client.RegisterForEvent(ctx, eventID)
	if err != nil {
		return state, nil, err
	}
	next, err := s.Select(ctx, state, eventID)
	if err != nil {
		return state, registration, err
	}
	next, err = s.LoadRegistrations(ctx, next)
	if err != nil {
		return state, registration, err
	}
	return next, registration, nil
}

// Create submits a new event, then reloads the current listing and selects the created event.
func (s *EventStore) Create(ctx context.Context, state EventState, req domain.CreateEventRequest) (EventState, error) {
	created, err := s.client.CreateEvent(ctx, req)
	if err != nil {
		return state, err
	}
	return s.refresh(ctx, state, created.ID)
}

// Approve applies an approval decision and reloads the listing and the event.
func (s *EventStore) Approve(ctx context.Context, state EventState, eventID, approvalStatus string) (EventState, error) {
	if _, err := s.client.ApproveEvent(ctx, eventID, approvalStatus); err != nil {
		return state, err
	}
	return s.refresh(ctx, state, eventID)
}

func (s *EventStore) refresh(ctx context.Context, state EventState, eventID string) (EventState, error) {
	next, err := s.Load(ctx, state, state.Filter)
	if err != nil {
		return state, err
	}
	next, err = s.Select(ctx, next, eventID)
	if err != nil {
		return state, err
	}
	return next, nil
}
