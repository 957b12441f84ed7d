package event

import (
	"context"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	EventRepository interface {
		// Transaction runs fn against a repository bound to one database transaction.
		Transaction(ctx context.Context, fn func(repo EventRepository) error) error

		CreateEvent(ctx context.Context, event *entities.Event) error
		GetEventByID(ctx context.Context, id string, withVolunteers bool) (*entities.Event, error)
		// LockEventByID takes a row lock held until the surrounding transaction ends.
		LockEventByID(ctx context.Context, id string) (*entities.Event, error)
		ListEvents(ctx context.Context, filter domain.EventFilter) ([]*entities.Event, int64, error)
		UpdateEvent(ctx context.Context, id string, updates map[string]interface{}) error

		CreateRegistration(ctx context.Context, registration *entities.Registration) error
		GetRegistration(ctx context.Context, volunteerID string, eventID string) (*entities.Registration, error)
		GetRegistrationByID(ctx context.Context, id string) (*entities.Registration, error)
		UpdateRegistration(ctx context.Context, id string, updates map[string]interface{}) error
		CountActiveRegistrations(ctx context.Context, eventID string) (int64, error)
		ListRegistrationsByEvent(ctx context.Context, eventID string, status string) ([]*entities.Registration, error)
		ListRegistrationsByVolunteer(ctx context.Context, volunteerID string, statuses ...string) ([]*entities.Registration, error)

		CreditVolunteer(ctx context.Context, volunteerID string, events int, hours float64) error
	}

	eventRepository struct {
		db *gorm.DB
	}
)

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Transaction(ctx context.Context, fn func(repo EventRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&eventRepository{db: tx})
	})
}

func (r *eventRepository) CreateEvent(ctx context.Context, event *entities.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetEventByID(ctx context.Context, id string, withVolunteers bool) (*entities.Event, error) {
	var event entities.Event
	query := r.db.WithContext(ctx).Preload("CreatedBy")
	if withVolunteers {
		query = preloadActiveVolunteers(query)
	}
	if err := query.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) LockEventByID(ctx context.Context, id string) (*entities.Event, error) {
	var event entities.Event
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*entities.Event, int64, error) {
	var events []*entities.Event
	var count int64

	query := r.db.WithContext(ctx).
		Model(&entities.Event{}).
		Where("is_approved = ?", true)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := preloadActiveVolunteers(query.Preload("CreatedBy")).
		Order("date ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, count, nil
}

func (r *eventRepository) UpdateEvent(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Event{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *eventRepository) CreateRegistration(ctx context.Context, registration *entities.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *eventRepository) GetRegistration(ctx context.Context, volunteerID string, eventID string) (*entities.Registration, error) {
	var registration entities.Registration
	if err := r.db.WithContext(ctx).
		Where("volunteer_id = ? AND event_id = ?", volunteerID, eventID).
		First(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *eventRepository) GetRegistrationByID(ctx context.Context, id string) (*entities.Registration, error) {
	var registration entities.Registration
	if err := r.db.WithContext(ctx).
		Preload("Volunteer").
		Preload("Event").
		Where("id = ?", id).
		First(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

func (r *eventRepository) UpdateRegistration(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entities.Registration{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *eventRepository) CountActiveRegistrations(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Registration{}).
		Where("event_id = ? AND status IN ?", eventID, domain.ActiveRegistrationStatuses).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) ListRegistrationsByEvent(ctx context.Context, eventID string, status string) ([]*entities.Registration, error) {
	var registrations []*entities.Registration
	query := r.db.WithContext(ctx).Preload("Volunteer").Where("event_id = ?", eventID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at ASC").Find(&registrations).Error; err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *eventRepository) ListRegistrationsByVolunteer(ctx context.Context, volunteerID string, statuses ...string) ([]*entities.Registration, error) {
	var registrations []*entities.Registration
	query := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.CreatedBy").
		Where("volunteer_id = ?", volunteerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if err := query.Order("created_at DESC").Find(&registrations).Error; err != nil {
		return nil, err
	}
	return registrations, nil
}

func (r *eventRepository) CreditVolunteer(ctx context.Context, volunteerID string, events int, hours float64) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", volunteerID).
		Updates(map[string]interface{}{
			"events_completed":  gorm.Expr("events_completed + ?", events),
			"hours_contributed": gorm.Expr("hours_contributed + ?", hours),
		}).Error
}

func preloadActiveVolunteers(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Registrations", "status IN ?", domain.ActiveRegistrationStatuses).
		Preload("Registrations.Volunteer")
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
