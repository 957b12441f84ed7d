package dashboard

import (
	"context"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// EventCountFilter narrows an event count. Zero values match everything.
	EventCountFilter struct {
		CreatedByID string
		Approved    bool
		Status      string
	}

	// RegistrationCountFilter narrows a registration count. Zero values match everything.
	RegistrationCountFilter struct {
		VolunteerID  string
		EventOwnerID string
		Statuses     []string
	}

	// TrendingRow is an event with its activity counters.
	TrendingRow struct {
		ID                uuid.UUID
		Title             string
		Category          string
		Date              time.Time
		Location          string
		Image             string
		Status            string
		CreatedByID       uuid.UUID
		CreatedAt         time.Time
		RegistrationCount int64
		PostCount         int64
		TrendScore        int64
	}

	RoleCount struct {
		Role  string
		Count int64
	}

	DashboardRepository interface {
		CountActiveUsers(ctx context.Context) (int64, error)
		CountActiveUsersByRole(ctx context.Context) ([]RoleCount, error)
		CountEvents(ctx context.Context, filter EventCountFilter) (int64, error)
		CountRegistrations(ctx context.Context, filter RegistrationCountFilter) (int64, error)
		CountPostsForOwner(ctx context.Context, eventOwnerID string) (int64, error)
		GetHoursContributed(ctx context.Context, userID string) (float64, error)
		TrendingEvents(ctx context.Context, limit int) ([]*TrendingRow, error)
		GetUsersByIDs(ctx context.Context, ids []string) ([]*entities.User, error)

		ExportEvents(ctx context.Context) ([]*entities.Event, error)
		ExportUsers(ctx context.Context) ([]*entities.User, error)
		ExportRegistrations(ctx context.Context) ([]*entities.Registration, error)
	}

	dashboardRepository struct {
		db *gorm.DB
	}
)

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountActiveUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActiveUsersByRole(ctx context.Context) ([]RoleCount, error) {
	var rows []RoleCount
	err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Select("role, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("role").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CountEvents(ctx context.Context, filter EventCountFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.Event{})
	if filter.CreatedByID != "" {
		query = query.Where("created_by_id = ?", filter.CreatedByID)
	}
	if filter.Approved {
		query = query.Where("is_approved = ?", true)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountRegistrations(ctx context.Context, filter RegistrationCountFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.Registration{})
	if filter.VolunteerID != "" {
		query = query.Where("volunteer_id = ?", filter.VolunteerID)
	}
	if filter.EventOwnerID != "" {
		query = query.Where("event_id IN (?)", r.ownedEventIDs(ctx, filter.EventOwnerID))
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountPostsForOwner(ctx context.Context, eventOwnerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Post{}).
		Where("event_id IN (?)", r.ownedEventIDs(ctx, eventOwnerID)).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) ownedEventIDs(ctx context.Context, ownerID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Event{}).
		Select("id").
		Where("created_by_id = ?", ownerID)
}

func (r *dashboardRepository) GetHoursContributed(ctx context.Context, userID string) (float64, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Select("hours_contributed").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return 0, err
	}
	return user.HoursContributed, nil
}

// TrendingEvents ranks approved, non-cancelled events by 2 x seats taken + posts.
func (r *dashboardRepository) TrendingEvents(ctx context.Context, limit int) ([]*TrendingRow, error) {
	registrations := r.db.
		Model(&entities.Registration{}).
		Select("COUNT(*)").
		Where("registrations.event_id = events.id AND registrations.status IN ?", domain.ActiveRegistrationStatuses)
	posts := r.db.
		Model(&entities.Post{}).
		Select("COUNT(*)").
		Where("posts.event_id = events.id")

	var rows []*TrendingRow
	err := r.db.WithContext(ctx).
		Model(&entities.Event{}).
		Select(`events.id, events.title, events.category, events.date, events.location, events.image,
			events.status, events.created_by_id, events.created_at,
			(?) AS registration_count, (?) AS post_count, 2 * (?) + (?) AS trend_score`,
			registrations, posts, registrations, posts).
		Where("events.is_approved = ? AND events.status <> ?", true, domain.EventStatusCancelled).
		Order("trend_score DESC, events.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	var users []*entities.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *dashboardRepository) ExportEvents(ctx context.Context) ([]*entities.Event, error) {
	var events []*entities.Event
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *dashboardRepository) ExportUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *dashboardRepository) ExportRegistrations(ctx context.Context) ([]*entities.Registration, error) {
	var registrations []*entities.Registration
	err := r.db.WithContext(ctx).
		Preload("Volunteer").
		Preload("Event").
		Order("created_at DESC").
		Find(&registrations).Error
	return registrations, err
}
