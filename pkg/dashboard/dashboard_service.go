package dashboard

import (
	"context"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/pkg/user"

	"go.uber.org/zap"
)

type (
	// RecentPosts lists the newest active posts across all events.
	RecentPosts interface {
		GetRecentPosts(ctx context.Context, limit int) ([]domain.PostResponse, error)
	}

	DashboardService interface {
		Stats(ctx context.Context, actor domain.Actor) (*domain.DashboardStatsResponse, error)
		TrendingEvents(ctx context.Context, limit int) ([]domain.TrendingEvent, error)
		RecentPosts(ctx context.Context, limit int) ([]domain.PostResponse, error)
		Export(ctx context.Context, exportType string) (*domain.ExportTable, error)
	}

	dashboardService struct {
		repo   DashboardRepository
		posts  RecentPosts
		logger *zap.Logger
	}
)

func NewDashboardService(repo DashboardRepository, posts RecentPosts, logger *zap.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		posts:  posts,
		logger: logger,
	}
}

// Stats returns the aggregate the actor's role is scoped to.
func (s *dashboardService) Stats(ctx context.Context, actor domain.Actor) (*domain.DashboardStatsResponse, error) {
	var (
		stats any
		err   error
	)
	switch actor.Role.Policy().Dashboard {
	case domain.DashboardPlatform:
		stats, err = s.platformStats(ctx)
	case domain.DashboardOwnEvents:
		stats, err = s.ownEventStats(ctx, actor.ID)
	default:
		stats, err = s.personalStats(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}
	return &domain.DashboardStatsResponse{Role: actor.Role, Stats: stats}, nil
}

func (s *dashboardService) platformStats(ctx context.Context) (*domain.AdminStats, error) {
	var (
		stats = &domain.AdminStats{UsersByRole: map[string]int64{}}
		err   error
	)
	if stats.TotalUsers, err = s.repo.CountActiveUsers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalEvents, err = s.repo.CountEvents(ctx, EventCountFilter{}); err != nil {
		return nil, err
	}
	if stats.ApprovedEvents, err = s.repo.CountEvents(ctx, EventCountFilter{Approved: true}); err != nil {
		return nil, err
	}
	if stats.PendingEvents, err = s.repo.CountEvents(ctx, EventCountFilter{Status: domain.EventStatusPending}); err != nil {
		return nil, err
	}
	if stats.TotalRegistrations, err = s.repo.CountRegistrations(ctx, RegistrationCountFilter{}); err != nil {
		return nil, err
	}

	roles, err := s.repo.CountActiveUsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		stats.UsersByRole[r.Role] = r.Count
	}
	return stats, nil
}

func (s *dashboardService) ownEventStats(ctx context.Context, ownerID string) (*domain.ManagerStats, error) {
	var (
		stats = &domain.ManagerStats{}
		err   error
	)
	if stats.MyEvents, err = s.repo.CountEvents(ctx, EventCountFilter{CreatedByID: ownerID}); err != nil {
		return nil, err
	}
	if stats.ApprovedEvents, err = s.repo.CountEvents(ctx, EventCountFilter{CreatedByID: ownerID, Approved: true}); err != nil {
		return nil, err
	}
	if stats.PendingEvents, err = s.repo.CountEvents(ctx, EventCountFilter{CreatedByID: ownerID, Status: domain.EventStatusPending}); err != nil {
		return nil, err
	}
	if stats.TotalRegistrations, err = s.repo.CountRegistrations(ctx, RegistrationCountFilter{EventOwnerID: ownerID}); err != nil {
		return nil, err
	}
	if stats.TotalPosts, err = s.repo.CountPostsForOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *dashboardService) personalStats(ctx context.Context, volunteerID string) (*domain.VolunteerStats, error) {
	var (
		stats = &domain.VolunteerStats{}
		err   error
	)
	if stats.RegisteredEvents, err = s.repo.CountRegistrations(ctx, RegistrationCountFilter{VolunteerID: volunteerID}); err != nil {
		return nil, err
	}
	if stats.CompletedEvents, err = s.repo.CountRegistrations(ctx, RegistrationCountFilter{
		VolunteerID: volunteerID,
		Statuses:    []string{domain.RegistrationStatusCompleted},
	}); err != nil {
		return nil, err
	}
	if stats.UpcomingEvents, err = s.repo.CountRegistrations(ctx, RegistrationCountFilter{
		VolunteerID: volunteerID,
		Statuses:    []string{domain.RegistrationStatusRegistered, domain.RegistrationStatusApproved},
	}); err != nil {
		return nil, err
	}
	if stats.HoursContributed, err = s.repo.GetHoursContributed(ctx, volunteerID); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *dashboardService) TrendingEvents(ctx context.Context, limit int) ([]domain.TrendingEvent, error) {
	limit = domain.PageQuery{Limit: limit}.Normalize(5).Limit

	rows, err := s.repo.TrendingEvents(ctx, limit)
	if err != nil {
		return nil, err
	}

	creatorIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		creatorIDs = append(creatorIDs, row.CreatedByID.String())
	}
	creators, err := s.repo.GetUsersByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.UserSummary, len(creators))
	for _, c := range creators {
		summary := user.ToUserSummary(c)
		summary.Email = ""
		byID[c.ID.String()] = summary
	}

	res := make([]domain.TrendingEvent, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.TrendingEvent{
			ID:                row.ID.String(),
			Title:             row.Title,
			Category:          row.Category,
			Date:              row.Date,
			Location:          row.Location,
			Image:             row.Image,
			Status:            row.Status,
			RegistrationCount: row.RegistrationCount,
			PostCount:         row.PostCount,
			TrendScore:        domain.TrendScore(row.RegistrationCount, row.PostCount),
			CreatedBy:         byID[row.CreatedByID.String()],
			CreatedAt:         row.CreatedAt,
		})
	}
	return res, nil
}

func (s *dashboardService) RecentPosts(ctx context.Context, limit int) ([]domain.PostResponse, error) {
	return s.posts.GetRecentPosts(ctx, limit)
}
