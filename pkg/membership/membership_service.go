package membership

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"
	"volunteerhub-backend/internal/utils/mailing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	MembershipService interface {
		Register(ctx context.Context, req domain.RegisterMembershipRequest) (*domain.MembershipResponse, error)
		ListMemberships(ctx context.Context, filter domain.MembershipFilter) (*domain.MembershipsResponse, error)
		Approve(ctx context.Context, membershipID string) (*domain.MembershipResponse, error)
		Reject(ctx context.Context, membershipID string) (*domain.MembershipResponse, error)
		Statistics(ctx context.Context) (*domain.MembershipStatistics, error)
	}

	membershipService struct {
		repo   MembershipRepository
		mailer mailing.Mailer
		logger *zap.Logger
	}
)

func NewMembershipService(repo MembershipRepository, mailer mailing.Mailer, logger *zap.Logger) MembershipService {
	return &membershipService{
		repo:   repo,
		mailer: mailer,
		logger: logger,
	}
}

// Register creates a pending application. An inactive application for the same email is
// reopened with the new details.
func (s *membershipService) Register(ctx context.Context, req domain.RegisterMembershipRequest) (*domain.MembershipResponse, error) {
	if !req.AcceptTerms {
		return nil, domain.ErrTermsNotAccepted
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	membershipType := req.MembershipType
	if membershipType == "" {
		membershipType = domain.MembershipTypeBasic
	}
	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}

	existing, err := s.repo.GetMembershipByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status != domain.MembershipStatusInactive {
		return nil, domain.ErrMembershipRegistered
	}

	var membership *entities.Membership
	if existing != nil {
		if err := s.repo.UpdateMembership(ctx, existing.ID.String(), map[string]interface{}{
			"full_name":           req.FullName,
			"phone":               req.Phone,
			"address":             req.Address,
			"city":                req.City,
			"state":               req.State,
			"zip_code":            req.ZipCode,
			"membership_type":     membershipType,
			"interests":           pq.StringArray(interests),
			"bio":                 req.Bio,
			"accept_terms":        true,
			"status":              domain.MembershipStatusPending,
			"verification_status": false,
		}); err != nil {
			return nil, err
		}
		membership, err = s.repo.GetMembershipByID(ctx, existing.ID.String())
		if err != nil {
			return nil, err
		}
	} else {
		membership = &entities.Membership{
			FullName:       req.FullName,
			Email:          email,
			Phone:          req.Phone,
			Address:        req.Address,
			City:           req.City,
			State:          req.State,
			ZipCode:        req.ZipCode,
			MembershipType: membershipType,
			Interests:      pq.StringArray(interests),
			Bio:            req.Bio,
			AcceptTerms:    true,
			Status:         domain.MembershipStatusPending,
		}
		if err := s.repo.CreateMembership(ctx, membership); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, domain.ErrMembershipRegistered
			}
			return nil, fmt.Errorf("create membership: %w", err)
		}
	}

	s.sendConfirmation(membership)

	res := ToMembershipResponse(membership)
	return &res, nil
}

func (s *membershipService) sendConfirmation(m *entities.Membership) {
	body, err := mailing.MembershipConfirmation(m.FullName, m.MembershipType)
	if err != nil {
		s.logger.Error("failed to render membership email", zap.Error(err))
		return
	}
	if err := s.mailer.Send(m.Email, "Membership application received", body); err != nil {
		if errors.Is(err, mailing.ErrMailNotConfigured) {
			s.logger.Debug("smtp not configured, skipping membership email")
			return
		}
		s.logger.Warn("failed to send membership email", zap.String("membership_id", m.ID.String()), zap.Error(err))
	}
}

func (s *membershipService) ListMemberships(ctx context.Context, filter domain.MembershipFilter) (*domain.MembershipsResponse, error) {
	filter.PageQuery = filter.PageQuery.Normalize(10)

	memberships, total, err := s.repo.ListMemberships(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := &domain.MembershipsResponse{
		Memberships: make([]domain.MembershipResponse, 0, len(memberships)),
		Pagination:  domain.NewPagination(total, filter.PageQuery),
	}
	for _, m := range memberships {
		res.Memberships = append(res.Memberships, ToMembershipResponse(m))
	}
	return res, nil
}

func (s *membershipService) Approve(ctx context.Context, membershipID string) (*domain.MembershipResponse, error) {
	return s.transition(ctx, membershipID, map[string]interface{}{
		"status":              domain.MembershipStatusActive,
		"verification_status": true,
	})
}

func (s *membershipService) Reject(ctx context.Context, membershipID string) (*domain.MembershipResponse, error) {
	return s.transition(ctx, membershipID, map[string]interface{}{
		"status": domain.MembershipStatusInactive,
	})
}

func (s *membershipService) transition(ctx context.Context, membershipID string, updates map[string]interface{}) (*domain.MembershipResponse, error) {
	if _, err := uuid.Parse(membershipID); err != nil {
		return nil, domain.ErrMembershipNotFound
	}
	if err := s.repo.UpdateMembership(ctx, membershipID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	membership, err := s.repo.GetMembershipByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	res := ToMembershipResponse(membership)
	return &res, nil
}

func (s *membershipService) Statistics(ctx context.Context) (*domain.MembershipStatistics, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	res := &domain.MembershipStatistics{TypeStats: make([]domain.MembershipTypeStatistic, 0, len(byType))}
	for _, row := range byStatus {
		res.Stats.Total += row.Count
		switch row.Key {
		case domain.MembershipStatusActive:
			res.Stats.Active += row.Count
		case domain.MembershipStatusPending:
			res.Stats.Pending += row.Count
		case domain.MembershipStatusInactive:
			res.Stats.Inactive += row.Count
		}
	}
	for _, row := range byType {
		res.TypeStats = append(res.TypeStats, domain.MembershipTypeStatistic{MembershipType: row.Key, Count: row.Count})
	}
	sort.Slice(res.TypeStats, func(i, j int) bool {
		return res.TypeStats[i].MembershipType < res.TypeStats[j].MembershipType
	})
	return res, nil
}

func ToMembershipResponse(m *entities.Membership) domain.MembershipResponse {
	interests := []string(m.Interests)
	if interests == nil {
		interests = []string{}
	}
	return domain.MembershipResponse{
		ID:                 m.ID.String(),
		FullName:           m.FullName,
		Email:              m.Email,
		Phone:              m.Phone,
		Address:            m.Address,
		City:               m.City,
		State:              m.State,
		ZipCode:            m.ZipCode,
		MembershipType:     m.MembershipType,
		Interests:          interests,
		Bio:                m.Bio,
		AcceptTerms:        m.AcceptTerms,
		Status:             m.Status,
		VerificationStatus: m.VerificationStatus,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
