package blooddonation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"
	"volunteerhub-backend/internal/utils/mailing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type (
	BloodDonationService interface {
		Register(ctx context.Context, userID string, req domain.RegisterDonationRequest) (*domain.BloodDonationResponse, error)
		ListDonations(ctx context.Context, filter domain.DonationFilter) (*domain.BloodDonationsResponse, error)
		UpdateStatus(ctx context.Context, donationID string, req domain.UpdateDonationStatusRequest) (*domain.BloodDonationResponse, error)
		Statistics(ctx context.Context) (*domain.BloodStatistics, error)
	}

	bloodDonationService struct {
		repo   BloodDonationRepository
		mailer mailing.Mailer
		logger *zap.Logger
	}
)

func NewBloodDonationService(repo BloodDonationRepository, mailer mailing.Mailer, logger *zap.Logger) BloodDonationService {
	return &bloodDonationService{
		repo:   repo,
		mailer: mailer,
		logger: logger,
	}
}

// Register records a donor. userID is empty for anonymous registrations.
func (s *bloodDonationService) Register(ctx context.Context, userID string, req domain.RegisterDonationRequest) (*domain.BloodDonationResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.DonorEmail))

	_, err := s.repo.GetOpenDonationByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrDonationAlreadyPending
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	donation := &entities.BloodDonation{
		DonorName:          req.DonorName,
		DonorEmail:         email,
		DonorPhone:         req.DonorPhone,
		BloodType:          req.BloodType,
		PreferredEventDate: req.PreferredEventDate,
		Status:             domain.DonationStatusPending,
		Notes:              req.Notes,
	}
	if req.LastDonationDate != "" {
		last, err := parseDate(req.LastDonationDate)
		if err != nil {
			return nil, domain.ErrInvalidDonationDate
		}
		donation.LastDonationDate = &last
	}
	if id, err := uuid.Parse(userID); err == nil {
		donation.UserID = &id
	}

	if err := s.repo.CreateDonation(ctx, donation); err != nil {
		return nil, fmt.Errorf("create blood donation: %w", err)
	}

	s.sendConfirmation(donation)

	res := ToBloodDonationResponse(donation)
	return &res, nil
}

func (s *bloodDonationService) sendConfirmation(d *entities.BloodDonation) {
	body, err := mailing.BloodDonationConfirmation(d.DonorName, d.BloodType, d.PreferredEventDate)
	if err != nil {
		s.logger.Error("failed to render blood donation email", zap.Error(err))
		return
	}
	if err := s.mailer.Send(d.DonorEmail, "Blood donation registration received", body); err != nil {
		if errors.Is(err, mailing.ErrMailNotConfigured) {
			s.logger.Debug("smtp not configured, skipping blood donation email")
			return
		}
		s.logger.Warn("failed to send blood donation email", zap.String("donation_id", d.ID.String()), zap.Error(err))
	}
}

func (s *bloodDonationService) ListDonations(ctx context.Context, filter domain.DonationFilter) (*domain.BloodDonationsResponse, error) {
	filter.PageQuery = filter.PageQuery.Normalize(10)

	donations, total, err := s.repo.ListDonations(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := &domain.BloodDonationsResponse{
		Donations:  make([]domain.BloodDonationResponse, 0, len(donations)),
		Pagination: domain.NewPagination(total, filter.PageQuery),
	}
	for _, d := range donations {
		res.Donations = append(res.Donations, ToBloodDonationResponse(d))
	}
	return res, nil
}

func (s *bloodDonationService) UpdateStatus(ctx context.Context, donationID string, req domain.UpdateDonationStatusRequest) (*domain.BloodDonationResponse, error) {
	if _, err := uuid.Parse(donationID); err != nil {
		return nil, domain.ErrDonationNotFound
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Notes != nil && *req.Notes != "" {
		updates["notes"] = *req.Notes
	}
	if err := s.repo.UpdateDonation(ctx, donationID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	donation, err := s.repo.GetDonationByID(ctx, donationID)
	if err != nil {
		return nil, err
	}
	res := ToBloodDonationResponse(donation)
	return &res, nil
}

// Statistics groups donations per blood type, busiest type first.
func (s *bloodDonationService) Statistics(ctx context.Context) (*domain.BloodStatistics, error) {
	rows, err := s.repo.CountByBloodTypeAndStatus(ctx)
	if err != nil {
		return nil, err
	}

	byType := map[string]*domain.BloodTypeStatistic{}
	res := &domain.BloodStatistics{Statistics: []domain.BloodTypeStatistic{}}
	for _, row := range rows {
		stat, ok := byType[row.BloodType]
		if !ok {
			stat = &domain.BloodTypeStatistic{BloodType: row.BloodType, Statuses: map[string]int64{}}
			byType[row.BloodType] = stat
		}
		stat.Count += row.Count
		stat.Statuses[row.Status] += row.Count

		res.TotalDonors += row.Count
		if row.Status == domain.DonationStatusCompleted {
			res.CompletedDonations += row.Count
		}
	}

	for _, stat := range byType {
		res.Statistics = append(res.Statistics, *stat)
	}
	sort.Slice(res.Statistics, func(i, j int) bool {
		if res.Statistics[i].Count != res.Statistics[j].Count {
			return res.Statistics[i].Count > res.Statistics[j].Count
		}
		return res.Statistics[i].BloodType < res.Statistics[j].BloodType
	})
	return res, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func ToBloodDonationResponse(d *entities.BloodDonation) domain.BloodDonationResponse {
	res := domain.BloodDonationResponse{
		ID:                 d.ID.String(),
		DonorName:          d.DonorName,
		DonorEmail:         d.DonorEmail,
		DonorPhone:         d.DonorPhone,
		BloodType:          d.BloodType,
		LastDonationDate:   d.LastDonationDate,
		PreferredEventDate: d.PreferredEventDate,
		Status:             d.Status,
		Notes:              d.Notes,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if d.UserID != nil {
		res.UserID = d.UserID.String()
	}
	return res
}
