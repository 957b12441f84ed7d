package blooddonation

import (
	"context"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"

	"gorm.io/gorm"
)

type (
	// StatusCount is one (blood type, status) bucket.
	StatusCount struct {
		BloodType string
		Status    string
		Count     int64
	}

	BloodDonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.BloodDonation) error
		GetDonationByID(ctx context.Context, id string) (*entities.BloodDonation, error)
		GetOpenDonationByEmail(ctx context.Context, email string) (*entities.BloodDonation, error)
		ListDonations(ctx context.Context, filter domain.DonationFilter) ([]*entities.BloodDonation, int64, error)
		UpdateDonation(ctx context.Context, id string, updates map[string]interface{}) error
		CountByBloodTypeAndStatus(ctx context.Context) ([]StatusCount, error)
	}

	bloodDonationRepository struct {
		db *gorm.DB
	}
)

func NewBloodDonationRepository(db *gorm.DB) BloodDonationRepository {
	return &bloodDonationRepository{db: db}
}

func (r *bloodDonationRepository) CreateDonation(ctx context.Context, donation *entities.BloodDonation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *bloodDonationRepository) GetDonationByID(ctx context.Context, id string) (*entities.BloodDonation, error) {
	var donation entities.BloodDonation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *bloodDonationRepository) GetOpenDonationByEmail(ctx context.Context, email string) (*entities.BloodDonation, error) {
	var donation entities.BloodDonation
	if err := r.db.WithContext(ctx).
		Where("donor_email = ? AND status <> ?", email, domain.DonationStatusCancelled).
		Order("created_at DESC").
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *bloodDonationRepository) ListDonations(ctx context.Context, filter domain.DonationFilter) ([]*entities.BloodDonation, int64, error) {
	var donations []*entities.BloodDonation
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.BloodDonation{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BloodType != "" {
		query = query.Where("blood_type = ?", filter.BloodType)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

func (r *bloodDonationRepository) UpdateDonation(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entities.BloodDonation{}).
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

func (r *bloodDonationRepository) CountByBloodTypeAndStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	if err := r.db.WithContext(ctx).
		Model(&entities.BloodDonation{}).
		Select("blood_type, status, COUNT(*) AS count").
		Group("blood_type, status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
