package membership

import (
	"context"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"

	"gorm.io/gorm"
)

type (
	// Count is the number of memberships sharing one key (a status or a membership type).
	Count struct {
		Key   string
		Count int64
	}

	MembershipRepository interface {
		CreateMembership(ctx context.Context, membership *entities.Membership) error
		GetMembershipByID(ctx context.Context, id string) (*entities.Membership, error)
		GetMembershipByEmail(ctx context.Context, email string) (*entities.Membership, error)
		ListMemberships(ctx context.Context, filter domain.MembershipFilter) ([]*entities.Membership, int64, error)
		UpdateMembership(ctx context.Context, id string, updates map[string]interface{}) error
		CountByStatus(ctx context.Context) ([]Count, error)
		CountByType(ctx context.Context) ([]Count, error)
	}

	membershipRepository struct {
		db *gorm.DB
	}
)

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) CreateMembership(ctx context.Context, membership *entities.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *membershipRepository) GetMembershipByID(ctx context.Context, id string) (*entities.Membership, error) {
	var membership entities.Membership
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) GetMembershipByEmail(ctx context.Context, email string) (*entities.Membership, error) {
	var membership entities.Membership
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *membershipRepository) ListMemberships(ctx context.Context, filter domain.MembershipFilter) ([]*entities.Membership, int64, error) {
	var memberships []*entities.Membership
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Membership{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MembershipType != "" {
		query = query.Where("membership_type = ?", filter.MembershipType)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&memberships).Error; err != nil {
		return nil, 0, err
	}

	return memberships, count, nil
}

func (r *membershipRepository) UpdateMembership(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Membership{}).
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

func (r *membershipRepository) CountByStatus(ctx context.Context) ([]Count, error) {
	return r.countBy(ctx, "status")
}

func (r *membershipRepository) CountByType(ctx context.Context) ([]Count, error) {
	return r.countBy(ctx, "membership_type")
}

func (r *membershipRepository) countBy(ctx context.Context, column string) ([]Count, error) {
	var rows []Count
	if err := r.db.WithContext(ctx).
		Model(&entities.Membership{}).
		Select(column + ` AS "key", COUNT(*) AS count`).
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
