package user

import (
	"context"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByProviderID(ctx context.Context, provider string, providerID string) (*entities.User, error)
		UpdateUser(ctx context.Context, id string, updates map[string]interface{}) error
		ListUsers(ctx context.Context, filter domain.UserListFilter) ([]*entities.User, int64, error)
		ListActiveAdmins(ctx context.Context) ([]*entities.User, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByProviderID(ctx context.Context, provider string, providerID string) (*entities.User, error) {
	column, err := providerColumn(provider)
	if err != nil {
		return nil, err
	}
	var user entities.User
	if err := r.db.WithContext(ctx).Where(column+" = ?", providerID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, id string, updates map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entities.User{}).
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

func (r *userRepository) ListUsers(ctx context.Context, filter domain.UserListFilter) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.RequestedRole != "" {
		query = query.Where("requested_role = ?", filter.RequestedRole)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *userRepository) ListActiveAdmins(ctx context.Context) ([]*entities.User, error) {
	var admins []*entities.User
	if err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", string(domain.RoleAdmin), true).
		Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func providerColumn(provider string) (string, error) {
	switch provider {
	case ProviderGoogle:
		return "google_id", nil
	case ProviderFacebook:
		return "facebook_id", nil
	default:
		return "", domain.ErrOAuthProvider
	}
}
