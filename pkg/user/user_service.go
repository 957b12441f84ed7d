package user

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"
	"volunteerhub-backend/internal/utils/storage"
	"volunteerhub-backend/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const avatarMaxDim = 512

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
		LoginWithOAuth(ctx context.Context, profile domain.OAuthProfile) (*domain.AuthResponse, error)
		Authenticate(ctx context.Context, userID string) (*domain.UserResponse, error)
		GetUserByID(ctx context.Context, userID string) (*domain.UserResponse, error)
		UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.UserResponse, error)
		UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.UserResponse, error)
		Deactivate(ctx context.Context, userID string) error
		ListUsers(ctx context.Context, filter domain.UserListFilter) (*domain.UsersResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		s3             storage.AwsS3
		logger         *zap.Logger
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, s3 storage.AwsS3, logger *zap.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		s3:             s3,
		logger:         logger,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	_, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hashed),
		Phone:    req.Phone,
		Role:     string(domain.RoleVolunteer),
		IsActive: true,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailAlreadyRegistered
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	now := time.Now()
	if err := s.userRepository.UpdateUser(ctx, user.ID.String(), map[string]interface{}{"last_login": now}); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return s.issue(user)
}

// LoginWithOAuth signs in the user linked to the provider identity, linking by email or
// creating a volunteer account when none exists yet.
func (s *userService) LoginWithOAuth(ctx context.Context, profile domain.OAuthProfile) (*domain.AuthResponse, error) {
	column, err := providerColumn(profile.Provider)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetUserByProviderID(ctx, profile.Provider, profile.ProviderID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user == nil && profile.Email != "" {
		user, err = s.userRepository.GetUserByEmail(ctx, normalizeEmail(profile.Email))
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if user != nil {
			if err := s.userRepository.UpdateUser(ctx, user.ID.String(), map[string]interface{}{column: profile.ProviderID}); err != nil {
				return nil, err
			}
		}
	}

	if user == nil {
		user, err = s.createOAuthUser(ctx, profile)
		if err != nil {
			return nil, err
		}
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}
	return s.issue(user)
}

func (s *userService) createOAuthUser(ctx context.Context, profile domain.OAuthProfile) (*entities.User, error) {
	email := normalizeEmail(profile.Email)
	if email == "" {
		email = profile.Provider + "_" + profile.ProviderID + "@placeholder.com"
	}
	// the account has no usable password until the user sets one
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	providerID := profile.ProviderID
	user := &entities.User{
		ID:       uuid.New(),
		Name:     profile.Name,
		Email:    email,
		Password: string(hashed),
		Avatar:   profile.Avatar,
		Role:     string(domain.RoleVolunteer),
		IsActive: true,
		Verified: profile.Email != "",
	}
	switch profile.Provider {
	case ProviderGoogle:
		user.GoogleID = &providerID
	case ProviderFacebook:
		user.FacebookID = &providerID
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("oauth user created", zap.String("user_id", user.ID.String()), zap.String("provider", profile.Provider))
	return user, nil
}

// Authenticate resolves the subject of a verified token to an active user.
func (s *userService) Authenticate(ctx context.Context, userID string) (*domain.UserResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrTokenInvalid
	}
	res := ToUserResponse(user)
	return &res, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := ToUserResponse(user)
	return &res, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	updates := map[string]interface{}{}
	setIfPresent(updates, "name", strings.TrimSpace(req.Name))
	setIfPresent(updates, "phone", req.Phone)
	setIfPresent(updates, "address", req.Address)
	setIfPresent(updates, "bio", req.Bio)
	setIfPresent(updates, "avatar", req.Avatar)
	setIfPresent(updates, "blood_type", req.BloodType)

	if len(updates) > 0 {
		if err := s.userRepository.UpdateUser(ctx, userID, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, err
		}
	}
	return s.GetUserByID(ctx, userID)
}

func (s *userService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*domain.UserResponse, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	objectKey, err := s.s3.UploadImage(ctx, "avatar-"+userID, file, "avatars", avatarMaxDim)
	if err != nil {
		return nil, err
	}

	if err := s.userRepository.UpdateUser(ctx, userID, map[string]interface{}{
		"avatar": s.s3.GetPublicLinkKey(objectKey),
	}); err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, userID)
}

func (s *userService) Deactivate(ctx context.Context, userID string) error {
	err := s.userRepository.UpdateUser(ctx, userID, map[string]interface{}{"is_active": false})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}

func (s *userService) ListUsers(ctx context.Context, filter domain.UserListFilter) (*domain.UsersResponse, error) {
	filter.PageQuery = filter.PageQuery.Normalize(10)
	users, total, err := s.userRepository.ListUsers(ctx, filter)
	if err != nil {
		return nil, err
	}

	res := &domain.UsersResponse{
		Users:      make([]domain.UserResponse, 0, len(users)),
		Pagination: domain.NewPagination(total, filter.PageQuery),
	}
	for _, u := range users {
		res.Users = append(res.Users, ToUserResponse(u))
	}
	return res, nil
}

func (s *userService) getUser(ctx context.Context, userID string) (*entities.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) issue(user *entities.User) (*domain.AuthResponse, error) {
	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{User: ToUserResponse(user), Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func setIfPresent(updates map[string]interface{}, column, value string) {
	if value != "" {
		updates[column] = value
	}
}

func ToUserResponse(u *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:               u.ID.String(),
		Name:             u.Name,
		Email:            u.Email,
		Role:             domain.Role(u.Role),
		Phone:            u.Phone,
		Address:          u.Address,
		BloodType:        u.BloodType,
		Avatar:           u.Avatar,
		Bio:              u.Bio,
		IsActive:         u.IsActive,
		Verified:         u.Verified,
		LastLogin:        u.LastLogin,
		EventsCompleted:  u.EventsCompleted,
		HoursContributed: u.HoursContributed,
		RequestedRole:    domain.Role(u.RequestedRole),
		RoleRequestedAt:  u.RoleRequestedAt,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// ToUserSummary returns nil for a user that was not loaded.
func ToUserSummary(u *entities.User) *domain.UserSummary {
	if u == nil {
		return nil
	}
	return &domain.UserSummary{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
