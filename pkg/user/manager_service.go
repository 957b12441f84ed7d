package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	// Notifier delivers in-app notifications. Failures are logged by the implementation.
	Notifier interface {
		Notify(ctx context.Context, in domain.NotificationInput)
	}

	// ManagerService runs the volunteer-to-manager application flow and admin role changes.
	ManagerService interface {
		Apply(ctx context.Context, actor domain.Actor, req domain.ManagerApplicationRequest) (*domain.UserResponse, error)
		ListApplications(ctx context.Context, page domain.PageQuery) (*domain.UsersResponse, error)
		Approve(ctx context.Context, actor domain.Actor, userID string) (*domain.UserResponse, error)
		Reject(ctx context.Context, actor domain.Actor, userID string) (*domain.UserResponse, error)
		UpdateRole(ctx context.Context, actor domain.Actor, userID string, req domain.UpdateRoleRequest) (*domain.UserResponse, error)
		EnsureAdmin(ctx context.Context, email, password, name string) error
	}

	managerService struct {
		userRepository UserRepository
		notifier       Notifier
		logger         *zap.Logger
		now            func() time.Time
	}
)

func NewManagerService(userRepository UserRepository, notifier Notifier, logger *zap.Logger) ManagerService {
	return &managerService{
		userRepository: userRepository,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *managerService) Apply(ctx context.Context, actor domain.Actor, req domain.ManagerApplicationRequest) (*domain.UserResponse, error) {
	user, err := s.getUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if domain.Role(user.Role) != domain.RoleVolunteer {
		return nil, domain.ErrNotVolunteer
	}
	if user.RequestedRole == string(domain.RoleManager) {
		return nil, domain.ErrApplicationPending
	}

	if err := s.userRepository.UpdateUser(ctx, actor.ID, map[string]interface{}{
		"requested_role":      string(domain.RoleManager),
		"role_request_reason": strings.TrimSpace(req.Reason),
		"role_requested_at":   s.now(),
	}); err != nil {
		return nil, err
	}

	admins, err := s.userRepository.ListActiveAdmins(ctx)
	if err != nil {
		s.logger.Error("failed to list admins for manager application", zap.String("user_id", actor.ID), zap.Error(err))
	}
	for _, admin := range admins {
		s.notifier.Notify(ctx, domain.NotificationInput{
			RecipientID: admin.ID.String(),
			SenderID:    actor.ID,
			Type:        domain.NotificationManagerApplication,
			Title:       "New manager application",
			Message:     fmt.Sprintf("%s applied to become an event manager", user.Name),
		})
	}

	return s.response(ctx, actor.ID)
}

func (s *managerService) ListApplications(ctx context.Context, page domain.PageQuery) (*domain.UsersResponse, error) {
	filter := domain.UserListFilter{
		RequestedRole: string(domain.RoleManager),
		PageQuery:     page.Normalize(10),
	}
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

func (s *managerService) Approve(ctx context.Context, actor domain.Actor, userID string) (*domain.UserResponse, error) {
	return s.decide(ctx, actor, userID, true)
}

func (s *managerService) Reject(ctx context.Context, actor domain.Actor, userID string) (*domain.UserResponse, error) {
	return s.decide(ctx, actor, userID, false)
}

func (s *managerService) decide(ctx context.Context, actor domain.Actor, userID string, approve bool) (*domain.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RequestedRole != string(domain.RoleManager) {
		return nil, domain.ErrNoPendingApplication
	}

	updates := clearRequest()
	in := domain.NotificationInput{
		RecipientID: userID,
		SenderID:    actor.ID,
		Type:        domain.NotificationManagerRejected,
		Title:       "Manager application rejected",
		Message:     fmt.Sprintf("Your manager application was rejected by %s", actor.Name),
	}
	if approve {
		updates["role"] = string(domain.RoleManager)
		in.Type = domain.NotificationManagerApproved
		in.Title = "Manager application approved"
		in.Message = fmt.Sprintf("%s approved your manager application. You can now create events", actor.Name)
	}

	if err := s.userRepository.UpdateUser(ctx, userID, updates); err != nil {
		return nil, err
	}
	s.logger.Info("manager application decided",
		zap.String("user_id", userID),
		zap.String("admin_id", actor.ID),
		zap.Bool("approved", approve))
	s.notifier.Notify(ctx, in)

	return s.response(ctx, userID)
}

func (s *managerService) UpdateRole(ctx context.Context, actor domain.Actor, userID string, req domain.UpdateRoleRequest) (*domain.UserResponse, error) {
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	if actor.ID == userID {
		return nil, domain.ErrChangeOwnRole
	}
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	updates := clearRequest()
	updates["role"] = string(role)
	if err := s.userRepository.UpdateUser(ctx, userID, updates); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, domain.NotificationInput{
		RecipientID: userID,
		SenderID:    actor.ID,
		Type:        domain.NotificationRoleUpdated,
		Title:       "Role updated",
		Message:     fmt.Sprintf("%s changed your role to %s", actor.Name, role),
	})
	return s.response(ctx, userID)
}

// EnsureAdmin promotes the account with email to admin, creating it when password is set.
// An empty email disables the bootstrap.
func (s *managerService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}

	existing, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		if domain.Role(existing.Role) == domain.RoleAdmin {
			return nil
		}
		updates := clearRequest()
		updates["role"] = string(domain.RoleAdmin)
		if err := s.userRepository.UpdateUser(ctx, existing.ID.String(), updates); err != nil {
			return fmt.Errorf("promote bootstrap admin: %w", err)
		}
		s.logger.Info("bootstrap admin promoted", zap.String("user_id", existing.ID.String()))
		return nil
	}

	if password == "" {
		s.logger.Warn("bootstrap admin not created: ADMIN_PASSWORD is empty", zap.String("email", email))
		return nil
	}
	if name == "" {
		name = "Administrator"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &entities.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     string(domain.RoleAdmin),
		IsActive: true,
		Verified: true,
	}
	if err := s.userRepository.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	s.logger.Info("bootstrap admin created", zap.String("user_id", admin.ID.String()))
	return nil
}

func (s *managerService) getUser(ctx context.Context, userID string) (*entities.User, error) {
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

func (s *managerService) response(ctx context.Context, userID string) (*domain.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := ToUserResponse(user)
	return &res, nil
}

func clearRequest() map[string]interface{} {
	return map[string]interface{}{
		"requested_role":      "",
		"role_request_reason": "",
		"role_requested_at":   nil,
	}
}
