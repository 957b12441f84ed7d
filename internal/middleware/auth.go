package middleware

import (
	"strings"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalUserName = "user_name"
)

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageNoTokenProvided, domain.ErrTokenNotFound)
		}
		if err := m.attach(c, jwtService, token); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageInvalidToken, err)
		}
		return c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and never rejects.
func (m *middleware) OptionalAuth(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c); ok {
			_ = m.attach(c, jwtService, token)
		}
		return c.Next()
	}
}

func (m *middleware) RequireRoles(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := CurrentActor(c)
		if !ok {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageNoTokenProvided, domain.ErrTokenNotFound)
		}
		if !actor.Role.In(roles...) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageForbidden, domain.ErrUserNotAllowed)
		}
		return c.Next()
	}
}

// attach stores the persisted user's id, name and role. The role claim in the token is
// not trusted, so a demoted user loses access immediately.
func (m *middleware) attach(c *fiber.Ctx, jwtService jwt.JWTService, token string) error {
	userID, _, err := jwtService.GetUserIDByToken(token)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	user, err := m.users.Authenticate(c.UserContext(), userID)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	c.Locals(LocalUserID, user.ID)
	c.Locals(LocalRole, string(user.Role))
	c.Locals(LocalUserName, user.Name)
	return nil
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// CurrentActor returns the user attached by AuthMiddleware or OptionalAuth.
func CurrentActor(c *fiber.Ctx) (domain.Actor, bool) {
	id, ok := c.Locals(LocalUserID).(string)
	if !ok || id == "" {
		return domain.Actor{}, false
	}
	role, _ := c.Locals(LocalRole).(string)
	name, _ := c.Locals(LocalUserName).(string)
	return domain.Actor{ID: id, Name: name, Role: domain.Role(role)}, true
}
