package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/internal/metrics"
	"volunteerhub-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type (
	// UserResolver loads the persisted user behind a token. It fails for unknown or
	// deactivated accounts.
	UserResolver interface {
		Authenticate(ctx context.Context, userID string) (*domain.UserResponse, error)
	}

	Middleware interface {
		CORSMiddleware(origins string) fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuth(jwtService jwt.JWTService) fiber.Handler
		RequireRoles(roles ...domain.Role) fiber.Handler
		RateLimiter(max int, window time.Duration) fiber.Handler
		Recover() fiber.Handler
		Metrics() fiber.Handler
	}

	middleware struct {
		users  UserResolver
		logger *zap.Logger
	}
)

func NewMiddleware(users UserResolver, logger *zap.Logger) Middleware {
	return &middleware{users: users, logger: logger}
}

func (m *middleware) CORSMiddleware(origins string) fiber.Handler {
	allowed := make([]string, 0)
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed = append(allowed, origin)
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowed, ","),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}

func (m *middleware) RateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, domain.MessageTooManyRequests, nil)
		},
	})
}

func (m *middleware) Recover() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			m.logger.Error("panic while handling request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Any("panic", e),
			)
		},
	})
}

// Metrics counts every request by method and status class.
func (m *middleware) Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		metrics.HTTPRequests.WithLabelValues(c.Method(), strconv.Itoa(status/100)+"xx").Inc()
		return err
	}
}
