package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"volunteerhub-backend/internal/api/handlers"
	"volunteerhub-backend/internal/api/routes"
	"volunteerhub-backend/internal/metrics"
	"volunteerhub-backend/internal/middleware"
	"volunteerhub-backend/internal/utils"
	"volunteerhub-backend/internal/utils/mailing"
	"volunteerhub-backend/internal/utils/storage"
	"volunteerhub-backend/pkg/blooddonation"
	"volunteerhub-backend/pkg/dashboard"
	"volunteerhub-backend/pkg/event"
	"volunteerhub-backend/pkg/jwt"
	"volunteerhub-backend/pkg/membership"
	"volunteerhub-backend/pkg/notification"
	"volunteerhub-backend/pkg/post"
	"volunteerhub-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const requestTimeout = 30 * time.Second

func NewApp(db *gorm.DB, log *zap.Logger) (*fiber.App, error) {
	utils.InitValidator()
	metrics.Register()

	app := fiber.New(fiber.Config{
		AppName:      "VolunteerHub API",
		ErrorHandler: middleware.ErrorHandler(log),
		BodyLimit:    6 * 1024 * 1024,
	})
	validator := utils.Validate

	// access log
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("DB_TIMEZONE"),
		Output:     file,
	}))

	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer(mailing.LoadMailConfig())
	push := notification.NewWebPushSender(notification.VapidConfig{
		PublicKey:  utils.GetConfig("VAPID_PUBLIC_KEY"),
		PrivateKey: utils.GetConfig("VAPID_PRIVATE_KEY"),
		Subject:    utils.GetConfig("VAPID_EMAIL"),
	})

	// Repository
	userRepository := user.NewUserRepository(db)
	eventRepository := event.NewEventRepository(db)
	postRepository := post.NewPostRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	bloodDonationRepository := blooddonation.NewBloodDonationRepository(db)
	membershipRepository := membership.NewMembershipRepository(db)
	dashboardRepository := dashboard.NewDashboardRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), jwt.DefaultTokenTTL)
	userService := user.NewUserService(userRepository, jwtService, s3, log)
	oauthService := user.NewOAuthService(userService, jwtService, oauthProviders()...)
	notificationService := notification.NewNotificationService(notificationRepository, push, log)
	managerService := user.NewManagerService(userRepository, notificationService, log)
	eventService := event.NewEventService(eventRepository, userRepository, notificationService, s3, log)
	postService := post.NewPostService(postRepository, notificationService, log)
	bloodDonationService := blooddonation.NewBloodDonationService(bloodDonationRepository, mailer, log)
	membershipService := membership.NewMembershipService(membershipRepository, mailer, log)
	dashboardService := dashboard.NewDashboardService(dashboardRepository, postService, log)

	if err := managerService.EnsureAdmin(context.Background(),
		utils.GetConfig("ADMIN_EMAIL"),
		utils.GetConfig("ADMIN_PASSWORD"),
		utils.GetConfig("ADMIN_NAME"),
	); err != nil {
		return nil, err
	}

	// Handler
	routesConfig := routes.Config{
		App:                  app,
		UserHandler:          handlers.NewUserHandler(userService, validator),
		OAuthHandler:         handlers.NewOAuthHandler(oauthService, utils.GetConfig("FRONTEND_URL")),
		EventHandler:         handlers.NewEventHandler(eventService, validator),
		PostHandler:          handlers.NewPostHandler(postService, validator),
		NotificationHandler:  handlers.NewNotificationHandler(notificationService, validator),
		BloodDonationHandler: handlers.NewBloodDonationHandler(bloodDonationService, validator),
		MembershipHandler:    handlers.NewMembershipHandler(membershipService, validator),
		ManagerHandler:       handlers.NewManagerHandler(managerService, validator),
		DashboardHandler:     handlers.NewDashboardHandler(dashboardService),
		Middleware:           middleware.NewMiddleware(userService, log),
		JWTService:           jwtService,
		CORSOrigins:          utils.GetConfig("CORS_ORIGINS"),
	}
	routesConfig.Setup()
	return app, nil
}

// oauthProviders returns the providers whose credentials are configured.
func oauthProviders() []user.OAuthProvider {
	var providers []user.OAuthProvider
	if id := utils.GetConfig("GOOGLE_CLIENT_ID"); id != "" {
		providers = append(providers, user.NewGoogleProvider(
			id,
			utils.GetConfig("GOOGLE_CLIENT_SECRET"),
			utils.GetConfig("GOOGLE_CALLBACK_URL"),
		))
	}
	if id := utils.GetConfig("FACEBOOK_APP_ID"); id != "" {
		providers = append(providers, user.NewFacebookProvider(
			id,
			utils.GetConfig("FACEBOOK_APP_SECRET"),
			utils.GetConfig("FACEBOOK_CALLBACK_URL"),
		))
	}
	return providers
}
