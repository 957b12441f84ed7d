package routes

import (
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/internal/api/handlers"
	"volunteerhub-backend/internal/api/presenters"
	"volunteerhub-backend/internal/middleware"
	"volunteerhub-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                  *fiber.App
	UserHandler          handlers.UserHandler
	OAuthHandler         handlers.OAuthHandler
	EventHandler         handlers.EventHandler
	PostHandler          handlers.PostHandler
	NotificationHandler  handlers.NotificationHandler
	BloodDonationHandler handlers.BloodDonationHandler
	MembershipHandler    handlers.MembershipHandler
	ManagerHandler       handlers.ManagerHandler
	DashboardHandler     handlers.DashboardHandler
	Middleware           middleware.Middleware
	JWTService           jwt.JWTService
	CORSOrigins          string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.Recover())
	c.App.Use(c.Middleware.CORSMiddleware(c.CORSOrigins))
	c.App.Use(c.Middleware.Metrics())

	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := c.App.Group("/api", c.Middleware.RateLimiter(100, time.Minute))
	c.GuestRoute(api)
	c.Auth(api)
	c.Events(api)
	c.Posts(api)
	c.Notifications(api)
	c.BloodDonation(api)
	c.Membership(api)
	c.Dashboard(api)

	c.App.Use(middleware.NotFound)
}

func (c *Config) auth() fiber.Handler {
	return c.Middleware.AuthMiddleware(c.JWTService)
}

func (c *Config) GuestRoute(api fiber.Router) {
	api.Get("/health", func(ctx *fiber.Ctx) error {
		return presenters.SuccessResponse(ctx, fiber.Map{"status": "ok", "time": time.Now().UTC()}, fiber.StatusOK, domain.MessageHealthy)
	})
}

func (c *Config) Auth(api fiber.Router) {
	auth := api.Group("/auth")
	credentials := c.Middleware.RateLimiter(20, 15*time.Minute)
	{
		auth.Post("/register", credentials, c.UserHandler.Register)
		auth.Post("/login", credentials, c.UserHandler.Login)
		auth.Get("/me", c.auth(), c.UserHandler.Me)
		auth.Put("/profile", c.auth(), c.UserHandler.UpdateProfile)
		auth.Post("/avatar", c.auth(), c.UserHandler.UploadAvatar)
		auth.Post("/deactivate", c.auth(), c.UserHandler.Deactivate)
		auth.Get("/users", c.auth(), c.Middleware.RequireRoles(domain.AdminRoles...), c.UserHandler.ListUsers)
		auth.Get("/user/:id", c.auth(), c.UserHandler.GetUser)
	}
	// manager applications and role changes
	{
		admins := c.Middleware.RequireRoles(domain.AdminRoles...)
		auth.Post("/manager-application", c.auth(), c.ManagerHandler.Apply)
		auth.Get("/manager-applications", c.auth(), admins, c.ManagerHandler.ListApplications)
		auth.Put("/manager-applications/:userId/approve", c.auth(), admins, c.ManagerHandler.Approve)
		auth.Put("/manager-applications/:userId/reject", c.auth(), admins, c.ManagerHandler.Reject)
		auth.Put("/users/:id/role", c.auth(), admins, c.ManagerHandler.UpdateRole)
	}
	// oauth
	{
		auth.Get("/google", c.OAuthHandler.Redirect("google"))
		auth.Get("/google/callback", c.OAuthHandler.Callback("google"))
		auth.Get("/facebook", c.OAuthHandler.Redirect("facebook"))
		auth.Get("/facebook/callback", c.OAuthHandler.Callback("facebook"))
		auth.Get("/oauth/failure", c.OAuthHandler.Failure)
	}
}

func (c *Config) Events(api fiber.Router) {
	events := api.Group("/events")
	managers := c.Middleware.RequireRoles(domain.ManagerRoles...)

	events.Get("/all", c.EventHandler.ListEvents)
	events.Post("/create", c.auth(), managers, c.EventHandler.CreateEvent)
	events.Post("/register", c.auth(), c.EventHandler.Register)
	events.Get("/user/registered", c.auth(), c.EventHandler.GetUserRegistrations)
	events.Get("/user/history", c.auth(), c.EventHandler.GetHistory)
	events.Put("/registration/:registrationId/status", c.auth(), managers, c.EventHandler.UpdateRegistrationStatus)
	events.Post("/:eventId/approve", c.auth(), managers, c.EventHandler.ApproveEvent)
	events.Post("/:eventId/complete", c.auth(), managers, c.EventHandler.CompleteEvent)
	events.Post("/:id/image", c.auth(), managers, c.EventHandler.UploadImage)
	events.Get("/:id", c.EventHandler.GetEvent)
	events.Put("/:id", c.auth(), managers, c.EventHandler.UpdateEvent)
}

func (c *Config) Posts(api fiber.Router) {
	posts := api.Group("/posts", c.auth())

	posts.Post("/create", c.PostHandler.CreatePost)
	posts.Get("/event/:eventId", c.PostHandler.GetEventPosts)
	posts.Post("/comment", c.PostHandler.AddComment)
	posts.Get("/comment/:commentId", c.PostHandler.GetComment)
	posts.Post("/:postId/like", c.PostHandler.ToggleLike)
	posts.Get("/:postId/comments", c.PostHandler.GetComments)
	posts.Delete("/:postId", c.PostHandler.DeletePost)
}

func (c *Config) Notifications(api fiber.Router) {
	notifications := api.Group("/notifications")

	notifications.Get("/vapid-public-key", c.NotificationHandler.VapidPublicKey)
	notifications.Get("/", c.auth(), c.NotificationHandler.List)
	notifications.Put("/read-all", c.auth(), c.NotificationHandler.MarkAllRead)
	notifications.Put("/:notificationId/read", c.auth(), c.NotificationHandler.MarkRead)
	notifications.Post("/subscribe", c.auth(), c.NotificationHandler.Subscribe)
	notifications.Post("/unsubscribe", c.auth(), c.NotificationHandler.Unsubscribe)
}

func (c *Config) BloodDonation(api fiber.Router) {
	donations := api.Group("/blood-donation")
	managers := c.Middleware.RequireRoles(domain.ManagerRoles...)

	donations.Post("/register", c.Middleware.OptionalAuth(c.JWTService), c.BloodDonationHandler.Register)
	donations.Get("/statistics", c.BloodDonationHandler.Statistics)
	donations.Get("/all", c.auth(), managers, c.BloodDonationHandler.ListDonations)
	donations.Put("/:donationId/status", c.auth(), managers, c.BloodDonationHandler.UpdateStatus)
}

func (c *Config) Membership(api fiber.Router) {
	membership := api.Group("/membership")
	admins := c.Middleware.RequireRoles(domain.AdminRoles...)

	membership.Post("/register", c.MembershipHandler.Register)
	membership.Get("/statistics", c.MembershipHandler.Statistics)
	membership.Get("/all", c.auth(), admins, c.MembershipHandler.ListMemberships)
	membership.Put("/:membershipId/approve", c.auth(), admins, c.MembershipHandler.Approve)
	membership.Put("/:membershipId/reject", c.auth(), admins, c.MembershipHandler.Reject)
}

func (c *Config) Dashboard(api fiber.Router) {
	dashboard := api.Group("/dashboard", c.auth())

	dashboard.Get("/stats", c.DashboardHandler.Stats)
	dashboard.Get("/trending-events", c.DashboardHandler.TrendingEvents)
	dashboard.Get("/recent-posts", c.DashboardHandler.RecentPosts)
	dashboard.Get("/export", c.Middleware.RequireRoles(domain.AdminRoles...), c.DashboardHandler.Export)
}
