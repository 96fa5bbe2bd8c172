package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceconnect/api/internal/api/http/handlers"
	"github.com/serviceconnect/api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Categories     *handlers.CategoriesHandler
	Providers      *handlers.ProvidersHandler
	Projects       *handlers.ProjectsHandler
	Messages       *handlers.MessagesHandler
	Notifications  *handlers.NotificationsHandler
	Certifications *handlers.CertificationsHandler
	AccessPolicy   *auth.AccessPolicy
	// AuthRateLimit guards credential-producing endpoints. Optional.
	AuthRateLimit fiber.Handler
	// Metrics serves the Prometheus exposition. Optional.
	Metrics fiber.Handler
}

// RegisterRoutes wires HTTP routes. Every /api route passes the access policy first.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	api := app.Group("/api", cfg.AccessPolicy.Handle)
	limited := func(h fiber.Handler) []fiber.Handler {
		if cfg.AuthRateLimit == nil {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{cfg.AuthRateLimit, h}
	}

	authGroup := api.Group("/auth")
	authGroup.Post("/register", limited(cfg.Auth.Register)...)
	authGroup.Post("/login", limited(cfg.Auth.Login)...)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/password/reset", limited(cfg.Auth.RequestPasswordReset)...)
	authGroup.Post("/password/confirm", limited(cfg.Auth.ConfirmPasswordReset)...)
	authGroup.Get("/session", cfg.Auth.Session)
	authGroup.Put("/password", cfg.Auth.ChangePassword)

	api.Get("/categories", cfg.Categories.List)

	api.Get("/providers", cfg.Providers.List)
	api.Get("/providers/:id", cfg.Providers.Get)
	api.Get("/providers/:id/certifications", cfg.Providers.ListCertifications)
	api.Put("/providers/:id", auth.RequireProvider(), cfg.Providers.Update)

	api.Get("/projects", cfg.Projects.List)
	api.Get("/projects/:id", cfg.Projects.Get)
	api.Post("/projects", auth.RequireClient(), cfg.Projects.Create)
	api.Put("/projects/:id", cfg.Projects.Update)
	api.Delete("/projects/:id", cfg.Projects.Delete)

	api.Get("/messages", cfg.Messages.List)
	api.Post("/messages", cfg.Messages.Send)
	api.Put("/messages/:id/read", cfg.Messages.MarkRead)

	api.Get("/notifications", cfg.Notifications.List)
	api.Put("/notifications/read-all", cfg.Notifications.MarkAllRead)
	api.Put("/notifications/:id/read", cfg.Notifications.MarkRead)
	api.Delete("/notifications/:id", cfg.Notifications.Delete)

	api.Get("/users/:id", cfg.Users.GetUser)
	api.Put("/users/:id", cfg.Users.UpdateUser)

	certs := api.Group("/certifications", auth.RequireProvider())
	certs.Get("", cfg.Certifications.List)
	certs.Post("", cfg.Certifications.Create)
	certs.Delete("/:id", cfg.Certifications.Delete)
}
