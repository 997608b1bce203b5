package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Leads  *handlers.LeadsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/login", cfg.Auth.Login)

	forms := app.Group("/api/forms")
	forms.Post("/submit", cfg.Leads.Submit)
	forms.Get("/", cfg.Leads.List)

	// fixed paths must be registered before the :id routes
	forms.Get("/stats/dashboard", cfg.Leads.Stats)
	forms.Get("/activity", cfg.Leads.Activity)
	forms.Get("/export", cfg.Leads.Export)

	forms.Get("/:id", cfg.Leads.Get)
	forms.Put("/:id/status", cfg.Leads.UpdateStatus)
	forms.Post("/:id/notes", cfg.Leads.AddNote)
	forms.Delete("/:id", cfg.Leads.Delete)
}
