package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tasky-suite/workspace-service/internal/api/http/handlers"
	"github.com/tasky-suite/workspace-service/internal/auth"
	"github.com/tasky-suite/workspace-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Projects *handlers.ProjectsHandler
	Session  *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Route order encodes the pipeline:
// public routes carry no interceptors, authenticated routes run the session
// verifier first, and admin routes add the role gate after it. The first
// rejection writes the response and stops the chain.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/register", cfg.Auth.Register)
	api.Post("/login", cfg.Auth.Login)
	api.Post("/logout", cfg.Auth.Logout)

	api.Get("/auth/user", cfg.Session.Handle, cfg.Auth.CurrentUser)
	api.Get("/checkadmin", cfg.Session.Handle, auth.RequireRole(domain.RoleAdmin), cfg.Auth.CheckAdmin)

	workspace := api.Group("/projects", cfg.Session.Handle, auth.RequireAuthenticated())
	workspace.Get("/", cfg.Projects.List)
	workspace.Post("/", cfg.Projects.Create)
	workspace.Get("/:id", cfg.Projects.Get)
	workspace.Put("/:id", cfg.Projects.Update)
	workspace.Delete("/:id", cfg.Projects.Delete)

	workspace.Post("/:id/tasks", cfg.Projects.AddTask)
	workspace.Put("/:id/tasks/:taskId", cfg.Projects.UpdateTask)
	workspace.Patch("/:id/tasks/:taskId/status", cfg.Projects.SetTaskStatus)
	workspace.Delete("/:id/tasks/:taskId", cfg.Projects.DeleteTask)
}
