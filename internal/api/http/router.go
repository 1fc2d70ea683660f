package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nosql-mis/internal/api/http/handlers"
	"github.com/spec-kit/nosql-mis/internal/auth"
	"github.com/spec-kit/nosql-mis/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Auth              *handlers.AuthHandler
	Employees         *handlers.RecordsHandler[domain.Employee]
	Projects          *handlers.RecordsHandler[domain.Project]
	Tasks             *handlers.RecordsHandler[domain.Task]
	SessionMiddleware *auth.SessionMiddleware
	StaticDir         string
}

type recordRoutes interface {
	List(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/login", cfg.Auth.Login)
	api.Post("/logout", cfg.Auth.Logout)

	protected := api.Group("", cfg.SessionMiddleware.Handle)
	mountRecords(protected, "/employees", cfg.Employees)
	mountRecords(protected, "/projects", cfg.Projects)
	mountRecords(protected, "/tasks", cfg.Tasks)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir, fiber.Static{Index: "index.html"})
	}
}

func mountRecords(r fiber.Router, prefix string, h recordRoutes) {
	r.Get(prefix, h.List)
	r.Post(prefix, h.Create)
	r.Put(prefix+"/:id", h.Update)
	r.Delete(prefix+"/:id", h.Delete)
}
