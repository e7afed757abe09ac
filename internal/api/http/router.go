package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/pos-backoffice/internal/api/http/handlers"
	"github.com/spec-kit/pos-backoffice/internal/auth"
	"github.com/spec-kit/pos-backoffice/internal/domain"
	"github.com/spec-kit/pos-backoffice/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Outlets   *handlers.OutletsHandler
	Pages     *handlers.PagesHandler
	Gate      *auth.Gate
	Metrics   *observability.Metrics
	LoginPath string
}

// RegisterRoutes wires HTTP routes. The page gate runs in front of every
// route and only acts on public paths and protected prefixes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry(), promhttp.HandlerOpts{})))
	}

	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	app.Get(loginPath, cfg.Pages.LoginPage)
	app.Get("/dashboard", cfg.Pages.Dashboard)
	app.Get("/dashboard/*", cfg.Pages.Dashboard)
	app.Get("/settings/*", auth.RequireRole(domain.RoleOwner, domain.RoleManager), cfg.Pages.Dashboard)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)
	api.Post("/auth/logout", cfg.Auth.Logout)
	api.Get("/auth/me", cfg.Gate.RequireSession, cfg.Auth.Me)

	api.Get("/outlets/my", cfg.Gate.RequireSession, cfg.Outlets.My)
	api.Post("/outlets/select", cfg.Gate.RequireSession, cfg.Outlets.Select)
}
