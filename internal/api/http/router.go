package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health              *handlers.HealthHandler
	Workspaces          *handlers.WorkspaceHandler
	Sessions            *handlers.SessionHandler
	Accounts            *handlers.AccountsHandler
	Tickets             *handlers.TicketsHandler
	WorkspaceMiddleware *auth.WorkspaceMiddleware
	Metrics             *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Handler())

	api := app.Group("/api")
	scoped := []fiber.Handler{cfg.WorkspaceMiddleware.Handle, workspaceRateLimit()}

	workspaces := api.Group("/workspaces")
	workspaces.Post("", cfg.Workspaces.Create)
	workspaces.Post("/current/token", append(scoped, cfg.Workspaces.RefreshToken)...)
	workspaces.Delete("/current", append(scoped, cfg.Workspaces.Discard)...)

	session := api.Group("/session", scoped...)
	session.Post("", cfg.Sessions.Login)
	session.Delete("", cfg.Sessions.Logout)
	session.Get("", auth.RequireSession(), cfg.Sessions.Current)

	accounts := api.Group("/accounts", append(scoped, auth.RequireRole(domain.RoleAdmin))...)
	accounts.Get("", cfg.Accounts.List)
	accounts.Post("", cfg.Accounts.Create)
	accounts.Patch("/:id", cfg.Accounts.Update)
	accounts.Delete("/:id", cfg.Accounts.Delete)

	tickets := api.Group("/tickets", scoped...)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Get("/:id/history", auth.RequireSession(), cfg.Tickets.History)
}
